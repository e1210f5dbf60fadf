// Package server exposes a grid session over a JSON HTTP API.
package server

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/javajack/xlgrid"
	"github.com/javajack/xlgrid/internal/config"
)

// Server serves one grid session. Requests are applied one at a time.
type Server struct {
	router *gin.Engine
	logger *slog.Logger

	mu   sync.Mutex
	ctrl *xlgrid.Controller
}

// New creates a server around ctrl.
func New(ctrl *xlgrid.Controller, cfg config.ServerConfig, logger *slog.Logger) *Server {
	if !cfg.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{
		router: gin.New(),
		logger: logger,
		ctrl:   ctrl,
	}
	s.router.Use(gin.Recovery())
	if cfg.DevMode {
		s.router.Use(gin.Logger())
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	api := s.router.Group("/api")
	api.GET("/grid", s.getGrid)
	api.GET("/summary", s.getSummary)
	api.POST("/events", s.postEvent)
	api.PUT("/cells/:ref", s.putCell)
}

// Handler returns the HTTP handler, for tests and custom listeners.
func (s *Server) Handler() http.Handler { return s.router }

// Run listens on addr.
func (s *Server) Run(addr string) error {
	s.logger.Info("listening", slog.String("addr", addr))
	return s.router.Run(addr)
}

type selectionView struct {
	Range    *xlgrid.Rect      `json:"range,omitempty"`
	Cells    []xlgrid.Position `json:"cells"`
	Anchor   *xlgrid.Position  `json:"anchor,omitempty"`
	Dragging bool              `json:"dragging"`
}

type gridView struct {
	Rows      int           `json:"rows"`
	Cols      int           `json:"cols"`
	Columns   []string      `json:"columns"`
	Cells     [][]string    `json:"cells"`
	Selection selectionView `json:"selection"`
	WriteBack string        `json:"writeBack"`
}

func (s *Server) view() (gridView, error) {
	st := s.ctrl.State()
	labels, err := xlgrid.ColumnLabels(st.Cols())
	if err != nil {
		return gridView{}, err
	}
	sel := st.Selection()
	sv := selectionView{Cells: sel.Positions(), Dragging: sel.Dragging()}
	if sv.Cells == nil {
		sv.Cells = []xlgrid.Position{}
	}
	if !sel.IsEmpty() {
		r := sel.Rect()
		a := sel.Anchor()
		sv.Range, sv.Anchor = &r, &a
	}
	return gridView{
		Rows:      st.Rows(),
		Cols:      st.Cols(),
		Columns:   labels,
		Cells:     st.Values(),
		Selection: sv,
		WriteBack: s.ctrl.WriteBack().String(),
	}, nil
}

func (s *Server) getGrid(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, err := s.view()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, v)
}

func (s *Server) getSummary(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.ctrl.Summary())
}

type eventRequest struct {
	Type string  `json:"type" binding:"required"`
	Row  int     `json:"row"`
	Col  int     `json:"col"`
	Ref  string  `json:"ref"`
	Text *string `json:"text"`
}

func (r eventRequest) event() (xlgrid.Event, error) {
	kind, err := xlgrid.ParseEventKind(r.Type)
	if err != nil {
		return xlgrid.Event{}, err
	}
	pos := xlgrid.At(r.Row, r.Col)
	if r.Ref != "" {
		if pos, err = xlgrid.ParsePosition(r.Ref); err != nil {
			return xlgrid.Event{}, err
		}
	}
	ev := xlgrid.Event{Kind: kind, Pos: pos}
	if kind == xlgrid.TextInput {
		if r.Text == nil {
			return xlgrid.Event{}, errors.New("textInput requires text")
		}
		ev.Text = *r.Text
	}
	return ev, nil
}

func (s *Server) postEvent(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	ev, err := req.event()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	commit, err := s.ctrl.Handle(ev)
	if err != nil {
		s.logger.Debug("event rejected", slog.String("type", ev.Kind.String()), slog.Any("error", err))
		c.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}
	resp := gin.H{
		"dragging": s.ctrl.DragState() == xlgrid.Dragging,
		"summary":  s.ctrl.Summary(),
	}
	if commit != nil {
		resp["commit"] = commit
	}
	c.JSON(http.StatusOK, resp)
}

type cellRequest struct {
	Text *string `json:"text"`
}

func (s *Server) putCell(c *gin.Context) {
	pos, err := xlgrid.ParsePosition(c.Param("ref"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var req cellRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ctrl.Edit(pos, *req.Text); err != nil {
		c.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ref": pos.String(), "text": *req.Text})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, xlgrid.ErrOutOfRange):
		return http.StatusUnprocessableEntity
	case errors.Is(err, xlgrid.ErrNotDragging):
		return http.StatusConflict
	case errors.Is(err, xlgrid.ErrUnknownEvent):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
