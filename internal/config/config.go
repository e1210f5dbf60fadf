package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/javajack/xlgrid"
)

// FileName is the config file looked up next to the executable.
const FileName = "xlgrid.toml"

// AppConfig is the application configuration.
type AppConfig struct {
	Grid   GridConfig   `toml:"grid"`
	Server ServerConfig `toml:"server"`
	Log    LogConfig    `toml:"log"`
}

// GridConfig sizes the grid and picks the aggregate written on release.
type GridConfig struct {
	Rows      int    `toml:"rows"`
	Cols      int    `toml:"cols"`
	WriteBack string `toml:"write_back"`
}

// ServerConfig configures the HTTP adapter.
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// LoadInfo records what a Load actually read.
type LoadInfo struct {
	Path  string
	Found bool
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Grid: GridConfig{
			Rows:      16,
			Cols:      16,
			WriteBack: xlgrid.AggregateSum.String(),
		},
		Server: ServerConfig{
			Port:    20262,
			DevMode: false,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// DefaultPath returns FileName inside the executable's directory, or in the
// working directory when the executable cannot be located.
func DefaultPath() string {
	exe, err := os.Executable()
	if err != nil {
		return FileName
	}
	return filepath.Join(filepath.Dir(exe), FileName)
}

// Load reads the TOML file at path over the defaults and applies environment
// overrides. An empty path means DefaultPath. A missing file is not an error.
// The result is not validated; callers apply their own overrides first and
// then call Validate.
func Load(path string) (*AppConfig, LoadInfo, error) {
	if path == "" {
		path = DefaultPath()
	}
	info := LoadInfo{Path: path}
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		info.Found = true
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, info, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, info, err
	}

	if err := applyEnv(cfg); err != nil {
		return nil, info, err
	}
	return cfg, info, nil
}

// Save writes cfg as TOML to path.
func Save(cfg *AppConfig, path string) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func applyEnv(cfg *AppConfig) error {
	ints := []struct {
		name string
		dst  *int
	}{
		{"XLGRID_ROWS", &cfg.Grid.Rows},
		{"XLGRID_COLS", &cfg.Grid.Cols},
		{"XLGRID_PORT", &cfg.Server.Port},
	}
	for _, e := range ints {
		v := os.Getenv(e.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", e.name, err)
		}
		*e.dst = n
	}
	return nil
}

// Validate checks sizes, the write-back aggregate and the log settings.
func (c *AppConfig) Validate() error {
	if c.Grid.Rows < 1 || c.Grid.Cols < 1 {
		return fmt.Errorf("grid %dx%d: %w", c.Grid.Rows, c.Grid.Cols, xlgrid.ErrInvalidSize)
	}
	if _, err := xlgrid.ColumnLabel(c.Grid.Cols - 1); err != nil {
		return fmt.Errorf("grid cols: %w", err)
	}
	if _, err := xlgrid.ParseAggregate(c.Grid.WriteBack); err != nil {
		return fmt.Errorf("grid write_back: %w", err)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("log format %q: want text or json", c.Log.Format)
	}
	return nil
}

// Aggregate returns the parsed write-back aggregate, defaulting to sum.
func (c GridConfig) Aggregate() xlgrid.Aggregate {
	a, err := xlgrid.ParseAggregate(c.WriteBack)
	if err != nil {
		return xlgrid.AggregateSum
	}
	return a
}

// Logger builds a slog logger writing to w.
func (c LogConfig) Logger(w io.Writer) (*slog.Logger, error) {
	level, err := parseLevel(c.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

func parseLevel(s string) (slog.Level, error) {
	if s == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", s, err)
	}
	return level, nil
}
