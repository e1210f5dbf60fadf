// Package script parses line-oriented gesture scripts and replays them
// against a controller.
//
// Each non-blank line is one event:
//
//	down B2        pointer pressed on B2
//	enter C3       pointer moved over C3
//	up             pointer released
//	edit A1 1000   set A1 to "1000" (the rest of the line, verbatim)
//
// Lines starting with '#' are comments. The event wire names
// (pointerDown, pointerEnter, pointerUp, textInput) are accepted as well.
package script

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/javajack/xlgrid"
)

// Step is one parsed script line.
type Step struct {
	Line  int
	Event xlgrid.Event
}

// SyntaxError reports a malformed script line.
type SyntaxError struct {
	Line int
	Msg  string
	Err  error
}

func (e *SyntaxError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("line %d: %s: %v", e.Line, e.Msg, e.Err)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// Parse reads every step from r.
func Parse(r io.Reader) ([]Step, error) {
	var steps []Step
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ev, err := parseLine(n, line)
		if err != nil {
			return nil, err
		}
		steps = append(steps, Step{Line: n, Event: ev})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return steps, nil
}

func parseLine(n int, line string) (xlgrid.Event, error) {
	verb, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimLeft(rest, " \t")

	kind, err := kindOf(verb)
	if err != nil {
		return xlgrid.Event{}, &SyntaxError{Line: n, Msg: fmt.Sprintf("unknown command %q", verb), Err: err}
	}
	if kind == xlgrid.PointerUp {
		if rest != "" {
			return xlgrid.Event{}, &SyntaxError{Line: n, Msg: "up takes no arguments"}
		}
		return xlgrid.Up(), nil
	}

	ref, text, _ := strings.Cut(rest, " ")
	if ref == "" {
		return xlgrid.Event{}, &SyntaxError{Line: n, Msg: verb + " needs a cell reference"}
	}
	pos, err := xlgrid.ParsePosition(ref)
	if err != nil {
		return xlgrid.Event{}, &SyntaxError{Line: n, Msg: "bad cell reference", Err: err}
	}

	switch kind {
	case xlgrid.PointerDown:
		return xlgrid.Down(pos), nil
	case xlgrid.PointerEnter:
		return xlgrid.Enter(pos), nil
	default:
		return xlgrid.Input(pos, strings.TrimLeft(text, " \t")), nil
	}
}

func kindOf(verb string) (xlgrid.EventKind, error) {
	switch strings.ToLower(verb) {
	case "down":
		return xlgrid.PointerDown, nil
	case "enter", "move":
		return xlgrid.PointerEnter, nil
	case "up":
		return xlgrid.PointerUp, nil
	case "edit", "set":
		return xlgrid.TextInput, nil
	}
	return xlgrid.ParseEventKind(verb)
}

// Result collects what a replay produced.
type Result struct {
	Commits []xlgrid.Commit
	Steps   int
}

// Run applies steps to c in order, stopping at the first failing step.
// A release while idle is skipped so that scripts may end a gesture twice.
func Run(c *xlgrid.Controller, steps []Step) (Result, error) {
	var res Result
	for _, st := range steps {
		commit, err := c.Handle(st.Event)
		switch {
		case errors.Is(err, xlgrid.ErrNotDragging):
		case err != nil:
			return res, fmt.Errorf("line %d: %w", st.Line, err)
		case commit != nil:
			res.Commits = append(res.Commits, *commit)
		}
		res.Steps++
	}
	return res, nil
}

// Replay parses r and runs it against c.
func Replay(c *xlgrid.Controller, r io.Reader) (Result, error) {
	steps, err := Parse(r)
	if err != nil {
		return Result{}, err
	}
	return Run(c, steps)
}
