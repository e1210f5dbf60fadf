package xlgrid

import (
	"fmt"
	"strings"
)

// EventKind identifies an input event from the presentation layer.
type EventKind int

const (
	PointerDown EventKind = iota + 1
	PointerEnter
	PointerUp
	TextInput
)

// String returns the event's wire name, e.g. "pointerDown".
func (k EventKind) String() string {
	switch k {
	case PointerDown:
		return "pointerDown"
	case PointerEnter:
		return "pointerEnter"
	case PointerUp:
		return "pointerUp"
	case TextInput:
		return "textInput"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// ParseEventKind maps a wire name to its EventKind. Matching ignores case.
func ParseEventKind(name string) (EventKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "pointerdown":
		return PointerDown, nil
	case "pointerenter":
		return PointerEnter, nil
	case "pointerup":
		return PointerUp, nil
	case "textinput":
		return TextInput, nil
	}
	return 0, fmt.Errorf("%q: %w", name, ErrUnknownEvent)
}

// Event is one input from the presentation layer. Pos is ignored for
// PointerUp; Text is used only by TextInput.
type Event struct {
	Kind EventKind
	Pos  Position
	Text string
}

// Down returns a PointerDown event at p.
func Down(p Position) Event { return Event{Kind: PointerDown, Pos: p} }

// Enter returns a PointerEnter event at p.
func Enter(p Position) Event { return Event{Kind: PointerEnter, Pos: p} }

// Up returns a PointerUp event.
func Up() Event { return Event{Kind: PointerUp} }

// Input returns a TextInput event setting the cell at p to text.
func Input(p Position, text string) Event { return Event{Kind: TextInput, Pos: p, Text: text} }

// Handle applies one event. For PointerUp it returns the commit produced by
// the end of the drag; other events return a nil commit.
func (c *Controller) Handle(ev Event) (*Commit, error) {
	switch ev.Kind {
	case PointerDown:
		return nil, c.Begin(ev.Pos)
	case PointerEnter:
		return nil, c.Extend(ev.Pos)
	case PointerUp:
		commit, err := c.End()
		if err != nil {
			return nil, err
		}
		return &commit, nil
	case TextInput:
		return nil, c.Edit(ev.Pos, ev.Text)
	default:
		return nil, fmt.Errorf("handle %s: %w", ev.Kind, ErrUnknownEvent)
	}
}

// Apply handles events in order and stops at the first error, which is
// returned with the index of the failing event.
func (c *Controller) Apply(events ...Event) error {
	for i, ev := range events {
		if _, err := c.Handle(ev); err != nil {
			return fmt.Errorf("event %d (%s): %w", i, ev.Kind, err)
		}
	}
	return nil
}
