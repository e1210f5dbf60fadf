package xlgrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_HandleEventStream(t *testing.T) {
	c, err := NewController(2, 2)
	require.NoError(t, err)

	events := []Event{
		Input(At(0, 0), "1"),
		Input(At(0, 1), "2"),
		Input(At(1, 0), "3"),
		Input(At(1, 1), "4"),
		Down(At(0, 0)),
		Enter(At(0, 1)),
		Enter(At(1, 1)),
	}
	for _, ev := range events {
		commit, err := c.Handle(ev)
		require.NoError(t, err, ev.Kind.String())
		assert.Nil(t, commit)
	}

	commit, err := c.Handle(Up())
	require.NoError(t, err)
	require.NotNil(t, commit)
	assert.Equal(t, "10.00", commit.Value)
	assert.Equal(t, "D2 = sum(A1:B2) = 10.00", Commit{Sink: At(1, 3), Range: commit.Range, Aggregate: AggregateSum, Value: "10.00"}.String())
}

func TestController_HandleErrors(t *testing.T) {
	c, err := NewController(1, 1)
	require.NoError(t, err)

	_, err = c.Handle(Up())
	assert.ErrorIs(t, err, ErrNotDragging)

	_, err = c.Handle(Input(At(1, 0), "x"))
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = c.Handle(Down(At(0, 1)))
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.Equal(t, Idle, c.DragState())

	require.NoError(t, c.Apply(Down(At(0, 0))))
	_, err = c.Handle(Enter(At(1048576, 1048576)))
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.Equal(t, 1, c.State().Selection().Len())

	_, err = c.Handle(Event{Kind: EventKind(99)})
	assert.ErrorIs(t, err, ErrUnknownEvent)
}

func TestController_Apply(t *testing.T) {
	c, err := NewController(1, 3)
	require.NoError(t, err)

	err = c.Apply(
		Input(At(0, 0), "1000"),
		Input(At(0, 1), "5"),
		Input(At(0, 2), "2"),
		Down(At(0, 0)),
		Enter(At(0, 2)),
	)
	require.NoError(t, err)
	assert.Equal(t, "100.00", c.Summary().SimpleInterest)
	assert.Equal(t, "102.50", c.Summary().CompoundInterest)

	err = c.Apply(Up(), Up())
	assert.ErrorIs(t, err, ErrNotDragging)
	assert.Contains(t, err.Error(), "event 1 (pointerUp)")
}

func TestParseEventKind(t *testing.T) {
	for _, k := range []EventKind{PointerDown, PointerEnter, PointerUp, TextInput} {
		got, err := ParseEventKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	got, err := ParseEventKind("POINTERUP")
	require.NoError(t, err)
	assert.Equal(t, PointerUp, got)

	_, err = ParseEventKind("click")
	assert.ErrorIs(t, err, ErrUnknownEvent)
}
