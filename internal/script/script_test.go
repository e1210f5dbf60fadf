package script

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajack/xlgrid"
)

const quadrant = `
# fill a 2x2 block
edit A1 1
edit B1 2
edit A2 3
edit B2 4

down A1
enter B1
enter B2
up
`

func TestParse(t *testing.T) {
	steps, err := Parse(strings.NewReader(quadrant))
	require.NoError(t, err)
	require.Len(t, steps, 8)

	assert.Equal(t, Step{Line: 3, Event: xlgrid.Input(xlgrid.At(0, 0), "1")}, steps[0])
	assert.Equal(t, Step{Line: 8, Event: xlgrid.Down(xlgrid.At(0, 0))}, steps[4])
	assert.Equal(t, Step{Line: 10, Event: xlgrid.Enter(xlgrid.At(1, 1))}, steps[6])
	assert.Equal(t, Step{Line: 11, Event: xlgrid.Up()}, steps[7])
}

func TestParse_EditKeepsText(t *testing.T) {
	steps, err := Parse(strings.NewReader("edit C3   hello  world\nedit $A$1\n"))
	require.NoError(t, err)
	require.Len(t, steps, 2)
	assert.Equal(t, xlgrid.Input(xlgrid.At(2, 2), "hello  world"), steps[0].Event)
	assert.Equal(t, xlgrid.Input(xlgrid.At(0, 0), ""), steps[1].Event)
}

func TestParse_WireNames(t *testing.T) {
	steps, err := Parse(strings.NewReader("pointerDown A1\npointerEnter B2\npointerUp\ntextInput C1 7\n"))
	require.NoError(t, err)
	kinds := make([]xlgrid.EventKind, len(steps))
	for i, s := range steps {
		kinds[i] = s.Event.Kind
	}
	assert.Equal(t, []xlgrid.EventKind{xlgrid.PointerDown, xlgrid.PointerEnter, xlgrid.PointerUp, xlgrid.TextInput}, kinds)
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]string{
		"jump A1":  "line 2: unknown command",
		"down":     "line 2: down needs a cell reference",
		"enter 12": "line 2: bad cell reference",
		"up A1":    "line 2: up takes no arguments",
	}
	for line, want := range cases {
		_, err := Parse(strings.NewReader("# header\n" + line + "\n"))
		require.Error(t, err, line)
		assert.Contains(t, err.Error(), want, line)

		var se *SyntaxError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, 2, se.Line)
	}

	_, err := Parse(strings.NewReader("jump A1"))
	assert.ErrorIs(t, err, xlgrid.ErrUnknownEvent)
}

func TestReplay(t *testing.T) {
	c, err := xlgrid.NewController(2, 2)
	require.NoError(t, err)

	res, err := Replay(c, strings.NewReader(quadrant+"down A1\nenter B2\nup\n"))
	require.NoError(t, err)
	assert.Equal(t, 11, res.Steps)
	require.Len(t, res.Commits, 2)
	assert.Equal(t, "10.00", res.Commits[0].Value)
	assert.Equal(t, "16.00", res.Commits[1].Value)

	v, err := c.Get(xlgrid.At(1, 1))
	require.NoError(t, err)
	assert.Equal(t, "16.00", v)
}

func TestReplay_SkipsStrayRelease(t *testing.T) {
	c, err := xlgrid.NewController(1, 2)
	require.NoError(t, err)

	res, err := Replay(c, strings.NewReader("up\nedit A1 5\ndown A1\nenter B1\nup\nup\n"))
	require.NoError(t, err)
	assert.Equal(t, 6, res.Steps)
	require.Len(t, res.Commits, 1)
	assert.Equal(t, "5.00", res.Commits[0].Value)
}

func TestReplay_ReportsFailingLine(t *testing.T) {
	c, err := xlgrid.NewController(2, 2)
	require.NoError(t, err)

	res, err := Replay(c, strings.NewReader("edit A1 1\n\nedit C1 2\n"))
	assert.ErrorIs(t, err, xlgrid.ErrOutOfRange)
	assert.Contains(t, err.Error(), "line 3")
	assert.Equal(t, 1, res.Steps)

	_, err = Replay(c, strings.NewReader("down A1\nenter A5\nup\n"))
	assert.ErrorIs(t, err, xlgrid.ErrOutOfRange)
	assert.Contains(t, err.Error(), "line 2")
}

func TestReplay_EnterFarOutsideGrid(t *testing.T) {
	c, err := xlgrid.NewController(2, 2)
	require.NoError(t, err)

	res, err := Replay(c, strings.NewReader("down A1\n# last cell of a sheet\nenter XFD1048576\nup\n"))
	assert.ErrorIs(t, err, xlgrid.ErrOutOfRange)
	assert.Contains(t, err.Error(), "line 3")
	assert.Equal(t, 1, res.Steps)
	assert.Equal(t, 1, c.State().Selection().Len())
}
