package xlgrid

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGrid_StartsEmpty(t *testing.T) {
	g, err := NewGrid(3, 4)
	require.NoError(t, err)
	assert.Equal(t, 3, g.Rows())
	assert.Equal(t, 4, g.Cols())

	for r := 0; r < 3; r++ {
		for c := 0; c < 4; c++ {
			v, err := g.Get(At(r, c))
			require.NoError(t, err)
			assert.Empty(t, v)
		}
	}
}

func TestNewGrid_InvalidSize(t *testing.T) {
	for _, dims := range [][2]int{{0, 1}, {1, 0}, {-1, 5}} {
		_, err := NewGrid(dims[0], dims[1])
		assert.ErrorIs(t, err, ErrInvalidSize, "dims %v", dims)
	}
}

func TestGrid_GetAfterSet(t *testing.T) {
	g, err := NewGrid(4, 4)
	require.NoError(t, err)

	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			p := At(r, c)
			text := p.String() + " value"
			require.NoError(t, g.Set(p, text))
			got, err := g.Get(p)
			require.NoError(t, err)
			assert.Equal(t, text, got)
		}
	}
}

func TestGrid_SetStoresTextVerbatim(t *testing.T) {
	g, err := NewGrid(1, 1)
	require.NoError(t, err)

	for _, text := range []string{"", "  12 ", "abc", "1e3", "=SUM(A1:B2)"} {
		require.NoError(t, g.Set(At(0, 0), text))
		got, _ := g.Get(At(0, 0))
		assert.Equal(t, text, got)
	}
}

func TestGrid_OutOfRange(t *testing.T) {
	g, err := NewGrid(2, 3)
	require.NoError(t, err)

	for _, p := range []Position{At(-1, 0), At(0, -1), At(2, 0), At(0, 3), At(5, 5)} {
		_, err := g.Get(p)
		assert.ErrorIs(t, err, ErrOutOfRange, "get %v", p)

		err = g.Set(p, "x")
		assert.ErrorIs(t, err, ErrOutOfRange, "set %v", p)

		var rangeErr *RangeError
		require.True(t, errors.As(err, &rangeErr))
		assert.Equal(t, p, rangeErr.Pos)
		assert.Equal(t, 2, rangeErr.Rows)
		assert.Equal(t, 3, rangeErr.Cols)
	}
	assert.False(t, g.InBounds(At(2, 2)))
	assert.True(t, g.InBounds(At(1, 2)))
}

func TestGrid_CloneIsIndependent(t *testing.T) {
	g, err := NewGrid(2, 2)
	require.NoError(t, err)
	require.NoError(t, g.Set(At(0, 0), "1"))

	clone := g.Clone()
	require.NoError(t, clone.Set(At(0, 0), "2"))

	v, _ := g.Get(At(0, 0))
	assert.Equal(t, "1", v)
	v, _ = clone.Get(At(0, 0))
	assert.Equal(t, "2", v)
}

func TestGrid_ValuesIsACopy(t *testing.T) {
	g, err := NewGrid(1, 2)
	require.NoError(t, err)
	require.NoError(t, g.Set(At(0, 1), "x"))

	values := g.Values()
	assert.Equal(t, [][]string{{"", "x"}}, values)

	values[0][1] = "changed"
	v, _ := g.Get(At(0, 1))
	assert.Equal(t, "x", v)
}
