package xlgrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestColumnLabel(t *testing.T) {
	cases := map[int]string{
		0:   "A",
		1:   "B",
		25:  "Z",
		26:  "AA",
		27:  "AB",
		51:  "AZ",
		52:  "BA",
		701: "ZZ",
		702: "AAA",
	}
	for index, want := range cases {
		got, err := ColumnLabel(index)
		require.NoError(t, err, "index %d", index)
		assert.Equal(t, want, got, "index %d", index)
	}
}

func TestColumnLabel_OutOfRange(t *testing.T) {
	_, err := ColumnLabel(-1)
	assert.ErrorIs(t, err, ErrLabelRange)

	_, err = ColumnLabel(excelize.MaxColumns)
	assert.ErrorIs(t, err, ErrLabelRange)

	last, err := ColumnLabel(excelize.MaxColumns - 1)
	require.NoError(t, err)
	assert.Equal(t, "XFD", last)
}

func TestColumnLabel_OnlyLetters(t *testing.T) {
	for i := 0; i < 1000; i++ {
		l, err := ColumnLabel(i)
		require.NoError(t, err)
		for _, r := range l {
			assert.True(t, r >= 'A' && r <= 'Z', "label %q for %d", l, i)
		}
	}
}

func TestColumnLabels(t *testing.T) {
	labels, err := ColumnLabels(28)
	require.NoError(t, err)
	assert.Len(t, labels, 28)
	assert.Equal(t, "A", labels[0])
	assert.Equal(t, "Z", labels[25])
	assert.Equal(t, "AB", labels[27])
}

func TestParsePosition(t *testing.T) {
	cases := map[string]Position{
		"A1":    At(0, 0),
		"B3":    At(2, 1),
		"$C$10": At(9, 2),
		" AA2 ": At(1, 26),
		"XFD1":  At(0, 16383),
	}
	for in, want := range cases {
		got, err := ParsePosition(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "   ", "12", "A", "not a cell"} {
		_, err := ParsePosition(in)
		assert.Error(t, err, in)
	}
}

func TestPosition_String(t *testing.T) {
	assert.Equal(t, "A1", At(0, 0).String())
	assert.Equal(t, "AB3", At(2, 27).String())
	assert.Equal(t, "(-1,0)", At(-1, 0).String())
	assert.Equal(t, "(0,-2)", At(0, -2).String())
}
