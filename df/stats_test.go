package df

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStats(t *testing.T) {
	tests := []struct {
		name   string
		data   []any
		median float64
		mean   float64
		mode   float64
	}{
		{"odd", []any{3, nil, 1, 2}, 2, 2, 1},
		{"even", []any{1, 2, 3, 4}, 2.5, 2.5, 1},
		{"tied modes", []any{3, 1, 3, 1, 2}, 2, 2, 1},
		{"single mode", []any{7, 5, 7, nil, 9}, 7, 7, 7},
	}

	for _, tt := range tests {
		col := makeCol(t, "x", tt.data, DTfloat)

		med, e := col.Median()
		assert.Nil(t, e, tt.name)
		assert.Equal(t, tt.median, med, tt.name)

		mean, e := col.Mean()
		assert.Nil(t, e, tt.name)
		assert.InDelta(t, tt.mean, mean, 1e-12, tt.name)

		mode, e := col.Mode()
		assert.Nil(t, e, tt.name)
		assert.Equal(t, tt.mode, mode, tt.name)
	}
}

func TestStatsNoValues(t *testing.T) {
	empty, e := NewCol(MakeNullVector(DTfloat, 3), DTfloat, ColName("empty"))
	assert.Nil(t, e)

	_, e = empty.Median()
	assert.NotNil(t, e)
	_, e = empty.Mean()
	assert.NotNil(t, e)
	_, e = empty.Mode()
	assert.NotNil(t, e)

	str := makeCol(t, "s", []string{"a"}, DTstring)
	_, e = str.Median()
	assert.NotNil(t, e)
}

func TestMissingShare(t *testing.T) {
	df := makeDF(t)
	names, share := df.MissingShare()
	assert.Equal(t, []string{"x", "y", "s"}, names)
	assert.InDeltaSlice(t, []float64{0, 1.0 / 3, 0}, share, 1e-12)

	assert.Contains(t, df.Column("y").String(), "missing: 1")
}
