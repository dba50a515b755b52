package df

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewVector(t *testing.T) {
	tests := []struct {
		name  string
		data  any
		dt    DataTypes
		len   int
		nulls int
		err   bool
	}{
		{"floats", []float64{1, 2, 3}, DTfloat, 3, 0, false},
		{"ints as floats", []int{1, 2}, DTfloat, 2, 0, false},
		{"any with nil", []any{1, nil, 3}, DTint, 3, 1, false},
		{"single string", "x", DTstring, 1, 0, false},
		{"bad string to float", []string{"a"}, DTfloat, 0, 0, true},
		{"unsupported", struct{}{}, DTfloat, 0, 0, true},
		{"to any", []int{1}, DTany, 0, 0, true},
	}

	for _, tt := range tests {
		v, e := NewVector(tt.data, tt.dt)
		if tt.err {
			assert.NotNil(t, e, tt.name)
			continue
		}

		assert.Nil(t, e, tt.name)
		assert.Equal(t, tt.dt, v.VectorType(), tt.name)
		assert.Equal(t, tt.len, v.Len(), tt.name)
		assert.Equal(t, tt.nulls, v.NullCount(), tt.name)
	}
}

func TestVectorElement(t *testing.T) {
	v, e := NewVector([]any{1.5, nil, "2.5"}, DTfloat)
	assert.Nil(t, e)

	assert.Equal(t, 1.5, v.Element(0))
	assert.Nil(t, v.Element(1))
	assert.True(t, v.IsNull(1))

	x, ok := v.ElementFloat(2)
	assert.True(t, ok)
	assert.Equal(t, 2.5, x)

	_, ok = v.ElementFloat(1)
	assert.False(t, ok)

	assert.Panics(t, func() { v.Element(3) })
	assert.Panics(t, func() { v.SetInt(1, 0) })
}

func TestVectorFill(t *testing.T) {
	v, e := NewVector([]any{1.5, nil, nil}, DTfloat)
	assert.Nil(t, e)

	assert.NotNil(t, v.Fill("abc"))
	assert.Equal(t, 2, v.NullCount())

	assert.Nil(t, v.Fill(2))
	assert.Equal(t, 0, v.NullCount())
	assert.Equal(t, 2.0, v.Element(1))
	assert.Equal(t, 1.5, v.Element(0))

	s, e := NewVector([]any{"a", nil}, DTstring)
	assert.Nil(t, e)
	assert.Nil(t, s.Fill(5))
	assert.Equal(t, "5", s.Element(1))
}

func TestVectorPresent(t *testing.T) {
	v, _ := NewVector([]any{3, nil, 1}, DTint)
	x, e := v.Present()
	assert.Nil(t, e)
	assert.Equal(t, []float64{3, 1}, x)

	s, _ := NewVector([]string{"a"}, DTstring)
	_, e = s.Present()
	assert.NotNil(t, e)
}

func TestVectorCoerce(t *testing.T) {
	i, _ := NewVector([]any{1, nil, 3}, DTint)

	s, e := i.Coerce(DTstring)
	assert.Nil(t, e)
	assert.Equal(t, "1", s.Element(0))
	assert.True(t, s.IsNull(1))

	f, e := i.Coerce(DTfloat)
	assert.Nil(t, e)
	assert.Equal(t, 3.0, f.Element(2))

	half, _ := NewVector([]float64{1.5}, DTfloat)
	_, e = half.Coerce(DTint)
	assert.NotNil(t, e)

	whole, _ := NewVector([]float64{2}, DTfloat)
	w, e := whole.Coerce(DTint)
	assert.Nil(t, e)
	assert.Equal(t, 2, w.Element(0))

	dts, _ := NewVector([]string{"2017-01-02"}, DTstring)
	dt, e := dts.Coerce(DTdate)
	assert.Nil(t, e)
	assert.Equal(t, time.Date(2017, 1, 2, 0, 0, 0, 0, time.UTC), dt.Element(0))

	_, e = i.Coerce(DTunknown)
	assert.NotNil(t, e)
}

func TestVectorReshape(t *testing.T) {
	v, _ := NewVector([]any{"a", nil, "c"}, DTstring)

	tk := v.Take([]int{2, -1, 1, 0})
	assert.Equal(t, 4, tk.Len())
	assert.Equal(t, "c", tk.Element(0))
	assert.True(t, tk.IsNull(1))
	assert.True(t, tk.IsNull(2))
	assert.Equal(t, "a", tk.Element(3))

	w, e := v.Where([]bool{false, true, true})
	assert.Nil(t, e)
	assert.Equal(t, 2, w.Len())
	assert.True(t, w.IsNull(0))

	_, e = v.Where([]bool{true})
	assert.NotNil(t, e)

	cp := v.Copy()
	cp.SetString("z", 0)
	assert.Equal(t, "a", v.Element(0))

	add, _ := NewVector([]string{"d"}, DTstring)
	assert.Nil(t, v.AppendVector(add))
	assert.Equal(t, 4, v.Len())
	assert.True(t, v.IsNull(1))
	assert.False(t, v.IsNull(3))

	ints, _ := NewVector([]int{1}, DTint)
	assert.NotNil(t, v.AppendVector(ints))
}

func TestMakeNullVector(t *testing.T) {
	v := MakeNullVector(DTint, 3)
	assert.Equal(t, 3, v.NullCount())

	v.SetInt(4, 1)
	assert.Equal(t, 2, v.NullCount())
	assert.Equal(t, 4, v.Element(1))
}
