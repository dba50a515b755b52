package df

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatFloat(t *testing.T) {
	tests := map[float64]string{
		1:          "1.0",
		-3:         "-3.0",
		2.5:        "2.5",
		34.136312:  "34.136312",
		1e21:       "1000000000000000000000.0",
		math.NaN(): "NaN",
	}

	for x, s := range tests {
		assert.Equal(t, s, formatFloat(x))
	}
}

func TestConversions(t *testing.T) {
	f, ok := ToFloat("3.5")
	assert.True(t, ok)
	assert.Equal(t, 3.5, f)

	f, ok = ToFloat(int32(4))
	assert.True(t, ok)
	assert.Equal(t, 4.0, f)

	_, ok = ToFloat("x")
	assert.False(t, ok)

	_, ok = toInt(2.5)
	assert.False(t, ok)

	i, ok := toInt(int64(7))
	assert.True(t, ok)
	assert.Equal(t, 7, i)

	s, ok := ToString(2.0)
	assert.True(t, ok)
	assert.Equal(t, "2.0", s)

	_, ok = ToString(nil)
	assert.False(t, ok)

	assert.Equal(t, DTfloat, DTFromString("DTfloat"))
	assert.Equal(t, DTunknown, DTFromString("float"))
	assert.Equal(t, DTint, WhatAmI([]int{1}))
	assert.Equal(t, DTunknown, WhatAmI(true))

	assert.Equal(t, DTfloat, promote(DTint, DTfloat))
	assert.Equal(t, DTstring, promote(DTint, DTdate))
	assert.Equal(t, DTdate, promote(DTdate, DTdate))
}

func TestMissingPlot(t *testing.T) {
	p, e := MissingPlot(makeDF(t))
	assert.Nil(t, e)
	assert.Len(t, p.Fig.Data, 1)

	fileName := filepath.Join(t.TempDir(), "missing.html")
	assert.Nil(t, p.Save(fileName))

	_, e = os.Stat(fileName)
	assert.Nil(t, e)

	assert.NotNil(t, p.Bar([]string{"a"}, nil, "bad"))
}
