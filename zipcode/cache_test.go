package zipcode

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type countingLookup struct {
	calls int
}

func (c *countingLookup) ByCoordinate(lat, lng float64) ([]Record, error) {
	c.calls++
	if lat > 90 {
		return nil, fmt.Errorf("bad latitude")
	}

	return []Record{{Zipcode: fmt.Sprintf("%05.0f", lat), Latitude: lat, Longitude: lng}}, nil
}

func TestCache(t *testing.T) {
	inner := &countingLookup{}
	c := NewCache(inner)

	for _, lat := range []float64{10, 20, 10, 10, 20} {
		recs, e := c.ByCoordinate(lat, -100)
		assert.Nil(t, e)
		assert.Equal(t, lat, recs[0].Latitude)
	}

	hits, misses := c.Stats()
	assert.Equal(t, 3, hits)
	assert.Equal(t, 2, misses)
	assert.Equal(t, 2, inner.calls)

	// errors are not cached
	_, e := c.ByCoordinate(100, 0)
	assert.NotNil(t, e)
	_, e = c.ByCoordinate(100, 0)
	assert.NotNil(t, e)
	assert.Equal(t, 4, inner.calls)
}
