package zipcode

// Cache memoizes a Lookup by exact coordinate, so repeated coordinates cost one lookup.
type Cache struct {
	lookup Lookup
	seen   map[[2]float64][]Record

	hits, misses int
}

func NewCache(lookup Lookup) *Cache {
	return &Cache{lookup: lookup, seen: make(map[[2]float64][]Record)}
}

func (c *Cache) ByCoordinate(lat, lng float64) ([]Record, error) {
	key := [2]float64{lat, lng}
	if recs, ok := c.seen[key]; ok {
		c.hits++
		return recs, nil
	}

	c.misses++
	recs, e := c.lookup.ByCoordinate(lat, lng)
	if e != nil {
		return nil, e
	}

	c.seen[key] = recs

	return recs, nil
}

// Stats returns the number of lookups answered from the cache and the number passed through.
func (c *Cache) Stats() (hits, misses int) {
	return c.hits, c.misses
}
