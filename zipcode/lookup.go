// Package zipcode finds the zip codes near a coordinate.
package zipcode

import (
	"fmt"
	"math"
	"sort"

	"github.com/mmcloughlin/geohash"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	d "github.com/invertedv/zclean/df"
)

const (
	metersPerMile = 1609.344

	// DefaultRadius is the search radius, in miles, ByCoordinate uses unless told otherwise.
	DefaultRadius = 25.0

	// DefaultReturns caps the number of candidates ByCoordinate returns.
	DefaultReturns = 5

	// cells at this precision span 1.40625 degrees each way
	bucketPrecision = 3
	cellDegrees     = 1.40625
	milesPerDegree  = 69.09
)

// Record is a candidate zip code for a coordinate.
type Record struct {
	Zipcode   string
	Latitude  float64
	Longitude float64

	// Miles is the great-circle distance from the queried coordinate to the zip's centroid.
	Miles float64
}

// Lookup maps a coordinate, in decimal degrees, to candidate zip codes ordered nearest first.
type Lookup interface {
	ByCoordinate(lat, lng float64) ([]Record, error)
}

// Index is a Lookup over a table of zip code centroids.
type Index struct {
	radius  float64
	returns int

	zips    []string
	points  []orb.Point
	buckets map[string][]int
}

type IndexOpt func(ix *Index) error

// IndexRadius sets the search radius in miles.
func IndexRadius(miles float64) IndexOpt {
	return func(ix *Index) error {
		if miles <= 0 {
			return fmt.Errorf("radius must be positive, got %v", miles)
		}

		ix.radius = miles
		return nil
	}
}

// IndexReturns sets the maximum number of candidates returned.
func IndexReturns(n int) IndexOpt {
	return func(ix *Index) error {
		if n < 1 {
			return fmt.Errorf("returns must be at least 1, got %d", n)
		}

		ix.returns = n
		return nil
	}
}

// NewIndex builds an Index from centroids, which must have columns zipcode, latitude and longitude.
// Rows with a missing value are skipped.
func NewIndex(centroids *d.DF, opts ...IndexOpt) (*Index, error) {
	ix := &Index{radius: DefaultRadius, returns: DefaultReturns, buckets: make(map[string][]int)}
	for _, opt := range opts {
		if e := opt(ix); e != nil {
			return nil, e
		}
	}

	var zips, lats, lngs *d.Col
	if zips, lats, lngs = centroids.Column("zipcode"), centroids.Column("latitude"), centroids.Column("longitude"); zips == nil || lats == nil || lngs == nil {
		return nil, fmt.Errorf("zip centroids need zipcode, latitude and longitude columns, have %v", centroids.ColumnNames())
	}

	for row := 0; row < centroids.RowCount(); row++ {
		lat, okLat := lats.ElementFloat(row)
		lng, okLng := lngs.ElementFloat(row)
		zip := zips.Element(row)
		if !okLat || !okLng || zip == nil {
			continue
		}

		var (
			zs string
			ok bool
		)
		if zs, ok = d.ToString(zip); !ok {
			return nil, fmt.Errorf("row %d: cannot read zipcode %v", row, zip)
		}

		// integer-typed zips lose leading zeros when read
		for zips.DataType() == d.DTint && len(zs) < 5 {
			zs = "0" + zs
		}

		ix.add(zs, lat, lng)
	}

	if len(ix.zips) == 0 {
		return nil, fmt.Errorf("no zip centroids")
	}

	return ix, nil
}

// LoadIndex reads the centroid table from a CSV file.
func LoadIndex(fileName string, opts ...IndexOpt) (*Index, error) {
	var (
		f *d.Files
		e error
	)
	if f, e = d.NewFiles(d.FileFieldTypes(map[string]d.DataTypes{"zipcode": d.DTstring})); e != nil {
		return nil, e
	}

	var centroids *d.DF
	if centroids, e = f.Load(fileName); e != nil {
		return nil, e
	}

	return NewIndex(centroids, opts...)
}

func (ix *Index) add(zip string, lat, lng float64) {
	ind := len(ix.zips)
	ix.zips = append(ix.zips, zip)
	ix.points = append(ix.points, orb.Point{lng, lat})

	cell := geohash.EncodeWithPrecision(lat, lng, bucketPrecision)
	ix.buckets[cell] = append(ix.buckets[cell], ind)
}

func (ix *Index) Len() int {
	return len(ix.zips)
}

// ByCoordinate returns the zip codes whose centroids lie within the radius of (lat, lng), nearest first.
func (ix *Index) ByCoordinate(lat, lng float64) ([]Record, error) {
	if math.IsNaN(lat) || math.IsNaN(lng) || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, fmt.Errorf("invalid coordinate (%v, %v)", lat, lng)
	}

	var candidates []int
	if ix.bucketed(lat) {
		cell := geohash.EncodeWithPrecision(lat, lng, bucketPrecision)
		for _, c := range append([]string{cell}, geohash.Neighbors(cell)...) {
			candidates = append(candidates, ix.buckets[c]...)
		}
	}

	if candidates == nil {
		candidates = make([]int, len(ix.zips))
		for ind := range candidates {
			candidates[ind] = ind
		}
	}

	from := orb.Point{lng, lat}
	var out []Record
	for _, ind := range candidates {
		miles := geo.Distance(from, ix.points[ind]) / metersPerMile
		if miles > ix.radius {
			continue
		}

		out = append(out, Record{
			Zipcode:   ix.zips[ind],
			Latitude:  ix.points[ind].Lat(),
			Longitude: ix.points[ind].Lon(),
			Miles:     miles,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Miles == out[j].Miles {
			return out[i].Zipcode < out[j].Zipcode
		}

		return out[i].Miles < out[j].Miles
	})

	if len(out) > ix.returns {
		out = out[:ix.returns]
	}

	return out, nil
}

// bucketed is true if a cell and its neighbors hold every centroid within the radius of latitude lat.
func (ix *Index) bucketed(lat float64) bool {
	return ix.radius <= cellDegrees*milesPerDegree*math.Cos(lat*math.Pi/180)
}
