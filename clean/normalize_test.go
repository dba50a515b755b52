package clean

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	d "github.com/invertedv/zclean/df"
	"github.com/invertedv/zclean/zipcode"
)

func col(t *testing.T, name string, data any, dt d.DataTypes) *d.Col {
	c, e := d.NewCol(data, dt, d.ColName(name))
	require.Nil(t, e)

	return c
}

func table(t *testing.T, cols ...*d.Col) *d.DF {
	df, e := d.NewDF(cols...)
	require.Nil(t, e)

	return df
}

// fakeLookup answers with a zip made from the latitude, or nothing south of the equator.
type fakeLookup struct {
	calls int
}

func (f *fakeLookup) ByCoordinate(lat, lng float64) ([]zipcode.Record, error) {
	f.calls++
	if lat < 0 {
		return nil, nil
	}

	return []zipcode.Record{
		{Zipcode: fmt.Sprintf("9%04.0f", lat*100), Latitude: lat, Longitude: lng},
		{Zipcode: "00000", Latitude: lat, Longitude: lng, Miles: 20},
	}, nil
}

func TestDelinquencyYear(t *testing.T) {
	tests := []struct {
		in   float64
		year float64
		ok   bool
	}{
		{15, 2015, true},
		{5, 2005, true},
		{98, 1998, true},
		{10, 2010, true},
		{9, 2009, true},
		{0, 2000, true},
		{99, 1999, true},
		{20, 0, false},
		{-3, 0, false},
		{math.NaN(), 0, false},
	}

	for _, tt := range tests {
		year, ok := DelinquencyYear(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.year, year, tt.in)
	}
}

func TestExpandDelinquencyYears(t *testing.T) {
	df := table(t, col(t, TaxDelinquencyYear, []any{15, nil, 5, 98, 20}, d.DTint))
	require.Nil(t, ExpandDelinquencyYears(df))

	c := df.Column(TaxDelinquencyYear)
	assert.Equal(t, d.DTfloat, c.DataType())
	assert.Equal(t, []any{2015.0, nil, 2005.0, 1998.0, nil}, []any{c.Element(0), c.Element(1), c.Element(2), c.Element(3), c.Element(4)})

	assert.NotNil(t, ExpandDelinquencyYears(table(t, col(t, "x", []int{1}, d.DTint))))
	assert.NotNil(t, ExpandDelinquencyYears(table(t, col(t, TaxDelinquencyYear, []string{"15"}, d.DTstring))))
}

func TestRescaleCoordinates(t *testing.T) {
	df := table(t,
		col(t, Latitude, []any{34136312, nil}, d.DTint),
		col(t, Longitude, []float64{-118175032, -118500000}, d.DTfloat),
	)
	require.Nil(t, RescaleCoordinates(df))

	lat, lng := df.Column(Latitude), df.Column(Longitude)
	assert.Equal(t, d.DTfloat, lat.DataType())
	x, ok := lat.ElementFloat(0)
	assert.True(t, ok)
	assert.InDelta(t, 34.136312, x, 1e-12)
	assert.True(t, lat.IsNull(1))

	x, _ = lng.ElementFloat(1)
	assert.InDelta(t, -118.5, x, 1e-12)

	assert.NotNil(t, RescaleCoordinates(table(t, col(t, Latitude, []int{1}, d.DTint))))
}

func TestParseTransactionDates(t *testing.T) {
	df := table(t, col(t, TransactionDate, []string{"2016-01-01", "2017-09-25"}, d.DTstring))
	require.Nil(t, ParseTransactionDates(df))

	c := df.Column(TransactionDate)
	assert.Equal(t, d.DTdate, c.DataType())
	assert.Equal(t, time.Date(2017, 9, 25, 0, 0, 0, 0, time.UTC), c.Element(1))

	bad := []*d.DF{
		table(t, col(t, TransactionDate, []string{"2016-01-01", "01/02/2016"}, d.DTstring)),
		table(t, col(t, TransactionDate, []any{"2016-01-01", nil}, d.DTstring)),
		table(t, col(t, "date", []string{"2016-01-01"}, d.DTstring)),
	}
	for _, df := range bad {
		assert.NotNil(t, ParseTransactionDates(df))
	}
}

func TestFlag(t *testing.T) {
	tests := []struct {
		x    any
		flag bool
	}{
		{nil, false},
		{"True", true},
		{"true", true},
		{"false", false},
		{"", false},
		{"Y", true},
		{1.0, true},
		{0, false},
		{true, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.flag, Flag(tt.x), tt.x)
	}
}

func TestPoolTypeCode(t *testing.T) {
	assert.Equal(t, 10, PoolTypeCode(true, 0))
	assert.Equal(t, 7, PoolTypeCode(false, 3))
	assert.Equal(t, 2, PoolTypeCode(true, 1))
	assert.Equal(t, 0, PoolTypeCode(false, 0))
}

func TestPoolFields(t *testing.T) {
	df := table(t,
		col(t, PoolCount, []any{nil, 3, 1, nil}, d.DTint),
		col(t, HotTubOrSpa, []any{"true", nil, "true", nil}, d.DTstring),
	)

	require.Nil(t, FillPoolFields(df))
	require.Nil(t, DerivePoolTypes(df))

	assert.Equal(t, []string{PoolCount, HotTubOrSpa, PoolType}, df.ColumnNames())

	expect := [][]any{
		{0, True, 10},
		{3, False, 7},
		{1, True, 2},
		{0, False, 0},
	}
	for ind, row := range expect {
		assert.Equal(t, row, df.Row(ind))
	}

	assert.NotNil(t, FillPoolFields(table(t, col(t, PoolCount, []int{1}, d.DTint))))
}

func TestAttachZipcodes(t *testing.T) {
	lookup := &fakeLookup{}
	df := table(t,
		col(t, Latitude, []float64{34.1, 34.2}, d.DTfloat),
		col(t, Longitude, []float64{-118.1, -118.2}, d.DTfloat),
	)

	require.Nil(t, AttachZipcodes(df, lookup))
	c := df.Column(Zipcode)
	assert.Equal(t, d.DTstring, c.DataType())
	assert.Equal(t, "93410", c.Element(0))
	assert.Equal(t, "93420", c.Element(1))
	assert.Equal(t, 2, lookup.calls)

	south := table(t,
		col(t, Latitude, []float64{-1}, d.DTfloat),
		col(t, Longitude, []float64{0}, d.DTfloat),
	)
	assert.NotNil(t, AttachZipcodes(south, lookup))

	missing := table(t,
		col(t, Latitude, []any{nil}, d.DTfloat),
		col(t, Longitude, []float64{0}, d.DTfloat),
	)
	assert.NotNil(t, AttachZipcodes(missing, lookup))
}
