package clean

import (
	"fmt"
	"strconv"
	"time"

	d "github.com/invertedv/zclean/df"
	"github.com/invertedv/zclean/zipcode"
)

const (
	coordinateScale = 1e6
	dateLayout      = "2006-01-02"
)

// Normalize rewrites the raw fields of t in place and adds PoolType and Zipcode.
func Normalize(t *d.DF, lookup zipcode.Lookup) error {
	steps := []struct {
		name string
		fn   func(t *d.DF) error
	}{
		{"coordinates", RescaleCoordinates},
		{TaxDelinquencyYear, ExpandDelinquencyYears},
		{TransactionDate, ParseTransactionDates},
		{"pool fields", FillPoolFields},
		{PoolType, DerivePoolTypes},
		{Zipcode, func(t *d.DF) error { return AttachZipcodes(t, lookup) }},
	}

	for _, step := range steps {
		if e := step.fn(t); e != nil {
			return fmt.Errorf("normalizing %s: %w", step.name, e)
		}
	}

	return nil
}

// RescaleCoordinates converts Latitude and Longitude from millionths of a degree to degrees.
func RescaleCoordinates(t *d.DF) error {
	for _, nm := range []string{Latitude, Longitude} {
		var col *d.Col
		if col = t.Column(nm); col == nil {
			return fmt.Errorf("missing column %s", nm)
		}

		var (
			v *d.Vector
			e error
		)
		if v, e = col.Vector.Coerce(d.DTfloat); e != nil {
			return fmt.Errorf("column %s: %w", nm, e)
		}

		xs, _ := v.AsFloat()
		for ind := range xs {
			if !v.IsNull(ind) {
				xs[ind] /= coordinateScale
			}
		}

		if e = col.Replace(v); e != nil {
			return e
		}
	}

	return nil
}

// DelinquencyYear expands an abbreviated year. The shortest decimal form of x is prefixed with "20" if
// 9 < x < 20, with "200" if x <= 9 and with "19" if x > 20, then read back. ok is false for x == 20, NaN
// or a prefixed value that is not a number.
func DelinquencyYear(x float64) (year float64, ok bool) {
	var prefix string
	switch {
	case x > 9 && x < 20:
		prefix = "20"
	case x <= 9:
		prefix = "200"
	case x > 20:
		prefix = "19"
	default:
		return 0, false
	}

	var e error
	if year, e = strconv.ParseFloat(prefix+strconv.FormatFloat(x, 'f', -1, 64), 64); e != nil {
		return 0, false
	}

	return year, true
}

// ExpandDelinquencyYears applies DelinquencyYear to TaxDelinquencyYear. The result is a float column.
func ExpandDelinquencyYears(t *d.DF) error {
	var col *d.Col
	if col = t.Column(TaxDelinquencyYear); col == nil {
		return fmt.Errorf("missing column %s", TaxDelinquencyYear)
	}

	if !col.DataType().IsNumeric() {
		return fmt.Errorf("column %s has type %s", TaxDelinquencyYear, col.DataType())
	}

	v := d.MakeVector(d.DTfloat, col.Len())
	for ind := 0; ind < col.Len(); ind++ {
		x, present := col.ElementFloat(ind)
		year, ok := DelinquencyYear(x)
		if !present || !ok {
			v.SetNull(ind)
			continue
		}

		v.SetFloat(year, ind)
	}

	return col.Replace(v)
}

// ParseTransactionDates converts TransactionDate to dates. Every value must be present and in
// YYYY-MM-DD form.
func ParseTransactionDates(t *d.DF) error {
	var col *d.Col
	if col = t.Column(TransactionDate); col == nil {
		return fmt.Errorf("missing column %s", TransactionDate)
	}

	// database sources already deliver dates
	if col.DataType() == d.DTdate && col.NullCount() == 0 {
		return nil
	}

	v := d.MakeVector(d.DTdate, col.Len())
	for ind := 0; ind < col.Len(); ind++ {
		x := col.Element(ind)
		if x == nil {
			return fmt.Errorf("row %d: missing %s", ind, TransactionDate)
		}

		if dt, ok := x.(time.Time); ok {
			v.SetDate(dt, ind)
			continue
		}

		s, _ := d.ToString(x)
		dt, e := time.Parse(dateLayout, s)
		if e != nil {
			return fmt.Errorf("row %d: %w", ind, e)
		}

		v.SetDate(dt, ind)
	}

	return col.Replace(v)
}

// FillPoolFields sets missing PoolCount to 0 and rewrites HotTubOrSpa as True/False, missing being False.
func FillPoolFields(t *d.DF) error {
	var pools, tubs *d.Col
	if pools, tubs = t.Column(PoolCount), t.Column(HotTubOrSpa); pools == nil || tubs == nil {
		return fmt.Errorf("need columns %s and %s", PoolCount, HotTubOrSpa)
	}

	if e := pools.Fill(0); e != nil {
		return e
	}

	flags := make([]string, tubs.Len())
	for ind := range flags {
		flags[ind] = boolString(Flag(tubs.Element(ind)))
	}

	var (
		col *d.Col
		e   error
	)
	if col, e = d.NewCol(flags, d.DTstring, d.ColName(HotTubOrSpa)); e != nil {
		return e
	}

	return t.AppendColumn(col, true)
}

// Flag reads x as a boolean. Strings are parsed with strconv.ParseBool; any other non-empty string is
// true. Numbers are true if non-zero. nil is false.
func Flag(x any) bool {
	switch v := x.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		if b, e := strconv.ParseBool(v); e == nil {
			return b
		}

		return v != ""
	}

	f, ok := d.ToFloat(x)

	return ok && f != 0
}

func boolString(b bool) string {
	if b {
		return True
	}

	return False
}

// PoolTypeCode codes the pool and hot tub combination of a property.
func PoolTypeCode(hotTub bool, pools float64) int {
	switch {
	case hotTub && pools > 0:
		return 2
	case pools > 0:
		return 7
	case hotTub:
		return 10
	default:
		return 0
	}
}

// DerivePoolTypes adds PoolType, computed row by row from PoolCount and HotTubOrSpa.
func DerivePoolTypes(t *d.DF) error {
	var pools, tubs *d.Col
	if pools, tubs = t.Column(PoolCount), t.Column(HotTubOrSpa); pools == nil || tubs == nil {
		return fmt.Errorf("need columns %s and %s", PoolCount, HotTubOrSpa)
	}

	codes := make([]int, pools.Len())
	for ind := range codes {
		n, _ := pools.ElementFloat(ind)
		codes[ind] = PoolTypeCode(Flag(tubs.Element(ind)), n)
	}

	var (
		col *d.Col
		e   error
	)
	if col, e = d.NewCol(codes, d.DTint, d.ColName(PoolType)); e != nil {
		return e
	}

	return t.AppendColumn(col, true)
}

// AttachZipcodes adds Zipcode: the nearest candidate lookup returns for each row's coordinates.
func AttachZipcodes(t *d.DF, lookup zipcode.Lookup) error {
	var lats, lngs *d.Col
	if lats, lngs = t.Column(Latitude), t.Column(Longitude); lats == nil || lngs == nil {
		return fmt.Errorf("need columns %s and %s", Latitude, Longitude)
	}

	zips := make([]string, lats.Len())
	for ind := range zips {
		lat, okLat := lats.ElementFloat(ind)
		lng, okLng := lngs.ElementFloat(ind)
		if !okLat || !okLng {
			return fmt.Errorf("row %d: missing coordinate", ind)
		}

		var (
			recs []zipcode.Record
			e    error
		)
		if recs, e = lookup.ByCoordinate(lat, lng); e != nil {
			return fmt.Errorf("row %d: %w", ind, e)
		}

		if len(recs) == 0 {
			return fmt.Errorf("row %d: no zip code near (%v, %v)", ind, lat, lng)
		}

		zips[ind] = recs[0].Zipcode
	}

	var (
		col *d.Col
		e   error
	)
	if col, e = d.NewCol(zips, d.DTstring, d.ColName(Zipcode)); e != nil {
		return e
	}

	return t.AppendColumn(col, true)
}
