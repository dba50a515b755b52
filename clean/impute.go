package clean

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	d "github.com/invertedv/zclean/df"
)

// Method is how a Rule fills a column.
type Method int

const (
	Constant Method = iota
	Median
	Mean
	Mode
	Derived
)

func (m Method) String() string {
	switch m {
	case Constant:
		return "constant"
	case Median:
		return "median"
	case Mean:
		return "mean"
	case Mode:
		return "mode"
	case Derived:
		return "derived"
	default:
		return "unknown"
	}
}

// Rule fills the missing values of Column.
type Rule struct {
	Column string
	Method Method

	// Value is the fill for Constant.
	Value any

	// Derive computes the column for Derived and returns the number of rows it set.
	Derive func(t *d.DF) (int, error)
}

// Filled reports what a Rule did.
type Filled struct {
	Column string
	Method Method

	// Value is the fill value, nil for Derived.
	Value any

	Rows int
}

// Rules is the imputation plan, in the order it runs.
var Rules = []Rule{
	{Column: AirConditioning, Method: Constant, Value: 5},
	{Column: CalculatedBath, Method: Median},
	{Column: FireplaceCount, Method: Constant, Value: 0},
	{Column: FireplaceFlag, Method: Derived, Derive: DeriveFireplaceFlag},
	{Column: RoomCount, Method: Derived, Derive: DeriveRoomCount},
	{Column: BuildingQuality, Method: Mean},
	{Column: FinishedSqFt, Method: Median},
	{Column: FullBathCount, Method: Median},
	{Column: Heating, Method: Mode},
	{Column: LotSize, Method: Median},
	{Column: UnitCount, Method: Mode},
	{Column: YearBuilt, Method: Median},
	{Column: Stories, Method: Median},
	{Column: StructureTaxValue, Method: Median},
	{Column: TaxValue, Method: Median},
	{Column: LandTaxValue, Method: Median},
	{Column: TaxAmount, Method: Median},
	{Column: TaxDelinquencyFlag, Method: Constant, Value: "N"},
}

// Impute applies rules to t in order. Statistics are computed as each rule runs.
func Impute(t *d.DF, rules []Rule) ([]Filled, error) {
	var out []Filled
	for _, r := range rules {
		var (
			f Filled
			e error
		)
		if f, e = apply(t, r); e != nil {
			return nil, fmt.Errorf("imputing %s by %s: %w", r.Column, r.Method, e)
		}

		out = append(out, f)
	}

	return out, nil
}

func apply(t *d.DF, r Rule) (Filled, error) {
	f := Filled{Column: r.Column, Method: r.Method}

	var (
		col *d.Col
		e   error
	)
	if col, e = ensureColumn(t, r); e != nil {
		return f, e
	}

	if r.Method == Derived {
		if r.Derive == nil {
			return f, fmt.Errorf("no derivation")
		}

		f.Rows, e = r.Derive(t)
		return f, e
	}

	var val any
	switch r.Method {
	case Constant:
		val = r.Value
	case Median:
		val, e = col.Median()
	case Mean:
		val, e = col.Mean()
	case Mode:
		val, e = col.Mode()
	default:
		return f, fmt.Errorf("unknown method %d", r.Method)
	}

	if e != nil {
		return f, e
	}

	f.Value, f.Rows = val, col.NullCount()

	return f, fillColumn(col, val)
}

// ensureColumn returns the rule's column, adding it with every value missing if t lacks it.
func ensureColumn(t *d.DF, r Rule) (*d.Col, error) {
	if col := t.Column(r.Column); col != nil {
		return col, nil
	}

	dt := d.DTfloat
	if _, ok := r.Value.(string); ok && r.Method == Constant {
		dt = d.DTstring
	}

	var (
		col *d.Col
		e   error
	)
	if col, e = d.NewCol(d.MakeNullVector(dt, t.RowCount()), dt, d.ColName(r.Column)); e != nil {
		return nil, e
	}

	if e = t.AppendColumn(col, false); e != nil {
		return nil, e
	}

	return col, nil
}

// fillColumn fills the missing values of col with val. An int column is promoted to float first
// if val is not a whole number.
func fillColumn(col *d.Col, val any) error {
	if x, ok := val.(float64); ok {
		if e := promoteFor(col, x); e != nil {
			return e
		}
	}

	return col.Fill(val)
}

func promoteFor(col *d.Col, xs ...float64) error {
	if col.DataType() != d.DTint {
		return nil
	}

	for _, x := range xs {
		if x != math.Trunc(x) {
			v, e := col.Vector.Coerce(d.DTfloat)
			if e != nil {
				return e
			}

			return col.Replace(v)
		}
	}

	return nil
}

// DeriveFireplaceFlag sets FireplaceFlag to True where FireplaceCount > 0 and to False elsewhere.
func DeriveFireplaceFlag(t *d.DF) (int, error) {
	var cnt *d.Col
	if cnt = t.Column(FireplaceCount); cnt == nil {
		return 0, fmt.Errorf("missing column %s", FireplaceCount)
	}

	flags := make([]string, cnt.Len())
	for ind := range flags {
		x, ok := cnt.ElementFloat(ind)
		flags[ind] = boolString(ok && x > 0)
	}

	var (
		col *d.Col
		e   error
	)
	if col, e = d.NewCol(flags, d.DTstring, d.ColName(FireplaceFlag)); e != nil {
		return 0, e
	}

	return len(flags), t.AppendColumn(col, true)
}

// DeriveRoomCount treats a stored RoomCount of 0 as missing and sets each missing RoomCount to
// CalculatedBath + BedroomCount. A missing BedroomCount counts as 0. Rows missing CalculatedBath stay missing.
func DeriveRoomCount(t *d.DF) (int, error) {
	var rooms, baths, beds *d.Col
	if rooms, baths, beds = t.Column(RoomCount), t.Column(CalculatedBath), t.Column(BedroomCount); rooms == nil || baths == nil || beds == nil {
		return 0, fmt.Errorf("need columns %s, %s and %s", RoomCount, CalculatedBath, BedroomCount)
	}

	if !rooms.DataType().IsNumeric() {
		return 0, fmt.Errorf("column %s has type %s", RoomCount, rooms.DataType())
	}

	n := rooms.Len()
	sums, bedrooms := make([]float64, n), make([]float64, n)
	var targets []int
	for ind := 0; ind < n; ind++ {
		if x, ok := rooms.ElementFloat(ind); ok && x == 0 {
			rooms.SetNull(ind)
		}

		if x, ok := beds.ElementFloat(ind); ok {
			bedrooms[ind] = x
		}

		x, ok := baths.ElementFloat(ind)
		if !ok {
			continue
		}

		sums[ind] = x
		if rooms.IsNull(ind) {
			targets = append(targets, ind)
		}
	}

	floats.Add(sums, bedrooms)

	fills := make([]float64, len(targets))
	for ind, row := range targets {
		fills[ind] = sums[row]
	}

	if e := promoteFor(rooms, fills...); e != nil {
		return 0, e
	}

	for ind, row := range targets {
		if rooms.DataType() == d.DTint {
			rooms.SetInt(int(fills[ind]), row)
			continue
		}

		rooms.SetFloat(fills[ind], row)
	}

	return len(targets), nil
}
