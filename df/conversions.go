package df

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

var dateFormats = []string{"2006-01-02", "20060102", "1/2/2006", "01/02/2006", "Jan 2, 2006", "January 2, 2006",
	"Jan 2 2006", "January 2 2006"}

// *********** Conversions ***********

func toFloat(x any) (any, bool) {
	if f, ok := x.(float64); ok {
		return f, true
	}

	if s, ok := x.(string); ok {
		if f, e := strconv.ParseFloat(strings.TrimSpace(s), 64); e == nil {
			return f, true
		}

		return nil, false
	}

	// decimals, such as those ClickHouse returns for Decimal columns
	if dec, ok := x.(interface{ Float64() (float64, bool) }); ok {
		f, _ := dec.Float64()
		return f, true
	}

	xv := reflect.ValueOf(x)
	if !xv.IsValid() {
		return nil, false
	}

	if xv.CanFloat() {
		return xv.Float(), true
	}

	if xv.CanInt() {
		return float64(xv.Int()), true
	}

	if xv.CanUint() {
		return float64(xv.Uint()), true
	}

	return nil, false
}

func toInt(x any) (any, bool) {
	if i, ok := x.(int); ok {
		return i, true
	}

	if s, ok := x.(string); ok {
		if i, e := strconv.ParseInt(strings.TrimSpace(s), 10, 64); e == nil {
			return int(i), true
		}

		return nil, false
	}

	xv := reflect.ValueOf(x)
	if !xv.IsValid() {
		return nil, false
	}

	if xv.CanInt() {
		return int(xv.Int()), true
	}

	if xv.CanUint() {
		return int(xv.Uint()), true
	}

	// only whole floats are int-able
	if xv.CanFloat() {
		if f := xv.Float(); f == float64(int(f)) {
			return int(f), true
		}
	}

	return nil, false
}

func toString(x any) (any, bool) {
	switch v := x.(type) {
	case string:
		return v, true
	case float64:
		return formatFloat(v), true
	case int:
		return strconv.Itoa(v), true
	case time.Time:
		return v.Format(time.DateOnly), true
	case nil:
		return nil, false
	}

	return fmt.Sprintf("%v", x), true
}

func toDate(x any) (any, bool) {
	if d, ok := x.(time.Time); ok {
		return d, true
	}

	xv := reflect.ValueOf(x)
	if !xv.IsValid() {
		return nil, false
	}

	if xv.CanInt() {
		return toDate(fmt.Sprintf("%d", xv.Int()))
	}

	if d, ok := x.(string); ok {
		for _, fmtx := range dateFormats {
			if dt, e := time.Parse(fmtx, strings.ReplaceAll(d, "'", "")); e == nil {
				return dt, true
			}
		}
	}

	return nil, false
}

func toDataType(x any, dt DataTypes) (any, bool) {
	switch dt {
	case DTfloat:
		return toFloat(x)
	case DTint:
		return toInt(x)
	case DTdate:
		return toDate(x)
	case DTstring:
		return toString(x)
	case DTany:
		return x, true
	}

	return nil, false
}

// ToFloat converts x to float64 if it can.
func ToFloat(x any) (float64, bool) {
	if v, ok := toFloat(x); ok {
		return v.(float64), true
	}

	return 0, false
}

// ToString converts x to its string representation.
func ToString(x any) (string, bool) {
	if v, ok := toString(x); ok {
		return v.(string), true
	}

	return "", false
}

func WhatAmI(val any) DataTypes {
	switch val.(type) {
	case float64, []float64:
		return DTfloat
	case int, []int:
		return DTint
	case string, []string:
		return DTstring
	case time.Time, []time.Time:
		return DTdate
	default:
		return DTunknown
	}
}

// formatFloat is the shortest representation that parses back to x. Whole values keep a trailing ".0" so
// they are not mistaken for ints when read back.
func formatFloat(x float64) string {
	s := strconv.FormatFloat(x, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}

	return s
}
