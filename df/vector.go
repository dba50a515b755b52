package df

import (
	"fmt"
	"time"
)

// Vector holds the data of a column as a typed slice plus a mask of missing elements.
// A nil mask means no element is missing.
type Vector struct {
	dt DataTypes

	data any
	null []bool
}

// NewVector creates a Vector of type dt from data. data may be a slice of any type convertible to dt,
// or a single value.
func NewVector(data any, dt DataTypes) (*Vector, error) {
	if v, ok := data.(*Vector); ok {
		if v.VectorType() != dt {
			return v.Coerce(dt)
		}

		return v, nil
	}

	var (
		v  *Vector
		ok bool
	)
	if v, ok = toVector(data, dt); !ok {
		return nil, fmt.Errorf("cannot make vector of type %s", dt)
	}

	return v, nil
}

func MakeVector(dt DataTypes, n int) *Vector {
	switch dt {
	case DTfloat:
		return &Vector{dt: dt, data: make([]float64, n)}
	case DTint:
		return &Vector{dt: dt, data: make([]int, n)}
	case DTstring:
		return &Vector{dt: dt, data: make([]string, n)}
	case DTdate:
		return &Vector{dt: dt, data: make([]time.Time, n)}
	default:
		panic(fmt.Errorf("cannot make Vector with data type %s", dt))
	}
}

// MakeNullVector is a Vector of length n with every element missing.
func MakeNullVector(dt DataTypes, n int) *Vector {
	v := MakeVector(dt, n)
	v.null = make([]bool, n)
	for ind := 0; ind < n; ind++ {
		v.null[ind] = true
	}

	return v
}

func (v *Vector) VectorType() DataTypes {
	return v.dt
}

// *********** Missing values ***********

func (v *Vector) IsNull(indx int) bool {
	return v.null != nil && v.null[indx]
}

func (v *Vector) SetNull(indx int) {
	v.checkIndex(indx)
	if v.null == nil {
		v.null = make([]bool, v.Len())
	}

	v.null[indx] = true
}

func (v *Vector) clearNull(indx int) {
	if v.null != nil {
		v.null[indx] = false
	}
}

func (v *Vector) NullCount() int {
	n := 0
	for _, isNull := range v.null {
		if isNull {
			n++
		}
	}

	return n
}

// Present returns the non-missing elements as float64s.
func (v *Vector) Present() ([]float64, error) {
	if !v.dt.IsNumeric() {
		return nil, fmt.Errorf("vector of type %s is not numeric", v.dt)
	}

	xs, _ := v.AsFloat()
	out := make([]float64, 0, len(xs))
	for ind, x := range xs {
		if v.IsNull(ind) {
			continue
		}

		out = append(out, x)
	}

	return out, nil
}

// Fill replaces every missing element with val. val is converted to the vector's type.
func (v *Vector) Fill(val any) error {
	if v.null == nil {
		return nil
	}

	var (
		x  any
		ok bool
	)
	if x, ok = toDataType(val, v.dt); !ok {
		return fmt.Errorf("cannot fill %s vector with %v", v.dt, val)
	}

	for ind := 0; ind < v.Len(); ind++ {
		if v.IsNull(ind) {
			v.set(x, ind)
		}
	}

	v.null = nil

	return nil
}

// *********** Setters ***********

func (v *Vector) SetFloat(val float64, indx int) {
	if v.VectorType() != DTfloat {
		panic(fmt.Errorf("vector isn't DTfloat"))
	}

	v.checkIndex(indx)
	v.data.([]float64)[indx] = val
	v.clearNull(indx)
}

func (v *Vector) SetInt(val, indx int) {
	if v.VectorType() != DTint {
		panic(fmt.Errorf("vector isn't DTint"))
	}

	v.checkIndex(indx)
	v.data.([]int)[indx] = val
	v.clearNull(indx)
}

func (v *Vector) SetString(val string, indx int) {
	if v.VectorType() != DTstring {
		panic(fmt.Errorf("vector isn't DTstring"))
	}

	v.checkIndex(indx)
	v.data.([]string)[indx] = val
	v.clearNull(indx)
}

func (v *Vector) SetDate(val time.Time, indx int) {
	if v.VectorType() != DTdate {
		panic(fmt.Errorf("vector isn't DTdate"))
	}

	v.checkIndex(indx)
	v.data.([]time.Time)[indx] = val
	v.clearNull(indx)
}

// set assigns x, already of the vector's type, to element indx
func (v *Vector) set(x any, indx int) {
	switch v.dt {
	case DTfloat:
		v.SetFloat(x.(float64), indx)
	case DTint:
		v.SetInt(x.(int), indx)
	case DTstring:
		v.SetString(x.(string), indx)
	case DTdate:
		v.SetDate(x.(time.Time), indx)
	}
}

func (v *Vector) checkIndex(indx int) {
	if indx < 0 || indx >= v.Len() {
		panic(fmt.Errorf("index out of range"))
	}
}

// *********** Getters ***********

func (v *Vector) AsFloat() ([]float64, error) {
	if v.VectorType() == DTfloat {
		return v.data.([]float64), nil
	}

	if v.VectorType() == DTint {
		xOut := make([]float64, v.Len())
		for ind, xx := range v.data.([]int) {
			xOut[ind] = float64(xx)
		}

		return xOut, nil
	}

	var (
		vx *Vector
		e  error
	)
	if vx, e = v.Coerce(DTfloat); e != nil {
		return nil, e
	}

	return vx.data.([]float64), nil
}

// Element returns element indx, nil if it is missing.
func (v *Vector) Element(indx int) any {
	v.checkIndex(indx)
	if v.IsNull(indx) {
		return nil
	}

	switch v.dt {
	case DTfloat:
		return v.data.([]float64)[indx]
	case DTint:
		return v.data.([]int)[indx]
	case DTstring:
		return v.data.([]string)[indx]
	case DTdate:
		return v.data.([]time.Time)[indx]
	default:
		panic(fmt.Errorf("error in Element"))
	}
}

// ElementFloat returns element indx as a float64. ok is false if it is missing.
func (v *Vector) ElementFloat(indx int) (val float64, ok bool) {
	x := v.Element(indx)
	if x == nil {
		return 0, false
	}

	return ToFloat(x)
}

func (v *Vector) Len() int {
	switch v.dt {
	case DTfloat:
		return len(v.data.([]float64))
	case DTint:
		return len(v.data.([]int))
	case DTstring:
		return len(v.data.([]string))
	case DTdate:
		return len(v.data.([]time.Time))
	default:
		panic(fmt.Errorf("unexpected error in Vector.Len"))
	}
}

// *********** Reshaping ***********

func (v *Vector) AppendVector(vAdd *Vector) error {
	if v.VectorType() != vAdd.VectorType() {
		return fmt.Errorf("appending different vector types: %s and %s", v.VectorType(), vAdd.VectorType())
	}

	n1, n2 := v.Len(), vAdd.Len()
	if v.null != nil || vAdd.null != nil {
		null := make([]bool, n1+n2)
		for ind := 0; ind < n1; ind++ {
			null[ind] = v.IsNull(ind)
		}

		for ind := 0; ind < n2; ind++ {
			null[n1+ind] = vAdd.IsNull(ind)
		}

		v.null = null
	}

	switch v.dt {
	case DTfloat:
		v.data = append(v.data.([]float64), vAdd.data.([]float64)...)
	case DTint:
		v.data = append(v.data.([]int), vAdd.data.([]int)...)
	case DTstring:
		v.data = append(v.data.([]string), vAdd.data.([]string)...)
	case DTdate:
		v.data = append(v.data.([]time.Time), vAdd.data.([]time.Time)...)
	default:
		return fmt.Errorf("unknown type in Vector.AppendVector")
	}

	return nil
}

func (v *Vector) Copy() *Vector {
	vCopy := &Vector{dt: v.dt}
	switch v.dt {
	case DTfloat:
		x := make([]float64, v.Len())
		copy(x, v.data.([]float64))
		vCopy.data = x
	case DTint:
		x := make([]int, v.Len())
		copy(x, v.data.([]int))
		vCopy.data = x
	case DTstring:
		x := make([]string, v.Len())
		copy(x, v.data.([]string))
		vCopy.data = x
	case DTdate:
		x := make([]time.Time, v.Len())
		copy(x, v.data.([]time.Time))
		vCopy.data = x
	default:
		panic(fmt.Errorf("unexpected error in Vector.Copy"))
	}

	if v.null != nil {
		vCopy.null = make([]bool, len(v.null))
		copy(vCopy.null, v.null)
	}

	return vCopy
}

// Take returns a new Vector whose element ind is v's element rows[ind]. A negative row gives a missing element.
func (v *Vector) Take(rows []int) *Vector {
	out := MakeVector(v.dt, len(rows))
	for ind, row := range rows {
		if row < 0 || v.IsNull(row) {
			out.SetNull(ind)
			continue
		}

		out.set(v.Element(row), ind)
	}

	return out
}

// Where returns the elements for which keep is true.
func (v *Vector) Where(keep []bool) (*Vector, error) {
	if len(keep) != v.Len() {
		return nil, fmt.Errorf("Where indicator has length %d, vector has %d", len(keep), v.Len())
	}

	var rows []int
	for ind, k := range keep {
		if k {
			rows = append(rows, ind)
		}
	}

	return v.Take(rows), nil
}

// Coerce converts v to type to. Missing elements stay missing.
func (v *Vector) Coerce(to DataTypes) (*Vector, error) {
	if to == v.dt {
		return v.Copy(), nil
	}

	if to == DTunknown || to == DTany {
		return nil, fmt.Errorf("cannot coerce to %s", to)
	}

	xOut := MakeVector(to, v.Len())
	for ind := 0; ind < v.Len(); ind++ {
		if v.IsNull(ind) {
			xOut.SetNull(ind)
			continue
		}

		var (
			vOut any
			ok   bool
		)
		if vOut, ok = toDataType(v.Element(ind), to); !ok {
			return nil, fmt.Errorf("cannot convert %v to %s", v.Element(ind), to)
		}

		xOut.set(vOut, ind)
	}

	return xOut, nil
}

// *********** Helpers ***********

func toVector(xIn any, target DataTypes) (*Vector, bool) {
	switch x := xIn.(type) {
	case []float64:
		if target == DTfloat {
			return &Vector{dt: target, data: x}, true
		}
	case []int:
		if target == DTint {
			return &Vector{dt: target, data: x}, true
		}
	case []string:
		if target == DTstring {
			return &Vector{dt: target, data: x}, true
		}
	case []time.Time:
		if target == DTdate {
			return &Vector{dt: target, data: x}, true
		}
	case []any:
		out := MakeVector(target, len(x))
		for ind, val := range x {
			if val == nil {
				out.SetNull(ind)
				continue
			}

			var (
				vx any
				ok bool
			)
			if vx, ok = toDataType(val, target); !ok {
				return nil, false
			}

			out.set(vx, ind)
		}

		return out, true
	}

	if target == DTunknown || target == DTany {
		return nil, false
	}

	// non-matching slice type or a single value
	var src *Vector
	switch x := xIn.(type) {
	case []float64, []int, []string, []time.Time:
		src, _ = toVector(x, WhatAmI(x))
	case float64, int, string, time.Time:
		src = MakeVector(WhatAmI(x), 1)
		src.set(x, 0)
	default:
		return nil, false
	}

	out, e := src.Coerce(target)
	return out, e == nil
}
