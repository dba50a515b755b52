package df

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Statistics below are computed over the non-missing values of a numeric column.

func (c *Col) present() ([]float64, error) {
	var (
		x []float64
		e error
	)
	if x, e = c.Present(); e != nil {
		return nil, fmt.Errorf("column %s: %w", c.Name(), e)
	}

	if len(x) == 0 {
		return nil, fmt.Errorf("column %s has no values", c.Name())
	}

	return x, nil
}

// Median is the middle present value; with an even count it is the mean of the two middle values.
func (c *Col) Median() (float64, error) {
	var (
		x []float64
		e error
	)
	if x, e = c.present(); e != nil {
		return 0, e
	}

	sort.Float64s(x)

	return median(x), nil
}

func (c *Col) Mean() (float64, error) {
	var (
		x []float64
		e error
	)
	if x, e = c.present(); e != nil {
		return 0, e
	}

	return stat.Mean(x, nil), nil
}

// Mode is the most frequent present value. Ties go to the smallest value.
func (c *Col) Mode() (float64, error) {
	var (
		x []float64
		e error
	)
	if x, e = c.present(); e != nil {
		return 0, e
	}

	sort.Float64s(x)
	_, maxCount := stat.Mode(x, nil)

	for start := 0; start < len(x); {
		end := start
		for end < len(x) && x[end] == x[start] {
			end++
		}

		if float64(end-start) == maxCount {
			return x[start], nil
		}

		start = end
	}

	return 0, fmt.Errorf("column %s: no mode found", c.Name())
}

// median of sorted x
func median(x []float64) float64 {
	n := len(x)
	if n%2 == 1 {
		return x[n/2]
	}

	return (x[n/2-1] + x[n/2]) / 2
}

// MissingShare returns, for each column, the fraction of rows that are missing.
func (df *DF) MissingShare() (names []string, share []float64) {
	n := df.RowCount()
	for c := df.Next(true); c != nil; c = df.Next(false) {
		names = append(names, c.Name())
		if n == 0 {
			share = append(share, 0)
			continue
		}

		share = append(share, float64(c.NullCount())/float64(n))
	}

	return names, share
}
