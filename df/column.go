package df

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// *********** ColCore ***********

// ColCore implements the nucleus of a column: its name and the DF it belongs to.
type ColCore struct {
	name string

	parent *DF
}

// *********** Col ***********

// Col is a named Vector.
type Col struct {
	*Vector

	*ColCore
}

// NewCol creates a column of type dt from data. data can be a *Vector, a slice or a single value.
func NewCol(data any, dt DataTypes, opts ...ColOpt) (*Col, error) {
	var (
		v *Vector
		e error
	)
	if v, e = NewVector(data, dt); e != nil {
		return nil, e
	}

	col := &Col{Vector: v, ColCore: &ColCore{}}

	for _, opt := range opts {
		if ex := opt(col); ex != nil {
			return nil, ex
		}
	}

	return col, nil
}

// *********** Setters ***********

type ColOpt func(c *Col) error

func ColName(name string) ColOpt {
	return func(c *Col) error {
		if c == nil {
			return fmt.Errorf("nil column to ColName")
		}

		if c.Name() != "" {
			return fmt.Errorf("column already named -- use Rename method")
		}

		if e := validName(name); e != nil {
			return e
		}

		c.name = name

		return nil
	}
}

// *********** Methods ***********

func (c *Col) DataType() DataTypes {
	return c.VectorType()
}

func (c *Col) Name() string {
	return c.name
}

func (c *Col) Parent() *DF {
	return c.parent
}

func (c *Col) Rename(newName string) error {
	if e := validName(newName); e != nil {
		return e
	}

	if c.Parent() != nil && c.Parent().Column(newName) != nil {
		return fmt.Errorf("column %s already exists, cannot Rename", newName)
	}

	c.name = newName

	return nil
}

// Copy returns a deep copy of the column without its parent.
func (c *Col) Copy() *Col {
	return &Col{
		Vector:  c.Vector.Copy(),
		ColCore: &ColCore{name: c.name},
	}
}

// Replace swaps the column's data for v, which must have the same length.
func (c *Col) Replace(v *Vector) error {
	if v.Len() != c.Len() {
		return fmt.Errorf("replacement for %s has length %d, need %d", c.Name(), v.Len(), c.Len())
	}

	c.Vector = v

	return nil
}

func (c *Col) String() string {
	t := fmt.Sprintf("column: %s\ntype: %s\nmissing: %d\n", c.Name(), c.DataType(), c.NullCount())

	if !c.DataType().IsNumeric() {
		return t
	}

	x, _ := c.Present()
	if len(x) == 0 {
		return t
	}

	sort.Float64s(x)
	q25 := stat.Quantile(0.25, stat.Empirical, x, nil)
	q75 := stat.Quantile(0.75, stat.Empirical, x, nil)
	xbar := stat.Mean(x, nil)

	cats := []string{"min", "lq", "median", "mean", "uq", "max", "n"}
	vals := []float64{x[0], q25, median(x), xbar, q75, x[len(x)-1], float64(len(x))}

	var sb strings.Builder
	sb.WriteString(t)
	for ind, cat := range cats {
		sb.WriteString(fmt.Sprintf("%-8s%12.3f\n", cat, vals[ind]))
	}

	return sb.String()
}
