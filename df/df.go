package df

import (
	"fmt"
	"strings"
)

// DF is a table: an ordered set of equal-length, uniquely named columns.
type DF struct {
	head    *columnList
	current *columnList
}

type columnList struct {
	col *Col

	prior *columnList
	next  *columnList
}

func NewDF(cols ...*Col) (*DF, error) {
	if cols == nil {
		return nil, fmt.Errorf("no columns in NewDF")
	}

	df := &DF{}
	for ind := 0; ind < len(cols); ind++ {
		if e := df.AppendColumn(cols[ind], false); e != nil {
			return nil, e
		}
	}

	return df, nil
}

///////////// DF methods

// Next iterates through the columns. It returns nil after the last column.
func (df *DF) Next(reset bool) *Col {
	if reset || df.current == nil {
		df.current = df.head
		if df.current == nil {
			return nil
		}

		return df.current.col
	}

	if df.current.next == nil {
		df.current = nil
		return nil
	}

	df.current = df.current.next
	return df.current.col
}

func (df *DF) RowCount() int {
	if df.head == nil {
		return 0
	}

	return df.head.col.Len()
}

func (df *DF) ColumnCount() int {
	cols := 0
	for c := df.head; c != nil; c = c.next {
		cols++
	}

	return cols
}

func (df *DF) ColumnNames() []string {
	var names []string

	for h := df.head; h != nil; h = h.next {
		names = append(names, h.col.Name())
	}

	return names
}

// Column returns the column colName, nil if there isn't one.
func (df *DF) Column(colName string) *Col {
	if node := df.node(colName); node != nil {
		return node.col
	}

	return nil
}

func (df *DF) HasColumns(colNames ...string) bool {
	for _, cn := range colNames {
		if df.Column(cn) == nil {
			return false
		}
	}

	return true
}

// AppendColumn adds col as the last column. If replace is true, an existing column of the same name is
// replaced in place.
func (df *DF) AppendColumn(col *Col, replace bool) error {
	if col.Name() == "" {
		return fmt.Errorf("cannot append unnamed column")
	}

	if df.head != nil && col.Len() != df.RowCount() {
		return fmt.Errorf("length mismatch: df - %d, append col %s - %d", df.RowCount(), col.Name(), col.Len())
	}

	if node := df.node(col.Name()); node != nil {
		if !replace {
			return fmt.Errorf("duplicate column name: %s", col.Name())
		}

		node.col.parent = nil
		node.col = col
		col.parent = df

		return nil
	}

	if col.parent != nil && col.parent != df {
		_ = col.parent.DropColumns(col.Name())
	}

	col.parent = df
	dfl := &columnList{col: col}

	if df.head == nil {
		df.head = dfl
		return nil
	}

	var tail *columnList
	for tail = df.head; tail.next != nil; tail = tail.next {
	}

	dfl.prior = tail
	tail.next = dfl

	return nil
}

func (df *DF) node(colName string) *columnList {
	for h := df.head; h != nil; h = h.next {
		if h.col.Name() == colName {
			return h
		}
	}

	return nil
}

func (df *DF) DropColumns(colNames ...string) error {
	for _, cName := range colNames {
		var node *columnList

		if node = df.node(cName); node == nil {
			return fmt.Errorf("column %s not found", cName)
		}

		if df.current == node {
			df.current = nil
		}

		node.col.parent = nil

		if node == df.head {
			if df.head.next == nil {
				df.head = nil
				return fmt.Errorf("no columns left")
			}

			df.head = df.head.next
			df.head.prior = nil
			continue
		}

		node.prior.next = node.next
		if node.next != nil {
			node.next.prior = node.prior
		}
	}

	return nil
}

// KeepColumns returns a new DF with copies of colNames, in that order.
func (df *DF) KeepColumns(colNames ...string) (*DF, error) {
	var cols []*Col

	for ind := 0; ind < len(colNames); ind++ {
		var col *Col

		if col = df.Column(colNames[ind]); col == nil {
			return nil, fmt.Errorf("column %s not found", colNames[ind])
		}

		cols = append(cols, col.Copy())
	}

	return NewDF(cols...)
}

// Row returns the values in row indx, nil for missing values.
func (df *DF) Row(indx int) []any {
	var row []any
	for h := df.head; h != nil; h = h.next {
		row = append(row, h.col.Element(indx))
	}

	return row
}

// Take returns a new DF whose row ind is df's row rows[ind]. A negative entry yields a row of missing values.
func (df *DF) Take(rows []int) (*DF, error) {
	var cols []*Col
	for h := df.head; h != nil; h = h.next {
		cols = append(cols, &Col{Vector: h.col.Take(rows), ColCore: &ColCore{name: h.col.Name()}})
	}

	return NewDF(cols...)
}

// Where returns the rows for which keep is true.
func (df *DF) Where(keep []bool) (*DF, error) {
	if len(keep) != df.RowCount() {
		return nil, fmt.Errorf("Where indicator has length %d, df has %d rows", len(keep), df.RowCount())
	}

	var rows []int
	for ind, k := range keep {
		if k {
			rows = append(rows, ind)
		}
	}

	return df.Take(rows)
}

// AppendDF stacks the rows of dfNew below those of df. Columns are matched by name. A column missing from
// either side is filled with missing values. Columns whose types differ are promoted: int and float to float,
// anything else to string.
func (df *DF) AppendDF(dfNew *DF) (*DF, error) {
	names := df.ColumnNames()
	for _, nm := range dfNew.ColumnNames() {
		if !has(nm, names) {
			names = append(names, nm)
		}
	}

	n1, n2 := df.RowCount(), dfNew.RowCount()

	var cols []*Col
	for _, nm := range names {
		c1, c2 := df.Column(nm), dfNew.Column(nm)

		var dt DataTypes
		switch {
		case c1 == nil:
			dt = c2.DataType()
		case c2 == nil:
			dt = c1.DataType()
		default:
			dt = promote(c1.DataType(), c2.DataType())
		}

		var (
			v1, v2 *Vector
			e      error
		)
		if v1, e = stackPart(c1, dt, n1); e != nil {
			return nil, e
		}

		if v2, e = stackPart(c2, dt, n2); e != nil {
			return nil, e
		}

		if e = v1.AppendVector(v2); e != nil {
			return nil, e
		}

		cols = append(cols, &Col{Vector: v1, ColCore: &ColCore{name: nm}})
	}

	return NewDF(cols...)
}

func stackPart(c *Col, dt DataTypes, n int) (*Vector, error) {
	if c == nil {
		return MakeNullVector(dt, n), nil
	}

	return c.Vector.Coerce(dt)
}

// Copy returns a deep copy of df.
func (df *DF) Copy() *DF {
	var cols []*Col
	for h := df.head; h != nil; h = h.next {
		cols = append(cols, h.col.Copy())
	}

	// can't fail: names and lengths are already consistent
	dfOut, _ := NewDF(cols...)

	return dfOut
}

// String shows the column names, types and missing-value counts.
func (df *DF) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("rows: %d, columns: %d\n", df.RowCount(), df.ColumnCount()))
	for h := df.head; h != nil; h = h.next {
		sb.WriteString(fmt.Sprintf("%-32s%-10s%10d\n", h.col.Name(), h.col.DataType(), h.col.NullCount()))
	}

	return sb.String()
}
