package df

import "fmt"

// RightJoin joins left onto right on the column key, keeping every row of right in its original order.
// A right row matching several left rows yields one row per match, in left order. A right row with no
// match gets missing values in the left columns. The result has left's columns, then right's non-key
// columns.
func RightJoin(left, right *DF, key string) (*DF, error) {
	var lKey, rKey *Col
	if lKey = left.Column(key); lKey == nil {
		return nil, fmt.Errorf("join key %s not in left table", key)
	}

	if rKey = right.Column(key); rKey == nil {
		return nil, fmt.Errorf("join key %s not in right table", key)
	}

	if lKey.DataType() != rKey.DataType() {
		return nil, fmt.Errorf("join key %s has type %s on left, %s on right", key, lKey.DataType(), rKey.DataType())
	}

	for _, nm := range right.ColumnNames() {
		if nm != key && left.Column(nm) != nil {
			return nil, fmt.Errorf("column %s is in both tables", nm)
		}
	}

	index := make(map[any][]int)
	for ind := 0; ind < lKey.Len(); ind++ {
		if k := lKey.Element(ind); k != nil {
			index[k] = append(index[k], ind)
		}
	}

	// leftRows[i] is the row of left behind output row i, -1 if none. rightRows[i] the row of right.
	var leftRows, rightRows []int
	for ind := 0; ind < rKey.Len(); ind++ {
		matches := index[rKey.Element(ind)]
		if len(matches) == 0 {
			leftRows = append(leftRows, -1)
			rightRows = append(rightRows, ind)
			continue
		}

		for _, m := range matches {
			leftRows = append(leftRows, m)
			rightRows = append(rightRows, ind)
		}
	}

	var cols []*Col
	for c := left.Next(true); c != nil; c = left.Next(false) {
		// the key comes from right so unmatched rows keep it
		v := c.Take(leftRows)
		if c.Name() == key {
			v = rKey.Take(rightRows)
		}

		cols = append(cols, &Col{Vector: v, ColCore: &ColCore{name: c.Name()}})
	}

	for c := right.Next(true); c != nil; c = right.Next(false) {
		if c.Name() == key {
			continue
		}

		cols = append(cols, &Col{Vector: c.Take(rightRows), ColCore: &ColCore{name: c.Name()}})
	}

	return NewDF(cols...)
}
