package clean

import (
	"fmt"

	d "github.com/invertedv/zclean/df"
)

// Join right-joins each year's properties onto its transactions by parcel id, drops rows without a
// latitude or longitude, tags the rows with the year in SetYear and stacks the years in order.
func Join(years []YearTables) (*d.DF, error) {
	var out *d.DF
	for _, yr := range years {
		var (
			joined *d.DF
			e      error
		)
		if joined, e = RightJoin(yr); e != nil {
			return nil, fmt.Errorf("joining %d: %w", yr.Year, e)
		}

		if out == nil {
			out = joined
			continue
		}

		if out, e = out.AppendDF(joined); e != nil {
			return nil, fmt.Errorf("appending %d: %w", yr.Year, e)
		}
	}

	if out == nil {
		return nil, fmt.Errorf("no years to join")
	}

	return out, nil
}

// RightJoin joins one year and tags it.
func RightJoin(yr YearTables) (*d.DF, error) {
	var (
		joined *d.DF
		e      error
	)
	if joined, e = d.RightJoin(yr.Properties, yr.Transactions, ParcelID); e != nil {
		return nil, e
	}

	if joined, e = dropMissingCoordinates(joined); e != nil {
		return nil, e
	}

	years := make([]int, joined.RowCount())
	for ind := range years {
		years[ind] = yr.Year
	}

	var tag *d.Col
	if tag, e = d.NewCol(years, d.DTint, d.ColName(SetYear)); e != nil {
		return nil, e
	}

	if e = joined.AppendColumn(tag, false); e != nil {
		return nil, e
	}

	return joined, nil
}

func dropMissingCoordinates(t *d.DF) (*d.DF, error) {
	var lat, lng *d.Col
	if lat, lng = t.Column(Latitude), t.Column(Longitude); lat == nil || lng == nil {
		return nil, fmt.Errorf("need %s and %s columns", Latitude, Longitude)
	}

	keep := make([]bool, t.RowCount())
	for ind := range keep {
		keep[ind] = !lat.IsNull(ind) && !lng.IsNull(ind)
	}

	return t.Where(keep)
}
