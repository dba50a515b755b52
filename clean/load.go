// Package clean joins, normalizes, prunes and imputes the property and transaction tables.
package clean

import (
	"fmt"
	"path/filepath"

	d "github.com/invertedv/zclean/df"
)

// Source supplies the raw input tables by name.
type Source interface {
	Table(name string) (*d.DF, error)
}

// FileSource reads <Dir>/<name>.csv.
type FileSource struct {
	Dir string
}

func (s *FileSource) Table(name string) (*d.DF, error) {
	var (
		f *d.Files
		e error
	)
	if f, e = d.NewFiles(); e != nil {
		return nil, e
	}

	return f.Load(filepath.Join(s.Dir, name+".csv"))
}

// DBSource reads the table name from a database. Tables optionally maps a name to the database table
// that holds it.
type DBSource struct {
	Dialect *d.Dialect
	Tables  map[string]string
}

func (s *DBSource) Table(name string) (*d.DF, error) {
	return s.Dialect.Load(s.query(name))
}

func (s *DBSource) query(name string) string {
	if tbl, ok := s.Tables[name]; ok {
		name = tbl
	}

	return s.Dialect.Select(name)
}

// Year names the property and transaction tables of one year.
type Year struct {
	Year         int
	Properties   string
	Transactions string
}

// Years are the inputs, in the order their rows appear in the output.
var Years = []Year{
	{Year: 2016, Properties: "properties_2016", Transactions: "train_2016_v2"},
	{Year: 2017, Properties: "properties_2017", Transactions: "train_2017"},
}

// YearTables holds the loaded tables of one year.
type YearTables struct {
	Year         int
	Properties   *d.DF
	Transactions *d.DF
}

// Load reads the tables of each year from src.
func Load(src Source, years []Year) ([]YearTables, error) {
	var out []YearTables
	for _, yr := range years {
		var (
			props, trans *d.DF
			e            error
		)
		if props, e = src.Table(yr.Properties); e != nil {
			return nil, fmt.Errorf("loading %s: %w", yr.Properties, e)
		}

		if trans, e = src.Table(yr.Transactions); e != nil {
			return nil, fmt.Errorf("loading %s: %w", yr.Transactions, e)
		}

		out = append(out, YearTables{Year: yr.Year, Properties: props, Transactions: trans})
	}

	return out, nil
}
