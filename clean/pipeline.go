package clean

import (
	"fmt"

	"github.com/rs/zerolog"

	d "github.com/invertedv/zclean/df"
	"github.com/invertedv/zclean/zipcode"
)

// Pipeline runs load, join, normalize, prune and impute in order.
type Pipeline struct {
	Source Source
	Lookup zipcode.Lookup

	Years []Year
	Prune []string
	Rules []Rule

	// Report, if set, is the path of an HTML plot of the missing share of each column, made after the join.
	Report string

	Log zerolog.Logger
}

// NewPipeline returns a Pipeline with the standard years, pruned columns and rules.
func NewPipeline(src Source, lookup zipcode.Lookup, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		Source: src,
		Lookup: lookup,
		Years:  Years,
		Prune:  Sparse,
		Rules:  Rules,
		Log:    log,
	}
}

// Run returns the cleaned table.
func (p *Pipeline) Run() (*d.DF, error) {
	var (
		tables []YearTables
		e      error
	)
	if tables, e = Load(p.Source, p.Years); e != nil {
		return nil, e
	}

	for _, yt := range tables {
		p.Log.Info().Int("year", yt.Year).Int("properties", yt.Properties.RowCount()).
			Int("transactions", yt.Transactions.RowCount()).Msg("loaded")
	}

	var t *d.DF
	if t, e = Join(tables); e != nil {
		return nil, e
	}

	p.stage("join", t)

	if p.Report != "" {
		if e = report(t, p.Report); e != nil {
			return nil, e
		}

		p.Log.Info().Str("file", p.Report).Msg("missing-value report written")
	}

	if e = Normalize(t, p.Lookup); e != nil {
		return nil, e
	}

	if c, ok := p.Lookup.(*zipcode.Cache); ok {
		hits, misses := c.Stats()
		p.Log.Debug().Int("hits", hits).Int("misses", misses).Msg("zip lookups")
	}

	p.stage("normalize", t)

	if e = Prune(t, p.Prune); e != nil {
		return nil, e
	}

	p.stage("prune", t)

	var fills []Filled
	if fills, e = Impute(t, p.Rules); e != nil {
		return nil, e
	}

	for _, f := range fills {
		p.Log.Debug().Str("column", f.Column).Stringer("method", f.Method).
			Interface("value", f.Value).Int("rows", f.Rows).Msg("imputed")
	}

	p.stage("impute", t)

	return t, nil
}

func (p *Pipeline) stage(name string, t *d.DF) {
	p.Log.Info().Str("stage", name).Int("rows", t.RowCount()).Int("columns", t.ColumnCount()).Msg("stage done")
}

func report(t *d.DF, fileName string) error {
	var (
		plt *d.Plot
		e   error
	)
	if plt, e = d.MissingPlot(t); e != nil {
		return fmt.Errorf("missing-value report: %w", e)
	}

	return plt.Save(fileName)
}
