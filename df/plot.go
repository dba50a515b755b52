package df

import (
	"fmt"

	grob "github.com/MetalBlueberry/go-plotly/graph_objects"
	"github.com/MetalBlueberry/go-plotly/offline"
)

type Plot struct {
	Fig *grob.Fig
	Lay *grob.Layout
}

type Opt func(plot *Plot) *Plot

func NewPlot(opt ...Opt) *Plot {
	fig := &grob.Fig{}
	lay := &grob.Layout{}
	fig.Layout = lay
	p := &Plot{Fig: fig, Lay: lay}
	for _, o := range opt {
		o(p)
	}

	return p
}

func WithWidth(w float64) Opt {
	if w < 0.0 {
		panic(fmt.Errorf("negative width"))
	}
	return func(p *Plot) *Plot {
		p.Lay.Width = w
		return p
	}
}

func WithHeight(h float64) Opt {
	if h < 0.0 {
		panic(fmt.Errorf("negative height"))
	}
	return func(p *Plot) *Plot {
		p.Lay.Height = h
		return p
	}
}

func WithTitle(title string) Opt {
	return func(p *Plot) *Plot { p.Lay.Title = &grob.LayoutTitle{Text: title}; return p }
}

func WithXlabel(label string) Opt {
	return func(p *Plot) *Plot {
		if p.Lay.Xaxis == nil {
			p.Lay.Xaxis = &grob.LayoutXaxis{}
		}

		p.Lay.Xaxis.Title = &grob.LayoutXaxisTitle{Text: label}
		return p
	}
}

func WithYlabel(label string) Opt {
	return func(p *Plot) *Plot {
		if p.Lay.Yaxis == nil {
			p.Lay.Yaxis = &grob.LayoutYaxis{}
		}

		p.Lay.Yaxis.Title = &grob.LayoutYaxisTitle{Text: label}
		return p
	}
}

// Bar adds a bar series with one bar per category.
func (p *Plot) Bar(categories []string, values []float64, seriesName string) error {
	if len(categories) != len(values) {
		return fmt.Errorf("bar plot has %d categories and %d values", len(categories), len(values))
	}

	tr := &grob.Bar{Type: grob.TraceTypeBar, Name: seriesName, X: categories, Y: values}
	p.Fig.AddTraces(tr)

	return nil
}

// Save writes the plot as a self-contained HTML page.
func (p *Plot) Save(fileName string) error {
	if fileName == "" {
		return fmt.Errorf("no file name for plot")
	}

	offline.ToHtml(p.Fig, fileName)

	return nil
}

// MissingPlot charts the percentage of missing values in each column of df.
func MissingPlot(df *DF) (*Plot, error) {
	names, share := df.MissingShare()
	pct := make([]float64, len(share))
	for ind, s := range share {
		pct[ind] = 100 * s
	}

	p := NewPlot(WithTitle("Missing values by column"), WithXlabel("column"), WithYlabel("% missing"),
		WithHeight(600), WithWidth(1400))
	if e := p.Bar(names, pct, "% missing"); e != nil {
		return nil, e
	}

	return p, nil
}
