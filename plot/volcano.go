package plot

import (
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	tmedanalysis "github.com/grekalab/TMED-paper-2025-analysis"
	"github.com/grekalab/TMED-paper-2025-analysis/annotate"
)

// CategoryColors returns the fixed color per significance category for the
// configured contrast. The figure legend depends on this mapping staying
// stable across runs.
func CategoryColors(cfg tmedanalysis.Config) map[string]drawing.Color {
	return map[string]drawing.Color{
		annotate.CategoryInterest:          drawing.ColorFromHex("2ca02c"),
		annotate.UpCategory(cfg.ContrastB): drawing.ColorFromHex("d62728"),
		annotate.UpCategory(cfg.ContrastA): drawing.ColorFromHex("1f77b4"),
		annotate.CategoryNotSignificant:    drawing.ColorFromHex("c7c7c7"),
	}
}

// Volcano renders effect size against -log10(p-value), one scatter series
// per significance category, with text labels for the genes-of-interest
// rows only.
func Volcano(rows []annotate.Row, cfg tmedanalysis.Config, path string) error {
	colors := CategoryColors(cfg)

	// Category iteration order is fixed so that series stacking (and the
	// legend) is reproducible.
	categories := []string{
		annotate.CategoryNotSignificant,
		annotate.UpCategory(cfg.ContrastA),
		annotate.UpCategory(cfg.ContrastB),
		annotate.CategoryInterest,
	}

	graph := chart.Chart{
		Width:  900,
		Height: 700,
		XAxis:  chart.XAxis{Name: "log2 fold change (" + cfg.ContrastB + " / " + cfg.ContrastA + ")"},
		YAxis:  chart.YAxis{Name: "-log10 p-value"},
	}

	var labels []chart.Value2

	for _, category := range categories {
		var xs, ys []float64
		for _, row := range rows {
			if row.Category != category {
				continue
			}

			y := negLog10(row.PValue)
			xs = append(xs, row.Log2FC)
			ys = append(ys, y)

			if category == annotate.CategoryInterest {
				labels = append(labels, chart.Value2{
					XValue: row.Log2FC,
					YValue: y,
					Label:  row.DisplayName,
				})
			}
		}
		if len(xs) == 0 {
			continue
		}

		graph.Series = append(graph.Series, chart.ContinuousSeries{
			Name:    category,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    4,
				DotColor:    colors[category],
			},
		})
	}

	if len(labels) > 0 {
		graph.Series = append(graph.Series, chart.AnnotationSeries{
			Annotations: labels,
			Style: chart.Style{
				StrokeColor: drawing.ColorTransparent,
				FillColor:   drawing.ColorTransparent,
				FontColor:   drawing.ColorBlack,
			},
		})
	}

	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return renderPNG(graph, path)
}

// negLog10 keeps zero p-values plottable instead of mapping them to +Inf.
func negLog10(p float64) float64 {
	if p <= 0 {
		p = math.SmallestNonzeroFloat64
	}
	return -math.Log10(p)
}
