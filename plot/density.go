// Package plot renders the distribution and volcano figures as PNG
// artifacts.
package plot

import (
	"bytes"
	"math"
	"os"

	"github.com/carbocation/pfx"
	hist2 "github.com/grd/histogram"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	tmedanalysis "github.com/grekalab/TMED-paper-2025-analysis"
	"github.com/grekalab/TMED-paper-2025-analysis/intensity"
)

const densityBins = 60

// Density renders one density curve per experimental group over the pooled
// imputed intensities of that group's sample columns.
func Density(m *intensity.Matrix, groups []tmedanalysis.Group, path string) error {
	min, max := math.MaxFloat64, -math.MaxFloat64
	for _, row := range m.Data {
		for _, v := range row {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}
	if max <= min {
		max = min + 1
	}

	width := (max - min) / float64(densityBins)

	graph := chart.Chart{
		Width:  900,
		Height: 600,
		XAxis:  chart.XAxis{Name: "log2 intensity"},
		YAxis:  chart.YAxis{Name: "density"},
	}

	at := 0
	for gi, g := range groups {
		hg, err := hist2.NewHistogram(hist2.Range(min, uint(densityBins), width))
		if err != nil {
			return pfx.Err(err)
		}

		total := 0
		for _, row := range m.Data {
			for j := at; j < at+g.Size; j++ {
				hg.Add(row[j])
				total++
			}
		}
		at += g.Size

		xs := make([]float64, densityBins)
		ys := make([]float64, densityBins)
		for b := 0; b < densityBins; b++ {
			xs[b] = min + width*(float64(b)+0.5)
			ys[b] = float64(hg.Get(b)) / (float64(total) * width)
		}

		graph.Series = append(graph.Series, chart.ContinuousSeries{
			Name:    g.Name,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: groupColor(gi),
				StrokeWidth: 2,
			},
		})
	}

	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return renderPNG(graph, path)
}

// groupColor cycles a small fixed palette in declared group order.
func groupColor(i int) drawing.Color {
	palette := []drawing.Color{
		drawing.ColorFromHex("7f7f7f"),
		drawing.ColorFromHex("1f77b4"),
		drawing.ColorFromHex("d62728"),
		drawing.ColorFromHex("2ca02c"),
		drawing.ColorFromHex("9467bd"),
	}
	return palette[i%len(palette)]
}

func renderPNG(graph chart.Chart, path string) error {
	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return pfx.Err(err)
	}

	outFile, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}
	defer outFile.Close()

	if _, err := buffer.WriteTo(outFile); err != nil {
		return pfx.Err(err)
	}

	return nil
}
