// Package normalize log-transforms raw intensities and rescales every sample
// column to a shared reference median.
package normalize

import (
	"fmt"
	"math"

	"github.com/carbocation/pfx"
	"github.com/montanaflynn/stats"

	"github.com/grekalab/TMED-paper-2025-analysis/intensity"
)

// Log2 returns a copy of the matrix with every non-zero entry replaced by its
// base-2 logarithm. Zero entries stay exactly 0: they mean "not detected" and
// must never become -Inf.
func Log2(m *intensity.Matrix) *intensity.Matrix {
	out := m.Clone()
	for _, row := range out.Data {
		for j, v := range row {
			if v != 0 {
				row[j] = math.Log2(v)
			}
		}
	}
	return out
}

// MedianScale rescales each sample column of the log-transformed matrix so
// that its median over detected (non-zero) entries equals a single global
// reference: the median of all detected entries within the 1-indexed,
// inclusive treatment column range [treatStart, treatEnd].
//
// A column with no detected entries has no usable median and is passed
// through unchanged. That leaves degenerate columns silently un-normalized
// rather than failing the run; this mirrors the published analysis and is a
// deliberate policy, not a bug.
func MedianScale(m *intensity.Matrix, treatStart, treatEnd int) (*intensity.Matrix, float64, error) {
	if treatStart < 1 || treatEnd < treatStart || treatEnd > m.NumCols() {
		return nil, 0, fmt.Errorf("treatment range %d-%d outside of %d columns", treatStart, treatEnd, m.NumCols())
	}

	var pooled []float64
	for _, row := range m.Data {
		for j := treatStart - 1; j < treatEnd; j++ {
			if row[j] != 0 {
				pooled = append(pooled, row[j])
			}
		}
	}
	if len(pooled) == 0 {
		return nil, 0, fmt.Errorf("no detected entries in treatment columns %d-%d", treatStart, treatEnd)
	}

	reference, err := stats.Median(pooled)
	if err != nil {
		return nil, 0, pfx.Err(err)
	}

	out := m.Clone()
	for j := 0; j < out.NumCols(); j++ {
		var detected []float64
		for _, row := range out.Data {
			if row[j] != 0 {
				detected = append(detected, row[j])
			}
		}
		if len(detected) == 0 {
			continue
		}

		colMedian, err := stats.Median(detected)
		if err != nil {
			return nil, 0, pfx.Err(err)
		}
		if colMedian == 0 {
			continue
		}

		for _, row := range out.Data {
			row[j] = row[j] / colMedian * reference
		}
	}

	return out, reference, nil
}
