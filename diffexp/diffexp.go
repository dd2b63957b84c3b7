// Package diffexp fits per-gene linear models across experimental groups and
// tests one contrast between two group means, with empirical-Bayes variance
// moderation and false-discovery-rate control.
package diffexp

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	tmedanalysis "github.com/grekalab/TMED-paper-2025-analysis"
	"github.com/grekalab/TMED-paper-2025-analysis/intensity"
)

// Result is the fitted contrast for one gene.
type Result struct {
	Gene      string
	Log2FC    float64
	PValue    float64
	AdjPValue float64
}

// Fit regresses every gene row of the imputed matrix on a group-indicator
// design (one column per group, no intercept, so each coefficient is directly
// a group mean) and tests the single contrast mean(groupB) - mean(groupA).
// Per-gene variances are moderated across the full gene population before
// testing, and p-values are Benjamini-Hochberg adjusted. Results come back
// sorted by ascending adjusted p-value (ties broken by raw p-value, then gene
// name); downstream consumers rely on this ordering.
func Fit(m *intensity.Matrix, labels []string, groupA, groupB string) ([]Result, error) {
	if len(labels) != m.NumCols() {
		return nil, tmedanalysis.ConfigurationError{
			Detail: fmt.Sprintf("%d group labels for %d sample columns", len(labels), m.NumCols()),
		}
	}

	// Group order follows first appearance in the label vector.
	var groups []string
	groupIdx := make(map[string]int)
	for _, lab := range labels {
		if _, ok := groupIdx[lab]; !ok {
			groupIdx[lab] = len(groups)
			groups = append(groups, lab)
		}
	}
	ai, ok := groupIdx[groupA]
	if !ok {
		return nil, tmedanalysis.ConfigurationError{Detail: fmt.Sprintf("contrast group %q not present in labels", groupA)}
	}
	bi, ok := groupIdx[groupB]
	if !ok {
		return nil, tmedanalysis.ConfigurationError{Detail: fmt.Sprintf("contrast group %q not present in labels", groupB)}
	}

	n := len(labels)
	k := len(groups)
	df := n - k
	if df < 1 {
		return nil, tmedanalysis.ConfigurationError{Detail: fmt.Sprintf("%d samples in %d groups leave no residual degrees of freedom", n, k)}
	}

	design := mat.NewDense(n, k, nil)
	for i, lab := range labels {
		design.Set(i, groupIdx[lab], 1)
	}

	nPerGroup := make([]float64, k)
	for _, lab := range labels {
		nPerGroup[groupIdx[lab]]++
	}

	nGenes := m.NumRows()
	effects := make([]float64, nGenes)
	s2 := make([]float64, nGenes)

	y := mat.NewVecDense(n, nil)
	for g := 0; g < nGenes; g++ {
		for i := 0; i < n; i++ {
			y.SetVec(i, m.Data[g][i])
		}

		var coef mat.VecDense
		if err := coef.SolveVec(design, y); err != nil {
			return nil, fmt.Errorf("linear fit for gene %s: %v", m.Names[g], err)
		}

		effects[g] = coef.AtVec(bi) - coef.AtVec(ai)

		rss := 0.0
		for i := 0; i < n; i++ {
			r := y.AtVec(i) - coef.AtVec(groupIdx[labels[i]])
			rss += r * r
		}
		s2[g] = rss / float64(df)
	}

	d0, s02 := squeezeVar(s2, float64(df))

	// Standard error factor for a difference of two group means.
	seFactor := math.Sqrt(1/nPerGroup[ai] + 1/nPerGroup[bi])

	dfTotal := float64(df) + d0
	tdist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: dfTotal}

	pvals := make([]float64, nGenes)
	for g := 0; g < nGenes; g++ {
		s2post := (d0*s02 + float64(df)*s2[g]) / dfTotal
		t := effects[g] / (math.Sqrt(s2post) * seFactor)
		pvals[g] = 2 * tdist.Survival(math.Abs(t))
	}

	adj := AdjustBH(pvals)

	out := make([]Result, nGenes)
	for g := 0; g < nGenes; g++ {
		out[g] = Result{
			Gene:      m.Names[g],
			Log2FC:    effects[g],
			PValue:    pvals[g],
			AdjPValue: adj[g],
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].AdjPValue != out[j].AdjPValue {
			return out[i].AdjPValue < out[j].AdjPValue
		}
		if out[i].PValue != out[j].PValue {
			return out[i].PValue < out[j].PValue
		}
		return out[i].Gene < out[j].Gene
	})

	return out, nil
}

// AdjustBH applies the Benjamini-Hochberg step-up procedure and returns the
// adjusted p-values in the input order.
func AdjustBH(pvals []float64) []float64 {
	n := len(pvals)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool { return pvals[order[i]] < pvals[order[j]] })

	adj := make([]float64, n)
	running := 1.0
	for rank := n - 1; rank >= 0; rank-- {
		idx := order[rank]
		v := pvals[idx] * float64(n) / float64(rank+1)
		if v < running {
			running = v
		}
		adj[idx] = running
	}

	return adj
}
