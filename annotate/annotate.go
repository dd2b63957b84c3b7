// Package annotate assigns significance categories to differential results
// and persists the annotated table.
package annotate

import (
	tmedanalysis "github.com/grekalab/TMED-paper-2025-analysis"
	"github.com/grekalab/TMED-paper-2025-analysis/diffexp"
)

// CategoryInterest overrides every statistical category: a gene the figure is
// about is always labeled as such, even when it is also significant.
const (
	CategoryInterest       = "Gene of interest"
	CategoryNotSignificant = "Not significant"
)

// UpCategory is the label for genes enriched in the named bait group.
func UpCategory(group string) string {
	return "Upregulated in " + group
}

// Row is one line of the persisted differential-result table.
type Row struct {
	Gene        string  `csv:"gene"`
	DisplayName string  `csv:"display_name"`
	Log2FC      float64 `csv:"log2_fc"`
	PValue      float64 `csv:"p_value"`
	AdjPValue   float64 `csv:"adj_p_value"`
	Category    string  `csv:"category"`
}

// Rule pairs a category label with a pure predicate over one result.
type Rule struct {
	Category string
	Match    func(diffexp.Result) bool
}

// Rules builds the ordered category rules for the configured contrast. Rules
// are evaluated in fixed precedence and the first match wins, so the
// genes-of-interest override always beats the statistical criteria.
func Rules(cfg tmedanalysis.Config) []Rule {
	interest := make(map[string]struct{}, len(cfg.GenesOfInterest))
	for _, g := range cfg.GenesOfInterest {
		interest[g] = struct{}{}
	}

	return []Rule{
		{
			Category: CategoryInterest,
			Match: func(r diffexp.Result) bool {
				_, ok := interest[r.Gene]
				return ok
			},
		},
		{
			Category: UpCategory(cfg.ContrastB),
			Match: func(r diffexp.Result) bool {
				return r.AdjPValue < cfg.AdjustedPCutoff && r.Log2FC > cfg.EffectSizeCutoff
			},
		},
		{
			Category: UpCategory(cfg.ContrastA),
			Match: func(r diffexp.Result) bool {
				return r.AdjPValue < cfg.AdjustedPCutoff && r.Log2FC < -cfg.EffectSizeCutoff
			},
		},
		{
			Category: CategoryNotSignificant,
			Match:    func(diffexp.Result) bool { return true },
		},
	}
}

// Categorize returns the category of the first matching rule.
func Categorize(r diffexp.Result, rules []Rule) string {
	for _, rule := range rules {
		if rule.Match(r) {
			return rule.Category
		}
	}
	return CategoryNotSignificant
}

// Annotate classifies every result and applies the cosmetic display-name
// remapping. The remapping affects presentation only, never category
// assignment or statistics.
func Annotate(results []diffexp.Result, cfg tmedanalysis.Config) []Row {
	rules := Rules(cfg)

	out := make([]Row, len(results))
	for i, r := range results {
		display := r.Gene
		if remapped, ok := cfg.DisplayNames[r.Gene]; ok {
			display = remapped
		}

		out[i] = Row{
			Gene:        r.Gene,
			DisplayName: display,
			Log2FC:      r.Log2FC,
			PValue:      r.PValue,
			AdjPValue:   r.AdjPValue,
			Category:    Categorize(r, rules),
		}
	}

	return out
}
