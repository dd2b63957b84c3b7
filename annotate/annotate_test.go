package annotate

import (
	"math"
	"path/filepath"
	"testing"

	tmedanalysis "github.com/grekalab/TMED-paper-2025-analysis"
	"github.com/grekalab/TMED-paper-2025-analysis/diffexp"
)

func testConfig() tmedanalysis.Config {
	cfg := tmedanalysis.DefaultConfig()
	cfg.GenesOfInterest = []string{"TMED9"}
	cfg.DisplayNames = map[string]string{"TICAM2": "TRAM"}
	return cfg
}

func TestCategorize(t *testing.T) {
	rules := Rules(testConfig())

	cases := []struct {
		name   string
		result diffexp.Result
		want   string
	}{
		{
			name:   "significant up in B",
			result: diffexp.Result{Gene: "SEC23A", Log2FC: 2.5, AdjPValue: 0.001},
			want:   "Upregulated in TMED7",
		},
		{
			name:   "significant up in A",
			result: diffexp.Result{Gene: "SEC24B", Log2FC: -1.8, AdjPValue: 0.01},
			want:   "Upregulated in TMED2",
		},
		{
			name:   "significant p but small effect",
			result: diffexp.Result{Gene: "COPB1", Log2FC: 0.4, AdjPValue: 0.001},
			want:   CategoryNotSignificant,
		},
		{
			name:   "large effect but weak p",
			result: diffexp.Result{Gene: "COPB2", Log2FC: 3.5, AdjPValue: 0.2},
			want:   CategoryNotSignificant,
		},
		{
			name:   "cutoff is strict inequality",
			result: diffexp.Result{Gene: "COPG1", Log2FC: 1.0, AdjPValue: 0.001},
			want:   CategoryNotSignificant,
		},
		{
			// The override beats even a strongly significant result in
			// either direction.
			name:   "gene of interest overrides statistics",
			result: diffexp.Result{Gene: "TMED9", Log2FC: -4, AdjPValue: 1e-8},
			want:   CategoryInterest,
		},
	}

	for _, v := range cases {
		if got := Categorize(v.result, rules); got != v.want {
			t.Fatalf("%s: got %q, want %q", v.name, got, v.want)
		}
	}
}

func TestAnnotateDisplayNames(t *testing.T) {
	cfg := testConfig()

	rows := Annotate([]diffexp.Result{
		{Gene: "TICAM2", Log2FC: 2.5, AdjPValue: 0.001},
		{Gene: "SEC23A", Log2FC: 0, AdjPValue: 1},
	}, cfg)

	if rows[0].DisplayName != "TRAM" {
		t.Fatalf("display remap not applied: %q", rows[0].DisplayName)
	}
	// Remapping is cosmetic: the category still comes from the statistics
	// under the original identifier.
	if rows[0].Category != "Upregulated in TMED7" {
		t.Fatalf("remapped row miscategorized: %q", rows[0].Category)
	}

	if rows[1].DisplayName != "SEC23A" {
		t.Fatalf("unmapped gene should display as itself: %q", rows[1].DisplayName)
	}
}

func TestTableRoundTrip(t *testing.T) {
	rows := []Row{
		{Gene: "TMED9", DisplayName: "TMED9", Log2FC: 2.0000001, PValue: 3.5e-7, AdjPValue: 1.2e-5, Category: CategoryInterest},
		{Gene: "SEC23A", DisplayName: "SEC23A", Log2FC: -0.25, PValue: 0.8, AdjPValue: 1, Category: CategoryNotSignificant},
		{Gene: "TICAM2", DisplayName: "TRAM", Log2FC: 1.75, PValue: 0.001, AdjPValue: 0.004, Category: "Upregulated in TMED7"},
	}

	path := filepath.Join(t.TempDir(), "results.tsv")
	if err := WriteTable(path, rows); err != nil {
		t.Fatal(err)
	}

	back, err := ReadTable(path)
	if err != nil {
		t.Fatal(err)
	}

	if len(back) != len(rows) {
		t.Fatalf("row count changed: %d vs %d", len(back), len(rows))
	}

	for i := range rows {
		if back[i].Gene != rows[i].Gene || back[i].DisplayName != rows[i].DisplayName || back[i].Category != rows[i].Category {
			t.Fatalf("row %d labels changed: %+v vs %+v", i, back[i], rows[i])
		}
		for _, pair := range [][2]float64{
			{back[i].Log2FC, rows[i].Log2FC},
			{back[i].PValue, rows[i].PValue},
			{back[i].AdjPValue, rows[i].AdjPValue},
		} {
			if math.Abs(pair[0]-pair[1]) > 1e-12 {
				t.Fatalf("row %d numeric value changed: %v vs %v", i, pair[0], pair[1])
			}
		}
	}
}
