// volcano reproduces the co-immunoprecipitation differential abundance
// figure: it loads a gene-by-sample intensity matrix, normalizes and imputes
// it, fits per-gene linear models with moderated statistics for one contrast
// between two bait groups, and writes the annotated result table plus the
// distribution and volcano plots.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/aybabtme/uniplot/histogram"

	tmedanalysis "github.com/grekalab/TMED-paper-2025-analysis"
	"github.com/grekalab/TMED-paper-2025-analysis/annotate"
	"github.com/grekalab/TMED-paper-2025-analysis/diffexp"
	"github.com/grekalab/TMED-paper-2025-analysis/impute"
	"github.com/grekalab/TMED-paper-2025-analysis/intensity"
	"github.com/grekalab/TMED-paper-2025-analysis/normalize"
	"github.com/grekalab/TMED-paper-2025-analysis/plot"
)

func main() {
	var input, configPath, imputedPath, outDir string
	var seed int64

	flag.StringVar(&input, "input", "", "Path to the delimited intensity matrix export.")
	flag.StringVar(&configPath, "config", "", "Optional JSON config overriding the default group layout, thresholds, and gene sets.")
	flag.StringVar(&imputedPath, "imputed", "", "Optional path to a previously written imputed matrix; skips loading, normalization, and imputation.")
	flag.StringVar(&outDir, "outdir", "", "Output directory. Overrides the config's output_dir if set.")
	flag.Int64Var(&seed, "seed", 0, "Random seed for imputation. Overrides the config's seed if nonzero.")
	flag.Parse()

	if input == "" && imputedPath == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg := tmedanalysis.DefaultConfig()
	if configPath != "" {
		var err error
		cfg, err = tmedanalysis.ParseJSONConfigFromPath(configPath)
		if err != nil {
			log.Fatalln(err)
		}
	}
	if outDir != "" {
		cfg.OutputDir = outDir
	}
	if seed != 0 {
		cfg.Seed = seed
	}

	if err := run(input, imputedPath, cfg); err != nil {
		log.Fatalln(err)
	}
}

func run(input, imputedPath string, cfg tmedanalysis.Config) error {
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return err
	}

	imputed, err := imputedMatrix(input, imputedPath, cfg)
	if err != nil {
		return err
	}

	if err := plot.Density(imputed, cfg.Groups, filepath.Join(cfg.OutputDir, "imputed_distributions.png")); err != nil {
		return err
	}

	results, err := diffexp.Fit(imputed, cfg.GroupLabels(), cfg.ContrastA, cfg.ContrastB)
	if err != nil {
		return err
	}

	// Quick terminal look at the effect-size distribution before the real
	// figures are rendered.
	effects := make([]float64, len(results))
	for i, r := range results {
		effects[i] = r.Log2FC
	}
	log.Printf("log2 fold change distribution (%s - %s):", cfg.ContrastB, cfg.ContrastA)
	if err := histogram.Fprint(os.Stdout, histogram.Hist(15, effects), histogram.Linear(40)); err != nil {
		return err
	}

	rows := annotate.Annotate(results, cfg)

	tablePath := filepath.Join(cfg.OutputDir, "differential_results.tsv")
	if err := annotate.WriteTable(tablePath, rows); err != nil {
		return err
	}
	log.Println("Wrote", tablePath)

	return plot.Volcano(rows, cfg, filepath.Join(cfg.OutputDir, "volcano.png"))
}

// imputedMatrix produces the fully imputed matrix, either by re-reading a
// previously persisted artifact or by running the load -> normalize ->
// impute stages. The imputed matrix is always written to disk before any
// downstream stage runs, so a later failure never costs the most expensive
// step.
func imputedMatrix(input, imputedPath string, cfg tmedanalysis.Config) (*intensity.Matrix, error) {
	if imputedPath != "" {
		log.Println("Reusing imputed matrix from", imputedPath)

		m, err := intensity.Load(imputedPath, "Gene", nil)
		if err != nil {
			return nil, err
		}
		if err := cfg.Validate(m.NumCols()); err != nil {
			return nil, err
		}

		return m, nil
	}

	raw, err := intensity.Load(input, cfg.IDColumn, cfg.MetadataPatterns)
	if err != nil {
		return nil, err
	}
	log.Println("Loaded", raw.NumRows(), "unique genes across", raw.NumCols(), "sample columns")

	if err := cfg.Validate(raw.NumCols()); err != nil {
		return nil, err
	}

	logged := normalize.Log2(raw)
	scaled, reference, err := normalize.MedianScale(logged, cfg.TreatmentStart, cfg.TreatmentEnd)
	if err != nil {
		return nil, err
	}
	log.Printf("Rescaled sample columns to reference median %.4f", reference)

	imputed, err := impute.Run(scaled, cfg.Groups, cfg.Seed, impute.LeastSquares)
	if err != nil {
		return nil, err
	}

	imputedOut := filepath.Join(cfg.OutputDir, "imputed_matrix.tsv")
	if err := imputed.Write(imputedOut); err != nil {
		return nil, err
	}
	log.Println("Wrote", imputedOut)

	return imputed, nil
}
