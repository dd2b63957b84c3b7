package tmedanalysis

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/carbocation/pfx"
)

// Group names one experimental condition and the number of consecutive sample
// columns it owns in the intensity matrix. Group membership is positional:
// the first Size columns of the numeric block belong to the first group, the
// next block to the second, and so on.
type Group struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

// Config collects every externally overridable constant of the
// co-immunoprecipitation differential abundance pipeline. Zero values are
// filled in from DefaultConfig by the command-line tools.
type Config struct {
	ConfigPath string `json:"-"`

	// Input table layout
	IDColumn         string   `json:"id_column"`
	MetadataPatterns []string `json:"metadata_patterns"`

	// Experimental design
	Groups         []Group `json:"groups"`
	TreatmentStart int     `json:"treatment_start"` // 1-indexed, inclusive
	TreatmentEnd   int     `json:"treatment_end"`   // 1-indexed, inclusive
	ContrastA      string  `json:"contrast_a"`
	ContrastB      string  `json:"contrast_b"`

	// Reporting
	GenesOfInterest  []string          `json:"genes_of_interest"`
	DisplayNames     map[string]string `json:"display_names"`
	AdjustedPCutoff  float64           `json:"adjusted_p_cutoff"`
	EffectSizeCutoff float64           `json:"effect_size_cutoff"`

	Seed      int64  `json:"seed"`
	OutputDir string `json:"output_dir"`
}

// DefaultConfig reproduces the manuscript's TMED7 vs TMED2 co-IP comparison:
// three groups of four replicates, with the two bait groups (numeric columns
// 5-12) defining the normalization reference.
func DefaultConfig() Config {
	return Config{
		IDColumn:         "Gene names",
		MetadataPatterns: []string{"Peptide", "Sequence coverage", "Score"},
		Groups: []Group{
			{Name: "Control", Size: 4},
			{Name: "TMED2", Size: 4},
			{Name: "TMED7", Size: 4},
		},
		TreatmentStart: 5,
		TreatmentEnd:   12,
		ContrastA:      "TMED2",
		ContrastB:      "TMED7",
		GenesOfInterest: []string{
			"TMED1", "TMED2", "TMED3", "TMED4", "TMED5",
			"TMED6", "TMED7", "TMED9", "TMED10", "TICAM2",
		},
		DisplayNames: map[string]string{
			"TICAM2": "TRAM",
		},
		AdjustedPCutoff:  0.05,
		EffectSizeCutoff: 1.0,
		Seed:             20250101,
		OutputDir:        "out",
	}
}

// ParseJSONConfigFromPath overlays the JSON file at path onto DefaultConfig,
// so partial config files only need to name the fields they change.
func ParseJSONConfigFromPath(path string) (Config, error) {
	out := DefaultConfig()
	out.ConfigPath = path

	f, err := os.Open(path)
	if err != nil {
		return out, pfx.Err(err)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(&out); err != nil {
		if e, ok := err.(*json.SyntaxError); ok {
			log.Printf("syntax error at byte offset %d", e.Offset)
		}
		return out, pfx.Err(err)
	}

	// Gene identifiers are uppercased at load time, so the config's gene
	// sets have to live in the same case space.
	for i, g := range out.GenesOfInterest {
		out.GenesOfInterest[i] = strings.ToUpper(g)
	}
	remap := make(map[string]string, len(out.DisplayNames))
	for k, v := range out.DisplayNames {
		remap[strings.ToUpper(k)] = v
	}
	out.DisplayNames = remap

	return out, nil
}

// Validate checks the declared layout against the actual number of numeric
// sample columns. Group membership is positional, so a mismatch between
// declared sizes and the real column count would silently scramble the
// design; we fail fast instead.
func (c Config) Validate(numericColumns int) error {
	if len(c.Groups) < 2 {
		return ConfigurationError{Detail: "need at least two groups to form a contrast"}
	}

	total := 0
	for _, g := range c.Groups {
		if g.Size < 1 {
			return ConfigurationError{Detail: fmt.Sprintf("group %q has size %d", g.Name, g.Size)}
		}
		total += g.Size
	}
	if total != numericColumns {
		return ConfigurationError{Detail: fmt.Sprintf("group sizes sum to %d but the matrix has %d sample columns", total, numericColumns)}
	}

	if c.TreatmentStart < 1 || c.TreatmentEnd < c.TreatmentStart || c.TreatmentEnd > numericColumns {
		return ConfigurationError{Detail: fmt.Sprintf("treatment column range %d-%d does not fit in %d sample columns", c.TreatmentStart, c.TreatmentEnd, numericColumns)}
	}

	if _, ok := c.GroupBounds(c.ContrastA); !ok {
		return ConfigurationError{Detail: fmt.Sprintf("contrast group %q is not a declared group", c.ContrastA)}
	}
	if _, ok := c.GroupBounds(c.ContrastB); !ok {
		return ConfigurationError{Detail: fmt.Sprintf("contrast group %q is not a declared group", c.ContrastB)}
	}
	if c.ContrastA == c.ContrastB {
		return ConfigurationError{Detail: "contrast groups must differ"}
	}

	return nil
}

// GroupLabels returns one group name per sample column, in declared order.
func (c Config) GroupLabels() []string {
	var out []string
	for _, g := range c.Groups {
		for i := 0; i < g.Size; i++ {
			out = append(out, g.Name)
		}
	}
	return out
}

// Bounds is a half-open column interval [Start, End) into the numeric block.
type Bounds struct {
	Start, End int
}

// GroupBounds returns the column interval owned by the named group.
func (c Config) GroupBounds(name string) (Bounds, bool) {
	at := 0
	for _, g := range c.Groups {
		if g.Name == name {
			return Bounds{Start: at, End: at + g.Size}, true
		}
		at += g.Size
	}
	return Bounds{}, false
}
