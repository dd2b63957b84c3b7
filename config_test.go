package tmedanalysis

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestValidate(t *testing.T) {
	base := DefaultConfig()

	cases := []struct {
		name    string
		mutate  func(*Config)
		columns int
		wantErr bool
	}{
		{name: "default layout", mutate: func(*Config) {}, columns: 12, wantErr: false},
		{name: "sizes do not sum to columns", mutate: func(*Config) {}, columns: 11, wantErr: true},
		{name: "treatment range past last column", mutate: func(c *Config) { c.TreatmentEnd = 13 }, columns: 12, wantErr: true},
		{name: "treatment range inverted", mutate: func(c *Config) { c.TreatmentStart = 9; c.TreatmentEnd = 5 }, columns: 12, wantErr: true},
		{name: "zero-size group", mutate: func(c *Config) { c.Groups[1].Size = 0 }, columns: 8, wantErr: true},
		{name: "unknown contrast group", mutate: func(c *Config) { c.ContrastB = "TMED9" }, columns: 12, wantErr: true},
		{name: "identical contrast groups", mutate: func(c *Config) { c.ContrastB = c.ContrastA }, columns: 12, wantErr: true},
	}

	for _, v := range cases {
		cfg := base
		cfg.Groups = append([]Group(nil), base.Groups...)
		v.mutate(&cfg)

		err := cfg.Validate(v.columns)
		if (err != nil) != v.wantErr {
			t.Fatalf("%s: got err %v, wantErr %v", v.name, err, v.wantErr)
		}

		if err != nil {
			var cfgErr ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("%s: expected a ConfigurationError, got %T", v.name, err)
			}
		}
	}
}

func TestGroupLabelsAndBounds(t *testing.T) {
	cfg := DefaultConfig()

	labels := cfg.GroupLabels()
	if len(labels) != 12 {
		t.Fatalf("expected 12 labels, got %d", len(labels))
	}
	if labels[0] != "Control" || labels[4] != "TMED2" || labels[11] != "TMED7" {
		t.Fatalf("unexpected label layout: %v", labels)
	}

	b, ok := cfg.GroupBounds("TMED7")
	if !ok || b.Start != 8 || b.End != 12 {
		t.Fatalf("TMED7 bounds: got %+v ok=%v", b, ok)
	}

	if _, ok := cfg.GroupBounds("TMED12"); ok {
		t.Fatal("expected no bounds for an undeclared group")
	}
}

func TestParseJSONConfigFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{
		"adjusted_p_cutoff": 0.01,
		"genes_of_interest": ["tmed2", "sec23a"],
		"display_names": {"ticam2": "TRAM"}
	}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := ParseJSONConfigFromPath(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.AdjustedPCutoff != 0.01 {
		t.Fatalf("override not applied: %v", cfg.AdjustedPCutoff)
	}

	// Untouched fields keep their defaults.
	if cfg.TreatmentStart != 5 || cfg.TreatmentEnd != 12 {
		t.Fatalf("defaults lost: treatment range %d-%d", cfg.TreatmentStart, cfg.TreatmentEnd)
	}

	// Gene sets are uppercased to match loader-normalized identifiers.
	if cfg.GenesOfInterest[0] != "TMED2" || cfg.GenesOfInterest[1] != "SEC23A" {
		t.Fatalf("genes of interest not uppercased: %v", cfg.GenesOfInterest)
	}
	if cfg.DisplayNames["TICAM2"] != "TRAM" {
		t.Fatalf("display names not re-keyed: %v", cfg.DisplayNames)
	}
}
