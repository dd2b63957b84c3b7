package intensity

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	tmedanalysis "github.com/grekalab/TMED-paper-2025-analysis"
)

func writeTable(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "table.tsv")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeTable(t, ""+
		"Gene names\tPeptide count\tiBAQ_1\tiBAQ_2\n"+
		"tmed2\t12\t100\t200\n"+
		"TMED2\t3\t1\t1\n"+
		"Sec23a\t5\t\t50\n")

	m, err := Load(path, "Gene names", []string{"Peptide"})
	if err != nil {
		t.Fatal(err)
	}

	// Duplicate TMED2 keeps the first occurrence; names are uppercased.
	if m.NumRows() != 2 || m.Names[0] != "TMED2" || m.Names[1] != "SEC23A" {
		t.Fatalf("unexpected names: %v", m.Names)
	}

	// The metadata column is gone and the two sample columns remain.
	if m.NumCols() != 2 || m.Samples[0] != "iBAQ_1" || m.Samples[1] != "iBAQ_2" {
		t.Fatalf("unexpected samples: %v", m.Samples)
	}

	if m.Data[0][0] != 100 || m.Data[0][1] != 200 {
		t.Fatalf("first-occurrence values not kept: %v", m.Data[0])
	}

	// Empty cell reads as undetected.
	if m.Data[1][0] != 0 || m.Data[1][1] != 50 {
		t.Fatalf("missing cell not zeroed: %v", m.Data[1])
	}
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name string
		body string
		id   string
	}{
		{
			name: "identifier column absent",
			body: "Protein\tiBAQ_1\nX\t5\n",
			id:   "Gene names",
		},
		{
			name: "non-numeric sample cell",
			body: "Gene names\tiBAQ_1\nTMED2\tND\n",
			id:   "Gene names",
		},
	}

	for _, v := range cases {
		path := writeTable(t, v.body)

		_, err := Load(path, v.id, nil)
		if err == nil {
			t.Fatalf("%s: expected an error", v.name)
		}

		var formatErr tmedanalysis.DataFormatError
		if !errors.As(err, &formatErr) {
			t.Fatalf("%s: expected a DataFormatError, got %T: %v", v.name, err, err)
		}
	}
}

func TestWriteLoadRoundTrip(t *testing.T) {
	m := &Matrix{
		Names:   []string{"TMED2", "TMED7"},
		Samples: []string{"s1", "s2", "s3"},
		Data: [][]float64{
			{1.5, 22.125, 0.0001220703125},
			{3, 0, 19.75},
		},
	}

	path := filepath.Join(t.TempDir(), "matrix.tsv")
	if err := m.Write(path); err != nil {
		t.Fatal(err)
	}

	back, err := Load(path, "Gene", nil)
	if err != nil {
		t.Fatal(err)
	}

	if back.NumRows() != m.NumRows() || back.NumCols() != m.NumCols() {
		t.Fatalf("shape changed: %dx%d", back.NumRows(), back.NumCols())
	}

	for i := range m.Data {
		for j := range m.Data[i] {
			if math.Abs(back.Data[i][j]-m.Data[i][j]) > 1e-12 {
				t.Fatalf("value changed at %d,%d: %v vs %v", i, j, back.Data[i][j], m.Data[i][j])
			}
		}
	}
}
