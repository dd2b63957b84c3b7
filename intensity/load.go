package intensity

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/carbocation/pfx"

	tmedanalysis "github.com/grekalab/TMED-paper-2025-analysis"
)

// Load reads a delimited intensity table. The column named idColumn supplies
// the gene identifiers; columns whose header contains any of the
// metadataPatterns substrings are dropped; every remaining column must be
// numeric. Duplicate gene names keep their first occurrence only. An empty
// cell is read as intensity 0, since at this stage the absence of a
// measurement is indistinguishable from zero signal.
func Load(path, idColumn string, metadataPatterns []string) (*Matrix, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, pfx.Err(err)
	}

	delim := tmedanalysis.DetermineDelimiter(bytes.NewReader(raw))

	csvReader := csv.NewReader(bytes.NewReader(raw))
	csvReader.Comma = delim
	csvReader.LazyQuotes = true

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, pfx.Err(err)
	}
	if len(records) < 1 {
		return nil, tmedanalysis.DataFormatError{Path: path, Detail: "empty table"}
	}

	header := records[0]
	idIdx := -1
	for i, col := range header {
		if col == idColumn {
			idIdx = i
			break
		}
	}
	if idIdx < 0 {
		return nil, tmedanalysis.DataFormatError{Path: path, Detail: fmt.Sprintf("identifier column %q not found", idColumn)}
	}

	// Everything that is neither the identifier nor a metadata column is a
	// numeric sample column.
	var sampleIdx []int
	var samples []string
Columns:
	for i, col := range header {
		if i == idIdx {
			continue
		}
		for _, pattern := range metadataPatterns {
			if strings.Contains(col, pattern) {
				continue Columns
			}
		}
		sampleIdx = append(sampleIdx, i)
		samples = append(samples, col)
	}
	if len(sampleIdx) == 0 {
		return nil, tmedanalysis.DataFormatError{Path: path, Detail: "no numeric sample columns remain after metadata filtering"}
	}

	out := &Matrix{Samples: samples}
	seen := make(map[string]struct{})

	for rowNum, rec := range records[1:] {
		name := strings.ToUpper(strings.TrimSpace(rec[idIdx]))
		if name == "" {
			continue
		}
		if _, exists := seen[name]; exists {
			continue
		}
		seen[name] = struct{}{}

		row := make([]float64, len(sampleIdx))
		for j, col := range sampleIdx {
			cell := strings.TrimSpace(rec[col])
			if cell == "" {
				// Missing measurement, treated as undetected.
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, tmedanalysis.DataFormatError{
					Path:   path,
					Detail: fmt.Sprintf("non-numeric value %q in column %q, line %d", cell, header[col], rowNum+2),
				}
			}
			row[j] = v
		}

		out.Names = append(out.Names, name)
		out.Data = append(out.Data, row)
	}

	return out, nil
}
