package intensity

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/carbocation/pfx"
)

// Write persists the matrix as a tab-delimited table with a "Gene" identifier
// column and one header per sample. The written file round-trips through
// Load.
func (m *Matrix) Write(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = '\t'

	header := append([]string{"Gene"}, m.Samples...)
	if err := w.Write(header); err != nil {
		return pfx.Err(err)
	}

	line := make([]string, 1+len(m.Samples))
	for i, row := range m.Data {
		line[0] = m.Names[i]
		for j, v := range row {
			line[j+1] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := w.Write(line); err != nil {
			return pfx.Err(err)
		}
	}

	w.Flush()
	return pfx.Err(w.Error())
}
