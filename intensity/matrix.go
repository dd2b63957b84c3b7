// Package intensity loads and persists gene-by-sample intensity matrices.
package intensity

// Matrix is a dense gene-by-sample intensity table. Names holds one unique,
// uppercased gene identifier per row; Samples holds the column headers in
// input order. A value of 0 means the protein was not detected in that
// sample; true missingness is not distinguishable from zero signal until the
// imputation stage introduces an explicit sentinel.
type Matrix struct {
	Names   []string
	Samples []string
	Data    [][]float64
}

// NumRows returns the number of gene rows.
func (m *Matrix) NumRows() int { return len(m.Names) }

// NumCols returns the number of sample columns.
func (m *Matrix) NumCols() int { return len(m.Samples) }

// Clone deep-copies the matrix so a downstream stage can transform values
// without mutating its input.
func (m *Matrix) Clone() *Matrix {
	out := &Matrix{
		Names:   append([]string(nil), m.Names...),
		Samples: append([]string(nil), m.Samples...),
		Data:    make([][]float64, len(m.Data)),
	}
	for i, row := range m.Data {
		out.Data[i] = append([]float64(nil), row...)
	}
	return out
}
