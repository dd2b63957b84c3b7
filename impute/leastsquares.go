package impute

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

const (
	maxSweeps = 50
	tolerance = 1e-6
)

// LeastSquares is the default Estimator: iterative multivariate estimation in
// the chained-equations style. Missing entries are seeded with their column
// mean, then each column with missing values is regressed (with intercept) on
// the remaining columns over the rows where it was observed, and its missing
// entries are replaced by the fitted predictions. Sweeps repeat, in a
// seed-determined column order, until the largest change across imputed
// entries drops below tolerance. The numerical work is delegated to gonum's
// least-squares solver.
//
// Degenerate blocks are fatal: a single-column block has no predictors, and a
// column with no observed value at all has no mean to start from.
func LeastSquares(block [][]float64, seed int64) ([][]float64, error) {
	nRows := len(block)
	if nRows == 0 {
		return block, nil
	}
	nCols := len(block[0])
	if nCols < 2 {
		return nil, fmt.Errorf("block has %d column(s); need at least 2 for multivariate estimation", nCols)
	}

	missing := make([][]bool, nRows)
	observedPerCol := make([]int, nCols)
	for i, row := range block {
		missing[i] = make([]bool, nCols)
		for j, v := range row {
			if math.IsNaN(v) {
				missing[i][j] = true
			} else {
				observedPerCol[j]++
			}
		}
	}

	// Start every missing entry at its column mean.
	needsFill := make([]bool, nCols)
	for j := 0; j < nCols; j++ {
		if observedPerCol[j] == 0 {
			return nil, fmt.Errorf("column %d of the block has no observed values", j)
		}
		if observedPerCol[j] == nRows {
			continue
		}
		needsFill[j] = true

		sum := 0.0
		for i := 0; i < nRows; i++ {
			if !missing[i][j] {
				sum += block[i][j]
			}
		}
		mean := sum / float64(observedPerCol[j])
		for i := 0; i < nRows; i++ {
			if missing[i][j] {
				block[i][j] = mean
			}
		}
	}

	// Visit order is randomized but seed-determined, so runs with the same
	// seed reproduce the same fill.
	rng := rand.New(rand.NewSource(seed))

	for sweep := 0; sweep < maxSweeps; sweep++ {
		order := rng.Perm(nCols)
		maxDelta := 0.0

		for _, j := range order {
			if !needsFill[j] {
				continue
			}
			if delta, err := refitColumn(block, missing, j); err != nil {
				return nil, err
			} else if delta > maxDelta {
				maxDelta = delta
			}
		}

		if maxDelta < tolerance {
			return block, nil
		}
	}

	return nil, fmt.Errorf("estimates still moving after %d sweeps", maxSweeps)
}

// refitColumn regresses column j on all other columns over the rows where j
// was observed, then replaces j's imputed entries with the fitted values.
// Returns the largest absolute change among the replaced entries. When there
// are too few observed rows to identify the regression, the current column
// means are kept as the estimate.
func refitColumn(block [][]float64, missing [][]bool, j int) (float64, error) {
	nRows := len(block)
	nCols := len(block[0])

	var trainRows, fillRows []int
	for i := 0; i < nRows; i++ {
		if missing[i][j] {
			fillRows = append(fillRows, i)
		} else {
			trainRows = append(trainRows, i)
		}
	}

	// Intercept plus one predictor per remaining column.
	nPred := nCols
	if len(trainRows) <= nPred {
		return 0, nil
	}

	x := mat.NewDense(len(trainRows), nPred, nil)
	y := mat.NewVecDense(len(trainRows), nil)
	for r, i := range trainRows {
		x.Set(r, 0, 1)
		c := 1
		for k := 0; k < nCols; k++ {
			if k == j {
				continue
			}
			x.Set(r, c, block[i][k])
			c++
		}
		y.SetVec(r, block[i][j])
	}

	var beta mat.VecDense
	if err := beta.SolveVec(x, y); err != nil {
		return 0, fmt.Errorf("regression for column %d is ill-conditioned: %v", j, err)
	}

	maxDelta := 0.0
	for _, i := range fillRows {
		pred := beta.AtVec(0)
		c := 1
		for k := 0; k < nCols; k++ {
			if k == j {
				continue
			}
			pred += beta.AtVec(c) * block[i][k]
			c++
		}

		if d := math.Abs(pred - block[i][j]); d > maxDelta {
			maxDelta = d
		}
		block[i][j] = pred
	}

	return maxDelta, nil
}
