// Package modelselection provides train/test splitting, k-fold
// cross-validation and exhaustive grid search for the house price models.
package modelselection

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	scierrors "github.com/UZRashid/MLG382-Project2/pkg/errors"
)

// TrainTestSplit shuffles the rows of X and y with the given seed and
// splits them into train and test partitions. testSize is the fraction of
// rows assigned to the test partition, exclusive between 0 and 1.
func TrainTestSplit(X, y mat.Matrix, testSize float64, seed int) (XTrain, XTest, yTrain, yTest *mat.Dense, err error) {
	rows, _ := X.Dims()
	yRows, _ := y.Dims()

	if rows == 0 {
		return nil, nil, nil, nil, scierrors.NewValueError("TrainTestSplit", "empty data")
	}
	if rows != yRows {
		return nil, nil, nil, nil, scierrors.NewDimensionError("TrainTestSplit", rows, yRows, 0)
	}
	if testSize <= 0 || testSize >= 1 {
		return nil, nil, nil, nil, scierrors.NewValidationError("testSize", "must be in (0, 1)", testSize)
	}

	nTest := int(float64(rows) * testSize)
	if nTest == 0 || nTest == rows {
		return nil, nil, nil, nil, scierrors.NewValueError("TrainTestSplit", "split leaves an empty partition")
	}

	indices := make([]int, rows)
	for i := range indices {
		indices[i] = i
	}
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
	rng.Shuffle(rows, func(i, j int) {
		indices[i], indices[j] = indices[j], indices[i]
	})

	XTrain, yTrain = extractSubset(X, y, indices[nTest:])
	XTest, yTest = extractSubset(X, y, indices[:nTest])
	return XTrain, XTest, yTrain, yTest, nil
}

// extractSubset copies the selected rows of X and y into new matrices,
// preserving the order of indices.
func extractSubset(X, y mat.Matrix, indices []int) (*mat.Dense, *mat.Dense) {
	rows := len(indices)
	_, xCols := X.Dims()
	_, yCols := y.Dims()

	xSubset := mat.NewDense(rows, xCols, nil)
	ySubset := mat.NewDense(rows, yCols, nil)

	for i, idx := range indices {
		for j := 0; j < xCols; j++ {
			xSubset.Set(i, j, X.At(idx, j))
		}
		for j := 0; j < yCols; j++ {
			ySubset.Set(i, j, y.At(idx, j))
		}
	}
	return xSubset, ySubset
}
