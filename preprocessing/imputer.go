// Package preprocessing provides fitted data transformations applied ahead
// of the regressor. The housing data ships without missing values, so the
// imputer acts as a pass-through there; it exists so the training pipeline
// tolerates gaps should the raw extract ever contain them.
package preprocessing

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/UZRashid/MLG382-Project2/core/model"
	"github.com/UZRashid/MLG382-Project2/pkg/errors"
)

// Imputation strategies.
const (
	StrategyMean     = "mean"
	StrategyMedian   = "median"
	StrategyConstant = "constant"
)

// SimpleImputer replaces NaN entries with a per-column statistic learned
// during Fit.
type SimpleImputer struct {
	model.BaseEstimator

	// Strategy is one of mean, median or constant.
	Strategy string

	// FillValue is the substitute used by the constant strategy.
	FillValue float64

	// Statistics holds the learned per-column fill values.
	Statistics []float64

	// NFeatures is the column count seen during Fit.
	NFeatures int
}

// NewSimpleImputer creates an imputer with the given strategy.
func NewSimpleImputer(strategy string) *SimpleImputer {
	return &SimpleImputer{Strategy: strategy}
}

// NewSimpleImputerDefault creates a mean-strategy imputer.
func NewSimpleImputerDefault() *SimpleImputer {
	return NewSimpleImputer(StrategyMean)
}

// Fit learns the per-column fill statistics from the non-missing entries
// of X. A column with no observed values gets fill value 0.
func (im *SimpleImputer) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("SimpleImputer.Fit", "empty data", errors.ErrEmptyData)
	}

	switch im.Strategy {
	case StrategyMean, StrategyMedian, StrategyConstant:
	default:
		return errors.NewValidationError("Strategy", "must be mean, median or constant", im.Strategy)
	}

	im.NFeatures = c
	im.Statistics = make([]float64, c)

	for j := 0; j < c; j++ {
		switch im.Strategy {
		case StrategyConstant:
			im.Statistics[j] = im.FillValue
		case StrategyMean:
			var sum float64
			var count int
			for i := 0; i < r; i++ {
				v := X.At(i, j)
				if !math.IsNaN(v) {
					sum += v
					count++
				}
			}
			if count > 0 {
				im.Statistics[j] = sum / float64(count)
			}
		case StrategyMedian:
			var observed []float64
			for i := 0; i < r; i++ {
				v := X.At(i, j)
				if !math.IsNaN(v) {
					observed = append(observed, v)
				}
			}
			im.Statistics[j] = median(observed)
		}
	}

	im.SetFitted()
	return nil
}

// Transform returns a copy of X with NaN entries replaced by the learned
// statistics.
func (im *SimpleImputer) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !im.IsFitted() {
		return nil, errors.NewNotFittedError("SimpleImputer", "Transform")
	}

	r, c := X.Dims()
	if c != im.NFeatures {
		return nil, errors.NewDimensionError("SimpleImputer.Transform", im.NFeatures, c, 1)
	}

	out := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := X.At(i, j)
			if math.IsNaN(v) {
				v = im.Statistics[j]
			}
			out.Set(i, j, v)
		}
	}
	return out, nil
}

// FitTransform fits the imputer and transforms X in one call.
func (im *SimpleImputer) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := im.Fit(X); err != nil {
		return nil, err
	}
	return im.Transform(X)
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
