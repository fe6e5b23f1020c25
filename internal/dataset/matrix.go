package dataset

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/mat"

	"github.com/UZRashid/MLG382-Project2/pkg/errors"
)

// Matrices converts a prepared frame into the (n × features) design matrix
// and the (n × 1) price column, with features laid out in FeatureColumns
// order.
func Matrices(prepared dataframe.DataFrame) (X, y *mat.Dense, err error) {
	present := make(map[string]bool, len(prepared.Names()))
	for _, name := range prepared.Names() {
		present[name] = true
	}
	for _, name := range featureColumns {
		if !present[name] {
			return nil, nil, errors.NewSchemaError("dataset.Matrices", PreparedColumns(), prepared.Names())
		}
	}
	if !present[TargetColumn] {
		return nil, nil, errors.NewSchemaError("dataset.Matrices", PreparedColumns(), prepared.Names())
	}

	n := prepared.Nrow()
	if n == 0 {
		return nil, nil, errors.Wrap(errors.ErrEmptyData, "dataset: matrices")
	}

	// Count columns gota parsed as integers; estimators consume float64.
	var widened []string
	for _, name := range append(FeatureColumns(), TargetColumn) {
		if t := prepared.Col(name).Type(); t == series.Int {
			widened = append(widened, name)
		}
	}
	if len(widened) > 0 {
		errors.Warn(errors.NewDataConversionWarning("int", "float64",
			fmt.Sprintf("columns %v widened for the estimators", widened)))
	}

	X = mat.NewDense(n, len(featureColumns), nil)
	for j, name := range featureColumns {
		col := prepared.Col(name).Float()
		for i := 0; i < n; i++ {
			X.Set(i, j, col[i])
		}
	}

	y = mat.NewDense(n, 1, prepared.Col(TargetColumn).Float())
	return X, y, nil
}

// FeatureRow assembles a single prediction-time row in the training feature
// order, deriving the engineered features with the same guarded arithmetic
// used during preparation.
func FeatureRow(bedrooms, bathrooms, sqftLiving, floors, waterfront, view float64) *mat.Dense {
	ratio, interaction, undefined := DerivedFeatures(bedrooms, bathrooms)
	if undefined {
		errors.Warn(errors.NewUndefinedFeatureWarning(RatioColumn, "bathrooms = 0", 1, 0))
	}

	return mat.NewDense(1, len(featureColumns), []float64{
		bedrooms, bathrooms, sqftLiving, floors, waterfront, view,
		ratio, interaction,
	})
}
