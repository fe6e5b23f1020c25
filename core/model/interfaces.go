// Package model defines the estimator contracts shared by the training and
// serving layers. All estimators operate on gonum matrices: X is
// (n_samples × n_features), y is a (n_samples × 1) column.
package model

import "gonum.org/v1/gonum/mat"

// Fitter is a model that can be trained.
type Fitter interface {
	// Fit trains the model on X and target y.
	Fit(X, y mat.Matrix) error
}

// Predictor is a model that can predict.
type Predictor interface {
	// Predict returns a (n_samples × 1) column of predictions.
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Scorer is a model that can compute a goodness-of-fit score.
type Scorer interface {
	// Score returns the coefficient of determination R² of the prediction.
	Score(X, y mat.Matrix) (float64, error)
}

// Regressor combines the interfaces every regression model implements.
type Regressor interface {
	Fitter
	Predictor
	Scorer
}

// Transformer is a fitted data transformation, e.g. an imputer.
type Transformer interface {
	// Fit learns the transformation parameters from X.
	Fit(X mat.Matrix) error

	// Transform applies the learned transformation.
	Transform(X mat.Matrix) (mat.Matrix, error)

	// FitTransform fits and transforms in one call.
	FitTransform(X mat.Matrix) (mat.Matrix, error)
}

// ParameterGetter exposes hyperparameters, used by grid search to report
// the winning combination.
type ParameterGetter interface {
	// GetParams returns the model's hyperparameters.
	GetParams() map[string]interface{}
}
