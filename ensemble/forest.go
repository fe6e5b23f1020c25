// Package ensemble implements a random forest regressor with a
// scikit-learn compatible API on gonum matrices. Trees are grown on
// bootstrap samples with per-split feature subsampling and combined by
// averaging.
package ensemble

import (
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/UZRashid/MLG382-Project2/core/model"
	"github.com/UZRashid/MLG382-Project2/core/parallel"
	"github.com/UZRashid/MLG382-Project2/metrics"
	scierrors "github.com/UZRashid/MLG382-Project2/pkg/errors"
	"github.com/UZRashid/MLG382-Project2/pkg/log"
)

// predictParallelThreshold is the batch size below which prediction runs
// sequentially. Single-row dashboard requests stay on one goroutine.
const predictParallelThreshold = 64

// RandomForestRegressor is an averaged ensemble of variance-reduction
// regression trees.
type RandomForestRegressor struct {
	model.BaseEstimator

	// Hyperparameters.
	NEstimators     int // Number of trees
	MaxDepth        int // Maximum tree depth, -1 for unlimited
	MinSamplesSplit int // Minimum rows required to split a node
	MaxFeatures     int // Features sampled per split, 0 for all
	RandomState     int // Seed for bootstrap and feature sampling

	// FeatureNames is the training-time feature schema, in column order.
	// Serving uses it to assemble prediction rows in the identical order.
	FeatureNames []string

	// Trees holds the fitted ensemble.
	Trees []*Tree

	nFeatures int
	nSamples  int
}

// NewRandomForestRegressor creates a forest with the given options.
// Defaults: 50 trees, unlimited depth, min samples split 2, all features
// per split, seed 42.
func NewRandomForestRegressor(opts ...Option) *RandomForestRegressor {
	rf := &RandomForestRegressor{
		NEstimators:     50,
		MaxDepth:        -1,
		MinSamplesSplit: 2,
		MaxFeatures:     0,
		RandomState:     42,
	}
	for _, opt := range opts {
		opt(rf)
	}
	return rf
}

// Fit trains the forest. X is (n_samples × n_features), y is a
// (n_samples × 1) column of prices.
func (rf *RandomForestRegressor) Fit(X, y mat.Matrix) (err error) {
	defer scierrors.Recover(&err, "RandomForestRegressor.Fit")

	rows, cols := X.Dims()
	yRows, yCols := y.Dims()

	if rows == 0 || cols == 0 {
		return scierrors.NewModelError("RandomForestRegressor.Fit", "empty data", scierrors.ErrEmptyData)
	}
	if rows != yRows {
		return scierrors.NewDimensionError("RandomForestRegressor.Fit", rows, yRows, 0)
	}
	if yCols != 1 {
		return scierrors.NewDimensionError("RandomForestRegressor.Fit", 1, yCols, 1)
	}
	if rf.NEstimators < 1 {
		return scierrors.NewValidationError("NEstimators", "must be >= 1", rf.NEstimators)
	}
	if len(rf.FeatureNames) > 0 && len(rf.FeatureNames) != cols {
		return scierrors.NewSchemaError("RandomForestRegressor.Fit", rf.FeatureNames, nil)
	}
	if err := scierrors.CheckMatrix("RandomForestRegressor.Fit", X, rows, cols); err != nil {
		return err
	}

	rf.nFeatures = cols
	rf.nSamples = rows

	// Copy into row-major slices once; tree growth indexes rows heavily.
	xRows := make([][]float64, rows)
	yVals := make([]float64, rows)
	for i := 0; i < rows; i++ {
		xRows[i] = make([]float64, cols)
		for j := 0; j < cols; j++ {
			xRows[i][j] = X.At(i, j)
		}
		yVals[i] = y.At(i, 0)
	}

	params := treeParams{
		maxDepth:        rf.MaxDepth,
		minSamplesSplit: rf.MinSamplesSplit,
		maxFeatures:     rf.MaxFeatures,
	}

	logger := log.GetLoggerWithName("ensemble")
	start := time.Now()
	logger.Debug("growing forest",
		log.ModelNameKey, "RandomForestRegressor",
		log.OperationKey, "fit",
		log.SamplesKey, rows,
		log.FeaturesKey, cols,
		"n_estimators", rf.NEstimators,
		"max_depth", rf.MaxDepth)

	trees := make([]*Tree, rf.NEstimators)
	parallel.Parallelize(rf.NEstimators, func(startIdx, endIdx int) {
		for t := startIdx; t < endIdx; t++ {
			// Each tree owns a PRNG seeded from (RandomState, tree index),
			// so a fixed RandomState refits to an identical forest
			// regardless of worker scheduling.
			rng := rand.New(rand.NewPCG(uint64(rf.RandomState), uint64(t)))

			indices := make([]int, rows)
			for i := range indices {
				indices[i] = rng.IntN(rows)
			}
			trees[t] = growTree(xRows, yVals, indices, params, rng)
		}
	})

	rf.Trees = trees
	rf.SetFitted()

	logger.Info("forest fitted",
		log.ModelNameKey, "RandomForestRegressor",
		log.SamplesKey, rows,
		"n_estimators", rf.NEstimators,
		log.DurationMsKey, time.Since(start).Milliseconds())

	return nil
}

// Predict returns the mean tree prediction for each row of X as a
// (n_samples × 1) column.
func (rf *RandomForestRegressor) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !rf.IsFitted() {
		return nil, scierrors.NewNotFittedError("RandomForestRegressor", "Predict")
	}

	rows, cols := X.Dims()
	if cols != rf.nFeatures {
		return nil, scierrors.NewDimensionError("RandomForestRegressor.Predict", rf.nFeatures, cols, 1)
	}

	out := mat.NewDense(rows, 1, nil)
	parallel.ParallelizeWithThreshold(rows, predictParallelThreshold, func(start, end int) {
		row := make([]float64, cols)
		for i := start; i < end; i++ {
			for j := 0; j < cols; j++ {
				row[j] = X.At(i, j)
			}
			var sum float64
			for _, t := range rf.Trees {
				sum += t.PredictRow(row)
			}
			out.Set(i, 0, sum/float64(len(rf.Trees)))
		}
	})

	return out, nil
}

// Score returns the coefficient of determination R² on (X, y).
func (rf *RandomForestRegressor) Score(X, y mat.Matrix) (float64, error) {
	if !rf.IsFitted() {
		return 0, scierrors.NewNotFittedError("RandomForestRegressor", "Score")
	}

	predictions, err := rf.Predict(X)
	if err != nil {
		return 0, err
	}

	rows, _ := y.Dims()
	yVec := mat.NewVecDense(rows, nil)
	predVec := mat.NewVecDense(rows, nil)
	for i := 0; i < rows; i++ {
		yVec.SetVec(i, y.At(i, 0))
		predVec.SetVec(i, predictions.At(i, 0))
	}
	return metrics.R2Score(yVec, predVec)
}

// NFeatures returns the number of features seen during Fit.
func (rf *RandomForestRegressor) NFeatures() int {
	return rf.nFeatures
}

// GetParams returns the forest's hyperparameters.
func (rf *RandomForestRegressor) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"n_estimators":      rf.NEstimators,
		"max_depth":         rf.MaxDepth,
		"min_samples_split": rf.MinSamplesSplit,
		"max_features":      rf.MaxFeatures,
		"random_state":      rf.RandomState,
	}
}

// Clone returns an unfitted forest with the same hyperparameters. Grid
// search uses it to fit one candidate per parameter combination.
func (rf *RandomForestRegressor) Clone() *RandomForestRegressor {
	return &RandomForestRegressor{
		NEstimators:     rf.NEstimators,
		MaxDepth:        rf.MaxDepth,
		MinSamplesSplit: rf.MinSamplesSplit,
		MaxFeatures:     rf.MaxFeatures,
		RandomState:     rf.RandomState,
		FeatureNames:    rf.FeatureNames,
	}
}
