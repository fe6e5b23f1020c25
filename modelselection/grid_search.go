package modelselection

import (
	"fmt"
	"sync"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/UZRashid/MLG382-Project2/ensemble"
	"github.com/UZRashid/MLG382-Project2/metrics"
	scierrors "github.com/UZRashid/MLG382-Project2/pkg/errors"
	"github.com/UZRashid/MLG382-Project2/pkg/log"
)

// ParamGrid is the hyperparameter search space for the forest. Empty
// dimensions keep the template estimator's value.
type ParamGrid struct {
	NEstimators []int
	MaxDepth    []int
}

// DefaultParamGrid matches the grid the training pipeline searches:
// n_estimators in {25, 50, 75}, max_depth in {10, 20, 30, 40}.
func DefaultParamGrid() ParamGrid {
	return ParamGrid{
		NEstimators: []int{25, 50, 75},
		MaxDepth:    []int{10, 20, 30, 40},
	}
}

// combinations expands the grid into concrete (n_estimators, max_depth)
// pairs, falling back to the template's values for empty dimensions.
func (g ParamGrid) combinations(template *ensemble.RandomForestRegressor) []gridPoint {
	nEst := g.NEstimators
	if len(nEst) == 0 {
		nEst = []int{template.NEstimators}
	}
	depths := g.MaxDepth
	if len(depths) == 0 {
		depths = []int{template.MaxDepth}
	}

	points := make([]gridPoint, 0, len(nEst)*len(depths))
	for _, n := range nEst {
		for _, d := range depths {
			points = append(points, gridPoint{nEstimators: n, maxDepth: d})
		}
	}
	return points
}

type gridPoint struct {
	nEstimators int
	maxDepth    int
}

// CrossValidate fits one forest per fold and scores train and test
// partitions with mean absolute error. Folds are evaluated concurrently,
// mirroring the forest's own parallel tree growth.
func CrossValidate(template *ensemble.RandomForestRegressor, X, y mat.Matrix, splitter Splitter) (*CVResult, error) {
	folds := splitter.Split(X, y)
	nFolds := len(folds)
	if nFolds == 0 {
		return nil, scierrors.NewValueError("CrossValidate", "splitter produced no folds")
	}

	result := &CVResult{
		TrainScores: make([]float64, nFolds),
		TestScores:  make([]float64, nFolds),
	}

	var wg sync.WaitGroup
	foldErrs := make([]error, nFolds)

	for foldIdx := 0; foldIdx < nFolds; foldIdx++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			fold := folds[idx]
			trainX, trainY := extractSubset(X, y, fold.TrainIndices)
			testX, testY := extractSubset(X, y, fold.TestIndices)

			candidate := template.Clone()
			if err := candidate.Fit(trainX, trainY); err != nil {
				foldErrs[idx] = fmt.Errorf("fold %d training failed: %w", idx, err)
				return
			}

			trainPred, err := candidate.Predict(trainX)
			if err != nil {
				foldErrs[idx] = fmt.Errorf("fold %d train prediction failed: %w", idx, err)
				return
			}
			trainMAE, err := metrics.MAEMatrix(trainY, trainPred)
			if err != nil {
				foldErrs[idx] = fmt.Errorf("fold %d train scoring failed: %w", idx, err)
				return
			}
			result.TrainScores[idx] = trainMAE

			testPred, err := candidate.Predict(testX)
			if err != nil {
				foldErrs[idx] = fmt.Errorf("fold %d test prediction failed: %w", idx, err)
				return
			}
			testMAE, err := metrics.MAEMatrix(testY, testPred)
			if err != nil {
				foldErrs[idx] = fmt.Errorf("fold %d test scoring failed: %w", idx, err)
				return
			}
			result.TestScores[idx] = testMAE
		}(foldIdx)
	}

	wg.Wait()

	for _, err := range foldErrs {
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// GridSearchCV exhaustively evaluates a parameter grid with k-fold
// cross-validation and refits the winning combination on the full data.
// Scoring is mean absolute error; the lowest mean test score wins.
type GridSearchCV struct {
	Estimator *ensemble.RandomForestRegressor
	ParamGrid ParamGrid
	CV        Splitter

	// Results, populated by Fit.
	BestEstimator *ensemble.RandomForestRegressor
	BestScore     float64
	BestParams    map[string]interface{}
	CVResults     []CandidateResult
}

// CandidateResult records one evaluated grid point.
type CandidateResult struct {
	NEstimators  int
	MaxDepth     int
	MeanTestMAE  float64
	StdTestMAE   float64
	MeanTrainMAE float64
}

// NewGridSearchCV creates a grid search over the given template estimator.
// A nil splitter defaults to shuffled 5-fold with the template's seed.
func NewGridSearchCV(template *ensemble.RandomForestRegressor, grid ParamGrid, cv Splitter) *GridSearchCV {
	if cv == nil {
		cv = NewKFold(5, true, template.RandomState)
	}
	return &GridSearchCV{
		Estimator: template,
		ParamGrid: grid,
		CV:        cv,
	}
}

// Fit runs the search. Grid points are evaluated sequentially; each point
// already fans out across folds and trees.
func (gs *GridSearchCV) Fit(X, y mat.Matrix) error {
	if gs.Estimator == nil {
		return scierrors.NewValueError("GridSearchCV.Fit", "nil template estimator")
	}

	points := gs.ParamGrid.combinations(gs.Estimator)
	logger := log.GetLoggerWithName("modelselection")
	start := time.Now()
	logger.Info("grid search started",
		"candidates", len(points),
		"folds", gs.CV.GetNSplits())

	gs.CVResults = gs.CVResults[:0]
	bestIdx := -1
	var bestScore float64

	for i, point := range points {
		candidate := gs.Estimator.Clone()
		candidate.NEstimators = point.nEstimators
		candidate.MaxDepth = point.maxDepth

		cvResult, err := CrossValidate(candidate, X, y, gs.CV)
		if err != nil {
			return scierrors.Wrapf(err, "grid point (n_estimators=%d, max_depth=%d)", point.nEstimators, point.maxDepth)
		}

		meanTest := cvResult.MeanTestScore()
		gs.CVResults = append(gs.CVResults, CandidateResult{
			NEstimators:  point.nEstimators,
			MaxDepth:     point.maxDepth,
			MeanTestMAE:  meanTest,
			StdTestMAE:   cvResult.StdTestScore(),
			MeanTrainMAE: meanScores(cvResult.TrainScores),
		})

		logger.Debug("grid point evaluated",
			"n_estimators", point.nEstimators,
			"max_depth", point.maxDepth,
			log.MAEKey, meanTest)

		if bestIdx < 0 || meanTest < bestScore {
			bestIdx = i
			bestScore = meanTest
		}
	}

	winner := points[bestIdx]
	gs.BestScore = bestScore
	gs.BestParams = map[string]interface{}{
		"n_estimators": winner.nEstimators,
		"max_depth":    winner.maxDepth,
	}

	// Refit the winning parameters on the full training data.
	gs.BestEstimator = gs.Estimator.Clone()
	gs.BestEstimator.NEstimators = winner.nEstimators
	gs.BestEstimator.MaxDepth = winner.maxDepth
	if err := gs.BestEstimator.Fit(X, y); err != nil {
		return scierrors.Wrap(err, "refit of best parameters failed")
	}

	logger.Info("grid search completed",
		"best_n_estimators", winner.nEstimators,
		"best_max_depth", winner.maxDepth,
		log.MAEKey, bestScore,
		log.DurationMsKey, time.Since(start).Milliseconds())

	return nil
}

func meanScores(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores))
}
