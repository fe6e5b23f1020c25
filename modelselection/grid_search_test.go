package modelselection

import (
	"math/rand/v2"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/UZRashid/MLG382-Project2/ensemble"
)

func noisyLinearData(n int, seed uint64) (*mat.Dense, *mat.Dense) {
	rng := rand.New(rand.NewPCG(seed, seed))
	X := mat.NewDense(n, 2, nil)
	y := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		a := rng.Float64() * 10
		b := rng.Float64() * 5
		X.Set(i, 0, a)
		X.Set(i, 1, b)
		y.Set(i, 0, 3*a+7*b+rng.NormFloat64()*0.5)
	}
	return X, y
}

func TestCrossValidate(t *testing.T) {
	X, y := noisyLinearData(120, 4)
	template := ensemble.NewRandomForestRegressor(
		ensemble.WithNEstimators(10),
		ensemble.WithMaxDepth(8),
		ensemble.WithRandomState(1),
	)

	result, err := CrossValidate(template, X, y, NewKFold(5, true, 1))
	if err != nil {
		t.Fatalf("CrossValidate() error = %v", err)
	}

	if len(result.TrainScores) != 5 || len(result.TestScores) != 5 {
		t.Fatalf("expected 5 fold scores, got %d/%d", len(result.TrainScores), len(result.TestScores))
	}
	for i := range result.TestScores {
		if result.TestScores[i] < 0 {
			t.Errorf("fold %d: MAE cannot be negative: %v", i, result.TestScores[i])
		}
		// Forests overfit their training partition, so train error should
		// not exceed test error by any meaningful margin.
		if result.TrainScores[i] > result.TestScores[i]*1.5 {
			t.Errorf("fold %d: train MAE %v unexpectedly above test MAE %v",
				i, result.TrainScores[i], result.TestScores[i])
		}
	}

	// The template itself must stay unfitted; folds train clones.
	if template.IsFitted() {
		t.Error("CrossValidate must not fit the template estimator")
	}
}

func TestGridSearchCV_Fit(t *testing.T) {
	X, y := noisyLinearData(100, 9)

	template := ensemble.NewRandomForestRegressor(
		ensemble.WithRandomState(5),
		ensemble.WithMinSamplesSplit(2),
	)
	grid := ParamGrid{
		NEstimators: []int{5, 10},
		MaxDepth:    []int{3, 6},
	}

	gs := NewGridSearchCV(template, grid, NewKFold(3, true, 5))
	if err := gs.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	if len(gs.CVResults) != 4 {
		t.Fatalf("expected 4 evaluated grid points, got %d", len(gs.CVResults))
	}
	if gs.BestEstimator == nil || !gs.BestEstimator.IsFitted() {
		t.Fatal("best estimator should be refit on the full data")
	}

	// The reported best score must be the minimum mean test MAE.
	for _, res := range gs.CVResults {
		if res.MeanTestMAE < gs.BestScore {
			t.Errorf("grid point (%d, %d) has MAE %v below reported best %v",
				res.NEstimators, res.MaxDepth, res.MeanTestMAE, gs.BestScore)
		}
	}

	// Best params must match the best estimator's configuration.
	if gs.BestEstimator.NEstimators != gs.BestParams["n_estimators"].(int) {
		t.Error("best estimator diverges from reported best params")
	}
	if gs.BestEstimator.MaxDepth != gs.BestParams["max_depth"].(int) {
		t.Error("best estimator depth diverges from reported best params")
	}

	// The refit model predicts on the training schema.
	pred, err := gs.BestEstimator.Predict(X)
	if err != nil {
		t.Fatalf("best estimator Predict() error = %v", err)
	}
	rows, cols := pred.Dims()
	if rows != 100 || cols != 1 {
		t.Errorf("unexpected prediction shape (%d, %d)", rows, cols)
	}
}

func TestDefaultParamGrid(t *testing.T) {
	grid := DefaultParamGrid()
	template := ensemble.NewRandomForestRegressor()

	points := grid.combinations(template)
	if len(points) != 12 {
		t.Fatalf("expected 3x4 = 12 combinations, got %d", len(points))
	}
}

func TestParamGrid_EmptyDimensionsUseTemplate(t *testing.T) {
	template := ensemble.NewRandomForestRegressor(
		ensemble.WithNEstimators(33),
		ensemble.WithMaxDepth(17),
	)

	points := ParamGrid{}.combinations(template)
	if len(points) != 1 {
		t.Fatalf("expected 1 combination, got %d", len(points))
	}
	if points[0].nEstimators != 33 || points[0].maxDepth != 17 {
		t.Errorf("expected template values, got %+v", points[0])
	}
}
