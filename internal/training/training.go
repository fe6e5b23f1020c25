// Package training runs the end-to-end fit: load and prepare the data,
// split it, optionally grid-search the forest hyperparameters, evaluate
// MAE on both partitions and hand back the fitted model.
package training

import (
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/UZRashid/MLG382-Project2/core/model"
	"github.com/UZRashid/MLG382-Project2/ensemble"
	"github.com/UZRashid/MLG382-Project2/internal/config"
	"github.com/UZRashid/MLG382-Project2/internal/dataset"
	"github.com/UZRashid/MLG382-Project2/metrics"
	"github.com/UZRashid/MLG382-Project2/modelselection"
	"github.com/UZRashid/MLG382-Project2/pipeline"
	"github.com/UZRashid/MLG382-Project2/pkg/errors"
	"github.com/UZRashid/MLG382-Project2/pkg/log"
	"github.com/UZRashid/MLG382-Project2/preprocessing"
)

// Result summarizes one training run.
type Result struct {
	Forest       *ensemble.RandomForestRegressor
	TrainMAE     float64
	TestMAE      float64
	TestR2       float64
	TrainRows    int
	TestRows     int
	PreparedRows int
	BestParams   map[string]interface{}
}

// Run trains a forest according to cfg. When cfg.GridSearch is set the
// hyperparameters come from a 5-fold cross-validated grid search over the
// training partition; otherwise cfg.NEstimators and cfg.MaxDepth are used
// directly, with the forest behind a mean imputer pipeline.
func Run(cfg *config.Config) (*Result, error) {
	logger := log.GetLoggerWithName("training")
	start := time.Now()

	raw, err := dataset.Load(cfg.DatasetPath)
	if err != nil {
		return nil, err
	}
	prepared, err := dataset.Prepare(raw)
	if err != nil {
		return nil, err
	}
	X, y, err := dataset.Matrices(prepared)
	if err != nil {
		return nil, err
	}

	XTrain, XTest, yTrain, yTest, err := modelselection.TrainTestSplit(X, y, cfg.TestSize, cfg.Seed)
	if err != nil {
		return nil, err
	}

	template := ensemble.NewRandomForestRegressor(
		ensemble.WithNEstimators(cfg.NEstimators),
		ensemble.WithMaxDepth(cfg.MaxDepth),
		ensemble.WithRandomState(cfg.Seed),
		ensemble.WithFeatureNames(dataset.FeatureColumns()),
	)

	result := &Result{PreparedRows: prepared.Nrow()}
	result.TrainRows, _ = XTrain.Dims()
	result.TestRows, _ = XTest.Dims()

	var predictor model.Regressor
	if cfg.GridSearch {
		// The imputer is fitted on the training partition only, so the
		// search never sees statistics derived from the test rows.
		imputer := preprocessing.NewSimpleImputerDefault()
		XTrainImp, err := imputer.FitTransform(XTrain)
		if err != nil {
			return nil, err
		}
		XTestImp, err := imputer.Transform(XTest)
		if err != nil {
			return nil, err
		}
		XTrain, XTest = XTrainImp.(*mat.Dense), XTestImp.(*mat.Dense)

		gs := modelselection.NewGridSearchCV(template, modelselection.DefaultParamGrid(), nil)
		if err := gs.Fit(XTrain, yTrain); err != nil {
			return nil, err
		}
		result.Forest = gs.BestEstimator
		result.BestParams = gs.BestParams
		predictor = gs.BestEstimator
	} else {
		p, err := pipeline.NewPipeline(template,
			pipeline.Step{Name: "imputer", Transformer: preprocessing.NewSimpleImputerDefault()})
		if err != nil {
			return nil, err
		}
		if err := p.Fit(XTrain, yTrain); err != nil {
			return nil, err
		}
		result.Forest = template
		result.BestParams = template.GetParams()
		predictor = p
	}

	if result.TrainMAE, err = evaluate(predictor, XTrain, yTrain); err != nil {
		return nil, err
	}
	if result.TestMAE, err = evaluate(predictor, XTest, yTest); err != nil {
		return nil, err
	}
	if result.TestR2, err = predictor.Score(XTest, yTest); err != nil {
		return nil, err
	}

	logger.Info("training completed",
		log.SamplesKey, result.PreparedRows,
		"train_rows", result.TrainRows,
		"test_rows", result.TestRows,
		"train_mae", result.TrainMAE,
		"test_mae", result.TestMAE,
		log.R2Key, result.TestR2,
		log.DurationMsKey, time.Since(start).Milliseconds())
	return result, nil
}

// Save persists the fitted forest to path.
func Save(result *Result, path string) error {
	if result.Forest == nil || !result.Forest.IsFitted() {
		return errors.Wrap(errors.ErrModelNotLoaded, "training: save")
	}
	if err := model.SaveModel(result.Forest, path); err != nil {
		return errors.Wrap(err, "training: save model")
	}
	return nil
}

// LoadForest reads a previously saved forest artifact.
func LoadForest(path string) (*ensemble.RandomForestRegressor, error) {
	forest := &ensemble.RandomForestRegressor{}
	if err := model.LoadModel(forest, path); err != nil {
		return nil, errors.Wrap(err, "training: load model")
	}
	if !forest.IsFitted() {
		return nil, errors.Wrap(errors.ErrModelNotLoaded, "training: load model")
	}
	return forest, nil
}

func evaluate(p model.Predictor, X, y mat.Matrix) (float64, error) {
	pred, err := p.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.MAEMatrix(y, pred)
}
