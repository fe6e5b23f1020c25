// Package pipeline chains preprocessing steps with a final regressor so
// that training and serving apply identical transformations.
package pipeline

import (
	"gonum.org/v1/gonum/mat"

	"github.com/UZRashid/MLG382-Project2/core/model"
	"github.com/UZRashid/MLG382-Project2/pkg/errors"
)

// Step is a named transformation stage.
type Step struct {
	Name        string
	Transformer model.Transformer
}

// Pipeline applies its steps in order, feeding the transformed matrix to
// the final estimator. It satisfies model.Regressor itself, so a pipeline
// can stand in anywhere a bare regressor is expected.
type Pipeline struct {
	model.BaseEstimator

	steps     []Step
	estimator model.Regressor
}

// NewPipeline builds a pipeline ending in estimator.
func NewPipeline(estimator model.Regressor, steps ...Step) (*Pipeline, error) {
	if estimator == nil {
		return nil, errors.NewValueError("pipeline.NewPipeline", "nil final estimator")
	}
	seen := make(map[string]bool, len(steps))
	for _, step := range steps {
		if step.Name == "" {
			return nil, errors.NewValueError("pipeline.NewPipeline", "step with empty name")
		}
		if step.Transformer == nil {
			return nil, errors.NewValueError("pipeline.NewPipeline", "step "+step.Name+" has nil transformer")
		}
		if seen[step.Name] {
			return nil, errors.NewValueError("pipeline.NewPipeline", "duplicate step name "+step.Name)
		}
		seen[step.Name] = true
	}
	return &Pipeline{steps: steps, estimator: estimator}, nil
}

// Steps returns the pipeline's transformation stages.
func (p *Pipeline) Steps() []Step { return p.steps }

// Estimator returns the final regressor.
func (p *Pipeline) Estimator() model.Regressor { return p.estimator }

// Fit fit-transforms each step in order and trains the final estimator on
// the fully transformed matrix.
func (p *Pipeline) Fit(X, y mat.Matrix) error {
	current := X
	for _, step := range p.steps {
		transformed, err := step.Transformer.FitTransform(current)
		if err != nil {
			return errors.Wrapf(err, "pipeline step %s", step.Name)
		}
		current = transformed
	}

	if err := p.estimator.Fit(current, y); err != nil {
		return errors.Wrap(err, "pipeline final estimator")
	}

	p.SetFitted()
	return nil
}

// Predict transforms X through every fitted step and predicts with the
// final estimator.
func (p *Pipeline) Predict(X mat.Matrix) (mat.Matrix, error) {
	transformed, err := p.transform(X)
	if err != nil {
		return nil, err
	}
	return p.estimator.Predict(transformed)
}

// Score transforms X and delegates scoring to the final estimator.
func (p *Pipeline) Score(X, y mat.Matrix) (float64, error) {
	transformed, err := p.transform(X)
	if err != nil {
		return 0, err
	}
	return p.estimator.Score(transformed, y)
}

func (p *Pipeline) transform(X mat.Matrix) (mat.Matrix, error) {
	if !p.IsFitted() {
		return nil, errors.NewNotFittedError("Pipeline", "Predict")
	}
	current := X
	for _, step := range p.steps {
		transformed, err := step.Transformer.Transform(current)
		if err != nil {
			return nil, errors.Wrapf(err, "pipeline step %s", step.Name)
		}
		current = transformed
	}
	return current, nil
}
