// Package model provides additional interfaces and types for machine learning models.
// This file complements the existing interfaces in estimator.go and transformer.go
package model

import (
	"gonum.org/v1/gonum/mat"
)

// Scorer is the interface for models that can compute a score.
type Scorer interface {
	// Score returns the mean accuracy (classification) or R^2 (regression)
	// of the prediction on the given data.
	Score(X mat.Matrix, y mat.Matrix) (float64, error)
}

// ProbabilisticClassifier is the capability interface consumed by the
// pseudo-labeling augmenter: anything that can be (re)fitted on labeled
// data, produce hard label predictions, and produce per-class probability
// estimates. Probabilities for class c must appear at column index c.
//
// Implementations are free to support any number of classes; the augmenter
// itself requires exactly two probability columns and rejects anything else.
type ProbabilisticClassifier interface {
	Fitter
	Predictor

	// PredictProba returns probability estimates for each class,
	// shaped n_samples x n_classes with rows summing to 1.
	PredictProba(X mat.Matrix) (mat.Matrix, error)
}

// Classifier combines interfaces for fully-featured classification models.
type Classifier interface {
	ProbabilisticClassifier
	Scorer

	// Classes returns the unique classes seen during fitting.
	Classes() []int
}

// ParameterGetter is the interface for models that expose their parameters.
type ParameterGetter interface {
	// GetParams returns the model's hyperparameters.
	GetParams() map[string]interface{}
}

// ParameterSetter is the interface for models that allow parameter modification.
type ParameterSetter interface {
	// SetParams sets the model's hyperparameters.
	SetParams(params map[string]interface{}) error
}
