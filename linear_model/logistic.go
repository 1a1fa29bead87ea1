// Package linear_model provides linear classifiers with a scikit-learn-like API.
package linear_model

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/semigo-ml/semigo/core/model"
	"github.com/semigo-ml/semigo/core/parallel"
	"github.com/semigo-ml/semigo/metrics"
	"github.com/semigo-ml/semigo/pkg/errors"
)

// LogisticRegression implements binary logistic regression trained with
// gradient descent. The API follows scikit-learn's LogisticRegression,
// restricted to two classes.
type LogisticRegression struct {
	state *model.StateManager // State management (composition)

	// Hyperparameters
	penalty      string  // Regularization: "l2", "none"
	c            float64 // Inverse regularization strength (1/alpha)
	fitIntercept bool    // Whether to fit intercept
	randomState  int64   // Random seed
	maxIter      int     // Maximum iterations
	tol          float64 // Tolerance for stopping

	// Model parameters
	coef_      []float64 // Coefficients (n_features)
	intercept_ float64   // Intercept term
	classes_   []int     // Unique class labels, sorted ascending
	nFeatures_ int       // Number of features
	nIter_     int       // Actual iterations run

	// Internal state
	rand *rand.Rand
}

var _ model.Classifier = (*LogisticRegression)(nil)

// LogisticRegressionOption is a functional option for LogisticRegression
type LogisticRegressionOption func(*LogisticRegression)

// NewLogisticRegression creates a new LogisticRegression classifier
func NewLogisticRegression(opts ...LogisticRegressionOption) *LogisticRegression {
	lr := &LogisticRegression{
		state:        model.NewStateManager(),
		penalty:      "l2",
		c:            1.0,
		fitIntercept: true,
		randomState:  -1,
		maxIter:      100,
		tol:          1e-4,
	}

	// Apply options
	for _, opt := range opts {
		opt(lr)
	}

	// Initialize random generator if seed is set
	if lr.randomState >= 0 {
		lr.rand = rand.New(rand.NewSource(lr.randomState))
	} else {
		lr.rand = rand.New(rand.NewSource(rand.Int63()))
	}

	return lr
}

// WithLRPenalty sets the regularization type ("l2" or "none")
func WithLRPenalty(penalty string) LogisticRegressionOption {
	return func(lr *LogisticRegression) {
		lr.penalty = penalty
	}
}

// WithLRC sets the inverse regularization strength
func WithLRC(c float64) LogisticRegressionOption {
	return func(lr *LogisticRegression) {
		lr.c = c
	}
}

// WithLRFitIntercept sets whether to fit intercept
func WithLRFitIntercept(fit bool) LogisticRegressionOption {
	return func(lr *LogisticRegression) {
		lr.fitIntercept = fit
	}
}

// WithLRMaxIter sets the maximum number of iterations
func WithLRMaxIter(maxIter int) LogisticRegressionOption {
	return func(lr *LogisticRegression) {
		lr.maxIter = maxIter
	}
}

// WithLRTol sets the tolerance for stopping criteria
func WithLRTol(tol float64) LogisticRegressionOption {
	return func(lr *LogisticRegression) {
		lr.tol = tol
	}
}

// WithLRRandomState sets the random seed
func WithLRRandomState(seed int64) LogisticRegressionOption {
	return func(lr *LogisticRegression) {
		lr.randomState = seed
		if seed >= 0 {
			lr.rand = rand.New(rand.NewSource(seed))
		}
	}
}

// Fit trains the logistic regression model. Refitting on a new labeled set
// discards the previous solution.
func (lr *LogisticRegression) Fit(X, y mat.Matrix) error {
	nSamples, nFeatures := X.Dims()
	yRows, yCols := y.Dims()

	if nSamples == 0 {
		return errors.NewModelError("LogisticRegression.Fit", "empty data", errors.ErrEmptyData)
	}
	if nSamples != yRows {
		return errors.NewDimensionError("LogisticRegression.Fit", nSamples, yRows, 0)
	}
	if yCols != 1 {
		return errors.NewValueError("LogisticRegression.Fit", "y must be a column vector")
	}
	if err := errors.CheckMatrix("LogisticRegression.Fit", X, nSamples, nFeatures, 0); err != nil {
		return err
	}

	if err := lr.extractClasses(y); err != nil {
		return err
	}

	lr.state.Reset()
	lr.nFeatures_ = nFeatures
	lr.initializeWeights(nFeatures)

	if err := lr.fitBinary(X, y); err != nil {
		return err
	}

	lr.state.SetDimensions(nFeatures, nSamples)
	lr.state.SetFitted()
	return nil
}

// extractClasses identifies the two class labels, sorted ascending
func (lr *LogisticRegression) extractClasses(y mat.Matrix) error {
	rows, _ := y.Dims()
	classMap := make(map[int]bool)

	for i := 0; i < rows; i++ {
		label := y.At(i, 0)
		if label != math.Trunc(label) {
			return errors.NewValidationError("y", "labels must be integers", label)
		}
		classMap[int(label)] = true
	}

	if len(classMap) > 2 {
		return errors.NewValidationError("y", "binary classifier supports exactly 2 classes", len(classMap))
	}
	if len(classMap) < 2 {
		return errors.NewValidationError("y", "needs samples of 2 classes", len(classMap))
	}

	lr.classes_ = make([]int, 0, 2)
	for class := range classMap {
		lr.classes_ = append(lr.classes_, class)
	}
	if lr.classes_[0] > lr.classes_[1] {
		lr.classes_[0], lr.classes_[1] = lr.classes_[1], lr.classes_[0]
	}
	return nil
}

// initializeWeights initializes model weights with small random values
func (lr *LogisticRegression) initializeWeights(nFeatures int) {
	lr.coef_ = make([]float64, nFeatures)
	lr.intercept_ = 0
	lr.nIter_ = 0

	for j := range lr.coef_ {
		lr.coef_[j] = lr.rand.NormFloat64() * 0.01
	}
}

// fitBinary runs gradient descent on the logistic loss
func (lr *LogisticRegression) fitBinary(X, y mat.Matrix) error {
	nSamples, nFeatures := X.Dims()

	// Convert labels to 0/1 against the sorted class pair
	yBinary := make([]float64, nSamples)
	for i := 0; i < nSamples; i++ {
		if int(y.At(i, 0)) == lr.classes_[1] {
			yBinary[i] = 1.0
		}
	}

	baseLearningRate := 1.0
	converged := false

	for iter := 0; iter < lr.maxIter; iter++ {
		// Compute predictions
		predictions := make([]float64, nSamples)
		for i := 0; i < nSamples; i++ {
			z := lr.intercept_
			for j := 0; j < nFeatures; j++ {
				z += X.At(i, j) * lr.coef_[j]
			}
			predictions[i] = sigmoid(z)
		}

		// Compute gradients
		gradWeights := make([]float64, nFeatures)
		gradIntercept := 0.0

		for i := 0; i < nSamples; i++ {
			residual := predictions[i] - yBinary[i]
			gradIntercept += residual
			for j := 0; j < nFeatures; j++ {
				gradWeights[j] += residual * X.At(i, j)
			}
		}

		// Scale gradients by number of samples
		for j := range gradWeights {
			gradWeights[j] /= float64(nSamples)
		}
		gradIntercept /= float64(nSamples)

		// Add L2 regularization gradient
		if lr.penalty == "l2" {
			lambda := 1.0 / lr.c
			for j := range lr.coef_ {
				gradWeights[j] += lambda * lr.coef_[j]
			}
		}

		// Adaptive learning rate
		learningRate := baseLearningRate / (1.0 + 0.1*float64(iter))

		// Update weights
		for j := range lr.coef_ {
			lr.coef_[j] -= learningRate * gradWeights[j]
		}
		if lr.fitIntercept {
			lr.intercept_ -= learningRate * gradIntercept
		}

		lr.nIter_ = iter + 1

		if err := errors.CheckNumericalStability("gradient_update", lr.coef_, lr.nIter_); err != nil {
			return err
		}

		// Check convergence
		maxGrad := math.Abs(gradIntercept)
		for _, g := range gradWeights {
			if math.Abs(g) > maxGrad {
				maxGrad = math.Abs(g)
			}
		}
		if maxGrad < lr.tol {
			converged = true
			break
		}
	}

	if !converged {
		errors.Warn(errors.NewConvergenceWarning("LogisticRegression", lr.nIter_, ""))
	}

	return nil
}

// decisionFunction computes the raw score w·x + b for one row
func (lr *LogisticRegression) decisionFunction(X mat.Matrix, i int) float64 {
	z := lr.intercept_
	for j := 0; j < lr.nFeatures_; j++ {
		z += X.At(i, j) * lr.coef_[j]
	}
	return z
}

// Predict makes hard-label predictions for input data.
// An exact probability tie (p = 0.5) resolves to the lower class.
func (lr *LogisticRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !lr.state.IsFitted() {
		return nil, errors.NewNotFittedError("LogisticRegression", "Predict")
	}

	nSamples, nFeatures := X.Dims()
	if nFeatures != lr.nFeatures_ {
		return nil, errors.NewDimensionError("LogisticRegression.Predict", lr.nFeatures_, nFeatures, 1)
	}

	predictions := mat.NewDense(nSamples, 1, nil)

	parallel.ParallelizeWithThreshold(nSamples, 256, func(start, end int) {
		for i := start; i < end; i++ {
			prob := sigmoid(lr.decisionFunction(X, i))
			if prob > 0.5 {
				predictions.Set(i, 0, float64(lr.classes_[1]))
			} else {
				predictions.Set(i, 0, float64(lr.classes_[0]))
			}
		}
	})

	return predictions, nil
}

// PredictProba returns probability estimates for both classes,
// shaped n_samples x 2 with class probabilities in column order
// [classes_[0], classes_[1]].
func (lr *LogisticRegression) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	if !lr.state.IsFitted() {
		return nil, errors.NewNotFittedError("LogisticRegression", "PredictProba")
	}

	nSamples, nFeatures := X.Dims()
	if nFeatures != lr.nFeatures_ {
		return nil, errors.NewDimensionError("LogisticRegression.PredictProba", lr.nFeatures_, nFeatures, 1)
	}

	probas := mat.NewDense(nSamples, 2, nil)

	parallel.ParallelizeWithThreshold(nSamples, 256, func(start, end int) {
		for i := start; i < end; i++ {
			prob1 := sigmoid(lr.decisionFunction(X, i))
			probas.Set(i, 0, 1.0-prob1)
			probas.Set(i, 1, prob1)
		}
	})

	return probas, nil
}

// Score returns the mean accuracy on the given test data and labels
func (lr *LogisticRegression) Score(X, y mat.Matrix) (float64, error) {
	predictions, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.AccuracyMatrix(y, predictions)
}

// Classes returns the class labels seen during fitting, sorted ascending
func (lr *LogisticRegression) Classes() []int {
	return lr.classes_
}

// NIter returns the number of gradient descent iterations actually run
func (lr *LogisticRegression) NIter() int {
	return lr.nIter_
}

// Coef returns the fitted coefficients
func (lr *LogisticRegression) Coef() []float64 {
	return lr.coef_
}

// Intercept returns the fitted intercept term
func (lr *LogisticRegression) Intercept() float64 {
	return lr.intercept_
}

// GetParams returns the model hyperparameters
func (lr *LogisticRegression) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"penalty":       lr.penalty,
		"C":             lr.c,
		"fit_intercept": lr.fitIntercept,
		"random_state":  lr.randomState,
		"max_iter":      lr.maxIter,
		"tol":           lr.tol,
	}
}

// SetParams sets the model hyperparameters
func (lr *LogisticRegression) SetParams(params map[string]interface{}) error {
	for key, value := range params {
		switch key {
		case "penalty":
			lr.penalty = value.(string)
		case "C":
			lr.c = value.(float64)
		case "fit_intercept":
			lr.fitIntercept = value.(bool)
		case "random_state":
			lr.randomState = value.(int64)
			if lr.randomState >= 0 {
				lr.rand = rand.New(rand.NewSource(lr.randomState))
			}
		case "max_iter":
			lr.maxIter = value.(int)
		case "tol":
			lr.tol = value.(float64)
		default:
			return errors.NewValidationError(key, "unknown parameter", value)
		}
	}
	return nil
}

// sigmoid computes the logistic function with overflow protection
func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + errors.StabilizeExp(-z))
}
