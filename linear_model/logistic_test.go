package linear_model

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/semigo-ml/semigo/pkg/errors"
)

// TestLogisticRegression_FitPredict_Binary tests binary classification
func TestLogisticRegression_FitPredict_Binary(t *testing.T) {
	// Create simple linearly separable data
	// Class 0: points around (1, 1)
	// Class 1: points around (3, 3)
	X := mat.NewDense(6, 2, []float64{
		0.5, 0.5,
		1.0, 1.5,
		1.5, 1.0,
		3.0, 2.5,
		2.5, 3.0,
		3.5, 3.5,
	})

	y := mat.NewDense(6, 1, []float64{
		0, 0, 0, // Class 0
		1, 1, 1, // Class 1
	})

	lr := NewLogisticRegression(
		WithLRMaxIter(1000),
		WithLRTol(1e-4),
		WithLRRandomState(42),
	)

	err := lr.Fit(X, y)
	if err != nil {
		t.Fatalf("Failed to fit model: %v", err)
	}

	// Test predictions on training data
	predictions, err := lr.Predict(X)
	if err != nil {
		t.Fatalf("Failed to predict: %v", err)
	}

	for i := 0; i < 6; i++ {
		pred := predictions.At(i, 0)
		actual := y.At(i, 0)
		if pred != actual {
			t.Errorf("Sample %d: expected %v, got %v", i, actual, pred)
		}
	}

	// Test on new data
	XTest := mat.NewDense(2, 2, []float64{
		1.0, 1.0, // Should be class 0
		3.0, 3.0, // Should be class 1
	})

	testPreds, err := lr.Predict(XTest)
	if err != nil {
		t.Fatalf("Failed to predict on test data: %v", err)
	}

	if testPreds.At(0, 0) != 0 {
		t.Errorf("Test point (1,1) should be class 0, got %v", testPreds.At(0, 0))
	}

	if testPreds.At(1, 0) != 1 {
		t.Errorf("Test point (3,3) should be class 1, got %v", testPreds.At(1, 0))
	}
}

// TestLogisticRegression_PredictProba tests probability predictions
func TestLogisticRegression_PredictProba(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		0, 0,
		0, 1,
		1, 0,
		1, 1,
	})

	y := mat.NewDense(4, 1, []float64{
		0, 0, 1, 1,
	})

	lr := NewLogisticRegression(
		WithLRMaxIter(500),
		WithLRRandomState(7),
	)

	err := lr.Fit(X, y)
	if err != nil {
		t.Fatalf("Failed to fit model: %v", err)
	}

	probas, err := lr.PredictProba(X)
	if err != nil {
		t.Fatalf("Failed to predict probabilities: %v", err)
	}

	rows, cols := probas.Dims()
	if rows != 4 || cols != 2 {
		t.Errorf("Expected probas shape (4, 2), got (%d, %d)", rows, cols)
	}

	// Check that probabilities are valid and sum to 1
	for i := 0; i < rows; i++ {
		sum := 0.0
		for j := 0; j < cols; j++ {
			prob := probas.At(i, j)
			if prob < 0 || prob > 1 {
				t.Errorf("Invalid probability at (%d, %d): %v", i, j, prob)
			}
			sum += prob
		}
		if math.Abs(sum-1.0) > 1e-6 {
			t.Errorf("Probabilities for sample %d don't sum to 1: %v", i, sum)
		}
	}
}

// TestLogisticRegression_PredictConsistentWithProba tests that hard labels
// are the argmax of the probability pair, with ties going to the lower class
func TestLogisticRegression_PredictConsistentWithProba(t *testing.T) {
	X := mat.NewDense(8, 2, []float64{
		0.1, 0.9,
		0.8, 0.3,
		0.4, 0.6,
		0.9, 0.9,
		0.2, 0.1,
		0.6, 0.4,
		0.3, 0.7,
		0.7, 0.2,
	})
	y := mat.NewDense(8, 1, []float64{0, 1, 0, 1, 0, 1, 0, 1})

	lr := NewLogisticRegression(WithLRMaxIter(300), WithLRRandomState(1))
	if err := lr.Fit(X, y); err != nil {
		t.Fatalf("Failed to fit model: %v", err)
	}

	preds, err := lr.Predict(X)
	if err != nil {
		t.Fatalf("Failed to predict: %v", err)
	}
	probas, err := lr.PredictProba(X)
	if err != nil {
		t.Fatalf("Failed to predict probabilities: %v", err)
	}

	for i := 0; i < 8; i++ {
		want := 0.0
		if probas.At(i, 1) > probas.At(i, 0) {
			want = 1.0
		}
		if preds.At(i, 0) != want {
			t.Errorf("Sample %d: Predict=%v, argmax of proba=(%v, %v)",
				i, preds.At(i, 0), probas.At(i, 0), probas.At(i, 1))
		}
	}
}

// TestLogisticRegression_Deterministic tests reproducibility with a fixed seed
func TestLogisticRegression_Deterministic(t *testing.T) {
	X := mat.NewDense(6, 2, []float64{
		0.5, 0.5,
		1.0, 1.5,
		1.5, 1.0,
		3.0, 2.5,
		2.5, 3.0,
		3.5, 3.5,
	})
	y := mat.NewDense(6, 1, []float64{0, 0, 0, 1, 1, 1})

	fit := func() []float64 {
		lr := NewLogisticRegression(WithLRMaxIter(200), WithLRRandomState(42))
		if err := lr.Fit(X, y); err != nil {
			t.Fatalf("Failed to fit model: %v", err)
		}
		return lr.Coef()
	}

	coef1 := fit()
	coef2 := fit()

	for j := range coef1 {
		if coef1[j] != coef2[j] {
			t.Errorf("Coefficient %d differs between runs: %v vs %v", j, coef1[j], coef2[j])
		}
	}
}

// TestLogisticRegression_Score tests the accuracy computation
func TestLogisticRegression_Score(t *testing.T) {
	X := mat.NewDense(6, 2, []float64{
		0.5, 0.5,
		1.0, 1.5,
		1.5, 1.0,
		3.0, 2.5,
		2.5, 3.0,
		3.5, 3.5,
	})
	y := mat.NewDense(6, 1, []float64{0, 0, 0, 1, 1, 1})

	lr := NewLogisticRegression(WithLRMaxIter(1000), WithLRRandomState(42))
	if err := lr.Fit(X, y); err != nil {
		t.Fatalf("Failed to fit model: %v", err)
	}

	score, err := lr.Score(X, y)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if score != 1.0 {
		t.Errorf("Expected perfect score on separable data, got %v", score)
	}
}

// TestLogisticRegression_NotFitted tests error on prediction before fitting
func TestLogisticRegression_NotFitted(t *testing.T) {
	lr := NewLogisticRegression()
	X := mat.NewDense(2, 2, []float64{1, 2, 3, 4})

	if _, err := lr.Predict(X); err == nil {
		t.Error("Expected NotFittedError from Predict, got nil")
	}

	_, err := lr.PredictProba(X)
	if err == nil {
		t.Fatal("Expected NotFittedError from PredictProba, got nil")
	}

	var notFitted *errors.NotFittedError
	if !errors.As(err, &notFitted) {
		t.Errorf("Expected NotFittedError, got %T", err)
	}
}

// TestLogisticRegression_InvalidInputs tests validation of Fit inputs
func TestLogisticRegression_InvalidInputs(t *testing.T) {
	tests := []struct {
		name string
		X    mat.Matrix
		y    mat.Matrix
	}{
		{
			name: "row count mismatch",
			X:    mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6}),
			y:    mat.NewDense(2, 1, []float64{0, 1}),
		},
		{
			name: "y not a column vector",
			X:    mat.NewDense(2, 2, []float64{1, 2, 3, 4}),
			y:    mat.NewDense(2, 2, []float64{0, 1, 1, 0}),
		},
		{
			name: "three classes",
			X:    mat.NewDense(3, 1, []float64{1, 2, 3}),
			y:    mat.NewDense(3, 1, []float64{0, 1, 2}),
		},
		{
			name: "single class",
			X:    mat.NewDense(3, 1, []float64{1, 2, 3}),
			y:    mat.NewDense(3, 1, []float64{1, 1, 1}),
		},
		{
			name: "NaN features",
			X:    mat.NewDense(2, 1, []float64{math.NaN(), 2}),
			y:    mat.NewDense(2, 1, []float64{0, 1}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lr := NewLogisticRegression(WithLRRandomState(0))
			if err := lr.Fit(tt.X, tt.y); err == nil {
				t.Error("Expected error from Fit, got nil")
			}
		})
	}
}

// TestLogisticRegression_ConvergenceWarning tests the warning on hitting max_iter
func TestLogisticRegression_ConvergenceWarning(t *testing.T) {
	var captured error
	errors.SetWarningHandler(func(w error) { captured = w })
	defer errors.SetWarningHandler(func(w error) {})

	X := mat.NewDense(4, 2, []float64{
		0, 0,
		0, 1,
		1, 0,
		1, 1,
	})
	y := mat.NewDense(4, 1, []float64{0, 0, 1, 1})

	// One iteration cannot reach the gradient tolerance
	lr := NewLogisticRegression(WithLRMaxIter(1), WithLRTol(1e-12), WithLRRandomState(0))
	if err := lr.Fit(X, y); err != nil {
		t.Fatalf("Failed to fit model: %v", err)
	}

	if captured == nil {
		t.Fatal("Expected a ConvergenceWarning, got none")
	}
	var convWarn *errors.ConvergenceWarning
	if !errors.As(captured, &convWarn) {
		t.Errorf("Expected ConvergenceWarning, got %T", captured)
	}
}

// TestLogisticRegression_NonZeroOneLabels tests arbitrary binary label pairs
func TestLogisticRegression_NonZeroOneLabels(t *testing.T) {
	X := mat.NewDense(6, 1, []float64{1, 2, 3, 7, 8, 9})
	y := mat.NewDense(6, 1, []float64{-1, -1, -1, 5, 5, 5})

	lr := NewLogisticRegression(WithLRMaxIter(1000), WithLRRandomState(3))
	if err := lr.Fit(X, y); err != nil {
		t.Fatalf("Failed to fit model: %v", err)
	}

	classes := lr.Classes()
	if len(classes) != 2 || classes[0] != -1 || classes[1] != 5 {
		t.Fatalf("Expected classes [-1, 5], got %v", classes)
	}

	preds, err := lr.Predict(mat.NewDense(2, 1, []float64{2, 8}))
	if err != nil {
		t.Fatalf("Failed to predict: %v", err)
	}
	if preds.At(0, 0) != -1 {
		t.Errorf("Expected class -1 for x=2, got %v", preds.At(0, 0))
	}
	if preds.At(1, 0) != 5 {
		t.Errorf("Expected class 5 for x=8, got %v", preds.At(1, 0))
	}
}
