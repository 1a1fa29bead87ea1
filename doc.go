// Package semigo provides semi-supervised machine learning utilities for Go,
// built around pseudo-label data augmentation for binary classification.
//
// SemiGo offers a scikit-learn-like API: classifiers expose Fit, Predict and
// PredictProba, and the central PseudoLabeler consumes any implementation of
// that contract through a small capability interface.
//
// # Features
//
// - Pseudo-label augmentation: adopt the most confident unlabeled examples per class
// - Classifier-agnostic: any Fit/Predict/PredictProba implementation plugs in
// - Bundled logistic regression, standard scaler, metrics and dataset generators
// - Robust error handling with stack traces and structured warnings
// - Deterministic: fixed seeds reproduce every result
//
// # Installation
//
// Install SemiGo using go get:
//
//	go get github.com/semigo-ml/semigo
//
// # Quick Start
//
// Augment a small labeled set from an unlabeled pool:
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/semigo-ml/semigo/datasets"
//	    "github.com/semigo-ml/semigo/linear_model"
//	    "github.com/semigo-ml/semigo/modelselection"
//	    "github.com/semigo-ml/semigo/semisupervised"
//	)
//
//	func main() {
//	    X, y, err := datasets.MakeBlobs(3000, datasets.WithBlobSeed(42))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    XLabeled, XPool, yLabeled, _, err := modelselection.HeadTailSplit(X, y, 1000)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    clf := linear_model.NewLogisticRegression(
//	        linear_model.WithLRRandomState(42),
//	    )
//	    result, err := semisupervised.NewPseudoLabeler().Augment(clf, XLabeled, yLabeled, XPool)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    fmt.Printf("adopted %d pseudo-labels\n", len(result.SelectedIndices))
//	}
//
// # Packages
//
// The library is organized into several packages:
//
//   - semisupervised: the PseudoLabeler augmenter
//   - linear_model: binary logistic regression with probability estimates
//   - preprocessing: data preprocessing utilities (StandardScaler)
//   - datasets: synthetic dataset generators
//   - modelselection: train/test splitting helpers
//   - metrics: classification metrics (accuracy, error rate)
//   - core/model: core interfaces and estimator state
//   - core/parallel: parallel processing utilities
//   - pkg/errors, pkg/log: structured errors, warnings and logging
//
// # Performance
//
// SemiGo parallelizes prediction automatically:
//
//   - Row-parallel Predict and PredictProba for pools with >256 rows
//   - CPU core detection and optimal worker allocation
//   - Thread-safe operations
//
// # License
//
// SemiGo is released under the MIT License.
package semigo
