// Package modelselection provides utilities for splitting datasets,
// after scikit-learn's model_selection module.
package modelselection

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/semigo-ml/semigo/pkg/errors"
)

// splitConfig holds the configuration for TrainTestSplit.
type splitConfig struct {
	testSize float64
	seed     int64
	shuffle  bool
}

// SplitOption is a functional option for TrainTestSplit
type SplitOption func(*splitConfig)

// WithTestSize sets the fraction of samples assigned to the test split.
// Must be in (0, 1). Default is 0.25.
func WithTestSize(testSize float64) SplitOption {
	return func(c *splitConfig) {
		c.testSize = testSize
	}
}

// WithSplitSeed sets the random seed so repeated splits are reproducible
func WithSplitSeed(seed int64) SplitOption {
	return func(c *splitConfig) {
		c.seed = seed
	}
}

// WithSplitShuffle sets whether rows are shuffled before splitting.
// Without shuffling the first rows become the training split.
func WithSplitShuffle(shuffle bool) SplitOption {
	return func(c *splitConfig) {
		c.shuffle = shuffle
	}
}

// TrainTestSplit splits X and y into train and test partitions.
// Every input row lands in exactly one partition.
func TrainTestSplit(X, y mat.Matrix, opts ...SplitOption) (XTrain, XTest, yTrain, yTest *mat.Dense, err error) {
	cfg := &splitConfig{
		testSize: 0.25,
		seed:     -1,
		shuffle:  true,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	nSamples, nFeatures := X.Dims()
	yRows, yCols := y.Dims()

	if nSamples == 0 {
		return nil, nil, nil, nil, errors.NewModelError("TrainTestSplit", "empty data", errors.ErrEmptyData)
	}
	if yRows != nSamples {
		return nil, nil, nil, nil, errors.NewDimensionError("TrainTestSplit", nSamples, yRows, 0)
	}
	if yCols != 1 {
		return nil, nil, nil, nil, errors.NewValueError("TrainTestSplit", "y must be a column vector")
	}
	if cfg.testSize <= 0 || cfg.testSize >= 1 {
		return nil, nil, nil, nil, errors.NewValidationError("test_size", "must be in (0, 1)", cfg.testSize)
	}

	nTest := int(float64(nSamples) * cfg.testSize)
	if nTest == 0 {
		nTest = 1
	}
	nTrain := nSamples - nTest
	if nTrain == 0 {
		return nil, nil, nil, nil, errors.NewValidationError("test_size", "leaves no training samples", cfg.testSize)
	}

	indices := make([]int, nSamples)
	for i := range indices {
		indices[i] = i
	}
	if cfg.shuffle {
		var rng *rand.Rand
		if cfg.seed >= 0 {
			rng = rand.New(rand.NewSource(cfg.seed))
		} else {
			rng = rand.New(rand.NewSource(rand.Int63()))
		}
		rng.Shuffle(nSamples, func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
	}

	XTrain = mat.NewDense(nTrain, nFeatures, nil)
	yTrain = mat.NewDense(nTrain, 1, nil)
	XTest = mat.NewDense(nTest, nFeatures, nil)
	yTest = mat.NewDense(nTest, 1, nil)

	for i := 0; i < nTrain; i++ {
		copyRow(XTrain, i, X, indices[i])
		yTrain.Set(i, 0, y.At(indices[i], 0))
	}
	for i := 0; i < nTest; i++ {
		copyRow(XTest, i, X, indices[nTrain+i])
		yTest.Set(i, 0, y.At(indices[nTrain+i], 0))
	}

	return XTrain, XTest, yTrain, yTest, nil
}

// HeadTailSplit slices off the first n rows of X and y without shuffling.
// It is the building block for carving a fixed-size evaluation slice off
// an unlabeled pool before pseudo-labeling the remainder.
func HeadTailSplit(X, y mat.Matrix, n int) (XHead, XTail, yHead, yTail *mat.Dense, err error) {
	nSamples, nFeatures := X.Dims()
	yRows, yCols := y.Dims()

	if yRows != nSamples {
		return nil, nil, nil, nil, errors.NewDimensionError("HeadTailSplit", nSamples, yRows, 0)
	}
	if yCols != 1 {
		return nil, nil, nil, nil, errors.NewValueError("HeadTailSplit", "y must be a column vector")
	}
	if n <= 0 || n >= nSamples {
		return nil, nil, nil, nil, errors.NewValidationError("n", "must be in (0, n_samples)", n)
	}

	XHead = mat.NewDense(n, nFeatures, nil)
	yHead = mat.NewDense(n, 1, nil)
	XTail = mat.NewDense(nSamples-n, nFeatures, nil)
	yTail = mat.NewDense(nSamples-n, 1, nil)

	for i := 0; i < n; i++ {
		copyRow(XHead, i, X, i)
		yHead.Set(i, 0, y.At(i, 0))
	}
	for i := n; i < nSamples; i++ {
		copyRow(XTail, i-n, X, i)
		yTail.Set(i-n, 0, y.At(i, 0))
	}

	return XHead, XTail, yHead, yTail, nil
}

// copyRow copies row src of from into row dst of to.
func copyRow(to *mat.Dense, dst int, from mat.Matrix, src int) {
	_, c := from.Dims()
	for j := 0; j < c; j++ {
		to.Set(dst, j, from.At(src, j))
	}
}
