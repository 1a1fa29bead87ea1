// Package datasets provides synthetic dataset generators for experiments and tests.
package datasets

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/semigo-ml/semigo/pkg/errors"
)

// blobsConfig holds the configuration for MakeBlobs.
type blobsConfig struct {
	centers    [][]float64
	clusterStd float64
	seed       int64
	shuffle    bool
}

// BlobsOption is a functional option for MakeBlobs
type BlobsOption func(*blobsConfig)

// WithBlobCenters sets the cluster centers. One center per class;
// all centers must share the same dimensionality.
func WithBlobCenters(centers [][]float64) BlobsOption {
	return func(c *blobsConfig) {
		c.centers = centers
	}
}

// WithBlobStd sets the standard deviation of every cluster
func WithBlobStd(std float64) BlobsOption {
	return func(c *blobsConfig) {
		c.clusterStd = std
	}
}

// WithBlobSeed sets the random seed for reproducible generation
func WithBlobSeed(seed int64) BlobsOption {
	return func(c *blobsConfig) {
		c.seed = seed
	}
}

// WithBlobShuffle sets whether samples are shuffled after generation.
// Without shuffling, samples are grouped by class in center order.
func WithBlobShuffle(shuffle bool) BlobsOption {
	return func(c *blobsConfig) {
		c.shuffle = shuffle
	}
}

// MakeBlobs generates isotropic Gaussian blobs for classification,
// after scikit-learn's make_blobs. Samples are distributed as evenly as
// possible across the centers; class labels are the center indices.
//
// Returns the feature matrix (nSamples x nFeatures) and the label column
// vector (nSamples x 1).
func MakeBlobs(nSamples int, opts ...BlobsOption) (*mat.Dense, *mat.Dense, error) {
	cfg := &blobsConfig{
		centers: [][]float64{
			{-2.0, -2.0},
			{2.0, 2.0},
		},
		clusterStd: 1.0,
		seed:       -1,
		shuffle:    true,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if nSamples <= 0 {
		return nil, nil, errors.NewValueError("MakeBlobs", "n_samples must be positive")
	}
	if len(cfg.centers) == 0 {
		return nil, nil, errors.NewValueError("MakeBlobs", "at least one center is required")
	}
	nFeatures := len(cfg.centers[0])
	for _, center := range cfg.centers {
		if len(center) != nFeatures {
			return nil, nil, errors.NewDimensionError("MakeBlobs", nFeatures, len(center), 1)
		}
	}
	if cfg.clusterStd <= 0 {
		return nil, nil, errors.NewValidationError("cluster_std", "must be positive", cfg.clusterStd)
	}

	var rng *rand.Rand
	if cfg.seed >= 0 {
		rng = rand.New(rand.NewSource(cfg.seed))
	} else {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}

	X := mat.NewDense(nSamples, nFeatures, nil)
	y := mat.NewDense(nSamples, 1, nil)

	// Distribute samples across centers as evenly as possible
	nCenters := len(cfg.centers)
	row := 0
	for c := 0; c < nCenters; c++ {
		count := nSamples / nCenters
		if c < nSamples%nCenters {
			count++
		}
		for s := 0; s < count; s++ {
			for j := 0; j < nFeatures; j++ {
				X.Set(row, j, cfg.centers[c][j]+rng.NormFloat64()*cfg.clusterStd)
			}
			y.Set(row, 0, float64(c))
			row++
		}
	}

	if cfg.shuffle {
		perm := rng.Perm(nSamples)
		XShuf := mat.NewDense(nSamples, nFeatures, nil)
		yShuf := mat.NewDense(nSamples, 1, nil)
		for i, idx := range perm {
			for j := 0; j < nFeatures; j++ {
				XShuf.Set(i, j, X.At(idx, j))
			}
			yShuf.Set(i, 0, y.At(idx, 0))
		}
		return XShuf, yShuf, nil
	}

	return X, y, nil
}
