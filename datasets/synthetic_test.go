package datasets

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestMakeBlobs_Shape(t *testing.T) {
	X, y, err := MakeBlobs(100, WithBlobSeed(42))
	if err != nil {
		t.Fatalf("MakeBlobs failed: %v", err)
	}

	r, c := X.Dims()
	if r != 100 || c != 2 {
		t.Errorf("Expected X shape (100, 2), got (%d, %d)", r, c)
	}

	yr, yc := y.Dims()
	if yr != 100 || yc != 1 {
		t.Errorf("Expected y shape (100, 1), got (%d, %d)", yr, yc)
	}

	// Both classes should be present, balanced for an even sample count
	counts := map[float64]int{}
	for i := 0; i < yr; i++ {
		counts[y.At(i, 0)]++
	}
	if counts[0] != 50 || counts[1] != 50 {
		t.Errorf("Expected 50/50 class balance, got %v", counts)
	}
}

func TestMakeBlobs_Deterministic(t *testing.T) {
	X1, y1, err := MakeBlobs(50, WithBlobSeed(7))
	if err != nil {
		t.Fatalf("MakeBlobs failed: %v", err)
	}
	X2, y2, err := MakeBlobs(50, WithBlobSeed(7))
	if err != nil {
		t.Fatalf("MakeBlobs failed: %v", err)
	}

	if !mat.Equal(X1, X2) {
		t.Error("Expected identical features for identical seeds")
	}
	if !mat.Equal(y1, y2) {
		t.Error("Expected identical labels for identical seeds")
	}
}

func TestMakeBlobs_CustomCenters(t *testing.T) {
	centers := [][]float64{
		{-10, -10, -10},
		{10, 10, 10},
	}
	X, y, err := MakeBlobs(20,
		WithBlobCenters(centers),
		WithBlobStd(0.1),
		WithBlobSeed(0),
		WithBlobShuffle(false),
	)
	if err != nil {
		t.Fatalf("MakeBlobs failed: %v", err)
	}

	_, c := X.Dims()
	if c != 3 {
		t.Fatalf("Expected 3 features, got %d", c)
	}

	// With tiny spread, every sample sits near its center
	for i := 0; i < 20; i++ {
		class := int(y.At(i, 0))
		for j := 0; j < 3; j++ {
			diff := X.At(i, j) - centers[class][j]
			if diff < -1 || diff > 1 {
				t.Errorf("Sample %d feature %d too far from center: %v", i, j, diff)
			}
		}
	}
}

func TestMakeBlobs_InvalidInputs(t *testing.T) {
	tests := []struct {
		name     string
		nSamples int
		opts     []BlobsOption
	}{
		{name: "zero samples", nSamples: 0},
		{name: "negative samples", nSamples: -5},
		{name: "no centers", nSamples: 10, opts: []BlobsOption{WithBlobCenters(nil)}},
		{
			name:     "ragged centers",
			nSamples: 10,
			opts:     []BlobsOption{WithBlobCenters([][]float64{{0, 0}, {1}})},
		},
		{
			name:     "non-positive std",
			nSamples: 10,
			opts:     []BlobsOption{WithBlobStd(0)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := MakeBlobs(tt.nSamples, tt.opts...); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}
