package ensemble

import (
	"math/rand/v2"
	"testing"
)

func allIndices(n int) []int {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	return indices
}

func TestGrowTree_PerfectSplit(t *testing.T) {
	// One feature separates the targets exactly at 2.5.
	X := [][]float64{{1}, {2}, {3}, {4}}
	y := []float64{10, 10, 50, 50}

	rng := rand.New(rand.NewPCG(1, 1))
	tree := growTree(X, y, allIndices(4), treeParams{maxDepth: -1, minSamplesSplit: 2}, rng)

	if tree.Root.Feature != 0 {
		t.Fatalf("expected split on feature 0, got %d", tree.Root.Feature)
	}
	if tree.Root.Threshold != 2.5 {
		t.Errorf("expected threshold 2.5, got %v", tree.Root.Threshold)
	}

	for i, want := range y {
		got := tree.PredictRow(X[i])
		if got != want {
			t.Errorf("row %d: expected %v, got %v", i, want, got)
		}
	}
}

func TestGrowTree_ConstantTarget(t *testing.T) {
	// No variance means no split; the tree is a single leaf with the mean.
	X := [][]float64{{1, 5}, {2, 6}, {3, 7}}
	y := []float64{42, 42, 42}

	rng := rand.New(rand.NewPCG(1, 1))
	tree := growTree(X, y, allIndices(3), treeParams{maxDepth: -1, minSamplesSplit: 2}, rng)

	if tree.Root.Feature != -1 {
		t.Fatalf("expected a leaf root, got split on feature %d", tree.Root.Feature)
	}
	if tree.Root.Value != 42 {
		t.Errorf("expected leaf value 42, got %v", tree.Root.Value)
	}
	if tree.Depth() != 0 {
		t.Errorf("expected depth 0, got %d", tree.Depth())
	}
}

func TestGrowTree_MaxDepthLimitsGrowth(t *testing.T) {
	n := 64
	X := make([][]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		X[i] = []float64{float64(i)}
		y[i] = float64(i * i)
	}

	rng := rand.New(rand.NewPCG(7, 7))
	tree := growTree(X, y, allIndices(n), treeParams{maxDepth: 3, minSamplesSplit: 2}, rng)

	if d := tree.Depth(); d > 3 {
		t.Errorf("expected depth <= 3, got %d", d)
	}
}

func TestGrowTree_MinSamplesSplit(t *testing.T) {
	X := [][]float64{{1}, {2}, {3}}
	y := []float64{1, 2, 3}

	rng := rand.New(rand.NewPCG(1, 1))
	tree := growTree(X, y, allIndices(3), treeParams{maxDepth: -1, minSamplesSplit: 10}, rng)

	if tree.Root.Feature != -1 {
		t.Errorf("expected a leaf when fewer rows than minSamplesSplit, got split")
	}
	want := (1.0 + 2.0 + 3.0) / 3.0
	if got := tree.PredictRow([]float64{2}); got != want {
		t.Errorf("expected mean %v, got %v", want, got)
	}
}

func TestSampleFeatures(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 3))

	if got := sampleFeatures(5, 0, rng); len(got) != 5 {
		t.Errorf("maxFeatures 0 should return all features, got %d", len(got))
	}
	if got := sampleFeatures(5, 9, rng); len(got) != 5 {
		t.Errorf("maxFeatures above nFeatures should return all features, got %d", len(got))
	}

	got := sampleFeatures(10, 3, rng)
	if len(got) != 3 {
		t.Fatalf("expected 3 features, got %d", len(got))
	}
	seen := make(map[int]bool)
	for _, f := range got {
		if f < 0 || f >= 10 {
			t.Errorf("feature index %d out of range", f)
		}
		if seen[f] {
			t.Errorf("feature index %d sampled twice", f)
		}
		seen[f] = true
	}
}
