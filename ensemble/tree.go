package ensemble

import (
	"math"
	"math/rand/v2"
	"sort"
)

// Node is a single node of a regression tree. Feature is -1 on leaves.
// Exported fields keep the tree gob-encodable for model persistence.
type Node struct {
	Feature   int
	Threshold float64
	Left      *Node
	Right     *Node
	Value     float64
	Samples   int
}

// Tree is a fitted regression tree.
type Tree struct {
	Root *Node
}

// treeParams are the growth limits for a single tree.
type treeParams struct {
	maxDepth        int // -1 means unlimited
	minSamplesSplit int
	maxFeatures     int // number of features sampled per split
}

// growTree builds a regression tree on the rows selected by indices.
// Splits minimise the summed squared error of the children, the variance
// reduction criterion.
func growTree(X [][]float64, y []float64, indices []int, params treeParams, rng *rand.Rand) *Tree {
	return &Tree{Root: growNode(X, y, indices, params, rng, 0)}
}

func growNode(X [][]float64, y []float64, indices []int, params treeParams, rng *rand.Rand, depth int) *Node {
	if len(indices) < params.minSamplesSplit || (params.maxDepth >= 0 && depth >= params.maxDepth) {
		return leaf(y, indices)
	}

	split, ok := findBestSplit(X, y, indices, params, rng)
	if !ok {
		return leaf(y, indices)
	}

	leftIdx := make([]int, 0, len(indices)/2)
	rightIdx := make([]int, 0, len(indices)/2)
	for _, i := range indices {
		if X[i][split.feature] <= split.threshold {
			leftIdx = append(leftIdx, i)
		} else {
			rightIdx = append(rightIdx, i)
		}
	}
	if len(leftIdx) == 0 || len(rightIdx) == 0 {
		return leaf(y, indices)
	}

	return &Node{
		Feature:   split.feature,
		Threshold: split.threshold,
		Left:      growNode(X, y, leftIdx, params, rng, depth+1),
		Right:     growNode(X, y, rightIdx, params, rng, depth+1),
		Samples:   len(indices),
	}
}

func leaf(y []float64, indices []int) *Node {
	var sum float64
	for _, i := range indices {
		sum += y[i]
	}
	return &Node{
		Feature: -1,
		Value:   sum / float64(len(indices)),
		Samples: len(indices),
	}
}

// splitCandidate is the best split found for a node.
type splitCandidate struct {
	feature   int
	threshold float64
	gain      float64
}

// findBestSplit scans a random subset of features. For each feature the
// rows are sorted by value and candidate thresholds are evaluated with
// running sum/sum-of-squares accumulators, so each feature costs one sort
// plus a linear scan.
func findBestSplit(X [][]float64, y []float64, indices []int, params treeParams, rng *rand.Rand) (splitCandidate, bool) {
	n := len(indices)
	nFeatures := len(X[indices[0]])

	var totalSum, totalSumSq float64
	for _, i := range indices {
		totalSum += y[i]
		totalSumSq += y[i] * y[i]
	}
	totalSSE := totalSumSq - totalSum*totalSum/float64(n)

	best := splitCandidate{feature: -1, gain: 0}

	for _, f := range sampleFeatures(nFeatures, params.maxFeatures, rng) {
		sorted := make([]int, n)
		copy(sorted, indices)
		sort.Slice(sorted, func(a, b int) bool {
			return X[sorted[a]][f] < X[sorted[b]][f]
		})

		var leftSum, leftSumSq float64
		for pos := 0; pos < n-1; pos++ {
			i := sorted[pos]
			leftSum += y[i]
			leftSumSq += y[i] * y[i]

			// Only split between distinct feature values.
			cur := X[i][f]
			next := X[sorted[pos+1]][f]
			if cur == next {
				continue
			}

			nLeft := float64(pos + 1)
			nRight := float64(n - pos - 1)
			rightSum := totalSum - leftSum
			rightSumSq := totalSumSq - leftSumSq

			leftSSE := leftSumSq - leftSum*leftSum/nLeft
			rightSSE := rightSumSq - rightSum*rightSum/nRight
			gain := totalSSE - leftSSE - rightSSE

			if gain > best.gain {
				best = splitCandidate{
					feature:   f,
					threshold: (cur + next) / 2.0,
					gain:      gain,
				}
			}
		}
	}

	if best.feature < 0 || best.gain <= 1e-12 {
		return splitCandidate{}, false
	}
	return best, true
}

// sampleFeatures returns maxFeatures distinct feature indices drawn without
// replacement. maxFeatures <= 0 or >= nFeatures means all features.
func sampleFeatures(nFeatures, maxFeatures int, rng *rand.Rand) []int {
	perm := rng.Perm(nFeatures)
	if maxFeatures <= 0 || maxFeatures >= nFeatures {
		return perm
	}
	return perm[:maxFeatures]
}

// PredictRow walks the tree for a single feature row.
func (t *Tree) PredictRow(row []float64) float64 {
	node := t.Root
	for node.Feature >= 0 {
		if row[node.Feature] <= node.Threshold {
			node = node.Left
		} else {
			node = node.Right
		}
	}
	return node.Value
}

// Depth returns the depth of the tree, 0 for a lone leaf.
func (t *Tree) Depth() int {
	return nodeDepth(t.Root)
}

func nodeDepth(n *Node) int {
	if n == nil || n.Feature < 0 {
		return 0
	}
	left := nodeDepth(n.Left)
	right := nodeDepth(n.Right)
	return 1 + int(math.Max(float64(left), float64(right)))
}
