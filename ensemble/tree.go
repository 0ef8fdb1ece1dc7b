package ensemble

import (
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// treeNode is one node of a fitted regression tree. Internal nodes route on
// feature <= threshold; leaves carry the mean target of their rows.
type treeNode struct {
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
	value     float64
	isLeaf    bool
}

// splitCandidate describes the best split found for a node.
type splitCandidate struct {
	feature   int
	threshold float64
	gain      float64
	left      []int
	right     []int
}

// regressionTree is a CART regression tree grown by exact split search:
// every distinct value boundary of every candidate feature is scored by the
// reduction in the sum of squared errors.
type regressionTree struct {
	root            *treeNode
	maxDepth        int // < 0 means unlimited
	minSamplesSplit int
	minSamplesLeaf  int
	maxFeatures     int
	nFeatures       int

	// importances accumulates the SSE reduction contributed by each
	// feature across all splits of this tree.
	importances []float64
}

// minimum SSE gain for a split to be worth taking.
const minSplitGain = 1e-12

func (t *regressionTree) fit(X *mat.Dense, y []float64, indices []int, rng *rand.Rand) {
	_, cols := X.Dims()
	t.nFeatures = cols
	t.importances = make([]float64, cols)
	t.root = t.buildNode(X, y, indices, 0, rng)
}

func nodeStats(y []float64, indices []int) (sum, sumSq float64) {
	for _, i := range indices {
		sum += y[i]
		sumSq += y[i] * y[i]
	}
	return sum, sumSq
}

func (t *regressionTree) buildNode(X *mat.Dense, y []float64, indices []int, depth int, rng *rand.Rand) *treeNode {
	n := len(indices)
	sum, sumSq := nodeStats(y, indices)
	mean := sum / float64(n)
	sse := sumSq - sum*sum/float64(n)

	if n < t.minSamplesSplit || sse <= minSplitGain || (t.maxDepth >= 0 && depth >= t.maxDepth) {
		return &treeNode{isLeaf: true, value: mean}
	}

	best := t.findBestSplit(X, y, indices, sse, rng)
	if best == nil {
		return &treeNode{isLeaf: true, value: mean}
	}

	t.importances[best.feature] += best.gain

	return &treeNode{
		feature:   best.feature,
		threshold: best.threshold,
		left:      t.buildNode(X, y, best.left, depth+1, rng),
		right:     t.buildNode(X, y, best.right, depth+1, rng),
	}
}

// findBestSplit scans a random feature subset for the boundary with the
// largest SSE reduction. Returns nil when no admissible split exists.
func (t *regressionTree) findBestSplit(X *mat.Dense, y []float64, indices []int, parentSSE float64, rng *rand.Rand) *splitCandidate {
	n := len(indices)
	sum, sumSq := nodeStats(y, indices)

	var best *splitCandidate

	sorted := make([]int, n)
	for _, f := range t.featureSubset(rng) {
		copy(sorted, indices)
		feature := f
		sort.Slice(sorted, func(a, b int) bool {
			return X.At(sorted[a], feature) < X.At(sorted[b], feature)
		})

		var leftSum, leftSq float64
		for i := 0; i < n-1; i++ {
			yi := y[sorted[i]]
			leftSum += yi
			leftSq += yi * yi

			v, next := X.At(sorted[i], feature), X.At(sorted[i+1], feature)
			if v == next {
				continue
			}

			leftN := i + 1
			rightN := n - leftN
			if leftN < t.minSamplesLeaf || rightN < t.minSamplesLeaf {
				continue
			}

			leftSSE := leftSq - leftSum*leftSum/float64(leftN)
			rightSum := sum - leftSum
			rightSSE := (sumSq - leftSq) - rightSum*rightSum/float64(rightN)

			gain := parentSSE - leftSSE - rightSSE
			if gain <= minSplitGain {
				continue
			}
			if best == nil || gain > best.gain {
				left := make([]int, leftN)
				copy(left, sorted[:leftN])
				right := make([]int, rightN)
				copy(right, sorted[leftN:])
				best = &splitCandidate{
					feature:   feature,
					threshold: (v + next) / 2,
					gain:      gain,
					left:      left,
					right:     right,
				}
			}
		}
	}

	return best
}

// featureSubset returns the candidate feature indices for one split.
func (t *regressionTree) featureSubset(rng *rand.Rand) []int {
	if t.maxFeatures >= t.nFeatures {
		all := make([]int, t.nFeatures)
		for i := range all {
			all[i] = i
		}
		return all
	}
	return rng.Perm(t.nFeatures)[:t.maxFeatures]
}

func (t *regressionTree) predictOne(X *mat.Dense, row int) float64 {
	node := t.root
	for !node.isLeaf {
		if X.At(row, node.feature) <= node.threshold {
			node = node.left
		} else {
			node = node.right
		}
	}
	return node.value
}
