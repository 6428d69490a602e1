package splitpoint

import (
	"fmt"
	"math"

	"github.com/xiaofengliu/rftk/buffer"
	"github.com/xiaofengliu/rftk/collection"
	"github.com/xiaofengliu/rftk/criteria"
	"github.com/xiaofengliu/rftk/forest"
)

// SplitSelector chooses the best-scoring feature across one or more
// candidate-feature bundles, subject to a post-split stopping
// criteria.
type SplitSelector struct {
	ShouldSplit criteria.ShouldSplitCriteria
	Finalizer   Finalizer
}

// NewSplitSelector returns a selector consulting shouldSplit and
// finalizing child estimates with finalizer.
func NewSplitSelector(shouldSplit criteria.ShouldSplitCriteria, finalizer Finalizer) *SplitSelector {
	return &SplitSelector{ShouldSplit: shouldSplit, Finalizer: finalizer}
}

// Clone returns a selector with independently cloned criteria and
// finalizer, so a DepthFirstTreeLearner clone owns its own instance.
func (s *SplitSelector) Clone() *SplitSelector {
	return &SplitSelector{ShouldSplit: s.ShouldSplit.Clone(), Finalizer: s.Finalizer.Clone()}
}

// Select scans every bundle's impurity vector for the maximum
// positive gain, consults ShouldSplit on the winner, and, if accepted,
// returns a SplitSelectorInfo ready to write the split into a tree.
// The second return value is false if no feature had positive gain or
// ShouldSplit rejected the winner -- the caller should leave the node
// a leaf.
func (s *SplitSelector) Select(read collection.Stack, buffers []SplitSelectorBuffers, depth int) (*SplitSelectorInfo, bool) {
	bestGain := math.Inf(-1)
	bestBundle, bestFeature := -1, -1

	for bi, b := range buffers {
		impurity, ok := read.FloatVector(b.Scores.Impurity)
		if !ok {
			panic(fmt.Sprintf("splitpoint: SplitSelector: missing impurity at id %v", b.Scores.Impurity))
		}
		for fi := 0; fi < impurity.Len(); fi++ {
			v := float64(impurity.At(fi))
			if v > 0 && v > bestGain {
				bestGain = v
				bestBundle = bi
				bestFeature = fi
			}
		}
	}

	if bestBundle < 0 {
		return nil, false
	}

	chosen := buffers[bestBundle]

	childCounts, _ := read.FloatMatrix(chosen.Scores.ChildCounts)
	counts := [2]float64{float64(childCounts.At(bestFeature, 0)), float64(childCounts.At(bestFeature, 1))}

	if !s.ShouldSplit.ShouldSplit(bestGain, counts, depth) {
		return nil, false
	}

	intParams, _ := read.IntMatrix(chosen.IntParams)
	floatParams, _ := read.FloatMatrix(chosen.FloatParams)
	threshold, _ := read.FloatVector(chosen.Scores.Threshold)
	leftYs, _ := read.FloatMatrix(chosen.Scores.LeftYs)
	rightYs, _ := read.FloatMatrix(chosen.Scores.RightYs)
	featureValues, _ := read.FloatMatrix(chosen.FeatureValues)
	indices, _ := read.IntVector(chosen.Indices)

	_, intWidth := intParams.Dims()
	_, floatWidth := floatParams.Dims()

	intRow := make([]buffer.Int, intWidth)
	floatRow := make([]buffer.Float, floatWidth)
	for i := range intRow {
		intRow[i] = intParams.At(bestFeature, i)
	}
	for i := range floatRow {
		floatRow[i] = floatParams.At(bestFeature, i)
	}
	floatRow[forest.SplitpointIndex] = threshold.At(bestFeature)

	_, numberOfClasses := leftYs.Dims()
	leftCounts := make([]float32, numberOfClasses)
	rightCounts := make([]float32, numberOfClasses)
	for c := 0; c < numberOfClasses; c++ {
		leftCounts[c] = leftYs.At(bestFeature, c)
		rightCounts[c] = rightYs.At(bestFeature, c)
	}

	sampleValues := make([]buffer.Float, indices.Len())
	for i := range sampleValues {
		sampleValues[i] = featureValues.At(bestFeature, i)
	}

	return &SplitSelectorInfo{
		finalizer:    s.Finalizer,
		intParamRow:  intRow,
		floatParamRow: floatRow,
		leftWeight:   counts[0],
		rightWeight:  counts[1],
		leftCounts:   leftCounts,
		rightCounts:  rightCounts,
		threshold:    float64(threshold.At(bestFeature)),
		indices:      indices,
		sampleValues: sampleValues,
	}, true
}

// SplitSelectorInfo is the outcome of an accepted split: everything
// DepthFirstTreeLearner needs to write two new nodes into a Tree and
// partition the node's sample indices between them.
type SplitSelectorInfo struct {
	finalizer Finalizer

	intParamRow   []buffer.Int
	floatParamRow []buffer.Float

	threshold    float64
	leftWeight   float64
	rightWeight  float64
	leftCounts   []float32
	rightCounts  []float32

	indices      *buffer.Vector[buffer.Int]
	sampleValues []buffer.Float
}

// WriteToTree copies the chosen feature's descriptor rows into nodeId
// and the threshold into floatFeatureParams[nodeId, SplitpointIndex],
// then writes each child's finalized ys and weight.
func (info *SplitSelectorInfo) WriteToTree(tree *forest.Tree, nodeID, leftNodeID, rightNodeID int) {
	for i, v := range info.intParamRow {
		tree.IntFeatureParams.Set(nodeID, i, v)
	}
	for i, v := range info.floatParamRow {
		tree.FloatFeatureParams.Set(nodeID, i, v)
	}

	tree.Path.Set(nodeID, forest.LeftChildIndex, buffer.Int(leftNodeID))
	tree.Path.Set(nodeID, forest.RightChildIndex, buffer.Int(rightNodeID))

	leftYs := info.finalizer.Finalize(info.leftWeight, info.leftCounts)
	rightYs := info.finalizer.Finalize(info.rightWeight, info.rightCounts)

	tree.Counts.Set(leftNodeID, buffer.Float(info.leftWeight))
	tree.Counts.Set(rightNodeID, buffer.Float(info.rightWeight))
	for c, p := range leftYs {
		tree.Ys.Set(leftNodeID, c, p)
	}
	for c, p := range rightYs {
		tree.Ys.Set(rightNodeID, c, p)
	}
}

// SplitIndices partitions the node's sample indices: samples whose
// feature value is strictly greater than the chosen threshold go
// left, all others go right. This is a specified convention, not the
// common "less-than goes left" one, and tests pin it exactly.
func (info *SplitSelectorInfo) SplitIndices() (left, right *buffer.Vector[buffer.Int]) {
	var leftIdx, rightIdx []buffer.Int
	for i := 0; i < info.indices.Len(); i++ {
		if float64(info.sampleValues[i]) > info.threshold {
			leftIdx = append(leftIdx, info.indices.At(i))
		} else {
			rightIdx = append(rightIdx, info.indices.At(i))
		}
	}
	return buffer.VectorOf(leftIdx), buffer.VectorOf(rightIdx)
}
