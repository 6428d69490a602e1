// Package learn implements the recursive depth-first tree grower and
// the parallel multi-tree forest driver built on top of it.
package learn

import (
	"fmt"
	"math/rand"

	"github.com/xiaofengliu/rftk/buffer"
	"github.com/xiaofengliu/rftk/bufferid"
	"github.com/xiaofengliu/rftk/collection"
	"github.com/xiaofengliu/rftk/criteria"
	"github.com/xiaofengliu/rftk/feature"
	"github.com/xiaofengliu/rftk/forest"
	"github.com/xiaofengliu/rftk/pipeline"
	"github.com/xiaofengliu/rftk/splitpoint"
)

// DepthFirstTreeLearner grows one Tree from a tree-level buffer
// collection: it runs a tree pipeline once to seed the root sample
// set, then recurses node by node, running a node pipeline over a
// buffer stack scoped to that node, consulting TrySplit/ShouldSplit,
// and writing accepted splits into the tree.
type DepthFirstTreeLearner struct {
	TrySplit criteria.TrySplitCriteria

	TreePipeline *pipeline.Pipeline
	NodePipeline *pipeline.Pipeline
	Selector     *splitpoint.SplitSelector
	Buffers      []splitpoint.SplitSelectorBuffers

	// Indices and Weights are the ids the tree pipeline's
	// AllSamplesStep announces. The node pipeline's steps were built
	// against these same ids, so shadowing Indices with a node-local
	// subset on top of the stack is enough to narrow every downstream
	// step's view without rewiring anything.
	Indices bufferid.ID
	Weights bufferid.ID

	NumberOfClasses int
	ParamWidth      int
}

// NewDepthFirstTreeLearner wires one AxisAlignedParamsStep /
// FeatureExtractorStep / BestSplitpointsWalkingSortedStep node
// pipeline over dataMatrix, drawing numberOfFeaturesPerNode candidate
// features per node.
func NewDepthFirstTreeLearner(
	dataMatrix bufferid.ID,
	numberOfFeaturesPerNode, numberOfClasses int,
	ordering feature.Ordering,
	ratioOfThresholdsToTest float64,
	minNumberThresholdsToTest int,
	trySplit criteria.TrySplitCriteria,
	shouldSplit criteria.ShouldSplitCriteria,
) *DepthFirstTreeLearner {
	allSamples := pipeline.NewAllSamplesStep(dataMatrix)
	treePipeline := pipeline.New(allSamples)

	axisAligned := feature.NewAxisAlignedParamsStep(dataMatrix, numberOfFeaturesPerNode)
	extractor := feature.NewFeatureExtractorStep(dataMatrix, allSamples.Indices, axisAligned.IntParams, axisAligned.FloatParams, ordering)
	sliceLabels := pipeline.NewSliceIntVectorStep(bufferid.ClassLabels, allSamples.Indices)
	sliceWeights := pipeline.NewSliceFloatVectorStep(allSamples.Weights, allSamples.Indices)
	scorer := splitpoint.NewBestSplitpointsWalkingSortedStep(
		extractor.FeatureValues, sliceLabels.Output, sliceWeights.Output,
		numberOfClasses, ratioOfThresholdsToTest, minNumberThresholdsToTest,
	)

	nodePipeline := pipeline.New(axisAligned, extractor, sliceLabels, sliceWeights, scorer)

	buffers := []splitpoint.SplitSelectorBuffers{{
		IntParams:     axisAligned.IntParams,
		FloatParams:   axisAligned.FloatParams,
		FeatureValues: extractor.FeatureValues,
		Indices:       allSamples.Indices,
		Scores:        scorer.Bundle,
	}}

	selector := splitpoint.NewSplitSelector(shouldSplit, splitpoint.NewClassEstimatorFinalizer(numberOfClasses))

	return &DepthFirstTreeLearner{
		TrySplit:        trySplit,
		TreePipeline:    treePipeline,
		NodePipeline:    nodePipeline,
		Selector:        selector,
		Buffers:         buffers,
		Indices:         allSamples.Indices,
		Weights:         allSamples.Weights,
		NumberOfClasses: numberOfClasses,
		ParamWidth:      feature.ParamStartIndex + 1,
	}
}

// Clone returns a learner with independently cloned pipelines,
// selector, and criteria, so a ParallelForestLearner worker owns a
// graph no other worker touches. Output ids are preserved by value
// across the clone (Step.Clone copies the struct, ids and all), so
// Buffers/Indices/Weights stay valid against the cloned pipelines.
func (l *DepthFirstTreeLearner) Clone() *DepthFirstTreeLearner {
	buffers := make([]splitpoint.SplitSelectorBuffers, len(l.Buffers))
	copy(buffers, l.Buffers)

	return &DepthFirstTreeLearner{
		TrySplit:        l.TrySplit.Clone(),
		TreePipeline:    l.TreePipeline.Clone(),
		NodePipeline:    l.NodePipeline.Clone(),
		Selector:        l.Selector.Clone(),
		Buffers:         buffers,
		Indices:         l.Indices,
		Weights:         l.Weights,
		NumberOfClasses: l.NumberOfClasses,
		ParamWidth:      l.ParamWidth,
	}
}

// Learn grows one Tree from root, a collection expected to carry
// FEATURE_VALUES and CLASS_LABELS under their well-known ids.
func (l *DepthFirstTreeLearner) Learn(root *collection.Collection, rng *rand.Rand) *forest.Tree {
	tree := forest.NewTree(l.ParamWidth, l.NumberOfClasses)

	stack := collection.NewStack(root)
	treeFrame := collection.New()
	l.TreePipeline.Process(stack, treeFrame, rng)
	stack = stack.Push(treeFrame)

	rootIndices, ok := stack.IntVector(l.Indices)
	if !ok {
		panic(fmt.Sprintf("learn: DepthFirstTreeLearner: tree pipeline did not produce indices at id %v", l.Indices))
	}

	l.growNode(tree, 0, rootIndices, 0, stack, rng)
	tree.Compact()
	return tree
}

func (l *DepthFirstTreeLearner) growNode(tree *forest.Tree, nodeID int, indices *buffer.Vector[buffer.Int], depth int, stack collection.Stack, rng *rand.Rand) {
	labels, ok := stack.IntVector(bufferid.ClassLabels)
	if !ok {
		panic("learn: DepthFirstTreeLearner: missing CLASS_LABELS in root collection")
	}
	weights, ok := stack.FloatVector(l.Weights)
	if !ok {
		panic(fmt.Sprintf("learn: DepthFirstTreeLearner: missing weights at id %v", l.Weights))
	}

	counts := make([]float32, l.NumberOfClasses)
	var weight float64
	for i := 0; i < indices.Len(); i++ {
		idx := int(indices.At(i))
		counts[int(labels.At(idx))] += weights.At(idx)
		weight += float64(weights.At(idx))
	}

	tree.Counts.Set(nodeID, buffer.Float(weight))
	tree.Depths.Set(nodeID, buffer.Int(depth))
	ys := l.Selector.Finalizer.Finalize(weight, counts)
	for c, p := range ys {
		tree.Ys.Set(nodeID, c, p)
	}

	if !l.TrySplit.TrySplit(weight, depth) {
		return
	}

	nodeFrame := collection.New()
	nodeFrame.SetIntVector(l.Indices, indices)
	nodeStack := stack.Push(nodeFrame)
	l.NodePipeline.Process(nodeStack, nodeFrame, rng)

	info, ok := l.Selector.Select(nodeStack, l.Buffers, depth)
	if !ok {
		return
	}

	leftID := tree.NextNodeIndex()
	rightID := tree.NextNodeIndex()
	info.WriteToTree(tree, nodeID, leftID, rightID)

	leftIndices, rightIndices := info.SplitIndices()

	l.growNode(tree, leftID, leftIndices, depth+1, stack, rng)
	l.growNode(tree, rightID, rightIndices, depth+1, stack, rng)
}
