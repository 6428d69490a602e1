package splitpoint

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/xiaofengliu/rftk/buffer"
	"github.com/xiaofengliu/rftk/bufferid"
	"github.com/xiaofengliu/rftk/collection"
	"github.com/xiaofengliu/rftk/internal/sampling"
	"github.com/xiaofengliu/rftk/pipeline"
)

// BestSplitpointsWalkingSortedStep is the class-information-gain
// scorer: one sorted walk per feature, evaluated at a
// without-replacement sample of candidate positions, comparing each
// candidate to the best seen so far with strict inequality so the
// earliest tying split wins.
type BestSplitpointsWalkingSortedStep struct {
	FeatureValues bufferid.ID // input: float matrix [F, N], one feature per row
	ClassLabels   bufferid.ID // input: int vector [N], aligned to FeatureValues columns
	SampleWeights bufferid.ID // input: float vector [N], aligned to FeatureValues columns

	NumberOfClasses           int
	RatioOfThresholdsToTest   float64
	MinNumberThresholdsToTest int

	Bundle Bundle
}

// NewBestSplitpointsWalkingSortedStep returns a step scoring the
// feature values at featureValues against classLabels/sampleWeights,
// announcing a fresh output Bundle.
func NewBestSplitpointsWalkingSortedStep(featureValues, classLabels, sampleWeights bufferid.ID, numberOfClasses int, ratioOfThresholdsToTest float64, minNumberThresholdsToTest int) *BestSplitpointsWalkingSortedStep {
	return &BestSplitpointsWalkingSortedStep{
		FeatureValues:             featureValues,
		ClassLabels:               classLabels,
		SampleWeights:             sampleWeights,
		NumberOfClasses:           numberOfClasses,
		RatioOfThresholdsToTest:   ratioOfThresholdsToTest,
		MinNumberThresholdsToTest: minNumberThresholdsToTest,
		Bundle: Bundle{
			Impurity:    bufferid.Unique(),
			Threshold:   bufferid.Unique(),
			ChildCounts: bufferid.Unique(),
			LeftYs:      bufferid.Unique(),
			RightYs:     bufferid.Unique(),
		},
	}
}

func (s *BestSplitpointsWalkingSortedStep) Clone() pipeline.Step {
	clone := *s
	return &clone
}

func (s *BestSplitpointsWalkingSortedStep) Process(read collection.Stack, write *collection.Collection, rng *rand.Rand) {
	featureValues, ok := read.FloatMatrix(s.FeatureValues)
	if !ok {
		panic(fmt.Sprintf("splitpoint: missing feature values at id %v", s.FeatureValues))
	}
	labels, ok := read.IntVector(s.ClassLabels)
	if !ok {
		panic(fmt.Sprintf("splitpoint: missing class labels at id %v", s.ClassLabels))
	}
	weights, ok := read.FloatVector(s.SampleWeights)
	if !ok {
		panic(fmt.Sprintf("splitpoint: missing sample weights at id %v", s.SampleWeights))
	}

	numFeatures, numSamples := featureValues.Dims()
	if labels.Len() != numSamples || weights.Len() != numSamples {
		panic("splitpoint: classLabels/sampleWeights length does not match featureValues column count")
	}

	C := s.NumberOfClasses

	parent := newHistogram(C)
	for i := 0; i < numSamples; i++ {
		parent.add(int(labels.At(i)), float64(weights.At(i)))
	}
	totalWeight := parent.weight
	hStart := parent.entropy()

	thresholdCount := int(s.RatioOfThresholdsToTest * float64(numSamples))
	if thresholdCount < s.MinNumberThresholdsToTest {
		thresholdCount = s.MinNumberThresholdsToTest
	}
	mask := sampling.Mask(rng, numSamples, thresholdCount)

	impurity := buffer.NewVector[buffer.Float](numFeatures)
	threshold := buffer.NewVector[buffer.Float](numFeatures)
	childCounts := buffer.NewMatrix[buffer.Float](numFeatures, 2)
	leftYs := buffer.NewMatrix[buffer.Float](numFeatures, C)
	rightYs := buffer.NewMatrix[buffer.Float](numFeatures, C)

	values := make([]float64, numSamples)
	order := make([]int, numSamples)

	for f := 0; f < numFeatures; f++ {
		for i := 0; i < numSamples; i++ {
			values[i] = float64(featureValues.At(f, i))
			order[i] = i
		}
		sort.Sort(byFeatureValue{values: values, order: order})

		left := parent.clone()
		right := newHistogram(C)
		leftWeight := totalWeight
		rightWeight := 0.0

		bestGain := math.Inf(-1)
		var bestThreshold float64
		var bestLeft, bestRight []float64
		var bestLeftWeight, bestRightWeight float64
		found := false

		for k := 0; k < numSamples-1; k++ {
			idx := order[k]
			class := int(labels.At(idx))
			w := float64(weights.At(idx))

			left.sub(class, w)
			leftWeight -= w
			right.add(class, w)
			rightWeight += w

			if !mask[k] {
				continue
			}
			if values[order[k]] == values[order[k+1]] {
				continue
			}

			L := safeRatio(leftWeight, totalWeight) * left.entropy()
			R := safeRatio(rightWeight, totalWeight) * right.entropy()
			gain := hStart - L - R

			if gain > bestGain {
				bestGain = gain
				bestThreshold = (values[order[k]] + values[order[k+1]]) / 2
				bestLeftWeight = leftWeight
				bestRightWeight = rightWeight
				bestLeft = append(bestLeft[:0:0], left.counts...)
				bestRight = append(bestRight[:0:0], right.counts...)
				found = true
			}
		}

		if !found {
			impurity.Set(f, buffer.Float(math.Inf(-1)))
			continue
		}

		impurity.Set(f, buffer.Float(bestGain))
		threshold.Set(f, buffer.Float(bestThreshold))
		childCounts.Set(f, 0, buffer.Float(bestLeftWeight))
		childCounts.Set(f, 1, buffer.Float(bestRightWeight))

		// leftYs/rightYs hold raw per-class weight here, not yet
		// normalized: SplitSelectorInfo.WriteToTree applies a
		// Finalizer to turn these into probabilities, so the scorer
		// doesn't need to special-case zero child weight itself.
		for c := 0; c < C; c++ {
			leftYs.Set(f, c, buffer.Float(bestLeft[c]))
			rightYs.Set(f, c, buffer.Float(bestRight[c]))
		}
	}

	write.SetFloatVector(s.Bundle.Impurity, impurity)
	write.SetFloatVector(s.Bundle.Threshold, threshold)
	write.SetFloatMatrix(s.Bundle.ChildCounts, childCounts)
	write.SetFloatMatrix(s.Bundle.LeftYs, leftYs)
	write.SetFloatMatrix(s.Bundle.RightYs, rightYs)
}

func safeRatio(part, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return part / total
}

type byFeatureValue struct {
	values []float64
	order  []int
}

func (b byFeatureValue) Len() int { return len(b.order) }
func (b byFeatureValue) Less(i, j int) bool {
	return b.values[b.order[i]] < b.values[b.order[j]]
}
func (b byFeatureValue) Swap(i, j int) { b.order[i], b.order[j] = b.order[j], b.order[i] }
