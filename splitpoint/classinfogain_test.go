package splitpoint

import (
	"math"
	"math/rand"
	"testing"

	"github.com/xiaofengliu/rftk/buffer"
	"github.com/xiaofengliu/rftk/bufferid"
	"github.com/xiaofengliu/rftk/collection"
)

func TestBestSplitpointsWalkingSortedFindsCleanSplit(t *testing.T) {
	root := collection.New()

	featureValuesID := bufferid.Unique()
	fv := buffer.NewMatrix[buffer.Float](1, 4)
	fv.Set(0, 0, 1)
	fv.Set(0, 1, 2)
	fv.Set(0, 2, 3)
	fv.Set(0, 3, 4)
	root.SetFloatMatrix(featureValuesID, fv)

	labelsID := bufferid.Unique()
	root.SetIntVector(labelsID, buffer.VectorOf([]buffer.Int{0, 0, 1, 1}))

	weightsID := bufferid.Unique()
	root.SetFloatVector(weightsID, buffer.VectorOf([]buffer.Float{1, 1, 1, 1}))

	step := NewBestSplitpointsWalkingSortedStep(featureValuesID, labelsID, weightsID, 2, 1.0, 1)

	write := collection.New()
	stack := collection.NewStack(root)
	rng := rand.New(rand.NewSource(1))
	step.Process(stack, write, rng)

	impurity, _ := write.FloatVector(step.Bundle.Impurity)
	if impurity.At(0) <= 0 {
		t.Fatalf("expected positive gain for a clean split, got %v", impurity.At(0))
	}

	threshold, _ := write.FloatVector(step.Bundle.Threshold)
	if threshold.At(0) != 2.5 {
		t.Errorf("expected threshold 2.5, got %v", threshold.At(0))
	}

	childCounts, _ := write.FloatMatrix(step.Bundle.ChildCounts)
	if childCounts.At(0, 0) != 2 || childCounts.At(0, 1) != 2 {
		t.Errorf("expected child counts [2, 2], got [%v, %v]", childCounts.At(0, 0), childCounts.At(0, 1))
	}

	leftYs, _ := write.FloatMatrix(step.Bundle.LeftYs)
	rightYs, _ := write.FloatMatrix(step.Bundle.RightYs)
	// The left side holds the samples above the threshold (values 3, 4,
	// both class 1); the right side holds values 1, 2 (class 0).
	if leftYs.At(0, 0) != 0 || leftYs.At(0, 1) != 2 {
		t.Errorf("expected raw left class weight [0, 2], got [%v, %v]", leftYs.At(0, 0), leftYs.At(0, 1))
	}
	if rightYs.At(0, 0) != 2 || rightYs.At(0, 1) != 0 {
		t.Errorf("expected raw right class weight [2, 0], got [%v, %v]", rightYs.At(0, 0), rightYs.At(0, 1))
	}
}

func TestBestSplitpointsWalkingSortedConstantFeatureIsUnsplittable(t *testing.T) {
	root := collection.New()

	featureValuesID := bufferid.Unique()
	fv := buffer.NewMatrix[buffer.Float](1, 4)
	for i := 0; i < 4; i++ {
		fv.Set(0, i, 7)
	}
	root.SetFloatMatrix(featureValuesID, fv)

	labelsID := bufferid.Unique()
	root.SetIntVector(labelsID, buffer.VectorOf([]buffer.Int{0, 1, 0, 1}))

	weightsID := bufferid.Unique()
	root.SetFloatVector(weightsID, buffer.VectorOf([]buffer.Float{1, 1, 1, 1}))

	step := NewBestSplitpointsWalkingSortedStep(featureValuesID, labelsID, weightsID, 2, 1.0, 1)

	write := collection.New()
	stack := collection.NewStack(root)
	rng := rand.New(rand.NewSource(1))
	step.Process(stack, write, rng)

	impurity, _ := write.FloatVector(step.Bundle.Impurity)
	if !math.IsInf(float64(impurity.At(0)), -1) {
		t.Errorf("expected sentinel -Inf impurity for a constant feature, got %v", impurity.At(0))
	}
}

func TestBestSplitpointsWalkingSortedEntropyRoundTrip(t *testing.T) {
	root := collection.New()

	featureValuesID := bufferid.Unique()
	fv := buffer.NewMatrix[buffer.Float](1, 6)
	vals := []buffer.Float{1, 2, 3, 4, 5, 6}
	for i, v := range vals {
		fv.Set(0, i, v)
	}
	root.SetFloatMatrix(featureValuesID, fv)

	labelsID := bufferid.Unique()
	root.SetIntVector(labelsID, buffer.VectorOf([]buffer.Int{0, 1, 2, 0, 1, 2}))

	weightsID := bufferid.Unique()
	root.SetFloatVector(weightsID, buffer.VectorOf([]buffer.Float{1, 1, 1, 1, 1, 1}))

	step := NewBestSplitpointsWalkingSortedStep(featureValuesID, labelsID, weightsID, 3, 1.0, 1)

	write := collection.New()
	stack := collection.NewStack(root)
	rng := rand.New(rand.NewSource(2))
	step.Process(stack, write, rng)

	impurity, _ := write.FloatVector(step.Bundle.Impurity)
	if impurity.At(0) < 0 {
		t.Errorf("expected non-negative gain (entropy round-trip), got %v", impurity.At(0))
	}
}
