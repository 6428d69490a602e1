package pipeline

import (
	"math/rand"
	"testing"

	"github.com/xiaofengliu/rftk/buffer"
	"github.com/xiaofengliu/rftk/bufferid"
	"github.com/xiaofengliu/rftk/collection"
)

func TestSetIntVectorStepWhenNewDoesNotOverwrite(t *testing.T) {
	step := NewSetIntVectorStep(buffer.VectorOf([]buffer.Int{1, 2, 3}), WhenNew)

	write := collection.New()
	write.SetIntVector(step.Output, buffer.VectorOf([]buffer.Int{9}))

	stack := collection.NewStack(collection.New())
	rng := rand.New(rand.NewSource(1))
	step.Process(stack, write, rng)

	got, _ := write.IntVector(step.Output)
	if got.Len() != 1 || got.At(0) != 9 {
		t.Error("expected WhenNew to leave the existing buffer untouched")
	}
}

func TestSetIntVectorStepEveryProcessOverwrites(t *testing.T) {
	step := NewSetIntVectorStep(buffer.VectorOf([]buffer.Int{1, 2, 3}), EveryProcess)

	write := collection.New()
	write.SetIntVector(step.Output, buffer.VectorOf([]buffer.Int{9}))

	stack := collection.NewStack(collection.New())
	rng := rand.New(rand.NewSource(1))
	step.Process(stack, write, rng)

	got, _ := write.IntVector(step.Output)
	if got.Len() != 3 {
		t.Error("expected EveryProcess to overwrite the existing buffer")
	}
}

func TestAllSamplesStepSizesToDataMatrix(t *testing.T) {
	root := collection.New()
	dataID := bufferid.Unique()
	m := buffer.NewMatrix[buffer.Float](4, 2)
	root.SetFloatMatrix(dataID, m)

	step := NewAllSamplesStep(dataID)

	write := collection.New()
	stack := collection.NewStack(root)
	rng := rand.New(rand.NewSource(1))
	step.Process(stack, write, rng)

	idx, ok := write.IntVector(step.Indices)
	if !ok || idx.Len() != 4 {
		t.Fatalf("expected 4 indices, got ok=%v len=%v", ok, idx)
	}
	for i := 0; i < 4; i++ {
		if idx.At(i) != buffer.Int(i) {
			t.Errorf("expected indices[%d] = %d, got %v", i, i, idx.At(i))
		}
	}

	w, ok := write.FloatVector(step.Weights)
	if !ok || w.Len() != 4 {
		t.Fatalf("expected 4 weights, got ok=%v len=%v", ok, w)
	}
	for i := 0; i < 4; i++ {
		if w.At(i) != 1.0 {
			t.Errorf("expected weights[%d] = 1.0, got %v", i, w.At(i))
		}
	}
}

func TestSliceFloatVectorStepGathers(t *testing.T) {
	root := collection.New()
	srcID := bufferid.Unique()
	idxID := bufferid.Unique()
	root.SetFloatVector(srcID, buffer.VectorOf([]buffer.Float{10, 20, 30, 40}))
	root.SetIntVector(idxID, buffer.VectorOf([]buffer.Int{3, 1}))

	step := NewSliceFloatVectorStep(srcID, idxID)

	write := collection.New()
	stack := collection.NewStack(root)
	rng := rand.New(rand.NewSource(1))
	step.Process(stack, write, rng)

	out, ok := write.FloatVector(step.Output)
	if !ok {
		t.Fatal("expected output buffer to be written")
	}
	if out.Len() != 2 || out.At(0) != 40 || out.At(1) != 20 {
		t.Errorf("expected gathered [40, 20], got %v, %v (len %d)", out.At(0), out.At(1), out.Len())
	}
}

func TestPipelineChainsStepOutputs(t *testing.T) {
	root := collection.New()
	dataID := bufferid.Unique()
	root.SetFloatMatrix(dataID, buffer.NewMatrix[buffer.Float](3, 1))

	samples := NewAllSamplesStep(dataID)
	gather := NewSliceFloatVectorStep(samples.Weights, samples.Indices)

	p := New(samples, gather)

	write := collection.New()
	stack := collection.NewStack(root)
	rng := rand.New(rand.NewSource(1))
	p.Process(stack, write, rng)

	out, ok := write.FloatVector(gather.Output)
	if !ok {
		t.Fatal("expected second step to see first step's output within one Process call")
	}
	if out.Len() != 3 {
		t.Errorf("expected gathered length 3, got %d", out.Len())
	}
}

func TestPipelineCloneIsIndependent(t *testing.T) {
	step := NewSetIntVectorStep(buffer.VectorOf([]buffer.Int{1}), WhenNew)
	p := New(step)

	clone := p.Clone()
	cloneStep := clone.Steps[0].(*SetIntVectorStep)

	if cloneStep == step {
		t.Error("expected Clone to produce an independent step instance")
	}
	if cloneStep.Output != step.Output {
		t.Error("expected cloned step to keep the same announced output id")
	}
}
