package pipeline

import (
	"fmt"
	"math/rand"

	"github.com/xiaofengliu/rftk/buffer"
	"github.com/xiaofengliu/rftk/bufferid"
	"github.com/xiaofengliu/rftk/collection"
)

// SliceFloatVectorStep gathers Source[Indices[i]] for i in
// 0..len(Indices) into a fresh output vector. It is how a node
// pipeline narrows a tree-wide float buffer (e.g. sample weights) down
// to just the samples reaching that node.
type SliceFloatVectorStep struct {
	Source  bufferid.ID
	Indices bufferid.ID
	Output  bufferid.ID
}

// NewSliceFloatVectorStep returns a step gathering source by indices
// into a fresh output id.
func NewSliceFloatVectorStep(source, indices bufferid.ID) *SliceFloatVectorStep {
	return &SliceFloatVectorStep{Source: source, Indices: indices, Output: bufferid.Unique()}
}

func (s *SliceFloatVectorStep) Clone() Step {
	clone := *s
	return &clone
}

func (s *SliceFloatVectorStep) Process(read collection.Stack, write *collection.Collection, _ *rand.Rand) {
	src, ok := read.FloatVector(s.Source)
	if !ok {
		panic(fmt.Sprintf("pipeline: SliceFloatVectorStep: missing source at id %v", s.Source))
	}
	idx, ok := read.IntVector(s.Indices)
	if !ok {
		panic(fmt.Sprintf("pipeline: SliceFloatVectorStep: missing indices at id %v", s.Indices))
	}

	out := buffer.NewVector[buffer.Float](idx.Len())
	for i := 0; i < idx.Len(); i++ {
		out.Set(i, src.At(int(idx.At(i))))
	}
	write.SetFloatVector(s.Output, out)
}

// SliceIntVectorStep gathers Source[Indices[i]] for i in
// 0..len(Indices) into a fresh output vector. It is how a node
// pipeline narrows a tree-wide int buffer (e.g. class labels) down to
// just the samples reaching that node.
type SliceIntVectorStep struct {
	Source  bufferid.ID
	Indices bufferid.ID
	Output  bufferid.ID
}

// NewSliceIntVectorStep returns a step gathering source by indices
// into a fresh output id.
func NewSliceIntVectorStep(source, indices bufferid.ID) *SliceIntVectorStep {
	return &SliceIntVectorStep{Source: source, Indices: indices, Output: bufferid.Unique()}
}

func (s *SliceIntVectorStep) Clone() Step {
	clone := *s
	return &clone
}

func (s *SliceIntVectorStep) Process(read collection.Stack, write *collection.Collection, _ *rand.Rand) {
	src, ok := read.IntVector(s.Source)
	if !ok {
		panic(fmt.Sprintf("pipeline: SliceIntVectorStep: missing source at id %v", s.Source))
	}
	idx, ok := read.IntVector(s.Indices)
	if !ok {
		panic(fmt.Sprintf("pipeline: SliceIntVectorStep: missing indices at id %v", s.Indices))
	}

	out := buffer.NewVector[buffer.Int](idx.Len())
	for i := 0; i < idx.Len(); i++ {
		out.Set(i, src.At(int(idx.At(i))))
	}
	write.SetIntVector(s.Output, out)
}
