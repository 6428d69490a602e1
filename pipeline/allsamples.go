package pipeline

import (
	"fmt"
	"math/rand"

	"github.com/xiaofengliu/rftk/buffer"
	"github.com/xiaofengliu/rftk/bufferid"
	"github.com/xiaofengliu/rftk/collection"
)

// AllSamplesStep emits an indices vector (0..N-1) and a weights vector
// (all 1.0), both sized to the number of rows in the named data
// matrix. It is the usual first step of a tree-level pipeline, seeding
// the root node's sample set.
type AllSamplesStep struct {
	DataMatrix bufferid.ID // input: the feature value matrix, N rows
	Indices    bufferid.ID // output: int vector, length N
	Weights    bufferid.ID // output: float vector, length N
}

// NewAllSamplesStep returns a step reading the data matrix at
// dataMatrix and announcing fresh output ids for indices and weights.
func NewAllSamplesStep(dataMatrix bufferid.ID) *AllSamplesStep {
	return &AllSamplesStep{
		DataMatrix: dataMatrix,
		Indices:    bufferid.Unique(),
		Weights:    bufferid.Unique(),
	}
}

func (s *AllSamplesStep) Clone() Step {
	clone := *s
	return &clone
}

func (s *AllSamplesStep) Process(read collection.Stack, write *collection.Collection, _ *rand.Rand) {
	data, ok := read.FloatMatrix(s.DataMatrix)
	if !ok {
		panic(fmt.Sprintf("pipeline: AllSamplesStep: missing data matrix at id %v", s.DataMatrix))
	}

	n, _ := data.Dims()

	idx := buffer.NewVector[buffer.Int](n)
	w := buffer.NewVector[buffer.Float](n)
	for i := 0; i < n; i++ {
		idx.Set(i, buffer.Int(i))
		w.Set(i, 1.0)
	}

	write.SetIntVector(s.Indices, idx)
	write.SetFloatVector(s.Weights, w)
}
