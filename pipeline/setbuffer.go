package pipeline

import (
	"math/rand"

	"github.com/xiaofengliu/rftk/buffer"
	"github.com/xiaofengliu/rftk/bufferid"
	"github.com/xiaofengliu/rftk/collection"
)

// Rule selects when a SetBuffer step overwrites an existing buffer at
// its output id.
type Rule int

const (
	// WhenNew writes only if the output id is absent from the write
	// collection.
	WhenNew Rule = iota
	// EveryProcess overwrites unconditionally on every call.
	EveryProcess
)

// SetIntVectorStep writes a caller-supplied constant int vector to its
// output id on every Process call, subject to Rule.
type SetIntVectorStep struct {
	Output bufferid.ID
	Value  *buffer.Vector[buffer.Int]
	Rule   Rule
}

// NewSetIntVectorStep returns a step that writes value to a fresh,
// process-unique output id.
func NewSetIntVectorStep(value *buffer.Vector[buffer.Int], rule Rule) *SetIntVectorStep {
	return &SetIntVectorStep{Output: bufferid.Unique(), Value: value, Rule: rule}
}

func (s *SetIntVectorStep) Clone() Step {
	return &SetIntVectorStep{Output: s.Output, Value: s.Value.Clone(), Rule: s.Rule}
}

func (s *SetIntVectorStep) Process(_ collection.Stack, write *collection.Collection, _ *rand.Rand) {
	if s.Rule == WhenNew {
		if _, ok := write.IntVector(s.Output); ok {
			return
		}
	}
	write.SetIntVector(s.Output, s.Value.Clone())
}

// SetFloatVectorStep writes a caller-supplied constant float vector to
// its output id on every Process call, subject to Rule.
type SetFloatVectorStep struct {
	Output bufferid.ID
	Value  *buffer.Vector[buffer.Float]
	Rule   Rule
}

// NewSetFloatVectorStep returns a step that writes value to a fresh,
// process-unique output id.
func NewSetFloatVectorStep(value *buffer.Vector[buffer.Float], rule Rule) *SetFloatVectorStep {
	return &SetFloatVectorStep{Output: bufferid.Unique(), Value: value, Rule: rule}
}

func (s *SetFloatVectorStep) Clone() Step {
	return &SetFloatVectorStep{Output: s.Output, Value: s.Value.Clone(), Rule: s.Rule}
}

func (s *SetFloatVectorStep) Process(_ collection.Stack, write *collection.Collection, _ *rand.Rand) {
	if s.Rule == WhenNew {
		if _, ok := write.FloatVector(s.Output); ok {
			return
		}
	}
	write.SetFloatVector(s.Output, s.Value.Clone())
}
