// Package pipeline implements the composable node-learning pipeline:
// a Step is a stateless-after-construction unit of work that reads from
// a collection.Stack and writes to a shared collection.Collection, and
// a Pipeline sequences Steps so later steps can see earlier ones'
// output.
package pipeline

import (
	"math/rand"

	"github.com/xiaofengliu/rftk/collection"
)

// Step is any unit of pipeline work. A Step announces the ids of the
// buffers it will write as public fields set once in its constructor
// (via bufferid.Unique), so consumers can hold the producer's id at
// graph-build time and look the buffer up in the read stack at run
// time -- producers and consumers never hold references to each
// other.
type Step interface {
	// Clone returns a deep, independent copy. Every Step is stateless
	// after construction except for the parameters captured at
	// construction time, so cloning is always cheap and enables
	// parallel learners to own independent pipeline graphs.
	Clone() Step

	// Process reads whatever inputs it needs from read and writes its
	// announced outputs into write. It never mutates read.
	Process(read collection.Stack, write *collection.Collection, rng *rand.Rand)
}

// Pipeline is an ordered sequence of Steps run against one shared
// write collection. Steps are invoked in order; each step's writes
// become visible to later steps in the same Pipeline.Process call
// because write is pushed onto the read stack before any step runs.
type Pipeline struct {
	Steps []Step
}

// New returns a Pipeline that runs steps in the given order.
func New(steps ...Step) *Pipeline {
	return &Pipeline{Steps: steps}
}

// Process runs every step in order. write should normally be the
// frame the caller intends to push onto its own stack afterward (the
// tree frame, or a node frame) so that downstream pipeline stages and
// the caller's own subsequent reads see the same data.
func (p *Pipeline) Process(read collection.Stack, write *collection.Collection, rng *rand.Rand) {
	augmented := read.Push(write)
	for _, step := range p.Steps {
		step.Process(augmented, write, rng)
	}
}

// Clone returns a Pipeline with every step independently cloned.
func (p *Pipeline) Clone() *Pipeline {
	cloned := make([]Step, len(p.Steps))
	for i, s := range p.Steps {
		cloned[i] = s.Clone()
	}
	return &Pipeline{Steps: cloned}
}
