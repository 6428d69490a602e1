package collection

import (
	"github.com/xiaofengliu/rftk/buffer"
	"github.com/xiaofengliu/rftk/bufferid"
)

// Stack is an ordered sequence of Collections searched top-to-bottom on
// read: the most recently pushed frame shadows buffers of the same id
// in frames pushed earlier. Writes never go through the Stack; a step
// is handed the Stack for reading and a separate, caller-supplied
// Collection to write into (normally Stack.Top of the stack it will
// itself be pushed onto).
//
// Push returns a new Stack value rather than mutating the receiver, so
// a parent's stack can be reused as the base for many children (e.g.
// a tree's left and right child frames) without one child's push
// affecting its sibling.
type Stack struct {
	frames []*Collection
}

// NewStack returns a stack containing exactly the given base frame.
func NewStack(base *Collection) Stack {
	return Stack{frames: []*Collection{base}}
}

// Push returns a new Stack with c pushed on top.
func (s Stack) Push(c *Collection) Stack {
	frames := make([]*Collection, len(s.frames)+1)
	copy(frames, s.frames)
	frames[len(frames)-1] = c
	return Stack{frames: frames}
}

// Top returns the most recently pushed frame, the natural write target
// for a step about to run with this stack visible to it.
func (s Stack) Top() *Collection {
	return s.frames[len(s.frames)-1]
}

// Depth returns the number of frames in the stack.
func (s Stack) Depth() int {
	return len(s.frames)
}

// FloatVector searches the stack top-to-bottom for id.
func (s Stack) FloatVector(id bufferid.ID) (*buffer.Vector[buffer.Float], bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if v, ok := s.frames[i].FloatVector(id); ok {
			return v, true
		}
	}
	return nil, false
}

// IntVector searches the stack top-to-bottom for id.
func (s Stack) IntVector(id bufferid.ID) (*buffer.Vector[buffer.Int], bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if v, ok := s.frames[i].IntVector(id); ok {
			return v, true
		}
	}
	return nil, false
}

// FloatMatrix searches the stack top-to-bottom for id.
func (s Stack) FloatMatrix(id bufferid.ID) (*buffer.Matrix[buffer.Float], bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if m, ok := s.frames[i].FloatMatrix(id); ok {
			return m, true
		}
	}
	return nil, false
}

// IntMatrix searches the stack top-to-bottom for id.
func (s Stack) IntMatrix(id bufferid.ID) (*buffer.Matrix[buffer.Int], bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if m, ok := s.frames[i].IntMatrix(id); ok {
			return m, true
		}
	}
	return nil, false
}

// FloatTensor searches the stack top-to-bottom for id.
func (s Stack) FloatTensor(id bufferid.ID) (*buffer.Tensor[buffer.Float], bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if tn, ok := s.frames[i].FloatTensor(id); ok {
			return tn, true
		}
	}
	return nil, false
}

// IntTensor searches the stack top-to-bottom for id.
func (s Stack) IntTensor(id bufferid.ID) (*buffer.Tensor[buffer.Int], bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if tn, ok := s.frames[i].IntTensor(id); ok {
			return tn, true
		}
	}
	return nil, false
}
