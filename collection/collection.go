// Package collection implements BufferCollection, a heterogeneous
// BufferId -> Buffer mapping partitioned by element/rank type, and
// BufferCollectionStack, the scoped, read-through stack of collections
// a pipeline step reads from.
package collection

import (
	"github.com/xiaofengliu/rftk/buffer"
	"github.com/xiaofengliu/rftk/bufferid"
)

// Collection is a heterogeneous mapping from BufferId to Buffer,
// partitioned by the buffer's element type and rank so a typed lookup
// either returns a buffer of the requested shape or reports absence.
// At most one buffer exists per (id, type) pair; setting an id that is
// already present replaces the existing buffer.
type Collection struct {
	floatVectors map[bufferid.ID]*buffer.Vector[buffer.Float]
	intVectors   map[bufferid.ID]*buffer.Vector[buffer.Int]
	floatMatrix  map[bufferid.ID]*buffer.Matrix[buffer.Float]
	intMatrix    map[bufferid.ID]*buffer.Matrix[buffer.Int]
	floatTensor  map[bufferid.ID]*buffer.Tensor[buffer.Float]
	intTensor    map[bufferid.ID]*buffer.Tensor[buffer.Int]
}

// New returns an empty, ready-to-use Collection.
func New() *Collection {
	return &Collection{}
}

// SetFloatVector inserts or replaces the float vector at id.
func (c *Collection) SetFloatVector(id bufferid.ID, v *buffer.Vector[buffer.Float]) {
	if c.floatVectors == nil {
		c.floatVectors = make(map[bufferid.ID]*buffer.Vector[buffer.Float])
	}
	c.floatVectors[id] = v
}

// FloatVector returns the float vector at id, and whether it is present.
func (c *Collection) FloatVector(id bufferid.ID) (*buffer.Vector[buffer.Float], bool) {
	v, ok := c.floatVectors[id]
	return v, ok
}

// SetIntVector inserts or replaces the int vector at id.
func (c *Collection) SetIntVector(id bufferid.ID, v *buffer.Vector[buffer.Int]) {
	if c.intVectors == nil {
		c.intVectors = make(map[bufferid.ID]*buffer.Vector[buffer.Int])
	}
	c.intVectors[id] = v
}

// IntVector returns the int vector at id, and whether it is present.
func (c *Collection) IntVector(id bufferid.ID) (*buffer.Vector[buffer.Int], bool) {
	v, ok := c.intVectors[id]
	return v, ok
}

// SetFloatMatrix inserts or replaces the float matrix at id.
func (c *Collection) SetFloatMatrix(id bufferid.ID, m *buffer.Matrix[buffer.Float]) {
	if c.floatMatrix == nil {
		c.floatMatrix = make(map[bufferid.ID]*buffer.Matrix[buffer.Float])
	}
	c.floatMatrix[id] = m
}

// FloatMatrix returns the float matrix at id, and whether it is present.
func (c *Collection) FloatMatrix(id bufferid.ID) (*buffer.Matrix[buffer.Float], bool) {
	m, ok := c.floatMatrix[id]
	return m, ok
}

// SetIntMatrix inserts or replaces the int matrix at id.
func (c *Collection) SetIntMatrix(id bufferid.ID, m *buffer.Matrix[buffer.Int]) {
	if c.intMatrix == nil {
		c.intMatrix = make(map[bufferid.ID]*buffer.Matrix[buffer.Int])
	}
	c.intMatrix[id] = m
}

// IntMatrix returns the int matrix at id, and whether it is present.
func (c *Collection) IntMatrix(id bufferid.ID) (*buffer.Matrix[buffer.Int], bool) {
	m, ok := c.intMatrix[id]
	return m, ok
}

// SetFloatTensor inserts or replaces the float tensor at id.
func (c *Collection) SetFloatTensor(id bufferid.ID, tn *buffer.Tensor[buffer.Float]) {
	if c.floatTensor == nil {
		c.floatTensor = make(map[bufferid.ID]*buffer.Tensor[buffer.Float])
	}
	c.floatTensor[id] = tn
}

// FloatTensor returns the float tensor at id, and whether it is present.
func (c *Collection) FloatTensor(id bufferid.ID) (*buffer.Tensor[buffer.Float], bool) {
	tn, ok := c.floatTensor[id]
	return tn, ok
}

// SetIntTensor inserts or replaces the int tensor at id.
func (c *Collection) SetIntTensor(id bufferid.ID, tn *buffer.Tensor[buffer.Int]) {
	if c.intTensor == nil {
		c.intTensor = make(map[bufferid.ID]*buffer.Tensor[buffer.Int])
	}
	c.intTensor[id] = tn
}

// IntTensor returns the int tensor at id, and whether it is present.
func (c *Collection) IntTensor(id bufferid.ID) (*buffer.Tensor[buffer.Int], bool) {
	tn, ok := c.intTensor[id]
	return tn, ok
}
