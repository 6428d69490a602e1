// Package forest implements the array-of-structs Tree storage the
// learner writes into and the ForestStats leaf summaries computed
// over a finished Tree.
package forest

import (
	"bytes"
	"encoding/gob"

	"github.com/xiaofengliu/rftk/buffer"
)

// Sentinels fixed by the external contract: NullChild marks a leaf's
// missing child slot, SplitpointIndex is the column of
// floatFeatureParams holding a node's chosen threshold, and
// LeftChildIndex/RightChildIndex are the columns of path.
const (
	NullChild       = -1
	SplitpointIndex = 0
	LeftChildIndex  = 0
	RightChildIndex = 1
)

// Tree is a depth-first-grown decision tree stored as parallel arrays
// indexed by node id. Arrays grow geometrically as nodes are
// appended and are compacted to their exact size once growth
// finishes.
type Tree struct {
	Path             *buffer.Matrix[buffer.Int]   // [n, 2]: left/right child ids, NullChild for leaves
	IntFeatureParams *buffer.Matrix[buffer.Int]   // [n, *]: feature descriptor used at node n
	FloatFeatureParams *buffer.Matrix[buffer.Float] // [n, *]: feature descriptor; column SplitpointIndex holds the threshold
	Counts           *buffer.Vector[buffer.Float] // [n]: total sample weight reaching node n
	Depths           *buffer.Vector[buffer.Int]   // [n]: depth of node n, root = 0
	Ys               *buffer.Matrix[buffer.Float] // [n, C]: estimated class-probability vector

	lastNodeIndex int
	paramWidth    int
	numberOfClasses int
}

// NewTree returns a Tree with one allocated root slot (depth 0,
// uniform ys over numberOfClasses), sized for param rows of
// paramWidth columns.
func NewTree(paramWidth, numberOfClasses int) *Tree {
	const initialCapacity = 8

	t := &Tree{
		Path:               buffer.NewMatrix[buffer.Int](initialCapacity, 2),
		IntFeatureParams:   buffer.NewMatrix[buffer.Int](initialCapacity, paramWidth),
		FloatFeatureParams: buffer.NewMatrix[buffer.Float](initialCapacity, paramWidth),
		Counts:             buffer.NewVector[buffer.Float](initialCapacity),
		Depths:             buffer.NewVector[buffer.Int](initialCapacity),
		Ys:                 buffer.NewMatrix[buffer.Float](initialCapacity, numberOfClasses),
		paramWidth:         paramWidth,
		numberOfClasses:    numberOfClasses,
	}

	t.Path.Set(0, LeftChildIndex, NullChild)
	t.Path.Set(0, RightChildIndex, NullChild)
	uniform := buffer.Float(1.0 / float64(numberOfClasses))
	for c := 0; c < numberOfClasses; c++ {
		t.Ys.Set(0, c, uniform)
	}
	t.lastNodeIndex = 1

	return t
}

// LastNodeIndex returns one past the last used slot.
func (t *Tree) LastNodeIndex() int { return t.lastNodeIndex }

// NextNodeIndex returns the current lastNodeIndex, then allocates a
// slot for it, growing the backing arrays by roughly 1.5x if they are
// saturated. The newly allocated row starts as a leaf (both children
// NullChild) with a uniform ys.
func (t *Tree) NextNodeIndex() int {
	id := t.lastNodeIndex
	t.lastNodeIndex++

	capacity, _ := t.Path.Dims()
	if t.lastNodeIndex > capacity {
		grown := capacity + capacity/2 + 1
		t.Path.Resize(grown, 2)
		t.IntFeatureParams.Resize(grown, t.paramWidth)
		t.FloatFeatureParams.Resize(grown, t.paramWidth)
		t.Counts.Resize(grown)
		t.Depths.Resize(grown)
		t.Ys.Resize(grown, t.numberOfClasses)
	}

	t.Path.Set(id, LeftChildIndex, NullChild)
	t.Path.Set(id, RightChildIndex, NullChild)
	uniform := buffer.Float(1.0 / float64(t.numberOfClasses))
	for c := 0; c < t.numberOfClasses; c++ {
		t.Ys.Set(id, c, uniform)
	}

	return id
}

// IsLeaf reports whether node n is a leaf: either child slot is
// NullChild.
func (t *Tree) IsLeaf(n int) bool {
	return t.Path.At(n, LeftChildIndex) == NullChild || t.Path.At(n, RightChildIndex) == NullChild
}

// Compact shrinks every backing array to exactly LastNodeIndex rows.
func (t *Tree) Compact() {
	n := t.lastNodeIndex
	t.Path.Resize(n, 2)
	t.IntFeatureParams.Resize(n, t.paramWidth)
	t.FloatFeatureParams.Resize(n, t.paramWidth)
	t.Counts.Resize(n)
	t.Depths.Resize(n)
	t.Ys.Resize(n, t.numberOfClasses)
}

// gobTree shadows Tree's exported buffers for serialization; the
// unexported lastNodeIndex/paramWidth/numberOfClasses are recomputed
// on decode from the buffers' own dimensions, which is exact as long
// as the tree was Compact()ed before encoding (DepthFirstTreeLearner.Learn
// always does this before returning).
type gobTree struct {
	Path               *buffer.Matrix[buffer.Int]
	IntFeatureParams   *buffer.Matrix[buffer.Int]
	FloatFeatureParams *buffer.Matrix[buffer.Float]
	Counts             *buffer.Vector[buffer.Float]
	Depths             *buffer.Vector[buffer.Int]
	Ys                 *buffer.Matrix[buffer.Float]
}

func (t *Tree) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	shadow := gobTree{
		Path:               t.Path,
		IntFeatureParams:   t.IntFeatureParams,
		FloatFeatureParams: t.FloatFeatureParams,
		Counts:             t.Counts,
		Depths:             t.Depths,
		Ys:                 t.Ys,
	}
	if err := gob.NewEncoder(&buf).Encode(shadow); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (t *Tree) GobDecode(b []byte) error {
	var shadow gobTree
	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&shadow); err != nil {
		return err
	}

	t.Path = shadow.Path
	t.IntFeatureParams = shadow.IntFeatureParams
	t.FloatFeatureParams = shadow.FloatFeatureParams
	t.Counts = shadow.Counts
	t.Depths = shadow.Depths
	t.Ys = shadow.Ys

	rows, _ := t.Path.Dims()
	t.lastNodeIndex = rows
	_, t.paramWidth = t.IntFeatureParams.Dims()
	_, t.numberOfClasses = t.Ys.Dims()

	return nil
}
