// Package splitpoint implements the class-information-gain split
// scorer: for every candidate feature of a node it walks the sorted
// feature values and picks the threshold maximizing information gain,
// using an incremental entropy update so the whole sorted order is
// visited in one pass.
package splitpoint

import "github.com/xiaofengliu/rftk/bufferid"

// Bundle names the buffers one scorer step produces, keyed by
// feature index. A SplitSelector consults one or more bundles (one
// per scorer in the node pipeline) to choose the best
// (bundle, feature) pair across all of them.
type Bundle struct {
	Impurity    bufferid.ID // float vector [F]: gain per feature, sentinel -Inf if no split
	Threshold   bufferid.ID // float vector [F]: chosen threshold per feature
	ChildCounts bufferid.ID // float matrix [F,2]: left/right weight at the chosen threshold
	LeftYs      bufferid.ID // float matrix [F,C]: raw left per-class weight at the chosen threshold (normalized later by a Finalizer)
	RightYs     bufferid.ID // float matrix [F,C]: raw right per-class weight at the chosen threshold (normalized later by a Finalizer)
}

// SplitSelectorBuffers pairs one scorer's output Bundle with the
// feature-generator param ids the scorer scored, so a SplitSelector
// can both pick the best-scoring feature and copy its descriptor rows
// into the tree. One SplitSelectorBuffers exists per feature-source in
// a node pipeline (axis-aligned, linear-combination, ...).
type SplitSelectorBuffers struct {
	IntParams     bufferid.ID // int matrix [F, *]: feature descriptor rows from the generator
	FloatParams   bufferid.ID // float matrix [F, *]: feature descriptor rows from the generator
	FeatureValues bufferid.ID // float matrix [F, N]: the values the scorer walked
	Indices       bufferid.ID // int vector [N]: node-local sample indices, aligned to FeatureValues columns
	Scores        Bundle
}
