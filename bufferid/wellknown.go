package bufferid

// Well-known ids for the external inputs of a root buffer collection:
// the dense feature matrix, its integer class labels, and per-sample
// weights. The CLI stores the matrix and labels under FeatureValues
// and ClassLabels, and DepthFirstTreeLearner reads the labels through
// ClassLabels. Steps receive the ids they read as constructor
// arguments. No step or learner reads SampleWeights: the tree
// pipeline's AllSamplesStep emits unit weights of its own.
var (
	FeatureValues = Get("FEATURE_VALUES")
	ClassLabels   = Get("CLASS_LABELS")
	SampleWeights = Get("SAMPLE_WEIGHTS")
)
