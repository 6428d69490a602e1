package splitpoint

// Finalizer turns a child's raw per-class weight into the probability
// vector stored as a node's ys. It is pluggable so a future
// regression estimator could reuse the selector/writeToTree machinery
// with a different finalization rule; only the classification one is
// implemented here.
type Finalizer interface {
	Clone() Finalizer
	Finalize(weight float64, counts []float32) []float32
}

// ClassEstimatorFinalizer normalizes a child's raw class weights by
// its total weight. A child that received zero weight (every
// candidate threshold sent every sample to its sibling) keeps a
// uniform prior rather than dividing by zero.
type ClassEstimatorFinalizer struct {
	NumberOfClasses int
}

// NewClassEstimatorFinalizer returns a finalizer normalizing over
// numberOfClasses classes.
func NewClassEstimatorFinalizer(numberOfClasses int) *ClassEstimatorFinalizer {
	return &ClassEstimatorFinalizer{NumberOfClasses: numberOfClasses}
}

func (f *ClassEstimatorFinalizer) Clone() Finalizer {
	clone := *f
	return &clone
}

func (f *ClassEstimatorFinalizer) Finalize(weight float64, counts []float32) []float32 {
	ys := make([]float32, f.NumberOfClasses)
	if weight <= 0 {
		uniform := float32(1.0 / float64(f.NumberOfClasses))
		for c := range ys {
			ys[c] = uniform
		}
		return ys
	}
	for c, count := range counts {
		ys[c] = float32(float64(count) / weight)
	}
	return ys
}
