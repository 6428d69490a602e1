package splitpoint

import "math"

// histogram accumulates per-class weight for one side (parent, left,
// or right) of a candidate split, caching each class's log lazily so
// a class untouched since the last entropy() call never recomputes
// its log. add/sub mark a class stale; entropy refreshes only the
// classes that moved before folding them into the sum.
type histogram struct {
	counts []float64
	logs   []float64
	stale  []bool
	weight float64
}

func newHistogram(numberOfClasses int) *histogram {
	return &histogram{
		counts: make([]float64, numberOfClasses),
		logs:   make([]float64, numberOfClasses),
		stale:  make([]bool, numberOfClasses),
	}
}

func (h *histogram) add(class int, w float64) {
	h.counts[class] += w
	h.weight += w
	h.stale[class] = true
}

func (h *histogram) sub(class int, w float64) {
	h.counts[class] -= w
	h.weight -= w
	h.stale[class] = true
}

func (h *histogram) clone() *histogram {
	counts := make([]float64, len(h.counts))
	copy(counts, h.counts)
	logs := make([]float64, len(h.logs))
	copy(logs, h.logs)
	stale := make([]bool, len(h.stale))
	copy(stale, h.stale)
	return &histogram{counts: counts, logs: logs, stale: stale, weight: h.weight}
}

// entropy returns H = -sum_c (counts[c]/weight) * (log(counts[c]) - log(weight)),
// treating empty classes and zero total weight as contributing 0.
func (h *histogram) entropy() float64 {
	if h.weight <= 0 {
		return 0
	}

	logTotal := math.Log(h.weight)
	var e float64
	for c, count := range h.counts {
		if count <= 0 {
			continue
		}
		if h.stale[c] {
			h.logs[c] = math.Log(count)
			h.stale[c] = false
		}
		p := count / h.weight
		e -= p * (h.logs[c] - logTotal)
	}
	return e
}
