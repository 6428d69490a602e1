package forest

// Forest is the finished product of a parallel multi-tree learn:
// trees indexed in the same order they were requested, regardless of
// the order in which their workers finished.
type Forest struct {
	Trees []*Tree
}

// Stats walks every tree's leaves and returns the aggregated
// ForestStats.
func (f *Forest) Stats() *ForestStats {
	stats := NewForestStats()
	for _, t := range f.Trees {
		for n := 0; n < t.LastNodeIndex(); n++ {
			if !t.IsLeaf(n) {
				continue
			}
			ys := make([]float32, t.numberOfClasses)
			for c := range ys {
				ys[c] = t.Ys.At(n, c)
			}
			stats.ProcessLeaf(int(t.Depths.At(n)), float64(t.Counts.At(n)), ys)
		}
	}
	return stats
}
