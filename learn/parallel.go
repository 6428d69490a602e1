package learn

import (
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/xiaofengliu/rftk/collection"
	"github.com/xiaofengliu/rftk/forest"
	"github.com/xiaofengliu/rftk/internal/rflog"
)

// ParallelForestLearner grows NumberOfTrees independent trees from a
// prototype DepthFirstTreeLearner, one clone per tree, with bounded
// concurrency. Trees are independent: no shared mutable state crosses
// worker boundaries beyond the read-only root collection.
type ParallelForestLearner struct {
	Prototype *DepthFirstTreeLearner

	NumberOfTrees      int
	NumberOfJobs       int // sizes the work-item channel buffer
	MaxNumberOfThreads int // bounds concurrent tree growth

	// Seed is the base rng seed; tree t is grown from a source seeded
	// with Seed+t, so two runs with the same Seed over the same root
	// collection produce identical forests regardless of how the
	// worker pool happens to interleave completion.
	Seed int64
}

// NewParallelForestLearner returns a learner growing numberOfTrees
// trees from prototype, queuing work items numberOfJobs deep and
// running up to maxNumberOfThreads of them concurrently.
func NewParallelForestLearner(prototype *DepthFirstTreeLearner, numberOfTrees, numberOfJobs, maxNumberOfThreads int, seed int64) *ParallelForestLearner {
	return &ParallelForestLearner{
		Prototype:          prototype,
		NumberOfTrees:      numberOfTrees,
		NumberOfJobs:       numberOfJobs,
		MaxNumberOfThreads: maxNumberOfThreads,
		Seed:               seed,
	}
}

// Learn grows the forest. root is shared read-only across every
// worker; each worker clones Prototype so it owns its own pipeline,
// selector, and criteria graph before running.
func (p *ParallelForestLearner) Learn(root *collection.Collection) *forest.Forest {
	trees := make([]*forest.Tree, p.NumberOfTrees)

	jobs := make(chan int, p.NumberOfJobs)
	go func() {
		for t := 0; t < p.NumberOfTrees; t++ {
			jobs <- t
		}
		close(jobs)
	}()

	var g errgroup.Group
	g.SetLimit(p.MaxNumberOfThreads)

	for t := range jobs {
		t := t
		g.Go(func() error {
			learner := p.Prototype.Clone()
			rng := rand.New(rand.NewSource(p.Seed + int64(t)))

			tree := learner.Learn(root, rng)
			trees[t] = tree

			rflog.Infof("learn: grew tree %d/%d (%d nodes)", t+1, p.NumberOfTrees, tree.LastNodeIndex())
			return nil
		})
	}

	g.Wait()

	return &forest.Forest{Trees: trees}
}
