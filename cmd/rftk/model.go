package main

import (
	"encoding/gob"
	"fmt"
	"io"
	"time"

	"github.com/xiaofengliu/rftk/forest"
)

// fitOptions bundles the command-line knobs NewDepthFirstTreeLearner
// and ParallelForestLearner take as constructor arguments.
type fitOptions struct {
	nTree           int
	featuresPerNode int
	minNodeSize     float64
	maxDepth        int
	ratioThresholds float64
	minThresholds   int
	nJobs           int
	nWorkers        int
	seed            int64
}

// Model is the CLI's persisted unit: a fitted Forest plus the class
// names and feature names needed to make the gob-encoded file
// self-describing. The core learning packages never serialize a Tree
// themselves (no Predict path exists to serialize for); this is the
// one place a forest is saved, mirroring wlattner-rf's
// Classifier.Save/Load at the CLI layer.
type Model struct {
	Forest   *forest.Forest
	Classes  []string
	VarNames []string

	fitTime time.Duration
	nSample int
	opt     fitOptions
}

// Fit grows opt.nTree trees from d and records the fitted Forest.
func (m *Model) Fit(d *parsedInput, opt fitOptions) {
	start := time.Now()

	root := buildRootCollection(d)
	learner := newForestLearner(opt, len(m.Classes))
	m.Forest = learner.Learn(root)

	m.fitTime = time.Since(start)
	m.nSample = len(d.X)
	m.opt = opt
}

// Report prints a fit summary to w: wall time, sample count, and the
// ForestStats aggregated over every tree's leaves.
func (m *Model) Report(w io.Writer) {
	fmt.Fprintf(w, "Fit %d trees using %d examples in %.2f seconds\n",
		m.opt.nTree, m.nSample, m.fitTime.Seconds())
	fmt.Fprintf(w, "%d classes: %v\n\n", len(m.Classes), m.Classes)

	stats := m.Forest.Stats()
	fmt.Fprintf(w, "Forest Summary\n")
	fmt.Fprintf(w, "--------------\n")
	fmt.Fprintf(w, "depth range: [%d, %d], mean %.2f\n", stats.MinDepth, stats.MaxDepth, stats.MeanDepth())
	fmt.Fprintf(w, "total leaf weight: %.1f\n", stats.TotalWeight)
	fmt.Fprintf(w, "mean leaf error probability: %.4f\n", stats.MeanErrorProbability())
}

// Save gob-encodes the model to w.
func (m *Model) Save(w io.Writer) error {
	return gob.NewEncoder(w).Encode(m)
}

// Load gob-decodes a model previously written by Save.
func (m *Model) Load(r io.Reader) error {
	return gob.NewDecoder(r).Decode(m)
}
