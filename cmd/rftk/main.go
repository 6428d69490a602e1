package main

import (
	"fmt"
	"math"
	"os"
	"runtime"

	"github.com/davecheney/profile"

	flag "github.com/docker/docker/pkg/mflag"

	"github.com/xiaofengliu/rftk/buffer"
	"github.com/xiaofengliu/rftk/bufferid"
	"github.com/xiaofengliu/rftk/collection"
	"github.com/xiaofengliu/rftk/criteria"
	"github.com/xiaofengliu/rftk/feature"
	"github.com/xiaofengliu/rftk/internal/rflog"
	"github.com/xiaofengliu/rftk/learn"
)

var (
	dataFile  = flag.String([]string{"d", "-data"}, "", "training data, CSV with the class label as the first column")
	modelFile = flag.String([]string{"f", "-final_model"}, "rftk.model", "file to write the fitted forest")

	nTree           = flag.Int([]string{"-trees"}, 100, "number of trees")
	featuresPerNode = flag.Int([]string{"-features_per_node"}, -1, "candidate features drawn per node, -1 defaults to sqrt(# features)")
	minNodeSize     = flag.Float64([]string{"-min_node_size"}, 1.0, "minimum sample weight for a node to be considered for splitting")
	maxDepth        = flag.Int([]string{"-max_depth"}, -1, "max tree depth, -1 for unlimited")
	ratioThresholds = flag.Float64([]string{"-threshold_ratio"}, 1.0, "fraction of sorted positions evaluated per feature")
	minThresholds   = flag.Int([]string{"-min_thresholds"}, 1, "floor on the number of evaluated positions per feature")
	nJobs           = flag.Int([]string{"-jobs"}, 4, "work-item queue depth for the tree pool")
	nWorkers        = flag.Int([]string{"-workers"}, 1, "max number of trees grown concurrently")
	seed            = flag.Int64([]string{"-seed"}, 1, "base rng seed; tree t is seeded from seed+t")
	logLevel        = flag.String([]string{"-log_level"}, "info", "debug, info, warn, or error")
	runProfile      = flag.Bool([]string{"-profile"}, false, "cpu profile")
)

func main() {
	flag.Parse()
	rflog.SetLevel(*logLevel)

	if *nWorkers > 1 {
		runtime.GOMAXPROCS(runtime.NumCPU())
	}

	if *runProfile {
		defer profile.Start(profile.CPUProfile).Stop()
	}

	if *dataFile == "" {
		fmt.Fprintf(os.Stderr, "Usage of rftk:\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	f, err := os.Open(*dataFile)
	if err != nil {
		fatal("error opening data file", err.Error())
	}
	defer f.Close()

	d, err := parseCSV(f)
	if err != nil {
		fatal("error parsing input data", err.Error())
	}

	nFeatures := featuresPerNodeOrDefault(*featuresPerNode, len(d.VarNames))

	m := &Model{
		Classes:  d.Classes,
		VarNames: d.VarNames,
	}
	m.Fit(d, fitOptions{
		nTree:           *nTree,
		featuresPerNode: nFeatures,
		minNodeSize:     *minNodeSize,
		maxDepth:        *maxDepth,
		ratioThresholds: *ratioThresholds,
		minThresholds:   *minThresholds,
		nJobs:           *nJobs,
		nWorkers:        *nWorkers,
		seed:            *seed,
	})

	o, err := os.Create(*modelFile)
	if err != nil {
		fatal("error saving model", err.Error())
	}
	defer o.Close()

	if err := m.Save(o); err != nil {
		fatal("error saving model", err.Error())
	}

	m.Report(os.Stderr)
}

func featuresPerNodeOrDefault(requested, total int) int {
	if requested > 0 {
		return requested
	}
	n := int(math.Sqrt(float64(total)))
	if n < 1 {
		n = 1
	}
	return n
}

func fatal(a ...interface{}) {
	fmt.Fprintln(os.Stderr, a...)
	os.Exit(1)
}

// buildRootCollection packs a parsedInput's feature matrix and class
// labels under the well-known ids a tree-level pipeline expects.
func buildRootCollection(d *parsedInput) *collection.Collection {
	n := len(d.X)
	var nCols int
	if n > 0 {
		nCols = len(d.X[0])
	}

	x := buffer.NewMatrix[buffer.Float](n, nCols)
	y := buffer.NewVector[buffer.Int](n)
	for i, row := range d.X {
		for j, v := range row {
			x.Set(i, j, buffer.Float(v))
		}
		y.Set(i, buffer.Int(d.Y[i]))
	}

	root := collection.New()
	root.SetFloatMatrix(bufferid.FeatureValues, x)
	root.SetIntVector(bufferid.ClassLabels, y)
	return root
}

// newForestLearner wires a DepthFirstTreeLearner prototype and a
// ParallelForestLearner around it from fitOptions, following
// NewDepthFirstTreeLearner's axis-aligned node pipeline.
func newForestLearner(opt fitOptions, numberOfClasses int) *learn.ParallelForestLearner {
	trySplit := criteria.NewMinNodeSizeCriteria(opt.minNodeSize, opt.maxDepth)
	shouldSplit := criteria.ShouldSplitNoCriteria{}

	prototype := learn.NewDepthFirstTreeLearner(
		bufferid.FeatureValues,
		opt.featuresPerNode,
		numberOfClasses,
		feature.FeaturesByDatapoints,
		opt.ratioThresholds,
		opt.minThresholds,
		trySplit,
		shouldSplit,
	)

	return learn.NewParallelForestLearner(prototype, opt.nTree, opt.nJobs, opt.nWorkers, opt.seed)
}
