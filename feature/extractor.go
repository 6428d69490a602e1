package feature

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/blas/blas32"

	"github.com/xiaofengliu/rftk/buffer"
	"github.com/xiaofengliu/rftk/bufferid"
	"github.com/xiaofengliu/rftk/collection"
	"github.com/xiaofengliu/rftk/pipeline"
)

// FeatureExtractorStep materializes the featureValues matrix for the
// current node: for every (feature, sample) pair it dots the
// feature's weight row against the data row it selects, using the
// LinearMatrixFeature binding described by intParams/floatParams.
// Both feature generators this engine supports, axis-aligned and
// linear-combination, pack into this same weighted-sum binding, so one
// extractor serves both without caring which one produced its input.
type FeatureExtractorStep struct {
	DataMatrix  bufferid.ID
	Indices     bufferid.ID
	IntParams   bufferid.ID
	FloatParams bufferid.ID
	Ordering    Ordering

	FeatureValues bufferid.ID
}

// NewFeatureExtractorStep returns a step extracting feature values
// for the samples at indices, using the param rows produced by a
// feature generator step, laid out per ordering.
func NewFeatureExtractorStep(dataMatrix, indices, intParams, floatParams bufferid.ID, ordering Ordering) *FeatureExtractorStep {
	return &FeatureExtractorStep{
		DataMatrix:    dataMatrix,
		Indices:       indices,
		IntParams:     intParams,
		FloatParams:   floatParams,
		Ordering:      ordering,
		FeatureValues: bufferid.Unique(),
	}
}

func (s *FeatureExtractorStep) Clone() pipeline.Step {
	clone := *s
	return &clone
}

func (s *FeatureExtractorStep) Process(read collection.Stack, write *collection.Collection, _ *rand.Rand) {
	data, ok := read.FloatMatrix(s.DataMatrix)
	if !ok {
		panic(fmt.Sprintf("feature: FeatureExtractorStep: missing data matrix at id %v", s.DataMatrix))
	}
	indices, ok := read.IntVector(s.Indices)
	if !ok {
		panic(fmt.Sprintf("feature: FeatureExtractorStep: missing indices at id %v", s.Indices))
	}
	intParams, ok := read.IntMatrix(s.IntParams)
	if !ok {
		panic(fmt.Sprintf("feature: FeatureExtractorStep: missing int params at id %v", s.IntParams))
	}
	floatParams, ok := read.FloatMatrix(s.FloatParams)
	if !ok {
		panic(fmt.Sprintf("feature: FeatureExtractorStep: missing float params at id %v", s.FloatParams))
	}

	numFeatures, _ := intParams.Dims()
	numSamples := indices.Len()

	var out *buffer.Matrix[buffer.Float]
	switch s.Ordering {
	case FeaturesByDatapoints:
		out = buffer.NewMatrix[buffer.Float](numFeatures, numSamples)
	case DatapointsByFeatures:
		out = buffer.NewMatrix[buffer.Float](numSamples, numFeatures)
	default:
		panic(fmt.Sprintf("feature: FeatureExtractorStep: unknown ordering %v", s.Ordering))
	}

	weightBuf := make([]buffer.Float, 0, 8)
	columnBuf := make([]buffer.Float, 0, 8)

	for f := 0; f < numFeatures; f++ {
		ndims := int(intParams.At(f, NumberOfDimensionsIndex))
		weightBuf = weightBuf[:0]
		for i := 0; i < ndims; i++ {
			weightBuf = append(weightBuf, floatParams.At(f, ParamStartIndex+i))
		}
		weights := blas32.Vector{N: ndims, Data: weightBuf, Inc: 1}

		for j := 0; j < numSamples; j++ {
			row := int(indices.At(j))
			columnBuf = columnBuf[:0]
			for i := 0; i < ndims; i++ {
				col := int(intParams.At(f, ParamStartIndex+i))
				columnBuf = append(columnBuf, data.At(row, col))
			}
			values := blas32.Vector{N: ndims, Data: columnBuf, Inc: 1}
			value := blas32.Dot(weights, values)

			switch s.Ordering {
			case FeaturesByDatapoints:
				out.Set(f, j, value)
			case DatapointsByFeatures:
				out.Set(j, f, value)
			}
		}
	}

	write.SetFloatMatrix(s.FeatureValues, out)
}
