package feature

import (
	"fmt"
	"math/rand"

	"github.com/xiaofengliu/rftk/buffer"
	"github.com/xiaofengliu/rftk/bufferid"
	"github.com/xiaofengliu/rftk/collection"
	"github.com/xiaofengliu/rftk/internal/sampling"
	"github.com/xiaofengliu/rftk/pipeline"
)

// LinearCombinationParamsStep draws NumberOfFeatures candidate
// features, each a weighted sum of NumberOfDimensions distinct
// data-matrix columns drawn without replacement: intParams[k] =
// {MatrixFeatures, d, dim_0, ..., dim_{d-1}}, floatParams[k] = {0, 0,
// w_0, ..., w_{d-1}} with each w_i drawn uniformly from [-1, 1]. With
// NumberOfDimensions == 1 this degenerates to an axis-aligned feature
// with a random sign/scale instead of AxisAlignedParamsStep's fixed
// weight of 1.0, so the two generators are not interchangeable even
// at that boundary.
//
// The param row layout is identical to AxisAlignedParamsStep's, so
// FeatureExtractorStep's LinearMatrixFeature binding serves both
// generators without caring which one produced its input.
type LinearCombinationParamsStep struct {
	DataMatrix         bufferid.ID
	NumberOfFeatures   int
	NumberOfDimensions int
	IntParams          bufferid.ID
	FloatParams        bufferid.ID
}

// NewLinearCombinationParamsStep returns a step drawing
// numberOfFeatures candidates, each combining numberOfDimensions
// distinct columns of dataMatrix, announcing fresh output ids.
func NewLinearCombinationParamsStep(dataMatrix bufferid.ID, numberOfFeatures, numberOfDimensions int) *LinearCombinationParamsStep {
	return &LinearCombinationParamsStep{
		DataMatrix:         dataMatrix,
		NumberOfFeatures:   numberOfFeatures,
		NumberOfDimensions: numberOfDimensions,
		IntParams:          bufferid.Unique(),
		FloatParams:        bufferid.Unique(),
	}
}

func (s *LinearCombinationParamsStep) Clone() pipeline.Step {
	clone := *s
	return &clone
}

func (s *LinearCombinationParamsStep) Process(read collection.Stack, write *collection.Collection, rng *rand.Rand) {
	data, ok := read.FloatMatrix(s.DataMatrix)
	if !ok {
		panic(fmt.Sprintf("feature: LinearCombinationParamsStep: missing data matrix at id %v", s.DataMatrix))
	}
	_, d := data.Dims()

	ndims := s.NumberOfDimensions
	if ndims > d {
		ndims = d
	}
	width := ParamStartIndex + ndims

	intParams := buffer.NewMatrix[buffer.Int](s.NumberOfFeatures, width)
	floatParams := buffer.NewMatrix[buffer.Float](s.NumberOfFeatures, width)

	for row := 0; row < s.NumberOfFeatures; row++ {
		intParams.Set(row, FeatureTypeIndex, buffer.Int(MatrixFeatures))
		intParams.Set(row, NumberOfDimensionsIndex, buffer.Int(ndims))
		floatParams.Set(row, FeatureTypeIndex, 0)
		floatParams.Set(row, NumberOfDimensionsIndex, 0)

		columns := sampling.WithoutReplacement(rng, d, ndims)
		for i, col := range columns {
			intParams.Set(row, ParamStartIndex+i, buffer.Int(col))
			weight := rng.Float64()*2 - 1
			floatParams.Set(row, ParamStartIndex+i, buffer.Float(weight))
		}
	}

	write.SetIntMatrix(s.IntParams, intParams)
	write.SetFloatMatrix(s.FloatParams, floatParams)
}
