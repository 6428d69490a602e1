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

// AxisAlignedParamsStep draws NumberOfFeatures distinct data-matrix
// columns without replacement and emits them as one-dimensional
// MatrixFeatures param rows: intParams[k] = {MatrixFeatures, 1,
// column}, floatParams[k] = {0, 0, 1.0}. It is the node pipeline's
// source of random candidate features.
type AxisAlignedParamsStep struct {
	DataMatrix       bufferid.ID
	NumberOfFeatures int
	IntParams        bufferid.ID
	FloatParams      bufferid.ID
}

// NewAxisAlignedParamsStep returns a step drawing numberOfFeatures
// distinct columns from dataMatrix on every Process call, announcing
// fresh output ids.
func NewAxisAlignedParamsStep(dataMatrix bufferid.ID, numberOfFeatures int) *AxisAlignedParamsStep {
	return &AxisAlignedParamsStep{
		DataMatrix:       dataMatrix,
		NumberOfFeatures: numberOfFeatures,
		IntParams:        bufferid.Unique(),
		FloatParams:      bufferid.Unique(),
	}
}

func (s *AxisAlignedParamsStep) Clone() pipeline.Step {
	clone := *s
	return &clone
}

func (s *AxisAlignedParamsStep) Process(read collection.Stack, write *collection.Collection, rng *rand.Rand) {
	data, ok := read.FloatMatrix(s.DataMatrix)
	if !ok {
		panic(fmt.Sprintf("feature: AxisAlignedParamsStep: missing data matrix at id %v", s.DataMatrix))
	}
	_, d := data.Dims()

	columns := sampling.WithoutReplacement(rng, d, s.NumberOfFeatures)
	k := len(columns)

	intParams := buffer.NewMatrix[buffer.Int](k, ParamStartIndex+1)
	floatParams := buffer.NewMatrix[buffer.Float](k, ParamStartIndex+1)

	for row, col := range columns {
		intParams.Set(row, FeatureTypeIndex, buffer.Int(MatrixFeatures))
		intParams.Set(row, NumberOfDimensionsIndex, 1)
		intParams.Set(row, ParamStartIndex, buffer.Int(col))

		floatParams.Set(row, FeatureTypeIndex, 0)
		floatParams.Set(row, NumberOfDimensionsIndex, 0)
		floatParams.Set(row, ParamStartIndex, 1.0)
	}

	write.SetIntMatrix(s.IntParams, intParams)
	write.SetFloatMatrix(s.FloatParams, floatParams)
}
