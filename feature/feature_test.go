package feature

import (
	"math/rand"
	"testing"

	"github.com/xiaofengliu/rftk/buffer"
	"github.com/xiaofengliu/rftk/bufferid"
	"github.com/xiaofengliu/rftk/collection"
)

func TestAxisAlignedParamsStepDrawsDistinctDimensions(t *testing.T) {
	root := collection.New()
	dataID := bufferid.Unique()
	root.SetFloatMatrix(dataID, buffer.NewMatrix[buffer.Float](5, 6))

	step := NewAxisAlignedParamsStep(dataID, 3)

	write := collection.New()
	stack := collection.NewStack(root)
	rng := rand.New(rand.NewSource(42))
	step.Process(stack, write, rng)

	intParams, ok := write.IntMatrix(step.IntParams)
	if !ok {
		t.Fatal("expected intParams to be written")
	}
	rows, cols := intParams.Dims()
	if rows != 3 {
		t.Fatalf("expected 3 param rows, got %d", rows)
	}
	if cols < 3 {
		t.Fatalf("expected at least 3 columns, got %d", cols)
	}

	seen := make(map[buffer.Int]bool)
	for r := 0; r < rows; r++ {
		if intParams.At(r, FeatureTypeIndex) != buffer.Int(MatrixFeatures) {
			t.Errorf("row %d: expected feature type tag %d, got %d", r, MatrixFeatures, intParams.At(r, FeatureTypeIndex))
		}
		if intParams.At(r, NumberOfDimensionsIndex) != 1 {
			t.Errorf("row %d: expected ndims 1, got %d", r, intParams.At(r, NumberOfDimensionsIndex))
		}
		dim := intParams.At(r, ParamStartIndex)
		if seen[dim] {
			t.Fatalf("row %d: dimension %d drawn more than once", r, dim)
		}
		seen[dim] = true
	}

	floatParams, ok := write.FloatMatrix(step.FloatParams)
	if !ok {
		t.Fatal("expected floatParams to be written")
	}
	for r := 0; r < rows; r++ {
		if floatParams.At(r, ParamStartIndex) != 1.0 {
			t.Errorf("row %d: expected weight 1.0, got %v", r, floatParams.At(r, ParamStartIndex))
		}
	}
}

func TestFeatureExtractorStepComputesAxisAlignedValues(t *testing.T) {
	root := collection.New()

	dataID := bufferid.Unique()
	data := buffer.NewMatrix[buffer.Float](3, 2)
	data.Set(0, 0, 10)
	data.Set(0, 1, 100)
	data.Set(1, 0, 20)
	data.Set(1, 1, 200)
	data.Set(2, 0, 30)
	data.Set(2, 1, 300)
	root.SetFloatMatrix(dataID, data)

	indicesID := bufferid.Unique()
	root.SetIntVector(indicesID, buffer.VectorOf([]buffer.Int{2, 0}))

	intParamsID := bufferid.Unique()
	intParams := buffer.NewMatrix[buffer.Int](1, 3)
	intParams.Set(0, FeatureTypeIndex, buffer.Int(MatrixFeatures))
	intParams.Set(0, NumberOfDimensionsIndex, 1)
	intParams.Set(0, ParamStartIndex, 1) // column 1
	root.SetIntMatrix(intParamsID, intParams)

	floatParamsID := bufferid.Unique()
	floatParams := buffer.NewMatrix[buffer.Float](1, 3)
	floatParams.Set(0, ParamStartIndex, 1.0)
	root.SetFloatMatrix(floatParamsID, floatParams)

	step := NewFeatureExtractorStep(dataID, indicesID, intParamsID, floatParamsID, FeaturesByDatapoints)

	write := collection.New()
	stack := collection.NewStack(root)
	rng := rand.New(rand.NewSource(1))
	step.Process(stack, write, rng)

	out, ok := write.FloatMatrix(step.FeatureValues)
	if !ok {
		t.Fatal("expected featureValues to be written")
	}
	rows, cols := out.Dims()
	if rows != 1 || cols != 2 {
		t.Fatalf("expected a 1x2 matrix (features x datapoints), got %dx%d", rows, cols)
	}
	if out.At(0, 0) != 300 {
		t.Errorf("expected feature value for sample index 2 to be 300, got %v", out.At(0, 0))
	}
	if out.At(0, 1) != 100 {
		t.Errorf("expected feature value for sample index 0 to be 100, got %v", out.At(0, 1))
	}
}

func TestFeatureExtractorStepDatapointsByFeaturesTranspose(t *testing.T) {
	root := collection.New()

	dataID := bufferid.Unique()
	data := buffer.NewMatrix[buffer.Float](2, 1)
	data.Set(0, 0, 5)
	data.Set(1, 0, 7)
	root.SetFloatMatrix(dataID, data)

	indicesID := bufferid.Unique()
	root.SetIntVector(indicesID, buffer.VectorOf([]buffer.Int{0, 1}))

	intParamsID := bufferid.Unique()
	intParams := buffer.NewMatrix[buffer.Int](1, 3)
	intParams.Set(0, NumberOfDimensionsIndex, 1)
	intParams.Set(0, ParamStartIndex, 0)
	root.SetIntMatrix(intParamsID, intParams)

	floatParamsID := bufferid.Unique()
	floatParams := buffer.NewMatrix[buffer.Float](1, 3)
	floatParams.Set(0, ParamStartIndex, 1.0)
	root.SetFloatMatrix(floatParamsID, floatParams)

	step := NewFeatureExtractorStep(dataID, indicesID, intParamsID, floatParamsID, DatapointsByFeatures)

	write := collection.New()
	stack := collection.NewStack(root)
	rng := rand.New(rand.NewSource(1))
	step.Process(stack, write, rng)

	out, _ := write.FloatMatrix(step.FeatureValues)
	rows, cols := out.Dims()
	if rows != 2 || cols != 1 {
		t.Fatalf("expected a 2x1 matrix (datapoints x features), got %dx%d", rows, cols)
	}
	if out.At(0, 0) != 5 || out.At(1, 0) != 7 {
		t.Errorf("expected column [5, 7], got [%v, %v]", out.At(0, 0), out.At(1, 0))
	}
}
