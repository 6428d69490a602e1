package feature

import (
	"math/rand"
	"testing"

	"github.com/xiaofengliu/rftk/buffer"
	"github.com/xiaofengliu/rftk/bufferid"
	"github.com/xiaofengliu/rftk/collection"
)

func TestLinearCombinationParamsStepDrawsDistinctDimensionsPerFeature(t *testing.T) {
	root := collection.New()
	dataID := bufferid.Unique()
	root.SetFloatMatrix(dataID, buffer.NewMatrix[buffer.Float](5, 6))

	step := NewLinearCombinationParamsStep(dataID, 4, 3)

	write := collection.New()
	stack := collection.NewStack(root)
	rng := rand.New(rand.NewSource(11))
	step.Process(stack, write, rng)

	intParams, ok := write.IntMatrix(step.IntParams)
	if !ok {
		t.Fatal("expected intParams to be written")
	}
	rows, cols := intParams.Dims()
	if rows != 4 {
		t.Fatalf("expected 4 param rows, got %d", rows)
	}
	if cols != ParamStartIndex+3 {
		t.Fatalf("expected %d columns, got %d", ParamStartIndex+3, cols)
	}

	floatParams, _ := write.FloatMatrix(step.FloatParams)

	for r := 0; r < rows; r++ {
		if intParams.At(r, NumberOfDimensionsIndex) != 3 {
			t.Errorf("row %d: expected ndims 3, got %d", r, intParams.At(r, NumberOfDimensionsIndex))
		}
		seen := make(map[buffer.Int]bool)
		for i := 0; i < 3; i++ {
			dim := intParams.At(r, ParamStartIndex+i)
			if seen[dim] {
				t.Errorf("row %d: dimension %d repeated within a feature", r, dim)
			}
			seen[dim] = true
			w := floatParams.At(r, ParamStartIndex+i)
			if w < -1 || w > 1 {
				t.Errorf("row %d: weight %v out of [-1, 1]", r, w)
			}
		}
	}
}

func TestLinearCombinationParamsStepCapsDimensionsAtColumnCount(t *testing.T) {
	root := collection.New()
	dataID := bufferid.Unique()
	root.SetFloatMatrix(dataID, buffer.NewMatrix[buffer.Float](5, 2))

	step := NewLinearCombinationParamsStep(dataID, 1, 5)

	write := collection.New()
	stack := collection.NewStack(root)
	rng := rand.New(rand.NewSource(1))
	step.Process(stack, write, rng)

	intParams, _ := write.IntMatrix(step.IntParams)
	if intParams.At(0, NumberOfDimensionsIndex) != 2 {
		t.Errorf("expected ndims capped at 2 data columns, got %d", intParams.At(0, NumberOfDimensionsIndex))
	}
}
