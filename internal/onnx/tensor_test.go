package onnx

import "testing"

func TestNewTensor_Int64(t *testing.T) {
	tensor, err := NewTensor([]int64{1, 2, 3, 4, 5, 6}, []int64{1, 6})
	if err != nil {
		t.Fatalf("NewTensor: %v", err)
	}

	if tensor.DType() != DTypeInt64 {
		t.Errorf("DType = %s, want int64", tensor.DType())
	}

	shape := tensor.Shape()
	if len(shape) != 2 || shape[0] != 1 || shape[1] != 6 {
		t.Errorf("Shape = %v, want [1 6]", shape)
	}

	data, err := tensor.Int64Data()
	if err != nil {
		t.Fatalf("Int64Data: %v", err)
	}
	if len(data) != 6 || data[0] != 1 || data[5] != 6 {
		t.Errorf("unexpected data %v", data)
	}
}

func TestNewTensor_Float32(t *testing.T) {
	tensor, err := NewTensor([]float32{0.5, 1.5}, []int64{2})
	if err != nil {
		t.Fatalf("NewTensor: %v", err)
	}

	if tensor.DType() != DTypeFloat32 {
		t.Errorf("DType = %s, want float32", tensor.DType())
	}
}

func TestNewTensor_ShapeMismatch(t *testing.T) {
	_, err := NewTensor([]int64{1, 2, 3}, []int64{2, 2})
	if err == nil {
		t.Fatal("expected error for shape/data mismatch")
	}
}

func TestNewTensor_NonPositiveDim(t *testing.T) {
	_, err := NewTensor([]int64{}, []int64{0})
	if err == nil {
		t.Fatal("expected error for zero dimension")
	}
}

func TestNewTensor_ScalarShape(t *testing.T) {
	tensor, err := NewTensor([]float32{3.14}, nil)
	if err != nil {
		t.Fatalf("NewTensor: %v", err)
	}
	if len(tensor.Shape()) != 0 {
		t.Errorf("Shape = %v, want empty", tensor.Shape())
	}
}

func TestTensorData_TypeGuards(t *testing.T) {
	ints, err := NewTensor([]int64{1}, []int64{1})
	if err != nil {
		t.Fatalf("NewTensor: %v", err)
	}

	if _, err := ints.Float32Data(); err == nil {
		t.Error("Float32Data on int64 tensor should fail")
	}
	if _, err := ints.Int64Data(); err != nil {
		t.Errorf("Int64Data: %v", err)
	}
}

func TestDataReturnsCopy(t *testing.T) {
	tensor, err := NewTensor([]int64{1, 2}, []int64{2})
	if err != nil {
		t.Fatalf("NewTensor: %v", err)
	}

	data := tensor.Data().([]int64)
	data[0] = 99

	fresh, err := tensor.Int64Data()
	if err != nil {
		t.Fatalf("Int64Data: %v", err)
	}
	if fresh[0] != 1 {
		t.Error("mutating the Data() result must not affect the tensor")
	}
}

func TestNewRunner_EmptyModelPath(t *testing.T) {
	_, err := NewRunner(RunnerConfig{})
	if err == nil {
		t.Fatal("expected error for empty model path")
	}
}
