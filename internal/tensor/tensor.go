// Package tensor provides dense multi-dimensional containers for teacher
// predictions, vote counts and class scores.
package tensor

import "fmt"

// Int is a dense tensor of int32 values stored in row-major order,
// trailing axis varying fastest.
type Int struct {
	shape []int
	data  []int32
}

// NewInt allocates a zeroed Int tensor with the given shape.
// Dimensions must be non-negative; a zero dimension yields an empty tensor.
func NewInt(shape ...int) *Int {
	return &Int{shape: checkShape(shape), data: make([]int32, numElems(shape))}
}

// NewIntFromSlice wraps data as an Int tensor with the given shape. The
// slice is used directly, not copied.
func NewIntFromSlice(data []int32, shape ...int) (*Int, error) {
	checkShape(shape)
	if len(data) != numElems(shape) {
		return nil, fmt.Errorf("tensor: data length %d does not match shape %v", len(data), shape)
	}
	return &Int{shape: append([]int(nil), shape...), data: data}, nil
}

// Rank returns the number of axes.
func (t *Int) Rank() int { return len(t.shape) }

// Shape returns a copy of the tensor's dimensions.
func (t *Int) Shape() []int { return append([]int(nil), t.shape...) }

// Dim returns the length of axis i.
func (t *Int) Dim(i int) int { return t.shape[i] }

// At returns the element at the given indices.
func (t *Int) At(idx ...int) int32 { return t.data[t.offset(idx)] }

// Set stores v at the given indices.
func (t *Int) Set(v int32, idx ...int) { t.data[t.offset(idx)] = v }

// Data returns the backing slice. Mutating it mutates the tensor.
func (t *Int) Data() []int32 { return t.data }

// Equal reports whether both tensors have the same shape and elements.
func (t *Int) Equal(u *Int) bool {
	if len(t.shape) != len(u.shape) {
		return false
	}
	for i := range t.shape {
		if t.shape[i] != u.shape[i] {
			return false
		}
	}
	for i := range t.data {
		if t.data[i] != u.data[i] {
			return false
		}
	}
	return true
}

func (t *Int) offset(idx []int) int {
	return offset(t.shape, idx)
}

// Float is a dense tensor of float64 values with the same layout as Int.
type Float struct {
	shape []int
	data  []float64
}

// NewFloat allocates a zeroed Float tensor with the given shape.
func NewFloat(shape ...int) *Float {
	return &Float{shape: checkShape(shape), data: make([]float64, numElems(shape))}
}

// NewFloatFromSlice wraps data as a Float tensor with the given shape. The
// slice is used directly, not copied.
func NewFloatFromSlice(data []float64, shape ...int) (*Float, error) {
	checkShape(shape)
	if len(data) != numElems(shape) {
		return nil, fmt.Errorf("tensor: data length %d does not match shape %v", len(data), shape)
	}
	return &Float{shape: append([]int(nil), shape...), data: data}, nil
}

// Rank returns the number of axes.
func (t *Float) Rank() int { return len(t.shape) }

// Shape returns a copy of the tensor's dimensions.
func (t *Float) Shape() []int { return append([]int(nil), t.shape...) }

// Dim returns the length of axis i.
func (t *Float) Dim(i int) int { return t.shape[i] }

// At returns the element at the given indices.
func (t *Float) At(idx ...int) float64 { return t.data[t.offset(idx)] }

// Set stores v at the given indices.
func (t *Float) Set(v float64, idx ...int) { t.data[t.offset(idx)] = v }

// Data returns the backing slice. Mutating it mutates the tensor.
func (t *Float) Data() []float64 { return t.data }

func (t *Float) offset(idx []int) int {
	return offset(t.shape, idx)
}

func checkShape(shape []int) []int {
	if len(shape) == 0 {
		panic("tensor: empty shape")
	}
	for _, d := range shape {
		if d < 0 {
			panic(fmt.Sprintf("tensor: negative dimension in shape %v", shape))
		}
	}
	return append([]int(nil), shape...)
}

func numElems(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}

func offset(shape, idx []int) int {
	if len(idx) != len(shape) {
		panic(fmt.Sprintf("tensor: got %d indices for rank %d tensor", len(idx), len(shape)))
	}
	off := 0
	for i, x := range idx {
		if x < 0 || x >= shape[i] {
			panic(fmt.Sprintf("tensor: index %d out of range for axis %d of length %d", x, i, shape[i]))
		}
		off = off*shape[i] + x
	}
	return off
}
