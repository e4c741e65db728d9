/*
 *	Copyright 2023 Jan Pfeifer
 *
 *	Licensed under the Apache License, Version 2.0 (the "License");
 *	you may not use this file except in compliance with the License.
 *	You may obtain a copy of the License at
 *
 *	http://www.apache.org/licenses/LICENSE-2.0
 *
 *	Unless required by applicable law or agreed to in writing, software
 *	distributed under the License is distributed on an "AS IS" BASIS,
 *	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *	See the License for the specific language governing permissions and
 *	limitations under the License.
 */

// Package tensors implements a `Tensor`, a strided multi-dimensional array of float32 values.
//
// Tensors are multidimensional arrays (from scalar with 0 dimensions, to arbitrarily large dimensions), defined
// by their shape (a data type and its axes dimensions), their strides and their actual content, a flat
// buffer of values.
//
// The main use of tensors is to back the value and gradient of the nodes of a computation graph
// (see package graph).
//
// Tensors created with New are contiguous: their strides are the row-major strides of their shape.
// A view (see Tensor.Transpose) shares the storage of its source with a permuted set of strides,
// no data is copied. Code that walks the storage must honor the strides: the methods in this
// package (Values, At, Set, the initializers and the scalar kernels) all do.
//
// There are various ways to initialize a Tensor:
//
//   - InitZeros / InitOnes: fills with 0 or 1.
//   - InitConstant(data any): copies the given flat slice of values, in row-major logical order.
//   - InitRandomNormal(rng): samples from a standard normal distribution.
package tensors

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/tensorgraph/types/shapes"
	"github.com/pkg/errors"
)

// MaxSizeToPrint is the largest tensor size whose values are included in String().
const MaxSizeToPrint = 5

// Tensor is a strided multidimensional array of float32 values.
//
// It is not safe for concurrent use.
type Tensor struct {
	shape   shapes.Shape
	strides []int

	// local is the storage, possibly shared with other tensors (views).
	local *local

	// view is set if the tensor doesn't own its storage.
	view bool
}

// New allocates a contiguous Tensor of the given shape, initialized with zeros.
//
// Only dtypes.Float32 shapes are supported.
// It returns a ResourceExhaustedError if the storage cannot be allocated.
func New(shape shapes.Shape) (*Tensor, error) {
	if !shape.Ok() {
		return nil, errors.Errorf("tensors.New(%s): invalid shape", shape)
	}
	if shape.DType != dtypes.Float32 {
		return nil, errors.Errorf("tensors.New(%s): only %s tensors are supported", shape, dtypes.Float32)
	}
	size, ok := shape.CheckedSize()
	if !ok {
		return nil, errors.WithStack(&ResourceExhaustedError{
			Reason: fmt.Sprintf("number of elements of %s overflows", shape),
		})
	}
	l, err := newLocal(size)
	if err != nil {
		return nil, errors.WithMessagef(err, "tensors.New(%s)", shape)
	}
	return &Tensor{
		shape:   shape.Clone(),
		strides: shape.Strides(),
		local:   l,
	}, nil
}

// Shape of the tensor, includes DType.
func (t *Tensor) Shape() shapes.Shape { return t.shape }

// DType returns the DType of the tensor's shape.
func (t *Tensor) DType() dtypes.DType { return t.shape.DType }

// Rank returns the rank of the tensor's shape.
func (t *Tensor) Rank() int { return t.shape.Rank() }

// Size returns the number of elements in the tensor.
func (t *Tensor) Size() int { return t.shape.Size() }

// IsScalar returns whether the tensor represents a scalar value.
func (t *Tensor) IsScalar() bool { return t.shape.IsScalar() }

// Strides returns a copy of the element strides per axis.
func (t *Tensor) Strides() []int { return slices.Clone(t.strides) }

// Memory returns the number of bytes of storage the tensor owns. Views own no storage and return 0.
func (t *Tensor) Memory() uintptr {
	if t.view {
		return 0
	}
	return t.shape.Memory()
}

// IsView returns whether the tensor shares the storage of another tensor.
func (t *Tensor) IsView() bool { return t.view }

// IsContiguous returns whether the strides are the row-major strides of the shape, in which case
// the storage can be traversed linearly.
func (t *Tensor) IsContiguous() bool {
	return slices.Equal(t.strides, t.shape.Strides())
}

// SharesStorage returns whether both tensors are backed by the same storage.
func (t *Tensor) SharesStorage(other *Tensor) bool {
	return t != nil && other != nil && t.local == other.local
}

// Ok returns whether the Tensor is in a valid state: it is not nil, and its storage hasn't been finalized.
func (t *Tensor) Ok() bool {
	return t != nil && t.shape.Ok() && !t.local.IsFinalized()
}

// AssertValid panics if the tensor is nil, or if it has been finalized.
func (t *Tensor) AssertValid() {
	if t == nil {
		exceptions.Panicf("Tensor is nil")
	}
	if !t.shape.Ok() {
		exceptions.Panicf("Tensor shape is invalid")
	}
	if t.local.IsFinalized() {
		exceptions.Panicf("Tensor %s has been finalized", t.shape)
	}
}

// Finalize releases the storage of the tensor. Views of the tensor become invalid as well.
// Finalizing a view only detaches the view, the source storage is kept.
func (t *Tensor) Finalize() {
	if t == nil {
		return
	}
	if !t.view {
		t.local.Finalize()
	}
	t.local = nil
}

// offset returns the storage offset of the element at the given indices.
func (t *Tensor) offset(indices []int) int {
	if len(indices) != t.Rank() {
		exceptions.Panicf("tensor of shape %s requires %d indices, got %v", t.shape, t.Rank(), indices)
	}
	offset := 0
	for axis, index := range indices {
		if index < 0 || index >= t.shape.Dimensions[axis] {
			exceptions.Panicf("index %d out of range for axis %d of tensor shape %s", index, axis, t.shape)
		}
		offset += index * t.strides[axis]
	}
	return offset
}

// At returns the value at the given indices, one per axis.
// It panics for invalid indices.
func (t *Tensor) At(indices ...int) float32 {
	t.AssertValid()
	return t.local.flat[t.offset(indices)]
}

// Set the value at the given indices, one per axis.
// It panics for invalid indices.
func (t *Tensor) Set(value float32, indices ...int) {
	t.AssertValid()
	t.local.flat[t.offset(indices)] = value
}

// Values returns a copy of the values of the tensor in row-major logical order, honoring its strides.
func (t *Tensor) Values() []float32 {
	t.AssertValid()
	values := make([]float32, t.Size())
	if t.IsContiguous() {
		t.ConstFlatData(func(flat []float32) { copy(values, flat) })
		return values
	}
	for position, offset := range t.shape.IterOffsets(t.strides) {
		values[position] = t.local.flat[offset]
	}
	return values
}

// ConstFlatData calls accessFn with the flat storage of the tensor.
// The storage is in the layout given by Strides, which for views is not row-major.
// accessFn must not change the values, nor keep a reference to the slice.
func (t *Tensor) ConstFlatData(accessFn func(flat []float32)) {
	t.AssertValid()
	accessFn(t.local.flat)
}

// MutableFlatData calls accessFn with the flat storage of the tensor, that can be changed in place.
// Changes are visible to every tensor sharing the same storage.
func (t *Tensor) MutableFlatData(accessFn func(flat []float32)) {
	t.AssertValid()
	accessFn(t.local.flat)
}

// String implements fmt.Stringer.
// Values are included only for tensors up to MaxSizeToPrint elements.
func (t *Tensor) String() string {
	if t == nil {
		return "Tensor(nil)"
	}
	if !t.Ok() {
		return fmt.Sprintf("Tensor%s(finalized)", t.shape)
	}
	parts := []string{fmt.Sprintf("Tensor%s", t.shape), fmt.Sprintf("strides=%v", t.strides)}
	if t.view {
		parts = append(parts, "[view]")
	} else {
		parts = append(parts, humanize.Bytes(uint64(t.Memory())))
	}
	if t.Size() <= MaxSizeToPrint {
		parts = append(parts, fmt.Sprintf("%v", t.Values()))
	}
	return strings.Join(parts, " ")
}
