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

package tensors

import (
	"math"
	"math/rand"
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/gopjrt/dtypes/bfloat16"
	"github.com/gomlx/tensorgraph/types/shapes"
	"github.com/gomlx/tensorgraph/types/xslices"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/x448/float16"
)

// Aliases
var (
	F32 = dtypes.Float32
	MS  = shapes.Make
)

func TestNew(t *testing.T) {
	for _, dims := range [][]int{{}, {5}, {2, 3}, {4, 3, 2}, {2, 1, 3, 2}} {
		tensor := must.M1(New(MS(F32, dims...)))
		wantSize, _ := xslices.Product(dims)
		require.Equal(t, wantSize, tensor.Size())
		require.Equal(t, len(dims), tensor.Rank())
		require.True(t, tensor.IsContiguous())
		require.False(t, tensor.IsView())
		require.Equal(t, uintptr(4*wantSize), tensor.Memory())
		require.Equal(t, make([]float32, wantSize), tensor.Values())

		// Strides reconstruct the row-major linear offsets.
		strides := tensor.Strides()
		position := 0
		for indices := range tensor.Shape().Iter() {
			offset := 0
			for axis, index := range indices {
				offset += index * strides[axis]
			}
			require.Equal(t, position, offset)
			position++
		}
	}

	_, err := New(shapes.Invalid())
	require.Error(t, err)
	_, err = New(MS(dtypes.Float64, 2))
	require.Error(t, err)

	_, err = New(shapes.Shape{DType: F32, Dimensions: []int{1 << 40, 1 << 40}})
	require.ErrorIs(t, err, ErrResourceExhausted)
	var exhausted *ResourceExhaustedError
	require.True(t, errors.As(err, &exhausted))
}

func TestInitializers(t *testing.T) {
	tensor := must.M1(New(MS(F32, 2, 2)))
	tensor.InitOnes()
	require.Equal(t, []float32{1, 1, 1, 1}, tensor.Values())
	tensor.InitZeros()
	require.Equal(t, []float32{0, 0, 0, 0}, tensor.Values())

	require.NoError(t, tensor.InitConstant([]float32{1, 2, 3, 4}))
	require.Equal(t, []float32{1, 2, 3, 4}, tensor.Values())
	require.Equal(t, float32(3), tensor.At(1, 0))

	require.NoError(t, tensor.InitConstant([]float64{5, 6, 7, 8}))
	require.Equal(t, []float32{5, 6, 7, 8}, tensor.Values())

	halfs := []float16.Float16{float16.Fromfloat32(0.5), float16.Fromfloat32(1), float16.Fromfloat32(-2), float16.Fromfloat32(4)}
	require.NoError(t, tensor.InitConstant(halfs))
	require.Equal(t, []float32{0.5, 1, -2, 4}, tensor.Values())

	bhalfs := []bfloat16.BFloat16{bfloat16.FromFloat32(1), bfloat16.FromFloat32(2), bfloat16.FromFloat32(3), bfloat16.FromFloat32(0.25)}
	require.NoError(t, tensor.InitConstant(bhalfs))
	require.Equal(t, []float32{1, 2, 3, 0.25}, tensor.Values())

	err := tensor.InitConstant([]float32{1, 2, 3})
	require.ErrorIs(t, err, shapes.ErrShapeMismatch)
	err = tensor.InitConstant([]int{1, 2, 3, 4})
	require.Error(t, err)
}

func TestInitRandomNormal(t *testing.T) {
	const n = 20_000
	tensor := must.M1(New(MS(F32, n)))
	tensor.InitRandomNormal(rand.New(rand.NewSource(42)))
	values := tensor.Values()
	var sum, sum2 float64
	for _, v := range values {
		require.False(t, math.IsNaN(float64(v)) || math.IsInf(float64(v), 0))
		sum += float64(v)
		sum2 += float64(v) * float64(v)
	}
	mean := sum / n
	variance := sum2/n - mean*mean
	assert.InDelta(t, 0.0, mean, 0.05)
	assert.InDelta(t, 1.0, variance, 0.05)

	// Same seed, same values.
	tensor2 := must.M1(New(MS(F32, n)))
	tensor2.InitRandomNormal(rand.New(rand.NewSource(42)))
	require.Equal(t, values, tensor2.Values())
}

func TestAtSet(t *testing.T) {
	tensor := must.M1(New(MS(F32, 2, 3)))
	tensor.Set(7, 1, 2)
	require.Equal(t, float32(7), tensor.At(1, 2))
	require.Equal(t, []float32{0, 0, 0, 0, 0, 7}, tensor.Values())
	require.Panics(t, func() { tensor.At(2, 0) })
	require.Panics(t, func() { tensor.At(0) })
	require.Panics(t, func() { tensor.Set(1, 0, -1) })
}

func TestFinalize(t *testing.T) {
	tensor := must.M1(New(MS(F32, 2, 3)))
	view := must.M1(tensor.Transpose(1, 0))
	require.True(t, view.Ok())
	tensor.Finalize()
	require.False(t, tensor.Ok())
	require.False(t, view.Ok())
	require.Panics(t, func() { tensor.Values() })
	require.Contains(t, tensor.String(), "finalized")

	// Finalizing a view keeps the source storage.
	tensor = must.M1(New(MS(F32, 2, 3)))
	view = must.M1(tensor.Transpose(1, 0))
	view.Finalize()
	require.False(t, view.Ok())
	require.True(t, tensor.Ok())
}

func TestString(t *testing.T) {
	tensor := must.M1(New(MS(F32, 2)))
	require.NoError(t, tensor.InitConstant([]float32{1, 2}))
	str := tensor.String()
	require.Contains(t, str, "Tensor(Float32)[2]")
	require.Contains(t, str, "8 B")
	require.Contains(t, str, "[1 2]")

	view := must.M1(tensor.Transpose(0))
	require.Contains(t, view.String(), "[view]")

	big := must.M1(New(MS(F32, 100)))
	require.NotContains(t, big.String(), "[0 0")
}
