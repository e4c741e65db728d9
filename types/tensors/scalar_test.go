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
	"testing"

	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/require"
)

func newWithValues(t *testing.T, values []float32, dims ...int) *Tensor {
	tensor := must.M1(New(MS(F32, dims...)))
	require.NoError(t, tensor.InitConstant(values))
	return tensor
}

func TestScalarKernels(t *testing.T) {
	operandValues := []float32{1, 2, 3, 4, 5, 6}
	resultValues := []float32{10, 20, 30, 40, 50, 60}
	const value = float32(2)

	testCases := []struct {
		name   string
		kernel func(result, operand *Tensor, value float32, mode Mode)
		op     func(x float32) float32
	}{
		{"ScalarAdd", ScalarAdd, func(x float32) float32 { return x + value }},
		{"ScalarSub", ScalarSub, func(x float32) float32 { return x - value }},
		{"ScalarMul", ScalarMul, func(x float32) float32 { return x * value }},
		{"ScalarDiv", ScalarDiv, func(x float32) float32 { return x / value }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			operand := newWithValues(t, operandValues, 2, 3)

			result := newWithValues(t, resultValues, 2, 3)
			tc.kernel(result, operand, value, Assign)
			for ii, got := range result.Values() {
				require.Equal(t, tc.op(operandValues[ii]), got, "Assign, element %d", ii)
			}

			result = newWithValues(t, resultValues, 2, 3)
			tc.kernel(result, operand, value, Decrement)
			for ii, got := range result.Values() {
				require.Equal(t, resultValues[ii]-tc.op(operandValues[ii]), got, "Decrement, element %d", ii)
			}

			// Operand is never changed.
			require.Equal(t, operandValues, operand.Values())
		})
	}
}

func TestScalarKernelsInPlace(t *testing.T) {
	tensor := newWithValues(t, []float32{1, 2, 3}, 3)
	ScalarMul(tensor, tensor, 3, Assign)
	require.Equal(t, []float32{3, 6, 9}, tensor.Values())
	// x - (x * 1) == 0
	ScalarMul(tensor, tensor, 1, Decrement)
	require.Equal(t, []float32{0, 0, 0}, tensor.Values())
}

func TestScalarKernelsOnViews(t *testing.T) {
	// source = [[1 2 3] [4 5 6]], its transpose is [[1 4] [2 5] [3 6]].
	source := newWithValues(t, []float32{1, 2, 3, 4, 5, 6}, 2, 3)
	transposed := must.M1(source.Transpose(1, 0))
	require.False(t, transposed.IsContiguous())

	result := must.M1(New(MS(F32, 3, 2)))
	ScalarAdd(result, transposed, 10, Assign)
	require.Equal(t, []float32{11, 14, 12, 15, 13, 16}, result.Values())

	// Writing into a view writes into the source storage, following the strides.
	ones := must.M1(New(MS(F32, 3, 2)))
	ones.InitOnes()
	ScalarMul(transposed, ones, 1, Decrement)
	require.Equal(t, []float32{0, 1, 2, 3, 4, 5}, source.Values())
	require.Equal(t, []float32{0, 3, 1, 4, 2, 5}, transposed.Values())
}

func TestScalarKernelsMismatch(t *testing.T) {
	a := must.M1(New(MS(F32, 2, 3)))
	b := must.M1(New(MS(F32, 6)))
	c := must.M1(New(MS(F32, 2, 2)))
	require.Panics(t, func() { ScalarAdd(a, b, 1, Assign) })
	require.Panics(t, func() { ScalarSub(a, c, 1, Assign) })
	err := exceptions.TryCatch[error](func() { ScalarDiv(a, a, 1, Mode(7)) })
	require.Error(t, err)

	// Same rank and size, different dimensions is accepted.
	d := must.M1(New(MS(F32, 3, 2)))
	require.NotPanics(t, func() { ScalarAdd(a, d, 1, Assign) })
}

func TestModeString(t *testing.T) {
	require.Equal(t, "Assign", Assign.String())
	require.Equal(t, "Decrement", Decrement.String())
}
