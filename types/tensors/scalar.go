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
	"iter"

	"github.com/gomlx/exceptions"
)

// Mode selects how the scalar kernels write their output.
type Mode int

const (
	// Assign overwrites the result: result[i] = op(operand[i], value).
	Assign Mode = iota

	// Decrement subtracts from the current content of the result: result[i] = result[i] - op(operand[i], value).
	// It's the update used to apply a gradient-scaled delta.
	Decrement
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case Assign:
		return "Assign"
	case Decrement:
		return "Decrement"
	default:
		return "Mode(?)"
	}
}

// ScalarAdd computes op(x) = x + value for every element of operand, and writes it to result according to mode.
//
// result and operand must have the same size and rank, otherwise it panics.
func ScalarAdd(result, operand *Tensor, value float32, mode Mode) {
	scalarOp("ScalarAdd", result, operand, mode, func(x float32) float32 { return x + value })
}

// ScalarSub computes op(x) = x - value for every element of operand, and writes it to result according to mode.
//
// result and operand must have the same size and rank, otherwise it panics.
func ScalarSub(result, operand *Tensor, value float32, mode Mode) {
	scalarOp("ScalarSub", result, operand, mode, func(x float32) float32 { return x - value })
}

// ScalarMul computes op(x) = x * value for every element of operand, and writes it to result according to mode.
//
// result and operand must have the same size and rank, otherwise it panics.
func ScalarMul(result, operand *Tensor, value float32, mode Mode) {
	scalarOp("ScalarMul", result, operand, mode, func(x float32) float32 { return x * value })
}

// ScalarDiv computes op(x) = x / value for every element of operand, and writes it to result according to mode.
//
// result and operand must have the same size and rank, otherwise it panics.
// Division by zero follows IEEE-754 (Inf or NaN).
func ScalarDiv(result, operand *Tensor, value float32, mode Mode) {
	scalarOp("ScalarDiv", result, operand, mode, func(x float32) float32 { return x / value })
}

// scalarOp implements the scalar kernels. Elements are paired by their row-major logical position,
// so result and operand can have different strides (views).
//
// If result and operand share storage with different layouts, the values read may already have been
// overwritten.
func scalarOp(name string, result, operand *Tensor, mode Mode, op func(float32) float32) {
	result.AssertValid()
	operand.AssertValid()
	if result.Size() != operand.Size() || result.Rank() != operand.Rank() {
		exceptions.Panicf("%s: result %s and operand %s must have the same size and rank", name, result.shape, operand.shape)
	}
	if mode != Assign && mode != Decrement {
		exceptions.Panicf("%s: invalid mode %d", name, mode)
	}
	store := func(dst *float32, v float32) { *dst = v }
	if mode == Decrement {
		store = func(dst *float32, v float32) { *dst -= v }
	}

	if result.IsContiguous() && operand.IsContiguous() {
		result.MutableFlatData(func(resultFlat []float32) {
			operand.ConstFlatData(func(operandFlat []float32) {
				for ii := range result.Size() {
					store(&resultFlat[ii], op(operandFlat[ii]))
				}
			})
		})
		return
	}
	resultFlat, operandFlat := result.local.flat, operand.local.flat
	nextOperand, stop := iter.Pull2(operand.shape.IterOffsets(operand.strides))
	defer stop()
	for _, resultOffset := range result.shape.IterOffsets(result.strides) {
		_, operandOffset, _ := nextOperand()
		store(&resultFlat[resultOffset], op(operandFlat[operandOffset]))
	}
}
