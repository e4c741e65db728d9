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

// Package shapeinference calculates the shape resulting from operations and validates its inputs.
//
// There is one function per operator family. Each returns the output shape, or a
// shapes.ShapeMismatchError describing the violated rule. Shape inference never looks at values.
//
// Notice the binary rules are deliberately not uniform: MatrixAdd broadcasts its second operand over the
// leading axes of the first (right-aligned), while MatrixSub requires both operands to have the same
// rank and size.
package shapeinference

import (
	"slices"

	"github.com/gomlx/tensorgraph/types/shapes"
	"github.com/pkg/errors"
)

// checkValid returns an error if any of the shapes is invalid.
func checkValid(opName string, operands ...shapes.Shape) error {
	for ii, operand := range operands {
		if !operand.Ok() {
			return errors.Errorf("%s: invalid shape %s for operand #%d", opName, operand, ii)
		}
	}
	return nil
}

// ScalarOp returns the output shape of the scalar-affine operations (add, sub, mul and div by a scalar).
// The scalar must have rank 0, and the output has the shape of operand.
func ScalarOp(opName string, operand, scalar shapes.Shape) (output shapes.Shape, err error) {
	if err = checkValid(opName, operand, scalar); err != nil {
		return
	}
	if scalarErr := scalar.CheckScalar(); scalarErr != nil {
		err = shapes.Mismatchf(opName, []shapes.Shape{operand, scalar},
			"scalar operation requires a 0-D (scalar) second operand, got rank %d", scalar.Rank())
		return
	}
	return operand.Clone(), nil
}

// MatrixAdd returns the output shape of the element-wise addition of lhs and rhs.
//
// rhs is broadcast over the leading axes of lhs: its dimensions must equal the trailing
// rhs.Rank() dimensions of lhs. E.g.: lhs=[B, M, K] accepts rhs=[K], [M, K] or [B, M, K].
// A scalar rhs is always accepted. The output has the shape of lhs.
func MatrixAdd(lhs, rhs shapes.Shape) (output shapes.Shape, err error) {
	const opName = "MatrixAdd"
	if err = checkValid(opName, lhs, rhs); err != nil {
		return
	}
	if rhs.Rank() > lhs.Rank() ||
		!slices.Equal(rhs.Dimensions, lhs.TrailingDimensions(rhs.Rank())) {
		err = shapes.Mismatchf(opName, []shapes.Shape{lhs, rhs},
			"the dimensions of the second operand must match the trailing dimensions of the first")
		return
	}
	return lhs.Clone(), nil
}

// MatrixSub returns the output shape of the element-wise subtraction of lhs and rhs.
//
// Unlike MatrixAdd there is no broadcasting: lhs and rhs must have the same rank and the same
// number of elements. The output has the shape of lhs.
func MatrixSub(lhs, rhs shapes.Shape) (output shapes.Shape, err error) {
	const opName = "MatrixSub"
	if err = checkValid(opName, lhs, rhs); err != nil {
		return
	}
	if lhs.Rank() != rhs.Rank() || lhs.Size() != rhs.Size() {
		err = shapes.Mismatchf(opName, []shapes.Shape{lhs, rhs},
			"operands must have the same rank and size (no broadcasting)")
		return
	}
	return lhs.Clone(), nil
}

// MatrixMul returns the output shape of the (batched) matrix multiplication of lhs and rhs.
//
// Both must have rank >= 2 and the same rank, the leading (batch) dimensions must be equal, and the
// contracting dimensions must match: lhs[-1] == rhs[-2].
// The output is the batch dimensions followed by [lhs[-2], rhs[-1]].
func MatrixMul(lhs, rhs shapes.Shape) (output shapes.Shape, err error) {
	const opName = "MatrixMul"
	if err = checkValid(opName, lhs, rhs); err != nil {
		return
	}
	operands := []shapes.Shape{lhs, rhs}
	if lhs.Rank() < 2 || rhs.Rank() < 2 {
		err = shapes.Mismatchf(opName, operands, "operands must have rank >= 2")
		return
	}
	if lhs.Rank() != rhs.Rank() {
		err = shapes.Mismatchf(opName, operands, "operands must have the same rank, got %d and %d", lhs.Rank(), rhs.Rank())
		return
	}
	rank := lhs.Rank()
	if !slices.Equal(lhs.Dimensions[:rank-2], rhs.Dimensions[:rank-2]) {
		err = shapes.Mismatchf(opName, operands, "batch dimensions %v and %v don't match",
			lhs.Dimensions[:rank-2], rhs.Dimensions[:rank-2])
		return
	}
	if lhs.Dim(-1) != rhs.Dim(-2) {
		err = shapes.Mismatchf(opName, operands, "contracting dimensions don't match: lhs[-1]=%d, rhs[-2]=%d",
			lhs.Dim(-1), rhs.Dim(-2))
		return
	}
	output = lhs.Clone()
	output.Dimensions[rank-1] = rhs.Dim(-1)
	return output, nil
}

// Reshape returns the shape of operand reshaped to the given dimensions.
// The dimensions must be positive and their product must equal the size of operand.
func Reshape(operand shapes.Shape, dimensions []int) (output shapes.Shape, err error) {
	const opName = "Reshape"
	if err = checkValid(opName, operand); err != nil {
		return
	}
	for _, dim := range dimensions {
		if dim <= 0 {
			err = shapes.Mismatchf(opName, []shapes.Shape{operand}, "invalid dimensions %v, all must be > 0", dimensions)
			return
		}
	}
	output = shapes.Shape{DType: operand.DType, Dimensions: slices.Clone(dimensions)}
	size, ok := output.CheckedSize()
	if !ok || size != operand.Size() {
		err = shapes.Mismatchf(opName, []shapes.Shape{operand}, "cannot reshape to dimensions %v, their size don't match",
			dimensions)
		return shapes.Invalid(), err
	}
	return output, nil
}

// Transpose returns the shape of operand with its axes permuted.
// There must be one value in permutations for each axis in the operand, and
// output.Dimensions[ii] = operand.Dimensions[permutations[ii]].
func Transpose(operand shapes.Shape, permutations []int) (output shapes.Shape, err error) {
	const opName = "Transpose"
	if err = checkValid(opName, operand); err != nil {
		return
	}
	rank := operand.Rank()
	if len(permutations) != rank {
		err = shapes.Mismatchf(opName, []shapes.Shape{operand},
			"requires all axes permutations to be defined, %d permutations were given", len(permutations))
		return
	}
	axesSet := slices.Clone(permutations)
	slices.Sort(axesSet)
	for ii, srcAxis := range axesSet {
		if srcAxis < 0 || srcAxis >= rank {
			err = shapes.Mismatchf(opName, []shapes.Shape{operand},
				"invalid permutation axis %d, it must be within the range of its rank", srcAxis)
			return
		}
		if ii > 0 && srcAxis == axesSet[ii-1] {
			err = shapes.Mismatchf(opName, []shapes.Shape{operand},
				"invalid permutations %v, there cannot be any repeated axis, each must appear exactly once", permutations)
			return
		}
	}
	output = operand.Clone()
	for axis, srcAxis := range permutations {
		output.Dimensions[axis] = operand.Dimensions[srcAxis]
	}
	return output, nil
}

// UnaryOp returns the output shape of element-wise unary operations (activations): the shape of the operand.
func UnaryOp(opName string, operand shapes.Shape) (output shapes.Shape, err error) {
	if err = checkValid(opName, operand); err != nil {
		return
	}
	return operand.Clone(), nil
}

// MeanSquaredError returns the output shape of the mean-squared-error cost: a scalar.
// logits and labels must have the same dimensions.
func MeanSquaredError(logits, labels shapes.Shape) (output shapes.Shape, err error) {
	const opName = "MeanSquaredError"
	if err = checkValid(opName, logits, labels); err != nil {
		return
	}
	if !logits.EqualDimensions(labels) {
		err = shapes.Mismatchf(opName, []shapes.Shape{logits, labels}, "logits and labels must have the same shape")
		return
	}
	return shapes.Scalar(logits.DType), nil
}
