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

package graph

import (
	"github.com/gomlx/tensorgraph/graph/shapeinference"
	"github.com/pkg/errors"
)

// Reshape returns an expression node with the values of x laid out with the given dimensions.
// The total size must be preserved, that is, the product of dimensions must equal x's size.
//
// The result has its own (contiguous) storage.
func Reshape(x *Node, name string, dimensions ...int) (*Node, error) {
	const op = OpTypeReshape
	g, err := validateOperands(op, x)
	if err != nil {
		return nil, err
	}
	outputShape, err := shapeinference.Reshape(x.Shape(), dimensions)
	if err != nil {
		return nil, err
	}
	return newExpression(g, op, name, outputShape, x)
}

// Transpose returns an expression node with the axes of x permuted: output axis i is x's axis permutations[i].
// permutations must list each axis of x exactly once.
//
// The value of the result is a view of x's value, with the dimensions and strides permuted, so no storage
// is allocated for it. The gradient has its own (contiguous) storage.
func Transpose(x *Node, name string, permutations ...int) (*Node, error) {
	const op = OpTypeTranspose
	g, err := validateOperands(op, x)
	if err != nil {
		return nil, err
	}
	outputShape, err := shapeinference.Transpose(x.Shape(), permutations)
	if err != nil {
		return nil, err
	}
	value, err := x.value.Transpose(permutations...)
	if err != nil {
		return nil, errors.WithMessagef(err, "%s(%q) of value", op, name)
	}
	gradient, err := g.allocate(outputShape)
	if err != nil {
		value.Finalize()
		return nil, errors.WithMessagef(err, "%s(%q) of gradient", op, name)
	}
	node := g.newNodeWithTensors(name, NodeKindPlaceholder, value, gradient)
	return g.wire(node, op, x), nil
}
