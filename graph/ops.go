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
	"github.com/gomlx/tensorgraph/types/shapes"
	"github.com/gomlx/tensorgraph/types/tensors"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// validateOperands checks that every operand is a valid node and that they all belong to the same
// graph, which is returned.
func validateOperands(op OpType, operands ...*Node) (*Graph, error) {
	var g *Graph
	for ii, operand := range operands {
		if err := CheckNode(operand); err != nil {
			return nil, errors.WithMessagef(err, "%s: operand #%d", op, ii)
		}
		if g == nil {
			g = operand.graph
		} else if operand.graph != g {
			return nil, errors.WithMessagef(ErrInvalidNode, "%s: operand #%d (%q) is from graph %q, but operand #0 is from graph %q",
				op, ii, operand.name, operand.graph.name, g.name)
		}
	}
	return g, nil
}

// wire sets the expression of node, registers it in the graph and then makes it the consumer of its operands.
// node must be fully allocated and initialized: wire never fails.
func (g *Graph) wire(node *Node, op OpType, operands ...*Node) *Node {
	node.op = op
	for ii, operand := range operands {
		node.operands[ii] = operand.id
	}
	g.registerNode(node)
	for _, operand := range operands {
		operand.setConsumer(node)
	}
	return node
}

// newExpression allocates and registers an expression node with the given output shape. The resulting node
// is a Placeholder, its value is to be computed by an evaluator.
func newExpression(g *Graph, op OpType, name string, shape shapes.Shape, operands ...*Node) (*Node, error) {
	node, err := g.newNode(name, NodeKindPlaceholder, shape)
	if err != nil {
		return nil, errors.WithMessagef(err, "%s(%q)", op, name)
	}
	return g.wire(node, op, operands...), nil
}

// ScalarAdd returns an expression node for x + scalar, where scalar must be a scalar (rank 0) node.
// The output has the shape of x.
func ScalarAdd(x, scalar *Node, name string) (*Node, error) {
	return scalarOp(OpTypeScalarAdd, x, scalar, name)
}

// ScalarSub returns an expression node for x - scalar, where scalar must be a scalar (rank 0) node.
// The output has the shape of x.
func ScalarSub(x, scalar *Node, name string) (*Node, error) {
	return scalarOp(OpTypeScalarSub, x, scalar, name)
}

// ScalarMul returns an expression node for x * scalar, where scalar must be a scalar (rank 0) node.
// The output has the shape of x.
func ScalarMul(x, scalar *Node, name string) (*Node, error) {
	return scalarOp(OpTypeScalarMul, x, scalar, name)
}

// ScalarDiv returns an expression node for x / scalar, where scalar must be a scalar (rank 0) node.
// The output has the shape of x.
func ScalarDiv(x, scalar *Node, name string) (*Node, error) {
	return scalarOp(OpTypeScalarDiv, x, scalar, name)
}

// ScalarKernel returns the tensor kernel implementing the scalar op, or nil if op is not a scalar op.
func ScalarKernel(op OpType) func(result, operand *tensors.Tensor, value float32, mode tensors.Mode) {
	switch op {
	case OpTypeScalarAdd:
		return tensors.ScalarAdd
	case OpTypeScalarSub:
		return tensors.ScalarSub
	case OpTypeScalarMul:
		return tensors.ScalarMul
	case OpTypeScalarDiv:
		return tensors.ScalarDiv
	}
	return nil
}

func scalarOp(op OpType, x, scalar *Node, name string) (*Node, error) {
	g, err := validateOperands(op, x, scalar)
	if err != nil {
		return nil, err
	}
	outputShape, err := shapeinference.ScalarOp(op.String(), x.Shape(), scalar.Shape())
	if err != nil {
		return nil, err
	}
	if !g.constantFolding || x.kind != NodeKindConstant || scalar.kind != NodeKindConstant {
		return newExpression(g, op, name, outputShape, x, scalar)
	}

	// Constant folding: evaluate now, and the result is itself a constant.
	node, err := g.newNode(name, NodeKindConstant, outputShape)
	if err != nil {
		return nil, errors.WithMessagef(err, "%s(%q)", op, name)
	}
	value := scalar.value.At()
	ScalarKernel(op)(node.value, x.value, value, tensors.Assign)
	klog.V(2).Infof("graph %q: folded constant %s(%q, %g)", g.name, op, x.name, value)
	return g.wire(node, op, x, scalar), nil
}

// MatrixAdd returns an expression node for the element-wise x + y.
//
// y is broadcast over the leading axes of x: its dimensions must be equal to the trailing dimensions of x.
// E.g.: x=[B, M, K] accepts y=[K], y=[M, K] or y=[B, M, K]. The output has the shape of x.
func MatrixAdd(x, y *Node, name string) (*Node, error) {
	const op = OpTypeMatrixAdd
	g, err := validateOperands(op, x, y)
	if err != nil {
		return nil, err
	}
	outputShape, err := shapeinference.MatrixAdd(x.Shape(), y.Shape())
	if err != nil {
		return nil, err
	}
	return newExpression(g, op, name, outputShape, x, y)
}

// MatrixSub returns an expression node for the element-wise x - y.
//
// Unlike MatrixAdd there is no broadcasting: x and y must have the same rank and the same size.
// The output has the shape of x.
func MatrixSub(x, y *Node, name string) (*Node, error) {
	const op = OpTypeMatrixSub
	g, err := validateOperands(op, x, y)
	if err != nil {
		return nil, err
	}
	outputShape, err := shapeinference.MatrixSub(x.Shape(), y.Shape())
	if err != nil {
		return nil, err
	}
	return newExpression(g, op, name, outputShape, x, y)
}

// MatrixMul returns an expression node for the batched matrix multiplication of x and y.
//
// x and y must have the same rank (>= 2) and the same leading (batch) dimensions, and the last axis of x must
// match the second to last of y. E.g.: x=[B, M, K] and y=[B, K, N] produces an output shaped [B, M, N].
func MatrixMul(x, y *Node, name string) (*Node, error) {
	const op = OpTypeMatrixMul
	g, err := validateOperands(op, x, y)
	if err != nil {
		return nil, err
	}
	outputShape, err := shapeinference.MatrixMul(x.Shape(), y.Shape())
	if err != nil {
		return nil, err
	}
	return newExpression(g, op, name, outputShape, x, y)
}
