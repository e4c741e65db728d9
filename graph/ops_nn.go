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
)

func unaryOp(op OpType, x *Node, name string) (*Node, error) {
	g, err := validateOperands(op, x)
	if err != nil {
		return nil, err
	}
	outputShape, err := shapeinference.UnaryOp(op.String(), x.Shape())
	if err != nil {
		return nil, err
	}
	return newExpression(g, op, name, outputShape, x)
}

// Relu returns an expression node for the rectified linear unit activation: max(x, 0).
func Relu(x *Node, name string) (*Node, error) {
	return unaryOp(OpTypeReluAct, x, name)
}

// Sigmoid returns an expression node for the logistic activation: 1/(1+exp(-x)).
func Sigmoid(x *Node, name string) (*Node, error) {
	return unaryOp(OpTypeSigmoidAct, x, name)
}

// Softmax returns an expression node for the softmax of x, normalized over its last axis.
func Softmax(x *Node, name string) (*Node, error) {
	return unaryOp(OpTypeSoftmaxAct, x, name)
}

// MeanSquaredError returns a scalar expression node for the mean of the squared differences between
// logits and labels, which must have the same shape.
func MeanSquaredError(logits, labels *Node, name string) (*Node, error) {
	const op = OpTypeMseCost
	g, err := validateOperands(op, logits, labels)
	if err != nil {
		return nil, err
	}
	outputShape, err := shapeinference.MeanSquaredError(logits.Shape(), labels.Shape())
	if err != nil {
		return nil, err
	}
	return newExpression(g, op, name, outputShape, logits, labels)
}
