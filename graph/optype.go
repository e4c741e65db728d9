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

// OpType identifies the operation of an expression node. Leaf nodes have OpTypeNone.
type OpType int

const (
	OpTypeNone OpType = iota
	OpTypeScalarAdd
	OpTypeScalarSub
	OpTypeScalarMul
	OpTypeScalarDiv
	OpTypeMatrixAdd
	OpTypeMatrixSub
	OpTypeMatrixMul
	OpTypeReshape
	OpTypeTranspose
	OpTypeReluAct
	OpTypeSigmoidAct
	OpTypeSoftmaxAct
	OpTypeMseCost
)

//go:generate enumer -type=OpType -trimprefix=OpType optype.go

// NumOperands returns the number of operands taken by expressions of this type.
func (op OpType) NumOperands() int {
	switch op {
	case OpTypeNone:
		return 0
	case OpTypeReshape, OpTypeTranspose, OpTypeReluAct, OpTypeSigmoidAct, OpTypeSoftmaxAct:
		return 1
	default:
		return 2
	}
}

// IsScalarOp returns whether the op is one of the scalar-affine ops, whose second operand is a scalar.
func (op OpType) IsScalarOp() bool {
	return op >= OpTypeScalarAdd && op <= OpTypeScalarDiv
}

// Label returns a human-readable description of the operation, used by Node.Info.
func (op OpType) Label() string {
	switch op {
	case OpTypeScalarAdd:
		return "Scalar Add"
	case OpTypeScalarSub:
		return "Scalar Sub"
	case OpTypeScalarMul:
		return "Scalar Mul"
	case OpTypeScalarDiv:
		return "Scalar Div"
	case OpTypeMatrixAdd:
		return "Matrix Add"
	case OpTypeMatrixSub:
		return "Matrix Sub"
	case OpTypeMatrixMul:
		return "Matrix Mul"
	case OpTypeReluAct:
		return "ReLU"
	case OpTypeSigmoidAct:
		return "Sigmoid"
	case OpTypeSoftmaxAct:
		return "Softmax"
	case OpTypeMseCost:
		return "Mean Square Error"
	}
	if !op.IsAOpType() {
		return "Unknown"
	}
	return op.String()
}
