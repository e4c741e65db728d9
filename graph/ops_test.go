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

package graph_test

import (
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	. "github.com/gomlx/tensorgraph/graph"
	"github.com/gomlx/tensorgraph/graph/graphtest"
	"github.com/gomlx/tensorgraph/types/shapes"
	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/klog/v2"
)

func init() {
	klog.InitFlags(nil)
}

var (
	// Aliases:

	MS  = shapes.Make
	F32 = dtypes.Float32
)

func TestScalarOps(t *testing.T) {
	for _, opFn := range []func(x, scalar *Node, name string) (*Node, error){ScalarAdd, ScalarSub, ScalarMul, ScalarDiv} {
		g := graphtest.BuildTestGraph(t)
		x := must.M1(Variable(g, "x", MS(F32, 2, 3)))
		s := must.M1(Scalar(g, "s", 2))
		y := must.M1(opFn(x, s, "y"))
		assert.True(t, y.Op().IsScalarOp())
		assert.NoError(t, y.Shape().CheckDims(2, 3))
		assert.Equal(t, NodeKindPlaceholder, y.Kind())
		assert.Equal(t, []*Node{x, s}, y.Operands())

		// Second operand must be a scalar.
		_, err := opFn(x, x, "z")
		graphtest.RequireShapeMismatch(t, err, y.Op().String())
		assert.Equal(t, 3, g.NumNodes())
	}
}

func TestMatrixMul(t *testing.T) {
	graphtest.RunTestGraphFn(t, "MatrixMul [B,M,K]x[B,K,N]", func(g *Graph) (inputs, outputs []*Node, err error) {
		x := must.M1(Variable(g, "x", MS(F32, 2, 3, 4)))
		y := must.M1(Variable(g, "y", MS(F32, 2, 4, 5)))
		z, err := MatrixMul(x, y, "z")
		return []*Node{x, y}, []*Node{z}, err
	}, []shapes.Shape{MS(F32, 2, 3, 5)})

	graphtest.RunTestGraphFn(t, "MatrixMul 2D", func(g *Graph) (inputs, outputs []*Node, err error) {
		x := must.M1(Variable(g, "x", MS(F32, 3, 4)))
		y := must.M1(Variable(g, "y", MS(F32, 4, 1)))
		z, err := MatrixMul(x, y, "z")
		return []*Node{x, y}, []*Node{z}, err
	}, []shapes.Shape{MS(F32, 3, 1)})

	g := graphtest.BuildTestGraph(t)
	for _, tc := range []struct {
		name     string
		lhs, rhs shapes.Shape
	}{
		{"contracting", MS(F32, 2, 3, 4), MS(F32, 2, 5, 6)},
		{"batch", MS(F32, 2, 3, 4), MS(F32, 3, 4, 5)},
		{"rank", MS(F32, 2, 3, 4), MS(F32, 4, 5)},
		{"vector", MS(F32, 4), MS(F32, 4)},
	} {
		x := must.M1(Placeholder(g, "x", tc.lhs))
		y := must.M1(Placeholder(g, "y", tc.rhs))
		numNodes := g.NumNodes()
		_, err := MatrixMul(x, y, "z")
		graphtest.RequireShapeMismatch(t, err, "MatrixMul")
		assert.Equalf(t, numNodes, g.NumNodes(), "case %q registered a node", tc.name)
		assert.Nilf(t, x.Consumer(), "case %q set a consumer", tc.name)
	}
}

func TestMatrixAddAndSub(t *testing.T) {
	g := graphtest.BuildTestGraph(t)
	x := must.M1(Variable(g, "x", MS(F32, 2, 3, 4)))

	// MatrixAdd broadcasts the trailing dimensions.
	for _, dims := range [][]int{{4}, {3, 4}, {2, 3, 4}, {}} {
		y := must.M1(Variable(g, "y", MS(F32, dims...)))
		z, err := MatrixAdd(x, y, "z")
		require.NoErrorf(t, err, "MatrixAdd([2 3 4], %v)", dims)
		assert.NoError(t, z.Shape().CheckDims(2, 3, 4))
	}
	for _, dims := range [][]int{{3}, {2, 4}, {1, 2, 3, 4}} {
		y := must.M1(Variable(g, "y", MS(F32, dims...)))
		_, err := MatrixAdd(x, y, "z")
		graphtest.RequireShapeMismatch(t, err, "MatrixAdd")
	}

	// MatrixSub doesn't broadcast: [K] against [B, M, K] is rejected.
	k := must.M1(Variable(g, "k", MS(F32, 4)))
	_, err := MatrixSub(x, k, "z")
	graphtest.RequireShapeMismatch(t, err, "MatrixSub")
	z := must.M1(MatrixSub(x, x, "z"))
	assert.NoError(t, z.Shape().CheckDims(2, 3, 4))

	// It only checks rank and size.
	a := must.M1(Variable(g, "a", MS(F32, 2, 3)))
	b := must.M1(Variable(g, "b", MS(F32, 3, 2)))
	z = must.M1(MatrixSub(a, b, "z"))
	assert.NoError(t, z.Shape().CheckDims(2, 3))
	c := must.M1(Variable(g, "c", MS(F32, 6)))
	_, err = MatrixSub(a, c, "z")
	graphtest.RequireShapeMismatch(t, err, "MatrixSub")
}

func TestReshape(t *testing.T) {
	graphtest.RunTestGraphFn(t, "Reshape round-trip", func(g *Graph) (inputs, outputs []*Node, err error) {
		x := must.M1(Variable(g, "x", MS(F32, 2, 3, 4)))
		y, err := Reshape(x, "y", 6, 4)
		if err != nil {
			return
		}
		z, err := Reshape(y, "z", 2, 3, 4)
		return []*Node{x}, []*Node{y, z}, err
	}, []shapes.Shape{MS(F32, 6, 4), MS(F32, 2, 3, 4)})

	g := graphtest.BuildTestGraph(t)
	x := must.M1(Variable(g, "x", MS(F32, 2, 3, 4)))
	y := must.M1(Reshape(x, "y", 24))
	assert.Equal(t, []int{1}, y.Value().Strides())
	assert.False(t, y.Value().SharesStorage(x.Value()))
	_, err := Reshape(x, "z", 5, 5)
	graphtest.RequireShapeMismatch(t, err, "Reshape")
	_, err = Reshape(x, "z", 0, 24)
	graphtest.RequireShapeMismatch(t, err, "Reshape")
	s := must.M1(Reshape(must.M1(Scalar(g, "one", 1)), "s", 1, 1))
	assert.NoError(t, s.Shape().CheckDims(1, 1))
}

func TestTranspose(t *testing.T) {
	g := graphtest.BuildTestGraph(t)
	x := must.M1(Variable(g, "x", MS(F32, 2, 3, 4)))
	allocated := g.Allocated()
	y := must.M1(Transpose(x, "y", 2, 0, 1))
	assert.NoError(t, y.Shape().CheckDims(4, 2, 3))
	xStrides := x.Value().Strides()
	yStrides := y.Value().Strides()
	for axis, srcAxis := range []int{2, 0, 1} {
		assert.Equal(t, xStrides[srcAxis], yStrides[axis])
	}
	assert.True(t, y.Value().IsView())
	assert.True(t, y.Value().SharesStorage(x.Value()))
	assert.False(t, y.Gradient().SharesStorage(x.Gradient()))
	assert.True(t, y.Gradient().IsContiguous())
	assert.Equal(t, []int{6, 3, 1}, y.Gradient().Strides())
	assert.Equal(t, allocated+uint64(y.Gradient().Memory()), g.Allocated(), "transpose should only allocate its gradient")
	assert.Equal(t, x.Value().At(1, 2, 3), y.Value().At(3, 1, 2))

	// Transposing back yields the original layout.
	z := must.M1(Transpose(y, "z", 1, 2, 0))
	assert.Equal(t, xStrides, z.Value().Strides())
	assert.Equal(t, x.Value().Values(), z.Value().Values())

	for _, perms := range [][]int{{0, 1}, {0, 1, 1}, {0, 1, 3}, {-1, 0, 1}} {
		_, err := Transpose(x, "bad", perms...)
		graphtest.RequireShapeMismatch(t, err, "Transpose")
	}
}

func TestActivations(t *testing.T) {
	g := graphtest.BuildTestGraph(t)
	x := must.M1(Variable(g, "x", MS(F32, 5, 3)))
	for _, tc := range []struct {
		fn func(x *Node, name string) (*Node, error)
		op OpType
	}{
		{Relu, OpTypeReluAct},
		{Sigmoid, OpTypeSigmoidAct},
		{Softmax, OpTypeSoftmaxAct},
	} {
		y := must.M1(tc.fn(x, "y"))
		assert.Equal(t, tc.op, y.Op())
		assert.Equal(t, 1, y.NumOperands())
		assert.True(t, x.Shape().Equal(y.Shape()))
		assert.Equal(t, y, x.Consumer())
	}
	assert.Len(t, x.Consumers(), 3)
}

func TestMeanSquaredError(t *testing.T) {
	g := graphtest.BuildTestGraph(t)
	logits := must.M1(Constant(g, "logits", []float32{1, 2, 3, 4}, MS(F32, 4)))
	labels := must.M1(Constant(g, "labels", []float64{1, 1, 1, 1}, MS(F32, 4)))
	cost := must.M1(MeanSquaredError(logits, labels, "cost"))
	assert.True(t, cost.IsScalar())
	assert.Equal(t, OpTypeMseCost, cost.Op())
	assert.Equal(t, NodeKindPlaceholder, cost.Kind())
	assert.Equal(t, []*Node{logits, labels}, cost.Operands())
	assert.Equal(t, []float32{0}, cost.Value().Values(), "cost must not be computed at construction")
	assert.Equal(t, cost, logits.Consumer())
	assert.Equal(t, cost, labels.Consumer())

	other := must.M1(Constant(g, "other", []float32{1, 2, 3, 4}, MS(F32, 2, 2)))
	_, err := MeanSquaredError(logits, other, "cost")
	graphtest.RequireShapeMismatch(t, err, "MeanSquaredError")
}

func TestConstantFolding(t *testing.T) {
	g := graphtest.BuildTestGraph(t)
	x := must.M1(Constant(g, "x", []float32{1, 2, 3}, MS(F32, 3)))
	two := must.M1(Scalar(g, "two", 2))

	// Disabled by default.
	y := must.M1(ScalarMul(x, two, "y"))
	assert.Equal(t, NodeKindPlaceholder, y.Kind())
	assert.Equal(t, []float32{0, 0, 0}, y.Value().Values())

	g.WithConstantFolding(true)
	for _, tc := range []struct {
		fn   func(x, scalar *Node, name string) (*Node, error)
		want []float32
	}{
		{ScalarAdd, []float32{3, 4, 5}},
		{ScalarSub, []float32{-1, 0, 1}},
		{ScalarMul, []float32{2, 4, 6}},
		{ScalarDiv, []float32{0.5, 1, 1.5}},
	} {
		y = must.M1(tc.fn(x, two, "y"))
		assert.Equal(t, NodeKindConstant, y.Kind())
		graphtest.RequireValuesInDelta(t, y, tc.want)
		assert.Equal(t, []*Node{x, two}, y.Operands())
		assert.Equal(t, y, x.Consumer())
	}
	assert.Equal(t, []float32{1, 2, 3}, x.Value().Values(), "operands must not be changed")

	// Only constants are folded.
	v := must.M1(Variable(g, "v", MS(F32, 3)))
	y = must.M1(ScalarMul(v, two, "y"))
	assert.Equal(t, NodeKindPlaceholder, y.Kind())
	assert.Equal(t, []float32{0, 0, 0}, y.Value().Values())
}

func TestInvalidOperands(t *testing.T) {
	g := graphtest.BuildTestGraph(t)
	x := must.M1(Variable(g, "x", MS(F32, 2, 2)))
	_, err := MatrixAdd(x, nil, "y")
	require.ErrorIs(t, err, ErrInvalidNode)
	_, err = Relu(nil, "y")
	require.ErrorIs(t, err, ErrInvalidNode)

	g2 := graphtest.BuildTestGraph(t)
	x2 := must.M1(Variable(g2, "x2", MS(F32, 2, 2)))
	_, err = MatrixMul(x, x2, "y")
	require.ErrorIs(t, err, ErrInvalidNode)
	assert.Nil(t, x.Consumer())
	assert.Nil(t, x2.Consumer())
}
