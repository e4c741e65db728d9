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
	"fmt"
	"strings"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/tensorgraph/types/shapes"
	"github.com/gomlx/tensorgraph/types/tensors"
	"github.com/pkg/errors"
)

// ValueDType is the dtype of the values and gradients of all nodes.
const ValueDType = dtypes.Float32

// NodeKind classifies a node by how its value is obtained.
type NodeKind int

const (
	// NodeKindConstant nodes hold fixed values, given at creation.
	NodeKindConstant NodeKind = iota

	// NodeKindVariable nodes hold trainable values, randomly initialized at creation.
	NodeKindVariable

	// NodeKindPlaceholder nodes have their value bound later (leaves, see Node.Bind), or computed by an
	// evaluator (expressions).
	NodeKindPlaceholder
)

//go:generate enumer -type=NodeKind -trimprefix=NodeKind node.go

// Node is a value-producing vertex of the Graph: a leaf (OpTypeNone) or an expression over one or two
// operands.
//
// Each node owns tensors for its value and its gradient, with the same shape. Expression nodes
// created by Transpose are the exception for the value, which is a view of their operand's value.
// Gradients are never shared, since optimizers accumulate into each one independently.
//
// Links to operands and consumers are NodeId indices into the graph: they don't own the nodes.
type Node struct {
	graph *Graph
	id    NodeId // id within graph.
	name  string
	kind  NodeKind

	value, gradient *tensors.Tensor

	op       OpType
	operands [2]NodeId

	// consumer is the most recent node created using this one as operand. consumers are all of them,
	// in order of creation.
	consumer  NodeId
	consumers []NodeId

	trace error // Stack-trace error of where Node was created. Stored if graph.traced is true.
}

// newNode creates a node not yet registered in the graph, allocating its value and gradient.
// If the allocation fails, nothing is kept allocated.
func (g *Graph) newNode(name string, kind NodeKind, shape shapes.Shape) (*Node, error) {
	value, err := g.allocate(shape)
	if err != nil {
		return nil, errors.WithMessagef(err, "allocating value of node %q", name)
	}
	gradient, err := g.allocate(shape)
	if err != nil {
		g.release(value)
		return nil, errors.WithMessagef(err, "allocating gradient of node %q", name)
	}
	return g.newNodeWithTensors(name, kind, value, gradient), nil
}

// newNodeWithTensors creates a node not yet registered in the graph, using the given tensors.
func (g *Graph) newNodeWithTensors(name string, kind NodeKind, value, gradient *tensors.Tensor) *Node {
	return &Node{
		graph:    g,
		id:       InvalidNodeId,
		name:     name,
		kind:     kind,
		value:    value,
		gradient: gradient,
		op:       OpTypeNone,
		operands: [2]NodeId{InvalidNodeId, InvalidNodeId},
		consumer: InvalidNodeId,
	}
}

// discard releases the storage of a node that was not registered.
func (n *Node) discard() {
	n.graph.release(n.value)
	n.graph.release(n.gradient)
}

// CheckNode returns an error if the node is nil, not registered or if its graph is no longer usable.
func CheckNode(node *Node) error {
	if node == nil {
		return errors.WithMessage(ErrInvalidNode, "node is nil")
	}
	if err := node.graph.checkOk(); err != nil {
		return err
	}
	if node.id == InvalidNodeId || node.graph.NodeById(node.id) != node {
		return errors.WithMessagef(ErrInvalidNode, "node %q is not registered in graph %q", node.name, node.graph.name)
	}
	return nil
}

// Graph that holds this Node.
func (n *Node) Graph() *Graph {
	if n == nil {
		return nil
	}
	return n.graph
}

// Id is the unique id of this node within the Graph.
func (n *Node) Id() NodeId {
	if n == nil {
		return InvalidNodeId
	}
	return n.id
}

// Name given to the node at creation.
func (n *Node) Name() string { return n.name }

// Kind of the node.
func (n *Node) Kind() NodeKind { return n.kind }

// Shape of the Node's value (and gradient).
func (n *Node) Shape() shapes.Shape {
	if n == nil || n.value == nil {
		return shapes.Invalid()
	}
	return n.value.Shape()
}

// DType returns the DType of the node's shape.
func (n *Node) DType() dtypes.DType {
	return n.Shape().DType
}

// Rank returns the rank of the node's shape.
func (n *Node) Rank() int {
	return n.Shape().Rank()
}

// IsScalar returns whether the node's shape is a scalar.
func (n *Node) IsScalar() bool {
	return n.Shape().IsScalar()
}

// Value returns the tensor with the node's value. For expressions, it is only filled in by an evaluator
// (or by constant folding, see Graph.WithConstantFolding).
func (n *Node) Value() *tensors.Tensor { return n.value }

// Gradient returns the tensor with the gradient of the node.
func (n *Node) Gradient() *tensors.Tensor { return n.gradient }

// Op returns the operation of the node, OpTypeNone for leaf nodes.
func (n *Node) Op() OpType { return n.op }

// IsLeaf returns whether the node is a leaf, that is, it has no operands.
func (n *Node) IsLeaf() bool { return n.op == OpTypeNone }

// NumOperands returns the number of operands of the node.
func (n *Node) NumOperands() int { return n.op.NumOperands() }

// Operand returns the i-th operand (0 or 1) of the node, or nil if there is no such operand.
func (n *Node) Operand(i int) *Node {
	if i < 0 || i >= len(n.operands) || n.operands[i] == InvalidNodeId {
		return nil
	}
	return n.graph.NodeById(n.operands[i])
}

// Operands of the node, in order. Empty for leaf nodes.
func (n *Node) Operands() []*Node {
	operands := make([]*Node, 0, n.NumOperands())
	for i := range n.NumOperands() {
		if operand := n.Operand(i); operand != nil {
			operands = append(operands, operand)
		}
	}
	return operands
}

// Consumer returns the most recently created node that uses this node as an operand, or nil if there is none.
func (n *Node) Consumer() *Node {
	if n.consumer == InvalidNodeId {
		return nil
	}
	return n.graph.NodeById(n.consumer)
}

// Consumers returns all nodes that use this node as an operand, in order of creation.
func (n *Node) Consumers() []*Node {
	consumers := make([]*Node, 0, len(n.consumers))
	for _, id := range n.consumers {
		if consumer := n.graph.NodeById(id); consumer != nil {
			consumers = append(consumers, consumer)
		}
	}
	return consumers
}

// setConsumer links node as consumer of n.
func (n *Node) setConsumer(node *Node) {
	n.consumer = node.id
	if len(n.consumers) > 0 && n.consumers[len(n.consumers)-1] == node.id {
		// Same node using n as both operands.
		return
	}
	n.consumers = append(n.consumers, node.id)
}

// Trace returns stack-trace in form of an error, of when the node was created.
// Only available if enabled by `Graph.SetTraced(true)`.
func (n *Node) Trace() error {
	return n.trace
}

// label returns the name of the node, or its id if it has no name.
func (n *Node) label() string {
	if n.name != "" {
		return n.name
	}
	return fmt.Sprintf("#%d", n.id)
}

// String implements the `fmt.Stringer` interface.
func (n *Node) String() string {
	if n == nil {
		return "Node(nil)"
	}
	if !n.graph.Ok() {
		return fmt.Sprintf("Node(%q, invalid)", n.name)
	}
	if n.IsLeaf() {
		return fmt.Sprintf("%s %q: %s", n.kind, n.name, n.Shape())
	}
	operands := make([]string, 0, n.NumOperands())
	for i := range n.NumOperands() {
		operands = append(operands, fmt.Sprintf("#%d", n.operands[i]))
	}
	return fmt.Sprintf("%s %q = %s(%s): %s", n.kind, n.name, n.op, strings.Join(operands, ", "), n.Shape())
}

const infoSeparator = "---------------------"

// Info returns a multi-line description of the node: name, kind, shape, expression, operands and consumer.
// If withValues is true, the values of the node are included.
//
// It's meant for debugging, the format is not stable.
func (n *Node) Info(withValues bool) string {
	if n == nil {
		return "Node(nil)"
	}
	var sb strings.Builder
	w := func(format string, args ...any) { _, _ = fmt.Fprintf(&sb, format+"\n", args...) }
	shape := n.Shape()
	w(infoSeparator)
	w("Name: %s", n.name)
	w(infoSeparator)
	w("Kind: %s", n.kind)
	w("Rank: %d", shape.Rank())
	w("Dimensions: %s", joinInts(shape.Dimensions))
	if shape.Rank() <= shapes.MaxRank {
		w("Padded Dimensions: %s", joinInts(shape.PaddedDimensions(shapes.MaxRank)))
	}
	if n.value.Ok() {
		w("Strides: %s", joinInts(n.value.Strides()))
		if withValues {
			w("Values: %v", n.value.Values())
		}
	} else {
		w("Values: (finalized)")
	}
	w("Expression: %s", n.op.Label())
	for i := range n.NumOperands() {
		if operand := n.Operand(i); operand != nil {
			w("Operand %d: %s", i+1, operand.label())
		} else {
			w("Operand %d: #%d", i+1, n.operands[i])
		}
	}
	if consumer := n.Consumer(); consumer != nil {
		w("Consumer: %s", consumer.label())
	} else {
		w("Consumer: -")
	}
	w(infoSeparator)
	return sb.String()
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for ii, v := range values {
		parts[ii] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, " ")
}
