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
	"github.com/gomlx/tensorgraph/types/shapes"
	"github.com/pkg/errors"
)

// newLeaf creates and registers a leaf node, calling init to set its value before registration.
func newLeaf(g *Graph, name string, kind NodeKind, shape shapes.Shape, init func(node *Node) error) (*Node, error) {
	if err := g.checkOk(); err != nil {
		return nil, err
	}
	if !shape.Ok() {
		return nil, errors.Errorf("%s(%q): invalid shape", kind, name)
	}
	node, err := g.newNode(name, kind, shape)
	if err != nil {
		return nil, errors.WithMessagef(err, "%s(%q)", kind, name)
	}
	if init != nil {
		if err = init(node); err != nil {
			node.discard()
			return nil, errors.WithMessagef(err, "%s(%q)", kind, name)
		}
	}
	g.registerNode(node)
	return node, nil
}

// Variable creates a trainable leaf node with the given shape, with its value sampled from a standard
// normal distribution, using the graph's random number generator (see Graph.WithSeed).
func Variable(g *Graph, name string, shape shapes.Shape) (*Node, error) {
	return newLeaf(g, name, NodeKindVariable, shape, func(node *Node) error {
		node.value.InitRandomNormal(g.rng)
		return nil
	})
}

// Constant creates a leaf node with the given shape and values.
//
// data is a flat slice with the values in row-major order, and it must have exactly shape.Size() elements.
// Accepted types are []float32, []float64, []float16.Float16 and []bfloat16.BFloat16; values are converted to
// float32.
func Constant(g *Graph, name string, data any, shape shapes.Shape) (*Node, error) {
	return newLeaf(g, name, NodeKindConstant, shape, func(node *Node) error {
		return node.value.InitConstant(data)
	})
}

// Scalar creates a scalar Constant node with the given value.
func Scalar(g *Graph, name string, value float32) (*Node, error) {
	return Constant(g, name, []float32{value}, shapes.Scalar(ValueDType))
}

// Placeholder creates a leaf node with the given shape, whose value is zero-initialized and is meant to
// be bound later, see Node.Bind.
func Placeholder(g *Graph, name string, shape shapes.Shape) (*Node, error) {
	return newLeaf(g, name, NodeKindPlaceholder, shape, nil)
}

// Bind sets the value of a Placeholder leaf node. data is a flat slice in row-major order, see Constant
// for the accepted types.
//
// It returns ErrInvalidNode if the node is not a Placeholder leaf, and a shapes.ShapeMismatchError if
// the number of values doesn't match the shape of the node.
func (n *Node) Bind(data any) error {
	if err := CheckNode(n); err != nil {
		return err
	}
	if n.kind != NodeKindPlaceholder || !n.IsLeaf() {
		return errors.WithMessagef(ErrInvalidNode, "Bind(%q): only Placeholder leaf nodes can be bound, got %s %s",
			n.name, n.kind, n.op)
	}
	if err := n.value.InitConstant(data); err != nil {
		return errors.WithMessagef(err, "Bind(%q)", n.name)
	}
	return nil
}
