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
	"slices"

	"github.com/pkg/errors"
)

// TopologicalOrder returns the nodes reachable from root through operand links, each exactly once,
// ordered such that every node comes after all its operands. root is the last node.
//
// This is the order in which a forward evaluation must visit the nodes.
func TopologicalOrder(root *Node) ([]*Node, error) {
	if err := CheckNode(root); err != nil {
		return nil, errors.WithMessage(err, "TopologicalOrder")
	}
	g := root.graph
	visited := make([]bool, len(g.nodes))
	var order []*Node

	// Iterative depth-first post-order, so deep graphs don't overflow the stack.
	type frame struct {
		node *Node
		next int // next operand to visit.
	}
	stack := []frame{{node: root}}
	visited[root.id] = true
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next < top.node.NumOperands() {
			operand := top.node.Operand(top.next)
			top.next++
			if operand != nil && !visited[operand.id] {
				visited[operand.id] = true
				stack = append(stack, frame{node: operand})
			}
			continue
		}
		order = append(order, top.node)
		stack = stack[:len(stack)-1]
	}
	return order, nil
}

// ReverseTopologicalOrder returns the nodes reachable from root, ordered such that every node comes before
// its operands: root is the first node. This is the order in which a backward pass must visit the nodes.
func ReverseTopologicalOrder(root *Node) ([]*Node, error) {
	order, err := TopologicalOrder(root)
	if err != nil {
		return nil, err
	}
	slices.Reverse(order)
	return order, nil
}

// SeedGradient sets the gradient of root to ones, the starting point of a backward pass.
func SeedGradient(root *Node) error {
	if err := CheckNode(root); err != nil {
		return errors.WithMessage(err, "SeedGradient")
	}
	root.gradient.InitOnes()
	return nil
}

// ZeroGradients sets to zero the gradients of every node reachable from root, root included.
func ZeroGradients(root *Node) error {
	order, err := TopologicalOrder(root)
	if err != nil {
		return errors.WithMessage(err, "ZeroGradients")
	}
	for _, node := range order {
		node.gradient.InitZeros()
	}
	return nil
}
