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

// Package optimizers defines the extension point for optimizers of computation graphs: an optimizer
// takes the root of a graph (usually a cost node, see graph.MeanSquaredError) and updates the values
// of its Variable nodes.
//
// It also defines the contract of an Evaluator, the component that computes the values of the nodes
// (forward pass) and their gradients (backward pass), which gradient based optimizers rely on.
package optimizers

import (
	"maps"
	"slices"

	"github.com/gomlx/exceptions"
	. "github.com/gomlx/tensorgraph/graph"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Interface implemented by optimizer implementations.
type Interface interface {
	// Optimize runs one optimization step on the graph rooted at root, updating the values of the
	// Variable nodes reachable from it.
	//
	// root must be a valid node of a graph not yet finalized.
	Optimize(root *Node) error
}

// Evaluator computes the values and gradients of the nodes of a graph.
//
// Implementations must honor the following contract:
//
//   - Forward visits the nodes reachable from root in graph.TopologicalOrder, computing each
//     expression's value from its operands' values exactly once (memoized), and storing it in
//     the node's Value tensor. Leaf values are used as they are.
//   - Backward seeds the gradient of root with ones (graph.SeedGradient), and then visits the
//     nodes in graph.ReverseTopologicalOrder, accumulating into each operand's Gradient tensor
//     its contribution. Scalar-affine contributions use the tensors kernels with tensors.Decrement
//     mode (see graph.ScalarKernel). Gradients are never shared between nodes, not even by
//     a Transpose and its operand, so each contribution is accumulated once.
//   - Neither changes the structure of the graph, nor the values of Constant nodes.
type Evaluator interface {
	Forward(root *Node) error
	Backward(root *Node) error
}

// KnownOptimizers is a map of known optimizers by name to their default constructors.
var KnownOptimizers = map[string]func() Interface{
	"noop": NoOp,
}

// ByName returns an optimizer given the name, or panics if one does not exist.
// It uses KnownOptimizers -- in case one wants to better handle invalid values.
func ByName(optName string) Interface {
	optBuilder, found := KnownOptimizers[optName]
	if !found {
		exceptions.Panicf("Unknown optimizer %q, valid values are %v.", optName, slices.Sorted(maps.Keys(KnownOptimizers)))
	}
	return optBuilder()
}

// noOp is an optimizer that validates its input and does nothing.
type noOp struct{}

// NoOp returns an optimizer that validates the root node it is given, and leaves the graph unchanged.
func NoOp() Interface {
	return noOp{}
}

// Optimize implements Interface.
func (noOp) Optimize(root *Node) error {
	if err := CheckNode(root); err != nil {
		return errors.WithMessage(err, "optimizers.NoOp")
	}
	klog.V(1).Infof("optimizers.NoOp: graph %q, root %s", root.Graph().Name(), root)
	return nil
}

// Optimize the graph rooted at root with the default optimizer, a no-op.
func Optimize(root *Node) error {
	return NoOp().Optimize(root)
}
