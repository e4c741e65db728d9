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

// Package graph is the core package of tensorgraph. It is used to build computation graphs: directed
// acyclic graphs of nodes holding tensors, where each edge is a data dependency of an expression on its
// operands.
//
// The main elements in the package are:
//
//   - Graph: the arena that owns every node, and the tensors of their values and gradients. It also
//     holds the configuration used while building: the random number generator used to initialize
//     variables, an optional memory limit and whether creation stack-traces are kept.
//
//   - Node: the result of a leaf constructor (Variable, Constant or Placeholder) or of an expression
//     (ScalarAdd, MatrixMul, Reshape, Transpose, Relu, MeanSquaredError, etc.). Each node has a fixed shape,
//     known at "graph building time", and allocated storage for its value and its gradient.
//
// ## Graph building time
//
// Shapes are validated when a node is created: each expression family has its own shape rule (see
// package shapeinference), and violations are reported as a *shapes.ShapeMismatchError. Failing
// to allocate the storage of a node (or exceeding Graph.WithMemoryLimit) is reported as a
// *tensors.ResourceExhaustedError. In both cases the graph is left unchanged: no partially wired
// node is ever registered.
//
// Building a graph doesn't compute anything: expression nodes get zero-initialized storage for their
// value and gradient, to be filled by an evaluator (see package ml/train/optimizers for the
// evaluation contract, and TopologicalOrder/ReverseTopologicalOrder for the traversal helpers).
//
// ## Consumers
//
// Each node records the node that consumes it: creating an expression sets the consumer link of each of
// its operands, overwriting any previous one, so Node.Consumer returns the most recent consumer.
// Node.Consumers returns every consumer, in creation order, for graphs with fan-out.
package graph

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gomlx/exceptions"
	"github.com/gomlx/tensorgraph/types/shapes"
	"github.com/gomlx/tensorgraph/types/tensors"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Graph is the arena holding all nodes of a computation graph, and the storage of their tensors.
//
// Create it with New, configure it with the With* methods and release its storage with Finalize.
// A Graph is not safe for concurrent use.
type Graph struct {
	name  string
	nodes []*Node

	// nameToId maps a node name to the first node created with that name.
	nameToId map[string]NodeId

	rng  *rand.Rand
	seed int64

	// memoryLimit in bytes, 0 for no limit. allocated is the number of bytes currently held by the graph.
	memoryLimit, allocated uint64

	traced, constantFolding, finalized bool
}

// NodeId is a unique NodeId within a Graph: its index in the arena.
type NodeId int

// InvalidNodeId indicates the absence of a node: e.g.: the missing second operand of a unary expression.
const InvalidNodeId = NodeId(-1)

// New creates an empty Graph with the given name.
//
// The defaults for the random seed and the memory limit are read from the environment
// (see ConfigFromEnv), and can be overwritten with WithSeed and WithMemoryLimit.
func New(name string) *Graph {
	cfg := ConfigFromEnv()
	g := &Graph{
		name:     name,
		nameToId: make(map[string]NodeId),
	}
	g.WithSeed(cfg.Seed)
	g.WithMemoryLimit(cfg.MemoryLimit)
	klog.V(1).Infof("graph %q created: seed=%d, memory limit=%s", name, g.seed, limitToString(g.memoryLimit))
	return g
}

// Name of the Graph, set during its construction.
func (g *Graph) Name() string { return g.name }

// WithSeed resets the random number generator used to initialize variables with the given seed.
// It returns the graph itself, so configuration calls can be cascaded.
func (g *Graph) WithSeed(seed int64) *Graph {
	g.seed = seed
	g.rng = rand.New(rand.NewSource(seed))
	return g
}

// Seed used to initialize the random number generator of the graph.
func (g *Graph) Seed() int64 { return g.seed }

// Rand returns the random number generator used by the graph to initialize variables.
func (g *Graph) Rand() *rand.Rand { return g.rng }

// WithMemoryLimit sets the maximum number of bytes of tensor storage the graph can hold. 0 means no limit.
// Views (the value of a Transpose) don't count towards the limit.
//
// Node creation that would exceed the limit fails with a tensors.ResourceExhaustedError.
// It returns the graph itself, so configuration calls can be cascaded.
func (g *Graph) WithMemoryLimit(bytes uint64) *Graph {
	g.memoryLimit = bytes
	if bytes > 0 && g.allocated > bytes {
		klog.Warningf("graph %q: memory limit set to %s, but %s is already allocated",
			g.name, humanize.Bytes(bytes), humanize.Bytes(g.allocated))
	}
	return g
}

// MemoryLimit returns the configured memory limit in bytes, 0 if there is no limit.
func (g *Graph) MemoryLimit() uint64 { return g.memoryLimit }

// Allocated returns the number of bytes of tensor storage currently held by the graph.
func (g *Graph) Allocated() uint64 { return g.allocated }

// WithConstantFolding enables the evaluation, at creation time, of scalar expressions (ScalarAdd, ScalarSub,
// ScalarMul and ScalarDiv) whose operands are both Constant nodes: the resulting node will have its value
// computed and be of kind Constant. It is disabled by default.
// It returns the graph itself, so configuration calls can be cascaded.
func (g *Graph) WithConstantFolding(enabled bool) *Graph {
	g.constantFolding = enabled
	return g
}

// ConstantFolding returns whether constant folding is enabled, see WithConstantFolding.
func (g *Graph) ConstantFolding() bool { return g.constantFolding }

// SetTraced defines whether each node creation is traced. If true, every node
// will save a stack-trace of where it was created, which is helpful for debugging.
// See Node.Trace().
func (g *Graph) SetTraced(traced bool) *Graph {
	g.traced = traced
	return g
}

// Ok returns whether the graph is usable, that is, it is not nil and it has not been finalized.
func (g *Graph) Ok() bool { return g != nil && !g.finalized }

// AssertValid panics if graph is nil, or if it has already been finalized.
func (g *Graph) AssertValid() {
	if g == nil {
		exceptions.Panicf("the Graph is nil")
	}
	if g.finalized {
		exceptions.Panicf("Graph %q has been finalized already", g.name)
	}
}

// checkOk returns ErrFinalized (with a stack trace) if the graph is no longer usable.
func (g *Graph) checkOk() error {
	if g == nil {
		return errors.WithMessage(ErrInvalidNode, "graph is nil")
	}
	if g.finalized {
		return errors.WithMessagef(ErrFinalized, "graph %q", g.name)
	}
	return nil
}

// Finalize releases the storage of every node of the graph. The graph is left in an unusable state:
// further node creation fails with ErrFinalized. It is safe to call Finalize more than once.
func (g *Graph) Finalize() {
	if g == nil || g.finalized {
		return
	}
	for _, node := range g.nodes {
		node.value.Finalize()
		node.gradient.Finalize()
	}
	klog.V(1).Infof("graph %q finalized: %d nodes, %s released", g.name, len(g.nodes), humanize.Bytes(g.allocated))
	g.nodes = nil
	g.nameToId = nil
	g.allocated = 0
	g.finalized = true
}

// NumNodes returns the number of nodes registered in the graph.
func (g *Graph) NumNodes() int {
	if !g.Ok() {
		return 0
	}
	return len(g.nodes)
}

// Nodes returns a copy of the list of nodes of the graph, in order of creation (which is also their NodeId).
func (g *Graph) Nodes() []*Node {
	if !g.Ok() {
		return nil
	}
	nodes := make([]*Node, len(g.nodes))
	copy(nodes, g.nodes)
	return nodes
}

// NodeById returns the node with the given id, or nil if there is no such node.
func (g *Graph) NodeById(id NodeId) *Node {
	if !g.Ok() || id < 0 || int(id) >= len(g.nodes) {
		return nil
	}
	return g.nodes[id]
}

// NodeByName returns the first node created with the given name, or nil if there is none.
func (g *Graph) NodeByName(name string) *Node {
	if !g.Ok() {
		return nil
	}
	id, found := g.nameToId[name]
	if !found {
		return nil
	}
	return g.nodes[id]
}

// allocate a tensor for the given shape, accounting for its memory against the graph limit.
func (g *Graph) allocate(shape shapes.Shape) (*tensors.Tensor, error) {
	memory := uint64(shape.Memory())
	if g.memoryLimit > 0 && g.allocated+memory > g.memoryLimit {
		var available uint64
		if g.allocated < g.memoryLimit {
			available = g.memoryLimit - g.allocated
		}
		return nil, errors.WithStack(&tensors.ResourceExhaustedError{
			Requested: memory,
			Available: available,
			Reason:    fmt.Sprintf("graph %q memory limit of %s", g.name, humanize.Bytes(g.memoryLimit)),
		})
	}
	t, err := tensors.New(shape)
	if err != nil {
		return nil, err
	}
	g.allocated += uint64(t.Memory())
	return t, nil
}

// release a tensor allocated with allocate, that is not going to be used.
func (g *Graph) release(t *tensors.Tensor) {
	if t == nil {
		return
	}
	g.allocated -= uint64(t.Memory())
	t.Finalize()
}

// registerNode in the graph, setting its id. It is the last step of the creation of a node,
// after every validation and allocation succeeded.
func (g *Graph) registerNode(node *Node) {
	node.id = NodeId(len(g.nodes))
	g.nodes = append(g.nodes, node)
	if node.name != "" {
		if prevId, found := g.nameToId[node.name]; found {
			klog.Warningf("graph %q: node #%d reuses the name %q of node #%d", g.name, node.id, node.name, prevId)
		} else {
			g.nameToId[node.name] = node.id
		}
	}
	if g.traced {
		node.trace = errors.New("node created here")
	}
	klog.V(2).Infof("graph %q: created node #%d %s", g.name, node.id, node)
}

// String converts the Graph to a multi-line string, with one node per line.
func (g *Graph) String() string {
	if g == nil {
		return "Graph(nil)"
	}
	if g.finalized {
		return fmt.Sprintf("Graph %q: finalized", g.name)
	}
	parts := []string{fmt.Sprintf("Graph %q: %d nodes, %s allocated", g.name, len(g.nodes), humanize.Bytes(g.allocated))}
	for ii, node := range g.nodes {
		parts = append(parts, fmt.Sprintf("#%d\t%s", ii, node))
	}
	return strings.Join(parts, "\n")
}
