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

// Package graphtest holds test utilities for packages that depend on the graph package.
package graphtest

import (
	"fmt"
	"testing"

	"github.com/gomlx/tensorgraph/graph"
	"github.com/gomlx/tensorgraph/types/shapes"
	"github.com/gomlx/tensorgraph/types/xslices"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

// Seed used by BuildTestGraph, so tests are reproducible.
const Seed = 42

// TestGraphFn should build its own inputs, and return both inputs and outputs
type TestGraphFn func(g *graph.Graph) (inputs, outputs []*graph.Node, err error)

// BuildTestGraph returns a new graph named after the test, seeded with Seed. The graph is finalized
// when the test finishes.
func BuildTestGraph(t testing.TB) *graph.Graph {
	g := graph.New(t.Name()).WithSeed(Seed)
	t.Cleanup(g.Finalize)
	return g
}

// RunTestGraphFn tests a graph building function graphFn by building it in a new graph and comparing
// the shapes of its output(s) to want, reporting back any errors in t.
//
// It also checks that every output is an expression wired to its operands.
func RunTestGraphFn(t *testing.T, testName string, graphFn TestGraphFn, want []shapes.Shape) {
	t.Run(testName, func(t *testing.T) {
		g := BuildTestGraph(t)
		inputs, outputs, err := graphFn(g)
		require.NoErrorf(t, err, "%s: failed to build graph", testName)
		for ii, input := range inputs {
			if input == nil {
				t.Fatalf("%q: inputs[%d] is nil!?", testName, ii)
			}
		}
		for ii, output := range outputs {
			if output == nil {
				t.Fatalf("%q: outputs[%d] is nil!?", testName, ii)
			}
		}

		fmt.Printf("\n%s:\n", testName)
		for ii, input := range inputs {
			fmt.Printf("\tInput %d: %s\n", ii, input)
		}
		if len(inputs) > 0 {
			fmt.Printf("\t======\n")
		}
		for ii, output := range outputs {
			fmt.Printf("\tOutput %d: %s\n", ii, output)
		}
		require.Equalf(t, len(want), len(outputs), "%s: number of wanted results different from number of outputs", testName)

		for ii, output := range outputs {
			require.Truef(t, want[ii].Equal(output.Shape()), "%s: output #%d has shape %s, wanted %s",
				testName, ii, output.Shape(), want[ii])
			require.Falsef(t, output.IsLeaf(), "%s: output #%d is not an expression", testName, ii)
			for _, operand := range output.Operands() {
				require.Containsf(t, xslices.Map(operand.Consumers(), (*graph.Node).Id), output.Id(),
					"%s: output #%d is not registered as consumer of its operand %s", testName, ii, operand)
			}
		}
	})
}

// RequireShapeMismatch fails the test if err is not a shapes.ShapeMismatchError for the given op.
func RequireShapeMismatch(t testing.TB, err error, op string) {
	t.Helper()
	require.Error(t, err)
	require.ErrorIs(t, err, shapes.ErrShapeMismatch)
	var mismatch *shapes.ShapeMismatchError
	require.True(t, errors.As(err, &mismatch), "error %v is not a *shapes.ShapeMismatchError", err)
	require.Equal(t, op, mismatch.Op)
}

// RequireValuesInDelta fails the test if the values of node differ from want by more than
// xslices.Epsilon in any position.
func RequireValuesInDelta(t testing.TB, node *graph.Node, want []float32) {
	t.Helper()
	got := node.Value().Values()
	require.Truef(t, xslices.InDelta(got, want, xslices.Epsilon),
		"node %s: got values %v, wanted %v (delta %g)", node, got, want, xslices.Epsilon)
}
