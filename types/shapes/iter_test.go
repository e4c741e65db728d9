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

package shapes

import (
	"slices"
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/stretchr/testify/require"
)

func TestIter(t *testing.T) {
	var got [][]int
	for indices := range Make(dtypes.Float32, 2, 1, 2).Iter() {
		got = append(got, slices.Clone(indices))
	}
	require.Equal(t, [][]int{{0, 0, 0}, {0, 0, 1}, {1, 0, 0}, {1, 0, 1}}, got)

	count := 0
	for indices := range Scalar(dtypes.Float32).Iter() {
		require.Empty(t, indices)
		count++
	}
	require.Equal(t, 1, count)

	count = 0
	for range Invalid().Iter() {
		count++
	}
	require.Zero(t, count)
}

func TestIterOffsets(t *testing.T) {
	// Shape [3 2] viewed over a [2 3] row-major buffer (a transpose): strides are [1 3].
	shape := Make(dtypes.Float32, 3, 2)
	var positions, offsets []int
	for position, offset := range shape.IterOffsets([]int{1, 3}) {
		positions = append(positions, position)
		offsets = append(offsets, offset)
	}
	require.Equal(t, []int{0, 1, 2, 3, 4, 5}, positions)
	require.Equal(t, []int{0, 3, 1, 4, 2, 5}, offsets)
}
