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

package tensors

import (
	"slices"

	"github.com/gomlx/tensorgraph/types/shapes"
)

// Transpose returns a view of the tensor with its axes permuted: the output axis i is the input axis
// permutations[i], both for the dimensions and the strides. The storage is shared, no data is copied.
//
// permutations must have one entry per axis, each axis appearing exactly once, otherwise a
// shapes.ShapeMismatchError is returned.
func (t *Tensor) Transpose(permutations ...int) (*Tensor, error) {
	t.AssertValid()
	if err := CheckPermutations(t.shape, permutations); err != nil {
		return nil, err
	}
	view := &Tensor{
		shape:   t.shape.Clone(),
		strides: make([]int, t.Rank()),
		local:   t.local,
		view:    true,
	}
	for axis, srcAxis := range permutations {
		view.shape.Dimensions[axis] = t.shape.Dimensions[srcAxis]
		view.strides[axis] = t.strides[srcAxis]
	}
	return view, nil
}

// CheckPermutations returns a shapes.ShapeMismatchError if permutations is not a permutation of the axes of shape.
func CheckPermutations(shape shapes.Shape, permutations []int) error {
	rank := shape.Rank()
	if len(permutations) != rank {
		return shapes.Mismatchf("Transpose", []shapes.Shape{shape},
			"requires all %d axes permutations to be defined, %d permutations were given", rank, len(permutations))
	}
	axesSet := slices.Clone(permutations)
	slices.Sort(axesSet)
	for ii, srcAxis := range axesSet {
		if srcAxis < 0 || srcAxis >= rank {
			return shapes.Mismatchf("Transpose", []shapes.Shape{shape},
				"invalid permutation axis %d, it must be within the range of its rank", srcAxis)
		}
		if ii > 0 && srcAxis == axesSet[ii-1] {
			return shapes.Mismatchf("Transpose", []shapes.Shape{shape},
				"invalid permutations %v, there cannot be any repeated axis, each must appear exactly once", permutations)
		}
	}
	return nil
}
