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

import "iter"

// Iter iterates over all possible indices of the given shape, in row-major order (the last
// axis changes fastest).
//
// To avoid allocating the slice of indices, the yielded indices is owned by the Iter() method:
// don't change it inside the loop.
func (s Shape) Iter() iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		if !s.Ok() {
			return
		}
		rank := s.Rank()
		if rank == 0 {
			_ = yield(make([]int, 0))
			return
		}
		for _, dim := range s.Dimensions {
			if dim <= 0 {
				return
			}
		}

		indices := make([]int, rank)
		for {
			if !yield(indices) {
				return
			}
			axis := rank - 1
			for ; axis >= 0; axis-- {
				indices[axis]++
				if indices[axis] < s.Dimensions[axis] {
					break
				}
				indices[axis] = 0
			}
			if axis < 0 {
				return
			}
		}
	}
}

// IterOffsets iterates over the flat offsets of the elements of a tensor with this shape and
// the given strides, in row-major logical order. Together with the row-major position, it
// allows walking a strided view as if it were contiguous.
func (s Shape) IterOffsets(strides []int) iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		position := 0
		for indices := range s.Iter() {
			offset := 0
			for axis, index := range indices {
				offset += index * strides[axis]
			}
			if !yield(position, offset) {
				return
			}
			position++
		}
	}
}
