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

// Package xslices provide missing functionality to the slices package, used across
// shapes, tensors and graph building.
package xslices

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Epsilon is the default tolerance used by InDelta-style comparisons in tests.
const Epsilon = 1e-4

// Map executes the given function sequentially for every element on in, and returns a mapped slice.
func Map[In, Out any](in []In, fn func(e In) Out) (out []Out) {
	out = make([]Out, len(in))
	for ii, e := range in {
		out[ii] = fn(e)
	}
	return
}

// Product returns the product of all values. The product of an empty slice is 1.
//
// ok is false if the product overflows T, or if any value is negative.
func Product[T constraints.Integer](values []T) (product T, ok bool) {
	product = 1
	for _, v := range values {
		if v < 0 {
			return 0, false
		}
		if v == 0 {
			product = 0
			continue
		}
		next := product * v
		if product != 0 && next/v != product {
			return 0, false
		}
		product = next
	}
	return product, true
}

// InDelta returns whether s0 and s1 have the same length and each pair of values is within delta.
// NaNs are considered equal to each other.
func InDelta[T constraints.Float](s0, s1 []T, delta float64) bool {
	if len(s0) != len(s1) {
		return false
	}
	for ii, e0 := range s0 {
		e1 := s1[ii]
		if math.IsNaN(float64(e0)) && math.IsNaN(float64(e1)) {
			continue
		}
		if math.Abs(float64(e0)-float64(e1)) > delta {
			return false
		}
	}
	return true
}
