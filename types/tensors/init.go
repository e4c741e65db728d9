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
	"math"
	"math/rand"

	"github.com/gomlx/gopjrt/dtypes/bfloat16"
	"github.com/gomlx/tensorgraph/types/shapes"
	"github.com/pkg/errors"
	"github.com/x448/float16"
)

// fill sets every element of the tensor, in row-major logical order, with the values returned by next.
func (t *Tensor) fill(next func(position int) float32) {
	t.AssertValid()
	flat := t.local.flat
	if t.IsContiguous() {
		for ii := range t.Size() {
			flat[ii] = next(ii)
		}
		return
	}
	for position, offset := range t.shape.IterOffsets(t.strides) {
		flat[offset] = next(position)
	}
}

// InitZeros sets all values to 0.
func (t *Tensor) InitZeros() {
	t.fill(func(int) float32 { return 0 })
}

// InitOnes sets all values to 1.
func (t *Tensor) InitOnes() {
	t.fill(func(int) float32 { return 1 })
}

// InitRandomNormal fills the tensor with independent samples of a normal distribution with
// mean 0 and standard deviation 1, drawn from rng.
//
// It uses the Box-Muller transform (see https://en.wikipedia.org/wiki/Box%E2%80%93Muller_transform)
// over two uniform samples per value.
func (t *Tensor) InitRandomNormal(rng *rand.Rand) {
	t.fill(func(int) float32 {
		return float32(normalSample(rng))
	})
}

// normalSample draws one standard normal sample from rng.
func normalSample(rng *rand.Rand) float64 {
	u1 := rng.Float64()
	// u1 must never be zero, so we take the smallest positive non-zero value.
	if u1 == 0 {
		u1 = math.SmallestNonzeroFloat64
	}
	u2 := rng.Float64()
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

// InitConstant copies the given flat values into the tensor, in row-major logical order.
//
// data can be a []float32, []float64, []float16.Float16 or []bfloat16.BFloat16, and its length
// must match the tensor size, otherwise a shapes.ShapeMismatchError is returned.
func (t *Tensor) InitConstant(data any) error {
	t.AssertValid()
	var (
		length int
		at     func(ii int) float32
	)
	switch flat := data.(type) {
	case []float32:
		length, at = len(flat), func(ii int) float32 { return flat[ii] }
	case []float64:
		length, at = len(flat), func(ii int) float32 { return float32(flat[ii]) }
	case []float16.Float16:
		length, at = len(flat), func(ii int) float32 { return flat[ii].Float32() }
	case []bfloat16.BFloat16:
		length, at = len(flat), func(ii int) float32 { return flat[ii].Float32() }
	default:
		return errors.Errorf("InitConstant: unsupported data type %T, accepted types are []float32, []float64, "+
			"[]float16.Float16 and []bfloat16.BFloat16", data)
	}
	if length != t.Size() {
		return shapes.Mismatchf("InitConstant", []shapes.Shape{t.shape},
			"got %d values for a tensor with %d elements", length, t.Size())
	}
	t.fill(at)
	return nil
}
