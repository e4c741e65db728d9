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
	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
)

// local storage for a Tensor, shared by the tensor that allocated it and all its views.
type local struct {
	// flat holds the array with actual data.
	flat []float32
}

// newLocal allocates the storage. Allocation failures that the runtime reports as panics
// (e.g.: "makeslice: len out of range") are converted to a ResourceExhaustedError.
func newLocal(size int) (*local, error) {
	var flat []float32
	err := exceptions.TryCatch[error](func() {
		flat = make([]float32, size)
	})
	if err != nil {
		return nil, errors.WithStack(&ResourceExhaustedError{
			Requested: uint64(size) * 4,
			Reason:    err.Error(),
		})
	}
	return &local{flat: flat}, nil
}

// IsFinalized returns true if the storage has already been "finalized", and its
// data freed.
func (l *local) IsFinalized() bool {
	return l == nil || l.flat == nil
}

// Finalize releases the memory associated with the storage.
func (l *local) Finalize() {
	if l == nil {
		return
	}
	l.flat = nil
}
