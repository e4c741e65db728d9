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
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

// ErrResourceExhausted is matched (with errors.Is) by every ResourceExhaustedError.
var ErrResourceExhausted = errors.New("resource exhausted")

// ResourceExhaustedError is returned when storage for a tensor cannot be allocated, either
// because the allocation itself failed, or because it would exceed a configured memory limit.
type ResourceExhaustedError struct {
	// Requested number of bytes, 0 if unknown.
	Requested uint64

	// Available number of bytes under the configured limit, only set when a limit was exceeded.
	Available uint64

	// Reason, if any.
	Reason string
}

// Error implements the error interface.
func (e *ResourceExhaustedError) Error() string {
	msg := ErrResourceExhausted.Error()
	if e.Requested > 0 {
		msg = fmt.Sprintf("%s: requested %s", msg, humanize.Bytes(e.Requested))
		if e.Available > 0 || e.Reason == "" {
			msg = fmt.Sprintf("%s, %s available", msg, humanize.Bytes(e.Available))
		}
	}
	if e.Reason != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Reason)
	}
	return msg
}

// Is makes errors.Is(err, ErrResourceExhausted) work.
func (e *ResourceExhaustedError) Is(target error) bool {
	return target == ErrResourceExhausted
}
