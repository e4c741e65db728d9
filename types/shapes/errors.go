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
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrShapeMismatch is matched (with errors.Is) by every ShapeMismatchError.
var ErrShapeMismatch = errors.New("shape mismatch")

// ShapeMismatchError is returned when the shapes of the operands don't comply with
// the rules of the operation requested.
type ShapeMismatchError struct {
	// Op is the name of the operation that rejected the shapes.
	Op string

	// Shapes of the operands, in order.
	Shapes []Shape

	// Reason describes which rule was violated.
	Reason string
}

// Error implements the error interface.
func (e *ShapeMismatchError) Error() string {
	parts := make([]string, 0, len(e.Shapes))
	for _, s := range e.Shapes {
		parts = append(parts, s.String())
	}
	return fmt.Sprintf("%s: %s(%s): %s", ErrShapeMismatch, e.Op, strings.Join(parts, ", "), e.Reason)
}

// Is makes errors.Is(err, ErrShapeMismatch) work.
func (e *ShapeMismatchError) Is(target error) bool {
	return target == ErrShapeMismatch
}

// Mismatchf returns a new ShapeMismatchError with a stack trace attached.
func Mismatchf(op string, operands []Shape, format string, args ...any) error {
	return errors.WithStack(&ShapeMismatchError{
		Op:     op,
		Shapes: operands,
		Reason: fmt.Sprintf(format, args...),
	})
}
