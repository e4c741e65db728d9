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

package graph

import "github.com/pkg/errors"

var (
	// ErrFinalized is returned when trying to use a graph after Graph.Finalize.
	ErrFinalized = errors.New("graph has been finalized")

	// ErrInvalidNode is returned when a nil node, a node of another graph or a node of the wrong kind is
	// given to an operation.
	ErrInvalidNode = errors.New("invalid node")
)
