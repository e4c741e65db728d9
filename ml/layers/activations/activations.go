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

// Package activations implements the selection of activation functions by name, dispatching
// to the activation expressions of package graph.
package activations

import (
	"github.com/gomlx/exceptions"
	. "github.com/gomlx/tensorgraph/graph"
	"github.com/pkg/errors"
)

// Type is an enum for the supported activation functions.
//
// It is converted to snake-format strings (e.g.: TypeRelu -> "relu"), and can be converted
// from string by using TypeString or FromName.
type Type int

const (
	TypeNone Type = iota
	TypeRelu
	TypeSigmoid
	TypeSoftmax
)

//go:generate enumer -type=Type -trimprefix=Type -transform=snake -values -text -json -yaml activations.go

// Apply the given activation type to x, naming the resulting node name.
// The TypeNone activation is a no-op, and returns x itself.
//
// See TypeValues for valid values.
func Apply(activation Type, x *Node, name string) (*Node, error) {
	switch activation {
	case TypeNone:
		return x, nil
	case TypeRelu:
		return Relu(x, name)
	case TypeSigmoid:
		return Sigmoid(x, name)
	case TypeSoftmax:
		return Softmax(x, name)
	default:
		return nil, errors.Errorf("Apply got invalid activation value %q: options are %v", activation, TypeValues())
	}
}

// FromName converts the name of an activation to its type.
// It panics with a helpful message if name is invalid.
//
// And empty string is converted to TypeNone.
func FromName(activationName string) Type {
	if activationName == "" {
		return TypeNone
	}
	activation, err := TypeString(activationName)
	if err != nil {
		exceptions.Panicf("invalid activation name %q: options are %v", activationName, TypeValues())
	}
	return activation
}

// ApplyByName applies the activation with the given name, see FromName.
// It returns an error, instead of panicking, for invalid names.
func ApplyByName(activationName string, x *Node, name string) (*Node, error) {
	var activation Type
	err := exceptions.TryCatch[error](func() { activation = FromName(activationName) })
	if err != nil {
		return nil, err
	}
	return Apply(activation, x, name)
}
