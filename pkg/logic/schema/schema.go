// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package schema defines the vocabulary every other package in the
// deductive core builds on: Values, Properties, Spaces, Traits and the
// textual Descriptions (snippets) attached to them.
package schema

import "fmt"

// ValueID uniquely identifies a Value within its Property's value-set.
type ValueID uint64

// PropertyID uniquely identifies a Property.
type PropertyID uint64

// SpaceID uniquely identifies a Space.
type SpaceID uint64

// TraitID uniquely identifies a Trait.
type TraitID uint64

// ImplicationID uniquely identifies an Implication.
type ImplicationID uint64

// DescriptionID uniquely identifies a Description (snippet) attached to some
// other object.
type DescriptionID uint64

// The boolean value-set used throughout this package. Property value-sets
// are allowed to be arbitrary (see Property.Values), but the evaluator,
// matcher and prover only ever reason about these two.
const (
	// TrueValueID is the stable id of the boolean "True" value.
	TrueValueID ValueID = 1
	// FalseValueID is the stable id of the boolean "False" value.
	FalseValueID ValueID = 2
)

// Value is an element of a Property's value-set.
type Value struct {
	ID   ValueID
	Name string
}

// NewBooleanValues returns the two canonical boolean values every property
// in the boolean value-set is built from.
func NewBooleanValues() (True, False Value) {
	return Value{TrueValueID, "True"}, Value{FalseValueID, "False"}
}

// Negate returns the logical negation of a boolean value id.  It is only
// defined for TrueValueID and FalseValueID; callers outside the boolean
// value-set must check IsBoolean first.
func Negate(v ValueID) (ValueID, error) {
	switch v {
	case TrueValueID:
		return FalseValueID, nil
	case FalseValueID:
		return TrueValueID, nil
	default:
		return 0, fmt.Errorf("%w: value %d is not boolean", ErrUnsupportedNegation, v)
	}
}

// IsBoolean reports whether v is one of the two boolean values.
func IsBoolean(v ValueID) bool {
	return v == TrueValueID || v == FalseValueID
}

// ErrUnsupportedNegation is returned whenever negation is attempted on a
// value (or formula node) for which it is undefined.
var ErrUnsupportedNegation = fmt.Errorf("unsupported negation")

// Property is an atomic predicate symbol with a stable id, a unique name and
// slug, and the set of values it may take (boolean, in every case this
// package exercises).
type Property struct {
	ID     PropertyID
	Name   string
	Slug   string
	Values []Value
}

// ValueNamed looks up one of this property's values by case-insensitive
// name, returning false if none matches.
func (p Property) ValueNamed(name string) (Value, bool) {
	for _, v := range p.Values {
		if equalFold(v.Name, name) {
			return v, true
		}
	}
	return Value{}, false
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

// Space is a named mathematical object about which traits are recorded.
type Space struct {
	ID           SpaceID
	Name         string
	Slug         string
	FullyDefined bool
}

// Trait is the fact that a given Space has a given Value for a given
// Property.  At most one Trait may exist for any (SpaceID, PropertyID) pair;
// that invariant is enforced by the store, not by this type.
type Trait struct {
	ID         TraitID
	SpaceID    SpaceID
	PropertyID PropertyID
	ValueID    ValueID
}

// Description is a textual snippet attached to a domain object (most often a
// Trait). When IsProof is true, Text holds a proof string of the form
// "t1,i4,t7,"; Automatic distinguishes a proof produced by the Prover from
// one a human typed in directly:
//
//	is_proof   := agent != ""
//	automatic  := agent ∉ {"", "user"}
type Description struct {
	ID         DescriptionID
	ObjectType string
	ObjectID   uint64
	Text       string
	ProofAgent string
}

// ProverAgent is the agent string the Prover stamps onto a Description it
// generates.
const ProverAgent = "pibase/core.Prover"

// UserAgent marks a Description entered directly by a person; it is a proof
// in the structural sense (IsProof is true) but not an automated derivation.
const UserAgent = "user"

// IsProof reports whether this description is a proof of some kind (user or
// automated).
func (d Description) IsProof() bool {
	return d.ProofAgent != ""
}

// Automatic reports whether this description was produced by an automated
// proof agent, as opposed to a user typing in a justification by hand.
func (d Description) Automatic() bool {
	return d.ProofAgent != "" && d.ProofAgent != UserAgent
}
