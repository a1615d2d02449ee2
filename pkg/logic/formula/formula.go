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

// Package formula implements the propositional formula algebra: atoms of
// the form property=value, flattened conjunctions and disjunctions of
// sub-formulae, and the trivially-true empty formula.
//
// Formulae are kept exactly as built: a flattened tree, never rewritten
// into disjunctive normal form. AND/OR nodes are flattened but never
// simplified or reordered, so Negate, Render and the (de)serializer are
// straightforward structural recursions rather than a set-based rewrite.
package formula

import (
	"fmt"
	"strings"

	"github.com/pi-base/core/pkg/logic/schema"
)

// Comparison identifies how an atom compares its property to its value.
// Only equality is implemented; room is reserved for other comparisons
// (e.g. for non-boolean, ordered value-sets like cardinals) that this core
// does not implement.
type Comparison string

// EQ is the only comparison operator this core supports.
const EQ Comparison = "="

// Operator joins two or more sub-formulae together.
type Operator string

const (
	// AND requires every sub-formula to hold.
	AND Operator = "&"
	// OR requires at least one sub-formula to hold.
	OR Operator = "|"
)

// kind tags which of the four alternatives a Formula is.
type kind int

const (
	kindEmpty kind = iota
	kindAtom
	kindCompound
)

// Formula is a recursive tagged value: exactly one of an Atom, a flattened
// AND/OR of two-or-more sub-formulae, or the Empty (trivially-true)
// formula. Formula values are immutable; every operation returns a new
// value rather than mutating its receiver.
type Formula struct {
	kind       kind
	property   schema.PropertyID
	value      schema.ValueID
	comparison Comparison
	operator   Operator
	sub        []Formula
}

// Empty constructs the trivially-true zero formula, used to represent "no
// constraint".
func Empty() Formula {
	return Formula{kind: kindEmpty}
}

// Atom constructs an atomic formula "property = value".
func Atom(property schema.PropertyID, value schema.ValueID) Formula {
	return Formula{kind: kindAtom, property: property, value: value, comparison: EQ}
}

// And returns the (flattened) conjunction of the given sub-formulae. A child
// that is itself an AND has its children spliced in rather than nested, and
// a single resulting child collapses to that child directly: compounds
// always have two or more sub-formulae.
func And(fs ...Formula) Formula {
	return compound(AND, fs)
}

// Or returns the (flattened) disjunction of the given sub-formulae, with the
// same flattening/collapsing rules as And.
func Or(fs ...Formula) Formula {
	return compound(OR, fs)
}

// Conj joins two formulae with a logical AND.
func Conj(f, g Formula) Formula {
	return And(f, g)
}

// Disj joins two formulae with a logical OR.
func Disj(f, g Formula) Formula {
	return Or(f, g)
}

func compound(op Operator, fs []Formula) Formula {
	var sub []Formula
	//
	for _, f := range fs {
		if f.kind == kindCompound && f.operator == op {
			sub = append(sub, f.sub...)
		} else {
			sub = append(sub, f)
		}
	}
	//
	switch len(sub) {
	case 0:
		return Empty()
	case 1:
		return sub[0]
	default:
		return Formula{kind: kindCompound, operator: op, sub: sub}
	}
}

// IsAtom determines whether this formula is atomic (no sub-formulae).
func (f Formula) IsAtom() bool {
	return f.kind == kindAtom
}

// IsEmpty determines whether this is the trivially-true empty formula.
func (f Formula) IsEmpty() bool {
	return f.kind == kindEmpty
}

// IsCompound determines whether this formula is an AND or OR of sub-formulae.
func (f Formula) IsCompound() bool {
	return f.kind == kindCompound
}

// Operator returns the top-level operator of a compound formula. Calling
// this on a non-compound formula panics; check IsCompound first.
func (f Formula) Operator() Operator {
	if f.kind != kindCompound {
		panic("formula: Operator() called on non-compound formula")
	}
	return f.operator
}

// Sub returns the immediate sub-formulae of a compound formula. Calling this
// on a non-compound formula panics; check IsCompound first.
func (f Formula) Sub() []Formula {
	if f.kind != kindCompound {
		panic("formula: Sub() called on non-compound formula")
	}
	return f.sub
}

// Property returns the property of an atomic formula. Calling this on a
// non-atomic formula panics; check IsAtom first.
func (f Formula) Property() schema.PropertyID {
	if f.kind != kindAtom {
		panic("formula: Property() called on non-atomic formula")
	}
	return f.property
}

// Value returns the value of an atomic formula. Calling this on a
// non-atomic formula panics; check IsAtom first.
func (f Formula) Value() schema.ValueID {
	if f.kind != kindAtom {
		panic("formula: Value() called on non-atomic formula")
	}
	return f.value
}

// Len returns the node count of this formula: 1 for an atom or the empty
// formula, or 1 plus the lengths of all sub-formulae for a compound.
func (f Formula) Len() int {
	if f.kind != kindCompound {
		return 1
	}
	//
	n := 1
	for _, sf := range f.sub {
		n += sf.Len()
	}
	//
	return n
}

// Negate returns the logical negation of this formula. Negating an atom
// requires its value to be boolean (schema.ErrUnsupportedNegation
// otherwise); negating Empty is likewise unsupported, since Empty has no
// dual (it is a zero element of conjunction, not a proposition with a
// truth-value that can be flipped). AND and OR dualise via De Morgan.
func (f Formula) Negate() (Formula, error) {
	switch f.kind {
	case kindAtom:
		nv, err := schema.Negate(f.value)
		if err != nil {
			return Formula{}, fmt.Errorf("negate atom %d=%d: %w", f.property, f.value, err)
		}
		//
		return Atom(f.property, nv), nil
	case kindCompound:
		dual := AND
		if f.operator == AND {
			dual = OR
		}
		//
		nsub := make([]Formula, len(f.sub))
		//
		for i, sf := range f.sub {
			nsf, err := sf.Negate()
			if err != nil {
				return Formula{}, err
			}
			//
			nsub[i] = nsf
		}
		//
		return compound(dual, nsub), nil
	default: // kindEmpty
		return Formula{}, fmt.Errorf("negate empty formula: %w", schema.ErrUnsupportedNegation)
	}
}

// Equal reports whether two formulae have identical structure: same kind,
// same atom, and same operator/sub-formulae in the same order.  Formulae are
// never reordered or simplified, so this is a plain structural comparison,
// not a semantic equivalence check.
func (f Formula) Equal(g Formula) bool {
	if f.kind != g.kind {
		return false
	}
	//
	switch f.kind {
	case kindEmpty:
		return true
	case kindAtom:
		return f.property == g.property && f.value == g.value && f.comparison == g.comparison
	default:
		if f.operator != g.operator || len(f.sub) != len(g.sub) {
			return false
		}
		//
		for i := range f.sub {
			if !f.sub[i].Equal(g.sub[i]) {
				return false
			}
		}
		//
		return true
	}
}

// Lookup resolves property and value ids to human-readable names for
// rendering. A real catalog (e.g. the one backed by pkg/logic/store) embeds
// this on a richer lookup type; this interface is the minimum Render needs.
type Lookup interface {
	PropertyName(schema.PropertyID) string
	ValueName(schema.PropertyID, schema.ValueID) string
}

// RenderOptions controls how Render formats a formula.
type RenderOptions struct {
	// Lookup resolves ids to names. If nil, ids are printed numerically.
	Lookup Lookup
	// Link, when true and Lookup implements LinkLookup, wraps each atom in an
	// anchor tag pointing at the property's page.
	Link bool
}

// LinkLookup is an optional extension of Lookup supplying a URL for a
// property, used when rendering with RenderOptions.Link set.
type LinkLookup interface {
	Lookup
	PropertyURL(schema.PropertyID) string
}

// Render produces a printable form of this formula. An atom (p, TRUE) prints
// as "p"; (p, FALSE) as "~p"; any other value as "p = v". A compound prints
// as "(sub1 OP sub2 OP ...)" with OP one of "&" or "|".
func Render(f Formula, opts RenderOptions) string {
	switch f.kind {
	case kindEmpty:
		return ""
	case kindAtom:
		text := renderAtom(f, opts.Lookup)
		//
		if opts.Link {
			if ll, ok := opts.Lookup.(LinkLookup); ok {
				return fmt.Sprintf(`<a href="%s">%s</a>`, ll.PropertyURL(f.property), text)
			}
		}
		//
		return text
	default:
		parts := make([]string, len(f.sub))
		//
		for i, sf := range f.sub {
			parts[i] = Render(sf, opts)
		}
		//
		return "(" + strings.Join(parts, fmt.Sprintf(" %s ", f.operator)) + ")"
	}
}

func renderAtom(f Formula, lookup Lookup) string {
	pname := fmt.Sprintf("%d", f.property)
	if lookup != nil {
		pname = lookup.PropertyName(f.property)
	}
	//
	switch f.value {
	case schema.TrueValueID:
		return pname
	case schema.FalseValueID:
		return "~" + pname
	default:
		vname := fmt.Sprintf("%d", f.value)
		//
		if lookup != nil {
			vname = lookup.ValueName(f.property, f.value)
		}
		//
		return fmt.Sprintf("%s = %s", pname, vname)
	}
}
