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

// Package implication defines the Implication type: a rule antecedent ⇒
// consequent over two formula.Formula values. It lives in its own package
// (rather than alongside formula.Formula or pkg/logic/schema) because it
// depends on both pkg/logic/schema (for ImplicationID) and pkg/logic/formula,
// and schema must stay free of a dependency on formula to avoid an import
// cycle with formula itself.
package implication

import (
	"github.com/pi-base/core/pkg/logic/formula"
	"github.com/pi-base/core/pkg/logic/schema"
)

// Implication is a universally quantified rule antecedent ⇒ consequent.
// Implications are immutable once saved: ConverseOf is the only field ever
// updated after creation, by MarkConverse.
type Implication struct {
	ID          schema.ImplicationID
	Antecedent  formula.Formula
	Consequent  formula.Formula
	// ConverseOf records that this implication was marked as the converse
	// of another, so pkg/logic/consistency.OpenConverses does not re-surface
	// it as an open candidate.
	ConverseOf *schema.ImplicationID
}

// MarkedAsReverse reports whether this implication has been recorded as the
// converse of some other implication.
func (i Implication) MarkedAsReverse() bool {
	return i.ConverseOf != nil
}

// MarkConverse returns a copy of i recording that it is the converse of of.
func (i Implication) MarkConverse(of schema.ImplicationID) Implication {
	i.ConverseOf = &of
	return i
}

// Converse returns C ⇒ A for an implication A ⇒ C. It is not logically
// equivalent to i; it is used only by consistency queries, never by the
// Prover.
func (i Implication) Converse() Implication {
	return Implication{ID: i.ID, Antecedent: i.Consequent, Consequent: i.Antecedent}
}

// Contrapositive returns ¬C ⇒ ¬A for an implication A ⇒ C, which is
// logically equivalent to i and is what the Prover applies for backward
// inference (find_contra / prove_contra).
func (i Implication) Contrapositive() (Implication, error) {
	na, err := i.Antecedent.Negate()
	if err != nil {
		return Implication{}, err
	}
	//
	nc, err := i.Consequent.Negate()
	if err != nil {
		return Implication{}, err
	}
	//
	return Implication{ID: i.ID, Antecedent: nc, Consequent: na}, nil
}

// Render prints this implication's human form, "antecedent => consequent".
func (i Implication) Render(opts formula.RenderOptions) string {
	return formula.Render(i.Antecedent, opts) + " => " + formula.Render(i.Consequent, opts)
}
