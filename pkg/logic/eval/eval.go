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

// Package eval implements three-valued evaluation of a formula against a
// space's known traits, plus VerifyMatch, the witness-extracting
// counterpart used by the Prover. The three truth values are an explicit
// enum, not bool-with-ad-hoc-nil, so the matcher (pkg/logic/match) can
// dual-read the same cases this package switches on.
package eval

import (
	"fmt"

	"github.com/pi-base/core/pkg/logic/formula"
	"github.com/pi-base/core/pkg/logic/schema"
)

// Value is the result of evaluating a formula against a space: true, false,
// or unknown (no stored trait decides it either way).
type Value int

const (
	// False means the formula is known not to hold.
	False Value = iota
	// True means the formula is known to hold.
	True
	// Unknown means the store has no traits deciding the formula either way.
	Unknown
)

// String renders a Value for logging/debugging.
func (v Value) String() string {
	switch v {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "unknown"
	}
}

// Traits is the read-only view of a trait store that Eval needs: just
// lookup by (space, property). pkg/logic/store.Store satisfies this.
type Traits interface {
	GetTrait(space schema.SpaceID, property schema.PropertyID) (schema.Trait, bool)
}

// Eval computes the three-valued truth of f on space, given traits.
func Eval(traits Traits, space schema.SpaceID, f formula.Formula) Value {
	v, _ := eval(traits, space, f)
	return v
}

// eval also returns whether the formula is a single atom; Eval and
// evalCompound use only the truth value. Callers outside this package use
// Eval.
func eval(traits Traits, space schema.SpaceID, f formula.Formula) (Value, bool) {
	switch {
	case f.IsEmpty():
		return True, false
	case f.IsAtom():
		t, ok := traits.GetTrait(space, f.Property())
		if !ok {
			return Unknown, true
		}
		if t.ValueID == f.Value() {
			return True, true
		}
		return False, true
	default:
		return evalCompound(traits, space, f), false
	}
}

func evalCompound(traits Traits, space schema.SpaceID, f formula.Formula) Value {
	sawUnknown := false

	if f.Operator() == formula.AND {
		for _, sf := range f.Sub() {
			v, _ := eval(traits, space, sf)
			switch v {
			case False:
				return False
			case Unknown:
				sawUnknown = true
			}
		}
		if sawUnknown {
			return Unknown
		}
		return True
	}

	// OR
	for _, sf := range f.Sub() {
		v, _ := eval(traits, space, sf)
		switch v {
		case True:
			return True
		case Unknown:
			sawUnknown = true
		}
	}
	if sawUnknown {
		return Unknown
	}
	return False
}

// VerifyFailedError is returned by VerifyMatch when the formula does not
// evaluate to true on the given space (so no witness exists); it is a
// soft-failure condition callers in pkg/logic/prove routinely swallow.
type VerifyFailedError struct {
	Space   schema.SpaceID
	Formula string
}

func (e *VerifyFailedError) Error() string {
	return fmt.Sprintf("verify_match failed: formula %q is not true on space %d", e.Formula, e.Space)
}

// VerifyMatch returns the minimal witness list of trait ids justifying
// eval(S, F) = true: for an atom, the single deciding trait; for AND, the
// concatenation of every child's witness; for OR, the first satisfying
// child's witness; Empty has an empty witness. It fails with
// VerifyFailedError if eval(S, F) != true.
func VerifyMatch(traits Traits, space schema.SpaceID, f formula.Formula) ([]schema.TraitID, error) {
	switch {
	case f.IsEmpty():
		return nil, nil
	case f.IsAtom():
		t, ok := traits.GetTrait(space, f.Property())
		if !ok || t.ValueID != f.Value() {
			return nil, &VerifyFailedError{space, formula.Serialize(f)}
		}
		return []schema.TraitID{t.ID}, nil
	default:
		return verifyCompound(traits, space, f)
	}
}

func verifyCompound(traits Traits, space schema.SpaceID, f formula.Formula) ([]schema.TraitID, error) {
	if f.Operator() == formula.AND {
		var witness []schema.TraitID
		for _, sf := range f.Sub() {
			w, err := VerifyMatch(traits, space, sf)
			if err != nil {
				return nil, err
			}
			witness = append(witness, w...)
		}
		return witness, nil
	}

	// OR: the first satisfying child wins.
	for _, sf := range f.Sub() {
		w, err := VerifyMatch(traits, space, sf)
		if err == nil {
			return w, nil
		}
	}
	return nil, &VerifyFailedError{space, formula.Serialize(f)}
}
