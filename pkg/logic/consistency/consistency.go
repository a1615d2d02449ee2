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

// Package consistency implements the witness-space query family
// (Examples, Counterexamples, CheckConsistency), the
// open-converses candidate-equivalence surface, and AcceptImplication,
// the atomic counterexample-check-then-save-then-trigger sequence that
// must run under a single write lock.
package consistency

import (
	"context"
	"fmt"

	"github.com/pi-base/core/pkg/logic/eval"
	"github.com/pi-base/core/pkg/logic/implication"
	"github.com/pi-base/core/pkg/logic/prove"
	"github.com/pi-base/core/pkg/logic/schema"
	"github.com/pi-base/core/pkg/logic/store"
)

// Store is the subset of pkg/logic/store.Store this package needs: trait
// reads/writes, the write lock, locked implication persistence, and the
// already-locked trait accessors used while that lock is held (see
// lockedStore).
type Store interface {
	prove.TraitStore
	GetTraitLocked(space schema.SpaceID, property schema.PropertyID) (schema.Trait, bool)
	PutTraitLocked(space schema.SpaceID, property schema.PropertyID, value schema.ValueID, proof []store.ProofStep, agent string) (schema.Trait, error)
	Lock()
	Unlock()
	PutImplicationLocked(implication.Implication) implication.Implication
	Implications() []implication.Implication
}

// lockedStore adapts a Store whose write lock the caller already holds
// (AcceptImplication, mid-sweep) to eval.Traits and prove.TraitStore,
// routing reads and writes through the already-locked accessors instead of
// GetTrait/PutTrait, which would try to re-acquire the (non-reentrant)
// lock and deadlock.
type lockedStore struct {
	s Store
}

func (l lockedStore) GetTrait(space schema.SpaceID, property schema.PropertyID) (schema.Trait, bool) {
	return l.s.GetTraitLocked(space, property)
}

func (l lockedStore) PutTrait(space schema.SpaceID, property schema.PropertyID, value schema.ValueID, proof []store.ProofStep, agent string) (schema.Trait, error) {
	return l.s.PutTraitLocked(space, property, value, proof, agent)
}

// Examples returns the spaces where both antecedent and consequent are
// known true.
func Examples(s eval.Traits, i implication.Implication, candidates []schema.SpaceID) []schema.SpaceID {
	return filterBoth(s, i, candidates, eval.True, eval.True)
}

// Counterexamples returns the spaces where the antecedent holds but the
// consequent is known false. A saved implication must always have none.
func Counterexamples(s eval.Traits, i implication.Implication, candidates []schema.SpaceID) []schema.SpaceID {
	return filterBoth(s, i, candidates, eval.True, eval.False)
}

func filterBoth(s eval.Traits, i implication.Implication, candidates []schema.SpaceID, wantA, wantC eval.Value) []schema.SpaceID {
	var out []schema.SpaceID
	for _, space := range candidates {
		if eval.Eval(s, space, i.Antecedent) == wantA && eval.Eval(s, space, i.Consequent) == wantC {
			out = append(out, space)
		}
	}
	return out
}

// ImplicationHasCounterexamplesError is the logical error reported for a
// would-be-saved implication with existing counterexamples.
type ImplicationHasCounterexamplesError struct {
	Spaces []schema.SpaceID
}

func (e *ImplicationHasCounterexamplesError) Error() string {
	return fmt.Sprintf("implication has %d counterexample space(s)", len(e.Spaces))
}

// AcceptImplication is the atomic "acceptance of an implication": under
// the store's write lock, check counterexamples, save if none exist, then
// run the initial trigger sweep (Trigger over FindForward ∪ FindContra)
// before releasing the lock, so a concurrent trait insertion cannot race
// between the check and the save. The counterexample check and the
// trigger sweep both read and write traits through lockedStore, since s's
// own GetTrait/PutTrait would re-acquire the lock already held here.
func AcceptImplication(s Store, i implication.Implication, candidates []schema.SpaceID) (implication.Implication, error) {
	s.Lock()
	defer s.Unlock()

	locked := lockedStore{s}

	if cx := Counterexamples(locked, i, candidates); len(cx) > 0 {
		return implication.Implication{}, &ImplicationHasCounterexamplesError{cx}
	}

	saved := s.PutImplicationLocked(i)

	if err := prove.Trigger(locked, saved, candidates); err != nil {
		return implication.Implication{}, err
	}

	return saved, nil
}

// OpenConverses returns saved implications whose converse has no
// counterexamples and which have not already been marked as a converse
// pair, surfaced as candidate equivalences.
func OpenConverses(s Store, candidates []schema.SpaceID) []implication.Implication {
	var out []implication.Implication
	for _, i := range s.Implications() {
		if i.MarkedAsReverse() {
			continue
		}
		converse := i.Converse()
		if len(Counterexamples(s, converse, candidates)) == 0 {
			out = append(out, i)
		}
	}
	return out
}

// ConsistencyViolation pairs an implication with its (non-empty) set of
// counterexample spaces, as returned by CheckConsistency.
type ConsistencyViolation struct {
	Implication implication.Implication
	Spaces      []schema.SpaceID
}

// CheckConsistency returns every saved implication with at least one
// counterexample. Must be empty in a healthy database; a non-empty result
// indicates either a bypassed AcceptImplication check or data inserted
// directly (e.g. via a bulk import).
func CheckConsistency(s Store, candidates []schema.SpaceID) []ConsistencyViolation {
	var out []ConsistencyViolation
	for _, i := range s.Implications() {
		if cx := Counterexamples(s, i, candidates); len(cx) > 0 {
			out = append(out, ConsistencyViolation{i, cx})
		}
	}
	return out
}

// Recompute re-derives everything reachable from the current implication
// and trait set: the global sweep needed after a deletion so the
// post-condition remains a fixpoint of the inference relation.
func Recompute(ctx context.Context, s *store.Store, candidates []schema.SpaceID) error {
	return prove.AddProofs(ctx, s, s.Implications(), candidates)
}
