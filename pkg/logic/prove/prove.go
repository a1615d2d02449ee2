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

// Package prove implements forward-chaining inference over implications,
// proof recording and the insert/delete triggers that drive it. When a
// disjunctive consequent has every disjunct false, ForceMatch reports a
// Contradiction rather than a silent no-op: an unsatisfiable formula on a
// space is a real logical error, not a skip.
package prove

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/pi-base/core/pkg/logic/eval"
	"github.com/pi-base/core/pkg/logic/formula"
	"github.com/pi-base/core/pkg/logic/implication"
	"github.com/pi-base/core/pkg/logic/schema"
	"github.com/pi-base/core/pkg/logic/store"
)

// TraitStore is the subset of pkg/logic/store.Store the Prover needs: read
// traits and write newly-derived ones.
type TraitStore interface {
	eval.Traits
	PutTrait(space schema.SpaceID, property schema.PropertyID, value schema.ValueID, proof []store.ProofStep, agent string) (schema.Trait, error)
}

// ContradictionError is fatal: it indicates either an inconsistent
// implication or inconsistent traits on the space.
type ContradictionError struct {
	Space      schema.SpaceID
	PropertyID schema.PropertyID
}

func (e *ContradictionError) Error() string {
	return fmt.Sprintf("contradiction forcing property %d true on space %d", e.PropertyID, e.Space)
}

// AmbiguousError is a soft-failure: force_match could not determine a
// unique child to force within a disjunction, so no progress was made
// on this (implication, space) pair right now. Apply swallows it.
type AmbiguousError struct {
	Space schema.SpaceID
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("ambiguous: more than one unknown disjunct on space %d", e.Space)
}

// ForceMatch attempts to add traits to space so that f becomes true,
// recording prefix as the proof of any trait it inserts. It reports
// whether it made any new insertion (progressed), distinct from a no-op
// success (f was already true).
func ForceMatch(ts TraitStore, space schema.SpaceID, f formula.Formula, prefix []store.ProofStep) (bool, error) {
	switch {
	case f.IsEmpty():
		return false, nil
	case f.IsAtom():
		return forceAtom(ts, space, f, prefix)
	default:
		if f.Operator() == formula.AND {
			return forceAnd(ts, space, f, prefix)
		}
		return forceOr(ts, space, f, prefix)
	}
}

func forceAtom(ts TraitStore, space schema.SpaceID, f formula.Formula, prefix []store.ProofStep) (bool, error) {
	existing, ok := ts.GetTrait(space, f.Property())
	if !ok {
		if _, err := ts.PutTrait(space, f.Property(), f.Value(), prefix, schema.ProverAgent); err != nil {
			return false, err
		}
		return true, nil
	}
	if existing.ValueID != f.Value() {
		return false, &ContradictionError{space, f.Property()}
	}
	return false, nil
}

func forceAnd(ts TraitStore, space schema.SpaceID, f formula.Formula, prefix []store.ProofStep) (bool, error) {
	progressed := false
	for _, sf := range f.Sub() {
		p, err := ForceMatch(ts, space, sf, prefix)
		if err != nil {
			return progressed, err
		}
		progressed = progressed || p
	}
	return progressed, nil
}

func forceOr(ts TraitStore, space schema.SpaceID, f formula.Formula, prefix []store.ProofStep) (bool, error) {
	var unknown []formula.Formula
	var falseWitnessSteps []store.ProofStep

	for _, sf := range f.Sub() {
		switch eval.Eval(ts, space, sf) {
		case eval.True:
			return false, nil
		case eval.Unknown:
			unknown = append(unknown, sf)
		default: // False
			nsf, err := sf.Negate()
			if err != nil {
				return false, err
			}
			w, err := eval.VerifyMatch(ts, space, nsf)
			if err != nil {
				return false, err
			}
			for _, tid := range w {
				falseWitnessSteps = append(falseWitnessSteps, store.TraitStep(tid))
			}
		}
	}

	switch len(unknown) {
	case 0:
		// Every disjunct is false: the formula is unsatisfiable on this
		// space. PropertyID 0 marks this as a formula-level contradiction
		// rather than a single atom's.
		return false, &ContradictionError{space, 0}
	case 1:
		extended := append(append([]store.ProofStep{}, prefix...), falseWitnessSteps...)
		return ForceMatch(ts, space, unknown[0], extended)
	default:
		return false, &AmbiguousError{space}
	}
}

// Prove applies implication i forward to space: verify the antecedent,
// then force the consequent.
func Prove(ts TraitStore, i implication.Implication, space schema.SpaceID) (bool, error) {
	witness, err := eval.VerifyMatch(ts, space, i.Antecedent)
	if err != nil {
		return false, err
	}
	prefix := witnessSteps(witness)
	prefix = append(prefix, store.ImplicationStep(i.ID))
	return ForceMatch(ts, space, i.Consequent, prefix)
}

// ProveContra applies implication i's contrapositive to space: verify ¬C,
// then force ¬A.
func ProveContra(ts TraitStore, i implication.Implication, space schema.SpaceID) (bool, error) {
	negConsequent, err := i.Consequent.Negate()
	if err != nil {
		return false, err
	}
	negAntecedent, err := i.Antecedent.Negate()
	if err != nil {
		return false, err
	}
	witness, err := eval.VerifyMatch(ts, space, negConsequent)
	if err != nil {
		return false, err
	}
	prefix := witnessSteps(witness)
	prefix = append(prefix, store.ImplicationStep(i.ID))
	return ForceMatch(ts, space, negAntecedent, prefix)
}

func witnessSteps(witness []schema.TraitID) []store.ProofStep {
	steps := make([]store.ProofStep, len(witness))
	for i, tid := range witness {
		steps[i] = store.TraitStep(tid)
	}
	return steps
}

// Apply runs both Prove and ProveContra for (i, space), swallowing the
// soft-failures VerifyFailedError and AmbiguousError: those just mean no
// new fact is derivable right now. A ContradictionError is surfaced.
// Returns whether either direction made progress.
func Apply(ts TraitStore, i implication.Implication, space schema.SpaceID) (bool, error) {
	p1, err := attempt(Prove(ts, i, space))
	if err != nil {
		return p1, err
	}
	p2, err := attempt(ProveContra(ts, i, space))
	return p1 || p2, err
}

func attempt(progressed bool, err error) (bool, error) {
	if err == nil {
		return progressed, nil
	}
	var verifyFailed *eval.VerifyFailedError
	var ambiguous *AmbiguousError
	if errors.As(err, &verifyFailed) || errors.As(err, &ambiguous) {
		return false, nil
	}
	return false, err
}

// FindForward returns the spaces (among candidates) where the antecedent
// holds but the consequent is not already known true.
func FindForward(ts eval.Traits, i implication.Implication, candidates []schema.SpaceID) []schema.SpaceID {
	var out []schema.SpaceID
	for _, s := range candidates {
		if eval.Eval(ts, s, i.Antecedent) == eval.True && eval.Eval(ts, s, i.Consequent) != eval.True {
			out = append(out, s)
		}
	}
	return out
}

// FindContra returns the spaces where the consequent is known false but
// the antecedent is not already known false.
func FindContra(ts eval.Traits, i implication.Implication, candidates []schema.SpaceID) []schema.SpaceID {
	var out []schema.SpaceID
	for _, s := range candidates {
		if eval.Eval(ts, s, i.Consequent) == eval.False && eval.Eval(ts, s, i.Antecedent) != eval.False {
			out = append(out, s)
		}
	}
	return out
}

// Trigger runs Apply for implication i over every space in FindForward(i)
// ∪ FindContra(i) among candidates, for the "on new trait" and "on new
// implication" triggers. It returns the first ContradictionError
// encountered, if any.
func Trigger(ts TraitStore, i implication.Implication, candidates []schema.SpaceID) error {
	forward := FindForward(ts, i, candidates)
	contra := FindContra(ts, i, candidates)

	seen := map[schema.SpaceID]struct{}{}
	for _, s := range append(append([]schema.SpaceID{}, forward...), contra...) {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		if _, err := Apply(ts, i, s); err != nil {
			return err
		}
	}
	return nil
}

// MentionsProperty reports whether property appears anywhere in f's atoms.
// Triggers use this as a conservative over-approximation: any implication
// touching the property at all is a trigger candidate, found by walking
// the structured formula tree rather than a textual scan.
func MentionsProperty(f formula.Formula, property schema.PropertyID) bool {
	switch {
	case f.IsEmpty():
		return false
	case f.IsAtom():
		return f.Property() == property
	default:
		for _, sf := range f.Sub() {
			if MentionsProperty(sf, property) {
				return true
			}
		}
		return false
	}
}

// OnNewTrait runs the "on new trait" trigger: every implication mentioning
// property in its antecedent or consequent is applied to space.
func OnNewTrait(ts TraitStore, implications []implication.Implication, space schema.SpaceID, property schema.PropertyID) error {
	for _, i := range implications {
		if !MentionsProperty(i.Antecedent, property) && !MentionsProperty(i.Consequent, property) {
			continue
		}
		if _, err := Apply(ts, i, space); err != nil {
			return err
		}
	}
	return nil
}

// AddProofs runs the global recompute sweep needed after a deletion: for
// every implication, apply over every currently relevant space, iterating
// to fixpoint (re-running passes until none makes progress). At most
// len(implications)*len(spaces)+1 passes can ever make progress, which
// bounds the loop. Pure candidate computation (FindForward/FindContra,
// themselves read-only) is fanned out across implications via a bounded
// errgroup; the actual mutations happen through ts.PutTrait, which
// pkg/logic/store.Store serializes internally behind its single write
// lock.
func AddProofs(ctx context.Context, ts TraitStore, implications []implication.Implication, spaces []schema.SpaceID) error {
	maxPasses := len(implications)*len(spaces) + 1

	for pass := 0; pass < maxPasses; pass++ {
		progressedPass, err := addProofsPass(ctx, ts, implications, spaces)
		if err != nil {
			return err
		}
		if !progressedPass {
			return nil
		}
	}
	return nil
}

func addProofsPass(ctx context.Context, ts TraitStore, implications []implication.Implication, spaces []schema.SpaceID) (bool, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8)

	progressedFlags := make([]bool, len(implications))

	for idx, i := range implications {
		idx, i := idx, i
		g.Go(func() error {
			forward := FindForward(ts, i, spaces)
			contra := FindContra(ts, i, spaces)

			seen := map[schema.SpaceID]struct{}{}
			for _, s := range append(append([]schema.SpaceID{}, forward...), contra...) {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				if _, ok := seen[s]; ok {
					continue
				}
				seen[s] = struct{}{}
				p, err := Apply(ts, i, s)
				if err != nil {
					return err
				}
				if p {
					progressedFlags[idx] = true
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return false, err
	}

	for _, p := range progressedFlags {
		if p {
			return true, nil
		}
	}
	return false, nil
}
