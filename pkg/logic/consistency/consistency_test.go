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
package consistency

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pi-base/core/pkg/logic/formula"
	"github.com/pi-base/core/pkg/logic/implication"
	"github.com/pi-base/core/pkg/logic/schema"
	"github.com/pi-base/core/pkg/logic/store"
)

const (
	propA schema.PropertyID = 1
	propB schema.PropertyID = 2
	spaceS schema.SpaceID   = 1
)

// Scenario 6: counterexample refusal.
func TestAcceptImplication_RefusesOnCounterexample(t *testing.T) {
	s := store.New()
	_, err := s.PutTrait(spaceS, propA, schema.TrueValueID, nil, "")
	require.NoError(t, err)
	_, err = s.PutTrait(spaceS, propB, schema.TrueValueID, nil, "")
	require.NoError(t, err)

	notB, err := formula.Atom(propB, schema.TrueValueID).Negate()
	require.NoError(t, err)
	//
	i := implication.Implication{Antecedent: formula.Atom(propA, schema.TrueValueID), Consequent: notB}
	_, err = AcceptImplication(s, i, []schema.SpaceID{spaceS})
	require.Error(t, err)
	require.IsType(t, &ImplicationHasCounterexamplesError{}, err)
	require.Empty(t, s.Implications())
}

func TestAcceptImplication_SavesAndTriggers(t *testing.T) {
	s := store.New()
	_, err := s.PutTrait(spaceS, propA, schema.TrueValueID, nil, "")
	require.NoError(t, err)
	//
	i := implication.Implication{Antecedent: formula.Atom(propA, schema.TrueValueID), Consequent: formula.Atom(propB, schema.TrueValueID)}
	saved, err := AcceptImplication(s, i, []schema.SpaceID{spaceS})
	require.NoError(t, err)
	require.NotZero(t, saved.ID)
	require.Len(t, s.Implications(), 1)
	//
	b, ok := s.GetTrait(spaceS, propB)
	require.True(t, ok)
	require.Equal(t, schema.TrueValueID, b.ValueID)
}

// Scenario 7: consistency sweep detects a bypassed insertion.
func TestCheckConsistency_DetectsBypassedInsertion(t *testing.T) {
	s := store.New()
	_, err := s.PutTrait(spaceS, propA, schema.TrueValueID, nil, "")
	require.NoError(t, err)
	_, err = s.PutTrait(spaceS, propB, schema.TrueValueID, nil, "")
	require.NoError(t, err)

	notB, err := formula.Atom(propB, schema.TrueValueID).Negate()
	require.NoError(t, err)

	// Simulate a bypass of AcceptImplication's check: save directly.
	s.Lock()
	bypassed := s.PutImplicationLocked(implication.Implication{
		Antecedent: formula.Atom(propA, schema.TrueValueID),
		Consequent: notB,
	})
	s.Unlock()
	//
	violations := CheckConsistency(s, []schema.SpaceID{spaceS})
	require.Len(t, violations, 1)
	require.Equal(t, bypassed.ID, violations[0].Implication.ID)
	require.Equal(t, []schema.SpaceID{spaceS}, violations[0].Spaces)
}

func TestOpenConverses_SkipsMarkedReverses(t *testing.T) {
	s := store.New()
	i1 := implication.Implication{ID: 1, Antecedent: formula.Atom(propA, schema.TrueValueID), Consequent: formula.Atom(propB, schema.TrueValueID)}
	// i2 is the converse of i1 (B => A), already marked as such.
	i2 := implication.Implication{ID: 2, Antecedent: formula.Atom(propB, schema.TrueValueID), Consequent: formula.Atom(propA, schema.TrueValueID)}.MarkConverse(i1.ID)
	s.Lock()
	s.PutImplicationLocked(i1)
	s.PutImplicationLocked(i2)
	s.Unlock()
	//
	open := OpenConverses(s, []schema.SpaceID{spaceS})
	for _, i := range open {
		require.NotEqual(t, i2.ID, i.ID)
	}
}
