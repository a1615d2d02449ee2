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
package match

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pi-base/core/pkg/logic/eval"
	"github.com/pi-base/core/pkg/logic/formula"
	"github.com/pi-base/core/pkg/logic/schema"
)

const (
	propA schema.PropertyID = 1
	propB schema.PropertyID = 2
)

type fakeTraits map[schema.SpaceID]map[schema.PropertyID]schema.ValueID

func (f fakeTraits) GetTrait(space schema.SpaceID, property schema.PropertyID) (schema.Trait, bool) {
	v, ok := f[space][property]
	if !ok {
		return schema.Trait{}, false
	}
	return schema.Trait{SpaceID: space, PropertyID: property, ValueID: v}, true
}

func TestSpacesMatching_AtomTrue(t *testing.T) {
	traits := fakeTraits{
		1: {propA: schema.TrueValueID},
		2: {propA: schema.FalseValueID},
		3: {},
	}
	//
	got := SpacesMatching(traits, formula.Atom(propA, schema.TrueValueID), eval.True, []schema.SpaceID{1, 2, 3})
	require.Equal(t, []schema.SpaceID{1}, got)
}

func TestSpacesMatching_AtomUnknown(t *testing.T) {
	traits := fakeTraits{
		1: {propA: schema.TrueValueID},
		2: {propA: schema.FalseValueID},
		3: {},
	}
	//
	got := SpacesMatching(traits, formula.Atom(propA, schema.TrueValueID), eval.Unknown, []schema.SpaceID{1, 2, 3})
	require.Equal(t, []schema.SpaceID{3}, got)
}

func TestSpacesMatching_AndTrueIsIntersection(t *testing.T) {
	traits := fakeTraits{
		1: {propA: schema.TrueValueID, propB: schema.TrueValueID},
		2: {propA: schema.TrueValueID, propB: schema.FalseValueID},
		3: {propA: schema.TrueValueID},
	}
	f := formula.And(formula.Atom(propA, schema.TrueValueID), formula.Atom(propB, schema.TrueValueID))
	//
	got := SpacesMatching(traits, f, eval.True, []schema.SpaceID{1, 2, 3})
	require.Equal(t, []schema.SpaceID{1}, got)
}

func TestSpacesMatching_OrTrueIsUnion(t *testing.T) {
	traits := fakeTraits{
		1: {propA: schema.TrueValueID},
		2: {propB: schema.TrueValueID},
		3: {},
	}
	f := formula.Or(formula.Atom(propA, schema.TrueValueID), formula.Atom(propB, schema.TrueValueID))
	//
	got := SpacesMatching(traits, f, eval.True, []schema.SpaceID{1, 2, 3})
	require.Equal(t, []schema.SpaceID{1, 2}, got)
}

func TestSpacesMatching_AgreesWithEval(t *testing.T) {
	traits := fakeTraits{
		1: {propA: schema.TrueValueID, propB: schema.TrueValueID},
		2: {propA: schema.TrueValueID, propB: schema.FalseValueID},
		3: {propA: schema.FalseValueID},
		4: {},
	}
	f := formula.Or(formula.Atom(propA, schema.TrueValueID), formula.Atom(propB, schema.TrueValueID))
	candidates := []schema.SpaceID{1, 2, 3, 4}
	//
	for _, target := range []eval.Value{eval.True, eval.False, eval.Unknown} {
		matched := SpacesMatching(traits, f, target, candidates)
		matchedSet := map[schema.SpaceID]bool{}
		for _, s := range matched {
			matchedSet[s] = true
		}
		for _, s := range candidates {
			want := eval.Eval(traits, s, f) == target
			require.Equal(t, want, matchedSet[s], "space %d target %v", s, target)
		}
	}
}
