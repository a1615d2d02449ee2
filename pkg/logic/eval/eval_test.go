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
package eval

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pi-base/core/pkg/logic/formula"
	"github.com/pi-base/core/pkg/logic/schema"
	"github.com/pi-base/core/pkg/util/assert"
)

const (
	propA schema.PropertyID = 1
	propB schema.PropertyID = 2
	propC schema.PropertyID = 3
)

func setupStore(t *testing.T, traits map[schema.PropertyID]schema.ValueID) *fakeStore {
	s := &fakeStore{traits: map[schema.PropertyID]schema.ValueID{}}
	for p, v := range traits {
		s.traits[p] = v
	}
	return s
}

type fakeStore struct {
	traits map[schema.PropertyID]schema.ValueID
}

func (f *fakeStore) GetTrait(space schema.SpaceID, property schema.PropertyID) (schema.Trait, bool) {
	v, ok := f.traits[property]
	if !ok {
		return schema.Trait{}, false
	}
	return schema.Trait{ID: schema.TraitID(property), SpaceID: space, PropertyID: property, ValueID: v}, true
}

func TestEval_Atom(t *testing.T) {
	s := setupStore(t, map[schema.PropertyID]schema.ValueID{propA: schema.TrueValueID})
	//
	assert.Equal(t, True, Eval(s, 1, formula.Atom(propA, schema.TrueValueID)))
	assert.Equal(t, False, Eval(s, 1, formula.Atom(propA, schema.FalseValueID)))
	assert.Equal(t, Unknown, Eval(s, 1, formula.Atom(propB, schema.TrueValueID)))
}

func TestEval_And(t *testing.T) {
	s := setupStore(t, map[schema.PropertyID]schema.ValueID{propA: schema.TrueValueID, propB: schema.FalseValueID})
	//
	f := formula.And(formula.Atom(propA, schema.TrueValueID), formula.Atom(propB, schema.TrueValueID))
	assert.Equal(t, False, Eval(s, 1, f))
	//
	f2 := formula.And(formula.Atom(propA, schema.TrueValueID), formula.Atom(propC, schema.TrueValueID))
	assert.Equal(t, Unknown, Eval(s, 1, f2))
	//
	f3 := formula.And(formula.Atom(propA, schema.TrueValueID), formula.Atom(propA, schema.TrueValueID))
	assert.Equal(t, True, Eval(s, 1, f3))
}

func TestEval_Or(t *testing.T) {
	s := setupStore(t, map[schema.PropertyID]schema.ValueID{propA: schema.TrueValueID, propB: schema.FalseValueID})
	//
	f := formula.Or(formula.Atom(propA, schema.TrueValueID), formula.Atom(propB, schema.TrueValueID))
	assert.Equal(t, True, Eval(s, 1, f))
	//
	f2 := formula.Or(formula.Atom(propB, schema.TrueValueID), formula.Atom(propC, schema.TrueValueID))
	assert.Equal(t, Unknown, Eval(s, 1, f2))
	//
	f3 := formula.Or(formula.Atom(propB, schema.TrueValueID), formula.Atom(propB, schema.TrueValueID))
	assert.Equal(t, False, Eval(s, 1, f3))
}

func TestEval_Empty(t *testing.T) {
	s := setupStore(t, nil)
	assert.Equal(t, True, Eval(s, 1, formula.Empty()))
}

func TestVerifyMatch_Atom(t *testing.T) {
	s := setupStore(t, map[schema.PropertyID]schema.ValueID{propA: schema.TrueValueID})
	//
	w, err := VerifyMatch(s, 1, formula.Atom(propA, schema.TrueValueID))
	require.NoError(t, err)
	require.Len(t, w, 1)
}

func TestVerifyMatch_AndConcatenates(t *testing.T) {
	s := setupStore(t, map[schema.PropertyID]schema.ValueID{propA: schema.TrueValueID, propB: schema.TrueValueID})
	//
	w, err := VerifyMatch(s, 1, formula.And(formula.Atom(propA, schema.TrueValueID), formula.Atom(propB, schema.TrueValueID)))
	require.NoError(t, err)
	require.Len(t, w, 2)
}

func TestVerifyMatch_OrTakesFirstSatisfyingChild(t *testing.T) {
	s := setupStore(t, map[schema.PropertyID]schema.ValueID{propB: schema.TrueValueID})
	//
	w, err := VerifyMatch(s, 1, formula.Or(formula.Atom(propA, schema.TrueValueID), formula.Atom(propB, schema.TrueValueID)))
	require.NoError(t, err)
	require.Len(t, w, 1)
}

func TestVerifyMatch_FailsWhenNotTrue(t *testing.T) {
	s := setupStore(t, nil)
	_, err := VerifyMatch(s, 1, formula.Atom(propA, schema.TrueValueID))
	require.Error(t, err)
	require.IsType(t, &VerifyFailedError{}, err)
}
