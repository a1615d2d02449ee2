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
package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pi-base/core/pkg/logic/consistency"
	"github.com/pi-base/core/pkg/logic/formula"
	"github.com/pi-base/core/pkg/logic/implication"
	"github.com/pi-base/core/pkg/logic/schema"
	"github.com/pi-base/core/pkg/logic/store"
)

const (
	propA schema.PropertyID = 1
	propB schema.PropertyID = 2
)

func newCatalog(t *testing.T) *store.Store {
	t.Helper()
	s := store.New()
	trueValue, falseValue := schema.NewBooleanValues()
	s.PutProperty(schema.Property{ID: propA, Name: "Compact", Slug: "compact", Values: []schema.Value{trueValue, falseValue}})
	s.PutProperty(schema.Property{ID: propB, Name: "Connected", Slug: "connected", Values: []schema.Value{trueValue, falseValue}})
	s.PutSpace(schema.Space{ID: 1, Name: "Sierpinski space", Slug: "sierpinski-space", FullyDefined: true})
	return s
}

func TestSpaces(t *testing.T) {
	s := newCatalog(t)
	s.AttachDescription("space", 1, "The two-point space with one open point.")

	spaces := Spaces(s)
	require.Len(t, spaces, 1)
	require.Equal(t, uint64(1), spaces[0].ID)
	require.Equal(t, "sierpinski-space", spaces[0].Slug)
	require.True(t, spaces[0].FullyDefined)
	require.Equal(t, "The two-point space with one open point.", spaces[0].Description)

	// The wire shape uses the agreed field names.
	data, err := json.Marshal(spaces)
	require.NoError(t, err)
	require.Contains(t, string(data), `"fully_defined":true`)
}

func TestProperties(t *testing.T) {
	s := newCatalog(t)
	properties := Properties(s)
	require.Len(t, properties, 2)
	require.Equal(t, "Compact", properties[0].Name)
	require.Equal(t, "connected", properties[1].Slug)
}

// A derived trait reports auto=true and carries its proof text; a
// user-entered trait reports auto=false.
func TestTraits_AutoDistinguishesDerived(t *testing.T) {
	s := newCatalog(t)
	_, err := s.PutTrait(1, propA, schema.TrueValueID, nil, schema.UserAgent)
	require.NoError(t, err)

	i := implication.Implication{
		Antecedent: formula.Atom(propA, schema.TrueValueID),
		Consequent: formula.Atom(propB, schema.TrueValueID),
	}
	_, err = consistency.AcceptImplication(s, i, []schema.SpaceID{1})
	require.NoError(t, err)

	traits := Traits(s, 0, 0)
	require.Len(t, traits, 2)

	require.False(t, traits[0].Auto)
	require.Equal(t, "True", traits[0].Value)

	require.True(t, traits[1].Auto)
	require.Equal(t, uint64(propB), traits[1].PropertyID)
	require.Contains(t, traits[1].Description, "t1,")
	require.Contains(t, traits[1].Description, "i1,")
}

func TestTraits_Pagination(t *testing.T) {
	s := store.New()
	trueValue, falseValue := schema.NewBooleanValues()
	s.PutProperty(schema.Property{ID: propA, Name: "Compact", Slug: "compact", Values: []schema.Value{trueValue, falseValue}})

	spaces := store.SyntheticSpaces(s, 10)
	for _, sp := range spaces {
		_, err := s.PutTrait(sp.ID, propA, schema.TrueValueID, nil, schema.UserAgent)
		require.NoError(t, err)
	}

	page := Traits(s, 3, 7)
	require.Len(t, page, 4)
	require.Equal(t, uint64(4), page[0].ID)
	require.Equal(t, uint64(7), page[3].ID)

	// Out-of-range bounds clamp rather than panic.
	require.Len(t, Traits(s, 8, 100), 2)
	require.Empty(t, Traits(s, 100, 200))
}

func TestImplications_NamedSerialization(t *testing.T) {
	s := newCatalog(t)
	i := implication.Implication{
		Antecedent: formula.Atom(propA, schema.TrueValueID),
		Consequent: formula.And(formula.Atom(propB, schema.TrueValueID), formula.Atom(propA, schema.TrueValueID)),
	}
	saved, err := consistency.AcceptImplication(s, i, nil)
	require.NoError(t, err)
	s.AttachDescription("implication", uint64(saved.ID), "Compactness forces connectedness here.")

	implications := Implications(s)
	require.Len(t, implications, 1)
	require.Equal(t, "1=True", implications[0].Antecedent)
	require.Equal(t, "(&2=True,1=True)", implications[0].Consequent)
	require.Equal(t, "Compactness forces connectedness here.", implications[0].Description)
}
