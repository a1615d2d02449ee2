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
package parse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pi-base/core/pkg/logic/formula"
	"github.com/pi-base/core/pkg/logic/schema"
)

type fakeCatalog struct {
	byName map[string]schema.Property
	byID   map[schema.PropertyID]schema.Property
}

func newFakeCatalog(props ...schema.Property) *fakeCatalog {
	c := &fakeCatalog{byName: map[string]schema.Property{}, byID: map[schema.PropertyID]schema.Property{}}
	for _, p := range props {
		c.byName[strings.ToLower(p.Name)] = p
		c.byID[p.ID] = p
	}
	return c
}

func (c *fakeCatalog) PropertyByID(id schema.PropertyID) (schema.Property, bool) {
	p, ok := c.byID[id]
	return p, ok
}

func (c *fakeCatalog) PropertyByName(name string) (schema.Property, bool) {
	p, ok := c.byName[strings.ToLower(name)]
	return p, ok
}

func boolProperty(id schema.PropertyID, name string) schema.Property {
	t, f := schema.NewBooleanValues()
	return schema.Property{ID: id, Name: name, Slug: strings.ToLower(name), Values: []schema.Value{t, f}}
}

func TestHumanToFormula_BareAtomIsTrue(t *testing.T) {
	catalog := newFakeCatalog(boolProperty(1, "Compact"))
	//
	f, err := HumanToFormula("Compact", catalog)
	require.NoError(t, err)
	require.True(t, f.IsAtom())
	require.Equal(t, schema.TrueValueID, f.Value())
}

func TestHumanToFormula_TildeIsFalse(t *testing.T) {
	catalog := newFakeCatalog(boolProperty(1, "Compact"))
	//
	f, err := HumanToFormula("~Compact", catalog)
	require.NoError(t, err)
	require.Equal(t, schema.FalseValueID, f.Value())
}

func TestHumanToFormula_NotPrefixIsFalse(t *testing.T) {
	catalog := newFakeCatalog(boolProperty(1, "Compact"))
	//
	f, err := HumanToFormula("not Compact", catalog)
	require.NoError(t, err)
	require.Equal(t, schema.FalseValueID, f.Value())
}

func TestHumanToFormula_ExplicitEquals(t *testing.T) {
	catalog := newFakeCatalog(boolProperty(1, "Compact"))
	//
	f, err := HumanToFormula("Compact = False", catalog)
	require.NoError(t, err)
	require.Equal(t, schema.FalseValueID, f.Value())
}

func TestHumanToFormula_ConjunctionAndTrailingSeparator(t *testing.T) {
	catalog := newFakeCatalog(boolProperty(1, "Compact"), boolProperty(2, "Hausdorff"))
	//
	f, err := HumanToFormula("Compact + Hausdorff +", catalog)
	require.NoError(t, err)
	require.True(t, f.IsCompound())
	require.Equal(t, formula.AND, f.Operator())
	require.Len(t, f.Sub(), 2)
}

func TestHumanToFormula_Disjunction(t *testing.T) {
	catalog := newFakeCatalog(boolProperty(1, "Compact"), boolProperty(2, "Hausdorff"))
	//
	f, err := HumanToFormula("Compact | ~Hausdorff", catalog)
	require.NoError(t, err)
	require.Equal(t, formula.OR, f.Operator())
}

func TestHumanToFormula_MixedOperatorsRejected(t *testing.T) {
	catalog := newFakeCatalog(boolProperty(1, "Compact"), boolProperty(2, "Hausdorff"))
	//
	_, err := HumanToFormula("Compact + Hausdorff | Compact", catalog)
	require.Error(t, err)
	require.IsType(t, &MixedOperatorsError{}, err)
}

func TestHumanToFormula_UnknownProperty(t *testing.T) {
	catalog := newFakeCatalog()
	//
	_, err := HumanToFormula("Nonexistent", catalog)
	require.Error(t, err)
	require.IsType(t, &UnknownPropertyError{}, err)
}

func TestHumanToFormula_UnknownValue(t *testing.T) {
	catalog := newFakeCatalog(boolProperty(1, "Compact"))
	//
	_, err := HumanToFormula("Compact = Maybe", catalog)
	require.Error(t, err)
	require.IsType(t, &UnknownValueError{}, err)
}

func TestHumanToFormula_StripsDiacritics(t *testing.T) {
	catalog := newFakeCatalog(boolProperty(1, "Metrizable"))
	//
	f, err := HumanToFormula("Mëtrizablé", catalog)
	require.NoError(t, err)
	require.True(t, f.IsAtom())
}

func TestStoredRoundTripViaParsePackage(t *testing.T) {
	f := formula.And(formula.Atom(1, schema.TrueValueID), formula.Atom(2, schema.FalseValueID))
	//
	s := FormulaToStored(f)
	got, err := StoredToFormula(s)
	require.NoError(t, err)
	require.True(t, f.Equal(got))
}
