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
package config

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pi-base/core/pkg/logic/schema"
	"github.com/pi-base/core/pkg/logic/store"
)

func TestBootstrap_SeedsPropertiesSpacesAndTraits(t *testing.T) {
	s := store.New()
	fixture := Fixture{
		Properties: []PropertyFixture{
			{ID: 1, Name: "Compact", Slug: "compact", Values: []string{"True", "False"}},
			{ID: 2, Name: "Hausdorff", Slug: "hausdorff", Values: []string{"True", "False"}},
		},
		Spaces: []SpaceFixture{
			{ID: 1, Name: "Discrete two-point space", Slug: "discrete-two-point", Description: "Two points, all subsets open."},
		},
		Traits: []TraitFixture{
			{Space: 1, Property: "Compact", Value: "True"},
		},
	}

	require.NoError(t, Bootstrap(s, fixture))

	p, ok := s.PropertyByID(1)
	require.True(t, ok)
	require.Equal(t, "Compact", p.Name)

	trait, ok := s.GetTrait(1, 1)
	require.True(t, ok)
	require.Equal(t, schema.TrueValueID, trait.ValueID)

	d, ok := s.Description("space", 1)
	require.True(t, ok)
	require.Equal(t, "Two points, all subsets open.", d.Text)
}

func TestBootstrap_RejectsNonBooleanValue(t *testing.T) {
	s := store.New()
	fixture := Fixture{
		Properties: []PropertyFixture{
			{ID: 1, Name: "Cardinality", Values: []string{"Finite", "Infinite"}},
		},
	}

	require.Error(t, Bootstrap(s, fixture))
}

func TestParseImplications_ResolvesHumanForm(t *testing.T) {
	s := store.New()
	fixture := Fixture{
		Properties: []PropertyFixture{
			{ID: 1, Name: "Compact", Values: []string{"True", "False"}},
			{ID: 2, Name: "Hausdorff", Values: []string{"True", "False"}},
		},
		Implications: []ImplicationFixture{
			{Antecedent: "Compact", Consequent: "Hausdorff"},
		},
	}
	require.NoError(t, Bootstrap(s, fixture))

	impls, err := ParseImplications(s, fixture)
	require.NoError(t, err)
	require.Len(t, impls, 1)
	require.True(t, impls[0].Antecedent.IsAtom())
}
