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
package formula

import (
	"testing"

	"github.com/pi-base/core/pkg/logic/schema"
	"github.com/pi-base/core/pkg/util/assert"
	"github.com/stretchr/testify/require"
)

const (
	propA schema.PropertyID = 1
	propB schema.PropertyID = 2
	propC schema.PropertyID = 3
)

func Test_Atom_IsAtomAndLen(t *testing.T) {
	a1 := Atom(propA, schema.TrueValueID)
	conj := And(a1, Atom(propA, schema.TrueValueID))
	//
	assert.Equal(t, true, a1.IsAtom())
	assert.Equal(t, 1, a1.Len())
	assert.Equal(t, false, conj.IsAtom())
	assert.Equal(t, 3, conj.Len())
}

func Test_And_FlattensAndCounts(t *testing.T) {
	a1 := Atom(propA, schema.TrueValueID)
	a2 := Atom(propB, schema.TrueValueID)
	//
	f := Or(And(a1, a2, a1), a2)
	//
	require.False(t, f.IsAtom())
	require.True(t, f.IsCompound())
	require.Equal(t, OR, f.Operator())
	assert.Equal(t, 6, f.Len())
}

func Test_Negate_DeMorgan(t *testing.T) {
	conj := And(Atom(propA, schema.TrueValueID), Atom(propB, schema.TrueValueID))
	//
	disj, err := conj.Negate()
	require.NoError(t, err)
	require.True(t, disj.IsCompound())
	require.Equal(t, OR, disj.Operator())
	//
	first := disj.Sub()[0]
	assert.Equal(t, propA, first.Property())
	assert.Equal(t, schema.FalseValueID, first.Value())
}

func Test_Negate_DoubleNegationIsStructural(t *testing.T) {
	f := Or(Atom(propA, schema.TrueValueID), And(Atom(propB, schema.FalseValueID), Atom(propC, schema.TrueValueID)))
	//
	once, err := f.Negate()
	require.NoError(t, err)
	twice, err := once.Negate()
	require.NoError(t, err)
	//
	require.True(t, f.Equal(twice))
}

func Test_Negate_EmptyIsUnsupported(t *testing.T) {
	_, err := Empty().Negate()
	require.Error(t, err)
}

func Test_Empty(t *testing.T) {
	a1 := Atom(propA, schema.TrueValueID)
	conj := And(a1, Atom(propB, schema.TrueValueID))
	//
	assert.Equal(t, true, Empty().IsEmpty())
	assert.Equal(t, false, a1.IsEmpty())
	assert.Equal(t, false, conj.IsEmpty())
}

func Test_Compound_CollapsesSingleton(t *testing.T) {
	a1 := Atom(propA, schema.TrueValueID)
	//
	f := And(a1)
	require.True(t, f.IsAtom())
	require.True(t, f.Equal(a1))
}

func Test_Render_AtomAndCompound(t *testing.T) {
	f := And(Atom(propA, schema.TrueValueID), Atom(propB, schema.FalseValueID))
	//
	assert.Equal(t, "(1 & ~2)", Render(f, RenderOptions{}))
}

func Test_Serialize_RoundTrip(t *testing.T) {
	cases := []Formula{
		Empty(),
		Atom(propA, schema.TrueValueID),
		And(Atom(propA, schema.TrueValueID), Atom(propB, schema.FalseValueID)),
		Or(Atom(propA, schema.TrueValueID), And(Atom(propB, schema.TrueValueID), Atom(propC, schema.FalseValueID))),
	}
	//
	for _, f := range cases {
		s := Serialize(f)
		//
		got, err := ParseStored(s)
		require.NoError(t, err)
		require.True(t, f.Equal(got), "round trip mismatch for %q", s)
		require.Equal(t, s, Serialize(got))
	}
}

func Test_ParseStored_RejectsSingletonCompound(t *testing.T) {
	_, err := ParseStored("(&1=1)")
	require.Error(t, err)
}
