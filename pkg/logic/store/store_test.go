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
package store

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pi-base/core/pkg/logic/schema"
	"github.com/pi-base/core/pkg/util/assert"
)

func TestPutTrait_NoOpOnIdenticalRepeat(t *testing.T) {
	s := New()
	tr1, err := s.PutTrait(1, 2, schema.TrueValueID, nil, "")
	require.NoError(t, err)
	//
	tr2, err := s.PutTrait(1, 2, schema.TrueValueID, nil, "")
	require.NoError(t, err)
	assert.Equal(t, tr1.ID, tr2.ID)
}

func TestPutTrait_ConflictOnDifferentValue(t *testing.T) {
	s := New()
	_, err := s.PutTrait(1, 2, schema.TrueValueID, nil, "")
	require.NoError(t, err)
	//
	_, err = s.PutTrait(1, 2, schema.FalseValueID, nil, "")
	require.Error(t, err)
	require.IsType(t, &TraitConflictError{}, err)
}

func TestDeleteSpace_CascadesTraits(t *testing.T) {
	s := New()
	_, err := s.PutTrait(1, 2, schema.TrueValueID, nil, "")
	require.NoError(t, err)
	//
	s.DeleteSpace(1)
	_, ok := s.GetTrait(1, 2)
	require.False(t, ok)
}

func TestOrphans_TransitiveDependency(t *testing.T) {
	s := New()
	a, err := s.PutTrait(1, 1, schema.TrueValueID, nil, "")
	require.NoError(t, err)
	//
	b, err := s.PutTrait(1, 2, schema.TrueValueID, []ProofStep{TraitStep(a.ID)}, schema.ProverAgent)
	require.NoError(t, err)
	//
	c, err := s.PutTrait(1, 3, schema.TrueValueID, []ProofStep{TraitStep(b.ID)}, schema.ProverAgent)
	require.NoError(t, err)
	//
	orphans := s.Orphans(a.ID)
	assert.Equal(t, 2, len(orphans))
	require.Contains(t, orphans, b.ID)
	require.Contains(t, orphans, c.ID)
}

func TestTraits_OrderedByID(t *testing.T) {
	s := New()
	spaces := SyntheticSpaces(s, 3)
	for _, sp := range spaces {
		_, err := s.PutTrait(sp.ID, 1, schema.TrueValueID, nil, "")
		require.NoError(t, err)
	}
	//
	traits := s.Traits()
	assert.Equal(t, 3, len(traits))
	for i, tr := range traits {
		assert.Equal(t, schema.TraitID(i+1), tr.ID)
	}
}

func TestDescription_LatestWins(t *testing.T) {
	s := New()
	s.PutSpace(schema.Space{ID: 1, Name: "Arens-Fort space", Slug: "arens-fort"})
	//
	s.AttachDescription("space", 1, "first draft")
	s.AttachDescription("space", 1, "revised")
	//
	d, ok := s.Description("space", 1)
	require.True(t, ok)
	assert.Equal(t, "revised", d.Text)
	require.False(t, d.IsProof())
}

// A plain description attached after a proof does not shadow the proof.
func TestTraitProof_SkipsPlainDescriptions(t *testing.T) {
	s := New()
	a, err := s.PutTrait(1, 1, schema.TrueValueID, nil, "")
	require.NoError(t, err)
	//
	b, err := s.PutTrait(1, 2, schema.TrueValueID, []ProofStep{TraitStep(a.ID)}, schema.ProverAgent)
	require.NoError(t, err)
	s.AttachDescription("trait", uint64(b.ID), "editorial note")
	//
	d, ok := s.TraitProof(b.ID)
	require.True(t, ok)
	assert.Equal(t, "t1,", d.Text)
	require.True(t, d.Automatic())
}

func TestRender_TrailingComma(t *testing.T) {
	tid := schema.TraitID(4)
	iid := schema.ImplicationID(7)
	//
	s := Render([]ProofStep{TraitStep(1), ImplicationStep(iid), TraitStep(tid)})
	assert.Equal(t, "t1,i7,t4,", s)
}
