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

// Package store implements an index of (space, property) -> value with
// fast lookup, plus the space/property/implication catalogs the rest of
// pkg/logic builds on: the one place state actually lives, an in-memory,
// single-process data model with Store as the seam a real persistence
// backend would be plugged in behind.
package store

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/pi-base/core/pkg/logic/implication"
	"github.com/pi-base/core/pkg/logic/schema"
)

// TraitConflictError reports an attempt to set a trait's value when a
// different value is already stored for the same (space, property).
type TraitConflictError struct {
	SpaceID    schema.SpaceID
	PropertyID schema.PropertyID
	Existing   schema.ValueID
	Attempted  schema.ValueID
}

func (e *TraitConflictError) Error() string {
	return fmt.Sprintf("trait conflict: space %d property %d already has value %d, cannot set %d",
		e.SpaceID, e.PropertyID, e.Existing, e.Attempted)
}

// Store is the single shared mutable resource holding the trait and
// implication stores. All mutating operations take Store's mutex, which
// doubles as the global write lock held around implication acceptance
// (counterexample check + save + initial trigger sweep).
type Store struct {
	mu sync.Mutex

	spaces     map[schema.SpaceID]schema.Space
	properties map[schema.PropertyID]schema.Property
	traits     map[schema.TraitID]schema.Trait
	byKey      map[traitKey]schema.TraitID // uniqueness index: (space, property) -> trait
	bySpace    map[schema.SpaceID]map[schema.TraitID]struct{}
	byProperty map[schema.PropertyID]map[schema.TraitID]struct{}

	implications map[schema.ImplicationID]implication.Implication

	descriptions   map[schema.DescriptionID]schema.Description
	descByObject   map[objectKey][]schema.DescriptionID
	edges          map[schema.TraitID]map[schema.TraitID]struct{} // consumer -> referenced traits

	nextTraitID       schema.TraitID
	nextImplicationID schema.ImplicationID
	nextDescriptionID schema.DescriptionID
}

type traitKey struct {
	space    schema.SpaceID
	property schema.PropertyID
}

type objectKey struct {
	objectType string
	objectID   uint64
}

// New constructs an empty Store.
func New() *Store {
	return &Store{
		spaces:       map[schema.SpaceID]schema.Space{},
		properties:   map[schema.PropertyID]schema.Property{},
		traits:       map[schema.TraitID]schema.Trait{},
		byKey:        map[traitKey]schema.TraitID{},
		bySpace:      map[schema.SpaceID]map[schema.TraitID]struct{}{},
		byProperty:   map[schema.PropertyID]map[schema.TraitID]struct{}{},
		implications: map[schema.ImplicationID]implication.Implication{},
		descriptions: map[schema.DescriptionID]schema.Description{},
		descByObject: map[objectKey][]schema.DescriptionID{},
		edges:        map[schema.TraitID]map[schema.TraitID]struct{}{},
	}
}

// --- Spaces -----------------------------------------------------------

// PutSpace inserts or replaces a space's metadata (not its traits).
func (s *Store) PutSpace(space schema.Space) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spaces[space.ID] = space
}

// Space looks up a space by id.
func (s *Store) Space(id schema.SpaceID) (schema.Space, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sp, ok := s.spaces[id]
	return sp, ok
}

// Spaces returns every known space, ordered by id.
func (s *Store) Spaces() []schema.Space {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]schema.Space, 0, len(s.spaces))
	for _, sp := range s.spaces {
		out = append(out, sp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// DeleteSpace removes a space and every trait attached to it: a Space owns
// its traits by back-reference, so deleting a space deletes its traits.
func (s *Store) DeleteSpace(id schema.SpaceID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.spaces, id)
	for tid := range s.bySpace[id] {
		s.deleteTraitLocked(tid)
	}
	delete(s.bySpace, id)
}

// --- Properties ---------------------------------------------------------

// PutProperty inserts or replaces a property's metadata.
func (s *Store) PutProperty(p schema.Property) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.properties[p.ID] = p
}

// PropertyByID looks up a property by id, implementing parse.Catalog.
func (s *Store) PropertyByID(id schema.PropertyID) (schema.Property, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.properties[id]
	return p, ok
}

// PropertyByName looks up a property by case-insensitive name, implementing
// parse.Catalog.
func (s *Store) PropertyByName(name string) (schema.Property, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.properties {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return schema.Property{}, false
}

// Properties returns every known property, ordered by id.
func (s *Store) Properties() []schema.Property {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]schema.Property, 0, len(s.properties))
	for _, p := range s.properties {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// --- Traits --------------------------------------------------------------

// GetTrait returns the value a space has for a property, if any.
func (s *Store) GetTrait(space schema.SpaceID, property schema.PropertyID) (schema.Trait, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getTraitLocked(space, property)
}

// GetTraitLocked is GetTrait for a caller that already holds s.Lock(), such
// as pkg/logic/consistency.AcceptImplication mid-sweep. Calling it without
// holding the lock is a race.
func (s *Store) GetTraitLocked(space schema.SpaceID, property schema.PropertyID) (schema.Trait, bool) {
	return s.getTraitLocked(space, property)
}

func (s *Store) getTraitLocked(space schema.SpaceID, property schema.PropertyID) (schema.Trait, bool) {
	id, ok := s.byKey[traitKey{space, property}]
	if !ok {
		return schema.Trait{}, false
	}
	return s.traits[id], true
}

// PutTrait inserts a new trait, or confirms an identical existing one is a
// no-op. If proof is non-empty or agent is set, a proof Description with
// the rendered proof as its text and agent as its ProofAgent is attached to
// the trait (schema.ProverAgent for a derivation, schema.UserAgent for a
// user-entered trait); with an empty proof and agent == "" no Description
// is attached.
//
// It fails with TraitConflictError if a different value is already stored
// for (space, property).
func (s *Store) PutTrait(space schema.SpaceID, property schema.PropertyID, value schema.ValueID, proof []ProofStep, agent string) (schema.Trait, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.putTraitLocked(space, property, value, proof, agent)
}

// PutTraitLocked is PutTrait for a caller that already holds s.Lock(), such
// as pkg/logic/consistency.AcceptImplication mid-sweep. Calling it without
// holding the lock is a race.
func (s *Store) PutTraitLocked(space schema.SpaceID, property schema.PropertyID, value schema.ValueID, proof []ProofStep, agent string) (schema.Trait, error) {
	return s.putTraitLocked(space, property, value, proof, agent)
}

func (s *Store) putTraitLocked(space schema.SpaceID, property schema.PropertyID, value schema.ValueID, proof []ProofStep, agent string) (schema.Trait, error) {
	if existing, ok := s.getTraitLocked(space, property); ok {
		if existing.ValueID == value {
			return existing, nil
		}
		return schema.Trait{}, &TraitConflictError{space, property, existing.ValueID, value}
	}

	s.nextTraitID++
	t := schema.Trait{ID: s.nextTraitID, SpaceID: space, PropertyID: property, ValueID: value}
	s.traits[t.ID] = t
	s.byKey[traitKey{space, property}] = t.ID

	if s.bySpace[space] == nil {
		s.bySpace[space] = map[schema.TraitID]struct{}{}
	}
	s.bySpace[space][t.ID] = struct{}{}

	if s.byProperty[property] == nil {
		s.byProperty[property] = map[schema.TraitID]struct{}{}
	}
	s.byProperty[property][t.ID] = struct{}{}

	if len(proof) > 0 || agent != "" {
		s.attachProofLocked(t.ID, proof, agent)
	}

	return t, nil
}

// DeleteTrait removes a trait. Callers are responsible for re-running
// whatever recompute sweep is needed afterward (pkg/logic/prove.AddProofs);
// Store itself only maintains its own indices.
func (s *Store) DeleteTrait(id schema.TraitID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteTraitLocked(id)
}

func (s *Store) deleteTraitLocked(id schema.TraitID) {
	t, ok := s.traits[id]
	if !ok {
		return
	}
	delete(s.traits, id)
	delete(s.byKey, traitKey{t.SpaceID, t.PropertyID})
	delete(s.bySpace[t.SpaceID], id)
	delete(s.byProperty[t.PropertyID], id)
	delete(s.edges, id)
	for _, refs := range s.edges {
		delete(refs, id)
	}
	for _, did := range s.descByObject[objectKey{"trait", uint64(id)}] {
		delete(s.descriptions, did)
	}
	delete(s.descByObject, objectKey{"trait", uint64(id)})
}

// Trait returns a trait by id.
func (s *Store) Trait(id schema.TraitID) (schema.Trait, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.traits[id]
	return t, ok
}

// Traits returns every stored trait, ordered by id.
func (s *Store) Traits() []schema.Trait {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]schema.Trait, 0, len(s.traits))
	for _, t := range s.traits {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// TraitsBySpace returns every trait id for a space, sorted ascending.
func (s *Store) TraitsBySpace(space schema.SpaceID) []schema.TraitID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedKeys(s.bySpace[space])
}

// TraitsByProperty returns every trait id for a property, sorted ascending.
func (s *Store) TraitsByProperty(property schema.PropertyID) []schema.TraitID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedKeys(s.byProperty[property])
}

func sortedKeys(m map[schema.TraitID]struct{}) []schema.TraitID {
	out := make([]schema.TraitID, 0, len(m))
	for id := range m {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// --- Proofs / descriptions ------------------------------------------------

// ProofStep is one entry of a proof trace, either a referenced trait or the
// implication applied.
type ProofStep struct {
	TraitID       *schema.TraitID
	ImplicationID *schema.ImplicationID
}

// TraitStep builds a ProofStep referencing an assumed trait.
func TraitStep(id schema.TraitID) ProofStep { return ProofStep{TraitID: &id} }

// ImplicationStep builds a ProofStep referencing the implication applied.
func ImplicationStep(id schema.ImplicationID) ProofStep { return ProofStep{ImplicationID: &id} }

// Render encodes a proof as the persisted string grammar:
// "t<id>,t<id>,i<id>,..." with a trailing comma.
func Render(steps []ProofStep) string {
	var b strings.Builder
	for _, st := range steps {
		if st.TraitID != nil {
			fmt.Fprintf(&b, "t%d,", *st.TraitID)
		} else if st.ImplicationID != nil {
			fmt.Fprintf(&b, "i%d,", *st.ImplicationID)
		}
	}
	return b.String()
}

func (s *Store) attachProofLocked(traitID schema.TraitID, proof []ProofStep, agent string) {
	s.nextDescriptionID++
	d := schema.Description{
		ID:         s.nextDescriptionID,
		ObjectType: "trait",
		ObjectID:   uint64(traitID),
		Text:       Render(proof),
		ProofAgent: agent,
	}
	s.descriptions[d.ID] = d
	key := objectKey{"trait", uint64(traitID)}
	s.descByObject[key] = append(s.descByObject[key], d.ID)

	refs := map[schema.TraitID]struct{}{}
	for _, st := range proof {
		if st.TraitID != nil {
			refs[*st.TraitID] = struct{}{}
		}
	}
	if len(refs) > 0 {
		s.edges[traitID] = refs
	}
}

// AttachDescription stores a plain (non-proof) textual description on any
// domain object, identified by its type ("space", "property", "trait",
// "implication") and id. Proofs on traits go through PutTrait instead, so
// the edge table stays in step with the proof text.
func (s *Store) AttachDescription(objectType string, objectID uint64, text string) schema.Description {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextDescriptionID++
	d := schema.Description{
		ID:         s.nextDescriptionID,
		ObjectType: objectType,
		ObjectID:   objectID,
		Text:       text,
	}
	s.descriptions[d.ID] = d
	key := objectKey{objectType, objectID}
	s.descByObject[key] = append(s.descByObject[key], d.ID)
	return d
}

// Description returns the most recently attached description for an object,
// if any.
func (s *Store) Description(objectType string, objectID uint64) (schema.Description, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := s.descByObject[objectKey{objectType, objectID}]
	if len(ids) == 0 {
		return schema.Description{}, false
	}
	return s.descriptions[ids[len(ids)-1]], true
}

// TraitProof returns the rendered proof text (and whether it is automated)
// attached to a trait, if any.
func (s *Store) TraitProof(id schema.TraitID) (schema.Description, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := s.descByObject[objectKey{"trait", uint64(id)}]
	// A trait has at most one proof description in this model: the most
	// recently attached one wins (replacing a proof replaces the whole
	// record). Plain descriptions attached alongside are skipped.
	for i := len(ids) - 1; i >= 0; i-- {
		if d := s.descriptions[ids[i]]; d.IsProof() {
			return d, true
		}
	}
	return schema.Description{}, false
}

// References returns the trait ids directly referenced by t's proof, backed
// by an edge table rather than a substring scan over proof text.
func (s *Store) References(t schema.TraitID) []schema.TraitID {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]schema.TraitID, 0, len(s.edges[t]))
	for id := range s.edges[t] {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Orphans returns the transitive set of traits that depend on t via
// automated proofs, backed by the edge table rather than a substring scan
// over proof text.
func (s *Store) Orphans(t schema.TraitID) []schema.TraitID {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Build the reverse adjacency (referenced -> consumers) once, since
	// s.edges is stored consumer -> referenced.
	consumers := map[schema.TraitID][]schema.TraitID{}
	for consumer, refs := range s.edges {
		for ref := range refs {
			consumers[ref] = append(consumers[ref], consumer)
		}
	}

	seen := map[schema.TraitID]struct{}{}
	queue := []schema.TraitID{t}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range consumers[cur] {
			if _, ok := seen[next]; ok {
				continue
			}
			seen[next] = struct{}{}
			queue = append(queue, next)
		}
	}

	out := make([]schema.TraitID, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// --- Implications ---------------------------------------------------------

// Implications returns every stored implication, ordered by id.
func (s *Store) Implications() []implication.Implication {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]implication.Implication, 0, len(s.implications))
	for _, i := range s.implications {
		out = append(out, i)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Implication looks up an implication by id.
func (s *Store) Implication(id schema.ImplicationID) (implication.Implication, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.implications[id]
	return i, ok
}

// Lock exposes the store's write lock to pkg/logic/consistency, which must
// hold it across the whole counterexample-check + save + initial-sweep
// sequence atomically, rather than just around individual Store calls.
func (s *Store) Lock()   { s.mu.Lock() }
func (s *Store) Unlock() { s.mu.Unlock() }

// PutImplicationLocked saves an implication, assuming the caller already
// holds s.Lock(). It is exported (rather than folded into a single
// SaveImplication method) because pkg/logic/consistency needs to interleave
// its own counterexample check between the lock and the save.
func (s *Store) PutImplicationLocked(i implication.Implication) implication.Implication {
	if i.ID == 0 {
		s.nextImplicationID++
		i.ID = s.nextImplicationID
	}
	s.implications[i.ID] = i
	return i
}

// DeleteImplication removes an implication. As with DeleteTrait, callers
// must re-run the recompute sweep themselves.
func (s *Store) DeleteImplication(id schema.ImplicationID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.implications, id)
}
