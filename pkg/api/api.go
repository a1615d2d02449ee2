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

// Package api exposes the read-side JSON shapes consumed by the web layer:
// arrays of spaces, properties, traits (paginated) and implications. It
// serializes, never mutates; every write path stays behind pkg/logic.
package api

import (
	"fmt"
	"strings"

	"github.com/pi-base/core/pkg/logic/formula"
	"github.com/pi-base/core/pkg/logic/schema"
	"github.com/pi-base/core/pkg/logic/store"
)

// Space is the JSON shape of one space.
type Space struct {
	ID           uint64 `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	FullyDefined bool   `json:"fully_defined"`
	Description  string `json:"description"`
}

// Property is the JSON shape of one property.
type Property struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// Trait is the JSON shape of one trait. Value carries the value's name
// rather than its id, and Auto is true iff the trait's attached description
// was produced by an automated proof agent.
type Trait struct {
	ID          uint64 `json:"id"`
	SpaceID     uint64 `json:"space_id"`
	PropertyID  uint64 `json:"property_id"`
	Value       string `json:"value"`
	Description string `json:"description"`
	Auto        bool   `json:"auto"`
}

// Implication is the JSON shape of one implication. Antecedent and
// consequent use the stored serialization with value names substituted for
// value ids: atoms as "p=VALUE_NAME", compounds as "(OP s1,s2,...)".
type Implication struct {
	ID          uint64 `json:"id"`
	Antecedent  string `json:"antecedent"`
	Consequent  string `json:"consequent"`
	Description string `json:"description"`
}

// Spaces returns every space, ordered by id.
func Spaces(s *store.Store) []Space {
	spaces := s.Spaces()
	out := make([]Space, len(spaces))
	for i, sp := range spaces {
		out[i] = Space{
			ID:           uint64(sp.ID),
			Name:         sp.Name,
			Slug:         sp.Slug,
			FullyDefined: sp.FullyDefined,
			Description:  descriptionText(s, "space", uint64(sp.ID)),
		}
	}
	return out
}

// Properties returns every property, ordered by id.
func Properties(s *store.Store) []Property {
	properties := s.Properties()
	out := make([]Property, len(properties))
	for i, p := range properties {
		out[i] = Property{
			ID:          uint64(p.ID),
			Name:        p.Name,
			Slug:        p.Slug,
			Description: descriptionText(s, "property", uint64(p.ID)),
		}
	}
	return out
}

// Traits returns the id-ordered trait list sliced to [start, end), both
// bounds clamped to the list; end <= 0 means "to the end".
func Traits(s *store.Store, start, end int) []Trait {
	traits := s.Traits()

	if end <= 0 || end > len(traits) {
		end = len(traits)
	}
	if start < 0 {
		start = 0
	}
	if start > end {
		start = end
	}

	out := make([]Trait, 0, end-start)
	for _, t := range traits[start:end] {
		out = append(out, traitShape(s, t))
	}
	return out
}

func traitShape(s *store.Store, t schema.Trait) Trait {
	description := ""
	auto := false
	if desc, ok := s.TraitProof(t.ID); ok {
		description = desc.Text
		auto = desc.Automatic()
	} else {
		description = descriptionText(s, "trait", uint64(t.ID))
	}

	return Trait{
		ID:          uint64(t.ID),
		SpaceID:     uint64(t.SpaceID),
		PropertyID:  uint64(t.PropertyID),
		Value:       valueName(s, t.PropertyID, t.ValueID),
		Description: description,
		Auto:        auto,
	}
}

// Implications returns every implication, ordered by id.
func Implications(s *store.Store) []Implication {
	implications := s.Implications()
	out := make([]Implication, len(implications))
	for i, impl := range implications {
		out[i] = Implication{
			ID:          uint64(impl.ID),
			Antecedent:  SerializeNamed(s, impl.Antecedent),
			Consequent:  SerializeNamed(s, impl.Consequent),
			Description: descriptionText(s, "implication", uint64(impl.ID)),
		}
	}
	return out
}

// SerializeNamed renders a formula in the stored grammar with each atom's
// value id replaced by its name: "3=True" rather than "3=1".
func SerializeNamed(s *store.Store, f formula.Formula) string {
	switch {
	case f.IsEmpty():
		return ""
	case f.IsAtom():
		return fmt.Sprintf("%d=%s", f.Property(), valueName(s, f.Property(), f.Value()))
	default:
		parts := make([]string, len(f.Sub()))
		for i, sf := range f.Sub() {
			parts[i] = SerializeNamed(s, sf)
		}
		return fmt.Sprintf("(%s%s)", f.Operator(), strings.Join(parts, ","))
	}
}

func valueName(s *store.Store, property schema.PropertyID, value schema.ValueID) string {
	if p, ok := s.PropertyByID(property); ok {
		for _, v := range p.Values {
			if v.ID == value {
				return v.Name
			}
		}
	}
	return fmt.Sprintf("%d", value)
}

func descriptionText(s *store.Store, objectType string, id uint64) string {
	if d, ok := s.Description(objectType, id); ok {
		return d.Text
	}
	return ""
}
