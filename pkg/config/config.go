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

// Package config loads YAML fixtures describing spaces, properties,
// traits and implications, and bootstraps a pkg/logic/store.Store from
// them.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/pi-base/core/pkg/logic/implication"
	"github.com/pi-base/core/pkg/logic/parse"
	"github.com/pi-base/core/pkg/logic/schema"
	"github.com/pi-base/core/pkg/logic/store"
)

// PropertyFixture describes one property and its value-set in a YAML
// fixture file.
type PropertyFixture struct {
	ID          schema.PropertyID `yaml:"id"`
	Name        string             `yaml:"name"`
	Slug        string             `yaml:"slug"`
	Values      []string           `yaml:"values"`
	Description string             `yaml:"description"`
}

// SpaceFixture describes one space.
type SpaceFixture struct {
	ID           schema.SpaceID `yaml:"id"`
	Name         string          `yaml:"name"`
	Slug         string          `yaml:"slug"`
	FullyDefined bool            `yaml:"fully_defined"`
	Description  string          `yaml:"description"`
}

// TraitFixture describes one trait, with the property/value named
// human-readably rather than by id, for fixture readability.
type TraitFixture struct {
	Space    schema.SpaceID `yaml:"space"`
	Property string          `yaml:"property"`
	Value    string          `yaml:"value"`
}

// ImplicationFixture describes one implication in human formula syntax,
// resolved against the catalog at load time.
type ImplicationFixture struct {
	Antecedent string `yaml:"antecedent"`
	Consequent string `yaml:"consequent"`
}

// Fixture is the top-level shape of a config/seed YAML file.
type Fixture struct {
	Properties   []PropertyFixture    `yaml:"properties"`
	Spaces       []SpaceFixture       `yaml:"spaces"`
	Traits       []TraitFixture       `yaml:"traits"`
	Implications []ImplicationFixture `yaml:"implications"`
}

// LoadFixture parses a YAML fixture file from path.
func LoadFixture(path string) (Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("read fixture %s: %w", path, err)
	}

	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Fixture{}, fmt.Errorf("parse fixture %s: %w", path, err)
	}

	return f, nil
}

// Bootstrap seeds an empty store with the two canonical boolean values,
// then loads properties, spaces and traits from fixture.
// Implications are accepted via consistency.AcceptImplication by the
// caller, not here: Bootstrap only populates the catalog and trait data a
// fixture's implications will be parsed against.
func Bootstrap(s *store.Store, fixture Fixture) error {
	trueValue, falseValue := schema.NewBooleanValues()

	for _, pf := range fixture.Properties {
		values := make([]schema.Value, 0, len(pf.Values))
		for _, name := range pf.Values {
			switch name {
			case trueValue.Name:
				values = append(values, trueValue)
			case falseValue.Name:
				values = append(values, falseValue)
			default:
				return fmt.Errorf("property %q: unsupported value %q (only boolean values are supported)", pf.Name, name)
			}
		}

		s.PutProperty(schema.Property{ID: pf.ID, Name: pf.Name, Slug: pf.Slug, Values: values})
		if pf.Description != "" {
			s.AttachDescription("property", uint64(pf.ID), pf.Description)
		}
	}

	for _, sf := range fixture.Spaces {
		s.PutSpace(schema.Space{ID: sf.ID, Name: sf.Name, Slug: sf.Slug, FullyDefined: sf.FullyDefined})
		if sf.Description != "" {
			s.AttachDescription("space", uint64(sf.ID), sf.Description)
		}
	}

	for _, tf := range fixture.Traits {
		property, ok := s.PropertyByName(tf.Property)
		if !ok {
			return fmt.Errorf("trait on space %d: unknown property %q", tf.Space, tf.Property)
		}

		value, ok := property.ValueNamed(tf.Value)
		if !ok {
			return fmt.Errorf("trait on space %d: unknown value %q for property %q", tf.Space, tf.Value, tf.Property)
		}

		if _, err := s.PutTrait(tf.Space, property.ID, value.ID, nil, schema.UserAgent); err != nil {
			return fmt.Errorf("trait on space %d property %q: %w", tf.Space, tf.Property, err)
		}
	}

	return nil
}

// ParseImplications resolves a fixture's human-form implications against
// the store's catalog, without yet accepting them (callers run each
// through consistency.AcceptImplication so the counterexample check and
// trigger sweep happen under the store's write lock).
func ParseImplications(s *store.Store, fixture Fixture) ([]implication.Implication, error) {
	out := make([]implication.Implication, 0, len(fixture.Implications))

	for _, impFixture := range fixture.Implications {
		antecedent, err := parse.HumanToFormula(impFixture.Antecedent, s)
		if err != nil {
			return nil, fmt.Errorf("implication antecedent %q: %w", impFixture.Antecedent, err)
		}

		consequent, err := parse.HumanToFormula(impFixture.Consequent, s)
		if err != nil {
			return nil, fmt.Errorf("implication consequent %q: %w", impFixture.Consequent, err)
		}

		out = append(out, implication.Implication{Antecedent: antecedent, Consequent: consequent})
	}

	return out, nil
}
