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

// Package parse converts both the persistence grammar and the human-entry
// grammar into formula.Formula values. Stored-form parsing is a thin
// re-export of pkg/logic/formula.ParseStored (the grammar lives there, next
// to its serializer, so the two stay in lock-step); this package's own
// logic is the human grammar used by search and implication entry.
package parse

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/pi-base/core/pkg/logic/formula"
	"github.com/pi-base/core/pkg/logic/schema"
)

// Catalog resolves property/value names (or numeric ids) for the human
// parser. pkg/logic/store implements this against live data; tests can
// supply an in-memory stand-in.
type Catalog interface {
	PropertyByID(schema.PropertyID) (schema.Property, bool)
	PropertyByName(name string) (schema.Property, bool)
}

// ParseError reports a malformed human-form formula string, with enough
// context (the offending substring) for the caller to echo back to the
// user verbatim.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse formula %q: %s", e.Input, e.Reason)
}

// MixedOperatorsError is returned when a human-form formula mixes '+' (AND)
// and '|' (OR) separators, which is disallowed.
type MixedOperatorsError struct {
	Input string
}

func (e *MixedOperatorsError) Error() string {
	return fmt.Sprintf("parse formula %q: mixed '+' and '|' operators are not supported", e.Input)
}

// UnknownPropertyError is returned when an atom names a property the catalog
// does not recognise.
type UnknownPropertyError struct {
	Name string
}

func (e *UnknownPropertyError) Error() string {
	return fmt.Sprintf("unknown property %q", e.Name)
}

// UnknownValueError is returned when an atom names a value the catalog does
// not recognise for the resolved property.
type UnknownValueError struct {
	Property string
	Name     string
}

func (e *UnknownValueError) Error() string {
	return fmt.Sprintf("unknown value %q for property %q", e.Name, e.Property)
}

// StoredToFormula parses the persistence grammar into a Formula. It is a
// direct re-export of formula.ParseStored.
func StoredToFormula(s string) (formula.Formula, error) {
	return formula.ParseStored(s)
}

// FormulaToStored is the inverse of StoredToFormula, a direct re-export of
// formula.Serialize.
func FormulaToStored(f formula.Formula) string {
	return formula.Serialize(f)
}

// stripMarks strips combining diacritics: decompose to NFD, drop every
// rune in the Unicode "Mark, Nonspacing" category, recompose to NFC. This
// folds accented property/value names entered by hand (e.g. "café") onto
// their unaccented catalog entries.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// HumanToFormula converts a human-entered search/implication string into a
// Formula. Atoms may be written as "P", "~P", "not P", "P=V" or
// "P = V" (case-insensitive, numeric ids also accepted); sub-formulae are
// joined by a single operator, '+' (AND) or '|' (OR), never both.
func HumanToFormula(input string, catalog Catalog) (formula.Formula, error) {
	stripped, _, err := transform.String(stripMarks, input)
	if err != nil {
		return formula.Formula{}, &ParseError{input, "failed to normalize unicode: " + err.Error()}
	}
	//
	s := strings.TrimSpace(stripped)
	if s == "" {
		return formula.Formula{}, &ParseError{input, "empty formula"}
	}
	//
	// Trim a single trailing separator, e.g. "A + B +" -> "A + B".
	if last := s[len(s)-1]; last == '+' || last == '|' {
		s = strings.TrimSpace(s[:len(s)-1])
	}
	//
	hasAnd := strings.Contains(s, "+")
	hasOr := strings.Contains(s, "|")
	//
	if hasAnd && hasOr {
		return formula.Formula{}, &MixedOperatorsError{input}
	}
	//
	var separator byte
	var op formula.Operator
	//
	switch {
	case hasAnd:
		separator, op = '+', formula.AND
	case hasOr:
		separator, op = '|', formula.OR
	}
	//
	var atoms []string
	if separator == 0 {
		atoms = []string{s}
	} else {
		atoms = strings.Split(s, string(separator))
	}
	//
	sub := make([]formula.Formula, len(atoms))
	//
	for i, a := range atoms {
		af, err := parseHumanAtom(strings.TrimSpace(a), catalog)
		if err != nil {
			return formula.Formula{}, err
		}
		//
		sub[i] = af
	}
	//
	if separator == 0 {
		return sub[0], nil
	}
	//
	return applyOperator(op, sub)
}

func applyOperator(op formula.Operator, sub []formula.Formula) (formula.Formula, error) {
	if op == formula.AND {
		return formula.And(sub...), nil
	}
	return formula.Or(sub...), nil
}

// deatomize splits an atom token into its (property, value) textual parts:
// "~P" and "not P" both mean P=False; a bare "P" means P=True; "P=V" is
// explicit.
func deatomize(a string) (pstr, vstr string) {
	if idx := strings.IndexByte(a, '='); idx >= 0 {
		return strings.TrimSpace(a[:idx]), strings.TrimSpace(a[idx+1:])
	} else if strings.HasPrefix(a, "~") {
		return strings.TrimSpace(a[1:]), "~"
	} else if len(a) >= 4 && strings.EqualFold(a[:4], "not ") {
		return strings.TrimSpace(a[4:]), "~"
	}
	return a, "+"
}

func parseHumanAtom(a string, catalog Catalog) (formula.Formula, error) {
	if a == "" {
		return formula.Formula{}, &ParseError{a, "empty atom"}
	}
	//
	pstr, vstr := deatomize(a)
	//
	property, ok := lookupProperty(pstr, catalog)
	if !ok {
		return formula.Formula{}, &UnknownPropertyError{pstr}
	}
	//
	value, ok := lookupValue(property, vstr)
	if !ok {
		return formula.Formula{}, &UnknownValueError{property.Name, vstr}
	}
	//
	return formula.Atom(property.ID, value.ID), nil
}

func lookupProperty(pstr string, catalog Catalog) (schema.Property, bool) {
	if id, err := strconv.ParseUint(pstr, 10, 64); err == nil {
		return catalog.PropertyByID(schema.PropertyID(id))
	}
	//
	return catalog.PropertyByName(pstr)
}

func lookupValue(property schema.Property, vstr string) (schema.Value, bool) {
	switch vstr {
	case "+":
		return lookupExact(property, schema.TrueValueID)
	case "~", "-":
		return lookupExact(property, schema.FalseValueID)
	}
	//
	if id, err := strconv.ParseUint(vstr, 10, 64); err == nil {
		return lookupExact(property, schema.ValueID(id))
	}
	//
	return property.ValueNamed(vstr)
}

func lookupExact(property schema.Property, id schema.ValueID) (schema.Value, bool) {
	for _, v := range property.Values {
		if v.ID == id {
			return v, true
		}
	}
	return schema.Value{}, false
}
