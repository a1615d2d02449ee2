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
	"fmt"
	"strconv"
	"strings"

	"github.com/pi-base/core/pkg/logic/schema"
)

// Serialize renders a formula in the persistence grammar:
//
//	formula := atom | compound | empty
//	atom    := <property-id> '=' <value-id>
//	compound:= '(' OP subs ')'
//	OP      := '&' | '|'
//	subs    := formula (',' formula)+
//	empty   := ''
func Serialize(f Formula) string {
	switch f.kind {
	case kindEmpty:
		return ""
	case kindAtom:
		return fmt.Sprintf("%d=%d", f.property, f.value)
	default:
		parts := make([]string, len(f.sub))
		//
		for i, sf := range f.sub {
			parts[i] = Serialize(sf)
		}
		//
		return fmt.Sprintf("(%s%s)", f.operator, strings.Join(parts, ","))
	}
}

// ParseStoredError reports a malformed stored-form formula string, keeping
// enough context for the caller to echo back a useful message.
type ParseStoredError struct {
	Input string
	Msg   string
}

func (e *ParseStoredError) Error() string {
	return fmt.Sprintf("malformed stored formula %q: %s", e.Input, e.Msg)
}

// ParseStored is the inverse of Serialize: it parses the persistence grammar
// back into a Formula. It does not flatten nested ANDs of ANDs beyond what
// the grammar already expresses, since Serialize never produces them.
func ParseStored(s string) (Formula, error) {
	if s == "" {
		return Empty(), nil
	}
	//
	f, rest, err := parseStored(s)
	if err != nil {
		return Formula{}, err
	} else if rest != "" {
		return Formula{}, &ParseStoredError{s, "unexpected trailing input " + strconv.Quote(rest)}
	}
	//
	return f, nil
}

func parseStored(s string) (Formula, string, error) {
	if strings.HasPrefix(s, "(") {
		return parseStoredCompound(s)
	}
	//
	return parseStoredAtom(s)
}

func parseStoredCompound(s string) (Formula, string, error) {
	op, rest := s[1], s[2:]
	//
	var operator Operator
	//
	switch op {
	case '&':
		operator = AND
	case '|':
		operator = OR
	default:
		return Formula{}, "", &ParseStoredError{s, fmt.Sprintf("unknown operator %q", op)}
	}
	//
	var sub []Formula
	//
	for {
		sf, tail, err := parseStored(rest)
		if err != nil {
			return Formula{}, "", err
		}
		//
		sub = append(sub, sf)
		rest = tail
		//
		if strings.HasPrefix(rest, ",") {
			rest = rest[1:]
			continue
		} else if strings.HasPrefix(rest, ")") {
			rest = rest[1:]
			break
		}
		//
		return Formula{}, "", &ParseStoredError{s, "expected ',' or ')'"}
	}
	//
	if len(sub) < 2 {
		return Formula{}, "", &ParseStoredError{s, "compound formula requires at least two sub-formulae"}
	}
	//
	return Formula{kind: kindCompound, operator: operator, sub: sub}, rest, nil
}

func parseStoredAtom(s string) (Formula, string, error) {
	// An atom's extent runs until the next ',' or ')' that closes an
	// enclosing compound, or the end of the string.
	i := strings.IndexAny(s, ",)")
	//
	var atomStr, rest string
	if i < 0 {
		atomStr, rest = s, ""
	} else {
		atomStr, rest = s[:i], s[i:]
	}
	//
	eq := strings.IndexByte(atomStr, '=')
	if eq < 0 {
		return Formula{}, "", &ParseStoredError{s, "expected 'property=value' atom"}
	}
	//
	pid, err := strconv.ParseUint(atomStr[:eq], 10, 64)
	if err != nil {
		return Formula{}, "", &ParseStoredError{s, "invalid property id: " + err.Error()}
	}
	//
	vid, err := strconv.ParseUint(atomStr[eq+1:], 10, 64)
	if err != nil {
		return Formula{}, "", &ParseStoredError{s, "invalid value id: " + err.Error()}
	}
	//
	return Atom(schema.PropertyID(pid), schema.ValueID(vid)), rest, nil
}
