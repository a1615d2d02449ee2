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

// Package match finds every space (among a candidate set) where a formula
// evaluates to a target truth value, via sorted-id-set union/intersection
// rather than per-space evaluation. For true and false targets the target
// is never flipped between parent and child: AND against true and OR
// against false intersect their children's results, the other two
// combinations take the union. A compound against the unknown target is
// the set of candidates where it matches neither true nor false.
package match

import (
	"sort"

	"github.com/pi-base/core/pkg/logic/eval"
	"github.com/pi-base/core/pkg/logic/formula"
	"github.com/pi-base/core/pkg/logic/schema"
)

// Traits is the read-only trait lookup SpacesMatching needs.
type Traits interface {
	GetTrait(space schema.SpaceID, property schema.PropertyID) (schema.Trait, bool)
}

// SpacesMatching returns the sorted ids (subset of candidates) for which
// eval(S, F) == target.
func SpacesMatching(traits Traits, f formula.Formula, target eval.Value, candidates []schema.SpaceID) []schema.SpaceID {
	sorted := append([]schema.SpaceID(nil), candidates...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	switch {
	case f.IsEmpty():
		if target == eval.True {
			return sorted
		}
		return nil
	case f.IsAtom():
		return matchAtom(traits, f, target, sorted)
	default:
		return matchCompound(traits, f, target, sorted)
	}
}

func matchAtom(traits Traits, f formula.Formula, target eval.Value, candidates []schema.SpaceID) []schema.SpaceID {
	var out []schema.SpaceID

	switch target {
	case eval.True:
		for _, s := range candidates {
			if t, ok := traits.GetTrait(s, f.Property()); ok && t.ValueID == f.Value() {
				out = append(out, s)
			}
		}
	case eval.Unknown:
		for _, s := range candidates {
			if _, ok := traits.GetTrait(s, f.Property()); !ok {
				out = append(out, s)
			}
		}
	default: // False
		negated, err := schema.Negate(f.Value())
		if err != nil {
			// Non-boolean atom: unsupported by this matcher. No space can
			// match a "false" target we cannot express.
			return nil
		}
		for _, s := range candidates {
			if t, ok := traits.GetTrait(s, f.Property()); ok && t.ValueID == negated {
				out = append(out, s)
			}
		}
	}

	return out
}

func matchCompound(traits Traits, f formula.Formula, target eval.Value, candidates []schema.SpaceID) []schema.SpaceID {
	if target == eval.Unknown {
		// A compound is unknown exactly where it is neither true nor false.
		decided := map[schema.SpaceID]struct{}{}
		for _, known := range []eval.Value{eval.True, eval.False} {
			for _, s := range matchCompound(traits, f, known, candidates) {
				decided[s] = struct{}{}
			}
		}
		var out []schema.SpaceID
		for _, s := range candidates {
			if _, ok := decided[s]; !ok {
				out = append(out, s)
			}
		}
		return out
	}

	results := make([][]schema.SpaceID, len(f.Sub()))
	for i, sf := range f.Sub() {
		results[i] = SpacesMatching(traits, sf, target, candidates)
	}

	useIntersection := (f.Operator() == formula.AND) == (target == eval.True)
	if useIntersection {
		return intersection(results)
	}
	return union(results)
}

// intersection returns the sorted intersection of a list of sorted id
// lists.
func intersection(lists [][]schema.SpaceID) []schema.SpaceID {
	if len(lists) == 0 {
		return nil
	}

	counts := map[schema.SpaceID]int{}
	for _, l := range lists {
		seen := map[schema.SpaceID]struct{}{}
		for _, id := range l {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			counts[id]++
		}
	}

	var out []schema.SpaceID
	for id, c := range counts {
		if c == len(lists) {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// union returns the sorted union of a list of sorted id lists.
func union(lists [][]schema.SpaceID) []schema.SpaceID {
	seen := map[schema.SpaceID]struct{}{}
	for _, l := range lists {
		for _, id := range l {
			seen[id] = struct{}{}
		}
	}

	out := make([]schema.SpaceID, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
