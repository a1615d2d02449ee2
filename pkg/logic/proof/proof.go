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

// Package proof implements structured and textual rendering of proof
// traces, and the full-proof DAG export. The node-id generator is scoped
// to a single call (a local counter) rather than a package-level global,
// so concurrent DAG builds never share state.
package proof

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pi-base/core/pkg/logic/implication"
	"github.com/pi-base/core/pkg/logic/schema"
)

// Catalog resolves the names this package needs to render a proof:
// a trait's display name, an implication's human form, and a trait's URL
// (for the full-proof DAG and HTML rendering).
type Catalog interface {
	Trait(schema.TraitID) (schema.Trait, bool)
	TraitProof(schema.TraitID) (schema.Description, bool)
	Implication(schema.ImplicationID) (implication.Implication, bool)
	TraitName(id schema.TraitID, includeSpace bool) string
	TraitURL(schema.TraitID) string
	ImplicationName(schema.ImplicationID) string
}

// step is one parsed token of a proof string: either a trait or an
// implication reference.
type step struct {
	trait *schema.TraitID
	impl  *schema.ImplicationID
}

// parseSteps splits a persisted proof string ("t1,i4,t7,") into its tagged
// references. A malformed token is skipped rather than erroring: a stray
// entry in legacy data should degrade the rendering, not break it.
func parseSteps(proof string) []step {
	var out []step
	for _, tok := range strings.Split(proof, ",") {
		if tok == "" {
			continue
		}
		switch tok[0] {
		case 't':
			if id, err := strconv.ParseUint(tok[1:], 10, 64); err == nil {
				tid := schema.TraitID(id)
				out = append(out, step{trait: &tid})
			}
		case 'i':
			if id, err := strconv.ParseUint(tok[1:], 10, 64); err == nil {
				iid := schema.ImplicationID(id)
				out = append(out, step{impl: &iid})
			}
		}
	}
	return out
}

// RenderOptions controls Render's output.
type RenderOptions struct {
	// HTML, when true, renders a <ul> list with one <li> per reference and
	// wraps each trait reference in an anchor tag (implications are not
	// linked); otherwise Render produces a plain comma-separated list.
	HTML bool
	// Space, when true, includes the space name alongside each referenced
	// trait's property/value.
	Space bool
}

// Render produces a printable form of a proof string: each t<id> renders
// as the trait's name, each i<id> as the implication's human form.
// Trailing separators are trimmed.
func Render(catalog Catalog, proofText string, opts RenderOptions) string {
	steps := parseSteps(proofText)
	parts := make([]string, 0, len(steps))

	for _, st := range steps {
		switch {
		case st.trait != nil:
			name := catalog.TraitName(*st.trait, opts.Space)
			if opts.HTML {
				parts = append(parts, fmt.Sprintf(`<a href="%s">%s</a>`, catalog.TraitURL(*st.trait), name))
			} else {
				parts = append(parts, name)
			}
		case st.impl != nil:
			parts = append(parts, catalog.ImplicationName(*st.impl))
		}
	}

	if opts.HTML {
		return "<ul>" + wrapItems(parts) + "</ul>"
	}
	return strings.Join(parts, ", ")
}

func wrapItems(parts []string) string {
	var b strings.Builder
	for _, p := range parts {
		fmt.Fprintf(&b, "<li>%s</li>", p)
	}
	return b.String()
}

// Node is one vertex of a full-proof DAG: the root trait or one of its
// transitive justifications.
type Node struct {
	ID   int
	Name string
	Body string
	URL  string
}

// Edge is a directed adjacency from a referenced trait's node to the node
// that cites it in its proof.
type Edge struct {
	From int
	To   int
}

// DAG is the full proof graph rooted at a trait: nodes plus their
// adjacencies, acyclic by construction (forward chaining only ever adds
// traits depending on traits already present).
type DAG struct {
	Nodes []Node
	Edges []Edge
}

// FullProof builds the DAG rooted at trait t: t itself plus, recursively,
// every trait its proof (if automatically derived) references.
func FullProof(catalog Catalog, t schema.TraitID) DAG {
	b := &dagBuilder{catalog: catalog, ids: map[schema.TraitID]int{}}
	b.visit(t)

	nodes := make([]Node, 0, len(b.nodes))
	for _, n := range b.nodes {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })

	return DAG{Nodes: nodes, Edges: b.edges}
}

type dagBuilder struct {
	catalog Catalog
	ids     map[schema.TraitID]int
	nodes   []Node
	edges   []Edge
	next    int
}

func (b *dagBuilder) nodeID(t schema.TraitID) int {
	if id, ok := b.ids[t]; ok {
		return id
	}
	id := b.next
	b.next++
	b.ids[t] = id
	return id
}

func (b *dagBuilder) visit(t schema.TraitID) {
	if _, already := b.ids[t]; already {
		return
	}
	id := b.nodeID(t)

	desc, hasProof := b.catalog.TraitProof(t)
	b.nodes = append(b.nodes, Node{
		ID:   id,
		Name: b.catalog.TraitName(t, true),
		Body: renderedBody(b.catalog, desc, hasProof),
		URL:  b.catalog.TraitURL(t),
	})

	if !hasProof || !desc.Automatic() {
		return
	}

	for _, st := range parseSteps(desc.Text) {
		if st.trait == nil {
			continue
		}
		refID := *st.trait
		b.visit(refID)
		b.edges = append(b.edges, Edge{From: b.ids[refID], To: id})
	}
}

func renderedBody(catalog Catalog, desc schema.Description, hasProof bool) string {
	if !hasProof || !desc.Automatic() {
		return ""
	}
	return Render(catalog, desc.Text, RenderOptions{Space: false})
}
