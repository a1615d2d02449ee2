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
package cmd

import (
	"fmt"

	"github.com/pi-base/core/pkg/logic/formula"
	"github.com/pi-base/core/pkg/logic/schema"
	"github.com/pi-base/core/pkg/logic/store"
)

// storeCatalog adapts *store.Store to pkg/logic/proof.Catalog, supplying
// the display-name and URL methods proof rendering needs that have no
// business living on Store itself.
type storeCatalog struct {
	*store.Store
}

func (c storeCatalog) TraitName(id schema.TraitID, includeSpace bool) string {
	t, ok := c.Trait(id)
	if !ok {
		return fmt.Sprintf("trait %d", id)
	}

	property, _ := c.PropertyByID(t.PropertyID)
	value, _ := lookupValueName(property, t.ValueID)

	if !includeSpace {
		return fmt.Sprintf("%s: %s", property.Name, value)
	}

	space, _ := c.Space(t.SpaceID)
	return fmt.Sprintf("%s: %s is %s", space.Name, property.Name, value)
}

func (c storeCatalog) TraitURL(id schema.TraitID) string {
	t, ok := c.Trait(id)
	if !ok {
		return ""
	}
	return fmt.Sprintf("/spaces/%d#trait-%d", t.SpaceID, id)
}

func (c storeCatalog) ImplicationName(id schema.ImplicationID) string {
	i, ok := c.Implication(id)
	if !ok {
		return fmt.Sprintf("implication %d", id)
	}
	return i.Render(formula.RenderOptions{Lookup: storeLookup{c.Store}})
}

func lookupValueName(p schema.Property, id schema.ValueID) (string, bool) {
	for _, v := range p.Values {
		if v.ID == id {
			return v.Name, true
		}
	}
	return fmt.Sprintf("value %d", id), false
}

// storeLookup adapts *store.Store to formula.Lookup/formula.LinkLookup so
// formulas and implications render with property/value names instead of
// bare numeric ids.
type storeLookup struct {
	*store.Store
}

func (l storeLookup) PropertyName(id schema.PropertyID) string {
	p, ok := l.PropertyByID(id)
	if !ok {
		return fmt.Sprintf("property %d", id)
	}
	return p.Name
}

func (l storeLookup) ValueName(property schema.PropertyID, id schema.ValueID) string {
	p, ok := l.PropertyByID(property)
	if !ok {
		return fmt.Sprintf("value %d", id)
	}
	name, _ := lookupValueName(p, id)
	return name
}

func (l storeLookup) PropertyURL(id schema.PropertyID) string {
	return fmt.Sprintf("/properties/%d", id)
}
