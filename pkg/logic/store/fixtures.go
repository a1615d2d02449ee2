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
	"fmt"

	"github.com/google/uuid"

	"github.com/pi-base/core/pkg/logic/schema"
)

// SyntheticSpaces inserts n synthetic spaces with opaque uuid-derived slugs
// and returns them in id order. Tests and benchmarks that need a bulk
// candidate set (pagination, matcher set operations, sweep scaling) use
// this rather than hand-writing fixture rows.
func SyntheticSpaces(s *Store, n int) []schema.Space {
	out := make([]schema.Space, n)
	for i := 0; i < n; i++ {
		sp := schema.Space{
			ID:   schema.SpaceID(i + 1),
			Name: fmt.Sprintf("Synthetic space %d", i+1),
			Slug: uuid.NewString(),
		}
		s.PutSpace(sp)
		out[i] = sp
	}
	return out
}
