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
	"strings"

	"github.com/spf13/cobra"

	"github.com/pi-base/core/pkg/util/termio"
)

var propertiesCmd = &cobra.Command{
	Use:   "properties",
	Short: "List known properties",
	Run: func(cmd *cobra.Command, args []string) {
		properties := db.Properties()
		//
		table := termio.NewTable(3, uint(len(properties))+1)
		table.SetRow(0, termio.NewText("id"), termio.NewText("name"), termio.NewText("values"))
		//
		for i, p := range properties {
			names := make([]string, len(p.Values))
			for j, v := range p.Values {
				names[j] = v.Name
			}
			table.SetRow(uint(i)+1,
				termio.NewText(fmt.Sprintf("%d", p.ID)),
				termio.NewText(p.Name),
				termio.NewText(strings.Join(names, ", ")))
		}
		//
		table.SetMaxWidths(48)
		table.Print(WantColour(cmd))
	},
}

func init() {
	rootCmd.AddCommand(propertiesCmd)
}
