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
	"os"

	"github.com/spf13/cobra"

	"github.com/pi-base/core/pkg/util/termio"
)

var spacesCmd = &cobra.Command{
	Use:   "spaces",
	Short: "List known spaces",
	Run: func(cmd *cobra.Command, args []string) {
		spaces := db.Spaces()
		//
		table := termio.NewTable(3, uint(len(spaces))+1)
		table.SetRow(0, termio.NewText("id"), termio.NewText("slug"), termio.NewText("name"))
		//
		for i, sp := range spaces {
			table.SetRow(uint(i)+1,
				termio.NewText(fmt.Sprintf("%d", sp.ID)),
				termio.NewText(sp.Slug),
				termio.NewText(sp.Name))
		}
		//
		var sorter termio.RowSorter
		//
		switch GetString(cmd, "sort") {
		case "id":
			sorter = termio.NewRowSorter().ByNumericColumn(0)
		case "name":
			sorter = termio.NewRowSorter().ByColumn(2).ByNumericColumn(0)
		default:
			fmt.Printf("unknown sort column %q (want id or name)\n", GetString(cmd, "sort"))
			os.Exit(1)
		}
		//
		if GetFlag(cmd, "reverse") {
			sorter = sorter.Reversed()
		}
		//
		table.Sort(1, sorter)
		table.Print(WantColour(cmd))
	},
}

func init() {
	spacesCmd.Flags().String("sort", "id", "sort column: id or name")
	spacesCmd.Flags().Bool("reverse", false, "reverse the sort order")

	rootCmd.AddCommand(spacesCmd)
}
