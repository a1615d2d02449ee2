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
	"bufio"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pi-base/core/pkg/logic/consistency"
	"github.com/pi-base/core/pkg/logic/prove"
	"github.com/pi-base/core/pkg/logic/schema"
	"github.com/pi-base/core/pkg/util/termio"
)

var traitsCmd = &cobra.Command{
	Use:   "traits",
	Short: "List, set or delete traits",
}

var traitsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every trait recorded for a space",
	Run: func(cmd *cobra.Command, args []string) {
		space := schema.SpaceID(GetUint(cmd, "space"))
		ids := db.TraitsBySpace(space)
		//
		table := termio.NewTable(4, uint(len(ids))+1)
		table.SetRow(0, termio.NewText("id"), termio.NewText("property"), termio.NewText("value"), termio.NewText("proof"))
		//
		for i, id := range ids {
			t, _ := db.Trait(id)
			p, _ := db.PropertyByID(t.PropertyID)
			name, _ := lookupValueName(p, t.ValueID)
			//
			proofText := "user"
			derived := false
			if desc, ok := db.TraitProof(id); ok && desc.Automatic() {
				proofText = desc.Text
				derived = true
			}
			//
			table.SetRow(uint(i)+1,
				termio.NewText(fmt.Sprintf("%d", id)),
				termio.NewText(p.Name),
				termio.NewText(name),
				termio.NewText(proofText))
			//
			if derived {
				table.Recolour(3, uint(i)+1, termio.NewAnsiEscape().FgColour(termio.TERM_GREEN))
			}
		}
		//
		// Proof strings on deeply-chained traits can get long; clip rather
		// than let one column swallow the terminal.
		table.SetMaxWidth(3, 64)
		table.Sort(1, termio.NewRowSorter().ByColumn(1).ByNumericColumn(0))
		table.Print(WantColour(cmd))
	},
}

var traitsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Record a user-entered trait and run the initial trigger sweep",
	Run: func(cmd *cobra.Command, args []string) {
		space := schema.SpaceID(GetUint(cmd, "space"))
		//
		property, ok := db.PropertyByName(GetString(cmd, "property"))
		if !ok {
			fmt.Printf("unknown property %q\n", GetString(cmd, "property"))
			os.Exit(1)
		}
		//
		value, ok := property.ValueNamed(GetString(cmd, "value"))
		if !ok {
			fmt.Printf("unknown value %q for property %q\n", GetString(cmd, "value"), property.Name)
			os.Exit(1)
		}
		//
		if _, err := db.PutTrait(space, property.ID, value.ID, nil, schema.UserAgent); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		//
		if err := prove.OnNewTrait(db, db.Implications(), space, property.ID); err != nil {
			log.WithError(err).Error("trigger sweep after setting trait failed")
			os.Exit(1)
		}
	},
}

var traitsRmCmd = &cobra.Command{
	Use:   "rm",
	Short: "Delete a trait, after confirming its orphaned dependents",
	Run: func(cmd *cobra.Command, args []string) {
		id := schema.TraitID(GetUint(cmd, "id"))
		//
		if _, ok := db.Trait(id); !ok {
			fmt.Printf("no such trait %d\n", id)
			os.Exit(1)
		}
		//
		orphans := db.Orphans(id)
		if len(orphans) > 0 && !GetFlag(cmd, "force") {
			fmt.Printf("deleting trait %d will orphan %d derived trait(s):\n", id, len(orphans))
			for _, o := range orphans {
				fmt.Printf("  - %s\n", storeCatalog{db}.TraitName(o, true))
			}
			if !confirm("proceed? [y/N] ") {
				fmt.Println("aborted")
				return
			}
		}
		//
		db.DeleteTrait(id)
		for _, o := range orphans {
			db.DeleteTrait(o)
		}
		//
		if err := consistency.Recompute(cmd.Context(), db, allSpaceIDs()); err != nil {
			log.WithError(err).Error("recompute after deleting trait failed")
			os.Exit(1)
		}
	},
}

// confirm prompts the user on stdin for a yes/no answer, defaulting to no.
func confirm(prompt string) bool {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	line = strings.ToLower(strings.TrimSpace(line))
	return line == "y" || line == "yes"
}

func allSpaceIDs() []schema.SpaceID {
	spaces := db.Spaces()
	ids := make([]schema.SpaceID, len(spaces))
	for i, s := range spaces {
		ids[i] = s.ID
	}
	return ids
}

func init() {
	traitsListCmd.Flags().Uint("space", 0, "space id")
	_ = traitsListCmd.MarkFlagRequired("space")

	traitsSetCmd.Flags().Uint("space", 0, "space id")
	traitsSetCmd.Flags().String("property", "", "property name")
	traitsSetCmd.Flags().String("value", "", "value name")
	_ = traitsSetCmd.MarkFlagRequired("space")
	_ = traitsSetCmd.MarkFlagRequired("property")
	_ = traitsSetCmd.MarkFlagRequired("value")

	traitsRmCmd.Flags().Uint("id", 0, "trait id")
	traitsRmCmd.Flags().Bool("force", false, "skip the orphan confirmation prompt")
	_ = traitsRmCmd.MarkFlagRequired("id")

	traitsCmd.AddCommand(traitsListCmd, traitsSetCmd, traitsRmCmd)
	rootCmd.AddCommand(traitsCmd)
}
