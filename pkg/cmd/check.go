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

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pi-base/core/pkg/logic/consistency"
	"github.com/pi-base/core/pkg/logic/formula"
)

// checkCmd reports every saved implication with a counterexample, surfaced
// so a bulk import or a bypassed AcceptImplication can be audited after
// the fact.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report every saved implication that currently has a counterexample",
	Run: func(cmd *cobra.Command, args []string) {
		colour := WantColour(cmd)
		green := color.New(color.FgGreen).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()
		colourize := func(on bool, s string) string {
			if !colour {
				return s
			}
			if on {
				return red(s)
			}
			return green(s)
		}
		//
		violations := consistency.CheckConsistency(db, allSpaceIDs())
		if len(violations) == 0 {
			fmt.Println(colourize(false, "consistent: no implication has a counterexample"))
			return
		}
		//
		lookup := storeLookup{db}
		for _, v := range violations {
			fmt.Println(colourize(true, fmt.Sprintf("implication %d (%s) has %d counterexample space(s):",
				v.Implication.ID, v.Implication.Render(formula.RenderOptions{Lookup: lookup}), len(v.Spaces))))
			for _, sid := range v.Spaces {
				sp, _ := db.Space(sid)
				fmt.Printf("  - %s\n", sp.Name)
			}
		}
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
