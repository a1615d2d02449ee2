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

	"github.com/pi-base/core/pkg/logic/eval"
	"github.com/pi-base/core/pkg/logic/match"
	"github.com/pi-base/core/pkg/logic/parse"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "List spaces where a formula evaluates to a target truth value",
	Run: func(cmd *cobra.Command, args []string) {
		f, err := parse.HumanToFormula(GetString(cmd, "formula"), db)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		//
		target, err := parseTarget(GetString(cmd, "target"))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		//
		for _, id := range match.SpacesMatching(db, f, target, allSpaceIDs()) {
			sp, _ := db.Space(id)
			fmt.Printf("%d\t%s\n", sp.ID, sp.Name)
		}
	},
}

func parseTarget(s string) (eval.Value, error) {
	switch s {
	case "true":
		return eval.True, nil
	case "false":
		return eval.False, nil
	case "unknown":
		return eval.Unknown, nil
	default:
		return eval.Unknown, fmt.Errorf("unknown target %q (want true, false or unknown)", s)
	}
}

func init() {
	queryCmd.Flags().String("formula", "", "query formula, human syntax")
	queryCmd.Flags().String("target", "true", "target truth value: true, false or unknown")
	_ = queryCmd.MarkFlagRequired("formula")

	rootCmd.AddCommand(queryCmd)
}
