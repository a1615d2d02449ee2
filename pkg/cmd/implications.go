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

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pi-base/core/pkg/logic/consistency"
	"github.com/pi-base/core/pkg/logic/formula"
	"github.com/pi-base/core/pkg/logic/implication"
	"github.com/pi-base/core/pkg/logic/parse"
)

var implicationsCmd = &cobra.Command{
	Use:   "implications",
	Short: "List, add or inspect implications",
}

var implicationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every saved implication",
	Run: func(cmd *cobra.Command, args []string) {
		lookup := storeLookup{db}
		for _, i := range db.Implications() {
			fmt.Printf("%d\t%s\n", i.ID, i.Render(formula.RenderOptions{Lookup: lookup}))
		}
	},
}

var implicationsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Parse and accept a new implication, running the initial trigger sweep",
	Run: func(cmd *cobra.Command, args []string) {
		antecedent, err := parse.HumanToFormula(GetString(cmd, "antecedent"), db)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		//
		consequent, err := parse.HumanToFormula(GetString(cmd, "consequent"), db)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		//
		sweepID := uuid.New()
		entry := log.WithField("sweep_id", sweepID)
		//
		saved, err := consistency.AcceptImplication(db, implication.Implication{Antecedent: antecedent, Consequent: consequent}, allSpaceIDs())
		if err != nil {
			entry.WithError(err).Debug("implication rejected")
			fmt.Println(err)
			os.Exit(1)
		}
		//
		entry.WithField("implication_id", saved.ID).Debug("accepted implication, initial trigger sweep complete")
		fmt.Printf("saved implication %d\n", saved.ID)
	},
}

var implicationsConversesCmd = &cobra.Command{
	Use:   "converses",
	Short: "List open converse candidates (implications whose converse has no counterexamples)",
	Run: func(cmd *cobra.Command, args []string) {
		lookup := storeLookup{db}
		for _, i := range consistency.OpenConverses(db, allSpaceIDs()) {
			fmt.Printf("%d\t%s\n", i.ID, i.Render(formula.RenderOptions{Lookup: lookup}))
		}
	},
}

func init() {
	implicationsAddCmd.Flags().String("antecedent", "", "antecedent, human formula syntax")
	implicationsAddCmd.Flags().String("consequent", "", "consequent, human formula syntax")
	_ = implicationsAddCmd.MarkFlagRequired("antecedent")
	_ = implicationsAddCmd.MarkFlagRequired("consequent")

	implicationsCmd.AddCommand(implicationsListCmd, implicationsAddCmd, implicationsConversesCmd)
	rootCmd.AddCommand(implicationsCmd)
}
