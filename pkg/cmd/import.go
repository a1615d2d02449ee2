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

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pi-base/core/pkg/config"
	"github.com/pi-base/core/pkg/logic/consistency"
)

var importCmd = &cobra.Command{
	Use:   "import [flags] fixture.yaml",
	Short: "Bootstrap the store from a YAML fixture of properties, spaces, traits and implications",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		fixture, err := config.LoadFixture(args[0])
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		//
		if err := config.Bootstrap(db, fixture); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		//
		impls, err := config.ParseImplications(db, fixture)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		//
		for i, impl := range impls {
			if _, err := consistency.AcceptImplication(db, impl, allSpaceIDs()); err != nil {
				log.WithError(err).Errorf("rejected implication %s => %s",
					fixture.Implications[i].Antecedent, fixture.Implications[i].Consequent)
				os.Exit(1)
			}
		}
		//
		fmt.Printf("imported %d properties, %d spaces, %d traits, %d implications\n",
			len(fixture.Properties), len(fixture.Spaces), len(fixture.Traits), len(impls))
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
