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

// Package cmd hosts the cobra.Command tree driving the deductive core:
// each subcommand is a thin wrapper over pkg/logic/*, printing results or
// exiting with an error code, never itself implementing inference logic.
package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pi-base/core/pkg/config"
	"github.com/pi-base/core/pkg/logic/consistency"
	"github.com/pi-base/core/pkg/logic/store"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "pibase",
	Short: "A deductive core for a topology facts database.",
	Long: `pibase maintains spaces, properties, traits and implications,
infers new traits by forward chaining, tracks proofs and detects
inconsistencies.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		// The "import" command takes its own fixture path argument; every
		// other command may instead load one eagerly via --fixture.
		if path := GetString(cmd, "fixture"); path != "" && cmd.Name() != "import" {
			if err := loadFixture(path); err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
		}
	},
}

func loadFixture(path string) error {
	fixture, err := config.LoadFixture(path)
	if err != nil {
		return err
	}
	if err := config.Bootstrap(db, fixture); err != nil {
		return err
	}
	impls, err := config.ParseImplications(db, fixture)
	if err != nil {
		return err
	}
	for _, impl := range impls {
		if _, err := consistency.AcceptImplication(db, impl, allSpaceIDs()); err != nil {
			return err
		}
	}
	return nil
}

// db is the process-wide store every subcommand operates on, populated by
// the "import" command's fixture argument or, for any other command, by the
// --fixture flag at startup.
var db = store.New()

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen
// once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	rootCmd.PersistentFlags().String("fixture", "", "path to a YAML fixture to load at startup")
	rootCmd.PersistentFlags().Bool("no-colour", false, "disable ANSI colour in table output")
}
