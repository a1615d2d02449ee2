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
)

var proveCmd = &cobra.Command{
	Use:   "prove",
	Short: "Run the forward-chaining sweep to a fixpoint across every saved implication",
	Run: func(cmd *cobra.Command, args []string) {
		sweepID := uuid.New()
		entry := log.WithField("sweep_id", sweepID)
		entry.Debug("starting forward-chaining sweep")
		//
		if err := consistency.Recompute(cmd.Context(), db, allSpaceIDs()); err != nil {
			entry.WithError(err).Error("prove sweep failed")
			os.Exit(1)
		}
		entry.Debug("forward-chaining sweep converged")
		fmt.Println("ok")
	},
}

func init() {
	rootCmd.AddCommand(proveCmd)
}
