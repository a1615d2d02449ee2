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
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pi-base/core/pkg/api"
)

var exportCmd = &cobra.Command{
	Use:   "export {spaces|properties|traits|implications}",
	Short: "Print one of the read API's JSON arrays on stdout",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		var payload any
		//
		switch args[0] {
		case "spaces":
			payload = api.Spaces(db)
		case "properties":
			payload = api.Properties(db)
		case "traits":
			payload = api.Traits(db, int(GetUint(cmd, "start")), int(GetUint(cmd, "end")))
		case "implications":
			payload = api.Implications(db)
		default:
			fmt.Printf("unknown export kind %q\n", args[0])
			os.Exit(1)
		}
		//
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		//
		fmt.Println(string(data))
	},
}

func init() {
	exportCmd.Flags().Uint("start", 0, "first trait index to include (traits only)")
	exportCmd.Flags().Uint("end", 0, "one past the last trait index; 0 means to the end (traits only)")

	rootCmd.AddCommand(exportCmd)
}
