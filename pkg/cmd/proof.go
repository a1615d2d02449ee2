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

	"github.com/pi-base/core/pkg/logic/proof"
	"github.com/pi-base/core/pkg/logic/schema"
)

var proofCmd = &cobra.Command{
	Use:   "proof",
	Short: "Render a trait's proof, or export its full derivation DAG",
}

var proofShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Render a trait's immediate proof",
	Run: func(cmd *cobra.Command, args []string) {
		id := schema.TraitID(GetUint(cmd, "trait"))
		//
		desc, ok := db.TraitProof(id)
		if !ok {
			fmt.Println("user-entered, no proof")
			return
		}
		//
		fmt.Println(proof.Render(storeCatalog{db}, desc.Text, proof.RenderOptions{HTML: GetFlag(cmd, "html")}))
	},
}

var proofDagCmd = &cobra.Command{
	Use:   "dag",
	Short: "Print every trait and implication a trait's proof transitively depends on",
	Run: func(cmd *cobra.Command, args []string) {
		id := schema.TraitID(GetUint(cmd, "trait"))
		//
		if _, ok := db.Trait(id); !ok {
			fmt.Printf("no such trait %d\n", id)
			os.Exit(1)
		}
		//
		dag := proof.FullProof(storeCatalog{db}, id)
		//
		fmt.Println("nodes:")
		for _, n := range dag.Nodes {
			fmt.Printf("  %d\t%s\n", n.ID, n.Name)
		}
		//
		fmt.Println("edges:")
		for _, e := range dag.Edges {
			fmt.Printf("  %d -> %d\n", e.From, e.To)
		}
	},
}

func init() {
	proofShowCmd.Flags().Uint("trait", 0, "trait id")
	proofShowCmd.Flags().Bool("html", false, "render as HTML instead of plain text")
	_ = proofShowCmd.MarkFlagRequired("trait")

	proofDagCmd.Flags().Uint("trait", 0, "trait id")
	_ = proofDagCmd.MarkFlagRequired("trait")

	proofCmd.AddCommand(proofShowCmd, proofDagCmd)
	rootCmd.AddCommand(proofCmd)
}
