// Copyright 2026 The Pastehouse Authors
// SPDX-License-Identifier: Apache-2.0

// pastehouse is the offline companion to pastehouse-server. It
// highlights files with the same grammar catalog the server embeds,
// lists the registered grammars, and compiles the grammar manifest
// into the blob the highlight package embeds.
//
//	pastehouse render main.rs > main.html
//	pastehouse render --ext py --document < script > script.html
//	pastehouse syntaxes
//	pastehouse catalog build --manifest grammars.yaml --out syntaxes.bin
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pastehouse/pastehouse/lib/process"
	"github.com/pastehouse/pastehouse/lib/version"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		process.Fatal(err)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "pastehouse",
		Short: "Offline tools for the pastehouse retrieval server",
		Long: `pastehouse renders files with the server's grammar catalog and theme,
lists the grammars the catalog registers, and builds the embedded
grammar blob from its YAML manifest.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newRenderCommand(),
		newSyntaxesCommand(),
		newCatalogCommand(),
		newVersionCommand(),
	)
	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "pastehouse "+version.Full())
			return err
		},
	}
}
