// Copyright 2026 The Pastehouse Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pastehouse/pastehouse/lib/highlight"
)

func newSyntaxesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "syntaxes",
		Short: "List the grammars and the extension tokens that select them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := highlight.LoadCatalog()
			if err != nil {
				return err
			}

			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(writer, "GRAMMAR\tTOKENS")
			for _, grammar := range catalog.Grammars() {
				fmt.Fprintf(writer, "%s\t%s\n", grammar.Name(), strings.Join(grammar.Tokens(), ", "))
			}
			fmt.Fprintf(writer, "%s\t(fallback)\n", catalog.PlainText().Name())
			fmt.Fprintf(writer, "\ntheme: %s\n", catalog.Theme().Name)
			return writer.Flush()
		},
	}
}
