// Copyright 2026 The Pastehouse Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pastehouse/pastehouse/lib/highlight"
)

type renderOptions struct {
	extension string
	document  bool
}

func newRenderCommand() *cobra.Command {
	var opts renderOptions
	command := &cobra.Command{
		Use:   "render FILE",
		Short: "Highlight a file as HTML",
		Long: `Render highlights FILE ("-" for standard input) with the embedded grammar
catalog and writes the HTML to standard output. The grammar is chosen by
--ext, or by FILE's extension when --ext is not given. Unknown
extensions render as plain text.

By default the output is a single inline-styled <pre> fragment, exactly
what the server embeds in /pretty pages. --document wraps it in a
standalone HTML page.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0], opts)
		},
	}
	command.Flags().StringVar(&opts.extension, "ext", "", "extension hint selecting the grammar (default: FILE's extension)")
	command.Flags().BoolVar(&opts.document, "document", false, "wrap the fragment in a standalone HTML page")
	return command
}

func runRender(cmd *cobra.Command, path string, opts renderOptions) error {
	catalog, err := highlight.LoadCatalog()
	if err != nil {
		return err
	}

	var input io.Reader = cmd.InOrStdin()
	title := "stdin"
	if path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()
		input = file
		title = filepath.Base(path)
	}

	extension := opts.extension
	if extension == "" && path != "-" {
		extension = strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	}

	output, err := highlight.RenderArtifact(input, extension, catalog)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", title, err)
	}
	if opts.document {
		output, err = highlight.Document(title, output, catalog)
		if err != nil {
			return err
		}
	}

	_, err = io.WriteString(cmd.OutOrStdout(), output)
	return err
}
