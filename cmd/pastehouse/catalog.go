// Copyright 2026 The Pastehouse Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pastehouse/pastehouse/lib/highlight"
)

func newCatalogCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the embedded grammar catalog",
	}
	command.AddCommand(newCatalogBuildCommand())
	return command
}

func newCatalogBuildCommand() *cobra.Command {
	var manifestPath, outputPath string
	command := &cobra.Command{
		Use:   "build",
		Short: "Compile a YAML grammar manifest into the embedded blob",
		Long: `Build reads a YAML grammar manifest, checks that every grammar names a
lexer the highlighter knows and that no token is claimed twice, and
writes the compressed blob the highlight package embeds. The output is
deterministic, so an unchanged manifest produces an unchanged blob.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			blob, count, err := buildCatalog(manifestPath)
			if err != nil {
				return err
			}
			if err := writeFileAtomic(outputPath, blob); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s: %d grammars, %d bytes\n", outputPath, count, len(blob))
			return nil
		},
	}
	command.Flags().StringVar(&manifestPath, "manifest", "", "YAML grammar manifest (required)")
	command.Flags().StringVar(&outputPath, "out", "", "output blob path (required)")
	command.MarkFlagRequired("manifest")
	command.MarkFlagRequired("out")
	return command
}

func buildCatalog(manifestPath string) ([]byte, int, error) {
	source, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, 0, err
	}

	var manifest highlight.Manifest
	decoder := yaml.NewDecoder(bytes.NewReader(source))
	decoder.KnownFields(true)
	if err := decoder.Decode(&manifest); err != nil {
		return nil, 0, fmt.Errorf("parsing %s: %w", manifestPath, err)
	}

	blob, err := highlight.EncodeManifest(manifest)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", manifestPath, err)
	}
	return blob, len(manifest.Grammars), nil
}

// writeFileAtomic replaces path via a temporary file in the same
// directory, so an interrupted build never leaves a truncated blob.
func writeFileAtomic(path string, data []byte) error {
	temporary, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(temporary.Name())

	if _, err := temporary.Write(data); err != nil {
		temporary.Close()
		return err
	}
	if err := temporary.Chmod(0o644); err != nil {
		temporary.Close()
		return err
	}
	if err := temporary.Close(); err != nil {
		return err
	}
	return os.Rename(temporary.Name(), path)
}
