// Copyright 2026 The Pastehouse Authors
// SPDX-License-Identifier: Apache-2.0

package highlight

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters/html"
)

// formatter renders inline-styled HTML: no stylesheet, no line numbers,
// one <pre> per call. html.Formatter holds no per-call state.
var formatter = html.New(
	html.WithClasses(false),
	html.TabWidth(4),
)

// tokeniseOptions disables chroma's default CRLF normalisation so the
// rendered text matches the artifact byte for byte.
var tokeniseOptions = &chroma.TokeniseOptions{
	State:    "root",
	EnsureLF: false,
}

// Render highlights content with the grammar catalog.Find(token)
// selects and returns an HTML fragment styled inline with the catalog
// theme. Unknown tokens render as plain text. The output is a pure
// function of its inputs.
func Render(content, token string, catalog *Catalog) (string, error) {
	grammar := catalog.Find(token)

	tokens, err := tokenise(grammar, content)
	if err != nil {
		return "", err
	}

	var builder strings.Builder
	if err := formatter.Format(&builder, catalog.theme, chroma.Literator(tokens...)); err != nil {
		return "", syntaxError(fmt.Errorf("formatting %s: %w", grammar.name, err))
	}
	return builder.String(), nil
}

// RenderArtifact reads an artifact to the end and renders it. Read
// failures and content that is not UTF-8 text are KindIO errors.
func RenderArtifact(reader io.Reader, token string, catalog *Catalog) (string, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return "", ioError(fmt.Errorf("reading artifact: %w", err))
	}
	if !utf8.Valid(content) {
		return "", ioError(errors.New("artifact is not valid UTF-8"))
	}
	return Render(string(content), token, catalog)
}

// tokenise runs the grammar's lexer to completion. Lexers configured
// with EnsureNL append a newline the content did not have; it is
// removed so the rendered text is exactly content. A panic inside the
// regexp engine is reported as a syntax error.
func tokenise(grammar Grammar, content string) (tokens []chroma.Token, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			tokens = nil
			err = syntaxError(fmt.Errorf("tokenising %s: %v", grammar.name, recovered))
		}
	}()

	iterator, err := grammar.lexer.Tokenise(tokeniseOptions, content)
	if err != nil {
		return nil, syntaxError(fmt.Errorf("tokenising %s: %w", grammar.name, err))
	}
	tokens = iterator.Tokens()

	if !strings.HasSuffix(content, "\n") && len(tokens) > 0 {
		last := &tokens[len(tokens)-1]
		last.Value = strings.TrimSuffix(last.Value, "\n")
		if last.Value == "" {
			tokens = tokens[:len(tokens)-1]
		}
	}
	return tokens, nil
}
