// Copyright 2026 The Pastehouse Authors
// SPDX-License-Identifier: Apache-2.0

package highlight

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/zeebo/blake3"
)

// plainTextName is the display name of the fallback grammar.
const plainTextName = "Plain Text"

// Grammar is one tokenisation ruleset in a Catalog.
type Grammar struct {
	name   string
	tokens []string
	lexer  chroma.Lexer
}

// Name returns the grammar's display name.
func (grammar Grammar) Name() string { return grammar.name }

// Tokens returns the tokens that select this grammar. The plain-text
// fallback has none.
func (grammar Grammar) Tokens() []string {
	return append([]string(nil), grammar.tokens...)
}

// IsPlainText reports whether this is the fallback grammar.
func (grammar Grammar) IsPlainText() bool { return grammar.name == plainTextName }

// Catalog is an immutable set of grammars plus one color theme. A
// Catalog is safe for unlimited concurrent use: nothing mutates it
// after construction.
type Catalog struct {
	byToken   map[string]Grammar
	grammars  []Grammar
	plainText Grammar
	theme     *chroma.Style

	// fingerprint digests the manifest and theme the catalog was
	// built from.
	fingerprint string
}

var (
	embeddedCatalog     *Catalog
	embeddedCatalogErr  error
	embeddedCatalogOnce sync.Once
)

// LoadCatalog returns the process-wide catalog decoded from the
// embedded grammar set and theme. The first call decodes; later calls
// return the same handle (or the same error). A failure means the
// binary was built with corrupt resources and is fatal to the caller.
func LoadCatalog() (*Catalog, error) {
	embeddedCatalogOnce.Do(func() {
		embeddedCatalog, embeddedCatalogErr = DecodeCatalog(embeddedSyntaxes, embeddedTheme)
	})
	return embeddedCatalog, embeddedCatalogErr
}

// MustLoadCatalog is LoadCatalog for callers that cannot continue
// without highlighting.
func MustLoadCatalog() *Catalog {
	catalog, err := LoadCatalog()
	if err != nil {
		panic(err)
	}
	return catalog
}

// DecodeCatalog builds a catalog from a syntaxes blob (see
// EncodeManifest) and a chroma XML style document.
func DecodeCatalog(syntaxes, theme []byte) (*Catalog, error) {
	manifest, err := DecodeManifest(syntaxes)
	if err != nil {
		return nil, err
	}
	return NewCatalog(manifest, bytes.NewReader(theme))
}

// NewCatalog builds a catalog from an in-memory manifest and a chroma
// XML style. Tests use it to inject minimal grammar sets.
func NewCatalog(manifest Manifest, theme io.Reader) (*Catalog, error) {
	if err := manifest.Validate(); err != nil {
		return nil, grammarError(err)
	}

	themeSource, err := io.ReadAll(theme)
	if err != nil {
		return nil, themeError(fmt.Errorf("reading theme: %w", err))
	}
	style, err := chroma.NewXMLStyle(bytes.NewReader(themeSource))
	if err != nil {
		return nil, themeError(fmt.Errorf("parsing theme: %w", err))
	}
	if style.Name == "" {
		return nil, themeError(fmt.Errorf("theme has no name"))
	}

	catalog := &Catalog{
		byToken: make(map[string]Grammar),
		plainText: Grammar{
			name:  plainTextName,
			lexer: plainTextLexer(),
		},
		theme:       style,
		fingerprint: fingerprint(manifest, themeSource),
	}

	for _, entry := range manifest.Grammars {
		lexer := lexers.Get(entry.Lexer)
		if lexer == nil {
			return nil, grammarError(fmt.Errorf("grammar %s: unknown lexer %q", entry.Name, entry.Lexer))
		}
		grammar := Grammar{
			name:   entry.Name,
			tokens: append([]string(nil), entry.Tokens...),
			lexer:  chroma.Coalesce(lexer),
		}
		catalog.grammars = append(catalog.grammars, grammar)
		for _, token := range entry.Tokens {
			catalog.byToken[token] = grammar
		}
	}

	sort.Slice(catalog.grammars, func(i, j int) bool {
		return catalog.grammars[i].name < catalog.grammars[j].name
	})
	return catalog, nil
}

// fingerprint hashes the canonical CBOR form of the manifest followed
// by the theme source. Grammar order and token order are significant.
func fingerprint(manifest Manifest, themeSource []byte) string {
	encoded, err := manifestEncMode.Marshal(manifest)
	if err != nil {
		// Manifest holds only strings, slices and ints.
		panic(fmt.Sprintf("highlight: encoding manifest for fingerprint: %v", err))
	}
	hasher := blake3.New()
	hasher.Write(encoded)
	hasher.Write(themeSource)
	return hex.EncodeToString(hasher.Sum(nil)[:16])
}

// plainTextLexer returns chroma's plain text lexer, or its
// registry-independent fallback if plaintext is not registered.
func plainTextLexer() chroma.Lexer {
	if lexer := lexers.Get("plaintext"); lexer != nil {
		return lexer
	}
	return lexers.Fallback
}

// Find returns the grammar registered for token. Matching is exact and
// case-sensitive. Unknown tokens, including the empty string, return
// the plain-text grammar.
func (catalog *Catalog) Find(token string) Grammar {
	if grammar, ok := catalog.byToken[token]; ok {
		return grammar
	}
	return catalog.plainText
}

// PlainText returns the fallback grammar.
func (catalog *Catalog) PlainText() Grammar { return catalog.plainText }

// Grammars returns the registered grammars sorted by name, excluding
// the plain-text fallback.
func (catalog *Catalog) Grammars() []Grammar {
	return append([]Grammar(nil), catalog.grammars...)
}

// Fingerprint identifies the grammar set and theme. Two catalogs built
// from the same manifest and theme share a fingerprint; changing
// either changes it.
func (catalog *Catalog) Fingerprint() string { return catalog.fingerprint }

// Theme returns the catalog's color theme. The returned style must not
// be modified.
func (catalog *Catalog) Theme() *chroma.Style { return catalog.theme }
