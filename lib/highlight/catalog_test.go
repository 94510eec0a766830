// Copyright 2026 The Pastehouse Authors
// SPDX-License-Identifier: Apache-2.0

package highlight

import (
	"bytes"
	"os"
	"reflect"
	"strings"
	"testing"
)

// testTheme is a minimal chroma style for injected catalogs.
const testTheme = `<style name="test">
  <entry type="Background" style="#000000 bg:#ffffff"/>
  <entry type="Keyword" style="#ff0000"/>
  <entry type="NameFunction" style="#00ff00"/>
</style>`

func newTestCatalog(t *testing.T, grammars ...GrammarSpec) *Catalog {
	t.Helper()
	catalog, err := NewCatalog(Manifest{Version: ManifestVersion, Grammars: grammars}, strings.NewReader(testTheme))
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	return catalog
}

func TestLoadCatalogEmbedded(t *testing.T) {
	catalog, err := LoadCatalog()
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if catalog.Theme().Name != "ayu-dark" {
		t.Errorf("theme = %q, want ayu-dark", catalog.Theme().Name)
	}

	again, err := LoadCatalog()
	if err != nil {
		t.Fatalf("second LoadCatalog: %v", err)
	}
	if again != catalog {
		t.Error("LoadCatalog returned a different handle on the second call")
	}

	for token, want := range map[string]string{
		"rs":   "Rust",
		"py":   "Python",
		"go":   "Go",
		"json": "JSON",
		"yml":  "YAML",
	} {
		if got := catalog.Find(token).Name(); got != want {
			t.Errorf("Find(%q) = %q, want %q", token, got, want)
		}
	}
}

func TestEmbeddedBlobMatchesManifestSource(t *testing.T) {
	// The YAML source is decoded by the CLI; here we only check that
	// every grammar the blob declares is resolvable and that the
	// blob round-trips through the codec unchanged.
	manifest, err := DecodeManifest(embeddedSyntaxes)
	if err != nil {
		t.Fatalf("DecodeManifest: %v", err)
	}
	if len(manifest.Grammars) == 0 {
		t.Fatal("embedded manifest has no grammars")
	}

	blob, err := EncodeManifest(manifest)
	if err != nil {
		t.Fatalf("EncodeManifest: %v", err)
	}
	decoded, err := DecodeManifest(blob)
	if err != nil {
		t.Fatalf("DecodeManifest(re-encoded): %v", err)
	}
	if !reflect.DeepEqual(decoded, manifest) {
		t.Errorf("re-encoded manifest differs:\n got %+v\nwant %+v", decoded, manifest)
	}

	source, err := os.ReadFile("resources/grammars.yaml")
	if err != nil {
		t.Fatalf("reading grammars.yaml: %v", err)
	}
	for _, grammar := range manifest.Grammars {
		if !bytes.Contains(source, []byte("name: "+grammar.Name+"\n")) {
			t.Errorf("grammar %s is in syntaxes.bin but not in grammars.yaml; run go generate", grammar.Name)
		}
	}
}

func TestFindIsCaseSensitive(t *testing.T) {
	catalog := newTestCatalog(t, GrammarSpec{Name: "Rust", Lexer: "rust", Tokens: []string{"rs"}})

	if got := catalog.Find("rs"); got.Name() != "Rust" {
		t.Errorf("Find(rs) = %q, want Rust", got.Name())
	}
	if got := catalog.Find("RS"); !got.IsPlainText() {
		t.Errorf("Find(RS) = %q, want plain text", got.Name())
	}
}

func TestFindFallsBackToPlainText(t *testing.T) {
	catalog := newTestCatalog(t, GrammarSpec{Name: "Go", Lexer: "go", Tokens: []string{"go"}})

	for _, token := range []string{"", "unknownlang", "go ", ".go"} {
		grammar := catalog.Find(token)
		if !grammar.IsPlainText() {
			t.Errorf("Find(%q) = %q, want plain text", token, grammar.Name())
		}
		if grammar.lexer == nil {
			t.Errorf("Find(%q) returned a grammar without a lexer", token)
		}
	}
	if len(catalog.PlainText().Tokens()) != 0 {
		t.Error("plain text grammar should have no tokens")
	}
}

func TestGrammarsSortedByName(t *testing.T) {
	catalog := newTestCatalog(t,
		GrammarSpec{Name: "Rust", Lexer: "rust", Tokens: []string{"rs"}},
		GrammarSpec{Name: "Go", Lexer: "go", Tokens: []string{"go"}},
		GrammarSpec{Name: "Python", Lexer: "python", Tokens: []string{"py"}},
	)
	var names []string
	for _, grammar := range catalog.Grammars() {
		names = append(names, grammar.Name())
	}
	want := []string{"Go", "Python", "Rust"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("Grammars() = %v, want %v", names, want)
	}
}

func TestNewCatalogErrors(t *testing.T) {
	tests := []struct {
		name     string
		manifest Manifest
		theme    string
		kind     ErrorKind
	}{
		{
			name:     "malformed_theme",
			manifest: Manifest{Version: ManifestVersion},
			theme:    "<style name=",
			kind:     KindThemeLoading,
		},
		{
			name:     "unnamed_theme",
			manifest: Manifest{Version: ManifestVersion},
			theme:    `<style><entry type="Keyword" style="#ff0000"/></style>`,
			kind:     KindThemeLoading,
		},
		{
			name: "unknown_lexer",
			manifest: Manifest{Version: ManifestVersion, Grammars: []GrammarSpec{
				{Name: "Nope", Lexer: "definitely-not-a-chroma-lexer-name", Tokens: []string{"zz-nope-zz"}},
			}},
			theme: testTheme,
			kind:  KindGrammarLoading,
		},
		{
			name:     "wrong_version",
			manifest: Manifest{Version: ManifestVersion + 1},
			theme:    testTheme,
			kind:     KindGrammarLoading,
		},
		{
			name: "duplicate_token",
			manifest: Manifest{Version: ManifestVersion, Grammars: []GrammarSpec{
				{Name: "C", Lexer: "c", Tokens: []string{"h"}},
				{Name: "C++", Lexer: "cpp", Tokens: []string{"h"}},
			}},
			theme: testTheme,
			kind:  KindGrammarLoading,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := NewCatalog(test.manifest, strings.NewReader(test.theme))
			if err == nil {
				t.Fatal("NewCatalog() = nil error, want failure")
			}
			if !IsKind(err, test.kind) {
				t.Errorf("error = %v, want kind %s", err, test.kind)
			}
		})
	}
}

func TestDecodeManifestRejectsCorruptBlob(t *testing.T) {
	for name, blob := range map[string][]byte{
		"empty":     nil,
		"not_zstd":  []byte("definitely not a zstd frame"),
		"truncated": embeddedSyntaxes[:len(embeddedSyntaxes)/2],
	} {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeManifest(blob)
			if !IsKind(err, KindGrammarLoading) {
				t.Errorf("DecodeManifest error = %v, want grammar loading error", err)
			}
		})
	}
}

func TestCatalogFingerprint(t *testing.T) {
	rust := GrammarSpec{Name: "Rust", Lexer: "rust", Tokens: []string{"rs"}}
	golang := GrammarSpec{Name: "Go", Lexer: "go", Tokens: []string{"go"}}

	base := newTestCatalog(t, rust)
	if base.Fingerprint() == "" {
		t.Fatal("empty fingerprint")
	}
	if again := newTestCatalog(t, rust); again.Fingerprint() != base.Fingerprint() {
		t.Error("identical inputs produced different fingerprints")
	}
	if wider := newTestCatalog(t, rust, golang); wider.Fingerprint() == base.Fingerprint() {
		t.Error("adding a grammar did not change the fingerprint")
	}

	recoloured := strings.Replace(testTheme, `type="Keyword" style="#ff0000"`, `type="Keyword" style="#0000ff"`, 1)
	other, err := NewCatalog(Manifest{Version: ManifestVersion, Grammars: []GrammarSpec{rust}}, strings.NewReader(recoloured))
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	if other.Fingerprint() == base.Fingerprint() {
		t.Error("changing the theme did not change the fingerprint")
	}
}
