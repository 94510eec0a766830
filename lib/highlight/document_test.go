// Copyright 2026 The Pastehouse Authors
// SPDX-License-Identifier: Apache-2.0

package highlight

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func TestDocument(t *testing.T) {
	catalog, err := LoadCatalog()
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	fragment, err := Render("fn main() {}", "rs", catalog)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	page, err := Document("abc123.rs <draft>", fragment, catalog)
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	if !strings.HasPrefix(page, "<!DOCTYPE html>") {
		t.Errorf("document does not start with a doctype: %.40q", page)
	}
	if !strings.Contains(page, "background:#0b0e14") {
		t.Errorf("document background does not match theme: %s", page)
	}
	if !strings.Contains(page, fragment) {
		t.Error("document does not embed the fragment verbatim")
	}

	document, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		t.Fatalf("parsing document: %v", err)
	}
	if got := document.Find("title").Text(); got != "abc123.rs <draft>" {
		t.Errorf("title = %q, want %q", got, "abc123.rs <draft>")
	}
	if strings.Contains(page, "<draft>") {
		t.Error("title markup was not escaped")
	}
	if got := document.Find("body > pre").Length(); got != 1 {
		t.Errorf("body has %d <pre> children, want 1", got)
	}
	if got := document.Find("body pre").Text(); got != "fn main() {}" {
		t.Errorf("document text = %q, want source", got)
	}
}

func TestDocumentUsesInjectedTheme(t *testing.T) {
	catalog := newTestCatalog(t, GrammarSpec{Name: "Go", Lexer: "go", Tokens: []string{"go"}})
	page, err := Document("x", "<pre>x</pre>", catalog)
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	if !strings.Contains(page, "background:#ffffff") {
		t.Errorf("document background does not match injected theme: %s", page)
	}
}
