// Copyright 2026 The Pastehouse Authors
// SPDX-License-Identifier: Apache-2.0

package highlight

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/PuerkitoBio/goquery"
	"pgregory.net/rapid"
)

// fatalfHelper is the part of testing.TB that both *testing.T and
// *rapid.T provide.
type fatalfHelper interface {
	Helper()
	Fatalf(format string, args ...any)
}

func parseFragment(t fatalfHelper, fragment string) *goquery.Document {
	t.Helper()
	document, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		t.Fatalf("parsing rendered HTML: %v", err)
	}
	return document
}

// styledLeaf reports whether the fragment contains an innermost span
// with exactly the given text and an inline style.
func styledLeaf(document *goquery.Document, text string) bool {
	return leafStyle(document, text) != ""
}

// leafStyle returns the inline style of the first innermost span with
// exactly the given text, or "" if there is none.
func leafStyle(document *goquery.Document, text string) string {
	var style string
	document.Find("span").EachWithBreak(func(_ int, span *goquery.Selection) bool {
		if span.Children().Length() != 0 || span.Text() != text {
			return true
		}
		style, _ = span.Attr("style")
		return style == ""
	})
	return style
}

func TestRenderRust(t *testing.T) {
	catalog := MustLoadCatalog()

	rendered, err := Render("fn main() {}", "rs", catalog)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	document := parseFragment(t, rendered)
	top := document.Find("body").Children()
	if top.Length() != 1 || goquery.NodeName(top) != "pre" {
		t.Fatalf("want exactly one top-level <pre>, got %d element(s): %s", top.Length(), rendered)
	}
	if style, _ := top.Attr("style"); !strings.Contains(style, "background-color") {
		t.Errorf("<pre> style = %q, want inline background-color", style)
	}
	if strings.Contains(rendered, "class=") || strings.Contains(rendered, "<link") {
		t.Errorf("rendered HTML depends on an external stylesheet: %s", rendered)
	}
	for _, word := range []string{"fn", "main"} {
		if !styledLeaf(document, word) {
			t.Errorf("no highlighted token for %q in %s", word, rendered)
		}
	}
	if got := top.Text(); got != "fn main() {}" {
		t.Errorf("rendered text = %q, want %q", got, "fn main() {}")
	}
}

func TestRenderUnknownTokenUsesPlainText(t *testing.T) {
	catalog := MustLoadCatalog()
	content := "fn main() {}\n"

	unknown, err := Render(content, "unknownlang", catalog)
	if err != nil {
		t.Fatalf("Render(unknownlang): %v", err)
	}
	plain, err := Render(content, "", catalog)
	if err != nil {
		t.Fatalf("Render(\"\"): %v", err)
	}
	if unknown != plain {
		t.Errorf("unknown token rendered differently from plain text:\n%s\n%s", unknown, plain)
	}
	if styledLeaf(parseFragment(t, unknown), "fn") {
		t.Error("plain text rendering highlighted a keyword")
	}
}

func TestRenderEscapesMarkup(t *testing.T) {
	catalog := MustLoadCatalog()
	content := `<script>alert("x")</script>`

	rendered, err := Render(content, "", catalog)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(rendered, "<script>") {
		t.Fatalf("content was not escaped: %s", rendered)
	}
	if got := parseFragment(t, rendered).Find("pre").Text(); got != content {
		t.Errorf("rendered text = %q, want %q", got, content)
	}
}

func TestRenderDeterministic(t *testing.T) {
	catalog := MustLoadCatalog()
	tokens := []string{"rs", "py", "go", "json", "unknownlang", ""}

	rapid.Check(t, func(rt *rapid.T) {
		content := rapid.String().Draw(rt, "content")
		token := rapid.SampledFrom(tokens).Draw(rt, "token")

		first, err := Render(content, token, catalog)
		if err != nil {
			rt.Fatalf("Render: %v", err)
		}
		second, err := Render(content, token, catalog)
		if err != nil {
			rt.Fatalf("second Render: %v", err)
		}
		if first != second {
			rt.Fatalf("Render is not deterministic:\n%s\n%s", first, second)
		}
	})
}

func TestRenderPreservesWhitespace(t *testing.T) {
	catalog := MustLoadCatalog()
	tokens := []string{"rs", "py", "yaml", "unknownlang"}

	// The HTML parser used for inspection normalises CR and NUL, so
	// the generated content avoids them. CRLF handling is covered by
	// TestRenderKeepsCarriageReturns on the raw output.
	rapid.Check(t, func(rt *rapid.T) {
		content := rapid.StringMatching(`[a-z0-9 \t\n(){}:;="'#<>&]{0,80}`).Draw(rt, "content")
		token := rapid.SampledFrom(tokens).Draw(rt, "token")

		rendered, err := Render(content, token, catalog)
		if err != nil {
			rt.Fatalf("Render: %v", err)
		}
		got := parseFragment(rt, rendered).Find("pre").Text()
		if got != content {
			rt.Fatalf("rendered text = %q, want %q", got, content)
		}
	})
}

func TestRenderKeepsCarriageReturns(t *testing.T) {
	catalog := MustLoadCatalog()

	rendered, err := Render("a = 1\r\nb = 2\r\n", "py", catalog)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Count(rendered, "\r\n") != 2 {
		t.Errorf("CRLF line endings were normalised: %q", rendered)
	}
}

func TestRenderArtifact(t *testing.T) {
	catalog := MustLoadCatalog()

	t.Run("reads_and_renders", func(t *testing.T) {
		rendered, err := RenderArtifact(strings.NewReader("print('hi')\n"), "py", catalog)
		if err != nil {
			t.Fatalf("RenderArtifact: %v", err)
		}
		direct, err := Render("print('hi')\n", "py", catalog)
		if err != nil {
			t.Fatalf("Render: %v", err)
		}
		if rendered != direct {
			t.Error("RenderArtifact output differs from Render")
		}
	})

	t.Run("read_failure", func(t *testing.T) {
		readErr := errors.New("disk on fire")
		_, err := RenderArtifact(iotest.ErrReader(readErr), "py", catalog)
		if !IsKind(err, KindIO) {
			t.Fatalf("error = %v, want KindIO", err)
		}
		if !errors.Is(err, readErr) {
			t.Errorf("error %v does not wrap the read failure", err)
		}
	})

	t.Run("invalid_utf8", func(t *testing.T) {
		_, err := RenderArtifact(strings.NewReader("\xff\xfe\x00binary"), "", catalog)
		if !IsKind(err, KindIO) {
			t.Fatalf("error = %v, want KindIO", err)
		}
	})
}

func TestRenderWithInjectedCatalog(t *testing.T) {
	catalog := newTestCatalog(t, GrammarSpec{Name: "Rust", Lexer: "rust", Tokens: []string{"rs"}})

	rendered, err := Render("fn main() {}", "rs", catalog)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	// chroma writes inline colours in their shortest hex form.
	if got := leafStyle(parseFragment(t, rendered), "fn"); got != "color:#f00" {
		t.Errorf("style of fn = %q, want the injected keyword colour color:#f00 in %s", got, rendered)
	}
}
