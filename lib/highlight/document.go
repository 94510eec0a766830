// Copyright 2026 The Pastehouse Authors
// SPDX-License-Identifier: Apache-2.0

package highlight

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/alecthomas/chroma/v2"
)

var documentTemplate = template.Must(template.New("document").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>html,body{margin:0;background:{{.Background}}}pre{margin:0;padding:1em;min-height:100vh;box-sizing:border-box}</style>
</head>
<body>
{{.Fragment}}
</body>
</html>
`))

type documentData struct {
	Title      string
	Background template.CSS
	Fragment   template.HTML
}

// Document wraps a fragment produced by Render in a standalone HTML
// page whose background matches the catalog theme. The title is
// escaped; the fragment is trusted as-is.
func Document(title, fragment string, catalog *Catalog) (string, error) {
	background := "#000000"
	if entry := catalog.theme.Get(chroma.Background); entry.Background.IsSet() {
		background = entry.Background.String()
	}

	var builder strings.Builder
	err := documentTemplate.Execute(&builder, documentData{
		Title:      title,
		Background: template.CSS(background),
		Fragment:   template.HTML(fragment),
	})
	if err != nil {
		return "", syntaxError(fmt.Errorf("executing document template: %w", err))
	}
	return builder.String(), nil
}
