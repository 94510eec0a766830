// Copyright 2026 The Pastehouse Authors
// SPDX-License-Identifier: Apache-2.0

package pasteresponse

// mimeByExtension maps lowercase extension hints (without dot) to MIME
// essence strings. The table is static: a hint maps to the same type
// on every host, independent of /etc/mime.types.
var mimeByExtension = map[string]string{
	// Text and markup
	"txt":      "text/plain",
	"text":     "text/plain",
	"log":      "text/plain",
	"md":       "text/markdown",
	"markdown": "text/markdown",
	"html":     "text/html",
	"htm":      "text/html",
	"css":      "text/css",
	"csv":      "text/csv",
	"tsv":      "text/tab-separated-values",
	"xml":      "text/xml",
	"ics":      "text/calendar",
	"vtt":      "text/vtt",

	// Data formats
	"json":  "application/json",
	"map":   "application/json",
	"jsonl": "application/jsonl",
	"yaml":  "text/x-yaml",
	"yml":   "text/x-yaml",
	"toml":  "text/x-toml",
	"ini":   "text/plain",
	"wasm":  "application/wasm",

	// Source code
	"js":    "text/javascript",
	"mjs":   "text/javascript",
	"ts":    "text/x-typescript",
	"rs":    "text/x-rust",
	"py":    "text/x-python",
	"go":    "text/x-go",
	"c":     "text/x-c",
	"h":     "text/x-c",
	"cc":    "text/x-c",
	"cpp":   "text/x-c",
	"cxx":   "text/x-c",
	"hpp":   "text/x-c",
	"java":  "text/x-java-source",
	"kt":    "text/x-kotlin",
	"rb":    "text/x-ruby",
	"php":   "application/x-httpd-php",
	"sh":    "application/x-sh",
	"bash":  "application/x-sh",
	"lua":   "text/x-lua",
	"sql":   "application/sql",
	"swift": "text/x-swift",
	"scala": "text/x-scala",
	"hs":    "text/x-haskell",
	"diff":  "text/x-diff",
	"patch": "text/x-diff",

	// Images
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"webp": "image/webp",
	"svg":  "image/svg+xml",
	"ico":  "image/x-icon",
	"bmp":  "image/bmp",
	"avif": "image/avif",

	// Audio and video
	"mp3":  "audio/mpeg",
	"ogg":  "audio/ogg",
	"wav":  "audio/wav",
	"flac": "audio/flac",
	"mp4":  "video/mp4",
	"webm": "video/webm",
	"mkv":  "video/x-matroska",

	// Documents and archives
	"pdf": "application/pdf",
	"zip": "application/zip",
	"gz":  "application/gzip",
	"tar": "application/x-tar",
	"zst": "application/zstd",
	"xz":  "application/x-xz",
	"7z":  "application/x-7z-compressed",
	"bin": "application/octet-stream",
}

// MIMEByExtension returns the MIME essence string for an extension
// hint. The lookup is exact; callers normalise case beforehand.
func MIMEByExtension(extension string) (string, bool) {
	mime, ok := mimeByExtension[extension]
	return mime, ok
}
