// Copyright 2026 The Pastehouse Authors
// SPDX-License-Identifier: Apache-2.0

package pasteresponse

import (
	"io"
	"time"

	"github.com/pastehouse/pastehouse/lib/pastestore"
)

// Kind is one of the four response shapes.
type Kind int

const (
	// KindRaw streams the artifact without a known MIME type.
	KindRaw Kind = iota + 1

	// KindMIMETyped streams the artifact with the MIME type the
	// extension hint maps to.
	KindMIMETyped

	// KindNotFound reports that no artifact exists for the identifier.
	KindNotFound

	// KindServerError reports a storage failure.
	KindServerError
)

func (kind Kind) String() string {
	switch kind {
	case KindRaw:
		return "raw"
	case KindMIMETyped:
		return "mime_typed"
	case KindNotFound:
		return "not_found"
	case KindServerError:
		return "server_error"
	default:
		return "unknown"
	}
}

// Response is the transport-independent result of a retrieval. The
// HTTP layer turns it into status codes and headers; this package
// decides nothing about caching beyond exposing ModifiedAt.
type Response struct {
	Kind Kind

	// ID is the requested identifier, set on every kind.
	ID string

	// Message is the storage failure detail for KindServerError. It
	// is intended for logs; clients should get a generic message.
	Message string

	// Content streams the artifact for KindRaw and KindMIMETyped.
	// The receiver must Close it.
	Content io.ReadSeekCloser

	// ModifiedAt is the artifact's modification time. It is zero for
	// kinds that carry no artifact.
	ModifiedAt time.Time

	// Size is the artifact length in bytes for KindRaw and
	// KindMIMETyped.
	Size int64

	// MIME is the essence string for KindMIMETyped, empty otherwise.
	MIME string
}

// HasContent reports whether the response carries an artifact stream.
func (response Response) HasContent() bool {
	return response.Kind == KindRaw || response.Kind == KindMIMETyped
}

// Close releases the artifact stream, if any.
func (response Response) Close() error {
	if response.Content == nil {
		return nil
	}
	return response.Content.Close()
}

// Build maps a resolution outcome and an optional extension hint (empty
// for none) to a response. The MIME type comes only from the static
// extension table, never from the content.
func Build(id string, outcome pastestore.Outcome, extension string) Response {
	switch outcome.Kind {
	case pastestore.OutcomeFound:
		artifact := outcome.Artifact
		response := Response{
			Kind:       KindRaw,
			ID:         id,
			Content:    artifact.Content,
			ModifiedAt: artifact.ModifiedAt,
			Size:       artifact.Size,
		}
		if extension != "" {
			if mime, ok := MIMEByExtension(extension); ok {
				response.Kind = KindMIMETyped
				response.MIME = mime
			}
		}
		return response
	case pastestore.OutcomeNotFound:
		return Response{Kind: KindNotFound, ID: id}
	default:
		return Response{Kind: KindServerError, ID: id, Message: outcome.Detail}
	}
}
