// Copyright 2026 The Pastehouse Authors
// SPDX-License-Identifier: Apache-2.0

package pastestore

import (
	"io"
	"time"
)

// OutcomeKind classifies a resolution attempt.
type OutcomeKind int

const (
	// OutcomeFound means the artifact exists and Artifact is set.
	OutcomeFound OutcomeKind = iota + 1

	// OutcomeNotFound means no artifact exists for the identifier.
	OutcomeNotFound

	// OutcomeIOFailure means the storage layer failed for a reason
	// other than absence. Detail describes the failure.
	OutcomeIOFailure
)

func (kind OutcomeKind) String() string {
	switch kind {
	case OutcomeFound:
		return "found"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeIOFailure:
		return "io_failure"
	default:
		return "unknown"
	}
}

// Outcome is the result of [Resolver.Resolve].
type Outcome struct {
	Kind OutcomeKind

	// Artifact is set only for OutcomeFound. The caller owns it and
	// must Close it.
	Artifact *Artifact

	// Detail is the storage error text for OutcomeIOFailure. It may
	// contain filesystem paths and is meant for logs, not clients.
	Detail string
}

// Artifact is an open, streamable handle to a stored paste together
// with the metadata probed from that same handle.
type Artifact struct {
	// ID is the identifier the artifact was resolved from.
	ID string

	// Content streams the artifact bytes. Seeking is supported so the
	// HTTP layer can serve ranges and conditional requests.
	Content io.ReadSeekCloser

	// ModifiedAt is the artifact's last modification time.
	ModifiedAt time.Time

	// Size is the artifact length in bytes at probe time.
	Size int64
}

// Close releases the underlying file handle.
func (artifact *Artifact) Close() error {
	return artifact.Content.Close()
}

func found(artifact *Artifact) Outcome {
	return Outcome{Kind: OutcomeFound, Artifact: artifact}
}

func notFound() Outcome {
	return Outcome{Kind: OutcomeNotFound}
}

func ioFailure(detail string) Outcome {
	return Outcome{Kind: OutcomeIOFailure, Detail: detail}
}
