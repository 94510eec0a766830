// Copyright 2026 The Pastehouse Authors
// SPDX-License-Identifier: Apache-2.0

package highlight

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a highlighting failure by its source. The set
// is closed: every error returned by this package carries one of these
// kinds.
type ErrorKind int

const (
	// KindIO is a failure reading the artifact content, including
	// content that is not valid UTF-8.
	KindIO ErrorKind = iota + 1

	// KindInvalidSyntax is a failure inside the grammar engine while
	// tokenising or formatting content.
	KindInvalidSyntax

	// KindThemeLoading is a failure decoding the embedded theme.
	// Fatal at startup.
	KindThemeLoading

	// KindGrammarLoading is a failure decoding the embedded grammar
	// set or resolving one of its lexers. Fatal at startup.
	KindGrammarLoading
)

func (kind ErrorKind) String() string {
	switch kind {
	case KindIO:
		return "io"
	case KindInvalidSyntax:
		return "invalid syntax"
	case KindThemeLoading:
		return "theme loading"
	case KindGrammarLoading:
		return "grammar loading"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(kind))
	}
}

// Error is the error type returned by every fallible function in this
// package.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (err *Error) Error() string {
	return fmt.Sprintf("highlight: %s: %v", err.Kind, err.Err)
}

func (err *Error) Unwrap() error {
	return err.Err
}

// IsKind reports whether err is (or wraps) a highlight Error of the
// given kind.
func IsKind(err error, kind ErrorKind) bool {
	var highlightError *Error
	return errors.As(err, &highlightError) && highlightError.Kind == kind
}

func ioError(err error) error {
	return &Error{Kind: KindIO, Err: err}
}

func syntaxError(err error) error {
	return &Error{Kind: KindInvalidSyntax, Err: err}
}

func themeError(err error) error {
	return &Error{Kind: KindThemeLoading, Err: err}
}

func grammarError(err error) error {
	return &Error{Kind: KindGrammarLoading, Err: err}
}
