// Copyright 2026 The Pastehouse Authors
// SPDX-License-Identifier: Apache-2.0

package highlight

import (
	"errors"
	"fmt"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"
)

// ManifestVersion is the only grammar manifest layout this package
// decodes. Bump it when GrammarSpec changes incompatibly.
const ManifestVersion = 1

// maxManifestSize bounds the decompressed manifest. The real manifest
// is a few kilobytes; anything near this limit is corrupt.
const maxManifestSize = 1 << 20

// Manifest lists the grammars a Catalog registers. It is stored as a
// zstd-compressed CBOR document (see EncodeManifest) and authored as
// YAML for the `pastehouse catalog build` command.
type Manifest struct {
	Version  int           `cbor:"version" yaml:"version"`
	Grammars []GrammarSpec `cbor:"grammars" yaml:"grammars"`
}

// GrammarSpec binds a set of tokens to one chroma lexer.
type GrammarSpec struct {
	// Name is the display name of the grammar.
	Name string `cbor:"name" yaml:"name"`

	// Lexer is the chroma lexer name or alias.
	Lexer string `cbor:"lexer" yaml:"lexer"`

	// Tokens select this grammar. Matching is case-sensitive.
	Tokens []string `cbor:"tokens" yaml:"tokens"`
}

var (
	// cbor encoding and decoding modes are immutable after creation
	// and safe for concurrent use.
	manifestEncMode cbor.EncMode
	manifestDecMode cbor.DecMode

	// zstd encoder and decoder are safe for concurrent EncodeAll and
	// DecodeAll calls.
	manifestEncoder *zstd.Encoder
	manifestDecoder *zstd.Decoder
)

func init() {
	var err error
	manifestEncMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("highlight: creating CBOR encode mode: %v", err))
	}
	manifestDecMode, err = cbor.DecOptions{
		ExtraReturnErrors: cbor.ExtraDecErrorUnknownField,
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("highlight: creating CBOR decode mode: %v", err))
	}
	manifestEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		panic(fmt.Sprintf("highlight: creating zstd encoder: %v", err))
	}
	manifestDecoder, err = zstd.NewReader(nil, zstd.WithDecoderMaxMemory(maxManifestSize))
	if err != nil {
		panic(fmt.Sprintf("highlight: creating zstd decoder: %v", err))
	}
}

// Validate checks a manifest for structural problems: wrong version,
// unnamed grammars, and tokens claimed by more than one grammar.
func (manifest Manifest) Validate() error {
	var errs []error
	if manifest.Version != ManifestVersion {
		errs = append(errs, fmt.Errorf("unsupported manifest version %d (want %d)", manifest.Version, ManifestVersion))
	}
	owners := make(map[string]string)
	for index, grammar := range manifest.Grammars {
		if grammar.Name == "" {
			errs = append(errs, fmt.Errorf("grammars[%d]: name is required", index))
		}
		if grammar.Lexer == "" {
			errs = append(errs, fmt.Errorf("grammars[%d] (%s): lexer is required", index, grammar.Name))
		}
		for _, token := range grammar.Tokens {
			if token == "" {
				errs = append(errs, fmt.Errorf("grammars[%d] (%s): empty token", index, grammar.Name))
				continue
			}
			if owner, taken := owners[token]; taken {
				errs = append(errs, fmt.Errorf("token %q claimed by both %s and %s", token, owner, grammar.Name))
				continue
			}
			owners[token] = grammar.Name
		}
	}
	return errors.Join(errs...)
}

// EncodeManifest serializes a manifest into the embedded blob format.
// Every lexer must be known to chroma, so a blob that encodes always
// loads.
func EncodeManifest(manifest Manifest) ([]byte, error) {
	if err := manifest.Validate(); err != nil {
		return nil, grammarError(err)
	}
	var unknown []error
	for _, grammar := range manifest.Grammars {
		if lexers.Get(grammar.Lexer) == nil {
			unknown = append(unknown, fmt.Errorf("grammar %s: unknown lexer %q", grammar.Name, grammar.Lexer))
		}
	}
	if err := errors.Join(unknown...); err != nil {
		return nil, grammarError(err)
	}
	encoded, err := manifestEncMode.Marshal(manifest)
	if err != nil {
		return nil, grammarError(fmt.Errorf("encoding manifest: %w", err))
	}
	return manifestEncoder.EncodeAll(encoded, nil), nil
}

// DecodeManifest parses a blob produced by EncodeManifest.
func DecodeManifest(blob []byte) (Manifest, error) {
	encoded, err := manifestDecoder.DecodeAll(blob, nil)
	if err != nil {
		return Manifest{}, grammarError(fmt.Errorf("decompressing manifest: %w", err))
	}
	var manifest Manifest
	if err := manifestDecMode.Unmarshal(encoded, &manifest); err != nil {
		return Manifest{}, grammarError(fmt.Errorf("decoding manifest: %w", err))
	}
	if err := manifest.Validate(); err != nil {
		return Manifest{}, grammarError(err)
	}
	return manifest, nil
}
