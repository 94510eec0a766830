// Copyright 2026 The Pastehouse Authors
// SPDX-License-Identifier: Apache-2.0

package pasteresponse

import (
	"encoding/binary"
	"encoding/hex"
	"time"

	"github.com/zeebo/blake3"
)

// etagDomainKey separates ETag digests from any other BLAKE3 use. The
// bytes are the ASCII domain name, zero-padded to 32 bytes.
var etagDomainKey = [32]byte{
	'p', 'a', 's', 't', 'e', 'h', 'o', 'u', 's', 'e', '.', 'e', 't', 'a', 'g',
}

// ETag returns a strong entity tag for an artifact version. It is
// derived from the identifier, modification time and size rather than
// the content, so computing it never reads the artifact. Artifacts are
// immutable once written, so any rewrite changes the modification time
// and therefore the tag.
func ETag(id string, modifiedAt time.Time, size int64) string {
	hasher, err := blake3.NewKeyed(etagDomainKey[:])
	if err != nil {
		// NewKeyed only fails for keys that are not 32 bytes.
		panic(err)
	}

	var scratch [8]byte
	binary.BigEndian.PutUint64(scratch[:], uint64(len(id)))
	hasher.Write(scratch[:])
	hasher.Write([]byte(id))
	binary.BigEndian.PutUint64(scratch[:], uint64(modifiedAt.UnixNano()))
	hasher.Write(scratch[:])
	binary.BigEndian.PutUint64(scratch[:], uint64(size))
	hasher.Write(scratch[:])

	sum := hasher.Sum(nil)
	return `"` + hex.EncodeToString(sum[:16]) + `"`
}
