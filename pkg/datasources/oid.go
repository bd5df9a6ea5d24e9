// Copyright 2025 Haltu Oy
// SPDX-License-Identifier: MIT

package datasources

import (
	"crypto/sha1"
	"encoding/hex"
)

const (
	oidPrefix = "MPASSOID."

	// maxOIDLength matches the username column width. Truncating the digest
	// is lossy, the collision risk at scale is a known limitation and the
	// format must not be widened without confirming downstream key-length
	// constraints.
	maxOIDLength = 30
)

// DeriveOID derives the pseudonymous canonical username for a raw external
// username or id. The source tag and raw value are concatenated without a
// separator, that exact input is part of the identifier contract: the same
// (source, id) pair must always map to the same OID.
func DeriveOID(sourceTag, rawUsername string) string {
	digest := sha1.Sum([]byte(sourceTag + rawUsername))
	oid := oidPrefix + hex.EncodeToString(digest[:])
	return oid[:maxOIDLength]
}
