package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Fingerprint computes the SHA-256 digest of data and formats it the way
// keytool and apksigner print certificate fingerprints: upper-case hex
// byte pairs separated by colons.
//
// Parameters:
//
//	data - DER bytes of a certificate (or any byte slice)
//
// Returns:
//
//	string - e.g. "1F:0A:...:9C" (95 characters)
//
// Example usage:
//
//	fp := utils.Fingerprint(cert.Raw)
func Fingerprint(data []byte) string {
	sum := sha256.Sum256(data)
	return formatDigest(sum[:])
}

// formatDigest renders digest as colon-separated upper-case hex pairs.
//
// This is an internal helper used by Fingerprint.
func formatDigest(digest []byte) string {
	encoded := strings.ToUpper(hex.EncodeToString(digest))

	var b strings.Builder
	b.Grow(len(encoded) + len(digest))
	for i := 0; i < len(encoded); i += 2 {
		if i > 0 {
			b.WriteByte(':')
		}
		b.WriteString(encoded[i : i+2])
	}
	return b.String()
}
