package crypto

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// HashBiometric derives the stored fingerprint digest from a raw capture.
// Captures are opaque device payloads; equality of digests is the only
// matching the platform does.
func HashBiometric(fingerData string) string {
	sum := sha256.Sum256([]byte(fingerData))
	return hex.EncodeToString(sum[:])
}

// VerifyBiometric compares a raw capture against a stored digest
func VerifyBiometric(fingerData, storedHash string) bool {
	computed := HashBiometric(fingerData)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1
}
