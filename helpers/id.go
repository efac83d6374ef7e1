package helpers

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateID returns length random bytes, hex encoded.
func GenerateID(length int) string {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		panic("crypto/rand unavailable: " + err.Error())
	}
	return hex.EncodeToString(buf)
}
