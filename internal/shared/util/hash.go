package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// PromptHash returns a short stable identifier for a prompt, safe to log.
func PromptHash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:12]
}
