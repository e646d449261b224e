package llm

import (
	"errors"
	"strings"
)

// ErrQuotaExhausted marks provider errors caused by an exceeded usage allowance.
var ErrQuotaExhausted = errors.New("quota exhausted")

var quotaMarkers = []string{
	"insufficient_quota",
	"resource_exhausted",
	"resourceexhausted",
	"exceeded your current quota",
}

// IsQuotaExhausted reports whether err signals quota exhaustion, either wrapped
// ErrQuotaExhausted or a provider error code in the message.
func IsQuotaExhausted(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrQuotaExhausted) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range quotaMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
