package usage

import "errors"

// ErrNegativeTokens rejects token counts below zero.
var ErrNegativeTokens = errors.New("token count must not be negative")
