package i

import (
	"time"
)

// Tokenizer issues and checks the bearer tokens guarding the journey API.
type Tokenizer interface {
	// Generate signs a token for subject carrying claims, valid for ttl.
	Generate(subject string, claims map[string]any, ttl time.Duration) (string, error)

	// Decode validates a token, issuer included, and returns its claims.
	Decode(token string) (map[string]any, error)
}
