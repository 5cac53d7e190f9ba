package token

import (
	"fmt"
	"strings"
)

// MockPrefix is the fixed marker every prefix-scheme token starts with.
// Format: mock-jwt-token-{userID}.
const MockPrefix = "mock-jwt-token-"

// Prefix issues unsigned capability tokens that encode the user id directly
// after a fixed prefix. Anyone can forge one; that is accepted for a
// simulated single-node backend.
type Prefix struct{}

func NewPrefix() Prefix {
	return Prefix{}
}

func (Prefix) Issue(userID string) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("%w: empty user id", ErrInvalid)
	}
	return MockPrefix + userID, nil
}

func (Prefix) Resolve(tok string) (string, error) {
	suffix, ok := strings.CutPrefix(tok, MockPrefix)
	if !ok {
		return "", fmt.Errorf("%w: missing prefix", ErrInvalid)
	}
	if suffix == "" || !isDigits(suffix) {
		return "", fmt.Errorf("%w: malformed user id suffix", ErrInvalid)
	}
	return suffix, nil
}

// User ids are numeric strings (the demo account is "1", registered accounts
// get a millisecond timestamp), so the suffix must be all digits.
func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

var _ Issuer = Prefix{}
