// Package token mints and resolves the bearer tokens the simulated backend
// hands out. A token is an opaque string that resolves to a user id; no
// scheme here carries an expiry.
package token

import "errors"

var ErrInvalid = errors.New("invalid token")

type Issuer interface {
	// Issue mints a token for the given user id.
	Issue(userID string) (string, error)
	// Resolve extracts the user id a token was issued for. Returns ErrInvalid
	// (possibly wrapped) for anything malformed.
	Resolve(token string) (string, error)
}
