package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWT issues HS256-signed tokens carrying the user id in the sub claim. Same
// observable contract as the prefix scheme (opaque bearer string resolving
// to a user id), but forgery requires the signing secret.
type JWT struct {
	secret []byte
}

func NewJWT(secret string) (*JWT, error) {
	if secret == "" {
		return nil, fmt.Errorf("token: signing secret is required")
	}
	return &JWT{secret: []byte(secret)}, nil
}

func (j *JWT) Issue(userID string) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("%w: empty user id", ErrInvalid)
	}

	claims := jwt.MapClaims{
		"sub": userID,
		"iat": jwt.NewNumericDate(time.Now()),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (j *JWT) Resolve(tok string) (string, error) {
	parsed, err := jwt.Parse(tok, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return j.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !parsed.Valid {
		return "", fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	sub, err := parsed.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", fmt.Errorf("%w: sub claim not found", ErrInvalid)
	}
	return sub, nil
}

var _ Issuer = (*JWT)(nil)
