package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrExpired means the token was well-formed and correctly signed but its
	// expiration has passed.
	ErrExpired = errors.New("token expired")
	// ErrInvalid covers every other verification failure: bad signature,
	// malformed payload, wrong issuer or audience.
	ErrInvalid = errors.New("invalid token")
)

// Claims is the identity snapshot embedded in a token. It never carries the
// password hash.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Identity is the minimal snapshot a token carries.
type Identity struct {
	ID       string
	Username string
	Email    string
}

// Codec issues and verifies signed identity tokens. The codec itself is
// expiration-agnostic: the TTL is supplied per call, so the same codec serves
// both access and refresh tokens.
type Codec struct {
	secret []byte
}

// NewCodec creates a Codec signing with the given server secret.
func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

// Issue creates a signed token embedding the identity snapshot with an
// absolute expiration ttl from now.
func (c *Codec) Issue(id Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "fobfinder",
			Audience:  jwt.ClaimStrings{"fobfinder-api"},
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID:   id.ID,
		Username: id.Username,
		Email:    id.Email,
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Verify parses and validates a token string, returning the embedded identity
// snapshot if valid. Expired tokens fail with ErrExpired; every other failure
// is ErrInvalid. Callers surface both to clients the same way, the split is
// for logging.
func (c *Codec) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	t, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalid
		}
		return c.secret, nil
	}, jwt.WithIssuer("fobfinder"), jwt.WithAudience("fobfinder-api"))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrInvalid
	}

	if !t.Valid {
		return nil, ErrInvalid
	}

	return claims, nil
}
