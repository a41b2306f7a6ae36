package courses

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the token payload: the principal id as subject plus the
// variant the token was minted for. The variant claim is enforced on
// verification in addition to the per-variant signing key, so a token
// never crosses scopes even under key misconfiguration.
type Claims struct {
	jwt.RegisteredClaims
	Variant Variant `json:"vrt"`
}

// PrincipalID returns the subject claim
func (c *Claims) PrincipalID() string {
	return c.RegisteredClaims.Subject
}

// Expires returns the expiration time
func (c *Claims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *Claims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}
