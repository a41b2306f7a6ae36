package courses

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
)

// DefaultTokenExpiration is the token lifetime in hours when the
// configuration does not set one. Tokens expire 7 days after issuance.
const DefaultTokenExpiration = 24 * 7

// TokenServiceImpl implements TokenIssuer and TokenVerifier with one
// immutable HMAC key per principal variant. Keys are read once at
// construction and never mutated, so the service is safe for concurrent
// use without locking.
type TokenServiceImpl struct {
	userKey         []byte
	adminKey        []byte
	tokenExpiration int
	logger          Logger
}

var (
	_ TokenIssuer   = (*TokenServiceImpl)(nil)
	_ TokenVerifier = (*TokenServiceImpl)(nil)
)

// NewTokenService creates a TokenService from configuration. An absent
// signing key for either variant is a startup error, never a per-request
// condition.
func NewTokenService(cfg Config, logger Logger) (*TokenServiceImpl, error) {
	if logger == nil {
		logger = defLogger{}
	}

	if cfg.GetUserSigningKey() == "" {
		return nil, errors.New("user signing key is missing", errors.CategoryInternal).
			WithTextCode("MISSING_SIGNING_KEY")
	}

	if cfg.GetAdminSigningKey() == "" {
		return nil, errors.New("admin signing key is missing", errors.CategoryInternal).
			WithTextCode("MISSING_SIGNING_KEY")
	}

	expiration := cfg.GetTokenExpiration()
	if expiration <= 0 {
		expiration = DefaultTokenExpiration
	}

	return &TokenServiceImpl{
		userKey:         []byte(cfg.GetUserSigningKey()),
		adminKey:        []byte(cfg.GetAdminSigningKey()),
		tokenExpiration: expiration,
		logger:          logger,
	}, nil
}

// Issue signs a token carrying the principal id, bound to the variant's
// key and expiring after the configured lifetime.
func (ts *TokenServiceImpl) Issue(principalID string, variant Variant) (string, error) {
	key, err := ts.signingKey(variant)
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principalID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(ts.tokenExpiration) * time.Hour)),
		},
		Variant: variant,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedString, err := token.SignedString(key)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to sign JWT")
	}

	return signedString, nil
}

// Verify parses and validates a token string against the variant's key,
// returning the principal id. Signature and structural failures map to
// ErrTokenInvalid, expiry to ErrTokenExpired.
func (ts *TokenServiceImpl) Verify(tokenString string, variant Variant) (string, error) {
	key, err := ts.signingKey(variant)
	if err != nil {
		return "", err
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("TokenService verify encountered unexpected signing method", "alg", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return key, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		ts.logger.Debug("TokenService verify rejected token", "error", err)
		return "", ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		ts.logger.Error("TokenService verify could not decode claims")
		return "", ErrTokenInvalid
	}

	if claims.Variant != variant {
		return "", ErrTokenInvalid
	}

	if claims.Subject == "" {
		return "", ErrTokenInvalid
	}

	return claims.Subject, nil
}

func (ts *TokenServiceImpl) signingKey(variant Variant) ([]byte, error) {
	switch variant {
	case VariantUser:
		return ts.userKey, nil
	case VariantAdmin:
		return ts.adminKey, nil
	default:
		return nil, errors.New("unknown principal variant", errors.CategoryInternal).
			WithMetadata(map[string]any{"variant": string(variant)})
	}
}
