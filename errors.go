package courses

import (
	"strings"

	"github.com/goliatone/go-errors"
)

// ErrNoEmptyString is returned when a password to hash is empty
var ErrNoEmptyString = errors.New("password must not be empty", errors.CategoryValidation).
	WithTextCode("EMPTY_PASSWORD")

// ErrMismatchedHashAndPassword is the error for a failed bcrypt comparison
var ErrMismatchedHashAndPassword = errors.New("mismatched hash and password", errors.CategoryAuth).
	WithTextCode("CREDENTIAL_MISMATCH")

// ErrIncorrectCredentials is returned on signin for both an unknown email
// and a wrong password. The two cases must stay indistinguishable to the
// caller so the endpoint cannot be used to enumerate accounts.
var ErrIncorrectCredentials = errors.New("incorrect email or password", errors.CategoryAuth).
	WithTextCode("INCORRECT_CREDENTIALS").
	WithCode(errors.CodeUnauthorized)

// ErrDuplicateEmail is the conflict error for signup against an email that
// already has a record for the same principal variant
var ErrDuplicateEmail = errors.New("email already registered", errors.CategoryConflict).
	WithTextCode("DUPLICATE_EMAIL").
	WithCode(errors.CodeConflict)

// ErrTokenMissing is the client error for a request with no bearer token
var ErrTokenMissing = errors.New("token missing", errors.CategoryAuth).
	WithTextCode("TOKEN_MISSING").
	WithCode(errors.CodeUnauthorized)

// ErrTokenExpired is returned for tokens past their expiry
var ErrTokenExpired = errors.New("token is expired", errors.CategoryAuth).
	WithTextCode("TOKEN_EXPIRED").
	WithCode(errors.CodeUnauthorized)

// ErrTokenInvalid covers malformed tokens, bad signatures, and tokens
// issued for the other principal variant
var ErrTokenInvalid = errors.New("invalid authentication token", errors.CategoryAuth).
	WithTextCode("TOKEN_INVALID").
	WithCode(errors.CodeUnauthorized)

// ErrForbidden is the rejection for an authenticated admin mutating a
// course it does not own. It does not distinguish "course does not exist",
// so callers cannot probe for other admins' resources.
var ErrForbidden = errors.New("course not found or not owned by caller", errors.CategoryAuth).
	WithTextCode("FORBIDDEN").
	WithCode(errors.CodeForbidden)

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTokenExpired) {
		return true
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsUniqueViolation reports whether err is a store-level unique constraint
// failure. The store constraint is the source of truth for email
// uniqueness; the pre-insert lookup in the signup flow is only a fast path.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
