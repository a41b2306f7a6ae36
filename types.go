package courses

import "fmt"

// Variant tags one of the two disjoint principal classes. Each variant has
// its own store, its own signing key, and its own authorization scope; a
// token minted for one variant never authorizes an operation gated on the
// other.
type Variant string

const (
	// VariantUser is the end-user principal class
	VariantUser Variant = "user"
	// VariantAdmin is the catalog-admin principal class
	VariantAdmin Variant = "admin"
)

// Valid reports whether v is one of the two known variants
func (v Variant) Valid() bool {
	return v == VariantUser || v == VariantAdmin
}

// Config holds auth options. Signing keys are process-wide configuration,
// loaded once at startup; a missing key is a fatal startup condition.
type Config interface {
	GetUserSigningKey() string
	GetAdminSigningKey() string
	GetTokenExpiration() int
	GetTokenLookup() string
	GetAuthScheme() string
	GetContextKey() string
}

// TokenIssuer mints signed identity tokens for a principal variant
type TokenIssuer interface {
	Issue(principalID string, variant Variant) (string, error)
}

// TokenVerifier resolves a bearer token back to a principal id, enforcing
// the signature and expiry for the given variant
type TokenVerifier interface {
	Verify(token string, variant Variant) (string, error)
}

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] COURSES "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] COURSES "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] COURSES "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
