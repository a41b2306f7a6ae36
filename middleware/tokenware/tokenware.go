// Package tokenware is the identity gate for bearer-token requests: it
// extracts the token, verifies it against the variant the route is scoped
// to, and attaches the resolved principal to the request before the
// handler runs. A missing token and an invalid or expired token are kept
// distinct on the way out.
package tokenware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	courses "github.com/goliatone/go-courses"
	"github.com/goliatone/go-errors"
)

var defaultTokenLookup = "header:" + fiber.HeaderAuthorization + ",header:token"

type Config struct {
	// Verifier resolves a raw token to a principal id for the variant
	Verifier courses.TokenVerifier
	// Variant is the principal class this gate admits
	Variant courses.Variant

	Filter       func(*fiber.Ctx) bool
	ErrorHandler func(*fiber.Ctx, error) error
	ContextKey   string
	TokenLookup  string
	AuthScheme   string
}

// New returns the identity gate middleware for the configured variant
func New(config ...Config) fiber.Handler {
	cfg := configDefault(config...)

	return func(c *fiber.Ctx) error {
		if cfg.Filter != nil && cfg.Filter(c) {
			return c.Next()
		}

		raw := extractToken(c, cfg.getExtractors())
		if raw == "" {
			return cfg.ErrorHandler(c, courses.ErrTokenMissing)
		}

		principalID, err := cfg.Verifier.Verify(raw, cfg.Variant)
		if err != nil {
			return cfg.ErrorHandler(c, err)
		}

		ref := courses.PrincipalRef{
			ID:      principalID,
			Variant: cfg.Variant,
		}

		c.Locals(cfg.ContextKey, ref)
		c.SetUserContext(courses.WithPrincipal(c.UserContext(), ref))

		return c.Next()
	}
}

// PrincipalFromCtx returns the principal the gate attached to the request
func PrincipalFromCtx(c *fiber.Ctx, key string) (courses.PrincipalRef, bool) {
	if key == "" {
		key = "principal"
	}
	ref, ok := c.Locals(key).(courses.PrincipalRef)
	return ref, ok
}

func configDefault(config ...Config) (cfg Config) {
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.Verifier == nil {
		panic("COURSES: token middleware configuration: Verifier is required.")
	}

	if !cfg.Variant.Valid() {
		panic("COURSES: token middleware configuration: Variant is required.")
	}

	if cfg.ContextKey == "" {
		cfg.ContextKey = "principal"
	}

	if cfg.TokenLookup == "" {
		cfg.TokenLookup = defaultTokenLookup
	}

	if cfg.AuthScheme == "" {
		cfg.AuthScheme = "Bearer"
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = defaultErrorHandler
	}

	return cfg
}

func defaultErrorHandler(c *fiber.Ctx, err error) error {
	if errors.Is(err, courses.ErrTokenMissing) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message":    "Token missing",
			"text_code":  courses.ErrTokenMissing.TextCode,
			"validation": nil,
		})
	}

	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"message":    "Invalid or expired token",
		"text_code":  courses.ErrTokenInvalid.TextCode,
		"validation": nil,
	})
}

type tokenExtractor func(c *fiber.Ctx) string

func (cfg *Config) getExtractors() []tokenExtractor {
	return getExtractors(cfg.TokenLookup, cfg.AuthScheme)
}

// getExtractors parses a lookup string such as
// "header:Authorization,header:token" into extractor funcs
func getExtractors(tokenLookup, authScheme string) []tokenExtractor {
	extractors := make([]tokenExtractor, 0)

	for _, rootPart := range strings.Split(tokenLookup, ",") {
		parts := strings.SplitN(strings.TrimSpace(rootPart), ":", 2)
		if len(parts) != 2 {
			continue
		}

		source := strings.TrimSpace(parts[0])
		name := strings.TrimSpace(parts[1])

		switch source {
		case "header":
			extractors = append(extractors, tokenFromHeader(name, authScheme))
		case "query":
			extractors = append(extractors, tokenFromQuery(name))
		case "cookie":
			extractors = append(extractors, tokenFromCookie(name))
		}
	}

	return extractors
}

func extractToken(c *fiber.Ctx, extractors []tokenExtractor) string {
	for _, extractor := range extractors {
		if raw := extractor(c); raw != "" {
			return raw
		}
	}
	return ""
}

// tokenFromHeader accepts both "<scheme> <token>" and a bare token value,
// so legacy clients sending the raw token header keep working
func tokenFromHeader(header, authScheme string) tokenExtractor {
	return func(c *fiber.Ctx) string {
		a := c.Get(header)
		if a == "" {
			return ""
		}

		scheme := strings.TrimSpace(authScheme)
		l := len(scheme)
		if l > 0 && len(a) > l+1 && strings.EqualFold(a[:l], scheme) {
			return strings.TrimSpace(a[l:])
		}

		if strings.ContainsRune(a, ' ') {
			return ""
		}

		return a
	}
}

func tokenFromQuery(param string) tokenExtractor {
	return func(c *fiber.Ctx) string {
		return c.Query(param)
	}
}

func tokenFromCookie(name string) tokenExtractor {
	return func(c *fiber.Ctx) string {
		return c.Cookies(name)
	}
}
