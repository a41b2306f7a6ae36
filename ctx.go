package courses

import "context"

var principalCtxKey = &contextKey{"principal"}

type contextKey struct {
	name string
}

// PrincipalRef identifies the authenticated principal attached to a
// request after the identity gate resolved its token.
type PrincipalRef struct {
	ID      string
	Variant Variant
}

// WithPrincipal sets the principal reference in the given context
func WithPrincipal(ctx context.Context, ref PrincipalRef) context.Context {
	return context.WithValue(ctx, principalCtxKey, ref)
}

// PrincipalFromContext finds the principal reference in the context
func PrincipalFromContext(ctx context.Context) (PrincipalRef, bool) {
	ref, ok := ctx.Value(principalCtxKey).(PrincipalRef)
	return ref, ok
}
