package courses

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// Authenticator orchestrates validation, the principal stores, the
// credential hasher, and the token service for signup and signin. The flow
// is identical in shape for both variants but always uses the
// variant-appropriate store and signing key; an Admin signin can never
// mint a User-scoped token or the reverse.
type Authenticator struct {
	repo   RepositoryManager
	tokens TokenIssuer
	logger Logger
}

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(repo RepositoryManager, tokens TokenIssuer) *Authenticator {
	return &Authenticator{
		repo:   repo,
		tokens: tokens,
		logger: defLogger{},
	}
}

func (a *Authenticator) WithLogger(logger Logger) *Authenticator {
	if logger != nil {
		a.logger = logger
	}
	return a
}

// Signup validates the payload, hashes the password, and creates the
// principal record. The password is hashed before any persistence; a
// record never stores plaintext. Duplicate detection leans on the store's
// unique constraint, so two racing signups for the same email resolve to
// exactly one record and one ErrDuplicateEmail.
func (a *Authenticator) Signup(ctx context.Context, variant Variant, payload SignupPayload) (string, error) {
	if err := payload.Validate(); err != nil {
		return "", err
	}

	// optimistic fast path only; the unique constraint decides under races
	if taken, err := a.emailTaken(ctx, variant, payload.Email); err != nil {
		return "", err
	} else if taken {
		return "", ErrDuplicateEmail
	}

	hash, err := HashPassword(payload.Password)
	if err != nil {
		var richErr *errors.Error
		if errors.As(err, &richErr) {
			return "", richErr
		}
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to hash password")
	}

	id, err := a.createPrincipal(ctx, variant, payload, hash)
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return "", ErrDuplicateEmail
		}
		a.logger.Error("Signup create principal error", "variant", string(variant), "error", err)
		return "", errors.Wrap(err, errors.CategoryInternal, "could not create principal")
	}

	return id, nil
}

// Signin verifies the credentials and issues a token scoped to the
// variant. An unknown email and a failed password comparison both surface
// as ErrIncorrectCredentials so the response cannot confirm whether an
// account exists.
func (a *Authenticator) Signin(ctx context.Context, variant Variant, payload SigninPayload) (string, error) {
	if err := payload.Validate(); err != nil {
		return "", err
	}

	id, hash, err := a.lookupCredentials(ctx, variant, payload.Email)
	if err != nil {
		if IsRecordNotFound(err) {
			return "", ErrIncorrectCredentials
		}
		a.logger.Error("Signin lookup error", "variant", string(variant), "error", err)
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to retrieve principal")
	}

	if err := ComparePasswordAndHash(payload.Password, hash); err != nil {
		return "", ErrIncorrectCredentials
	}

	token, err := a.tokens.Issue(id, variant)
	if err != nil {
		a.logger.Error("Signin token issue error", "error", err)
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to issue token")
	}

	return token, nil
}

func (a *Authenticator) emailTaken(ctx context.Context, variant Variant, email string) (bool, error) {
	_, _, err := a.lookupCredentials(ctx, variant, email)
	if err == nil {
		return true, nil
	}

	if IsRecordNotFound(err) {
		return false, nil
	}

	return false, errors.Wrap(err, errors.CategoryInternal, "failed to check email uniqueness")
}

func (a *Authenticator) lookupCredentials(ctx context.Context, variant Variant, email string) (string, string, error) {
	switch variant {
	case VariantUser:
		user, err := a.repo.Users().GetByEmail(ctx, email)
		if err != nil {
			return "", "", err
		}
		return user.ID.String(), user.PasswordHash, nil
	case VariantAdmin:
		admin, err := a.repo.Admins().GetByEmail(ctx, email)
		if err != nil {
			return "", "", err
		}
		return admin.ID.String(), admin.PasswordHash, nil
	default:
		return "", "", errors.New("unknown principal variant", errors.CategoryInternal)
	}
}

func (a *Authenticator) createPrincipal(ctx context.Context, variant Variant, payload SignupPayload, hash string) (string, error) {
	switch variant {
	case VariantUser:
		user, err := a.repo.Users().Register(ctx, &User{
			ID:           uuid.New(),
			Email:        payload.Email,
			PasswordHash: hash,
			FirstName:    payload.FirstName,
			LastName:     payload.LastName,
		})
		if err != nil {
			return "", err
		}
		return user.ID.String(), nil
	case VariantAdmin:
		admin, err := a.repo.Admins().Register(ctx, &Admin{
			ID:           uuid.New(),
			Email:        payload.Email,
			PasswordHash: hash,
			FirstName:    payload.FirstName,
			LastName:     payload.LastName,
		})
		if err != nil {
			return "", err
		}
		return admin.ID.String(), nil
	default:
		return "", errors.New("unknown principal variant", errors.CategoryInternal)
	}
}
