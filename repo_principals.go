package courses

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Users is the principal store for the User variant. Registration relies
// on the unique constraint on email as the source of truth; callers may
// pre-check for a friendlier conflict response, but the constraint decides
// under concurrency.
type Users interface {
	repository.Repository[*User]

	Register(ctx context.Context, user *User) (*User, error)
	RegisterTx(ctx context.Context, tx bun.IDB, user *User) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}

type users struct {
	repository.Repository[*User]
	db *bun.DB
}

var _ Users = (*users)(nil)

func NewUsersRepository(db *bun.DB) Users {
	repo := repository.NewRepository[*User](db, repository.ModelHandlers[*User]{
		NewRecord: func() *User { return &User{} },
		GetID: func(u *User) uuid.UUID {
			if u == nil {
				return uuid.Nil
			}
			return u.ID
		},
		SetID: func(u *User, id uuid.UUID) {
			if u != nil {
				u.ID = id
			}
		},
		GetIdentifier: func() string {
			return "email"
		},
	})

	return &users{
		Repository: repo,
		db:         db,
	}
}

func (a *users) Register(ctx context.Context, user *User) (*User, error) {
	return a.RegisterTx(ctx, a.db, user)
}

func (a *users) RegisterTx(ctx context.Context, tx bun.IDB, user *User) (*User, error) {
	if user != nil && user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	record, err := a.Repository.CreateTx(ctx, tx, user)
	if err != nil {
		if IsUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	return record, nil
}

func (a *users) GetByEmail(ctx context.Context, email string) (*User, error) {
	return a.Repository.GetByIdentifier(ctx, email)
}

// Admins is the principal store for the Admin variant
type Admins interface {
	repository.Repository[*Admin]

	Register(ctx context.Context, admin *Admin) (*Admin, error)
	RegisterTx(ctx context.Context, tx bun.IDB, admin *Admin) (*Admin, error)
	GetByEmail(ctx context.Context, email string) (*Admin, error)
}

type admins struct {
	repository.Repository[*Admin]
	db *bun.DB
}

var _ Admins = (*admins)(nil)

func NewAdminsRepository(db *bun.DB) Admins {
	repo := repository.NewRepository[*Admin](db, repository.ModelHandlers[*Admin]{
		NewRecord: func() *Admin { return &Admin{} },
		GetID: func(a *Admin) uuid.UUID {
			if a == nil {
				return uuid.Nil
			}
			return a.ID
		},
		SetID: func(a *Admin, id uuid.UUID) {
			if a != nil {
				a.ID = id
			}
		},
		GetIdentifier: func() string {
			return "email"
		},
	})

	return &admins{
		Repository: repo,
		db:         db,
	}
}

func (a *admins) Register(ctx context.Context, admin *Admin) (*Admin, error) {
	return a.RegisterTx(ctx, a.db, admin)
}

func (a *admins) RegisterTx(ctx context.Context, tx bun.IDB, admin *Admin) (*Admin, error) {
	if admin != nil && admin.ID == uuid.Nil {
		admin.ID = uuid.New()
	}

	record, err := a.Repository.CreateTx(ctx, tx, admin)
	if err != nil {
		if IsUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	return record, nil
}

func (a *admins) GetByEmail(ctx context.Context, email string) (*Admin, error) {
	return a.Repository.GetByIdentifier(ctx, email)
}

// IsRecordNotFound reports whether err is the repository not-found error
func IsRecordNotFound(err error) bool {
	if err == nil {
		return false
	}
	return repository.IsRecordNotFound(err) || goerrors.IsNotFound(err)
}
