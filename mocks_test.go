package courses_test

import (
	"context"
	"database/sql"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/uptrace/bun"

	courses "github.com/goliatone/go-courses"
)

func recordNotFound() error {
	return goerrors.New("record not found", goerrors.CategoryNotFound)
}

// MockUsers embeds the Users interface so the generic repository methods the
// tests never touch stay unimplemented; calling one panics loudly.
type MockUsers struct {
	courses.Users
	mock.Mock
}

func (m *MockUsers) Register(ctx context.Context, user *courses.User) (*courses.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courses.User), args.Error(1)
}

func (m *MockUsers) RegisterTx(ctx context.Context, tx bun.IDB, user *courses.User) (*courses.User, error) {
	args := m.Called(ctx, tx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courses.User), args.Error(1)
}

func (m *MockUsers) GetByEmail(ctx context.Context, email string) (*courses.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courses.User), args.Error(1)
}

type MockAdmins struct {
	courses.Admins
	mock.Mock
}

func (m *MockAdmins) Register(ctx context.Context, admin *courses.Admin) (*courses.Admin, error) {
	args := m.Called(ctx, admin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courses.Admin), args.Error(1)
}

func (m *MockAdmins) RegisterTx(ctx context.Context, tx bun.IDB, admin *courses.Admin) (*courses.Admin, error) {
	args := m.Called(ctx, tx, admin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courses.Admin), args.Error(1)
}

func (m *MockAdmins) GetByEmail(ctx context.Context, email string) (*courses.Admin, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courses.Admin), args.Error(1)
}

type MockCourses struct {
	mock.Mock
}

func (m *MockCourses) Create(ctx context.Context, course *courses.Course) (*courses.Course, error) {
	args := m.Called(ctx, course)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courses.Course), args.Error(1)
}

func (m *MockCourses) GetByID(ctx context.Context, id uuid.UUID) (*courses.Course, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courses.Course), args.Error(1)
}

func (m *MockCourses) UpdateOwned(ctx context.Context, courseID, adminID uuid.UUID, fields courses.CourseUpdate) (*courses.Course, error) {
	args := m.Called(ctx, courseID, adminID, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courses.Course), args.Error(1)
}

func (m *MockCourses) ListByCreator(ctx context.Context, adminID uuid.UUID) ([]*courses.Course, error) {
	args := m.Called(ctx, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*courses.Course), args.Error(1)
}

func (m *MockCourses) ListAll(ctx context.Context) ([]*courses.Course, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*courses.Course), args.Error(1)
}

type MockPurchases struct {
	mock.Mock
}

func (m *MockPurchases) Record(ctx context.Context, purchase *courses.Purchase) (*courses.Purchase, error) {
	args := m.Called(ctx, purchase)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courses.Purchase), args.Error(1)
}

func (m *MockPurchases) ListByUser(ctx context.Context, userID uuid.UUID) ([]*courses.Purchase, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*courses.Purchase), args.Error(1)
}

type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Issue(principalID string, variant courses.Variant) (string, error) {
	args := m.Called(principalID, variant)
	return args.String(0), args.Error(1)
}

// MockRepositoryManager hands out the mock stores above
type MockRepositoryManager struct {
	users     *MockUsers
	admins    *MockAdmins
	courses   *MockCourses
	purchases *MockPurchases
}

func NewMockRepositoryManager() *MockRepositoryManager {
	return &MockRepositoryManager{
		users:     &MockUsers{},
		admins:    &MockAdmins{},
		courses:   &MockCourses{},
		purchases: &MockPurchases{},
	}
}

func (m *MockRepositoryManager) Users() courses.Users         { return m.users }
func (m *MockRepositoryManager) Admins() courses.Admins       { return m.admins }
func (m *MockRepositoryManager) Courses() courses.Courses     { return m.courses }
func (m *MockRepositoryManager) Purchases() courses.Purchases { return m.purchases }
func (m *MockRepositoryManager) Validate() error              { return nil }
func (m *MockRepositoryManager) MustValidate()                {}

func (m *MockRepositoryManager) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	return f(ctx, bun.Tx{})
}
