package courses_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	courses "github.com/goliatone/go-courses"
)

func TestIsTokenExpiredError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
		{
			name: "sentinel",
			err:  courses.ErrTokenExpired,
			want: true,
		},
		{
			name: "wrapped sentinel",
			err:  fmt.Errorf("verify: %w", courses.ErrTokenExpired),
			want: true,
		},
		{
			name: "library message",
			err:  errors.New("token is expired by 5m"),
			want: true,
		},
		{
			name: "unrelated error",
			err:  errors.New("connection refused"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, courses.IsTokenExpiredError(tt.err))
		})
	}
}

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
		{
			name: "sqlite constraint",
			err:  errors.New("constraint failed: UNIQUE constraint failed: users.email (2067)"),
			want: true,
		},
		{
			name: "postgres constraint",
			err:  errors.New(`ERROR: duplicate key value violates unique constraint "users_email_key" (SQLSTATE=23505)`),
			want: true,
		},
		{
			name: "wrapped constraint",
			err:  fmt.Errorf("create user: %w", errors.New("UNIQUE constraint failed: users.email")),
			want: true,
		},
		{
			name: "unrelated error",
			err:  errors.New("connection refused"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, courses.IsUniqueViolation(tt.err))
		})
	}
}
