package courses_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	courses "github.com/goliatone/go-courses"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{
			name:     "valid password",
			password: "abc123!xyz",
			wantErr:  nil,
		},
		{
			name:     "empty password",
			password: "",
			wantErr:  courses.ErrNoEmptyString,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := courses.HashPassword(tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, hash)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, hash)
			assert.NotEqual(t, tt.password, hash)
		})
	}
}

func TestComparePasswordAndHash(t *testing.T) {
	hash, err := courses.HashPassword("abc123!xyz")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		hash     string
		wantErr  error
	}{
		{
			name:     "matching password",
			password: "abc123!xyz",
			hash:     hash,
			wantErr:  nil,
		},
		{
			name:     "wrong password",
			password: "abc123!zzz",
			hash:     hash,
			wantErr:  courses.ErrMismatchedHashAndPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := courses.ComparePasswordAndHash(tt.password, tt.hash)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}

	t.Run("garbage hash", func(t *testing.T) {
		err := courses.ComparePasswordAndHash("abc123!xyz", "not-a-bcrypt-hash")
		assert.Error(t, err)
	})
}
