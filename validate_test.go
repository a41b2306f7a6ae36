package courses_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	courses "github.com/goliatone/go-courses"
)

func validSignup() courses.SignupPayload {
	return courses.SignupPayload{
		Email:     "ada@example.com",
		Password:  "abc123!",
		FirstName: "Ada",
		LastName:  "Lovelace",
	}
}

func TestSignupPayloadValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*courses.SignupPayload)
		wantKey string
	}{
		{
			name:   "valid payload",
			mutate: func(p *courses.SignupPayload) {},
		},
		{
			name:    "missing email",
			mutate:  func(p *courses.SignupPayload) { p.Email = "" },
			wantKey: "email",
		},
		{
			name:    "malformed email",
			mutate:  func(p *courses.SignupPayload) { p.Email = "not-an-email" },
			wantKey: "email",
		},
		{
			name:    "password with letters only",
			mutate:  func(p *courses.SignupPayload) { p.Password = "abcdef" },
			wantKey: "password",
		},
		{
			name:    "password without special character",
			mutate:  func(p *courses.SignupPayload) { p.Password = "abc123" },
			wantKey: "password",
		},
		{
			name:    "password without digit",
			mutate:  func(p *courses.SignupPayload) { p.Password = "abcdef!" },
			wantKey: "password",
		},
		{
			name:    "password too short",
			mutate:  func(p *courses.SignupPayload) { p.Password = "a1!" },
			wantKey: "password",
		},
		{
			name:    "password too long",
			mutate:  func(p *courses.SignupPayload) { p.Password = "a1!aaaaaaaaaaaaaaaaaaaaaa" },
			wantKey: "password",
		},
		{
			name:    "first name with two words",
			mutate:  func(p *courses.SignupPayload) { p.FirstName = "Ada Augusta" },
			wantKey: "first_name",
		},
		{
			name:    "first name with leading space",
			mutate:  func(p *courses.SignupPayload) { p.FirstName = " Ada" },
			wantKey: "first_name",
		},
		{
			name:    "missing first name",
			mutate:  func(p *courses.SignupPayload) { p.FirstName = "" },
			wantKey: "first_name",
		},
		{
			name:    "missing last name",
			mutate:  func(p *courses.SignupPayload) { p.LastName = "" },
			wantKey: "last_name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := validSignup()
			tt.mutate(&payload)

			err := payload.Validate()
			if tt.wantKey == "" {
				assert.Nil(t, err)
				return
			}

			require.NotNil(t, err)
			assert.Contains(t, err.ValidationMap(), tt.wantKey)
		})
	}
}

func TestSignupPayloadPasswordBoundaries(t *testing.T) {
	payload := validSignup()

	payload.Password = "abc12!" // exactly 6
	assert.Nil(t, payload.Validate())

	payload.Password = "abc123!aaaaaaaaaaaaa" // exactly 20
	assert.Nil(t, payload.Validate())
}

func TestSigninPayloadValidate(t *testing.T) {
	tests := []struct {
		name    string
		payload courses.SigninPayload
		wantKey string
	}{
		{
			name:    "valid payload",
			payload: courses.SigninPayload{Email: "ada@example.com", Password: "abc123!"},
		},
		{
			name:    "missing email",
			payload: courses.SigninPayload{Password: "abc123!"},
			wantKey: "email",
		},
		{
			name:    "missing password",
			payload: courses.SigninPayload{Email: "ada@example.com"},
			wantKey: "password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.payload.Validate()
			if tt.wantKey == "" {
				assert.Nil(t, err)
				return
			}
			require.NotNil(t, err)
			assert.Contains(t, err.ValidationMap(), tt.wantKey)
		})
	}
}

func TestCoursePayloadValidate(t *testing.T) {
	tests := []struct {
		name    string
		payload courses.CoursePayload
		wantKey string
	}{
		{
			name: "valid payload",
			payload: courses.CoursePayload{
				Title:    "Analytical Engines 101",
				ImageURL: "https://cdn.example.com/ae101.png",
				Price:    49.99,
			},
		},
		{
			name:    "missing title",
			payload: courses.CoursePayload{Price: 49.99},
			wantKey: "title",
		},
		{
			name:    "missing price",
			payload: courses.CoursePayload{Title: "Analytical Engines 101"},
			wantKey: "price",
		},
		{
			name: "malformed image url",
			payload: courses.CoursePayload{
				Title:    "Analytical Engines 101",
				ImageURL: "::not a url::",
				Price:    49.99,
			},
			wantKey: "image_url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.payload.Validate()
			if tt.wantKey == "" {
				assert.Nil(t, err)
				return
			}
			require.NotNil(t, err)
			assert.Contains(t, err.ValidationMap(), tt.wantKey)
		})
	}
}

func TestCourseUpdatePayloadValidate(t *testing.T) {
	title := "New title"

	t.Run("valid payload", func(t *testing.T) {
		payload := courses.CourseUpdatePayload{
			CourseID: "0f8f9a3e-1f44-4b6e-9a39-0f0e2f1b9c11",
			Title:    &title,
		}
		assert.Nil(t, payload.Validate())
	})

	t.Run("missing course id", func(t *testing.T) {
		payload := courses.CourseUpdatePayload{Title: &title}
		err := payload.Validate()
		require.NotNil(t, err)
		assert.Contains(t, err.ValidationMap(), "course_id")
	})

	t.Run("malformed course id", func(t *testing.T) {
		payload := courses.CourseUpdatePayload{CourseID: "not-a-uuid"}
		err := payload.Validate()
		require.NotNil(t, err)
		assert.Contains(t, err.ValidationMap(), "course_id")
	})
}
