package courses

import (
	"errors"
	"strings"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	goerrors "github.com/goliatone/go-errors"
)

// SignupPayload is the request body for user and admin registration. The
// same rules apply to both variants.
type SignupPayload struct {
	Email     string `form:"email" json:"email"`
	Password  string `form:"password" json:"password"`
	FirstName string `form:"first_name" json:"first_name"`
	LastName  string `form:"last_name" json:"last_name"`
}

// Validate will run validation rules. Validation is pure and runs before
// any store access; failures carry a field level error map.
func (r SignupPayload) Validate() *goerrors.Error {
	return goerrors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Email, validation.Required, is.Email),
			validation.Field(
				&r.Password,
				validation.Required,
				validation.Length(6, 20),
				validation.By(validatePasswordComposition),
			),
			validation.Field(&r.FirstName, validation.Required, validation.By(validateSingleWord)),
			validation.Field(&r.LastName, validation.Required),
		)
	}, "Invalid signup payload")
}

// SigninPayload is the request body for user and admin signin
type SigninPayload struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r SigninPayload) Validate() *goerrors.Error {
	return goerrors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Email, validation.Required, is.Email),
			validation.Field(&r.Password, validation.Required),
		)
	}, "Invalid signin payload")
}

// CoursePayload is the request body for course creation
type CoursePayload struct {
	Title       string  `form:"title" json:"title"`
	Description string  `form:"description" json:"description"`
	ImageURL    string  `form:"image_url" json:"image_url"`
	Price       float64 `form:"price" json:"price"`
}

// Validate will run validation rules
func (r CoursePayload) Validate() *goerrors.Error {
	return goerrors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Title, validation.Required),
			validation.Field(&r.Price, validation.Required, validation.Min(0.0)),
			validation.Field(&r.ImageURL, is.URL),
		)
	}, "Invalid course payload")
}

// CourseUpdatePayload is the request body for a course update. All fields
// are optional; the target course id travels alongside it. CreatorID is
// not accepted from clients under any circumstances.
type CourseUpdatePayload struct {
	CourseID    string   `form:"course_id" json:"course_id"`
	Title       *string  `form:"title" json:"title"`
	Description *string  `form:"description" json:"description"`
	ImageURL    *string  `form:"image_url" json:"image_url"`
	Price       *float64 `form:"price" json:"price"`
}

// Validate will run validation rules
func (r CourseUpdatePayload) Validate() *goerrors.Error {
	return goerrors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.CourseID, validation.Required, is.UUID),
		)
	}, "Invalid course update payload")
}

// validatePasswordComposition requires at least one letter, one digit, and
// one character that is neither.
func validatePasswordComposition(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil // Required handles the empty case
	}

	var hasLetter, hasDigit, hasSpecial bool
	for _, r := range s {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}

	switch {
	case !hasLetter:
		return errors.New("must contain at least one letter")
	case !hasDigit:
		return errors.New("must contain at least one digit")
	case !hasSpecial:
		return errors.New("must contain at least one special character")
	}

	return nil
}

// validateSingleWord rejects values with embedded whitespace
func validateSingleWord(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}

	if len(strings.Fields(s)) != 1 || s != strings.TrimSpace(s) {
		return errors.New("must be a single word")
	}

	return nil
}
