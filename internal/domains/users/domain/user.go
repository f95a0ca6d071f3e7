package domain

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrEmptyName     = errors.New("name is required")
	ErrInvalidEmail  = errors.New("email address is invalid")
	ErrEmptyPassword = errors.New("password is required")
	ErrWeakPassword  = errors.New("password must be at least 4 characters")
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 4

var validate = validator.New()

// User is a registered storefront customer. PasswordHash holds a bcrypt
// digest, never the plain password.
type User struct {
	ID           int64
	Name         string `validate:"required,max=120"`
	Email        string `validate:"required,email,max=254"`
	PasswordHash string
}

// NewUser normalises and validates the profile fields. The password hash is
// set separately by the application layer.
func NewUser(name, email string) (*User, error) {
	u := &User{
		Name:  strings.TrimSpace(name),
		Email: NormalizeEmail(email),
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}

// NormalizeEmail trims and lower-cases an address so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u *User) Validate() error {
	err := validate.Struct(u)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	switch fieldErrs[0].Field() {
	case "Name":
		return ErrEmptyName
	case "Email":
		return ErrInvalidEmail
	default:
		return err
	}
}

// CheckPasswordPolicy applies the registration password rules.
func CheckPasswordPolicy(password string) error {
	if strings.TrimSpace(password) == "" {
		return ErrEmptyPassword
	}
	if len(password) < MinPasswordLength {
		return ErrWeakPassword
	}
	return nil
}
