package forms

import "strings"

// credentials is the validator target for the login form
type credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// LoginForm is the draft state of the sign-in screen
type LoginForm struct {
	Email    string
	Password string
}

// NewLoginForm creates an empty login form
func NewLoginForm() *LoginForm {
	return &LoginForm{}
}

// Submit validates the credentials and invokes submit exactly once.
// The password is handed off as-is; only the email is trimmed.
func (f *LoginForm) Submit(submit func(email, password string)) error {
	creds := credentials{
		Email:    strings.TrimSpace(f.Email),
		Password: f.Password,
	}

	if err := validate.Struct(creds); err != nil {
		if creds.Email == "" || creds.Password == "" {
			return newValidationError("login", "email and password are required")
		}
		return newValidationError("login", "email address is not valid")
	}

	submit(creds.Email, creds.Password)
	f.Password = ""
	return nil
}
