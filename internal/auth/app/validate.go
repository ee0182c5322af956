package app

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	minPasswordLen = 6
	minNameLen     = 2
	maxNameLen     = 100
)

func validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: email is not valid", ErrInvalidInput)
	}
	return nil
}

func validateLogin(in LoginInput) error {
	if err := validateEmail(in.Email); err != nil {
		return err
	}
	if in.Password == "" {
		return fmt.Errorf("%w: password is required", ErrInvalidInput)
	}
	if len(in.Password) < minPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLen)
	}
	return nil
}

func validateRegister(in RegisterInput) error {
	name := strings.TrimSpace(in.FullName)
	if name == "" {
		return fmt.Errorf("%w: full name is required", ErrInvalidInput)
	}
	if n := utf8.RuneCountInString(name); n < minNameLen || n > maxNameLen {
		return fmt.Errorf("%w: full name must have between %d and %d characters", ErrInvalidInput, minNameLen, maxNameLen)
	}

	if err := validateLogin(LoginInput{Email: in.Email, Password: in.Password}); err != nil {
		return err
	}

	if !hasUpperLowerDigit(in.Password) {
		return fmt.Errorf("%w: password must contain an upper case letter, a lower case letter and a digit", ErrInvalidInput)
	}
	if in.Password != in.ConfirmPassword {
		return fmt.Errorf("%w: passwords do not match", ErrInvalidInput)
	}
	return nil
}

func hasUpperLowerDigit(s string) bool {
	var upper, lower, digit bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && lower && digit
}
