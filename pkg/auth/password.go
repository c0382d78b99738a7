package auth

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const (
	BcryptCost     = 14
	MinPasswordLen = 9
	MaxPasswordLen = 72 // bcrypt input limit
)

// PasswordValidationError holds per-rule validation messages
type PasswordValidationError struct {
	Errors []string
}

func (e *PasswordValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "password validation failed"
	}
	return "invalid password: " + strings.Join(e.Errors, "; ")
}

func HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

func ComparePassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// ValidatePassword enforces password strength for registration.
// Rules: 9-72 characters (bcrypt's input cap), not purely numeric, not trivially similar
// to the account email.
func ValidatePassword(password, email string) error {
	errs := make([]string, 0)

	if len(password) < MinPasswordLen {
		errs = append(errs, fmt.Sprintf("must be at least %d characters", MinPasswordLen))
	}
	if len(password) > MaxPasswordLen {
		errs = append(errs, fmt.Sprintf("must be at most %d characters", MaxPasswordLen))
	}

	if password != "" && isEntirelyNumeric(password) {
		errs = append(errs, "must not be entirely numeric")
	}

	if similarToEmail(password, email) {
		errs = append(errs, "must not be similar to the email address")
	}

	if len(errs) > 0 {
		return &PasswordValidationError{Errors: errs}
	}

	return nil
}

func isEntirelyNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// similarToEmail catches passwords that contain the whole email or its
// local part (and the reverse), case-insensitively.
func similarToEmail(password, email string) bool {
	if email == "" {
		return false
	}

	p := strings.ToLower(password)
	e := strings.ToLower(strings.TrimSpace(email))

	candidates := []string{e}
	if at := strings.Index(e, "@"); at > 0 {
		candidates = append(candidates, e[:at])
	}

	for _, c := range candidates {
		if len(c) < 4 {
			continue
		}
		if strings.Contains(p, c) || strings.Contains(c, p) {
			return true
		}
	}

	return false
}
