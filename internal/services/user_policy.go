package services

import (
	"errors"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/ihrp/tally/internal/models"
)

var (
	ErrAuthCredentialsInvalid = errors.New("auth credentials invalid")
	ErrInvalidEmail           = errors.New("invalid email address")
	ErrInvalidPhone           = errors.New("phone must be 8 digits")
	ErrInvalidDateOfBirth     = errors.New("date of birth must be dd/mm/yyyy")
	ErrInvalidDepartment      = errors.New("unknown department")
	ErrInvalidRole            = errors.New("unknown role")
)

var phoneFormatRegex = regexp.MustCompile(`^\d{8}$`)

func NormalizeAuthEmail(raw string) string {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return ""
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ""
	}
	return email
}

func NormalizeCredentialsInput(emailRaw string, passwordRaw string) (string, string, error) {
	email := NormalizeAuthEmail(emailRaw)
	password := strings.TrimSpace(passwordRaw)
	if email == "" || password == "" {
		return "", "", ErrAuthCredentialsInvalid
	}
	return email, password, nil
}

func ValidatePhone(phone string) error {
	if !phoneFormatRegex.MatchString(strings.TrimSpace(phone)) {
		return ErrInvalidPhone
	}
	return nil
}

// ValidateDateOfBirth accepts dd/mm/yyyy and rejects impossible dates.
func ValidateDateOfBirth(value string) error {
	if _, err := time.Parse("02/01/2006", strings.TrimSpace(value)); err != nil {
		return ErrInvalidDateOfBirth
	}
	return nil
}

func ValidateDepartment(department string) error {
	for _, known := range models.Departments() {
		if department == known {
			return nil
		}
	}
	return ErrInvalidDepartment
}

func ValidateRole(role string) error {
	switch role {
	case models.RoleAdmin, models.RoleMember:
		return nil
	default:
		return ErrInvalidRole
	}
}
