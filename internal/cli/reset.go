// Package cli holds the operational commands that run against the stores
// directly, outside the HTTP server.
package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ihrp/tally/internal/db"
	"github.com/ihrp/tally/internal/models"
	"github.com/ihrp/tally/internal/security"
	"github.com/ihrp/tally/internal/services"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RunResetPasswordCommand resets the given account to a generated temporary
// password and prints it. It is the recovery path when no admin can log in.
func RunResetPasswordCommand(docStorePath string, email string) error {
	normalizedEmail := services.NormalizeAuthEmail(normalizeEmailArg(email))
	if normalizedEmail == "" {
		return errors.New("a valid email is required")
	}

	database, err := db.OpenDocStore(docStorePath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}

	var user models.User
	if err := database.Where("email = ?", normalizedEmail).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user %s not found", normalizedEmail)
		}
		return fmt.Errorf("load user: %w", err)
	}

	temporaryPassword, err := generateTemporaryPassword(14)
	if err != nil {
		return fmt.Errorf("generate temporary password: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(temporaryPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash temporary password: %w", err)
	}

	user.PasswordHash = string(passwordHash)
	user.ResetTokenHash = ""
	user.ResetTokenExpiresAt = nil
	if err := database.Save(&user).Error; err != nil {
		return fmt.Errorf("update user password: %w", err)
	}

	fmt.Println("Password reset successful")
	fmt.Printf("Temporary password: %s\n", temporaryPassword)
	fmt.Println("Ask the user to change it after logging in.")

	return nil
}

// generateTemporaryPassword keeps drawing until the result satisfies the
// account password policy, so the printed password is always accepted by a
// follow-up change through the API.
func generateTemporaryPassword(length int) (string, error) {
	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789!@#$%&*"
	if length < 10 {
		length = 10
	}

	for {
		candidate, err := security.RandomString(length, alphabet)
		if err != nil {
			return "", err
		}
		if services.ValidatePasswordStrength(candidate) == nil {
			return candidate, nil
		}
	}
}

// normalizeEmailArg trims surrounding quotes shells sometimes leave behind.
func normalizeEmailArg(raw string) string {
	return strings.Trim(strings.TrimSpace(raw), `"'`)
}
