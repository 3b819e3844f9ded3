package services

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ihrp/tally/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnknownEmail       = errors.New("unknown email")
	ErrResetTokenInvalid  = errors.New("reset token invalid or expired")
)

const resetTokenTTL = time.Hour

type AuthUserRepository interface {
	ExistsByNormalizedEmail(email string) (bool, error)
	FindByNormalizedEmail(email string) (models.User, error)
	FindByID(userID uint) (models.User, error)
	Create(user *models.User) error
	Save(user *models.User) error
}

type AuthService struct {
	users AuthUserRepository
}

func NewAuthService(users AuthUserRepository) *AuthService {
	return &AuthService{users: users}
}

type SignupInput struct {
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	DateOfBirth string
	Department  string
	Role        string
	Password    string
}

// Signup validates every identity field and the password policy, then stores
// the user with a hashed password. The company name is fixed.
func (service *AuthService) Signup(input SignupInput) (models.User, error) {
	email := NormalizeAuthEmail(input.Email)
	if email == "" {
		return models.User{}, ErrInvalidEmail
	}
	if strings.TrimSpace(input.FirstName) == "" || strings.TrimSpace(input.LastName) == "" {
		return models.User{}, ErrAuthCredentialsInvalid
	}
	if err := ValidatePhone(input.Phone); err != nil {
		return models.User{}, err
	}
	if err := ValidateDateOfBirth(input.DateOfBirth); err != nil {
		return models.User{}, err
	}
	if err := ValidateDepartment(input.Department); err != nil {
		return models.User{}, err
	}
	role := input.Role
	if role == "" {
		role = models.RoleMember
	}
	if err := ValidateRole(role); err != nil {
		return models.User{}, err
	}
	if err := ValidatePasswordStrength(input.Password); err != nil {
		return models.User{}, err
	}

	taken, err := service.users.ExistsByNormalizedEmail(email)
	if err != nil {
		return models.User{}, err
	}
	if taken {
		return models.User{}, ErrEmailTaken
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Email:        email,
		Phone:        strings.TrimSpace(input.Phone),
		DateOfBirth:  strings.TrimSpace(input.DateOfBirth),
		Department:   input.Department,
		Role:         role,
		CompanyName:  models.CompanyName,
		PasswordHash: string(passwordHash),
	}
	if err := service.users.Create(&user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Authenticate never reveals whether the email exists: unknown email and wrong
// password collapse into the same error.
func (service *AuthService) Authenticate(emailRaw string, passwordRaw string) (models.User, error) {
	email, password, err := NormalizeCredentialsInput(emailRaw, passwordRaw)
	if err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	user, err := service.users.FindByNormalizedEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (service *AuthService) FindByID(userID uint) (models.User, error) {
	return service.users.FindByID(userID)
}

// IssueResetToken stores a hashed one-hour reset token on the user row and
// returns the raw token. The raw value is never persisted.
func (service *AuthService) IssueResetToken(emailRaw string) (string, error) {
	email := NormalizeAuthEmail(emailRaw)
	if email == "" {
		return "", ErrUnknownEmail
	}

	user, err := service.users.FindByNormalizedEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUnknownEmail
		}
		return "", err
	}

	token := uuid.NewString()
	tokenHash, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	expiry := time.Now().Add(resetTokenTTL)
	user.ResetTokenHash = string(tokenHash)
	user.ResetTokenExpiresAt = &expiry
	if err := service.users.Save(&user); err != nil {
		return "", err
	}
	return token, nil
}

// ResetPassword verifies an unexpired token, applies the password policy and
// clears the token so it cannot be replayed.
func (service *AuthService) ResetPassword(emailRaw string, token string, newPassword string) error {
	email := NormalizeAuthEmail(emailRaw)
	if email == "" {
		return ErrResetTokenInvalid
	}

	user, err := service.users.FindByNormalizedEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrResetTokenInvalid
		}
		return err
	}

	if strings.TrimSpace(user.ResetTokenHash) == "" ||
		user.ResetTokenExpiresAt == nil ||
		user.ResetTokenExpiresAt.Before(time.Now()) {
		return ErrResetTokenInvalid
	}
	if bcrypt.CompareHashAndPassword([]byte(user.ResetTokenHash), []byte(strings.TrimSpace(token))) != nil {
		return ErrResetTokenInvalid
	}

	if err := ValidatePasswordStrength(newPassword); err != nil {
		return err
	}
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.PasswordHash = string(passwordHash)
	user.ResetTokenHash = ""
	user.ResetTokenExpiresAt = nil
	return service.users.Save(&user)
}
