package services

import (
	"errors"
	"strings"

	"github.com/ihrp/tally/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

type UserAdminRepository interface {
	FindByID(userID uint) (models.User, error)
	ExistsByNormalizedEmail(email string) (bool, error)
	ListAll() ([]models.User, error)
	Save(user *models.User) error
	DeleteWithEntries(userID uint) error
}

type UserService struct {
	users UserAdminRepository
}

func NewUserService(users UserAdminRepository) *UserService {
	return &UserService{users: users}
}

func (service *UserService) ListAll() ([]models.User, error) {
	return service.users.ListAll()
}

func (service *UserService) FindByID(userID uint) (models.User, error) {
	user, err := service.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// UserUpdateInput carries a partial update; nil fields are left untouched.
type UserUpdateInput struct {
	FirstName   *string
	LastName    *string
	Email       *string
	Phone       *string
	DateOfBirth *string
	Department  *string
	Role        *string
	Password    *string
}

// Update applies a shallow merge of the provided fields. Every provided field
// goes through the same validation as signup; a changed email must stay unique
// and a new password is re-hashed.
func (service *UserService) Update(userID uint, input UserUpdateInput) (models.User, error) {
	user, err := service.FindByID(userID)
	if err != nil {
		return models.User{}, err
	}

	if input.FirstName != nil {
		if strings.TrimSpace(*input.FirstName) == "" {
			return models.User{}, ErrAuthCredentialsInvalid
		}
		user.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		if strings.TrimSpace(*input.LastName) == "" {
			return models.User{}, ErrAuthCredentialsInvalid
		}
		user.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Email != nil {
		email := NormalizeAuthEmail(*input.Email)
		if email == "" {
			return models.User{}, ErrInvalidEmail
		}
		if email != user.Email {
			taken, err := service.users.ExistsByNormalizedEmail(email)
			if err != nil {
				return models.User{}, err
			}
			if taken {
				return models.User{}, ErrEmailTaken
			}
			user.Email = email
		}
	}
	if input.Phone != nil {
		if err := ValidatePhone(*input.Phone); err != nil {
			return models.User{}, err
		}
		user.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.DateOfBirth != nil {
		if err := ValidateDateOfBirth(*input.DateOfBirth); err != nil {
			return models.User{}, err
		}
		user.DateOfBirth = strings.TrimSpace(*input.DateOfBirth)
	}
	if input.Department != nil {
		if err := ValidateDepartment(*input.Department); err != nil {
			return models.User{}, err
		}
		user.Department = *input.Department
	}
	if input.Role != nil {
		if err := ValidateRole(*input.Role); err != nil {
			return models.User{}, err
		}
		user.Role = *input.Role
	}
	if input.Password != nil {
		if err := ValidatePasswordStrength(*input.Password); err != nil {
			return models.User{}, err
		}
		passwordHash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return models.User{}, err
		}
		user.PasswordHash = string(passwordHash)
	}

	if err := service.users.Save(&user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (service *UserService) Delete(userID uint) error {
	if _, err := service.FindByID(userID); err != nil {
		return err
	}
	return service.users.DeleteWithEntries(userID)
}
