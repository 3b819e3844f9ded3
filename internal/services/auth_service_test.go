package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ihrp/tally/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	users  map[uint]models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]models.User), nextID: 1}
}

func (repo *fakeUserRepo) ExistsByNormalizedEmail(email string) (bool, error) {
	for _, user := range repo.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (repo *fakeUserRepo) FindByNormalizedEmail(email string) (models.User, error) {
	for _, user := range repo.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (repo *fakeUserRepo) FindByID(userID uint) (models.User, error) {
	user, ok := repo.users[userID]
	if !ok {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (repo *fakeUserRepo) Create(user *models.User) error {
	user.ID = repo.nextID
	repo.nextID++
	repo.users[user.ID] = *user
	return nil
}

func (repo *fakeUserRepo) Save(user *models.User) error {
	repo.users[user.ID] = *user
	return nil
}

func (repo *fakeUserRepo) ListAll() ([]models.User, error) {
	listed := make([]models.User, 0, len(repo.users))
	for _, user := range repo.users {
		listed = append(listed, user)
	}
	return listed, nil
}

func (repo *fakeUserRepo) DeleteWithEntries(userID uint) error {
	delete(repo.users, userID)
	return nil
}

func validSignupInput() SignupInput {
	return SignupInput{
		FirstName:   "Monica",
		LastName:    "Tan",
		Email:       "Monica@IHRP.com",
		Phone:       "91234567",
		DateOfBirth: "14/02/1992",
		Department:  "Consulting",
		Password:    "Str0ngPass!x",
	}
}

func TestSignupCreatesUser(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	service := NewAuthService(repo)

	user, err := service.Signup(validSignupInput())
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if user.Email != "monica@ihrp.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.Role != models.RoleMember {
		t.Fatalf("expected default role member, got %q", user.Role)
	}
	if user.CompanyName != models.CompanyName {
		t.Fatalf("expected fixed company name, got %q", user.CompanyName)
	}
	if user.PasswordHash == "" || user.PasswordHash == "Str0ngPass!x" {
		t.Fatalf("password must be stored hashed")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Str0ngPass!x")) != nil {
		t.Fatalf("stored hash must verify against the raw password")
	}
}

func TestSignupValidation(t *testing.T) {
	t.Parallel()

	service := NewAuthService(newFakeUserRepo())

	cases := []struct {
		name    string
		mutate  func(*SignupInput)
		wantErr error
	}{
		{name: "bad email", mutate: func(i *SignupInput) { i.Email = "nope" }, wantErr: ErrInvalidEmail},
		{name: "blank first name", mutate: func(i *SignupInput) { i.FirstName = "  " }, wantErr: ErrAuthCredentialsInvalid},
		{name: "blank last name", mutate: func(i *SignupInput) { i.LastName = "" }, wantErr: ErrAuthCredentialsInvalid},
		{name: "short phone", mutate: func(i *SignupInput) { i.Phone = "1234" }, wantErr: ErrInvalidPhone},
		{name: "iso date of birth", mutate: func(i *SignupInput) { i.DateOfBirth = "1992-02-14" }, wantErr: ErrInvalidDateOfBirth},
		{name: "unknown department", mutate: func(i *SignupInput) { i.Department = "Marketing" }, wantErr: ErrInvalidDepartment},
		{name: "unknown role", mutate: func(i *SignupInput) { i.Role = "owner" }, wantErr: ErrInvalidRole},
		{name: "weak password", mutate: func(i *SignupInput) { i.Password = "short" }, wantErr: ErrWeakPassword},
	}

	for _, testCase := range cases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			input := validSignupInput()
			testCase.mutate(&input)
			if _, err := service.Signup(input); !errors.Is(err, testCase.wantErr) {
				t.Fatalf("expected %v, got %v", testCase.wantErr, err)
			}
		})
	}
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	t.Parallel()

	service := NewAuthService(newFakeUserRepo())
	if _, err := service.Signup(validSignupInput()); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}

	duplicate := validSignupInput()
	duplicate.Email = " MONICA@ihrp.com "
	if _, err := service.Signup(duplicate); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	service := NewAuthService(newFakeUserRepo())
	if _, err := service.Signup(validSignupInput()); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	user, err := service.Authenticate("monica@ihrp.com", "Str0ngPass!x")
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if user.Email != "monica@ihrp.com" {
		t.Fatalf("unexpected user %q", user.Email)
	}

	// Unknown email and wrong password must be indistinguishable.
	if _, err := service.Authenticate("nobody@ihrp.com", "Str0ngPass!x"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
	if _, err := service.Authenticate("monica@ihrp.com", "WrongPass1!x"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, err := service.Authenticate("not-an-email", "Str0ngPass!x"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for malformed email, got %v", err)
	}
}

func TestResetTokenRoundtrip(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	service := NewAuthService(repo)
	if _, err := service.Signup(validSignupInput()); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	token, err := service.IssueResetToken("monica@ihrp.com")
	if err != nil {
		t.Fatalf("issue token failed: %v", err)
	}
	if strings.TrimSpace(token) == "" {
		t.Fatalf("expected a raw token back")
	}

	stored, _ := repo.FindByNormalizedEmail("monica@ihrp.com")
	if stored.ResetTokenHash == token {
		t.Fatalf("raw token must never be persisted")
	}

	if err := service.ResetPassword("monica@ihrp.com", token, "N3wStr0ng!pw"); err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if _, err := service.Authenticate("monica@ihrp.com", "N3wStr0ng!pw"); err != nil {
		t.Fatalf("new password must authenticate: %v", err)
	}
	if _, err := service.Authenticate("monica@ihrp.com", "Str0ngPass!x"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password must stop working, got %v", err)
	}

	// The token is single use.
	if err := service.ResetPassword("monica@ihrp.com", token, "An0therStr0ng!"); !errors.Is(err, ErrResetTokenInvalid) {
		t.Fatalf("expected replayed token to be rejected, got %v", err)
	}
}

func TestResetTokenRejections(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	service := NewAuthService(repo)
	if _, err := service.Signup(validSignupInput()); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	if _, err := service.IssueResetToken("nobody@ihrp.com"); !errors.Is(err, ErrUnknownEmail) {
		t.Fatalf("expected ErrUnknownEmail, got %v", err)
	}

	token, err := service.IssueResetToken("monica@ihrp.com")
	if err != nil {
		t.Fatalf("issue token failed: %v", err)
	}

	if err := service.ResetPassword("monica@ihrp.com", "wrong-token", "N3wStr0ng!pw"); !errors.Is(err, ErrResetTokenInvalid) {
		t.Fatalf("expected wrong token rejection, got %v", err)
	}
	if err := service.ResetPassword("monica@ihrp.com", token, "weak"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected weak replacement password rejection, got %v", err)
	}

	// Expire the token in place.
	stored, _ := repo.FindByNormalizedEmail("monica@ihrp.com")
	expired := time.Now().Add(-time.Minute)
	stored.ResetTokenExpiresAt = &expired
	if err := repo.Save(&stored); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := service.ResetPassword("monica@ihrp.com", token, "N3wStr0ng!pw"); !errors.Is(err, ErrResetTokenInvalid) {
		t.Fatalf("expected expired token rejection, got %v", err)
	}
}
