package api

import (
	"time"

	"github.com/ihrp/tally/internal/db"
	"github.com/ihrp/tally/internal/services"
	"go.uber.org/zap"
)

const (
	authCookieName  = "token"
	authTokenTTL    = 24 * time.Hour
	contextIdentity = "identity"

	loginAttemptLimit  = 5
	loginAttemptWindow = 15 * time.Minute
)

type Handler struct {
	logger       *zap.SugaredLogger
	secretKey    []byte
	cookieSecure bool

	auth     *services.AuthService
	users    *services.UserService
	capacity *services.CapacityService
	actuals  *services.ActualsService
	plans    *services.PlanService

	loginLimiter *attemptLimiter
}

func NewHandler(repos *db.Repositories, secret string, cookieSecure bool, logger *zap.SugaredLogger) *Handler {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Handler{
		logger:       logger,
		secretKey:    []byte(secret),
		cookieSecure: cookieSecure,
		auth:         services.NewAuthService(repos.Users),
		users:        services.NewUserService(repos.Users),
		capacity:     services.NewCapacityService(repos.Capacity),
		actuals:      services.NewActualsService(repos.Actuals),
		plans:        services.NewPlanService(repos.Plans),
		loginLimiter: newAttemptLimiter(),
	}
}

type signupInput struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"dateOfBirth"`
	Department  string `json:"department"`
	Role        string `json:"role"`
	Password    string `json:"password"`
}

type credentialsInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type forgotPasswordInput struct {
	Email string `json:"email"`
}

type resetPasswordInput struct {
	Email    string `json:"email"`
	Token    string `json:"token"`
	Password string `json:"password"`
}

type userUpdateInput struct {
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	DateOfBirth *string `json:"dateOfBirth"`
	Department  *string `json:"department"`
	Role        *string `json:"role"`
	Password    *string `json:"password"`
}
