package api

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/ihrp/tally/internal/services"
)

type authClaims struct {
	UserID uint   `json:"id"`
	Role   string `json:"role"`
	Email  string `json:"email,omitempty"`
	Name   string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

var (
	errNoToken      = errors.New("no token supplied")
	errInvalidToken = errors.New("invalid token")
)

// authenticateRequest locates the signed token in the `token` cookie or an
// Authorization bearer header and verifies it against the server secret.
func (handler *Handler) authenticateRequest(c *fiber.Ctx) (services.Identity, error) {
	rawToken := strings.TrimSpace(c.Cookies(authCookieName))
	if rawToken == "" {
		authorization := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
		if after, found := strings.CutPrefix(authorization, "Bearer "); found {
			rawToken = strings.TrimSpace(after)
		}
	}
	if rawToken == "" {
		return services.Identity{}, errNoToken
	}

	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return handler.secretKey, nil
	})
	if err != nil || !token.Valid {
		return services.Identity{}, errInvalidToken
	}
	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(time.Now()) {
		return services.Identity{}, errInvalidToken
	}

	return services.Identity{
		ID:    claims.UserID,
		Role:  claims.Role,
		Email: claims.Email,
		Name:  claims.Name,
	}, nil
}

// AuthRequired attaches the decoded identity to the request context. A
// missing credential is 401; a credential that fails verification is 400.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	identity, err := handler.authenticateRequest(c)
	if err != nil {
		if errors.Is(err, errNoToken) {
			return apiError(c, fiber.StatusUnauthorized, "unauthenticated")
		}
		return apiError(c, fiber.StatusBadRequest, "invalid token")
	}

	c.Locals(contextIdentity, identity)
	return c.Next()
}

// RequireRoles layers role authorization on top of AuthRequired.
func (handler *Handler) RequireRoles(permittedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := currentIdentity(c)
		if !ok {
			return apiError(c, fiber.StatusUnauthorized, "unauthenticated")
		}
		if !services.RoleAllowed(identity, permittedRoles...) {
			return apiError(c, fiber.StatusForbidden, "insufficient role")
		}
		return c.Next()
	}
}

func (handler *Handler) buildToken(identity services.Identity, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = authTokenTTL
	}
	now := time.Now()

	claims := authClaims{
		UserID: identity.ID,
		Role:   identity.Role,
		Email:  identity.Email,
		Name:   identity.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(identity.ID), 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(handler.secretKey)
}

func (handler *Handler) setAuthCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     authCookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  time.Now().Add(authTokenTTL),
	})
}

func (handler *Handler) clearAuthCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     authCookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}
