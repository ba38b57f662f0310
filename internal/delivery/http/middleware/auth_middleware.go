package middleware

import (
	"strings"

	domainerrors "github.com/hasaanhameed/TrackCraft/internal/domain/errors"
	"github.com/hasaanhameed/TrackCraft/internal/domain/repository"
	"github.com/hasaanhameed/TrackCraft/internal/domain/service"

	"github.com/labstack/echo/v4"
)

const (
	// ContextKeyCurrentUser is the echo.Context key holding the authenticated user entity.
	ContextKeyCurrentUser = "currentUser"
	// ContextKeyUserID is the echo.Context key holding the authenticated user's ID.
	ContextKeyUserID = "userID"

	headerWWWAuthenticate = "WWW-Authenticate"
	challengeBearer       = "Bearer"
)

// AuthMiddleware provides middleware for bearer token authentication.
// Tokens carry the user's email as subject; the middleware resolves it to a
// live account on every request, so tokens for deleted accounts stop working
// immediately.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	userRepo repository.UserRepository
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, userRepo: userRepo}
}

// challenge marks the response with the bearer challenge and returns the
// credential validation error. Malformed headers, invalid or expired tokens
// and unknown subjects all produce the same 401.
func (m *AuthMiddleware) challenge(c echo.Context) error {
	c.Response().Header().Set(headerWWWAuthenticate, challengeBearer)

	return domainerrors.ErrUnauthorized
}

// Authenticate validates the bearer access token and resolves the current user.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return m.challenge(c)
		}

		// The auth scheme is matched case-insensitively per RFC 7235.
		scheme, tokenString, found := strings.Cut(authHeader, " ")
		tokenString = strings.TrimSpace(tokenString)
		if !found || !strings.EqualFold(scheme, challengeBearer) || tokenString == "" {
			return m.challenge(c)
		}

		claims, err := m.tokenSvc.ValidateToken(tokenString)
		if err != nil {
			return m.challenge(c)
		}

		currentUser, err := m.userRepo.FindByEmail(c.Request().Context(), claims.Email())
		if err != nil {
			return m.challenge(c)
		}

		// Set user info on the context for handlers to use
		c.Set(ContextKeyCurrentUser, currentUser)
		c.Set(ContextKeyUserID, currentUser.ID)

		return next(c)
	}
}
