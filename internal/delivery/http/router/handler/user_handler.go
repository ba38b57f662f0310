// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/hasaanhameed/TrackCraft/internal/delivery/http/middleware"
	"github.com/hasaanhameed/TrackCraft/internal/delivery/http/response"
	"github.com/hasaanhameed/TrackCraft/internal/domain/entity"
	"github.com/hasaanhameed/TrackCraft/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UserHandler holds dependencies for user-related handlers.
type UserHandler struct {
	userUC    usecase.UserUsecase
	profileUC usecase.ProfileUsecase
	logger    *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(userUC usecase.UserUsecase, profileUC usecase.ProfileUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userUC:    userUC,
		profileUC: profileUC,
		logger:    logger,
	}
}

// signupRequest is the payload for user registration.
type signupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// loginRequest is the form payload for the token endpoint.
type loginRequest struct {
	Username string `form:"username" json:"username" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
}

// monthlyLimitRequest is the payload for setting a spending limit.
type monthlyLimitRequest struct {
	MonthlyLimit float64 `json:"monthly_limit" validate:"gte=0"`
}

// userResponse is the outward representation of a user. The password hash
// never leaves the service.
type userResponse struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	MonthlyLimit *float64 `json:"monthly_limit,omitempty"`
}

// loginResponse is the bearer token payload.
type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

func toUserResponse(user *entity.User) *userResponse {
	return &userResponse{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		MonthlyLimit: user.MonthlyLimit,
	}
}

// currentUser extracts the authenticated user set by the auth middleware.
func currentUser(c echo.Context) (*entity.User, bool) {
	user, ok := c.Get(middleware.ContextKeyCurrentUser).(*entity.User)

	return user, ok
}

// Signup handles the user registration request.
func (h *UserHandler) Signup(c echo.Context) error {
	var input signupRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid signup input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.userUC.Signup(c.Request().Context(), &usecase.SignupInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toUserResponse(output.User), "User registered successfully")
}

// Login handles the credential exchange for a bearer token.
func (h *UserHandler) Login(c echo.Context) error {
	var input loginRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.userUC.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    input.Username,
		Password: input.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, loginResponse{
		AccessToken: output.AccessToken,
		TokenType:   output.TokenType,
		ExpiresIn:   output.ExpiresIn,
	}, "Login successful")
}

// GetMe handles the request to get the current user's profile.
func (h *UserHandler) GetMe(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Could not validate credentials")
	}

	profile, err := h.profileUC.GetProfile(c.Request().Context(), user.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserResponse(profile), "Profile retrieved successfully")
}

// GetUserByID handles the public user lookup request.
func (h *UserHandler) GetUserByID(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid user ID")
	}

	user, err := h.profileUC.GetUserByID(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserResponse(user), "User retrieved successfully")
}

// UpdateMonthlyLimit handles the request to set a user's monthly spending limit.
func (h *UserHandler) UpdateMonthlyLimit(c echo.Context) error {
	actor, ok := currentUser(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Could not validate credentials")
	}

	targetID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid user ID")
	}

	var input monthlyLimitRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid monthly limit input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	updated, err := h.profileUC.UpdateMonthlyLimit(c.Request().Context(), actor.ID, targetID, input.MonthlyLimit)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserResponse(updated), "Monthly limit updated successfully")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
