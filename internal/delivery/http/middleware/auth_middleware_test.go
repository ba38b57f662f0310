package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hasaanhameed/TrackCraft/internal/domain/entity"
	domainerrors "github.com/hasaanhameed/TrackCraft/internal/domain/errors"
	"github.com/hasaanhameed/TrackCraft/internal/domain/repository"
	"github.com/hasaanhameed/TrackCraft/internal/domain/service"
	mockRepo "github.com/hasaanhameed/TrackCraft/internal/mocks/repository"
	mockService "github.com/hasaanhameed/TrackCraft/internal/mocks/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type authFixtures struct {
	middleware *AuthMiddleware
	tokenSvc   *mockService.MockTokenService
	userRepo   *mockRepo.MockUserRepository
}

func createTestAuthMiddleware(t *testing.T) authFixtures {
	tokenSvc := mockService.NewMockTokenService(t)
	userRepo := mockRepo.NewMockUserRepository(t)

	return authFixtures{
		middleware: NewAuthMiddleware(tokenSvc, userRepo),
		tokenSvc:   tokenSvc,
		userRepo:   userRepo,
	}
}

func newAuthTestContext(authHeader string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/expenses/get_expenses", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func nextRecorder(called *bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		*called = true

		return nil
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	fx := createTestAuthMiddleware(t)
	c, rec := newAuthTestContext("")

	var called bool
	err := fx.middleware.Authenticate(nextRecorder(&called))(c)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthorized))
	assert.False(t, called)
	assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	fx := createTestAuthMiddleware(t)
	c, rec := newAuthTestContext("Token abc123")

	var called bool
	err := fx.middleware.Authenticate(nextRecorder(&called))(c)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthorized))
	assert.False(t, called)
	assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	fx := createTestAuthMiddleware(t)
	c, rec := newAuthTestContext("Bearer bad-token")

	fx.tokenSvc.EXPECT().
		ValidateToken("bad-token").
		Return(nil, domainerrors.ErrUnauthorized.WrapMessage("token validation failed"))

	var called bool
	err := fx.middleware.Authenticate(nextRecorder(&called))(c)

	require.Error(t, err)
	assert.False(t, called)
	assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
}

func TestAuthMiddleware_UnknownSubject(t *testing.T) {
	fx := createTestAuthMiddleware(t)
	c, _ := newAuthTestContext("Bearer good-token")

	claims := &service.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "gone@example.com"}}
	fx.tokenSvc.EXPECT().ValidateToken("good-token").Return(claims, nil)
	// A valid token for a deleted account is rejected like any bad credential.
	fx.userRepo.EXPECT().
		FindByEmail(mock.Anything, "gone@example.com").
		Return(nil, repository.ErrUserNotFound)

	var called bool
	err := fx.middleware.Authenticate(nextRecorder(&called))(c)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthorized))
	assert.False(t, called)
}

func TestAuthMiddleware_LowercaseScheme(t *testing.T) {
	fx := createTestAuthMiddleware(t)
	c, _ := newAuthTestContext("bearer good-token")

	claims := &service.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "hasaan@example.com"}}
	currentUser := &entity.User{ID: 1, Email: "hasaan@example.com"}

	fx.tokenSvc.EXPECT().ValidateToken("good-token").Return(claims, nil)
	fx.userRepo.EXPECT().FindByEmail(mock.Anything, "hasaan@example.com").Return(currentUser, nil)

	var called bool
	err := fx.middleware.Authenticate(nextRecorder(&called))(c)

	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, int64(1), c.Get(ContextKeyUserID))
}

func TestAuthMiddleware_SchemeWithoutToken(t *testing.T) {
	fx := createTestAuthMiddleware(t)
	c, rec := newAuthTestContext("Bearer ")

	var called bool
	err := fx.middleware.Authenticate(nextRecorder(&called))(c)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthorized))
	assert.False(t, called)
	assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
}

func TestAuthMiddleware_Success(t *testing.T) {
	fx := createTestAuthMiddleware(t)
	c, rec := newAuthTestContext("Bearer good-token")

	claims := &service.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "hasaan@example.com"}}
	currentUser := &entity.User{ID: 1, Email: "hasaan@example.com"}

	fx.tokenSvc.EXPECT().ValidateToken("good-token").Return(claims, nil)
	fx.userRepo.EXPECT().FindByEmail(mock.Anything, "hasaan@example.com").Return(currentUser, nil)

	var called bool
	err := fx.middleware.Authenticate(nextRecorder(&called))(c)

	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, currentUser, c.Get(ContextKeyCurrentUser))
	assert.Equal(t, int64(1), c.Get(ContextKeyUserID))
	assert.Empty(t, rec.Header().Get("WWW-Authenticate"))
}
