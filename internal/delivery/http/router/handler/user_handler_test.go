package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pulse/internal/delivery/http/middleware"
	"pulse/internal/delivery/http/validator"
	"pulse/internal/domain/entity"
	mockUC "pulse/internal/mocks/usecase"
	"pulse/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type userHandlerFixtures struct {
	handler   *UserHandler
	accountUC *mockUC.MockAccountUsecase
	profileUC *mockUC.MockProfileUsecase
	echo      *echo.Echo
}

func createTestUserHandler(t *testing.T) userHandlerFixtures {
	accountUC := mockUC.NewMockAccountUsecase(t)
	profileUC := mockUC.NewMockProfileUsecase(t)

	e := echo.New()
	e.Validator = validator.New()

	return userHandlerFixtures{
		handler: &UserHandler{
			accountUC: accountUC,
			profileUC: profileUC,
		},
		accountUC: accountUC,
		profileUC: profileUC,
		echo:      e,
	}
}

func newJSONContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestUserHandler_Register_Success(t *testing.T) {
	fx := createTestUserHandler(t)

	body := `{"email":"test@example.com","password":"strong password","secret_word":"otter","first_name":"Test"}`
	c, rec := newJSONContext(fx.echo, http.MethodPost, "/auth/register", body)

	fx.accountUC.EXPECT().
		Register(mock.Anything, mock.AnythingOfType("*usecase.RegisterInput")).
		Run(func(ctx context.Context, input *usecase.RegisterInput) {
			assert.Equal(t, "test@example.com", input.Email)
			assert.Equal(t, "otter", input.SecretWord)
			assert.NotEmpty(t, input.ClientIP)
		}).
		Return(&usecase.RegisterOutput{User: &entity.User{Email: "test@example.com"}}, nil)

	require.NoError(t, fx.handler.Register(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
}

func TestUserHandler_Register_MissingEmail(t *testing.T) {
	fx := createTestUserHandler(t)

	body := `{"password":"strong password"}`
	c, rec := newJSONContext(fx.echo, http.MethodPost, "/auth/register", body)

	require.NoError(t, fx.handler.Register(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}

func TestUserHandler_Login_Success(t *testing.T) {
	fx := createTestUserHandler(t)

	body := `{"email":"test@example.com","password":"strong password"}`
	c, rec := newJSONContext(fx.echo, http.MethodPost, "/auth/login", body)

	fx.accountUC.EXPECT().
		Login(mock.Anything, mock.AnythingOfType("*usecase.LoginInput")).
		Return(&usecase.LoginOutput{AccessToken: "access", RefreshToken: "refresh"}, nil)

	require.NoError(t, fx.handler.Login(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "access")
}

func TestUserHandler_ChangePassword_Success(t *testing.T) {
	fx := createTestUserHandler(t)

	userID := uuid.New()
	body := `{"current_password":"old password","new_password":"new password","secret_word":"otter"}`
	c, rec := newJSONContext(fx.echo, http.MethodPost, "/auth/change-password", body)
	c.Set(middleware.ContextKeyUserID, userID)

	fx.accountUC.EXPECT().
		ChangePassword(mock.Anything, userID, mock.AnythingOfType("*usecase.ChangePasswordInput")).
		Run(func(ctx context.Context, id uuid.UUID, input *usecase.ChangePasswordInput) {
			assert.Equal(t, "old password", input.CurrentPassword)
			assert.Equal(t, "otter", input.SecretWord)
		}).
		Return(nil)

	require.NoError(t, fx.handler.ChangePassword(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUserHandler_ChangePassword_Unauthenticated(t *testing.T) {
	fx := createTestUserHandler(t)

	body := `{"current_password":"old password","new_password":"new password"}`
	c, rec := newJSONContext(fx.echo, http.MethodPost, "/auth/change-password", body)

	err := fx.handler.ChangePassword(c)

	require.ErrorIs(t, err, echo.ErrUnauthorized)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUserHandler_RefreshToken_MissingToken(t *testing.T) {
	fx := createTestUserHandler(t)

	c, rec := newJSONContext(fx.echo, http.MethodPost, "/auth/refresh", `{}`)

	require.NoError(t, fx.handler.RefreshToken(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUserHandler_GetProfile_Success(t *testing.T) {
	fx := createTestUserHandler(t)

	userID := uuid.New()
	c, rec := newJSONContext(fx.echo, http.MethodGet, "/user/profile", "")
	c.Set(middleware.ContextKeyUserID, userID)

	fx.profileUC.EXPECT().
		GetProfile(mock.Anything, userID).
		Return(&entity.User{ID: userID, Email: "test@example.com"}, nil)

	require.NoError(t, fx.handler.GetProfile(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "test@example.com")
}

func TestUserHandler_UpdateProfile_MapsFields(t *testing.T) {
	fx := createTestUserHandler(t)

	userID := uuid.New()
	body := `{"first_name":"New","privacy_level":"private"}`
	c, rec := newJSONContext(fx.echo, http.MethodPatch, "/user/profile", body)
	c.Set(middleware.ContextKeyUserID, userID)

	fx.profileUC.EXPECT().
		UpdateProfile(mock.Anything, userID, mock.AnythingOfType("*usecase.UpdateProfileInput")).
		Run(func(ctx context.Context, id uuid.UUID, input *usecase.UpdateProfileInput) {
			require.NotNil(t, input.FirstName)
			assert.Equal(t, "New", *input.FirstName)
			require.NotNil(t, input.PrivacyLevel)
			assert.Equal(t, entity.PrivacyPrivate, *input.PrivacyLevel)
			assert.Nil(t, input.LastName)
		}).
		Return(&entity.User{ID: userID, FirstName: "New"}, nil)

	require.NoError(t, fx.handler.UpdateProfile(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUserHandler_RecordActivity_Success(t *testing.T) {
	fx := createTestUserHandler(t)

	userID := uuid.New()
	c, rec := newJSONContext(fx.echo, http.MethodPost, "/user/activity", "")
	c.Set(middleware.ContextKeyUserID, userID)

	fx.profileUC.EXPECT().RecordActivity(mock.Anything, userID).Return(nil)

	require.NoError(t, fx.handler.RecordActivity(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthCheck(t *testing.T) {
	e := echo.New()
	c, rec := newJSONContext(e, http.MethodGet, "/health", "")

	require.NoError(t, HealthCheck(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}
