package handler

import (
	"context"
	"net/http"
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

type postHandlerFixtures struct {
	handler *PostHandler
	postUC  *mockUC.MockPostUsecase
	echo    *echo.Echo
}

func createTestPostHandler(t *testing.T) postHandlerFixtures {
	postUC := mockUC.NewMockPostUsecase(t)

	e := echo.New()
	e.Validator = validator.New()

	return postHandlerFixtures{
		handler: &PostHandler{postUC: postUC},
		postUC:  postUC,
		echo:    e,
	}
}

func TestPostHandler_CreatePost_Success(t *testing.T) {
	fx := createTestPostHandler(t)

	userID := uuid.New()
	body := `{"title":"First post","content":"Hello"}`
	c, rec := newJSONContext(fx.echo, http.MethodPost, "/posts", body)
	c.Set(middleware.ContextKeyUserID, userID)

	fx.postUC.EXPECT().
		CreatePost(mock.Anything, userID, mock.AnythingOfType("*usecase.CreatePostInput")).
		Run(func(ctx context.Context, id uuid.UUID, input *usecase.CreatePostInput) {
			assert.Equal(t, "First post", input.Title)
		}).
		Return(&entity.Post{ID: 42, Title: "First post", AuthorID: userID}, nil)

	require.NoError(t, fx.handler.CreatePost(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":42`)
}

func TestPostHandler_CreatePost_MissingTitle(t *testing.T) {
	fx := createTestPostHandler(t)

	c, rec := newJSONContext(fx.echo, http.MethodPost, "/posts", `{"content":"Hello"}`)
	c.Set(middleware.ContextKeyUserID, uuid.New())

	require.NoError(t, fx.handler.CreatePost(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}

func TestPostHandler_CreatePost_Unauthenticated(t *testing.T) {
	fx := createTestPostHandler(t)

	c, rec := newJSONContext(fx.echo, http.MethodPost, "/posts", `{"title":"x"}`)

	err := fx.handler.CreatePost(c)

	require.ErrorIs(t, err, echo.ErrUnauthorized)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPostHandler_CreatePost_TitleTooLong(t *testing.T) {
	fx := createTestPostHandler(t)

	body := `{"title":"` + strings.Repeat("a", 256) + `"}`
	c, rec := newJSONContext(fx.echo, http.MethodPost, "/posts", body)
	c.Set(middleware.ContextKeyUserID, uuid.New())

	require.NoError(t, fx.handler.CreatePost(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}

func TestPostHandler_UpdatePost_TitleTooLong(t *testing.T) {
	fx := createTestPostHandler(t)

	body := `{"title":"` + strings.Repeat("a", 256) + `"}`
	c, rec := newJSONContext(fx.echo, http.MethodPatch, "/posts/42", body)
	c.Set(middleware.ContextKeyUserID, uuid.New())
	c.SetParamNames("id")
	c.SetParamValues("42")

	require.NoError(t, fx.handler.UpdatePost(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}

func TestPostHandler_ListPosts_PassesPagination(t *testing.T) {
	fx := createTestPostHandler(t)

	c, rec := newJSONContext(fx.echo, http.MethodGet, "/posts?limit=25&offset=5", "")

	fx.postUC.EXPECT().
		ListPosts(mock.Anything, 25, 5).
		Return([]*entity.Post{}, nil)

	require.NoError(t, fx.handler.ListPosts(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPostHandler_ListPosts_TitleFilter(t *testing.T) {
	fx := createTestPostHandler(t)

	c, rec := newJSONContext(fx.echo, http.MethodGet, "/posts?title=First+post", "")

	fx.postUC.EXPECT().
		FilterByTitle(mock.Anything, "First post").
		Return([]*entity.Post{{ID: 1, Title: "First post"}}, nil)

	require.NoError(t, fx.handler.ListPosts(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "First post")
}

func TestPostHandler_GetPost_InvalidID(t *testing.T) {
	fx := createTestPostHandler(t)

	c, rec := newJSONContext(fx.echo, http.MethodGet, "/posts/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")

	require.NoError(t, fx.handler.GetPost(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_ID")
}

func TestPostHandler_GetPost_Success(t *testing.T) {
	fx := createTestPostHandler(t)

	c, rec := newJSONContext(fx.echo, http.MethodGet, "/posts/42", "")
	c.SetParamNames("id")
	c.SetParamValues("42")

	fx.postUC.EXPECT().
		GetPost(mock.Anything, int64(42)).
		Return(&entity.Post{ID: 42, Title: "First post"}, nil)

	require.NoError(t, fx.handler.GetPost(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPostHandler_UpdatePost_Success(t *testing.T) {
	fx := createTestPostHandler(t)

	userID := uuid.New()
	c, rec := newJSONContext(fx.echo, http.MethodPatch, "/posts/42", `{"title":"Renamed"}`)
	c.SetParamNames("id")
	c.SetParamValues("42")
	c.Set(middleware.ContextKeyUserID, userID)

	fx.postUC.EXPECT().
		UpdatePost(mock.Anything, userID, int64(42), mock.AnythingOfType("*usecase.UpdatePostInput")).
		Run(func(ctx context.Context, id uuid.UUID, postID int64, input *usecase.UpdatePostInput) {
			assert.Equal(t, "Renamed", input.Title)
			assert.Empty(t, input.Content)
		}).
		Return(&entity.Post{ID: 42, Title: "Renamed", AuthorID: userID}, nil)

	require.NoError(t, fx.handler.UpdatePost(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPostHandler_DeletePost_Success(t *testing.T) {
	fx := createTestPostHandler(t)

	userID := uuid.New()
	c, rec := newJSONContext(fx.echo, http.MethodDelete, "/posts/42", "")
	c.SetParamNames("id")
	c.SetParamValues("42")
	c.Set(middleware.ContextKeyUserID, userID)

	fx.postUC.EXPECT().DeletePost(mock.Anything, userID, int64(42)).Return(nil)

	require.NoError(t, fx.handler.DeletePost(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
