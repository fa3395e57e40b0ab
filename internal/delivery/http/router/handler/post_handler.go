package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"pulse/internal/delivery/http/response"
	"pulse/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// PostHandlerParams holds dependencies for PostHandler, injected by Fx.
type PostHandlerParams struct {
	fx.In

	PostUC usecase.PostUsecase
	Logger *slog.Logger
}

// PostHandler holds dependencies for post-related handlers.
type PostHandler struct {
	postUC usecase.PostUsecase
	logger *slog.Logger
}

// NewPostHandler is the constructor for PostHandler.
func NewPostHandler(params PostHandlerParams) *PostHandler {
	return &PostHandler{
		postUC: params.PostUC,
		logger: params.Logger,
	}
}

// CreatePostRequest represents the request body for creating a post.
type CreatePostRequest struct {
	Title   string `json:"title" validate:"required,max=255"`
	Content string `json:"content"`
}

// UpdatePostRequest represents the request body for updating a post.
// Empty fields are left unchanged.
type UpdatePostRequest struct {
	Title   string `json:"title" validate:"omitempty,max=255"`
	Content string `json:"content"`
}

// CreatePost handles creating a post owned by the authenticated user.
func (h *PostHandler) CreatePost(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	var req CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid post input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	post, err := h.postUC.CreatePost(c.Request().Context(), userID, &usecase.CreatePostInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, post, "Post created successfully")
}

// ListPosts handles listing posts with pagination, or an exact title
// filter when ?title= is present.
func (h *PostHandler) ListPosts(c echo.Context) error {
	if title := c.QueryParam("title"); title != "" {
		posts, err := h.postUC.FilterByTitle(c.Request().Context(), title)
		if err != nil {
			return errors.WithStack(err)
		}

		return response.Success(c, http.StatusOK, posts, "Posts retrieved successfully")
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	posts, err := h.postUC.ListPosts(c.Request().Context(), limit, offset)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, posts, "Posts retrieved successfully")
}

// GetPost handles retrieving a single post by ID.
func (h *PostHandler) GetPost(c echo.Context) error {
	postID, err := parsePostID(c)
	if err != nil {
		return err
	}

	post, err := h.postUC.GetPost(c.Request().Context(), postID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, post, "Post retrieved successfully")
}

// UpdatePost handles mutating a post owned by the authenticated user.
func (h *PostHandler) UpdatePost(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	postID, err := parsePostID(c)
	if err != nil {
		return err
	}

	var req UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid post input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	post, err := h.postUC.UpdatePost(c.Request().Context(), userID, postID, &usecase.UpdatePostInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, post, "Post updated successfully")
}

// DeletePost handles deleting a post owned by the authenticated user.
func (h *PostHandler) DeletePost(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	postID, err := parsePostID(c)
	if err != nil {
		return err
	}

	if err := h.postUC.DeletePost(c.Request().Context(), userID, postID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Post deleted successfully"}, "Post deleted successfully")
}

// parsePostID extracts the numeric post ID from the route.
func parsePostID(c echo.Context) (int64, error) {
	postID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || postID <= 0 {
		return 0, response.BadRequest(c, "INVALID_ID", "Invalid post ID")
	}

	return postID, nil
}
