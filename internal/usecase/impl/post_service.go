package impl

import (
	"context"
	"log/slog"

	deliverycontext "pulse/internal/delivery/context"
	"pulse/internal/domain/entity"
	domainerrors "pulse/internal/domain/errors"
	"pulse/internal/domain/repository"
	"pulse/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// postService implements the PostUsecase interface. It is the
// authorization layer for posts: ownership is decided here, before any
// repository write.
type postService struct {
	txManager repository.TransactionManager
	postRepo  repository.PostRepository
	logger    *slog.Logger
}

// NewPostService is the constructor for postService.
func NewPostService(
	txManager repository.TransactionManager,
	postRepo repository.PostRepository,
	logger *slog.Logger,
) usecase.PostUsecase {
	return &postService{
		txManager: txManager,
		postRepo:  postRepo,
		logger:    logger,
	}
}

func (srv *postService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreatePost persists a new post owned by the authenticated caller.
func (srv *postService) CreatePost(ctx context.Context, userID uuid.UUID, input *usecase.CreatePostInput) (*entity.Post, error) {
	srv.log(ctx).Debug("Creating post", slog.Any("userID", userID))

	post := &entity.Post{
		Title:    input.Title,
		Content:  input.Content,
		AuthorID: userID,
	}

	if err := srv.postRepo.Create(ctx, post); err != nil {
		srv.log(ctx).Error("Failed to create post", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create post")
	}

	return post, nil
}

// ListPosts returns posts in store-native order with clamped pagination.
func (srv *postService) ListPosts(ctx context.Context, limit, offset int) ([]*entity.Post, error) {
	if limit <= 0 {
		limit = usecase.DefaultPostPageSize
	}
	if limit > usecase.MaxPostPageSize {
		limit = usecase.MaxPostPageSize
	}
	if offset < 0 {
		offset = 0
	}

	posts, err := srv.postRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list posts")
	}

	return posts, nil
}

// FilterByTitle returns posts whose title matches exactly; an empty
// title matches everything.
func (srv *postService) FilterByTitle(ctx context.Context, title string) ([]*entity.Post, error) {
	posts, err := srv.postRepo.FilterByTitle(ctx, title)
	if err != nil {
		return nil, errors.Wrap(err, "failed to filter posts by title")
	}

	return posts, nil
}

// GetPost retrieves a single post by ID.
func (srv *postService) GetPost(ctx context.Context, id int64) (*entity.Post, error) {
	post, err := srv.postRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, errors.Wrap(domainerrors.ErrPostNotFound, "post lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find post")
	}

	return post, nil
}

// UpdatePost mutates a post after the ownership check passes. The two
// field updates run as independent statements inside one transaction.
func (srv *postService) UpdatePost(ctx context.Context, userID uuid.UUID, postID int64, input *usecase.UpdatePostInput) (*entity.Post, error) {
	srv.log(ctx).Debug("Updating post", slog.Any("userID", userID), slog.Int64("postID", postID))

	var updated *entity.Post
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		postRepo := repoFactory.PostRepo()

		post, err := postRepo.FindByID(ctx, postID)
		if err != nil {
			if errors.Is(err, repository.ErrPostNotFound) {
				return errors.Wrap(domainerrors.ErrPostNotFound, "post update failed")
			}

			return errors.Wrap(err, "failed to find post for update")
		}

		// Ownership gate. Nothing is written past this point for a
		// non-owner.
		if !post.IsOwnedBy(userID) {
			return errors.Wrap(domainerrors.ErrPostOwnership, "post update rejected")
		}

		updated, err = postRepo.UpdateFields(ctx, postID, input.Title, input.Content)
		if err != nil {
			if errors.Is(err, repository.ErrPostNotFound) {
				return errors.Wrap(domainerrors.ErrPostNotFound, "post vanished during update")
			}

			return errors.Wrap(err, "failed to update post")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Post update failed", slog.Any("userID", userID), slog.Int64("postID", postID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute post update transaction")
	}

	return updated, nil
}

// DeletePost removes a post after the ownership check passes. A second
// delete of the same ID reports not found.
func (srv *postService) DeletePost(ctx context.Context, userID uuid.UUID, postID int64) error {
	srv.log(ctx).Debug("Deleting post", slog.Any("userID", userID), slog.Int64("postID", postID))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		postRepo := repoFactory.PostRepo()

		post, err := postRepo.FindByID(ctx, postID)
		if err != nil {
			if errors.Is(err, repository.ErrPostNotFound) {
				return errors.Wrap(domainerrors.ErrPostNotFound, "post delete failed")
			}

			return errors.Wrap(err, "failed to find post for delete")
		}

		if !post.IsOwnedBy(userID) {
			return errors.Wrap(domainerrors.ErrPostOwnership, "post delete rejected")
		}

		if err := postRepo.Delete(ctx, postID); err != nil {
			if errors.Is(err, repository.ErrPostNotFound) {
				return errors.Wrap(domainerrors.ErrPostNotFound, "post vanished during delete")
			}

			return errors.Wrap(err, "failed to delete post")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Post delete failed", slog.Any("userID", userID), slog.Int64("postID", postID), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute post delete transaction")
	}

	return nil
}
