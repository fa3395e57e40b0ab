package impl

import (
	"context"
	"testing"

	"pulse/internal/domain/entity"
	domainerrors "pulse/internal/domain/errors"
	"pulse/internal/domain/repository"
	mockRepo "pulse/internal/mocks/repository"
	"pulse/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type postServiceFixtures struct {
	service   usecase.PostUsecase
	txManager *mockRepo.MockTransactionManager
	postRepo  *mockRepo.MockPostRepository
}

func createTestPostService(t *testing.T) postServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	postRepo := mockRepo.NewMockPostRepository(t)

	return postServiceFixtures{
		service:   NewPostService(txManager, postRepo, newDiscardLogger()),
		txManager: txManager,
		postRepo:  postRepo,
	}
}

func ownedPost(id int64, authorID uuid.UUID) *entity.Post {
	return &entity.Post{
		ID:       id,
		Title:    "First post",
		Content:  "Hello",
		AuthorID: authorID,
	}
}

func TestPostService_CreatePost_Success(t *testing.T) {
	fx := createTestPostService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.postRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Post")).
		Run(func(ctx context.Context, post *entity.Post) {
			assert.Equal(t, userID, post.AuthorID)
			post.ID = 42
		}).
		Return(nil)

	post, err := fx.service.CreatePost(ctx, userID, &usecase.CreatePostInput{
		Title:   "First post",
		Content: "Hello",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), post.ID)
	assert.Equal(t, userID, post.AuthorID)
}

func TestPostService_CreatePost_UnknownAuthor(t *testing.T) {
	fx := createTestPostService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.postRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Post")).
		Return(domainerrors.ErrPostCreationFailed)

	post, err := fx.service.CreatePost(ctx, userID, &usecase.CreatePostInput{Title: "x", Content: "y"})

	require.Error(t, err)
	assert.Nil(t, post)
	assert.True(t, errors.Is(err, domainerrors.ErrPostCreationFailed))
}

func TestPostService_ListPosts_ClampsPagination(t *testing.T) {
	fx := createTestPostService(t)

	ctx := context.Background()

	tests := []struct {
		name       string
		limit      int
		offset     int
		wantLimit  int
		wantOffset int
	}{
		{name: "defaults", limit: 0, offset: 0, wantLimit: 10, wantOffset: 0},
		{name: "negative values", limit: -5, offset: -3, wantLimit: 10, wantOffset: 0},
		{name: "above cap", limit: 500, offset: 20, wantLimit: 50, wantOffset: 20},
		{name: "in range", limit: 25, offset: 5, wantLimit: 25, wantOffset: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx.postRepo.EXPECT().
				List(ctx, tt.wantLimit, tt.wantOffset).
				Return([]*entity.Post{}, nil).
				Once()

			_, err := fx.service.ListPosts(ctx, tt.limit, tt.offset)
			require.NoError(t, err)
		})
	}
}

func TestPostService_FilterByTitle(t *testing.T) {
	fx := createTestPostService(t)

	ctx := context.Background()
	matches := []*entity.Post{ownedPost(1, uuid.New())}

	fx.postRepo.EXPECT().FilterByTitle(ctx, "First post").Return(matches, nil)

	posts, err := fx.service.FilterByTitle(ctx, "First post")

	require.NoError(t, err)
	assert.Len(t, posts, 1)
}

func TestPostService_GetPost_NotFound(t *testing.T) {
	fx := createTestPostService(t)

	ctx := context.Background()

	fx.postRepo.EXPECT().FindByID(ctx, int64(99)).Return(nil, repository.ErrPostNotFound)

	post, err := fx.service.GetPost(ctx, 99)

	require.Error(t, err)
	assert.Nil(t, post)
	assert.True(t, errors.Is(err, domainerrors.ErrPostNotFound))
}

func TestPostService_UpdatePost_Success(t *testing.T) {
	fx := createTestPostService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockPostRepo := mockRepo.NewMockPostRepository(t)

			mockFactory.EXPECT().PostRepo().Return(mockPostRepo)

			mockPostRepo.EXPECT().FindByID(ctx, int64(42)).Return(ownedPost(42, userID), nil)

			renamed := ownedPost(42, userID)
			renamed.Title = "Renamed"
			mockPostRepo.EXPECT().
				UpdateFields(ctx, int64(42), "Renamed", "").
				Return(renamed, nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	post, err := fx.service.UpdatePost(ctx, userID, 42, &usecase.UpdatePostInput{Title: "Renamed"})

	require.NoError(t, err)
	assert.Equal(t, "Renamed", post.Title)
	assert.Equal(t, "Hello", post.Content)
}

func TestPostService_UpdatePost_NotFound(t *testing.T) {
	fx := createTestPostService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockPostRepo := mockRepo.NewMockPostRepository(t)

			mockFactory.EXPECT().PostRepo().Return(mockPostRepo)
			mockPostRepo.EXPECT().FindByID(ctx, int64(99)).Return(nil, repository.ErrPostNotFound)

			err := fn(mockFactory)
			assert.True(t, errors.Is(err, domainerrors.ErrPostNotFound))
		}).
		Return(domainerrors.ErrPostNotFound)

	post, err := fx.service.UpdatePost(ctx, userID, 99, &usecase.UpdatePostInput{Title: "x"})

	require.Error(t, err)
	assert.Nil(t, post)
	assert.True(t, errors.Is(err, domainerrors.ErrPostNotFound))
}

func TestPostService_UpdatePost_NotOwner(t *testing.T) {
	fx := createTestPostService(t)

	ctx := context.Background()
	owner := uuid.New()
	intruder := uuid.New()

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockPostRepo := mockRepo.NewMockPostRepository(t)

			mockFactory.EXPECT().PostRepo().Return(mockPostRepo)
			// FindByID only; no write call is expected for a non-owner.
			mockPostRepo.EXPECT().FindByID(ctx, int64(42)).Return(ownedPost(42, owner), nil)

			err := fn(mockFactory)
			assert.True(t, errors.Is(err, domainerrors.ErrPostOwnership))
		}).
		Return(domainerrors.ErrPostOwnership)

	post, err := fx.service.UpdatePost(ctx, intruder, 42, &usecase.UpdatePostInput{Title: "hijack"})

	require.Error(t, err)
	assert.Nil(t, post)
	assert.True(t, errors.Is(err, domainerrors.ErrPostOwnership))
}

func TestPostService_DeletePost_Success(t *testing.T) {
	fx := createTestPostService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockPostRepo := mockRepo.NewMockPostRepository(t)

			mockFactory.EXPECT().PostRepo().Return(mockPostRepo)
			mockPostRepo.EXPECT().FindByID(ctx, int64(42)).Return(ownedPost(42, userID), nil)
			mockPostRepo.EXPECT().Delete(ctx, int64(42)).Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	require.NoError(t, fx.service.DeletePost(ctx, userID, 42))
}

func TestPostService_DeletePost_NotOwner(t *testing.T) {
	fx := createTestPostService(t)

	ctx := context.Background()
	owner := uuid.New()
	intruder := uuid.New()

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockPostRepo := mockRepo.NewMockPostRepository(t)

			mockFactory.EXPECT().PostRepo().Return(mockPostRepo)
			mockPostRepo.EXPECT().FindByID(ctx, int64(42)).Return(ownedPost(42, owner), nil)

			err := fn(mockFactory)
			assert.True(t, errors.Is(err, domainerrors.ErrPostOwnership))
		}).
		Return(domainerrors.ErrPostOwnership)

	err := fx.service.DeletePost(ctx, intruder, 42)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrPostOwnership))
}

func TestPostService_UpdatePost_AllEmptyInput(t *testing.T) {
	fx := createTestPostService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockPostRepo := mockRepo.NewMockPostRepository(t)

			mockFactory.EXPECT().PostRepo().Return(mockPostRepo)
			mockPostRepo.EXPECT().FindByID(ctx, int64(42)).Return(ownedPost(42, userID), nil)

			// Both fields reach the store empty. UpdateFields skips
			// empty columns, so the stored row comes back untouched.
			mockPostRepo.EXPECT().
				UpdateFields(ctx, int64(42), "", "").
				Return(ownedPost(42, userID), nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	post, err := fx.service.UpdatePost(ctx, userID, 42, &usecase.UpdatePostInput{})

	require.NoError(t, err)
	assert.Equal(t, "First post", post.Title)
	assert.Equal(t, "Hello", post.Content)
}

func TestPostService_DeletePost_SecondCallNotFound(t *testing.T) {
	fx := createTestPostService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockPostRepo := mockRepo.NewMockPostRepository(t)

			mockFactory.EXPECT().PostRepo().Return(mockPostRepo)
			mockPostRepo.EXPECT().FindByID(ctx, int64(42)).Return(ownedPost(42, userID), nil)
			mockPostRepo.EXPECT().Delete(ctx, int64(42)).Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil).
		Once()

	require.NoError(t, fx.service.DeletePost(ctx, userID, 42))

	// The row is gone now, so a repeat of the same delete reports not
	// found and performs no further writes.
	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockPostRepo := mockRepo.NewMockPostRepository(t)

			mockFactory.EXPECT().PostRepo().Return(mockPostRepo)
			mockPostRepo.EXPECT().FindByID(ctx, int64(42)).Return(nil, repository.ErrPostNotFound)

			err := fn(mockFactory)
			assert.True(t, errors.Is(err, domainerrors.ErrPostNotFound))
		}).
		Return(domainerrors.ErrPostNotFound).
		Once()

	err := fx.service.DeletePost(ctx, userID, 42)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrPostNotFound))
}
