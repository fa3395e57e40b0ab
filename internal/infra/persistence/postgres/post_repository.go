package postgres

import (
	"context"

	"pulse/internal/domain/entity"
	domainerrors "pulse/internal/domain/errors"
	"pulse/internal/domain/repository"
	"pulse/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// postRepository implements the domain.PostRepository interface using GORM.
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository is the constructor for postRepository.
func NewPostRepository(db *gorm.DB) repository.PostRepository {
	return &postRepository{db: db}
}

// Create persists a new post and fills in the store-assigned ID and timestamps.
func (repo *postRepository) Create(ctx context.Context, post *entity.Post) error {
	postM := fromPostDomain(post)

	if err := repo.db.WithContext(ctx).Create(postM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrPostCreationFailed.WrapMessage("author does not exist")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrPostCreationFailed.WrapMessage("missing required post information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create post")
	}

	post.ID = postM.ID
	post.CreatedAt = postM.CreatedAt
	post.UpdatedAt = postM.UpdatedAt

	return nil
}

// List returns posts in primary-key order with limit/offset pagination.
func (repo *postRepository) List(ctx context.Context, limit, offset int) ([]*entity.Post, error) {
	var postModels []*model.PostModel
	if err := repo.db.WithContext(ctx).
		Order("id").
		Limit(limit).
		Offset(offset).
		Find(&postModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list posts")
	}

	return toPostDomainList(postModels), nil
}

// FilterByTitle returns posts whose title matches exactly. An empty
// title is no filter at all and returns every post.
func (repo *postRepository) FilterByTitle(ctx context.Context, title string) ([]*entity.Post, error) {
	query := repo.db.WithContext(ctx).Order("id")
	if title != "" {
		query = query.Where("title = ?", title)
	}

	var postModels []*model.PostModel
	if err := query.Find(&postModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to filter posts by title")
	}

	return toPostDomainList(postModels), nil
}

// FindByID retrieves a single post by its ID.
func (repo *postRepository) FindByID(ctx context.Context, id int64) (*entity.Post, error) {
	var postM model.PostModel
	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&postM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPostNotFound
		}

		return nil, errors.Wrap(err, "failed to find post by id")
	}

	return toPostDomain(&postM), nil
}

// UpdateFields applies each non-empty field as its own update statement
// and returns the re-fetched post. An empty string leaves the column
// untouched rather than clearing it.
func (repo *postRepository) UpdateFields(ctx context.Context, id int64, title, content string) (*entity.Post, error) {
	if title != "" {
		if err := repo.updateColumn(ctx, id, "title", title); err != nil {
			return nil, err
		}
	}
	if content != "" {
		if err := repo.updateColumn(ctx, id, "content", content); err != nil {
			return nil, err
		}
	}

	return repo.FindByID(ctx, id)
}

// Delete removes a post. Returns ErrPostNotFound when no row was deleted.
func (repo *postRepository) Delete(ctx context.Context, id int64) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.PostModel{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete post")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPostNotFound
	}

	return nil
}

func (repo *postRepository) updateColumn(ctx context.Context, id int64, column string, value string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.PostModel{}).
		Where("id = ?", id).
		Update(column, value)
	if result.Error != nil {
		return errors.Wrapf(result.Error, "failed to update post %s", column)
	}
	if result.RowsAffected == 0 {
		return repository.ErrPostNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toPostDomain converts a GORM PostModel to a domain Post entity.
func toPostDomain(data *model.PostModel) *entity.Post {
	if data == nil {
		return nil
	}

	return &entity.Post{
		ID:        data.ID,
		Title:     data.Title,
		Content:   data.Content,
		AuthorID:  data.UserID,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

func toPostDomainList(data []*model.PostModel) []*entity.Post {
	posts := make([]*entity.Post, 0, len(data))
	for _, postM := range data {
		posts = append(posts, toPostDomain(postM))
	}

	return posts
}

// fromPostDomain converts a domain Post entity to a GORM PostModel for persistence.
func fromPostDomain(data *entity.Post) *model.PostModel {
	if data == nil {
		return nil
	}

	return &model.PostModel{
		ID:      data.ID,
		Title:   data.Title,
		Content: data.Content,
		UserID:  data.AuthorID,
	}
}
