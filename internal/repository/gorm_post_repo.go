package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/avinash-a11y/insta-clone/internal/domain"
)

// GormPostRepository implements PostRepository using GORM. Likes and comments
// are rows in post_likes / post_comments, so mutations to different posts
// never contend and mutations to the same post serialize on the database.
type GormPostRepository struct {
	db *gorm.DB
}

// NewGormPostRepository creates a new GORM-backed post repository.
func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

// Create persists a new post with empty engagement.
func (r *GormPostRepository) Create(ctx context.Context, post *domain.Post) error {
	post.ID = uuid.New().String()

	model := domain.PostModel{
		ID:       post.ID,
		Username: post.Username,
		Image:    post.Image,
		Caption:  post.Caption,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return err
	}

	post.CreatedAt = model.CreatedAt
	post.Likes = []string{}
	post.Comments = []string{}
	return nil
}

// GetByID retrieves a post by id with its likes and comments attached.
func (r *GormPostRepository) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	var model domain.PostModel
	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, result.Error
	}

	posts := []*domain.Post{model.ToDomain()}
	if err := r.attachEngagement(ctx, posts); err != nil {
		return nil, err
	}
	return posts[0], nil
}

// ListAll returns every post newest first. The reference behavior returned
// storage order; created_at descending is the documented default here.
func (r *GormPostRepository) ListAll(ctx context.Context) ([]*domain.Post, error) {
	var models []domain.PostModel
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.toDomainWithEngagement(ctx, models)
}

// ListByAuthor returns username's posts newest first.
func (r *GormPostRepository) ListByAuthor(ctx context.Context, username string) ([]*domain.Post, error) {
	var models []domain.PostModel
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		Order("created_at DESC, id DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.toDomainWithEngagement(ctx, models)
}

// ListLikedBy returns posts whose like-set contains username, newest first.
func (r *GormPostRepository) ListLikedBy(ctx context.Context, username string) ([]*domain.Post, error) {
	var models []domain.PostModel
	err := r.db.WithContext(ctx).
		Joins("JOIN post_likes ON post_likes.post_id = posts.id").
		Where("post_likes.username = ?", username).
		Order("posts.created_at DESC, posts.id DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.toDomainWithEngagement(ctx, models)
}

// SearchByCaption returns posts whose caption contains the query,
// case-insensitively, newest first.
func (r *GormPostRepository) SearchByCaption(ctx context.Context, query string, limit int) ([]*domain.Post, error) {
	var models []domain.PostModel
	pattern := "%" + strings.ToLower(escapeLike(query)) + "%"
	err := r.db.WithContext(ctx).
		Where(`LOWER(caption) LIKE ? ESCAPE '\'`, pattern).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.toDomainWithEngagement(ctx, models)
}

// ToggleLike flips username's membership in the post's like-set inside one
// transaction. The read-modify-write runs against current stored rows, never
// a caller snapshot: delete-then-insert plus the uidx_post_like unique index
// means two concurrent likers can never clobber each other, and two toggles
// for the same pair serialize (the loser gets ErrLikeConflict).
//
// The returned total is counted inside the same transaction, so under READ
// COMMITTED two concurrent likers may each see total=1 while the stored set
// correctly ends at 2. The total is a snapshot for the caller's response;
// the stored rows are the authority.
func (r *GormPostRepository) ToggleLike(ctx context.Context, postID, username string) (liked bool, total int64, err error) {
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var exists int64
		if err := tx.Model(&domain.PostModel{}).Where("id = ?", postID).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return ErrPostNotFound
		}

		result := tx.Where("post_id = ? AND username = ?", postID, username).
			Delete(&domain.LikeModel{})
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected > 0 {
			liked = false
		} else {
			like := domain.LikeModel{PostID: postID, Username: username}
			if err := tx.Create(&like).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return ErrLikeConflict
				}
				return err
			}
			liked = true
		}

		return tx.Model(&domain.LikeModel{}).
			Where("post_id = ?", postID).
			Count(&total).Error
	})
	return liked, total, err
}

// AddComment appends a comment row. Append order is the autoincrement id;
// concurrent appends both land, in whichever order the database commits them.
func (r *GormPostRepository) AddComment(ctx context.Context, postID, text string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var exists int64
		if err := tx.Model(&domain.PostModel{}).Where("id = ?", postID).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return ErrPostNotFound
		}

		comment := domain.CommentModel{PostID: postID, Text: text}
		return tx.Create(&comment).Error
	})
}

func (r *GormPostRepository) toDomainWithEngagement(ctx context.Context, models []domain.PostModel) ([]*domain.Post, error) {
	posts := make([]*domain.Post, 0, len(models))
	for i := range models {
		posts = append(posts, models[i].ToDomain())
	}
	if err := r.attachEngagement(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// attachEngagement batch-loads likes and comments for the given posts.
func (r *GormPostRepository) attachEngagement(ctx context.Context, posts []*domain.Post) error {
	if len(posts) == 0 {
		return nil
	}

	ids := make([]string, 0, len(posts))
	byID := make(map[string]*domain.Post, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
		byID[p.ID] = p
	}

	var likes []domain.LikeModel
	err := r.db.WithContext(ctx).
		Where("post_id IN ?", ids).
		Order("id ASC").
		Find(&likes).Error
	if err != nil {
		return err
	}
	for _, l := range likes {
		if p, ok := byID[l.PostID]; ok {
			p.Likes = append(p.Likes, l.Username)
		}
	}

	var comments []domain.CommentModel
	err = r.db.WithContext(ctx).
		Where("post_id IN ?", ids).
		Order("id ASC").
		Find(&comments).Error
	if err != nil {
		return err
	}
	for _, c := range comments {
		if p, ok := byID[c.PostID]; ok {
			p.Comments = append(p.Comments, c.Text)
		}
	}

	return nil
}

// Ensure interface is satisfied at compile time.
var _ PostRepository = (*GormPostRepository)(nil)
