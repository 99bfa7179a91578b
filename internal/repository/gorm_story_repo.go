package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/avinash-a11y/insta-clone/internal/domain"
)

// GormStoryRepository implements StoryRepository using GORM.
type GormStoryRepository struct {
	db *gorm.DB
}

// NewGormStoryRepository creates a new GORM-backed story repository.
func NewGormStoryRepository(db *gorm.DB) *GormStoryRepository {
	return &GormStoryRepository{db: db}
}

// Create persists a new story. ExpiresAt is derived once at creation; there
// is no background sweep, readers filter at view time.
func (r *GormStoryRepository) Create(ctx context.Context, story *domain.Story) error {
	story.ID = uuid.New().String()
	if story.CreatedAt.IsZero() {
		story.CreatedAt = time.Now()
	}
	if story.ExpiresAt.IsZero() {
		story.ExpiresAt = story.CreatedAt.Add(domain.StoryTTL)
	}

	model := domain.StoryModel{
		ID:        story.ID,
		Username:  story.Username,
		Story:     story.Story,
		CreatedAt: story.CreatedAt,
		ExpiresAt: story.ExpiresAt,
	}
	return r.db.WithContext(ctx).Create(&model).Error
}

// ListByAuthors returns all stories authored by any of the given usernames,
// newest first. Expired rows are included; visibility is the feed composer's
// read-time concern.
func (r *GormStoryRepository) ListByAuthors(ctx context.Context, usernames []string) ([]*domain.Story, error) {
	if len(usernames) == 0 {
		return []*domain.Story{}, nil
	}

	var models []domain.StoryModel
	err := r.db.WithContext(ctx).
		Where("username IN ?", usernames).
		Order("created_at DESC, id DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	stories := make([]*domain.Story, 0, len(models))
	for i := range models {
		stories = append(stories, models[i].ToDomain())
	}
	return stories, nil
}

// Ensure interface is satisfied at compile time.
var _ StoryRepository = (*GormStoryRepository)(nil)
