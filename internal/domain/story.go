package domain

import (
	"time"
)

// StoryTTL is how long a story stays visible after creation.
const StoryTTL = 24 * time.Hour

// Story represents an ephemeral media item. Expiry is evaluated at read time;
// expired rows may linger in storage but never reach a composed feed.
type Story struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Story     string    `json:"story"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Active reports whether the story is still visible at the given instant.
func (s *Story) Active(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}

// ActiveStories filters stories down to those still visible at now. Pure
// function; storage order is preserved.
func ActiveStories(stories []*Story, now time.Time) []*Story {
	active := make([]*Story, 0, len(stories))
	for _, s := range stories {
		if s.Active(now) {
			active = append(active, s)
		}
	}
	return active
}

// StoryModel is the GORM model for the stories table.
type StoryModel struct {
	ID        string    `gorm:"type:varchar(36);primaryKey"`
	Username  string    `gorm:"type:varchar(50);not null;index"`
	Story     string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	ExpiresAt time.Time `gorm:"not null;index"`
}

func (StoryModel) TableName() string { return "stories" }

// ToDomain converts StoryModel to domain Story.
func (m *StoryModel) ToDomain() *Story {
	return &Story{
		ID:        m.ID,
		Username:  m.Username,
		Story:     m.Story,
		CreatedAt: m.CreatedAt,
		ExpiresAt: m.ExpiresAt,
	}
}

// CreateStoryRequest is the publish request body.
type CreateStoryRequest struct {
	Username string `json:"username" binding:"required"`
	Story    string `json:"story" binding:"required"`
}

// StoryFeed is a composed per-viewer story feed: the viewer's own active
// stories first, then followed authors' stories.
type StoryFeed struct {
	Username  string   `json:"username"`
	Following []string `json:"following"`
	Stories   []*Story `json:"stories"`
}
