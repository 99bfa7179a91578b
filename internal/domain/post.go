package domain

import (
	"time"
)

// Post represents a published photo post. Likes is the set of usernames that
// currently like the post; Comments is the append-only ordered comment text.
// Comments deliberately carry no author field: the persisted shape matches
// what the product stores, and attribution lives in the audit trail only.
type Post struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Image     string    `json:"image"`
	Caption   string    `json:"caption"`
	Likes     []string  `json:"likes"`
	Comments  []string  `json:"comments"`
	CreatedAt time.Time `json:"created_at"`
}

// PostModel is the GORM model for the posts table. Engagement lives in
// post_likes / post_comments rows so concurrent writers to the same post
// serialize on the database, not in application memory.
type PostModel struct {
	ID        string    `gorm:"type:varchar(36);primaryKey"`
	Username  string    `gorm:"type:varchar(50);not null;index"`
	Image     string    `gorm:"type:text;not null"`
	Caption   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

func (PostModel) TableName() string { return "posts" }

// ToDomain converts PostModel to a domain Post without engagement fields;
// the repository attaches likes and comments separately.
func (m *PostModel) ToDomain() *Post {
	return &Post{
		ID:        m.ID,
		Username:  m.Username,
		Image:     m.Image,
		Caption:   m.Caption,
		Likes:     []string{},
		Comments:  []string{},
		CreatedAt: m.CreatedAt,
	}
}

// LikeModel is one username's membership in a post's like-set. The composite
// unique index makes the set semantics a database guarantee: a username can
// appear at most once per post, and concurrent toggles serialize on the index.
type LikeModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	PostID    string    `gorm:"type:varchar(36);not null;uniqueIndex:uidx_post_like"`
	Username  string    `gorm:"type:varchar(50);not null;uniqueIndex:uidx_post_like"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (LikeModel) TableName() string { return "post_likes" }

// CommentModel is one appended comment. The autoincrement id fixes the append
// order; rows are never updated or deleted.
type CommentModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	PostID    string    `gorm:"type:varchar(36);not null;index"`
	Text      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (CommentModel) TableName() string { return "post_comments" }

// CreatePostRequest is the publish request body.
type CreatePostRequest struct {
	Username string `json:"username" binding:"required"`
	Image    string `json:"image" binding:"required"`
	Caption  string `json:"caption" binding:"required"`
}

// CommentRequest is the add-comment request body.
type CommentRequest struct {
	Username string `json:"username" binding:"required"`
	Text     string `json:"text" binding:"required"`
}

// LikeResult reports the authoritative state after a like toggle.
type LikeResult struct {
	Liked      bool  `json:"liked"`
	TotalLikes int64 `json:"total_likes"`
}
