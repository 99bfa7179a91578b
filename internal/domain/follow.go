package domain

import (
	"time"
)

// FollowModel is the GORM model for the follows table. A single row is the
// logical follow edge; follower/following views on User are derived from it,
// so the two sides can never disagree.
type FollowModel struct {
	ID                uint      `gorm:"primaryKey;autoIncrement"`
	FollowerUsername  string    `gorm:"column:follower_username;type:varchar(50);not null;index;uniqueIndex:uidx_follow_pair"`
	FollowingUsername string    `gorm:"column:following_username;type:varchar(50);not null;index;uniqueIndex:uidx_follow_pair"`
	CreatedAt         time.Time `gorm:"autoCreateTime"`
}

func (FollowModel) TableName() string { return "follows" }

// Follow is the domain representation of a follow edge.
type Follow struct {
	FollowerUsername  string    `json:"follower_username"`
	FollowingUsername string    `json:"following_username"`
	CreatedAt         time.Time `json:"created_at"`
}
