package domain

import (
	"time"
)

// Notification types.
const (
	NotificationLike    = "like"
	NotificationComment = "comment"
	NotificationFollow  = "follow"
)

// Notification is one inbox entry for a user. These are real persisted rows;
// nothing here survives only in process memory.
type Notification struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Recipient string    `json:"recipient"`
	Actor     string    `json:"actor"`
	PostID    string    `json:"post_id,omitempty"`
	Content   string    `json:"content"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationModel is the GORM model for the notifications table.
type NotificationModel struct {
	ID        string    `gorm:"type:varchar(36);primaryKey"`
	Type      string    `gorm:"type:varchar(20);not null;index"`
	Recipient string    `gorm:"type:varchar(50);not null;index"`
	Actor     string    `gorm:"type:varchar(50);not null"`
	PostID    string    `gorm:"type:varchar(36)"`
	Content   string    `gorm:"type:text;not null"`
	Read      bool      `gorm:"column:is_read;not null;default:false"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

func (NotificationModel) TableName() string { return "notifications" }

// ToDomain converts NotificationModel to domain Notification.
func (m *NotificationModel) ToDomain() *Notification {
	return &Notification{
		ID:        m.ID,
		Type:      m.Type,
		Recipient: m.Recipient,
		Actor:     m.Actor,
		PostID:    m.PostID,
		Content:   m.Content,
		Read:      m.Read,
		CreatedAt: m.CreatedAt,
	}
}

// NotificationToModel converts domain Notification to NotificationModel.
func NotificationToModel(n *Notification) *NotificationModel {
	return &NotificationModel{
		ID:        n.ID,
		Type:      n.Type,
		Recipient: n.Recipient,
		Actor:     n.Actor,
		PostID:    n.PostID,
		Content:   n.Content,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

// NotificationFilter narrows a notification listing. Filter is "", "all",
// "unread", or a notification type.
type NotificationFilter struct {
	Filter string `form:"filter"`
	Limit  int    `form:"limit"`
}

// NotificationList is the listing response.
type NotificationList struct {
	Notifications []*Notification `json:"notifications"`
	UnreadCount   int64           `json:"unread_count"`
}
