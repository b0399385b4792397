package notification

import "time"

type CreateRequest struct {
	UserID    string     `json:"user_id" validate:"required,uuid"`
	Title     string     `json:"title" validate:"required,min=2"`
	Message   string     `json:"message" validate:"required,min=2"`
	Type      Type       `json:"type" validate:"omitempty,oneof=info success warning error appointment medical_record"`
	Link      string     `json:"link" validate:"omitempty,url"`
	Metadata  Metadata   `json:"metadata"`
	ExpiresAt *time.Time `json:"expires_at"`
}

type MarkReadRequest struct {
	IsRead *bool `json:"is_read"`
}

type ListFilter struct {
	OnlyUnread bool
	Limit      int
	Since      *time.Time
}

type ListResult struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int64          `json:"unread_count"`
	LastSyncAt    time.Time      `json:"last_sync_at"`
}

// ClearScope selects what DELETE /notifications removes.
type ClearScope string

const (
	ClearRead ClearScope = "read"
	ClearAll  ClearScope = "all"
)
