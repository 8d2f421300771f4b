package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Notification is a user-facing message emitted by workflow actions
type Notification struct {
	ID       uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Category string         `gorm:"type:text;not null" json:"category"` // "success", "error", "info", "warning"
	Title    string         `gorm:"type:text;not null" json:"title"`
	Message  string         `gorm:"type:text" json:"message"`
	Data     datatypes.JSON `gorm:"type:jsonb" json:"data"`
	IsRead   bool           `gorm:"default:false" json:"is_read"`
	ReadAt   *time.Time     `json:"read_at,omitempty"`

	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"created_at"`
}
