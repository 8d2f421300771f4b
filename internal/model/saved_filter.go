package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SavedFilter persists one list view's filter state per user.
// The payload is the serialized filter object, stored versionless under a
// namespaced key the same way the web client kept it in local storage.
type SavedFilter struct {
	ID     uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_saved_filters_user_kind" json:"user_id"`
	Kind   string    `gorm:"type:text;not null;uniqueIndex:idx_saved_filters_user_kind" json:"kind"`
	Key    string    `gorm:"type:text;not null" json:"key"`

	Payload   datatypes.JSON `gorm:"type:jsonb" json:"payload"`
	UpdatedAt time.Time      `gorm:"type:timestamp" json:"updated_at"`
}
