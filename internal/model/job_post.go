package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

var (
	// JobStatusDraft indicates the post is not yet visible to talents
	JobStatusDraft = "draft"
	// JobStatusActive indicates the post accepts applications
	JobStatusActive = "active"
	// JobStatusPaused indicates the post is temporarily hidden
	JobStatusPaused = "paused"
	// JobStatusClosed indicates the post no longer accepts applications
	JobStatusClosed = "closed"
	// JobStatusArchived indicates the post is kept for record only
	JobStatusArchived = "archived"
)

// EditableJobPostInfo groups the fields a company may change on their own post
type EditableJobPostInfo struct {
	Title     string         `gorm:"type:text" json:"title"`
	Desc      string         `gorm:"type:text" json:"desc"`
	Req       string         `gorm:"type:text" json:"req"`
	Location  string         `gorm:"type:text" json:"location"`
	Type      string         `gorm:"type:text" json:"type"`
	SalaryMin *int           `json:"salary_min"`
	SalaryMax *int           `json:"salary_max"`
	Remote    *bool          `json:"remote"`
	Tags      pq.StringArray `gorm:"type:text[]" json:"tags"`
	Expiring  *time.Time     `gorm:"type:timestamp" json:"expiring,omitempty"`
}

// JobPost is gorm model for store job post data in DB
type JobPost struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CompanyID uuid.UUID      `gorm:"type:uuid;not null;index;<-:create" json:"company_id"`
	Company   CompanyProfile `gorm:"foreignKey:CompanyID;references:UserID" json:"company"`

	EditableJobPostInfo
	Status   string    `gorm:"type:text;not null;default:'draft'" json:"status"`
	PostTime time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"post_time"`

	Applications []Application `gorm:"foreignKey:JobID" json:"applications,omitempty"`
}
