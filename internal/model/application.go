package model

import (
	"time"

	"github.com/google/uuid"
)

var (
	// ApplicationStatusPending indicates that the application is waiting for review
	ApplicationStatusPending = "pending"
	// ApplicationStatusReviewed indicates that the company has looked at the application
	ApplicationStatusReviewed = "reviewed"
	// ApplicationStatusInterview indicates that the talent has been invited to interview
	ApplicationStatusInterview = "interview"
	// ApplicationStatusOffer indicates that an offer has been extended
	ApplicationStatusOffer = "offer"
	// ApplicationStatusAccepted indicates that the talent accepted the offer
	ApplicationStatusAccepted = "accepted"
	// ApplicationStatusRejected indicates that the company rejected the application
	ApplicationStatusRejected = "rejected"
	// ApplicationStatusWithdrawn indicates that the talent pulled the application back
	ApplicationStatusWithdrawn = "withdrawn"
)

// Application represents a job application record.
// A talent may hold at most one application per job post.
type Application struct {
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Status string    `gorm:"type:text;not null" json:"status"`

	AppliedAt  time.Time  `gorm:"type:timestamp" json:"applied_at"`
	ReviewedAt *time.Time `gorm:"type:timestamp" json:"reviewed_at,omitempty"`
	UpdatedAt  time.Time  `gorm:"type:timestamp" json:"updated_at"`

	// JobID references JobPost.ID
	JobID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_applications_job_talent" json:"job_id"`
	Job   JobPost   `gorm:"foreignKey:JobID;references:ID" json:"job"`

	// TalentID references TalentProfile.UserID
	TalentID uuid.UUID     `gorm:"type:uuid;not null;index;uniqueIndex:idx_applications_job_talent" json:"talent_id"`
	Talent   TalentProfile `gorm:"foreignKey:TalentID;references:UserID" json:"talent"`

	CoverLetter string `gorm:"type:text" json:"cover_letter"`
	ResumeURL   string `gorm:"type:text" json:"resume_url"`
}
