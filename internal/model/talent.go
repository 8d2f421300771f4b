package model

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// EditableTalentInfo groups the fields a talent may change on their own profile
type EditableTalentInfo struct {
	FirstName string         `json:"first_name"`
	LastName  string         `json:"last_name"`
	Title     string         `json:"title"`
	Location  string         `json:"location"`
	Bio       string         `json:"bio"`
	Skills    pq.StringArray `gorm:"type:text[]" json:"skills"`
	ResumeURL string         `json:"resume_url"`
}

// TalentProfile represents a job-seeker profile owned by a User
type TalentProfile struct {
	UserID uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	User   User      `gorm:"foreignKey:UserID;references:ID" json:"user"`
	EditableTalentInfo

	Applications []Application `gorm:"foreignKey:TalentID" json:"applications,omitempty"`
}
