package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Match is a stored talent-to-job match produced by the matching service.
// Rows are replaced on every successful refresh and read back as a fallback
// when the matching endpoint is unreachable.
type Match struct {
	ID       uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	TalentID uuid.UUID `gorm:"type:uuid;not null;index" json:"talent_id"`
	JobID    uuid.UUID `gorm:"type:uuid;not null;index" json:"job_id"`
	Job      JobPost   `gorm:"foreignKey:JobID;references:ID" json:"job"`

	Score           int            `json:"score"`
	SkillScore      int            `json:"skill_score"`
	ExperienceScore int            `json:"experience_score"`
	LocationScore   int            `json:"location_score"`
	MatchedSkills   pq.StringArray `gorm:"type:text[]" json:"matched_skills"`

	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"created_at"`
}

// Skill is a catalog entry talents and job posts tag themselves with
type Skill struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string `gorm:"type:text;uniqueIndex;not null" json:"name"`
	Category string `gorm:"type:text" json:"category"`
}
