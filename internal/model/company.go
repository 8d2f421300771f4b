package model

import "github.com/google/uuid"

// EditableCompanyInfo groups the fields a company may change on their own profile
type EditableCompanyInfo struct {
	Name      string  `json:"name"`
	Overview  string  `json:"overview"`
	Industry  string  `json:"industry"`
	Size      *string `check:"size IN ('XS', 'S', 'M', 'L', 'XL')" json:"size"`
	Website   string  `json:"website"`
	AvatarURL string  `json:"avatar_url"`
}

// CompanyProfile represents a hiring company profile owned by a User
type CompanyProfile struct {
	UserID uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	User   User      `gorm:"foreignKey:UserID;references:ID" json:"user"`
	EditableCompanyInfo

	JobPosts []JobPost `gorm:"foreignKey:CompanyID" json:"job_posts,omitempty"`
}
