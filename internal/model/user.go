// Package model contain gorm model for recording data to database
package model

import (
	"time"

	"github.com/google/uuid"
)

var (
	// RoleTalent is role of a talent user looking for jobs
	RoleTalent = "talent"
	// RoleCompany is role of a company user posting jobs
	RoleCompany = "company"
	// RoleAdmin is role of a marketplace administrator
	RoleAdmin = "admin"
)

// ContactInfo holds optional contact fields shared by profiles
type ContactInfo struct {
	Tel   *string `json:"tel"`
	Email *string `json:"email"`
}

// User is the account record every profile hangs off
type User struct {
	ID uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ContactInfo
	Username       string    `gorm:"type:text;uniqueIndex;not null" json:"username"`
	Password       string    `gorm:"type:text" json:"-"`
	Role           string    `gorm:"type:text;not null" json:"role"`
	ProfilePicture string    `gorm:"type:text" json:"profile_picture"`
	CreatedAt      time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"created_at"`
}
