package model

// File represents an uploaded file record. Small uploads keep their content
// in the row; bucket-backed uploads keep only the object name and URL.
type File struct {
	ID         int    `gorm:"primaryKey" json:"id"`
	Content    []byte `json:"-"`
	Extension  string `json:"extension"`
	ObjectName string `json:"object_name"`
	URL        string `json:"url"`
}
