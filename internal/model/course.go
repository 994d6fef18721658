package model

import (
	"strings"

	"gorm.io/datatypes"
)

// Course catalog entry (table courses). CourseID is the normalized code.
type Course struct {
	CourseID  string                      `gorm:"type:varchar(32);primaryKey"  json:"id"`
	Name      string                      `gorm:"type:varchar(200);not null"   json:"name"`
	Professor string                      `gorm:"type:varchar(120);not null"   json:"professor"`
	Location  string                      `gorm:"type:varchar(120);not null"   json:"location"`
	Days      datatypes.JSONSlice[string] `gorm:"not null"                     json:"days"` // ["Mon","Wed"]
	Start     string                      `gorm:"type:varchar(16);not null"    json:"start"`
	End       string                      `gorm:"type:varchar(16);not null"    json:"end"`
	BaseModel
}

// TableName table name
func (Course) TableName() string { return "courses" }

// NormalizeCourseCode is the comparison key for course codes: trimmed and
// upper-cased, inner spaces kept.
func NormalizeCourseCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
