package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// StudentSchedule enrollment set per (user, semester) (table student_schedules)
type StudentSchedule struct {
	StudentScheduleID string                      `gorm:"type:uuid;primaryKey"                                   json:"id"`
	UserID            string                      `gorm:"type:uuid;not null;uniqueIndex:uq_schedule_user_semester" json:"userId"`
	Semester          string                      `gorm:"type:varchar(40);not null;uniqueIndex:uq_schedule_user_semester" json:"semester"`
	CourseIDs         datatypes.JSONSlice[string] `gorm:"not null"                                               json:"courseIds"`
	VersionedModel
}

// TableName table name
func (StudentSchedule) TableName() string { return "student_schedules" }

// BeforeCreate assigns the id.
func (s *StudentSchedule) BeforeCreate(_ *gorm.DB) error {
	newID(&s.StudentScheduleID)
	return nil
}

// Has reports whether code is already in the set, ignoring case and
// surrounding whitespace.
func (s *StudentSchedule) Has(code string) bool {
	code = NormalizeCourseCode(code)
	for _, c := range s.CourseIDs {
		if NormalizeCourseCode(c) == code {
			return true
		}
	}
	return false
}

// Remove drops code from the set and reports whether it was present.
func (s *StudentSchedule) Remove(code string) bool {
	code = NormalizeCourseCode(code)
	kept := make([]string, 0, len(s.CourseIDs))
	removed := false
	for _, c := range s.CourseIDs {
		if NormalizeCourseCode(c) == code {
			removed = true
			continue
		}
		kept = append(kept, c)
	}
	s.CourseIDs = kept
	return removed
}

// Add appends the normalized code unless it is already present.
func (s *StudentSchedule) Add(code string) bool {
	if s.Has(code) {
		return false
	}
	s.CourseIDs = append(s.CourseIDs, NormalizeCourseCode(code))
	return true
}
