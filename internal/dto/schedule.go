package dto

// ── catalog & schedule ──

// CourseResponse canonical course shape shared by every endpoint
type CourseResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Professor string   `json:"professor"`
	Location  string   `json:"location"`
	Days      []string `json:"days"`
	Start     string   `json:"start"`
	End       string   `json:"end"`
}

// ScheduleQuery GET /api/schedule parameters
type ScheduleQuery struct {
	UserID   string `form:"userId"`
	Semester string `form:"semester" binding:"omitempty,semester"`
}

// EnrollRequest add / drop body
type EnrollRequest struct {
	CourseID string `json:"courseId" binding:"required,coursecode"`
	UserID   string `json:"userId"`
	Semester string `json:"semester" binding:"omitempty,semester"`
}

// ScheduleResponse aggregated schedule
type ScheduleResponse struct {
	Semester string           `json:"semester"`
	Classes  []CourseResponse `json:"classes"`
}

// ExportQuery GET /api/schedule/export parameters
type ExportQuery struct {
	UserID   string `form:"userId"`
	Semester string `form:"semester" binding:"omitempty,semester"`
	Format   string `form:"format"`
}

// TermResponse configured semester
type TermResponse struct {
	Name  string `json:"name"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// SemestersResponse GET /api/semesters
type SemestersResponse struct {
	Current   string         `json:"current"`
	Semesters []TermResponse `json:"semesters"`
}
