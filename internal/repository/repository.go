package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository groups every store used by the services.
type Repository struct {
	User            UserRepository
	Course          CourseRepository
	StudentSchedule StudentScheduleRepository
	Conversation    ConversationRepository
}

// NewRepository wires the GORM implementations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:            NewUserRepo(db),
		Course:          NewCourseRepo(db),
		StudentSchedule: NewStudentScheduleRepo(db),
		Conversation:    NewConversationRepo(db),
	}
}

// validID reports whether every id is a canonical uuid. Postgres fails a
// query on a malformed uuid literal, so callers answer those ids as misses
// without querying.
func validID(ids ...string) bool {
	for _, id := range ids {
		if len(id) != 36 {
			return false
		}
		if _, err := uuid.Parse(id); err != nil {
			return false
		}
	}
	return true
}
