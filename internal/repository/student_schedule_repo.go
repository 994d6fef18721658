package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/chlyn/COSC369-Final-Project/internal/model"
	pkgerrors "github.com/chlyn/COSC369-Final-Project/pkg/errors"
)

// StudentScheduleRepository enrollment sets keyed by (user, semester)
type StudentScheduleRepository interface {
	Get(ctx context.Context, userID, semester string) (*model.StudentSchedule, error)
	Save(ctx context.Context, schedule *model.StudentSchedule) error
}

type studentScheduleRepo struct {
	db *gorm.DB
}

func NewStudentScheduleRepo(db *gorm.DB) StudentScheduleRepository {
	return &studentScheduleRepo{db: db}
}

func (r *studentScheduleRepo) Get(ctx context.Context, userID, semester string) (*model.StudentSchedule, error) {
	if !validID(userID) {
		return nil, gorm.ErrRecordNotFound
	}
	var s model.StudentSchedule
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND semester = ?", userID, semester).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Save writes the whole set. A schedule that was never stored (Version 0)
// is inserted; one read from the store is replaced only if its version is
// still current. Losing either race returns pkgerrors.ErrOptimisticLock.
func (r *studentScheduleRepo) Save(ctx context.Context, schedule *model.StudentSchedule) error {
	if schedule.CourseIDs == nil {
		schedule.CourseIDs = []string{}
	}

	if schedule.Version == 0 {
		schedule.Version = 1
		err := r.db.WithContext(ctx).Create(schedule).Error
		if err != nil {
			schedule.Version = 0
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return pkgerrors.ErrOptimisticLock
			}
		}
		return err
	}

	oldVersion := schedule.Version
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&model.StudentSchedule{}).
		Where("user_id = ? AND semester = ? AND version = ?", schedule.UserID, schedule.Semester, oldVersion).
		Updates(map[string]interface{}{
			"course_ids": schedule.CourseIDs,
			"version":    oldVersion + 1,
			"updated_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	schedule.Version = oldVersion + 1
	schedule.UpdatedAt = now
	return nil
}
