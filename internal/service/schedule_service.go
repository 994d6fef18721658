package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/chlyn/COSC369-Final-Project/config"
	"github.com/chlyn/COSC369-Final-Project/internal/dto"
	"github.com/chlyn/COSC369-Final-Project/internal/model"
	"github.com/chlyn/COSC369-Final-Project/internal/repository"
	pkgerrors "github.com/chlyn/COSC369-Final-Project/pkg/errors"
)

var (
	ErrAlreadyEnrolled  = errors.New("course already in schedule")
	ErrScheduleConflict = errors.New("schedule was updated by another request")
)

// ScheduleService per-semester enrollment sets joined against the catalog.
type ScheduleService interface {
	// Get aggregates the user's schedule. A missing schedule is an empty one.
	Get(ctx context.Context, userID, semester string) (*dto.ScheduleResponse, error)
	Add(ctx context.Context, userID, semester, code string) (*dto.ScheduleResponse, error)
	// Drop removes code; dropping a course that is not enrolled succeeds.
	Drop(ctx context.Context, userID, semester, code string) (*dto.ScheduleResponse, error)
	// Enrolled returns the enrolled catalog entries in catalog order.
	Enrolled(ctx context.Context, userID, semester string) ([]model.Course, error)
	// Semester resolves a requested label, falling back to the current one.
	Semester(label string) string
	Semesters() *dto.SemestersResponse
}

type scheduleService struct {
	cfg     *config.ScheduleConfig
	repo    *repository.Repository
	catalog CatalogService
	logger  *zap.Logger
}

func NewScheduleService(cfg *config.ScheduleConfig, repo *repository.Repository, catalog CatalogService, logger *zap.Logger) ScheduleService {
	return &scheduleService{cfg: cfg, repo: repo, catalog: catalog, logger: logger}
}

func (s *scheduleService) Semester(label string) string {
	label = strings.Join(strings.Fields(label), " ")
	if label == "" {
		return strings.TrimSpace(s.cfg.CurrentSemester)
	}
	return label
}

func (s *scheduleService) Semesters() *dto.SemestersResponse {
	terms := make([]dto.TermResponse, 0, len(s.cfg.Terms))
	for _, t := range s.cfg.Terms {
		terms = append(terms, dto.TermResponse{Name: t.Name, Start: t.Start, End: t.End})
	}
	return &dto.SemestersResponse{
		Current:   strings.TrimSpace(s.cfg.CurrentSemester),
		Semesters: terms,
	}
}

func (s *scheduleService) Get(ctx context.Context, userID, semester string) (*dto.ScheduleResponse, error) {
	semester = s.Semester(semester)
	classes, err := s.Enrolled(ctx, userID, semester)
	if err != nil {
		return nil, err
	}
	return toScheduleResponse(semester, classes), nil
}

func (s *scheduleService) Add(ctx context.Context, userID, semester, code string) (*dto.ScheduleResponse, error) {
	semester = s.Semester(semester)
	code = model.NormalizeCourseCode(code)

	if _, err := s.catalog.Get(ctx, code); err != nil {
		return nil, err
	}

	if _, err := s.repo.User.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("load user failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	schedule, err := s.load(ctx, userID, semester)
	if err != nil {
		return nil, err
	}
	if !schedule.Add(code) {
		return nil, ErrAlreadyEnrolled
	}

	if err := s.save(ctx, schedule); err != nil {
		return nil, err
	}

	s.logger.Info("course added",
		zap.String("user_id", userID),
		zap.String("semester", semester),
		zap.String("course_id", code),
	)
	return s.Get(ctx, userID, semester)
}

func (s *scheduleService) Drop(ctx context.Context, userID, semester, code string) (*dto.ScheduleResponse, error) {
	semester = s.Semester(semester)
	code = model.NormalizeCourseCode(code)

	schedule, err := s.load(ctx, userID, semester)
	if err != nil {
		return nil, err
	}

	if schedule.Remove(code) {
		if err := s.save(ctx, schedule); err != nil {
			return nil, err
		}
		s.logger.Info("course dropped",
			zap.String("user_id", userID),
			zap.String("semester", semester),
			zap.String("course_id", code),
		)
	}

	return s.Get(ctx, userID, semester)
}

func (s *scheduleService) Enrolled(ctx context.Context, userID, semester string) ([]model.Course, error) {
	schedule, err := s.load(ctx, userID, s.Semester(semester))
	if err != nil {
		return nil, err
	}
	if len(schedule.CourseIDs) == 0 {
		return []model.Course{}, nil
	}

	catalog, err := s.catalog.List(ctx)
	if err != nil {
		return nil, err
	}
	return aggregate(catalog, schedule.CourseIDs), nil
}

// load returns the stored schedule or an unsaved empty one.
func (s *scheduleService) load(ctx context.Context, userID, semester string) (*model.StudentSchedule, error) {
	schedule, err := s.repo.StudentSchedule.Get(ctx, userID, semester)
	if err == nil {
		return schedule, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &model.StudentSchedule{UserID: userID, Semester: semester, CourseIDs: []string{}}, nil
	}
	s.logger.Error("load schedule failed", zap.String("user_id", userID), zap.Error(err))
	return nil, err
}

func (s *scheduleService) save(ctx context.Context, schedule *model.StudentSchedule) error {
	err := s.repo.StudentSchedule.Save(ctx, schedule)
	if err == nil {
		return nil
	}
	if errors.Is(err, pkgerrors.ErrOptimisticLock) {
		s.logger.Warn("schedule changed concurrently",
			zap.String("user_id", schedule.UserID),
			zap.String("semester", schedule.Semester),
		)
		return ErrScheduleConflict
	}
	s.logger.Error("save schedule failed", zap.String("user_id", schedule.UserID), zap.Error(err))
	return err
}

// aggregate keeps the catalog entries whose normalized code is in codes.
// Codes missing from the catalog are skipped.
func aggregate(catalog []model.Course, codes []string) []model.Course {
	set := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		set[model.NormalizeCourseCode(c)] = struct{}{}
	}

	out := make([]model.Course, 0, len(codes))
	for _, c := range catalog {
		if _, ok := set[model.NormalizeCourseCode(c.CourseID)]; ok {
			out = append(out, c)
		}
	}
	return out
}

// ToCourseResponse maps a catalog row to its wire shape.
func ToCourseResponse(c model.Course) dto.CourseResponse {
	days := []string(c.Days)
	if days == nil {
		days = []string{}
	}
	return dto.CourseResponse{
		ID:        c.CourseID,
		Name:      c.Name,
		Professor: c.Professor,
		Location:  c.Location,
		Days:      days,
		Start:     c.Start,
		End:       c.End,
	}
}

func ToCourseResponses(courses []model.Course) []dto.CourseResponse {
	out := make([]dto.CourseResponse, 0, len(courses))
	for _, c := range courses {
		out = append(out, ToCourseResponse(c))
	}
	return out
}

func toScheduleResponse(semester string, classes []model.Course) *dto.ScheduleResponse {
	return &dto.ScheduleResponse{Semester: semester, Classes: ToCourseResponses(classes)}
}
