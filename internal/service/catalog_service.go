package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/chlyn/COSC369-Final-Project/internal/model"
	"github.com/chlyn/COSC369-Final-Project/internal/repository"
	"github.com/chlyn/COSC369-Final-Project/internal/seed"
	"github.com/chlyn/COSC369-Final-Project/pkg/cache"
)

var ErrCourseNotFound = errors.New("course not found")

const catalogCacheKey = "catalog:v1"

// CatalogService read access to the course catalog.
type CatalogService interface {
	// Seed loads the embedded dataset when the catalog is empty and
	// returns the number of inserted courses.
	Seed(ctx context.Context) (int, error)
	// List returns every course ordered by id.
	List(ctx context.Context) ([]model.Course, error)
	Get(ctx context.Context, code string) (*model.Course, error)
}

type catalogService struct {
	repo   *repository.Repository
	cache  cache.Store
	ttl    time.Duration
	logger *zap.Logger
}

// NewCatalogService store may be nil, in which case every read hits the database.
func NewCatalogService(repo *repository.Repository, store cache.Store, ttl time.Duration, logger *zap.Logger) CatalogService {
	return &catalogService{repo: repo, cache: store, ttl: ttl, logger: logger}
}

func (s *catalogService) Seed(ctx context.Context) (int, error) {
	n, err := s.repo.Course.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count courses: %w", err)
	}
	if n > 0 {
		return 0, nil
	}

	courses, err := seed.Courses()
	if err != nil {
		return 0, err
	}
	if err := s.repo.Course.BatchCreate(ctx, courses); err != nil {
		return 0, fmt.Errorf("insert seed courses: %w", err)
	}

	s.invalidate(ctx)
	s.logger.Info("course catalog seeded", zap.Int("courses", len(courses)))
	return len(courses), nil
}

func (s *catalogService) List(ctx context.Context) ([]model.Course, error) {
	if courses, ok := s.fromCache(ctx); ok {
		return courses, nil
	}

	courses, err := s.repo.Course.List(ctx)
	if err != nil {
		s.logger.Error("list courses failed", zap.Error(err))
		return nil, err
	}

	s.toCache(ctx, courses)
	return courses, nil
}

func (s *catalogService) Get(ctx context.Context, code string) (*model.Course, error) {
	code = model.NormalizeCourseCode(code)
	if code == "" {
		return nil, ErrCourseNotFound
	}

	course, err := s.repo.Course.GetByID(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("get course failed", zap.String("course_id", code), zap.Error(err))
		return nil, err
	}
	return course, nil
}

// ── cache ──

func (s *catalogService) fromCache(ctx context.Context) ([]model.Course, bool) {
	if s.cache == nil {
		return nil, false
	}

	raw, err := s.cache.Get(ctx, catalogCacheKey)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			s.logger.Warn("catalog cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var courses []model.Course
	if err := json.Unmarshal(raw, &courses); err != nil {
		s.logger.Warn("catalog cache entry corrupt", zap.Error(err))
		return nil, false
	}
	return courses, true
}

func (s *catalogService) toCache(ctx context.Context, courses []model.Course) {
	if s.cache == nil || len(courses) == 0 {
		return
	}

	raw, err := json.Marshal(courses)
	if err != nil {
		s.logger.Warn("encode catalog for cache failed", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, catalogCacheKey, raw, s.ttl); err != nil {
		s.logger.Warn("catalog cache write failed", zap.Error(err))
	}
}

func (s *catalogService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, catalogCacheKey); err != nil {
		s.logger.Warn("catalog cache invalidate failed", zap.Error(err))
	}
}
