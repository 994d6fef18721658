package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/chlyn/COSC369-Final-Project/config"
	"github.com/chlyn/COSC369-Final-Project/internal/model"
	"github.com/chlyn/COSC369-Final-Project/internal/repository"
	pkgerrors "github.com/chlyn/COSC369-Final-Project/pkg/errors"
	"github.com/chlyn/COSC369-Final-Project/pkg/llm"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, user.Email) {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("user-%d", m.seq)
	}
	user.CreatedAt = time.Now()
	cp := *user
	m.users[user.UserID] = &cp
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, strings.TrimSpace(email)) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, u := range m.users {
		if id != user.UserID && strings.EqualFold(u.Email, user.Email) {
			return gorm.ErrDuplicatedKey
		}
	}
	cp := *user
	m.users[user.UserID] = &cp
	return nil
}

func (m *mockUserRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}

// ── Mock CourseRepository ──

type mockCourseRepo struct {
	mu        sync.Mutex
	courses   map[string]model.Course
	listCalls int
}

func newMockCourseRepo(courses ...model.Course) *mockCourseRepo {
	m := &mockCourseRepo{courses: make(map[string]model.Course)}
	for _, c := range courses {
		m.courses[c.CourseID] = c
	}
	return m
}

func (m *mockCourseRepo) List(_ context.Context) ([]model.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	out := make([]model.Course, 0, len(m.courses))
	for _, c := range m.courses {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CourseID < out[j].CourseID })
	return out, nil
}

func (m *mockCourseRepo) GetByID(_ context.Context, id string) (*model.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.courses[id]; ok {
		return &c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) Count(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.courses)), nil
}

func (m *mockCourseRepo) BatchCreate(_ context.Context, courses []model.Course) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range courses {
		if _, ok := m.courses[c.CourseID]; !ok {
			m.courses[c.CourseID] = c
		}
	}
	return nil
}

// ── Mock StudentScheduleRepository ──

type mockStudentScheduleRepo struct {
	mu        sync.Mutex
	schedules map[string]model.StudentSchedule
	writes    int
	// beforeSave runs ahead of every Save, e.g. to simulate a concurrent writer.
	beforeSave func()
}

func newMockStudentScheduleRepo() *mockStudentScheduleRepo {
	return &mockStudentScheduleRepo{schedules: make(map[string]model.StudentSchedule)}
}

func scheduleKey(userID, semester string) string { return userID + "|" + semester }

func (m *mockStudentScheduleRepo) Get(_ context.Context, userID, semester string) (*model.StudentSchedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.schedules[scheduleKey(userID, semester)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	s.CourseIDs = append([]string(nil), s.CourseIDs...)
	return &s, nil
}

func (m *mockStudentScheduleRepo) Save(_ context.Context, schedule *model.StudentSchedule) error {
	if m.beforeSave != nil {
		m.beforeSave()
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	key := scheduleKey(schedule.UserID, schedule.Semester)
	stored, exists := m.schedules[key]
	if exists != (schedule.Version > 0) || (exists && stored.Version != schedule.Version) {
		return pkgerrors.ErrOptimisticLock
	}

	m.writes++
	schedule.Version++
	cp := *schedule
	cp.CourseIDs = append([]string{}, schedule.CourseIDs...)
	m.schedules[key] = cp
	return nil
}

// bump simulates another request writing the stored schedule.
func (m *mockStudentScheduleRepo) bump(userID, semester string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := scheduleKey(userID, semester)
	s := m.schedules[key]
	s.UserID, s.Semester = userID, semester
	s.Version++
	m.schedules[key] = s
}

// ── Mock ConversationRepository ──

type mockConversationRepo struct {
	mu      sync.Mutex
	convs   map[string]model.Conversation
	seq     int
	creates int
	updates int
}

func newMockConversationRepo() *mockConversationRepo {
	return &mockConversationRepo{convs: make(map[string]model.Conversation)}
}

func copyConversation(c model.Conversation) model.Conversation {
	c.Messages = append([]model.Message{}, c.Messages...)
	return c
}

func (m *mockConversationRepo) Create(_ context.Context, conv *model.Conversation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creates++
	if conv.ConversationID == "" {
		m.seq++
		conv.ConversationID = fmt.Sprintf("conv-%d", m.seq)
	}
	conv.Version = 1
	conv.CreatedAt = time.Now()
	conv.UpdatedAt = conv.CreatedAt
	m.convs[conv.ConversationID] = copyConversation(*conv)
	return nil
}

func (m *mockConversationRepo) GetByIDAndUser(_ context.Context, id, userID string) (*model.Conversation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.convs[id]
	if !ok || c.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := copyConversation(c)
	return &cp, nil
}

func (m *mockConversationRepo) ListByUser(_ context.Context, userID string) ([]model.Conversation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Conversation
	for _, c := range m.convs {
		if c.UserID == userID {
			c.Messages = nil
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (m *mockConversationRepo) UpdateMessages(_ context.Context, conv *model.Conversation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.convs[conv.ConversationID]
	if !ok || stored.UserID != conv.UserID || stored.Version != conv.Version {
		return pkgerrors.ErrOptimisticLock
	}
	m.updates++
	conv.Version++
	conv.UpdatedAt = time.Now()
	m.convs[conv.ConversationID] = copyConversation(*conv)
	return nil
}

func (m *mockConversationRepo) DeleteByIDAndUser(_ context.Context, id, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.convs[id]
	if !ok || c.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	delete(m.convs, id)
	return nil
}

func (m *mockConversationRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.convs)
}

// ── Mock llm.Provider ──

type mockLLM struct {
	mu      sync.Mutex
	prompts []string
	reply   func(n int, prompt string) (string, error)
}

func (m *mockLLM) Generate(_ context.Context, prompt string, _ ...llm.Option) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, prompt)
	if m.reply == nil {
		return fmt.Sprintf("reply %d", len(m.prompts)), nil
	}
	return m.reply(len(m.prompts), prompt)
}

func (m *mockLLM) lastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.prompts) == 0 {
		return ""
	}
	return m.prompts[len(m.prompts)-1]
}

// ── fixtures ──

func testCatalog() []model.Course {
	return []model.Course{
		{CourseID: "CS101", Name: "Intro to Programming", Professor: "Dr. Reyes", Location: "SCI 120", Days: []string{"Mon", "Wed", "Fri"}, Start: "9:00 AM", End: "9:50 AM"},
		{CourseID: "ENGR110", Name: "Engineering Design", Professor: "Prof. Stein", Location: "ENG 101", Days: []string{"Mon", "Wed"}, Start: "10:00 AM", End: "11:15 AM"},
		{CourseID: "MATH301", Name: "Linear Algebra", Professor: "Dr. Watanabe", Location: "MATH 210", Days: []string{"Tue", "Thu"}, Start: "12:30 PM", End: "1:45 PM"},
		{CourseID: "PHYS201", Name: "General Physics", Professor: "Dr. Petrov", Location: "PHY 2", Days: []string{"Tue", "Thu"}, Start: "9:30 AM", End: "10:45 AM"},
	}
}

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{JWTSecret: "test-secret-key-for-unit-testing", AccessTokenTTL: time.Hour},
		Chat: config.ChatConfig{TitleLimit: 40},
		Schedule: config.ScheduleConfig{
			CurrentSemester: "Fall 2025",
			Timezone:        "UTC",
			Terms: []config.TermConfig{
				{Name: "Fall 2025", Start: "2025-08-25", End: "2025-12-12"},
			},
		},
		Catalog: config.CatalogConfig{CacheTTL: time.Minute},
	}
}

type testEnv struct {
	cfg           *config.Config
	repo          *repository.Repository
	users         *mockUserRepo
	courses       *mockCourseRepo
	schedules     *mockStudentScheduleRepo
	conversations *mockConversationRepo
	llm           *mockLLM
	logger        *zap.Logger
}

func newTestEnv() *testEnv {
	env := &testEnv{
		cfg:           testConfig(),
		users:         newMockUserRepo(),
		courses:       newMockCourseRepo(testCatalog()...),
		schedules:     newMockStudentScheduleRepo(),
		conversations: newMockConversationRepo(),
		llm:           &mockLLM{},
		logger:        zap.NewNop(),
	}
	env.repo = &repository.Repository{
		User:            env.users,
		Course:          env.courses,
		StudentSchedule: env.schedules,
		Conversation:    env.conversations,
	}
	return env
}

func (e *testEnv) catalog() CatalogService {
	return NewCatalogService(e.repo, nil, 0, e.logger)
}

func (e *testEnv) schedule() ScheduleService {
	return NewScheduleService(&e.cfg.Schedule, e.repo, e.catalog(), e.logger)
}

func (e *testEnv) chat() ChatService {
	catalog := e.catalog()
	return NewChatService(&e.cfg.Chat, e.repo, catalog, NewScheduleService(&e.cfg.Schedule, e.repo, catalog, e.logger), e.llm, e.logger)
}

func (e *testEnv) addUser(email string) *model.User {
	u := &model.User{Email: email, Name: "Test User"}
	_ = e.users.Create(context.Background(), u)
	return u
}
