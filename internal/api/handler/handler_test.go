package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/chlyn/COSC369-Final-Project/internal/api/middleware"
	"github.com/chlyn/COSC369-Final-Project/internal/dto"
	"github.com/chlyn/COSC369-Final-Project/internal/model"
	"github.com/chlyn/COSC369-Final-Project/internal/service"
	"github.com/chlyn/COSC369-Final-Project/pkg/jwt"
	"github.com/chlyn/COSC369-Final-Project/pkg/response"
	"github.com/chlyn/COSC369-Final-Project/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := validation.RegisterGin(); err != nil {
		panic(err)
	}
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	signupResult *dto.AuthResponse
	signupErr    error
	loginResult  *dto.AuthResponse
	loginErr     error
	logoutClaims *jwt.Claims
	logoutErr    error
}

func (m *mockAuthService) Signup(_ context.Context, _ *dto.SignupRequest) (*dto.AuthResponse, error) {
	return m.signupResult, m.signupErr
}
func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.AuthResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) Logout(_ context.Context, claims *jwt.Claims) error {
	m.logoutClaims = claims
	return m.logoutErr
}

// ── Mock UserService ──

type mockUserService struct {
	result   *dto.UserResponse
	err      error
	gotUser  string
	password string
}

func (m *mockUserService) Get(_ context.Context, userID string) (*dto.UserResponse, error) {
	m.gotUser = userID
	return m.result, m.err
}
func (m *mockUserService) UpdateProfile(_ context.Context, userID string, _ *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	m.gotUser = userID
	return m.result, m.err
}
func (m *mockUserService) UpdateAcademic(_ context.Context, userID string, _ *dto.UpdateAcademicRequest) (*dto.UserResponse, error) {
	m.gotUser = userID
	return m.result, m.err
}
func (m *mockUserService) UpdatePassword(_ context.Context, userID, password string) error {
	m.gotUser = userID
	m.password = password
	return m.err
}

// ── Mock CatalogService ──

type mockCatalogService struct {
	courses []model.Course
	err     error
}

func (m *mockCatalogService) Seed(_ context.Context) (int, error) { return 0, nil }
func (m *mockCatalogService) List(_ context.Context) ([]model.Course, error) {
	return m.courses, m.err
}
func (m *mockCatalogService) Get(_ context.Context, code string) (*model.Course, error) {
	for _, c := range m.courses {
		if c.CourseID == model.NormalizeCourseCode(code) {
			return &c, nil
		}
	}
	return nil, service.ErrCourseNotFound
}

// ── Mock ScheduleService ──

type mockScheduleService struct {
	result      *dto.ScheduleResponse
	err         error
	gotUser     string
	gotSemester string
	gotCode     string
}

func (m *mockScheduleService) Get(_ context.Context, userID, semester string) (*dto.ScheduleResponse, error) {
	m.gotUser, m.gotSemester = userID, semester
	return m.result, m.err
}
func (m *mockScheduleService) Add(_ context.Context, userID, semester, code string) (*dto.ScheduleResponse, error) {
	m.gotUser, m.gotSemester, m.gotCode = userID, semester, code
	return m.result, m.err
}
func (m *mockScheduleService) Drop(_ context.Context, userID, semester, code string) (*dto.ScheduleResponse, error) {
	m.gotUser, m.gotSemester, m.gotCode = userID, semester, code
	return m.result, m.err
}
func (m *mockScheduleService) Enrolled(_ context.Context, _, _ string) ([]model.Course, error) {
	return nil, m.err
}
func (m *mockScheduleService) Semester(label string) string { return label }
func (m *mockScheduleService) Semesters() *dto.SemestersResponse {
	return &dto.SemestersResponse{Current: "Fall 2025", Semesters: []dto.TermResponse{{Name: "Fall 2025"}}}
}

// ── Mock ChatService ──

type mockChatService struct {
	result  *dto.ChatResponse
	err     error
	gotUser string
	calls   int
}

func (m *mockChatService) Send(_ context.Context, userID string, _ *dto.ChatRequest) (*dto.ChatResponse, error) {
	m.calls++
	m.gotUser = userID
	return m.result, m.err
}

// ── Mock ConversationService ──

type mockConversationService struct {
	list    []dto.ConversationSummary
	detail  *dto.ConversationDetail
	err     error
	gotUser string
	gotID   string
}

func (m *mockConversationService) List(_ context.Context, userID string) ([]dto.ConversationSummary, error) {
	m.gotUser = userID
	return m.list, m.err
}
func (m *mockConversationService) Get(_ context.Context, userID, id string) (*dto.ConversationDetail, error) {
	m.gotUser, m.gotID = userID, id
	return m.detail, m.err
}
func (m *mockConversationService) Delete(_ context.Context, userID, id string) error {
	m.gotUser, m.gotID = userID, id
	return m.err
}

// ── Mock ExportService ──

type mockExportService struct {
	file      *service.ExportFile
	err       error
	gotFormat string
}

func (m *mockExportService) Export(_ context.Context, _, _, format string) (*service.ExportFile, error) {
	m.gotFormat = format
	return m.file, m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseError(w *httptest.ResponseRecorder) response.ErrorBody {
	var body response.ErrorBody
	json.Unmarshal(w.Body.Bytes(), &body)
	return body
}

// serve runs one request; a non-empty tokenUser simulates middleware.Identity.
func serve(method, route, target string, body io.Reader, tokenUser string, h gin.HandlerFunc) *httptest.ResponseRecorder {
	r := gin.New()
	r.Handle(method, route, func(c *gin.Context) {
		if tokenUser != "" {
			c.Set(middleware.CtxUserID, tokenUser)
			c.Set(middleware.CtxClaims, &jwt.Claims{UserID: tokenUser})
		}
		h(c)
	})

	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, status int) {
	t.Helper()
	if w.Code != status {
		t.Fatalf("expected %d, got %d: %s", status, w.Code, w.Body.String())
	}
}

func expectCode(t *testing.T, w *httptest.ResponseRecorder, code int) {
	t.Helper()
	if got := parseError(w).Code; got != code {
		t.Errorf("expected error code %d, got %d", code, got)
	}
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func validSignup() dto.SignupRequest {
	return dto.SignupRequest{FirstName: "Ana", LastName: "Lopez", Email: "ana@example.com", Password: "correct-horse"}
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	mock := &mockAuthService{signupResult: &dto.AuthResponse{User: dto.UserResponse{ID: "u1", Email: "ana@example.com"}, Token: "tok"}}
	h := NewAuthHandler(mock)

	w := serve("POST", "/auth/signup", "/auth/signup", jsonBody(validSignup()), "", h.Signup)
	expectStatus(t, w, http.StatusCreated)

	var resp dto.AuthResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.User.ID != "u1" || resp.Token != "tok" {
		t.Errorf("unexpected body %s", w.Body.String())
	}
	if strings.Contains(w.Body.String(), "correct-horse") {
		t.Error("password echoed in response")
	}
}

func TestAuthHandler_Signup_Duplicate(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{signupErr: service.ErrEmailExists})

	w := serve("POST", "/auth/signup", "/auth/signup", jsonBody(validSignup()), "", h.Signup)
	expectStatus(t, w, http.StatusConflict)
	expectCode(t, w, 11002)
}

func TestAuthHandler_Signup_Validation(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	bad := validSignup()
	bad.Email = "not-an-email"
	w := serve("POST", "/auth/signup", "/auth/signup", jsonBody(bad), "", h.Signup)
	expectStatus(t, w, http.StatusBadRequest)
	expectCode(t, w, 10001)

	short := validSignup()
	short.Password = "short"
	w = serve("POST", "/auth/signup", "/auth/signup", jsonBody(short), "", h.Signup)
	expectStatus(t, w, http.StatusBadRequest)
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := serve("POST", "/auth/login", "/auth/login", strings.NewReader("invalid json"), "", h.Login)
	expectStatus(t, w, http.StatusBadRequest)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrInvalidCredentials})

	w := serve("POST", "/auth/login", "/auth/login", jsonBody(dto.LoginRequest{Email: "a@b.co", Password: "wrong"}), "", h.Login)
	expectStatus(t, w, http.StatusUnauthorized)
	expectCode(t, w, 11001)
}

func TestAuthHandler_Logout(t *testing.T) {
	mock := &mockAuthService{}
	h := NewAuthHandler(mock)

	w := serve("POST", "/auth/logout", "/auth/logout", nil, "u1", h.Logout)
	expectStatus(t, w, http.StatusOK)
	if mock.logoutClaims == nil || mock.logoutClaims.UserID != "u1" {
		t.Errorf("expected claims to reach the service, got %+v", mock.logoutClaims)
	}

	mock = &mockAuthService{}
	h = NewAuthHandler(mock)
	w = serve("POST", "/auth/logout", "/auth/logout", nil, "", h.Logout)
	expectStatus(t, w, http.StatusOK)
	if mock.logoutClaims != nil {
		t.Error("expected nil claims without a token")
	}
}

// ═══════════════════════════════════════════════════════════
// Identity resolution
// ═══════════════════════════════════════════════════════════

func TestResolveUserID(t *testing.T) {
	tests := []struct {
		name      string
		tokenUser string
		target    string
		status    int
		wantUser  string
	}{
		{"query only", "", "/me?userId=u1", http.StatusOK, "u1"},
		{"missing", "", "/me", http.StatusUnauthorized, ""},
		{"token only", "u2", "/me", http.StatusOK, "u2"},
		{"token matches", "u2", "/me?userId=u2", http.StatusOK, "u2"},
		{"token conflicts", "u2", "/me?userId=u1", http.StatusUnauthorized, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockUserService{result: &dto.UserResponse{ID: "x"}}
			h := NewUserHandler(mock)

			w := serve("GET", "/me", tt.target, nil, tt.tokenUser, h.Me)
			expectStatus(t, w, tt.status)
			if mock.gotUser != tt.wantUser {
				t.Errorf("expected service to see %q, got %q", tt.wantUser, mock.gotUser)
			}
		})
	}
}

// ═══════════════════════════════════════════════════════════
// UserHandler Tests
// ═══════════════════════════════════════════════════════════

func TestUserHandler_UpdateProfile_Errors(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   int
	}{
		{service.ErrUserNotFound, http.StatusNotFound, 12001},
		{service.ErrEmailExists, http.StatusConflict, 12002},
		{service.ErrEmptyName, http.StatusBadRequest, 12003},
		{errors.New("db down"), http.StatusInternalServerError, 50000},
	}
	for _, tt := range tests {
		h := NewUserHandler(&mockUserService{err: tt.err})
		w := serve("PATCH", "/profile", "/profile", jsonBody(map[string]string{"userId": "u1", "name": "Ana"}), "", h.UpdateProfile)
		expectStatus(t, w, tt.status)
		expectCode(t, w, tt.code)
	}
}

func TestUserHandler_InternalErrorHidesCause(t *testing.T) {
	h := NewUserHandler(&mockUserService{err: errors.New("pq: connection refused")})
	w := serve("PATCH", "/academic", "/academic", jsonBody(map[string]string{"userId": "u1", "major": "CS"}), "", h.UpdateAcademic)
	expectStatus(t, w, http.StatusInternalServerError)
	if strings.Contains(w.Body.String(), "connection refused") {
		t.Error("internal cause leaked to client")
	}
}

func TestUserHandler_UpdatePassword_NoEcho(t *testing.T) {
	mock := &mockUserService{}
	h := NewUserHandler(mock)

	w := serve("PATCH", "/password", "/password", jsonBody(map[string]string{"userId": "u1", "password": "brand-new-secret"}), "", h.UpdatePassword)
	expectStatus(t, w, http.StatusOK)
	if mock.password != "brand-new-secret" {
		t.Errorf("expected password to reach the service")
	}
	if strings.Contains(w.Body.String(), "brand-new-secret") {
		t.Error("password echoed in response")
	}
}

// ═══════════════════════════════════════════════════════════
// Catalog & Schedule Tests
// ═══════════════════════════════════════════════════════════

func TestCatalogHandler(t *testing.T) {
	h := NewCatalogHandler(&mockCatalogService{courses: []model.Course{
		{CourseID: "CS101", Name: "Intro", Days: []string{"Mon"}},
	}})

	w := serve("GET", "/courses", "/courses", nil, "", h.List)
	expectStatus(t, w, http.StatusOK)
	var list []dto.CourseResponse
	json.Unmarshal(w.Body.Bytes(), &list)
	if len(list) != 1 || list[0].ID != "CS101" {
		t.Errorf("unexpected body %s", w.Body.String())
	}

	w = serve("GET", "/courses/:id", "/courses/cs101", nil, "", h.Get)
	expectStatus(t, w, http.StatusOK)

	w = serve("GET", "/courses/:id", "/courses/NOPE1", nil, "", h.Get)
	expectStatus(t, w, http.StatusNotFound)
	expectCode(t, w, 13001)
}

func TestScheduleHandler_Get(t *testing.T) {
	mock := &mockScheduleService{result: &dto.ScheduleResponse{Semester: "Fall 2025", Classes: []dto.CourseResponse{}}}
	h := NewScheduleHandler(mock)

	w := serve("GET", "/schedule", "/schedule?userId=u1&semester=Spring+2026", nil, "", h.Get)
	expectStatus(t, w, http.StatusOK)
	if mock.gotUser != "u1" || mock.gotSemester != "Spring 2026" {
		t.Errorf("unexpected args %q %q", mock.gotUser, mock.gotSemester)
	}
	if !strings.Contains(w.Body.String(), `"classes":[]`) {
		t.Errorf("expected empty classes array, got %s", w.Body.String())
	}

	w = serve("GET", "/schedule", "/schedule?userId=u1&semester=!!", nil, "", h.Get)
	expectStatus(t, w, http.StatusBadRequest)
}

func TestScheduleHandler_Add(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		body   map[string]string
		status int
		code   int
	}{
		{"ok", nil, map[string]string{"userId": "u1", "courseId": "cs101"}, http.StatusOK, 0},
		{"unknown course", service.ErrCourseNotFound, map[string]string{"userId": "u1", "courseId": "XX1"}, http.StatusNotFound, 13001},
		{"already enrolled", service.ErrAlreadyEnrolled, map[string]string{"userId": "u1", "courseId": "CS101"}, http.StatusConflict, 13002},
		{"concurrent write", service.ErrScheduleConflict, map[string]string{"userId": "u1", "courseId": "CS101"}, http.StatusConflict, 13004},
		{"missing course", nil, map[string]string{"userId": "u1"}, http.StatusBadRequest, 10001},
		{"malformed course", nil, map[string]string{"userId": "u1", "courseId": "CS_101;"}, http.StatusBadRequest, 10001},
		{"missing user", nil, map[string]string{"courseId": "CS101"}, http.StatusUnauthorized, 10002},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockScheduleService{result: &dto.ScheduleResponse{Semester: "Fall 2025"}, err: tt.err}
			h := NewScheduleHandler(mock)

			w := serve("POST", "/add", "/add", jsonBody(tt.body), "", h.Add)
			expectStatus(t, w, tt.status)
			if tt.code != 0 {
				expectCode(t, w, tt.code)
			}
		})
	}
}

func TestScheduleHandler_Drop(t *testing.T) {
	mock := &mockScheduleService{result: &dto.ScheduleResponse{Semester: "Fall 2025"}}
	h := NewScheduleHandler(mock)

	w := serve("POST", "/drop", "/drop", jsonBody(map[string]string{"courseId": "MATH301"}), "u9", h.Drop)
	expectStatus(t, w, http.StatusOK)
	if mock.gotUser != "u9" || mock.gotCode != "MATH301" {
		t.Errorf("unexpected args %q %q", mock.gotUser, mock.gotCode)
	}
}

func TestScheduleHandler_Semesters(t *testing.T) {
	h := NewScheduleHandler(&mockScheduleService{})
	w := serve("GET", "/semesters", "/semesters", nil, "", h.Semesters)
	expectStatus(t, w, http.StatusOK)
	if !strings.Contains(w.Body.String(), `"current":"Fall 2025"`) {
		t.Errorf("unexpected body %s", w.Body.String())
	}
}

// ═══════════════════════════════════════════════════════════
// ChatHandler Tests
// ═══════════════════════════════════════════════════════════

func TestChatHandler_Send_Success(t *testing.T) {
	mock := &mockChatService{result: &dto.ChatResponse{Reply: "Here are your classes", ConversationID: "c1"}}
	h := NewChatHandler(mock)

	w := serve("POST", "/chat", "/chat", jsonBody(dto.ChatRequest{Message: "my classes?", UserID: "u1"}), "", h.Send)
	expectStatus(t, w, http.StatusOK)

	var resp dto.ChatResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Reply != "Here are your classes" || resp.ConversationID != "c1" {
		t.Errorf("unexpected body %s", w.Body.String())
	}
}

func TestChatHandler_Send_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   int
	}{
		{"empty message", service.ErrEmptyMessage, http.StatusBadRequest, 14001},
		{"no user", service.ErrMissingUser, http.StatusUnauthorized, 10002},
		{"unknown user", service.ErrUserNotFound, http.StatusNotFound, 14004},
		{"conflict", service.ErrConversationConflict, http.StatusConflict, 14003},
		{"model failure", service.ErrGenerationFailed, http.StatusInternalServerError, 14002},
		{"store failure", errors.New("db down"), http.StatusInternalServerError, 50000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewChatHandler(&mockChatService{err: tt.err})
			w := serve("POST", "/chat", "/chat", jsonBody(dto.ChatRequest{Message: "hi", UserID: "u1"}), "", h.Send)
			expectStatus(t, w, tt.status)
			expectCode(t, w, tt.code)
		})
	}
}

func TestChatHandler_GenerationFailureMessage(t *testing.T) {
	h := NewChatHandler(&mockChatService{err: service.ErrGenerationFailed})
	w := serve("POST", "/chat", "/chat", jsonBody(dto.ChatRequest{Message: "hi", UserID: "u1"}), "", h.Send)

	if got := parseError(w).Error; got != GenerationFailedMessage {
		t.Errorf("expected apology text, got %q", got)
	}
}

func TestChatHandler_MissingUserNeverCallsService(t *testing.T) {
	mock := &mockChatService{}
	h := NewChatHandler(mock)

	w := serve("POST", "/chat", "/chat", jsonBody(dto.ChatRequest{Message: "hi"}), "", h.Send)
	expectStatus(t, w, http.StatusUnauthorized)
	expectCode(t, w, 10002)
	if mock.calls != 0 {
		t.Error("service called without a user")
	}
}

func TestChatHandler_BodyTooLarge(t *testing.T) {
	h := NewChatHandler(&mockChatService{})

	r := gin.New()
	r.Use(middleware.BodyLimit(64))
	r.POST("/chat", h.Send)

	// unknown length so the limit trips while decoding
	body := io.MultiReader(strings.NewReader(`{"message":"`+strings.Repeat("x", 200)+`"}`))
	req := httptest.NewRequest("POST", "/chat", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	expectStatus(t, w, http.StatusRequestEntityTooLarge)
}

// ═══════════════════════════════════════════════════════════
// ConversationHandler Tests
// ═══════════════════════════════════════════════════════════

func TestConversationHandler_List(t *testing.T) {
	mock := &mockConversationService{list: []dto.ConversationSummary{{ID: "c1", Title: "Hi"}}}
	h := NewConversationHandler(mock)

	w := serve("GET", "/conversations", "/conversations?userId=u1", nil, "", h.List)
	expectStatus(t, w, http.StatusOK)
	if mock.gotUser != "u1" || !strings.Contains(w.Body.String(), `"id":"c1"`) {
		t.Errorf("unexpected body %s", w.Body.String())
	}
}

func TestConversationHandler_GetNotFound(t *testing.T) {
	mock := &mockConversationService{err: service.ErrConversationNotFound}
	h := NewConversationHandler(mock)

	w := serve("GET", "/conversations/:id", "/conversations/c1?userId=u2", nil, "", h.Get)
	expectStatus(t, w, http.StatusNotFound)
	expectCode(t, w, 15001)
	if mock.gotID != "c1" || mock.gotUser != "u2" {
		t.Errorf("unexpected args %q %q", mock.gotID, mock.gotUser)
	}
}

func TestConversationHandler_Delete(t *testing.T) {
	h := NewConversationHandler(&mockConversationService{})
	w := serve("DELETE", "/conversations/:id", "/conversations/c1?userId=u1", nil, "", h.Delete)
	expectStatus(t, w, http.StatusNoContent)

	h = NewConversationHandler(&mockConversationService{err: service.ErrConversationNotFound})
	w = serve("DELETE", "/conversations/:id", "/conversations/c1?userId=u1", nil, "", h.Delete)
	expectStatus(t, w, http.StatusNotFound)
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_Success(t *testing.T) {
	mock := &mockExportService{file: &service.ExportFile{
		Filename:    "schedule_Fall_2025.ics",
		ContentType: "text/calendar; charset=utf-8",
		Data:        []byte("BEGIN:VCALENDAR"),
	}}
	h := NewExportHandler(mock)

	w := serve("GET", "/export", "/export?userId=u1&format=ics", nil, "", h.ExportSchedule)
	expectStatus(t, w, http.StatusOK)
	if mock.gotFormat != "ics" {
		t.Errorf("expected format ics, got %q", mock.gotFormat)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "schedule_Fall_2025.ics") {
		t.Errorf("unexpected Content-Disposition %q", cd)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		t.Errorf("unexpected Content-Type %q", ct)
	}
	if w.Body.String() != "BEGIN:VCALENDAR" {
		t.Errorf("unexpected body %q", w.Body.String())
	}
}

func TestExportHandler_Errors(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   int
	}{
		{service.ErrExportNoClasses, http.StatusNotFound, 16001},
		{service.ErrExportUnknownFormat, http.StatusBadRequest, 16002},
		{service.ErrExportTermNotConfigured, http.StatusBadRequest, 16003},
		{service.ErrExportGenerateFail, http.StatusInternalServerError, 50000},
	}
	for _, tt := range tests {
		h := NewExportHandler(&mockExportService{err: tt.err})
		w := serve("GET", "/export", "/export?userId=u1", nil, "", h.ExportSchedule)
		expectStatus(t, w, tt.status)
		expectCode(t, w, tt.code)
	}
}
