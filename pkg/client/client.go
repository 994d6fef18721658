// Package client is a typed HTTP client for the studyplan API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/chlyn/COSC369-Final-Project/internal/dto"
)

// APIError is a non-2xx response.
type APIError struct {
	Status  int
	Code    int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.Status)
	}
	return fmt.Sprintf("api error %d (status %d): %s", e.Code, e.Status, e.Message)
}

// Client talks to one API base URL, e.g. http://localhost:3001.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithToken sends an Authorization: Bearer header on every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 90 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// SetToken replaces the bearer token; empty disables it.
func (c *Client) SetToken(token string) { c.token = token }

// ── auth ──

// Signup creates an account and adopts the returned token.
func (c *Client) Signup(ctx context.Context, req dto.SignupRequest) (*dto.AuthResponse, error) {
	var out dto.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/signup", nil, req, &out); err != nil {
		return nil, err
	}
	c.token = out.Token
	return &out, nil
}

// Login authenticates and adopts the returned token.
func (c *Client) Login(ctx context.Context, email, password string) (*dto.AuthResponse, error) {
	var out dto.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, dto.LoginRequest{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	c.token = out.Token
	return &out, nil
}

// Logout revokes the current token and forgets it.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil, nil); err != nil {
		return err
	}
	c.token = ""
	return nil
}

// ── user ──

type userEnvelope struct {
	User dto.UserResponse `json:"user"`
}

func (c *Client) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	var out userEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/user/me", userQuery(userID), nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *Client) UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	var out userEnvelope
	if err := c.do(ctx, http.MethodPatch, "/api/user/profile", nil, req, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *Client) UpdateAcademic(ctx context.Context, req dto.UpdateAcademicRequest) (*dto.UserResponse, error) {
	var out userEnvelope
	if err := c.do(ctx, http.MethodPatch, "/api/user/academic", nil, req, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *Client) UpdatePassword(ctx context.Context, userID, password string) error {
	return c.do(ctx, http.MethodPatch, "/api/user/password", nil, dto.UpdatePasswordRequest{UserID: userID, Password: password}, nil)
}

// ── catalog & schedule ──

func (c *Client) Courses(ctx context.Context) ([]dto.CourseResponse, error) {
	var out []dto.CourseResponse
	if err := c.do(ctx, http.MethodGet, "/api/courses", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Course(ctx context.Context, id string) (*dto.CourseResponse, error) {
	var out dto.CourseResponse
	if err := c.do(ctx, http.MethodGet, "/api/courses/"+url.PathEscape(strings.TrimSpace(id)), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Semesters(ctx context.Context) (*dto.SemestersResponse, error) {
	var out dto.SemestersResponse
	if err := c.do(ctx, http.MethodGet, "/api/semesters", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Schedule returns the aggregated schedule; an empty semester means the current one.
func (c *Client) Schedule(ctx context.Context, userID, semester string) (*dto.ScheduleResponse, error) {
	q := userQuery(userID)
	if semester != "" {
		q.Set("semester", semester)
	}
	var out dto.ScheduleResponse
	if err := c.do(ctx, http.MethodGet, "/api/schedule", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AddCourse(ctx context.Context, userID, semester, courseID string) (*dto.ScheduleResponse, error) {
	return c.enroll(ctx, "/api/schedule/add", userID, semester, courseID)
}

func (c *Client) DropCourse(ctx context.Context, userID, semester, courseID string) (*dto.ScheduleResponse, error) {
	return c.enroll(ctx, "/api/schedule/drop", userID, semester, courseID)
}

func (c *Client) enroll(ctx context.Context, path, userID, semester, courseID string) (*dto.ScheduleResponse, error) {
	var out dto.ScheduleResponse
	req := dto.EnrollRequest{UserID: userID, Semester: semester, CourseID: courseID}
	if err := c.do(ctx, http.MethodPost, path, nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExportSchedule downloads the schedule file and its suggested name.
func (c *Client) ExportSchedule(ctx context.Context, userID, semester, format string) ([]byte, string, error) {
	q := userQuery(userID)
	if semester != "" {
		q.Set("semester", semester)
	}
	if format != "" {
		q.Set("format", format)
	}

	resp, err := c.send(ctx, http.MethodGet, "/api/schedule/export", q, nil)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read export: %w", err)
	}
	if resp.StatusCode >= 300 {
		return nil, "", decodeError(resp.StatusCode, data)
	}

	filename := ""
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil {
		filename = params["filename"]
	}
	return data, filename, nil
}

// ── chat & conversations ──

func (c *Client) Chat(ctx context.Context, req dto.ChatRequest) (*dto.ChatResponse, error) {
	var out dto.ChatResponse
	if err := c.do(ctx, http.MethodPost, "/api/chat", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Conversations(ctx context.Context, userID string) ([]dto.ConversationSummary, error) {
	var out []dto.ConversationSummary
	if err := c.do(ctx, http.MethodGet, "/api/conversations", userQuery(userID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Conversation(ctx context.Context, userID, id string) (*dto.ConversationDetail, error) {
	var out dto.ConversationDetail
	if err := c.do(ctx, http.MethodGet, "/api/conversations/"+url.PathEscape(id), userQuery(userID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteConversation(ctx context.Context, userID, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/conversations/"+url.PathEscape(id), userQuery(userID), nil, nil)
}

// ── transport ──

func userQuery(userID string) url.Values {
	q := url.Values{}
	if userID != "" {
		q.Set("userId", userID)
	}
	return q
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, body interface{}) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		bodyReader = bytes.NewReader(b)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	return c.httpClient.Do(req)
}

// do sends a JSON request and decodes a JSON response into out (may be nil).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	resp, err := c.send(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return decodeError(resp.StatusCode, data)
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(status int, data []byte) error {
	var body struct {
		Error string `json:"error"`
		Code  int    `json:"code"`
	}
	_ = json.Unmarshal(data, &body)
	return &APIError{Status: status, Code: body.Code, Message: body.Error}
}
