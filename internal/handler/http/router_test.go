package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cmlabs-hris/activity-monitor-backend/internal/domain/activity"
	"github.com/cmlabs-hris/activity-monitor-backend/internal/domain/employee"
	"github.com/cmlabs-hris/activity-monitor-backend/internal/domain/report"
	"github.com/cmlabs-hris/activity-monitor-backend/internal/domain/settings"
	"github.com/cmlabs-hris/activity-monitor-backend/internal/handler/http/response"
	"github.com/cmlabs-hris/activity-monitor-backend/internal/pkg/jwt"
	"github.com/cmlabs-hris/activity-monitor-backend/internal/pkg/validator"
	authService "github.com/cmlabs-hris/activity-monitor-backend/internal/service/auth"
	settingsService "github.com/cmlabs-hris/activity-monitor-backend/internal/service/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const handlerTestSecret = "test-secret-key-for-jwt"

// ===== FAKES =====

type fakeEmployeeService struct {
	employee.EmployeeService
	created  []employee.CreateEmployeeRequest
	deleteFn func(id string) error
}

func (f *fakeEmployeeService) ListEmployees(ctx context.Context) ([]employee.EmployeeResponse, error) {
	return []employee.EmployeeResponse{{ID: "e1", Username: "ali.khan", Name: "Ali Khan"}}, nil
}

func (f *fakeEmployeeService) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}
	f.created = append(f.created, req)
	return employee.EmployeeResponse{ID: "e2", Username: req.Username, Name: req.Name}, nil
}

func (f *fakeEmployeeService) DeleteEmployee(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(id)
	}
	return nil
}

type fakeActivityService struct {
	activity.ActivityService
	listErr    error
	lastFilter activity.SummaryFilter
	closeErr   error
	lastIdle   activity.RecordIdleLogRequest
}

func (f *fakeActivityService) ListEmployeeSummaries(ctx context.Context, filter activity.SummaryFilter) (activity.ListSummariesResponse, error) {
	f.lastFilter = filter
	if f.listErr != nil {
		return activity.ListSummariesResponse{}, f.listErr
	}
	return activity.ListSummariesResponse{
		Employees: []activity.EmployeeSummary{{
			ID: "e1", User: "ali.khan", Name: "Ali Khan", LatestStatus: activity.StatusIdle,
			Sessions: []activity.NormalizedSession{{
				Kind: activity.SessionKindIdle, Category: activity.CategoryNamaz, Duration: 15,
				StartTimeLocal: "19:00:00", EndTimeLocal: "19:15:00",
				ShiftDate: "2024-01-10", ShiftLabel: activity.ShiftOne,
			}},
			Shifts: []activity.ShiftGroup{},
		}},
		Settings: settings.SettingsResponse{GeneralIdleLimit: 60},
	}, nil
}

func (f *fakeActivityService) GetEmployeeSummary(ctx context.Context, id string, filter activity.SummaryFilter) (activity.EmployeeSummary, error) {
	if id != "e1" {
		return activity.EmployeeSummary{}, employee.ErrEmployeeNotFound
	}
	return activity.EmployeeSummary{ID: "e1", User: "ali.khan", LatestStatus: activity.StatusUnknown}, nil
}

func (f *fakeActivityService) RecordIdleLog(ctx context.Context, req activity.RecordIdleLogRequest) (activity.IdleLogResponse, error) {
	if err := req.Validate(); err != nil {
		return activity.IdleLogResponse{}, err
	}
	f.lastIdle = req
	if req.User == "ghost" {
		return activity.IdleLogResponse{}, activity.ErrUnknownUser
	}
	return activity.IdleLogResponse{ID: "i1", User: req.User, Status: req.Status, Category: req.Category}, nil
}

func (f *fakeActivityService) CloseIdleLog(ctx context.Context, req activity.CloseIdleLogRequest) (activity.IdleLogResponse, error) {
	if f.closeErr != nil {
		return activity.IdleLogResponse{}, f.closeErr
	}
	return activity.IdleLogResponse{ID: req.ID}, nil
}

func (f *fakeActivityService) RecordAutoBreak(ctx context.Context, req activity.RecordAutoBreakRequest) (activity.AutoBreakResponse, error) {
	return activity.AutoBreakResponse{ID: "b1", User: req.User, Status: activity.StatusAutoBreak, DurationMinutes: 10}, nil
}

type fakeReportService struct{}

func (fakeReportService) GenerateActivityWorkbook(ctx context.Context, req report.ActivityReportRequest) (report.ActivityWorkbook, error) {
	return report.ActivityWorkbook{Filename: "activity-report-20240111-083000.xlsx", Content: []byte("PK\x03\x04")}, nil
}

type memorySettingsRepo struct {
	stored *settings.Settings
}

func (m *memorySettingsRepo) Get(ctx context.Context) (settings.Settings, error) {
	if m.stored == nil {
		return settings.Settings{}, settings.ErrSettingsNotFound
	}
	return *m.stored, nil
}

func (m *memorySettingsRepo) Upsert(ctx context.Context, s settings.Settings) (settings.Settings, error) {
	now := time.Now()
	s.UpdatedAt = &now
	m.stored = &s
	return s, nil
}

// ===== SETUP =====

type testServer struct {
	handler   http.Handler
	jwt       jwt.Service
	employees *fakeEmployeeService
	activity  *fakeActivityService
}

func newTestServer(t *testing.T) testServer {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	jwtSvc := jwt.NewJWTService(handlerTestSecret, "1h", "24h")
	employees := &fakeEmployeeService{}
	activities := &fakeActivityService{}

	router := NewRouter(
		RouterOptions{
			Logger:      NewLogger(io.Discard, "test", 0),
			FrontendURL: "http://localhost:3000",
			JWTService:  jwtSvc,
		},
		NewAuthHandler(authService.NewAuthService(jwtSvc, "admin", string(hash))),
		NewEmployeeHandler(employees, activities),
		NewActivityHandler(activities),
		NewSettingsHandler(settingsService.NewSettingsService(&memorySettingsRepo{}, 60, "Asia/Karachi")),
		NewReportHandler(fakeReportService{}),
	)

	return testServer{handler: router, jwt: jwtSvc, employees: employees, activity: activities}
}

func (s testServer) accessToken(t *testing.T) string {
	t.Helper()
	token, _, err := s.jwt.GenerateAccessToken("admin")
	require.NoError(t, err)
	return token
}

func (s testServer) agentToken(t *testing.T) string {
	t.Helper()
	token, _, err := s.jwt.GenerateAgentToken("agent-01")
	require.NoError(t, err)
	return token
}

func (s testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		if raw, ok := body.(string); ok {
			reader = bytes.NewBufferString(raw)
		} else {
			b, err := json.Marshal(body)
			require.NoError(t, err)
			reader = bytes.NewReader(b)
		}
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

// ===== AUTH =====

func TestLogin(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": "admin", "password": "password123"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	resp := decode(t, rec)
	assert.True(t, resp.Success)
	data := resp.Data.(map[string]interface{})
	assert.NotEmpty(t, data["access_token"])
	assert.Equal(t, jwt.TokenTypeAccess, data["token_type"])
}

func TestLogin_WrongPassword(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": "admin", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHORIZED", decode(t, rec).Error.Code)
}

func TestLogin_MalformedBody(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/v1/auth/login", "", "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIssueAgentToken(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/v1/auth/agent-token", srv.accessToken(t), map[string]string{"agent_name": "floor-2"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	data := decode(t, rec).Data.(map[string]interface{})
	assert.Equal(t, jwt.TokenTypeAgent, data["token_type"])

	// Agents cannot mint further tokens.
	rec = srv.do(t, http.MethodPost, "/api/v1/auth/agent-token", srv.agentToken(t), map[string]string{"agent_name": "floor-3"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	srv := newTestServer(t)

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/employees"},
		{http.MethodGet, "/api/v1/employees/export"},
		{http.MethodGet, "/api/v1/settings"},
		{http.MethodPost, "/api/v1/idle-logs"},
		{http.MethodPost, "/api/v1/auto-breaks"},
	}

	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := srv.do(t, tc.method, tc.path, "", nil)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)

			rec = srv.do(t, tc.method, tc.path, "garbage.token.value", nil)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestDashboardRoutes_RejectAgentToken(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/api/v1/employees", srv.agentToken(t), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", decode(t, rec).Error.Code)
}

// ===== EMPLOYEES =====

func TestListSummaries(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/api/v1/employees?from=2024-01-10&to=2024-01-11", srv.accessToken(t), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, "2024-01-10", srv.activity.lastFilter.From)
	assert.Equal(t, "2024-01-11", srv.activity.lastFilter.To)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Employees []struct {
				User         string `json:"user"`
				LatestStatus string `json:"latest_status"`
				Sessions     []struct {
					StartTimeLocal string `json:"start_time_local"`
					ShiftDate      string `json:"shiftDate"`
					ShiftLabel     string `json:"shiftLabel"`
					Duration       int    `json:"duration"`
				} `json:"sessions"`
			} `json:"employees"`
			Settings struct {
				GeneralIdleLimit int `json:"general_idle_limit"`
			} `json:"settings"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.True(t, body.Success)
	require.Len(t, body.Data.Employees, 1)
	emp := body.Data.Employees[0]
	assert.Equal(t, "ali.khan", emp.User)
	assert.Equal(t, activity.StatusIdle, emp.LatestStatus)
	require.Len(t, emp.Sessions, 1)
	assert.Equal(t, "19:00:00", emp.Sessions[0].StartTimeLocal)
	assert.Equal(t, "2024-01-10", emp.Sessions[0].ShiftDate)
	assert.Equal(t, activity.ShiftOne, emp.Sessions[0].ShiftLabel)
	assert.Equal(t, 15, emp.Sessions[0].Duration)
	assert.Equal(t, 60, body.Data.Settings.GeneralIdleLimit)
}

func TestListSummaries_FailureHidesDetails(t *testing.T) {
	srv := newTestServer(t)
	srv.activity.listErr = errors.New("pq: connection refused to 10.0.0.5")

	rec := srv.do(t, http.MethodGet, "/api/v1/employees", srv.accessToken(t), nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	resp := decode(t, rec)
	assert.False(t, resp.Success)
	assert.Nil(t, resp.Data)
	assert.Equal(t, "An unexpected error occurred", resp.Error.Message)
	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
}

func TestListSummaries_InvalidFilter(t *testing.T) {
	srv := newTestServer(t)
	srv.activity.listErr = validator.ValidationErrors{{Field: "from", Message: "from must be a date in YYYY-MM-DD format"}}

	rec := srv.do(t, http.MethodGet, "/api/v1/employees?from=yesterday", srv.accessToken(t), nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decode(t, rec).Error.Details, "from")
}

func TestGetSummary(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/api/v1/employees/e1", srv.accessToken(t), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/v1/employees/missing", srv.accessToken(t), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRosterCreateAndDelete(t *testing.T) {
	srv := newTestServer(t)
	token := srv.accessToken(t)

	rec := srv.do(t, http.MethodGet, "/api/v1/employees/roster", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, http.MethodPost, "/api/v1/employees", token, map[string]string{"username": "sara", "name": "Sara Ahmed"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Len(t, srv.employees.created, 1)

	rec = srv.do(t, http.MethodPost, "/api/v1/employees", token, map[string]string{"username": "", "name": ""})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	srv.employees.deleteFn = func(id string) error {
		assert.Equal(t, "0190b5a1-0000-7000-8000-000000000001", id)
		return nil
	}
	rec = srv.do(t, http.MethodDelete, "/api/v1/employees/0190b5a1-0000-7000-8000-000000000001", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	srv.employees.deleteFn = func(string) error { return employee.ErrEmployeeNotFound }
	rec = srv.do(t, http.MethodDelete, "/api/v1/employees/0190b5a1-0000-7000-8000-000000000001", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExport(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/api/v1/employees/export", srv.accessToken(t), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, report.ContentTypeXLSX, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "activity-report-20240111-083000.xlsx")
	assert.Equal(t, "PK\x03\x04", rec.Body.String())
}

// ===== ACTIVITY =====

func TestRecordIdleLog_AgentToken(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/v1/idle-logs", srv.agentToken(t), map[string]string{
		"user": "ali.khan", "status": "Idle", "idle_start": "2024-01-10T14:00:00Z",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, activity.CategoryUncategorized, srv.activity.lastIdle.Category)

	rec = srv.do(t, http.MethodPost, "/api/v1/idle-logs", srv.agentToken(t), map[string]string{
		"user": "ghost", "status": "Active",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decode(t, rec).Error.Details, "user")

	rec = srv.do(t, http.MethodPost, "/api/v1/idle-logs", srv.agentToken(t), map[string]string{
		"user": "ali.khan", "status": "Sleeping",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCloseIdleLog(t *testing.T) {
	srv := newTestServer(t)
	path := "/api/v1/idle-logs/0190b5a1-0000-7000-8000-0000000000a1/end"

	rec := srv.do(t, http.MethodPut, path, srv.agentToken(t), map[string]string{"idle_end": "2024-01-10T14:15:00Z"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	data := decode(t, rec).Data.(map[string]interface{})
	assert.Equal(t, "0190b5a1-0000-7000-8000-0000000000a1", data["id"])

	srv.activity.closeErr = activity.ErrIdleLogAlreadyClosed
	rec = srv.do(t, http.MethodPut, path, srv.agentToken(t), map[string]string{"idle_end": "2024-01-10T14:15:00Z"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	srv.activity.closeErr = activity.ErrIdleLogNotFound
	rec = srv.do(t, http.MethodPut, path, srv.agentToken(t), map[string]string{"idle_end": "2024-01-10T14:15:00Z"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRecordAutoBreak(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/v1/auto-breaks", srv.accessToken(t), map[string]string{
		"user": "ali.khan", "break_start": "2024-01-10T02:00:00Z", "break_end": "2024-01-10T02:10:00Z",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	data := decode(t, rec).Data.(map[string]interface{})
	assert.Equal(t, float64(10), data["duration_minutes"])
}

// ===== SETTINGS =====

func TestSettings(t *testing.T) {
	srv := newTestServer(t)
	token := srv.accessToken(t)

	rec := srv.do(t, http.MethodGet, "/api/v1/settings", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := decode(t, rec).Data.(map[string]interface{})
	assert.Equal(t, float64(60), data["general_idle_limit"])

	rec = srv.do(t, http.MethodPut, "/api/v1/settings", token, map[string]int{"general_idle_limit": 45})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = srv.do(t, http.MethodGet, "/api/v1/settings", token, nil)
	data = decode(t, rec).Data.(map[string]interface{})
	assert.Equal(t, float64(45), data["general_idle_limit"])

	for _, bad := range []int{0, -5, 1441} {
		rec = srv.do(t, http.MethodPut, "/api/v1/settings", token, map[string]int{"general_idle_limit": bad})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, "limit %d", bad)
	}
}

func TestDisplayConfig_Public(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/api/v1/config", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	data := decode(t, rec).Data.(map[string]interface{})
	colors := data["category_colors"].(map[string]interface{})
	assert.Equal(t, "#2563eb", colors["Official"])
	assert.Equal(t, "#f59e0b", colors["General"])
	assert.Equal(t, "#10b981", colors["Namaz"])
	assert.Equal(t, "#6b7280", colors["AutoBreak"])
	assert.Equal(t, float64(60), data["default_general_idle_limit"])
	assert.Equal(t, "Asia/Karachi", data["timezone"])
}

func TestHeartbeat(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
