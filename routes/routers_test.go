package routes

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"restaurante360/constants"
	"restaurante360/dto"
	"restaurante360/internal/testdb"
	"restaurante360/services"
	"restaurante360/services/logger"
	"restaurante360/validator"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/olahol/melody"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Code       int             `json:"code"`
	Mess       string          `json:"mess"`
	Data       json.RawMessage `json:"data"`
	ErrorCode  string          `json:"errorCode"`
	Pagination *struct {
		Total int `json:"total"`
	} `json:"pagination"`
}

type api struct {
	t      *testing.T
	router *gin.Engine
	svc    *services.Services
}

func newAPI(t *testing.T) *api {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validator.RegisterWithGin(validator.Default())

	svc := services.New(services.Options{
		DB:    testdb.Open(t),
		Clock: func() time.Time { return time.Date(2026, 10, 19, 14, 0, 0, 0, time.UTC) },
	}, services.NewLocalProvider("segredo", time.Hour, nil), nil)

	router := gin.New()
	SetupRoutes(router, svc, melody.New(), logger.Nop{})
	return &api{t: t, router: router, svc: svc}
}

func (a *api) do(method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func (a *api) login(email, password string) string {
	a.t.Helper()
	w, env := a.do(http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{Email: email, Password: password})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())
	var res dto.LoginResponse
	require.NoError(a.t, json.Unmarshal(env.Data, &res))
	return res.Token
}

func decode(t *testing.T, env envelope, target interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, target))
}

func TestAuthRoutes(t *testing.T) {
	a := newAPI(t)

	w, env := a.do(http.MethodPost, "/api/v1/auth/signup", "", dto.SignUpRequest{Name: "Lia Souza", Email: "lia@r.com", Password: "segura123"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var user dto.UserResponse
	decode(t, env, &user)
	assert.Equal(t, constants.RoleCollaborator, user.Role)
	assert.NotContains(t, w.Body.String(), "password")

	w, env = a.do(http.MethodPost, "/api/v1/auth/signup", "", dto.SignUpRequest{Name: "Lia Souza", Email: "lia@r.com", Password: "segura123"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "EMAIL_IN_USE", env.ErrorCode)

	w, env = a.do(http.MethodPost, "/api/v1/auth/signup", "", map[string]string{"name": "Li", "email": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.ErrorCode)

	w, _ = a.do(http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{Email: "lia@r.com", Password: "errada"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := a.login("lia@r.com", "segura123")
	w, env = a.do(http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me dto.UserResponse
	decode(t, env, &me)
	assert.Equal(t, user.ID, me.ID)

	w, _ = a.do(http.MethodGet, "/api/v1/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = a.do(http.MethodGet, "/api/v1/users", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestChecklistRoutes(t *testing.T) {
	a := newAPI(t)
	ctx := context.Background()
	_, err := a.svc.Users.Create(ctx, dto.CreateUserRequest{Name: "Gerente", Email: "g@r.com", Password: "segura123", Role: constants.RoleManager})
	require.NoError(t, err)
	worker, err := a.svc.Users.Create(ctx, dto.CreateUserRequest{Name: "Rui", Email: "rui@r.com", Password: "segura123", Role: constants.RoleCozinha})
	require.NoError(t, err)
	mgr := a.login("g@r.com", "segura123")
	col := a.login("rui@r.com", "segura123")

	w, env := a.do(http.MethodPost, "/api/v1/activities", mgr, dto.CreateActivityRequest{
		Title: "Foto da bancada", Description: "Registrar a bancada limpa", Category: constants.CategoryHigiene,
		Frequency: constants.FrequencyDaily, RequiresPhoto: true,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var activity struct{ ID string }
	decode(t, env, &activity)

	w, _ = a.do(http.MethodPost, "/api/v1/activities", col, dto.CreateActivityRequest{})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env = a.do(http.MethodPost, "/api/v1/processes", mgr, dto.CreateProcessRequest{
		Name: "Abertura", Description: "Rotina de abertura", ActivityIDs: []string{activity.ID, "sumiu"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "TEMPLATE_NOT_FOUND", env.ErrorCode)

	w, env = a.do(http.MethodPost, "/api/v1/processes", mgr, dto.CreateProcessRequest{
		Name: "Abertura", Description: "Rotina de abertura", ActivityIDs: []string{activity.ID},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var process struct{ ID string }
	decode(t, env, &process)

	w, env = a.do(http.MethodPost, "/api/v1/checklists/assign", mgr, map[string]string{
		"processId": process.ID, "assignedTo": worker.ID, "date": "2026-10-19", "shift": "Madrugada",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Mess, "turno")

	w, env = a.do(http.MethodPost, "/api/v1/checklists/assign", mgr, dto.AssignChecklistRequest{
		ProcessID: process.ID, AssignedTo: worker.ID, Date: "2026-10-19", Shift: constants.ShiftAfternoon,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var checklist dto.ChecklistResponse
	decode(t, env, &checklist)
	require.Len(t, checklist.Tasks, 1)
	taskPath := "/api/v1/checklists/" + checklist.ID + "/tasks/" + checklist.Tasks[0].ID

	w, env = a.do(http.MethodPost, taskPath+"/complete", col, dto.CompleteTaskRequest{})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "PHOTO_REQUIRED", env.ErrorCode)

	stale := 7
	w, env = a.do(http.MethodPost, taskPath+"/complete", col, dto.CompleteTaskRequest{
		PhotoURLs: []string{"https://cdn.example.com/a.jpg"}, ExpectedVersion: &stale,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "CONFLICT", env.ErrorCode)

	w, env = a.do(http.MethodPost, taskPath+"/complete", col, dto.CompleteTaskRequest{
		PhotoURLs: []string{"https://cdn.example.com/a.jpg"}, Feedback: "ok",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var transition dto.TaskTransitionResponse
	decode(t, env, &transition)
	assert.EqualValues(t, "completed", transition.Checklist.Status)
	assert.Equal(t, 100.0, transition.Checklist.Progress)

	w, env = a.do(http.MethodGet, "/api/v1/checklists", col, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, 1, env.Pagination.Total)

	w, env = a.do(http.MethodGet, "/api/v1/tasks/mine?date=2026-10-19", col, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var tasks []dto.MyTask
	decode(t, env, &tasks)
	assert.Len(t, tasks, 1)

	w, _ = a.do(http.MethodGet, "/api/v1/tasks/mine?date=19-10-2026", col, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = a.do(http.MethodGet, "/api/v1/reports/summary?from=2026-10-01&to=2026-10-31", mgr, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var report dto.Report
	decode(t, env, &report)
	assert.Equal(t, 100, report.AverageCompliance)

	w, _ = a.do(http.MethodGet, "/api/v1/reports/export", mgr, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "relatorio.xlsx")
}

func TestCheckInAndDashboardRoutes(t *testing.T) {
	a := newAPI(t)
	ctx := context.Background()
	_, err := a.svc.Users.Create(ctx, dto.CreateUserRequest{Name: "Gerente", Email: "g@r.com", Password: "segura123", Role: constants.RoleGestor})
	require.NoError(t, err)
	_, err = a.svc.Users.Create(ctx, dto.CreateUserRequest{Name: "Rui", Email: "rui@r.com", Password: "segura123", Role: constants.RoleGarcon})
	require.NoError(t, err)
	mgr := a.login("g@r.com", "segura123")
	col := a.login("rui@r.com", "segura123")

	w, env := a.do(http.MethodPost, "/api/v1/checkins", col, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var checkIn struct{ Shift string }
	decode(t, env, &checkIn)
	assert.Equal(t, constants.ShiftAfternoon, checkIn.Shift)

	w, env = a.do(http.MethodGet, "/api/v1/dashboard/collaborator", col, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var colDash dto.CollaboratorDashboard
	decode(t, env, &colDash)
	assert.True(t, colDash.CheckedIn)

	w, env = a.do(http.MethodGet, "/api/v1/dashboard/manager", mgr, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var mgrDash dto.ManagerDashboard
	decode(t, env, &mgrDash)
	assert.Equal(t, 1, mgrDash.CheckinsToday)

	w, _ = a.do(http.MethodGet, "/api/v1/dashboard/manager", col, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env = a.do(http.MethodGet, "/api/v1/checkins", mgr, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []dto.CheckInResponse
	decode(t, env, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "Rui", list[0].UserName)

	w, env = a.do(http.MethodPost, "/api/v1/photos", col, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_FORMAT", env.ErrorCode)

	w, _ = a.do(http.MethodPut, "/api/v1/devices/token", col, dto.DeviceTokenRequest{Token: "fcm-token-0123456789"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTaskTransitionsWithoutBody(t *testing.T) {
	a := newAPI(t)
	ctx := context.Background()
	_, err := a.svc.Users.Create(ctx, dto.CreateUserRequest{Name: "Gerente", Email: "g@r.com", Password: "segura123", Role: constants.RoleManager})
	require.NoError(t, err)
	worker, err := a.svc.Users.Create(ctx, dto.CreateUserRequest{Name: "Bia", Email: "bia@r.com", Password: "segura123", Role: constants.RoleGarcon})
	require.NoError(t, err)
	mgr := a.login("g@r.com", "segura123")
	col := a.login("bia@r.com", "segura123")

	oneOff := func(title string) string {
		w, env := a.do(http.MethodPost, "/api/v1/checklists/one-off", mgr, dto.OneOffTaskRequest{
			Title: title, AssignedTo: worker.ID, Date: "2026-10-19", Shift: constants.ShiftAfternoon,
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var checklist dto.ChecklistResponse
		decode(t, env, &checklist)
		require.Len(t, checklist.Tasks, 1)
		return "/api/v1/checklists/" + checklist.ID + "/tasks/" + checklist.Tasks[0].ID
	}

	w, env := a.do(http.MethodPost, oneOff("Repor guardanapos")+"/complete", col, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var done dto.TaskTransitionResponse
	decode(t, env, &done)
	assert.EqualValues(t, "done", done.Task.Status)
	assert.EqualValues(t, "completed", done.Checklist.Status)

	w, env = a.do(http.MethodPost, oneOff("Polir taças")+"/not-applicable", col, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var skipped dto.TaskTransitionResponse
	decode(t, env, &skipped)
	assert.EqualValues(t, "not_applicable", skipped.Task.Status)

	req := httptest.NewRequest(http.MethodPost, oneOff("Conferir estoque")+"/complete", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+col)
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_FORMAT")
}
