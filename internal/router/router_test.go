package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"hostelfood/internal/auth"
	"hostelfood/internal/cache"
	"hostelfood/internal/config"
	"hostelfood/internal/db"
	apperrors "hostelfood/internal/errors"
	"hostelfood/internal/handler"
	"hostelfood/internal/model"
	"hostelfood/internal/repository"
	"hostelfood/internal/service"
	"hostelfood/internal/window"
)

// testNow pins the clock the student service and window policy read, so
// "today" never moves while a test runs.
var testNow = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

type testServer struct {
	e     *echo.Echo
	repos repository.Repositories
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	cfg := &config.Config{
		StoreDriver:     config.DriverSQLite,
		DatabaseDSN:     ":memory:",
		DBTimeout:       5 * time.Second,
		JWTSecret:       "test-secret",
		BcryptCost:      bcrypt.MinCost,
		CORSOrigins:     []string{"*"},
		SelectionPolicy: config.PolicyAlwaysOpen,
	}
	store, err := db.Open(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close(context.Background()) })

	repos := repository.New(store, cfg.DBTimeout)
	jwtSvc := auth.NewJWTService(cfg.JWTSecret)
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)
	policy := window.New(cfg.SelectionPolicy, fixedClock)

	userSvc := service.NewUserService(repos.Users, cache.New("", "", 0), time.Minute)
	handlers := Handlers{
		Health:  handler.NewHealthHandler(store, cfg.DBTimeout),
		Auth:    handler.NewAuthHandler(service.NewAuthService(repos.Users, jwtSvc, hasher)),
		User:    handler.NewUserHandler(userSvc),
		Admin:   handler.NewAdminHandler(service.NewMenuService(repos.MenuItems, repos.Menus, repos.Selections, policy)),
		Student: handler.NewStudentHandler(service.NewStudentService(repos.MenuItems, repos.Menus, repos.Selections, policy, fixedClock)),
		Ticket:  handler.NewTicketHandler(service.NewTicketService(repos.Tickets, repos.Users)),
	}

	e := echo.New()
	Register(e, cfg, handlers, jwtSvc, userSvc)

	hash, err := hasher.Hash("admin123")
	require.NoError(t, err)
	require.NoError(t, repos.Users.Create(context.Background(), &model.User{
		ID: "admin-001", Email: "admin@hostel.com", Name: "Admin User", Role: model.RoleAdmin, PasswordHash: hash,
	}))
	return &testServer{e: e, repos: repos}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	var body apperrors.ErrorResponse
	decode(t, rec, &body)
	return body.Code
}

func (s *testServer) login(t *testing.T, email, password string) string {
	rec := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res service.AuthResult
	decode(t, rec, &res)
	return res.Token
}

func TestRoot(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var info handler.InfoResponse
	decode(t, rec, &info)
	assert.Equal(t, "Connected", info.Database)
	assert.Equal(t, "/api", info.APIPrefix)
	assert.Equal(t, "1.0.0", info.Version)

	rec = s.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "hostelfood_http_requests_total")
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t)
	reg := map[string]string{"email": "asha@hostel.com", "password": "pw123456", "name": "Asha", "hostel_id": "H-101"}

	rec := s.do(t, http.MethodPost, "/api/auth/register", "", reg)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var registered service.AuthResult
	decode(t, rec, &registered)
	assert.Equal(t, model.RoleStudent, registered.User.Role)
	assert.NotContains(t, rec.Body.String(), "password_hash")

	rec = s.do(t, http.MethodPost, "/api/auth/register", "", reg)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "DUPLICATE_EMAIL", errorCode(t, rec))

	rec = s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{"email": "not-an-email", "password": "x", "name": "N"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_REQUEST", errorCode(t, rec))

	// bcrypt stops at 72 bytes; longer passwords are a client error
	rec = s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "long@hostel.com", "password": strings.Repeat("p", 73), "name": "Long",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_REQUEST", errorCode(t, rec))
	// 30 runes fit the tag but not bcrypt's byte limit
	rec = s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "wide@hostel.com", "password": strings.Repeat("密", 30), "name": "Wide",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_REQUEST", errorCode(t, rec))

	wrongPw := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "asha@hostel.com", "password": "nope"})
	unknown := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "ghost@hostel.com", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, wrongPw.Code)
	assert.Equal(t, wrongPw.Body.String(), unknown.Body.String())

	token := s.login(t, "asha@hostel.com", "pw123456")
	first := s.do(t, http.MethodGet, "/api/auth/me", token, nil)
	second := s.do(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	var me model.User
	decode(t, first, &me)
	assert.Equal(t, registered.User.ID, me.ID)

	rec = s.do(t, http.MethodGet, "/api/auth/me", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHENTICATED", errorCode(t, rec))
}

func TestMealFlow(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, "admin@hostel.com", "admin123")

	rec := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{"email": "s@hostel.com", "password": "pw", "name": "Student"})
	require.Equal(t, http.StatusOK, rec.Code)
	student := s.login(t, "s@hostel.com", "pw")

	// students cannot curate
	rec = s.do(t, http.MethodPost, "/api/admin/menu-items", student, map[string]string{"name": "X", "category": "veg", "meal_type": "lunch"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	ids := make([]string, 0, 3)
	for _, name := range []string{"Rice", "Dal", "Chicken"} {
		category := "veg"
		if name == "Chicken" {
			category = "non-veg"
		}
		rec = s.do(t, http.MethodPost, "/api/admin/menu-items", admin, map[string]string{"name": name, "category": category, "meal_type": "lunch"})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var item model.MenuItem
		decode(t, rec, &item)
		ids = append(ids, item.ID)
	}

	today := testNow.Format(model.DateLayout)
	rec = s.do(t, http.MethodPost, "/api/admin/menus", admin, map[string]interface{}{"date": today, "meal_type": "lunch", "item_ids": ids})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var menu model.Menu
	decode(t, rec, &menu)
	assert.Equal(t, model.MenuStatusPublished, menu.Status)

	old := s.do(t, http.MethodPost, "/api/admin/menus", admin, map[string]interface{}{"date": "2020-01-01", "meal_type": "lunch", "item_ids": ids})
	require.Equal(t, http.StatusOK, old.Code)

	rec = s.do(t, http.MethodGet, "/api/student/menus", student, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var menus []service.StudentMenu
	decode(t, rec, &menus)
	require.Len(t, menus, 1)
	assert.Equal(t, menu.ID, menus[0].ID)
	assert.Len(t, menus[0].Items, 3)
	assert.False(t, menus[0].UserSelected)

	rec = s.do(t, http.MethodPost, "/api/student/selections", student, map[string]interface{}{"menu_id": menu.ID, "selected_item_ids": ids[:1]})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res service.SelectionResult
	decode(t, rec, &res)
	assert.Equal(t, "Selection created", res.Message)

	rec = s.do(t, http.MethodPost, "/api/student/selections", student, map[string]interface{}{"menu_id": menu.ID, "selected_item_ids": ids[1:]})
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &res)
	assert.Equal(t, "Selection updated", res.Message)

	rec = s.do(t, http.MethodPost, "/api/student/selections", student, map[string]interface{}{"menu_id": "nope", "selected_item_ids": ids})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/student/booking-history", student, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var history []service.BookingEntry
	decode(t, rec, &history)
	require.Len(t, history, 1)
	assert.Equal(t, ids[1:], history[0].SelectedItemIDs)
	assert.Equal(t, menu.ID, history[0].Menu.ID)

	rec = s.do(t, http.MethodDelete, "/api/admin/menu-items/"+ids[2], admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodDelete, "/api/admin/menu-items/"+ids[2], admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/admin/analytics/"+menu.ID, admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var analytics service.Analytics
	decode(t, rec, &analytics)
	assert.Equal(t, 1, analytics.TotalUsers)
	require.Len(t, analytics.Items, 3)
	assert.Equal(t, 0, analytics.Items[0].Count)
	assert.Equal(t, 100.0, analytics.Items[1].Percentage)
	assert.Equal(t, "Unknown", analytics.Items[2].ItemName)

	rec = s.do(t, http.MethodGet, "/api/admin/analytics/nope", admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "MENU_NOT_FOUND", errorCode(t, rec))

	rec = s.do(t, http.MethodGet, "/api/admin/menus", admin, nil)
	var all []model.Menu
	decode(t, rec, &all)
	require.Len(t, all, 2)
	assert.Equal(t, today, all[0].Date)
}

func TestTicketAndProfileFlow(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, "admin@hostel.com", "admin123")
	rec := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{"email": "s@hostel.com", "password": "pw", "name": "Student"})
	require.Equal(t, http.StatusOK, rec.Code)
	student := s.login(t, "s@hostel.com", "pw")

	rec = s.do(t, http.MethodPatch, "/api/profile", student, map[string]string{"name": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "NO_FIELDS_PROVIDED", errorCode(t, rec))

	for i := 0; i < 2; i++ {
		rec = s.do(t, http.MethodPatch, "/api/profile", student, map[string]string{"room_number": "B-12"})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}
	var profile model.User
	decode(t, rec, &profile)
	assert.Equal(t, "B-12", *profile.RoomNumber)

	rec = s.do(t, http.MethodPost, "/api/tickets", student, map[string]interface{}{
		"category": "Food Quality", "urgency": "critical", "description": "Cold food",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var ticket model.Ticket
	decode(t, rec, &ticket)
	assert.Equal(t, model.TicketStatusOpen, ticket.Status)

	rec = s.do(t, http.MethodGet, "/api/tickets", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var views []service.TicketView
	decode(t, rec, &views)
	require.Len(t, views, 1)
	assert.Equal(t, "Student", *views[0].StudentName)
	assert.Equal(t, "B-12", *views[0].RoomNumber)

	rec = s.do(t, http.MethodGet, "/api/tickets", student, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "student_name")

	rec = s.do(t, http.MethodPatch, "/api/admin/tickets/"+ticket.ID+"?status=resolved", admin, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	for i := 0; i < 2; i++ {
		rec = s.do(t, http.MethodPatch, "/api/admin/tickets/"+ticket.ID+"?status=closed", admin, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
	rec = s.do(t, http.MethodPatch, "/api/admin/tickets/ghost?status=closed", admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = s.do(t, http.MethodPatch, "/api/admin/tickets/"+ticket.ID+"?status=closed", student, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
