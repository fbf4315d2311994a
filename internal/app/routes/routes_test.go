package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Samanvis-dev/LunchBoxExpress/internal/app/middleware"
	"github.com/Samanvis-dev/LunchBoxExpress/internal/domain/models"
	"github.com/Samanvis-dev/LunchBoxExpress/internal/domain/services"
	"github.com/Samanvis-dev/LunchBoxExpress/internal/domain/services/container"
	"github.com/Samanvis-dev/LunchBoxExpress/internal/error/code"
	"github.com/Samanvis-dev/LunchBoxExpress/internal/test/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	t      *testing.T
	db     *gorm.DB
	router    *gin.Engine
	jwt       services.InterfaceJWTService
	container *container.ServiceContainer
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	// 缓存是进程级的，不同测试的账户ID会重复
	middleware.PurgeCache()

	db := testutil.NewDB(t)
	c := container.NewServiceContainer(db, testutil.Config())
	t.Cleanup(c.Close)

	return &testServer{
		t:         t,
		db:        db,
		router:    SetupRouter(c),
		jwt:       c.GetService("jwt").(services.InterfaceJWTService),
		container: c,
	}
}

func (s *testServer) token(user *models.User) string {
	s.t.Helper()
	token, err := s.jwt.GenerateToken(user)
	require.NoError(s.t, err)
	return token
}

func (s *testServer) do(method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func TestPingAndCORS(t *testing.T) {
	s := newTestServer(t)

	w, env := s.do(http.MethodGet, "/api/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, code.ErrSuccess, env.Code)
	assert.Contains(t, string(env.Data), "healthy")
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	req := httptest.NewRequest(http.MethodOptions, "/api/dashboard/parent", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRegisterAndLogin(t *testing.T) {
	s := newTestServer(t)

	register := map[string]interface{}{
		"role": "parent",
		"userData": map[string]string{
			"username": "rajesh_sharma",
			"email":    "rajesh@example.com",
			"password": "password123",
		},
		"roleData": map[string]string{"fullName": "Rajesh Sharma"},
	}
	w, env := s.do(http.MethodPost, "/api/auth/register", "", register)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var result services.RegisterResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.NotZero(t, result.UserID)
	assert.NotZero(t, result.RoleID)

	w, env = s.do(http.MethodPost, "/api/auth/register", "", register)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, code.ErrUserAlreadyExist, env.Code)

	register["role"] = "admin"
	register["userData"] = map[string]string{"username": "root", "email": "root@example.com", "password": "password123"}
	w, env = s.do(http.MethodPost, "/api/auth/register", "", register)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, code.ErrInvalidRole, env.Code)

	w, _ = s.do(http.MethodPost, "/api/auth/register", "", map[string]string{"role": "parent"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"username": "rajesh_sharma", "password": "password123"})
	require.Equal(t, http.StatusOK, w.Code)
	var login services.LoginResult
	require.NoError(t, json.Unmarshal(env.Data, &login))
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, models.RoleParent, login.User.Role)

	w, env = s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"username": "rajesh_sharma", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, code.ErrInvalidCredentials, env.Code)

	// 登录后的令牌可以访问自己的看板
	w, _ = s.do(http.MethodGet, "/api/dashboard/parent", login.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDashboardForEveryRole(t *testing.T) {
	s := newTestServer(t)

	parent, _ := testutil.CreateParent(t, s.db, "rajesh", "Rajesh Sharma")
	staff, _ := testutil.CreateDeliveryStaff(t, s.db, "vikram", "Vicky", 3, 4.5)
	school, _ := testutil.CreateSchool(t, s.db, "greenvalley", "Green Valley")
	caterer, _ := testutil.CreateCaterer(t, s.db, "tiffin", "Tiffin Co", 4.6)
	admin, _ := testutil.CreateAdmin(t, s.db, "admin")

	users := map[models.Role]*models.User{
		models.RoleParent:        parent,
		models.RoleDeliveryStaff: staff,
		models.RoleSchoolAdmin:   school,
		models.RoleCaterer:       caterer,
		models.RoleAdmin:         admin,
	}
	expired := services.NewJWTService(testutil.Config(), nil).(*services.JWTService).WithClock(testutil.Clock(time.Now().Add(-48 * time.Hour)))

	for _, role := range models.AllRoles {
		user := users[role]
		path := "/api/dashboard/" + string(role)

		w, env := s.do(http.MethodGet, path, s.token(user), nil)
		assert.Equal(t, http.StatusOK, w.Code, "%s: %s", role, w.Body.String())
		assert.Equal(t, code.ErrSuccess, env.Code)

		w, _ = s.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, role)

		stale, err := expired.GenerateToken(user)
		require.NoError(t, err)
		w, env = s.do(http.MethodGet, path, stale, nil)
		assert.Equal(t, http.StatusForbidden, w.Code, role)
		assert.Equal(t, code.ErrTokenInvalid, env.Code)
	}

	w, env := s.do(http.MethodGet, "/api/dashboard/janitor", s.token(parent), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, code.ErrInvalidRole, env.Code)

	// 看别的角色的看板时没有对应资料
	w, env = s.do(http.MethodGet, "/api/dashboard/caterer", s.token(parent), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, code.ErrProfileNotFound, env.Code)
}

func TestAddChildRefreshesDashboard(t *testing.T) {
	s := newTestServer(t)
	user, _ := testutil.CreateParent(t, s.db, "rajesh", "Rajesh Sharma")
	_, school := testutil.CreateSchool(t, s.db, "greenvalley", "Green Valley")
	token := s.token(user)

	_, env := s.do(http.MethodGet, "/api/dashboard/parent", token, nil)
	var before services.ParentDashboard
	require.NoError(t, json.Unmarshal(env.Data, &before))
	assert.Empty(t, before.Children)

	w, env := s.do(http.MethodPost, "/api/children", token, map[string]interface{}{
		"name":      "Aarav",
		"age":       8,
		"className": "3A",
		"schoolId":  school.ID,
		"allergies": []string{"peanuts"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, string(env.Data), "Aarav")

	_, env = s.do(http.MethodGet, "/api/dashboard/parent", token, nil)
	var after services.ParentDashboard
	require.NoError(t, json.Unmarshal(env.Data, &after))
	require.Len(t, after.Children, 1)
	assert.Equal(t, "Green Valley", *after.Children[0].SchoolName)

	w, env = s.do(http.MethodPost, "/api/children", token, map[string]interface{}{"name": "Diya", "schoolId": 999})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, code.ErrSchoolNotFound, env.Code)

	w, _ = s.do(http.MethodPost, "/api/children", token, map[string]interface{}{"age": 5})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSetAvailabilityRoute(t *testing.T) {
	s := newTestServer(t)
	user, _ := testutil.CreateDeliveryStaff(t, s.db, "vikram", "Vicky", 0, 0)
	token := s.token(user)

	w, env := s.do(http.MethodPatch, "/api/delivery/availability", token, map[string]string{"status": "busy"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, string(env.Data), `"status":"busy"`)

	w, env = s.do(http.MethodPatch, "/api/delivery/availability", token, map[string]string{"status": "sleeping"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, code.ErrAvailabilityInvalid, env.Code)
}

func TestOrderStatusAndNotifications(t *testing.T) {
	s := newTestServer(t)
	parentUser, parent := testutil.CreateParent(t, s.db, "rajesh", "Rajesh Sharma")
	_, school := testutil.CreateSchool(t, s.db, "greenvalley", "Green Valley")
	staffUser, staff := testutil.CreateDeliveryStaff(t, s.db, "vikram", "Vicky", 0, 0)
	child := testutil.CreateChild(t, s.db, parent.ID, &school.ID, "Aarav", "3A")
	order := testutil.CreateOrder(t, s.db, testutil.OrderSpec{Parent: parent, Child: child, School: school, Staff: staff, CreatedAt: time.Now()})
	staffToken := s.token(staffUser)
	parentToken := s.token(parentUser)

	path := fmt.Sprintf("/api/orders/%d/status", order.ID)
	w, env := s.do(http.MethodPatch, path, staffToken, map[string]string{"status": "delivered"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated models.Order
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, models.OrderStatusDelivered, updated.Status)
	assert.NotNil(t, updated.DeliveredAt)

	w, env = s.do(http.MethodPatch, path, staffToken, map[string]string{"status": "lost"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, code.ErrOrderStatusInvalid, env.Code)

	w, env = s.do(http.MethodPatch, "/api/orders/999/status", staffToken, map[string]string{"status": "delivered"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, code.ErrOrderNotFound, env.Code)

	w, _ = s.do(http.MethodPatch, "/api/orders/abc/status", staffToken, map[string]string{"status": "delivered"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = s.do(http.MethodGet, "/api/notifications", parentToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var notifications []models.Notification
	require.NoError(t, json.Unmarshal(env.Data, &notifications))
	require.Len(t, notifications, 1)
	assert.False(t, notifications[0].IsRead)

	readPath := fmt.Sprintf("/api/notifications/%d/read", notifications[0].ID)
	w, _ = s.do(http.MethodPatch, readPath, staffToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, env = s.do(http.MethodPatch, readPath, parentToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"is_read":true`)
}

func TestCatalogRoutes(t *testing.T) {
	s := newTestServer(t)
	_, school := testutil.CreateSchool(t, s.db, "greenvalley", "Green Valley")
	_, caterer := testutil.CreateCaterer(t, s.db, "tiffin", "Tiffin Co", 4.6)
	testutil.CreateMenuItem(t, s.db, caterer.ID, "Rice Bowl", true, time.Now())

	w, env := s.do(http.MethodGet, "/api/schools", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, fmt.Sprintf(`[{"id":%d,"school_name":"Green Valley"}]`, school.ID), string(env.Data))

	w, env = s.do(http.MethodGet, "/api/caterers", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"menu_items":[{`)
	assert.Contains(t, string(env.Data), "Rice Bowl")
}
