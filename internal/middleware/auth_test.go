package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quiz_room_hub/internal/model"
	"quiz_room_hub/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-test-secret"

type fakeUsers map[uint]*model.User

func (f fakeUsers) FindByID(id uint) (*model.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, errors.New("record not found")
}

func newRouter(users fakeUsers, staffOnly bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := []gin.HandlerFunc{AuthMiddleware(testSecret, users)}
	if staffOnly {
		handlers = append(handlers, StaffMiddleware())
	}
	handlers = append(handlers, func(c *gin.Context) {
		util.Success(c, gin.H{"email": util.CurrentUser(c).Email})
	})
	r.GET("/private", handlers...)
	return r
}

func get(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func token(t *testing.T, user *model.User, kind util.TokenType, ttl time.Duration) string {
	t.Helper()
	s, err := util.GenerateJWT(user, kind, testSecret, ttl)
	require.NoError(t, err)
	return s
}

func TestAuthMiddleware(t *testing.T) {
	active := &model.User{BaseModel: model.BaseModel{ID: 1}, Email: "a@example.com", IsActive: true}
	inactive := &model.User{BaseModel: model.BaseModel{ID: 2}, Email: "b@example.com"}
	ghost := &model.User{BaseModel: model.BaseModel{ID: 3}, Email: "c@example.com", IsActive: true}
	r := newRouter(fakeUsers{1: active, 2: inactive}, false)

	tests := []struct {
		name   string
		token  string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"garbage", "not-a-jwt", http.StatusUnauthorized},
		{"refresh token", token(t, active, util.RefreshToken, time.Hour), http.StatusUnauthorized},
		{"expired", token(t, active, util.AccessToken, -time.Minute), http.StatusUnauthorized},
		{"inactive user", token(t, inactive, util.AccessToken, time.Hour), http.StatusUnauthorized},
		{"deleted user", token(t, ghost, util.AccessToken, time.Hour), http.StatusUnauthorized},
		{"valid", token(t, active, util.AccessToken, time.Hour), http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, get(r, tt.token).Code)
		})
	}
}

func TestAuthMiddlewareRejectsNonBearer(t *testing.T) {
	active := &model.User{BaseModel: model.BaseModel{ID: 1}, IsActive: true}
	r := newRouter(fakeUsers{1: active}, false)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Token "+token(t, active, util.AccessToken, time.Hour))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestStaffMiddleware(t *testing.T) {
	staff := &model.User{BaseModel: model.BaseModel{ID: 1}, IsActive: true, IsStaff: true}
	teacher := &model.User{BaseModel: model.BaseModel{ID: 2}, IsActive: true, IsTeacher: true}
	r := newRouter(fakeUsers{1: staff, 2: teacher}, true)

	assert.Equal(t, http.StatusOK, get(r, token(t, staff, util.AccessToken, time.Hour)).Code)
	assert.Equal(t, http.StatusForbidden, get(r, token(t, teacher, util.AccessToken, time.Hour)).Code)
}
