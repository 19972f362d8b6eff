package auth_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/api/v1/auth"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/api/v1/user"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/database"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/middleware"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTest(t *testing.T) *gin.Engine {
	t.Helper()
	t.Setenv("JWT_SECRET", "auth_test_secret")
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	database.DB = db

	mr := miniredis.RunT(t)
	database.RedisClient = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		database.RedisClient.Close()
		database.RedisClient = nil
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	r := gin.New()
	v1 := r.Group("/api/v1")
	auth.RegisterRoutes(v1)
	authorized := v1.Group("/")
	authorized.Use(middleware.AuthMiddleware())
	user.RegisterRoutes(authorized)
	return r
}

func postJSON(r *gin.Engine, path string, body any, token string) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type userEnvelope struct {
	Status  int               `json:"status"`
	Message string            `json:"message"`
	Data    user.UserResponse `json:"data"`
}

func TestRegisterLoginLogout(t *testing.T) {
	r := setupTest(t)

	w := postJSON(r, "/api/v1/auth/register", map[string]any{
		"email": "Owner@Example.com", "password": "secret1", "full_name": "Owner",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var first userEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))
	assert.Equal(t, models.RoleAdmin, first.Data.Role)
	assert.Equal(t, "owner@example.com", first.Data.Email)

	w = postJSON(r, "/api/v1/auth/register", map[string]any{
		"email": "mason@example.com", "password": "secret2", "full_name": "Mason",
		"role": "contractor", "district": "Pune",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var second userEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))
	assert.Equal(t, models.RoleContractor, second.Data.Role)
	assert.True(t, strings.HasPrefix(second.Data.ShortCode, "TC"))
	assert.Len(t, second.Data.ShortCode, 8)

	w = postJSON(r, "/api/v1/auth/login", map[string]any{"email": "mason@example.com", "password": "wrong"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = postJSON(r, "/api/v1/auth/login", map[string]any{"email": "mason@example.com", "password": "secret2"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	var login userEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	require.NotEmpty(t, login.Data.Token)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/user", nil)
	req.Header.Set("Authorization", "Bearer "+login.Data.Token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(r, "/api/v1/auth/logout", nil, login.Data.Token)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterRules(t *testing.T) {
	r := setupTest(t)

	w := postJSON(r, "/api/v1/auth/register", map[string]any{
		"email": "admin@example.com", "password": "secret1", "full_name": "Admin",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	tests := []struct {
		name   string
		body   map[string]any
		status int
	}{
		{
			name:   "dealer without GST",
			body:   map[string]any{"email": "d@example.com", "password": "secret1", "full_name": "D", "role": "dealer", "district": "Pune"},
			status: http.StatusUnprocessableEntity,
		},
		{
			name:   "missing district",
			body:   map[string]any{"email": "e@example.com", "password": "secret1", "full_name": "E", "role": "contractor"},
			status: http.StatusUnprocessableEntity,
		},
		{
			name:   "admin role not offered",
			body:   map[string]any{"email": "f@example.com", "password": "secret1", "full_name": "F", "role": "admin", "district": "Pune"},
			status: http.StatusBadRequest,
		},
		{
			name:   "short password",
			body:   map[string]any{"email": "g@example.com", "password": "123", "full_name": "G", "district": "Pune"},
			status: http.StatusBadRequest,
		},
		{
			name:   "duplicate email",
			body:   map[string]any{"email": "ADMIN@example.com", "password": "secret1", "full_name": "H", "district": "Pune"},
			status: http.StatusConflict,
		},
		{
			name:   "dealer with GST",
			body:   map[string]any{"email": "i@example.com", "password": "secret1", "full_name": "I", "role": "dealer", "district": "Pune", "gst_number": "27abcde1234f1z5"},
			status: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(r, "/api/v1/auth/register", tt.body, "")
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}
