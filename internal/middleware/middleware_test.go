package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/database"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/models"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/services"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "middleware_test_secret"

func setupMiddlewareTest(t *testing.T) (admin, dealer models.User) {
	t.Helper()
	t.Setenv("JWT_SECRET", testSecret)
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

	admin = models.User{Email: "admin@example.com", Role: models.RoleAdmin, ShortCode: "TC000001"}
	dealer = models.User{Email: "dealer@example.com", Role: models.RoleDealer, District: "Pune", GSTNumber: "GST", ShortCode: "TC000002"}
	require.NoError(t, db.Create(&admin).Error)
	require.NoError(t, db.Create(&dealer).Error)
	return admin, dealer
}

func signedToken(t *testing.T, userID uint, role string, ttl time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(ttl).Unix(),
	})
	s, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func TestAdminAuthMiddleware(t *testing.T) {
	admin, dealer := setupMiddlewareTest(t)

	revoked := signedToken(t, admin.ID, "admin", time.Hour)
	require.NoError(t, services.AddToDenylist(revoked, time.Hour))

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Missing Authorization Header",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "authorization header is required",
		},
		{
			name:           "Invalid Token Format",
			authHeader:     "InvalidToken",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "bearer token not found",
		},
		{
			name:           "Invalid Token Signature",
			authHeader:     "Bearer invalid.token.signature",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "Invalid or expired token",
		},
		{
			name:           "Expired Token",
			authHeader:     "Bearer " + signedToken(t, admin.ID, "admin", -time.Hour),
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "Invalid or expired token",
		},
		{
			name:           "Revoked Token",
			authHeader:     "Bearer " + revoked,
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "Token has been revoked",
		},
		{
			name:           "Unknown User",
			authHeader:     "Bearer " + signedToken(t, 999, "admin", time.Hour),
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "User not found",
		},
		{
			name:           "Dealer Is Not Admin",
			authHeader:     "Bearer " + signedToken(t, dealer.ID, "dealer", time.Hour),
			expectedStatus: http.StatusForbidden,
			expectedBody:   services.ErrForbidden.Error(),
		},
		{
			// the role claim is ignored; the stored role decides
			name:           "Forged Role Claim",
			authHeader:     "Bearer " + signedToken(t, dealer.ID, "admin", time.Hour),
			expectedStatus: http.StatusForbidden,
			expectedBody:   services.ErrForbidden.Error(),
		},
		{
			name:           "Admin User",
			authHeader:     "Bearer " + signedToken(t, admin.ID, "admin", time.Hour),
			expectedStatus: http.StatusOK,
			expectedBody:   "Success",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(Logger())
			r.GET("/admin/test", append(AdminAuthMiddleware(), func(c *gin.Context) {
				c.String(http.StatusOK, "Success")
			})...)

			req, _ := http.NewRequest(http.MethodGet, "/admin/test", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

			if tt.expectedStatus != http.StatusOK {
				var resp utils.Response
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Contains(t, resp.Message, tt.expectedBody)
			} else {
				assert.Equal(t, tt.expectedBody, w.Body.String())
			}
		})
	}
}

func TestRequireCapabilityWithoutUser(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/x", RequireCapability(services.CapRedeem), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoggerKeepsIncomingRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(Logger())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(RequestIDKey))
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Body.String())
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}
