package utils

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type earnBody struct {
	DealerID   uint   `json:"dealer_id" binding:"required"`
	CementType string `json:"cement_type" binding:"required,oneof=OPC PPC"`
	BagCount   int    `json:"bag_count" binding:"required,gt=0"`
}

func TestBindAndValidate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name      string
		body      string
		wantOK    bool
		wantField string
	}{
		{name: "valid", body: `{"dealer_id":1,"cement_type":"OPC","bag_count":3}`, wantOK: true},
		{name: "bad cement", body: `{"dealer_id":1,"cement_type":"XYZ","bag_count":3}`, wantField: "cement_type"},
		{name: "missing dealer", body: `{"cement_type":"PPC","bag_count":3}`, wantField: "dealer_id"},
		{name: "negative bags", body: `{"dealer_id":1,"cement_type":"PPC","bag_count":-2}`, wantField: "bag_count"},
		{name: "wrong type", body: `{"dealer_id":"x","cement_type":"PPC","bag_count":1}`, wantField: "dealer_id"},
		{name: "malformed", body: `{`, wantField: "body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(tt.body))
			c.Request.Header.Set("Content-Type", "application/json")

			var body earnBody
			ok := BindAndValidate(c, &body)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				return
			}

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var resp struct {
				Data ValidationErrorData `json:"data"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.NotEmpty(t, resp.Data.Errors)
			assert.Equal(t, tt.wantField, resp.Data.Errors[0].Field)
		})
	}
}

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "utils-test-secret")

	token, err := GenerateToken(7, "dealer")
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "dealer", claims["role"])

	id, ok := UserIDFromClaims(claims)
	assert.True(t, ok)
	assert.Equal(t, uint(7), id)

	ttl, ok := RemainingTTL(claims)
	assert.True(t, ok)
	assert.InDelta(t, TokenTTL.Seconds(), ttl.Seconds(), 5)
}

func TestValidateTokenRejectsOtherSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "right")

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 1,
		"role":    "admin",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := forged.SignedString([]byte("wrong"))
	require.NoError(t, err)

	_, err = ValidateToken(signed)
	assert.Error(t, err)
}

func TestExtractToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := ExtractToken(c)
	assert.EqualError(t, err, "authorization header is required")

	c.Request.Header.Set("Authorization", "Token abc")
	_, err = ExtractToken(c)
	assert.EqualError(t, err, "bearer token not found")

	c.Request.Header.Set("Authorization", "Bearer abc")
	token, err := ExtractToken(c)
	require.NoError(t, err)
	assert.Equal(t, "abc", token)
}
