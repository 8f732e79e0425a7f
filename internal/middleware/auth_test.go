package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SmileHubSystems/dental-scheduler/internal/config"
)

func authTestRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/secured", AuthMiddleware(cfg), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":   c.MustGet(ContextUserID),
			"clinic_id": c.MustGet(ContextClinicID),
			"role":      c.MustGet(ContextUserRole),
		})
	})
	return r
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	r := authTestRouter(cfg)

	token := signToken(t, cfg.JWTSecret, jwt.MapClaims{
		"sub":      float64(3),
		"clinicId": float64(1),
		"role":     "dentist",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secured", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"dentist"`)
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	r := authTestRouter(cfg)

	expired := signToken(t, cfg.JWTSecret, jwt.MapClaims{
		"sub":      float64(3),
		"clinicId": float64(1),
		"exp":      time.Now().Add(-time.Hour).Unix(),
	})
	wrongKey := signToken(t, "other-secret", jwt.MapClaims{
		"sub":      float64(3),
		"clinicId": float64(1),
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	noClinic := signToken(t, cfg.JWTSecret, jwt.MapClaims{
		"sub": float64(3),
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"expired token", "Bearer " + expired},
		{"wrong signing key", "Bearer " + wrongKey},
		{"missing clinic claim", "Bearer " + noClinic},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/secured", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}
