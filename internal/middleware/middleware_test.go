package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/01moynul/storefront-golang/internal/auth"
	"github.com/01moynul/storefront-golang/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func guardedRouter(t *testing.T) (*gin.Engine, *auth.Manager) {
	t.Helper()
	tokens, err := auth.NewManager("middleware-test-secret", "storefront", time.Hour)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/admin", RequireAdmin(tokens), func(c *gin.Context) {
		id, _ := AdminID(c)
		c.JSON(http.StatusOK, gin.H{"adminId": id})
	})
	return r, tokens
}

func TestRequireAdmin(t *testing.T) {
	r, tokens := guardedRouter(t)
	adminToken, _, err := tokens.GenerateToken(7, models.RoleAdmin)
	require.NoError(t, err)
	staffToken, _, err := tokens.GenerateToken(8, "staff")
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		cookie string
		want   int
	}{
		{"no credentials", "", "", http.StatusUnauthorized},
		{"malformed header", "Token " + adminToken, "", http.StatusUnauthorized},
		{"bearer without token", "Bearer ", "", http.StatusUnauthorized},
		{"invalid token", "Bearer nope", "", http.StatusUnauthorized},
		{"non-admin role", "Bearer " + staffToken, "", http.StatusUnauthorized},
		{"admin header", "Bearer " + adminToken, "", http.StatusOK},
		{"lowercase scheme", "bearer " + adminToken, "", http.StatusOK},
		{"admin cookie", "", adminToken, http.StatusOK},
		{"header wins over cookie", "Bearer nope", adminToken, http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookie, Value: tc.cookie})
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.want, w.Code)
			if tc.want == http.StatusOK {
				assert.JSONEq(t, `{"adminId":7}`, w.Body.String())
			} else {
				assert.Contains(t, w.Body.String(), `"error"`)
			}
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	r := gin.New()
	r.Use(CORS("http://localhost:5173"))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestRequestLoggerLevels(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := gin.New()
	r.Use(RequestLogger(zap.New(core)))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	for _, path := range []string{"/ok", "/boom"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zap.InfoLevel, entries[0].Level)
	assert.Equal(t, zap.ErrorLevel, entries[1].Level)
	assert.Equal(t, "/boom", entries[1].ContextMap()["path"])
}
