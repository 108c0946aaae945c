package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hospital-queue/internal/apperr"
	"hospital-queue/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubVerifier map[string]*models.User

func (s stubVerifier) Verify(_ context.Context, token string) (*models.User, error) {
	if token == "boom" {
		return nil, errors.New("redis: connection refused")
	}
	if u, ok := s[token]; ok {
		return u, nil
	}
	return nil, apperr.Unauthorized("invalid or expired session")
}

var verifier = stubVerifier{
	"patient-token": {ID: "u1", Role: models.RolePatient},
	"doctor-token":  {ID: "u2", Role: models.RoleDoctor},
	"admin-token":   {ID: "u3", Role: models.RoleAdmin},
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	rec := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, rec.Body.String())
	assert.Equal(t, rec.Body.String(), rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc")
	rec = serve(r, req)
	assert.Equal(t, "abc", rec.Body.String())
}

func TestLoggerAndRecovery(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	r := gin.New()
	r.Use(RequestID(), Logger(log), Recovery(log))
	r.GET("/panic", func(c *gin.Context) { panic("kaboom") })

	rec := serve(r, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal server error", errorBody(t, rec))

	out := buf.String()
	assert.Contains(t, out, `"message":"panic recovered"`)
	assert.Contains(t, out, `"panic":"kaboom"`)
	assert.Contains(t, out, `"path":"/panic"`)
	assert.Contains(t, out, `"status":500`)
}

type recordedRequest struct {
	method, path string
	status       int
}

type recorder struct{ got []recordedRequest }

func (r *recorder) RecordHTTPRequest(method, path string, status int, _ time.Duration) {
	r.got = append(r.got, recordedRequest{method, path, status})
}

func TestMetricsUsesRouteTemplate(t *testing.T) {
	rec := &recorder{}
	r := gin.New()
	r.Use(Metrics(rec))
	r.GET("/api/queues/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	serve(r, httptest.NewRequest(http.MethodGet, "/api/queues/abc", nil))
	serve(r, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, []recordedRequest{
		{"GET", "/api/queues/:id", http.StatusNoContent},
		{"GET", "unmatched", http.StatusNotFound},
	}, rec.got)
}

func TestExtractToken(t *testing.T) {
	r := gin.New()
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, ExtractToken(c)) })

	req := httptest.NewRequest(http.MethodGet, "/?session_token=from-query", nil)
	req.Header.Set("Authorization", "Bearer from-header")
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "from-cookie"})
	assert.Equal(t, "from-header", serve(r, req).Body.String())

	req = httptest.NewRequest(http.MethodGet, "/?session_token=from-query", nil)
	req.Header.Set("Authorization", "Basic abc")
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "from-cookie"})
	assert.Equal(t, "from-cookie", serve(r, req).Body.String())

	req = httptest.NewRequest(http.MethodGet, "/?session_token=from-query", nil)
	assert.Equal(t, "from-query", serve(r, req).Body.String())
}

func gated(gates ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append([]gin.HandlerFunc{Auth(verifier)}, gates...)
	handlers = append(handlers, func(c *gin.Context) {
		c.String(http.StatusOK, CurrentUser(c).ID+":"+SessionToken(c))
	})
	r.GET("/", handlers...)
	return r
}

func withToken(token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestAuth(t *testing.T) {
	r := gated()

	rec := serve(r, withToken("patient-token"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1:patient-token", rec.Body.String())

	rec = serve(r, withToken(""))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(r, withToken("stale"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid or expired session", errorBody(t, rec))

	rec = serve(r, withToken("boom"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal server error", errorBody(t, rec))
}

func TestRequireRoles(t *testing.T) {
	staff := gated(RequireStaff())
	admin := gated(RequireAdmin())

	assert.Equal(t, http.StatusForbidden, serve(staff, withToken("patient-token")).Code)
	assert.Equal(t, http.StatusOK, serve(staff, withToken("doctor-token")).Code)
	assert.Equal(t, http.StatusOK, serve(staff, withToken("admin-token")).Code)

	assert.Equal(t, http.StatusForbidden, serve(admin, withToken("doctor-token")).Code)
	assert.Equal(t, http.StatusOK, serve(admin, withToken("admin-token")).Code)

	bare := gin.New()
	bare.GET("/", RequireAdmin(), func(c *gin.Context) { c.Status(http.StatusOK) })
	assert.Equal(t, http.StatusUnauthorized, serve(bare, withToken("admin-token")).Code)
}
