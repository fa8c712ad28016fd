package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/lift-project-api/internal/catalog"
	"github.com/yukikurage/lift-project-api/internal/constants"
	"github.com/yukikurage/lift-project-api/internal/ratelimit"
	"github.com/yukikurage/lift-project-api/internal/services"
	"github.com/yukikurage/lift-project-api/internal/testutil"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubEngine struct{}

func (stubEngine) Render(context.Context, string, string) ([]byte, error) {
	return []byte("%PDF"), nil
}

func newTestRouter(t *testing.T, deps Deps) http.Handler {
	t.Helper()
	data, err := catalog.Default()
	require.NoError(t, err)

	deps.DB = testutil.SetupTestDB(t)
	deps.Logger = zap.NewNop()
	deps.SessionStore = cookie.NewStore([]byte("secret"))
	deps.Catalog = data
	deps.Engine = stubEngine{}
	deps.Hasher = services.BcryptHasher{Cost: bcrypt.MinCost}
	deps.AllowedOrigins = []string{"http://localhost:5173"}
	return New(deps)
}

type client struct {
	t       *testing.T
	h       http.Handler
	cookies []*http.Cookie
}

func (c *client) do(method, path string, payload interface{}) *httptest.ResponseRecorder {
	c.t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(c.t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	c.h.ServeHTTP(w, req)
	if set := w.Result().Cookies(); len(set) > 0 {
		c.cookies = set
	}
	return w
}

func TestHealth(t *testing.T) {
	c := &client{t: t, h: newTestRouter(t, Deps{})}

	w := c.do(http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-cache, no-store, must-revalidate", w.Header().Get("Cache-Control"))
	assert.NotEmpty(t, w.Header().Get(constants.HeaderRequestID))
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	c := &client{t: t, h: newTestRouter(t, Deps{})}

	for _, path := range []string{"/api/auth/me", "/api/catalogs", "/api/projects", "/api/projects/1", "/api/projects/1/document"} {
		w := c.do(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestRegisterCreateAndPrint(t *testing.T) {
	c := &client{t: t, h: newTestRouter(t, Deps{})}

	w := c.do(http.MethodPost, "/api/auth/register", map[string]string{
		"email":    "tecnico@example.com",
		"username": "Técnico",
		"password": testutil.TestPassword,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = c.do(http.MethodGet, "/api/catalogs", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = c.do(http.MethodPost, "/api/projects", map[string]interface{}{
		"orderNumber":         "2025-001",
		"rae":                 "RAE-1",
		"clientName":          "Comunidad",
		"clientNIF":           "H12345678",
		"clientAddress":       "Calle Mayor 1",
		"clientCity":          "Madrid",
		"clientZip":           "28001",
		"liftAddress":         "Calle Mayor 1",
		"liftCity":            "Madrid",
		"liftZip":             "28001",
		"modificationTypes":   []string{"UCM"},
		"applicableNorms":     []string{"EN81-20"},
		"legalizationProcess": "EXAMEN_FINAL",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Project struct {
			ID uint64 `json:"id"`
		} `json:"project"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = c.do(http.MethodGet, fmt.Sprintf("/api/projects/%d/document", created.Project.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `inline; filename=proyecto_2025-001.pdf`, w.Header().Get("Content-Disposition"))

	w = c.do(http.MethodPost, "/api/auth/logout", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = c.do(http.MethodGet, "/api/projects", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginThrottle(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	c := &client{t: t, h: newTestRouter(t, Deps{
		LoginThrottle: ratelimit.New(rdb, "login", 2, time.Minute),
	})}
	creds := map[string]string{"loginEmail": "nadie@example.com", "loginPassword": "x"}

	for i := 0; i < 2; i++ {
		w := c.do(http.MethodPost, "/api/auth/login", creds)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	}
	w := c.do(http.MethodPost, "/api/auth/login", creds)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestLoginThrottle_SuccessfulLoginClearsCount(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	c := &client{t: t, h: newTestRouter(t, Deps{
		LoginThrottle: ratelimit.New(rdb, "login", 2, time.Minute),
	})}
	w := c.do(http.MethodPost, "/api/auth/register", map[string]string{
		"email":    "oficina@example.com",
		"username": "Oficina",
		"password": testutil.TestPassword,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	wrong := map[string]string{"loginEmail": "oficina@example.com", "loginPassword": "Wrong1pass!"}
	right := map[string]string{"loginEmail": "oficina@example.com", "loginPassword": testutil.TestPassword}

	require.Equal(t, http.StatusUnauthorized, c.do(http.MethodPost, "/api/auth/login", wrong).Code)
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/auth/login", right).Code)

	// Both failures fit in a fresh window
	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodPost, "/api/auth/login", wrong).Code)
	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodPost, "/api/auth/login", wrong).Code)
	assert.Equal(t, http.StatusTooManyRequests, c.do(http.MethodPost, "/api/auth/login", wrong).Code)
}
