package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jon4hz/admindash/internal/prefs"
	"github.com/jon4hz/admindash/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type MiddlewareTestSuite struct {
	suite.Suite
	store  *prefs.Memory
	router *gin.Engine
}

func (s *MiddlewareTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.store = prefs.NewMemory()
	s.router = gin.New()
	s.router.Use(prefs.Middleware(prefs.BackendFunc(func(*gin.Context) (prefs.Store, error) {
		return s.store, nil
	})))

	ok := func(c *gin.Context) {
		c.String(http.StatusOK, GateFromContext(c).State().String())
	}
	s.router.GET("/", RequireRoute(session.RouteRoot), ok)
	s.router.GET("/login", RequireRoute(session.RouteLogin), ok)
	s.router.POST("/login", RequireRoute(session.RouteLogin), ok)
	s.router.GET("/dashboard", RequireRoute(session.RouteDashboard), ok)
	s.router.GET("/other", RequireRoute(session.Route("/other")), ok)
}

func (s *MiddlewareTestSuite) login() {
	require.NoError(s.T(), s.store.Set(context.Background(), prefs.KeyAuthToken, "t1"))
}

func (s *MiddlewareTestSuite) do(method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func (s *MiddlewareTestSuite) TestRoot_AlwaysRedirectsToLogin() {
	w := s.do(http.MethodGet, "/")
	assert.Equal(s.T(), http.StatusFound, w.Code)
	assert.Equal(s.T(), "/login", w.Header().Get("Location"))

	s.login()
	w = s.do(http.MethodGet, "/")
	assert.Equal(s.T(), http.StatusFound, w.Code)
	assert.Equal(s.T(), "/login", w.Header().Get("Location"))
}

func (s *MiddlewareTestSuite) TestDashboard_Unauthenticated() {
	w := s.do(http.MethodGet, "/dashboard")
	assert.Equal(s.T(), http.StatusFound, w.Code)
	assert.Equal(s.T(), "/login", w.Header().Get("Location"))
}

func (s *MiddlewareTestSuite) TestDashboard_Authenticated() {
	s.login()
	w := s.do(http.MethodGet, "/dashboard")
	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.Equal(s.T(), "authenticated", w.Body.String())
}

func (s *MiddlewareTestSuite) TestLogin_Unauthenticated() {
	w := s.do(http.MethodGet, "/login")
	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.Equal(s.T(), "unauthenticated", w.Body.String())
}

func (s *MiddlewareTestSuite) TestLogin_Authenticated() {
	s.login()
	w := s.do(http.MethodGet, "/login")
	assert.Equal(s.T(), http.StatusFound, w.Code)
	assert.Equal(s.T(), "/dashboard", w.Header().Get("Location"))

	w = s.do(http.MethodPost, "/login")
	assert.Equal(s.T(), http.StatusSeeOther, w.Code)
	assert.Equal(s.T(), "/dashboard", w.Header().Get("Location"))
}

func (s *MiddlewareTestSuite) TestUnknownRoute() {
	w := s.do(http.MethodGet, "/other")
	assert.Equal(s.T(), http.StatusNotFound, w.Code)
}

func TestMiddlewareTestSuite(t *testing.T) {
	suite.Run(t, new(MiddlewareTestSuite))
}
