package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/jon4hz/admindash/internal/api/auth"
	"github.com/jon4hz/admindash/internal/api/handler"
	"github.com/jon4hz/admindash/internal/config"
	"github.com/jon4hz/admindash/internal/prefs"
	"github.com/jon4hz/admindash/internal/session"
	"github.com/jon4hz/admindash/internal/static"
	"github.com/jon4hz/admindash/internal/token"
)

const (
	sessionName     = "admindash_session"
	shutdownTimeout = 5 * time.Second
)

type Server struct {
	cfg       *config.Config
	ginEngine *gin.Engine
	backend   prefs.Backend
	tokens    token.Issuer
}

// New creates the HTTP server. The backend decides where client preferences
// are kept and tokens issues the token stored on login.
func New(cfg *config.Config, backend prefs.Backend, tokens token.Issuer, debug bool) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if backend == nil {
		return nil, fmt.Errorf("preference backend is required")
	}
	if tokens == nil {
		return nil, fmt.Errorf("token issuer is required")
	}

	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:       cfg,
		ginEngine: gin.New(),
		backend:   backend,
		tokens:    tokens,
	}
	s.ginEngine.Use(gin.Recovery(), requestLogger())
	if cfg.Gzip {
		s.ginEngine.Use(gzip.Gzip(gzip.DefaultCompression))
	}

	if err := s.setupRoutes(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Server) setupSession() {
	store := cookie.NewStore([]byte(s.cfg.SessionKey))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   s.cfg.SessionMaxAge,
		HttpOnly: true,
		Secure:   s.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	s.ginEngine.Use(sessions.Sessions(sessionName, store))
}

func (s *Server) setupRoutes() error {
	s.setupSession()

	staticFS, err := static.FS()
	if err != nil {
		return err
	}
	s.ginEngine.StaticFS("/static", http.FS(staticFS))

	h := handler.New(s.tokens)

	pages := s.ginEngine.Group("/")
	pages.Use(prefs.Middleware(s.backend), handler.Theme())

	pages.GET("/", auth.RequireRoute(session.RouteRoot))
	pages.GET("/login", auth.RequireRoute(session.RouteLogin), h.Login)
	pages.POST("/login", auth.RequireRoute(session.RouteLogin), h.LoginSubmit)
	pages.GET("/dashboard", auth.RequireRoute(session.RouteDashboard), h.Dashboard)
	pages.POST("/theme", h.ToggleTheme)

	return nil
}

// Handler returns the routes of the server.
func (s *Server) Handler() http.Handler {
	return s.ginEngine
}

// Run serves until ctx is done and then shuts the server down.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.ginEngine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	log.Info("Starting HTTP server", "listen", s.cfg.Listen)
	go func() {
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down HTTP server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to serve HTTP: %w", err)
	}
}
