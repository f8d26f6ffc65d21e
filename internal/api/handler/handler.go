package handler

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/jon4hz/admindash/internal/api/auth"
	"github.com/jon4hz/admindash/internal/login"
	"github.com/jon4hz/admindash/internal/prefs"
	"github.com/jon4hz/admindash/internal/session"
	"github.com/jon4hz/admindash/internal/static"
	"github.com/jon4hz/admindash/internal/theme"
	"github.com/jon4hz/admindash/internal/token"
	"github.com/jon4hz/admindash/web/templates/pages"
)

const (
	// ColorSchemeHint is the client hint carrying the system color scheme.
	ColorSchemeHint = "Sec-CH-Prefers-Color-Scheme"

	themeKey = "theme_controller"
)

type Handler struct {
	submitter *login.Submitter
}

func New(tokens token.Issuer) *Handler {
	return &Handler{
		submitter: login.NewSubmitter(tokens),
	}
}

// Theme asks the browser for its color scheme and builds the theme
// controller of the request.
func Theme() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Accept-CH", ColorSchemeHint)
		c.Header("Critical-CH", ColorSchemeHint)
		c.Writer.Header().Add("Vary", ColorSchemeHint)

		system := theme.ParseColorScheme(c.GetHeader(ColorSchemeHint))
		ctrl := theme.NewController(c.Request.Context(), prefs.FromContext(c), system, theme.NewRootClasses())
		c.Set(themeKey, ctrl)
		c.Next()
	}
}

func themeFromContext(c *gin.Context) *theme.Controller {
	return c.MustGet(themeKey).(*theme.Controller)
}

func page(c *gin.Context) pages.Page {
	ctrl := themeFromContext(c)
	return pages.Page{
		RootClass: ctrl.Root().String(),
		DarkMode:  ctrl.IsDarkMode(),
		LogoURL:   static.LogoPath(ctrl.IsDarkMode()),
	}
}

func render(c *gin.Context, status int, component templ.Component) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := component.Render(c.Request.Context(), c.Writer); err != nil {
		log.Error("Failed to render page", "path", c.Request.URL.Path, "error", err)
	}
}

func (h *Handler) Login(c *gin.Context) {
	render(c, http.StatusOK, pages.Login(pages.LoginData{Page: page(c)}))
}

func (h *Handler) LoginSubmit(c *gin.Context) {
	var form login.Form
	if err := c.ShouldBind(&form); err != nil {
		log.Warn("Invalid login form", "error", err)
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	if c.PostForm("action") == "forgot" {
		render(c, http.StatusOK, pages.Login(pages.LoginData{
			Page:       page(c),
			Email:      form.Email,
			RememberMe: form.RememberMe,
			Notice:     login.ForgotPasswordNotice,
		}))
		return
	}

	ok, err := h.submitter.Submit(c.Request.Context(), form, auth.GateFromContext(c))
	if err != nil {
		log.Error("Failed to log in", "error", err)
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	if !ok {
		render(c, http.StatusOK, pages.Login(pages.LoginData{
			Page:       page(c),
			Email:      form.Email,
			RememberMe: form.RememberMe,
		}))
		return
	}

	c.Redirect(http.StatusSeeOther, string(session.RouteDashboard))
}

func (h *Handler) Dashboard(c *gin.Context) {
	render(c, http.StatusOK, pages.Dashboard(pages.DashboardData{Page: page(c)}))
}

// ToggleTheme flips the display mode. Browsers posting the toggle form are
// sent back to the page they came from, JSON clients get the new mode.
func (h *Handler) ToggleTheme(c *gin.Context) {
	ctrl := themeFromContext(c)
	if err := ctrl.Toggle(c.Request.Context()); err != nil {
		log.Error("Failed to toggle theme", "error", err)
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	switch c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) {
	case gin.MIMEJSON:
		c.JSON(http.StatusOK, gin.H{
			"theme": ctrl.Mode().String(),
			"dark":  ctrl.IsDarkMode(),
		})
	default:
		c.Redirect(http.StatusSeeOther, nextRoute(c.PostForm("next")))
	}
}

func nextRoute(next string) string {
	if session.Known(next) {
		return next
	}
	return string(session.RouteLogin)
}
