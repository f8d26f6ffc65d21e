package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jon4hz/admindash/internal/prefs"
	"github.com/jon4hz/admindash/internal/session"
)

const gateKey = "session_gate"

// RequireRoute applies the routing policy of route. Requests that are
// redirected or unknown are aborted, the others carry the gate in the context.
func RequireRoute(route session.Route) gin.HandlerFunc {
	return func(c *gin.Context) {
		gate := session.NewGate(c.Request.Context(), prefs.FromContext(c))

		decision := session.Resolve(route, gate.State())
		switch decision.Action {
		case session.ActionRedirect:
			c.Redirect(redirectStatus(c.Request.Method), string(decision.Target))
			c.Abort()
			return
		case session.ActionNotFound:
			c.AbortWithStatus(http.StatusNotFound)
			return
		}

		c.Set(gateKey, gate)
		c.Next()
	}
}

// GateFromContext returns the gate set by RequireRoute.
func GateFromContext(c *gin.Context) *session.Gate {
	return c.MustGet(gateKey).(*session.Gate)
}

func redirectStatus(method string) int {
	if method == http.MethodGet || method == http.MethodHead {
		return http.StatusFound
	}
	return http.StatusSeeOther
}
