package prefs

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const contextKey = "prefs_store"

// Backend resolves the Store belonging to the client of a request.
type Backend interface {
	StoreFor(c *gin.Context) (Store, error)
}

// BackendFunc adapts a function to the Backend interface.
type BackendFunc func(c *gin.Context) (Store, error)

func (f BackendFunc) StoreFor(c *gin.Context) (Store, error) {
	return f(c)
}

// Middleware resolves the client's store once per request and keeps it in the gin context.
func Middleware(b Backend) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, err := b.StoreFor(c)
		if err != nil {
			c.AbortWithError(http.StatusInternalServerError, err) //nolint:errcheck
			return
		}
		c.Set(contextKey, store)
		c.Next()
	}
}

// FromContext returns the store resolved by Middleware.
func FromContext(c *gin.Context) Store {
	return c.MustGet(contextKey).(Store)
}
