package middleware

import (
	"fmt"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
)

// ReportErrors forwards errors recorded on the context of a failed request to Sentry.
// Panics are captured and re-raised for gin.Recovery. A nil hub disables reporting.
func ReportErrors(hub *sentry.Hub) gin.HandlerFunc {
	if hub == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		local := hub.Clone()
		local.Scope().SetRequest(c.Request)

		defer func() {
			if rec := recover(); rec != nil {
				tagRequest(local, c)
				local.RecoverWithContext(c.Request.Context(), rec)
				panic(rec)
			}
		}()

		c.Next()

		if c.Writer.Status() < http.StatusInternalServerError || len(c.Errors) == 0 {
			return
		}
		tagRequest(local, c)
		for _, e := range c.Errors {
			local.CaptureException(e.Err)
		}
	}
}

func tagRequest(hub *sentry.Hub, c *gin.Context) {
	scope := hub.Scope()
	if id := c.GetString(ContextKeyRequestID); id != "" {
		scope.SetTag(ContextKeyRequestID, id)
	}
	route := c.FullPath()
	if route == "" {
		route = c.Request.URL.Path
	}
	scope.SetTag("route", fmt.Sprintf("%s %s", c.Request.Method, route))
}
