package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/smallbiznis/valora-web/internal/config"
	"github.com/smallbiznis/valora-web/internal/http/handler"
	httpmiddleware "github.com/smallbiznis/valora-web/internal/http/middleware"
	"github.com/smallbiznis/valora-web/internal/middleware"
)

// NewRouter wires Gin routes and middleware.
func NewRouter(cfg config.Config, resetHandler *handler.ResetHandler, rateLimiter *middleware.RateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpmiddleware.RequestLogger(nil))
	if rateLimiter != nil {
		r.Use(rateLimiter.Handler())
	}
	r.Use(otelgin.Middleware(cfg.ServiceName))

	r.SetHTMLTemplate(handler.PageTemplates())

	r.GET("/reset/:token", resetHandler.ConfirmReset)
	r.POST("/reset/:token", resetHandler.CompleteReset)

	r.GET(handler.PasswordResetPath, resetHandler.RequestReset)
	r.POST(handler.PasswordResetPath, resetHandler.SubmitResetRequest)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}
