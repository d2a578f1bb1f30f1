package route

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hiredesk/hiredesk/internal/api/middleware"
	"github.com/hiredesk/hiredesk/internal/app"
)

// SetupRoutes builds the gin engine for the candidate store server.
func SetupRoutes(appCtx *app.App, log *logrus.Logger) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.HoneybadgerMiddleware(log))
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware(appCtx.Config.Server.AllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "UP",
		})
	})

	publicRouter := r.Group("")
	NewCandidateRouter(appCtx.Config.Server.RequestTimeout, publicRouter, appCtx.Registry)

	return r
}
