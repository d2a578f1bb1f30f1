package route

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hiredesk/hiredesk/internal/api/controller"
	"github.com/hiredesk/hiredesk/internal/api/middleware"
	"github.com/hiredesk/hiredesk/internal/registry"
)

// NewCandidateRouter registers the candidate collection endpoints.
func NewCandidateRouter(timeout time.Duration, group *gin.RouterGroup, store registry.CandidateStore) {
	group.Use(middleware.RequestTimeout(timeout))

	cc := controller.NewCandidateController(store)

	group.GET("candidates", cc.List)
	group.GET("candidates/:id", cc.Get)
	group.POST("candidates", cc.Create)
	group.PATCH("candidates/:id", cc.Update)
	group.DELETE("candidates/:id", cc.Delete)
}
