package route

import (
	"github.com/SeakMengs/certgen/internal/controller"
	"github.com/SeakMengs/certgen/internal/middleware"
	"github.com/gin-gonic/gin"
)

// Register mounts the health check at the root and every api route under /api.
func Register(r *gin.Engine, c *controller.Controller, m *middleware.Middleware) {
	r.GET("/", c.Index.Index)
	r.GET("/health", c.Index.Health)

	rApi := r.Group("/api")
	rApi.GET("/health", c.Index.Health)

	V1_Auth(rApi, c.Auth, m)
	V1_Me(rApi, c.User, m)
	V1_Colleges(rApi, c.College, m)
	V1_Students(rApi, c.Student, m)
	V1_Templates(rApi, c.Template, m)
	V1_Certificates(rApi, c.Certificate, m)
	V1_Extractions(rApi, c.Extraction, m)
	V1_Assets(rApi, c.File, m)
}
