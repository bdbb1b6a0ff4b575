package route

import (
	"github.com/SeakMengs/certgen/internal/controller"
	"github.com/SeakMengs/certgen/internal/middleware"
	"github.com/gin-gonic/gin"
)

func V1_Templates(r *gin.RouterGroup, tc *controller.TemplateController, middleware *middleware.Middleware) {
	v1 := r.Group("/templates")
	v1.Use(middleware.RequireDatabase, middleware.AuthMiddleware)
	{
		v1.GET("", tc.List)
		v1.POST("", tc.Create)
		v1.GET("/:id", tc.Get)
		v1.PUT("/:id", tc.Update)
		v1.DELETE("/:id", tc.Delete)
		v1.POST("/:id/duplicate", tc.Duplicate)
	}
}
