package route

import (
	"github.com/SeakMengs/certgen/internal/controller"
	"github.com/SeakMengs/certgen/internal/middleware"
	"github.com/gin-gonic/gin"
)

func V1_Students(r *gin.RouterGroup, sc *controller.StudentController, middleware *middleware.Middleware) {
	// The CSV skeleton needs neither a token nor the store.
	r.GET("/students/template", sc.Template)

	v1 := r.Group("/students")
	v1.Use(middleware.RequireDatabase, middleware.AuthMiddleware)
	{
		v1.GET("", sc.List)
		v1.POST("", sc.Create)
		v1.POST("/bulk", sc.BulkUpload)
		v1.PUT("/:id", sc.Update)
		v1.DELETE("/:id", sc.Delete)
	}
}
