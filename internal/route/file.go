package route

import (
	"github.com/SeakMengs/certgen/internal/controller"
	"github.com/SeakMengs/certgen/internal/middleware"
	"github.com/gin-gonic/gin"
)

func V1_Assets(r *gin.RouterGroup, fc *controller.FileController, middleware *middleware.Middleware) {
	v1 := r.Group("/assets")
	v1.Use(middleware.AuthMiddleware)
	{
		v1.POST("", fc.UploadAsset)
	}
}

func V1_Extractions(r *gin.RouterGroup, ec *controller.ExtractionController, middleware *middleware.Middleware) {
	r.POST("/extractions", middleware.AuthMiddleware, ec.Extract)
}
