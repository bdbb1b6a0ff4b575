package route

import (
	"github.com/SeakMengs/certgen/internal/controller"
	"github.com/SeakMengs/certgen/internal/middleware"
	"github.com/gin-gonic/gin"
)

func V1_Certificates(r *gin.RouterGroup, cc *controller.CertificateController, middleware *middleware.Middleware) {
	v1 := r.Group("/certificates")
	{
		v1.GET("/templates", cc.Templates)
		v1.GET("/categories", cc.Categories)
		v1.GET("/participants/template", cc.ParticipantTemplate)
	}

	auth := v1.Group("")
	auth.Use(middleware.AuthMiddleware)
	{
		auth.POST("/parse", cc.Parse)
		auth.POST("/preview", cc.Preview)
		auth.POST("/bulk", cc.Bulk)
		auth.POST("/email", cc.Email)
		auth.POST("/students", middleware.RequireDatabase, cc.Students)
	}
}
