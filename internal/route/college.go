package route

import (
	"github.com/SeakMengs/certgen/internal/controller"
	"github.com/SeakMengs/certgen/internal/middleware"
	"github.com/gin-gonic/gin"
)

func V1_Colleges(r *gin.RouterGroup, collegeController *controller.CollegeController, middleware *middleware.Middleware) {
	r.GET("/colleges", middleware.RequireDatabase, collegeController.List)
}
