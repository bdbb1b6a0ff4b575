package route

import (
	"github.com/SeakMengs/certgen/internal/controller"
	"github.com/SeakMengs/certgen/internal/middleware"
	"github.com/gin-gonic/gin"
)

func V1_Me(r *gin.RouterGroup, userController *controller.UserController, middleware *middleware.Middleware) {
	v1 := r.Group("/me")
	v1.Use(middleware.RequireDatabase, middleware.AuthMiddleware)
	{
		v1.GET("", userController.Me)
	}
}
