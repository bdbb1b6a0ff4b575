package route

import (
	"github.com/SeakMengs/certgen/internal/controller"
	"github.com/SeakMengs/certgen/internal/middleware"
	"github.com/gin-gonic/gin"
)

func V1_Auth(r *gin.RouterGroup, authController *controller.AuthController, middleware *middleware.Middleware) {
	r.POST("/login", middleware.RequireDatabase, authController.Login)
	r.POST("/auth/verify", middleware.AuthMiddleware, authController.VerifyToken)
}
