package middleware

import (
	"net/http"

	"github.com/SeakMengs/certgen/internal/constant"
	"github.com/SeakMengs/certgen/internal/util"
	"github.com/gin-gonic/gin"
)

// AuthMiddleware stores the verified token claims under constant.CTX_AUTH_USER.
func (m Middleware) AuthMiddleware(ctx *gin.Context) {
	token, err := util.ReadBearerToken(ctx)
	if err != nil {
		m.app.Logger.Debugf("Failed to read token: %v", err)
		util.ResponseFailed(ctx, http.StatusUnauthorized, constant.ERR_ACCESS_TOKEN_REQUIRED, nil)
		return
	}

	claims, err := m.app.JWTService.VerifyJwtToken(token)
	if err != nil {
		m.app.Logger.Debugf("Failed to verify token: %v", err)
		util.ResponseFailed(ctx, http.StatusForbidden, constant.ERR_INVALID_TOKEN, nil)
		return
	}

	ctx.Set(constant.CTX_AUTH_USER, claims)
	ctx.Next()
}
