package middleware

import (
	"net/http"

	"github.com/SeakMengs/certgen/internal/constant"
	"github.com/SeakMengs/certgen/internal/util"
	"github.com/gin-gonic/gin"
)

// RequireDatabase answers 503 with operator guidance while the store is unreachable.
func (m Middleware) RequireDatabase(ctx *gin.Context) {
	if m.app.PingDatabase == nil {
		ctx.Next()
		return
	}

	if err := m.app.PingDatabase(ctx.Request.Context()); err != nil {
		m.app.Logger.Errorw("Database unavailable", "path", ctx.FullPath(), "error", err)
		util.ResponseFailed(ctx, http.StatusServiceUnavailable, constant.ERR_DATABASE_UNAVAILABLE, constant.ERR_DATABASE_GUIDANCE)
		return
	}

	ctx.Next()
}
