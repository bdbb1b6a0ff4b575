package controller

import (
	"net/http"
	"time"

	"github.com/SeakMengs/certgen/internal/util"
	"github.com/gin-gonic/gin"
)

type IndexController struct {
	*baseController
}

func (ic IndexController) Index(ctx *gin.Context) {
	util.ResponseSuccess(ctx, http.StatusOK, gin.H{
		"message": "Welcome to the " + util.GetAppName() + " api",
	})
}

// Health never touches the store, so it answers while the database is down.
func (ic IndexController) Health(ctx *gin.Context) {
	util.ResponseSuccess(ctx, http.StatusOK, gin.H{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
