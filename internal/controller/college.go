package controller

import (
	"net/http"

	"github.com/SeakMengs/certgen/internal/util"
	"github.com/gin-gonic/gin"
)

type CollegeController struct {
	*baseController
}

func (cc CollegeController) List(ctx *gin.Context) {
	colleges, err := cc.app.Repository.College.List(ctx, nil)
	if err != nil {
		cc.app.Logger.Errorf("Failed to list colleges: %v", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to get colleges", err)
		return
	}

	util.ResponseSuccess(ctx, http.StatusOK, colleges)
}
