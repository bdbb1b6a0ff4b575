package controller

import (
	"net/http"

	"github.com/SeakMengs/certgen/internal/util"
	"github.com/SeakMengs/certgen/pkg/autocert"
	"github.com/gin-gonic/gin"
)

type ExtractionController struct {
	*baseController
}

// Extract reads certificate fields out of text produced by an OCR engine.
func (ec ExtractionController) Extract(ctx *gin.Context) {
	type Request struct {
		Text string `json:"text" form:"text" binding:"required,strNotEmpty"`
	}
	var body Request

	if err := ctx.ShouldBind(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Text is required", err)
		return
	}

	util.ResponseSuccess(ctx, http.StatusOK, autocert.ExtractFields(body.Text))
}
