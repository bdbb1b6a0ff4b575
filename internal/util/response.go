package util

import (
	"errors"

	"github.com/SeakMengs/certgen/internal/constant"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string     `json:"error"`
	Details string     `json:"details,omitempty"`
	Errors  []ApiError `json:"errors,omitempty"`
}

// BuildResponseFailed turns err into response detail. A string is used as is,
// validation errors become the per field list and other errors are shown only when
// exposeErr is set.
func BuildResponseFailed(message string, err any, exposeErr bool) ErrorResponse {
	if message == "" {
		message = constant.REQUEST_UNSUCCESSFUL
	}

	res := ErrorResponse{Error: message}
	switch e := err.(type) {
	case nil:
	case string:
		res.Details = e
	case []ApiError:
		res.Errors = e
	case error:
		var ve validator.ValidationErrors
		if errors.As(e, &ve) {
			res.Errors = GenerateErrorMessages(e)
		} else if exposeErr {
			res.Details = e.Error()
		}
	}

	return res
}

func ResponseSuccess(ctx *gin.Context, code int, data any) {
	if data == nil {
		data = gin.H{"message": constant.REQUEST_SUCCESSFUL}
	}

	ctx.JSON(code, data)
}

// ResponseFailed writes the error body and aborts the chain. Error text of server
// side failures stays in the logs.
func ResponseFailed(ctx *gin.Context, code int, message string, err any) {
	ctx.AbortWithStatusJSON(code, BuildResponseFailed(message, err, code < 500))
}
