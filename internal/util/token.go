package util

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
)

var ErrNoToken = errors.New("no bearer token")

// ReadBearerToken returns the token of an "Authorization: Bearer <token>" header.
func ReadBearerToken(ctx *gin.Context) (string, error) {
	header := ctx.GetHeader("Authorization")
	if header == "" {
		return "", ErrNoToken
	}

	headerParts := strings.SplitN(header, " ", 2)
	if len(headerParts) != 2 || !strings.EqualFold(headerParts[0], "Bearer") {
		return "", ErrNoToken
	}

	token := strings.TrimSpace(headerParts[1])
	if token == "" {
		return "", ErrNoToken
	}

	return token, nil
}
