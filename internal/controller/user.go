package controller

import (
	"errors"
	"net/http"

	"github.com/SeakMengs/certgen/internal/repository"
	"github.com/SeakMengs/certgen/internal/util"
	"github.com/gin-gonic/gin"
)

type UserController struct {
	*baseController
}

// Me returns the profile of the signed in user.
func (uc UserController) Me(ctx *gin.Context) {
	claims, err := uc.getAuthUser(ctx)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	user, err := uc.app.Repository.User.GetById(ctx, nil, claims.UserID)
	if err != nil || user.CollegeID != claims.College {
		if err == nil || errors.Is(err, repository.ErrNotFound) {
			util.ResponseFailed(ctx, http.StatusNotFound, "User not found", nil)
			return
		}
		uc.app.Logger.Errorf("Failed to get user %s: %v", claims.UserID, err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to get user", err)
		return
	}

	util.ResponseSuccess(ctx, http.StatusOK, gin.H{
		"user": newUserProfile(user),
	})
}
