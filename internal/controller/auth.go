package controller

import (
	"errors"
	"net/http"

	"github.com/SeakMengs/certgen/internal/auth"
	"github.com/SeakMengs/certgen/internal/constant"
	"github.com/SeakMengs/certgen/internal/model"
	"github.com/SeakMengs/certgen/internal/repository"
	"github.com/SeakMengs/certgen/internal/util"
	"github.com/gin-gonic/gin"
)

type AuthController struct {
	*baseController
}

type collegeRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

type userProfile struct {
	ID       string     `json:"id"`
	Username string     `json:"username"`
	FullName string     `json:"fullName"`
	Email    string     `json:"email"`
	Role     string     `json:"role"`
	College  collegeRef `json:"college"`
}

func newUserProfile(user *model.User) userProfile {
	college := collegeRef{ID: user.CollegeID}
	if user.College != nil {
		college.Name = user.College.Name
		college.Code = user.College.Code
	}

	return userProfile{
		ID:       user.ID,
		Username: user.Username,
		FullName: user.FullName,
		Email:    user.Email,
		Role:     string(user.Role),
		College:  college,
	}
}

// Login answers the same 401 for an unknown user, a wrong password and a user of
// another college.
func (ac AuthController) Login(ctx *gin.Context) {
	type Request struct {
		Username  string `json:"username" form:"username" binding:"required,strNotEmpty"`
		Password  string `json:"password" form:"password" binding:"required"`
		CollegeID string `json:"collegeId" form:"collegeId" binding:"required,strNotEmpty"`
	}
	var body Request

	if err := ctx.ShouldBind(&body); err != nil {
		ac.app.Logger.Debugf("Invalid login request: %v", err)
		util.ResponseFailed(ctx, http.StatusBadRequest, "Username, password and college are required", err)
		return
	}

	user, err := ac.app.Repository.User.GetByUsernameAndCollege(ctx, nil, body.Username, body.CollegeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			util.ResponseFailed(ctx, http.StatusUnauthorized, constant.ERR_INVALID_CREDENTIALS, nil)
			return
		}
		ac.app.Logger.Errorf("Failed to find user for login: %v", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Login failed", err)
		return
	}

	if !auth.CheckPassword(user.Password, body.Password) {
		util.ResponseFailed(ctx, http.StatusUnauthorized, constant.ERR_INVALID_CREDENTIALS, nil)
		return
	}

	profile := newUserProfile(user)
	token, err := ac.app.JWTService.GenerateAccessToken(auth.JWTPayload{
		UserID:      user.ID,
		Username:    user.Username,
		College:     user.CollegeID,
		CollegeName: profile.College.Name,
		Role:        string(user.Role),
	})
	if err != nil {
		ac.app.Logger.Errorf("Failed to generate token: %v", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Login failed", err)
		return
	}

	util.ResponseSuccess(ctx, http.StatusOK, gin.H{
		"token": token,
		"user":  profile,
	})
}

// VerifyToken reports whether the bearer token is still accepted.
func (ac AuthController) VerifyToken(ctx *gin.Context) {
	claims, err := ac.getAuthUser(ctx)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusUnauthorized, constant.ERR_ACCESS_TOKEN_REQUIRED, nil)
		return
	}

	util.ResponseSuccess(ctx, http.StatusOK, gin.H{
		"tokenValid": true,
		"payload":    claims.JWTPayload,
		"expiresAt":  claims.ExpiresAt,
	})
}
