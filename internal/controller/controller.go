package controller

import (
	"errors"

	appcontext "github.com/SeakMengs/certgen/internal/app_context"
	"github.com/SeakMengs/certgen/internal/auth"
	"github.com/SeakMengs/certgen/internal/constant"
	"github.com/gin-gonic/gin"
)

type baseController struct {
	app *appcontext.Application
}

type Controller struct {
	Index       *IndexController
	Auth        *AuthController
	User        *UserController
	College     *CollegeController
	Student     *StudentController
	Template    *TemplateController
	Certificate *CertificateController
	Extraction  *ExtractionController
	File        *FileController
}

func newBaseController(app *appcontext.Application) *baseController {
	return &baseController{app: app}
}

func NewController(app *appcontext.Application) *Controller {
	bc := newBaseController(app)

	return &Controller{
		Index:       &IndexController{baseController: bc},
		Auth:        &AuthController{baseController: bc},
		User:        &UserController{baseController: bc},
		College:     &CollegeController{baseController: bc},
		Student:     &StudentController{baseController: bc},
		Template:    &TemplateController{baseController: bc},
		Certificate: &CertificateController{baseController: bc},
		Extraction:  &ExtractionController{baseController: bc},
		File:        &FileController{baseController: bc},
	}
}

var errNoAuthUser = errors.New("user not found in context")

// getAuthUser returns the claims stored by the auth middleware.
func (b *baseController) getAuthUser(ctx *gin.Context) (*auth.JWTClaims, error) {
	user, exists := ctx.Get(constant.CTX_AUTH_USER)
	if !exists {
		return nil, errNoAuthUser
	}

	claims, ok := user.(*auth.JWTClaims)
	if !ok || claims == nil {
		return nil, errNoAuthUser
	}

	return claims, nil
}
