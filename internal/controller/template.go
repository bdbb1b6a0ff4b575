package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/SeakMengs/certgen/internal/model"
	"github.com/SeakMengs/certgen/internal/repository"
	"github.com/SeakMengs/certgen/internal/util"
	"github.com/SeakMengs/certgen/pkg/designer"
	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

type TemplateController struct {
	*baseController
}

const ErrTemplateNotFound = "Template not found"

type templateRequest struct {
	Name        string             `json:"name" binding:"required,strNotEmpty,cmax=255"`
	Description string             `json:"description"`
	Canvas      designer.Canvas    `json:"canvas"`
	Elements    []designer.Element `json:"elements"`
	Frame       string             `json:"frame"`
}

// toModel validates the document and encodes it for the json columns.
func (r templateRequest) toModel() (model.DesignTemplate, error) {
	doc := designer.Document{
		Name:        strings.TrimSpace(r.Name),
		Description: strings.TrimSpace(r.Description),
		Canvas:      r.Canvas,
		Frame:       r.Frame,
		Elements:    r.Elements,
	}
	if doc.Canvas == (designer.Canvas{}) {
		doc.Canvas = designer.DefaultCanvas
	}
	if doc.Elements == nil {
		doc.Elements = []designer.Element{}
	}
	if err := doc.Validate(); err != nil {
		return model.DesignTemplate{}, err
	}

	canvas, err := json.Marshal(doc.Canvas)
	if err != nil {
		return model.DesignTemplate{}, err
	}
	elements, err := json.Marshal(doc.Elements)
	if err != nil {
		return model.DesignTemplate{}, err
	}

	return model.DesignTemplate{
		Name:        doc.Name,
		Description: doc.Description,
		Canvas:      datatypes.JSON(canvas),
		Elements:    datatypes.JSON(elements),
		Frame:       doc.Frame,
	}, nil
}

func (tc TemplateController) respondTemplateError(ctx *gin.Context, action string, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		util.ResponseFailed(ctx, http.StatusNotFound, ErrTemplateNotFound, nil)
	case errors.Is(err, repository.ErrConflict):
		util.ResponseFailed(ctx, http.StatusConflict, "A template with this name already exists", nil)
	default:
		tc.app.Logger.Errorf("Failed to %s template: %v", action, err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, fmt.Sprintf("Failed to %s template", action), err)
	}
}

func (tc TemplateController) bindTemplate(ctx *gin.Context) (model.DesignTemplate, bool) {
	var body templateRequest
	if err := ctx.ShouldBindJSON(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", err)
		return model.DesignTemplate{}, false
	}

	t, err := body.toModel()
	if err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid template", err)
		return model.DesignTemplate{}, false
	}
	return t, true
}

func (tc TemplateController) List(ctx *gin.Context) {
	user, err := tc.getAuthUser(ctx)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	templates, err := tc.app.Repository.Template.ListByCollege(ctx, nil, user.College)
	if err != nil {
		tc.respondTemplateError(ctx, "list", err)
		return
	}

	util.ResponseSuccess(ctx, http.StatusOK, templates)
}

func (tc TemplateController) Get(ctx *gin.Context) {
	user, err := tc.getAuthUser(ctx)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	t, err := tc.app.Repository.Template.GetById(ctx, nil, user.College, ctx.Param("id"))
	if err != nil {
		tc.respondTemplateError(ctx, "get", err)
		return
	}

	util.ResponseSuccess(ctx, http.StatusOK, t)
}

func (tc TemplateController) Create(ctx *gin.Context) {
	user, err := tc.getAuthUser(ctx)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	t, ok := tc.bindTemplate(ctx)
	if !ok {
		return
	}
	t.CollegeID = user.College
	t.CreatedByID = &user.UserID

	if err := tc.app.Repository.Template.Create(ctx, nil, &t); err != nil {
		tc.respondTemplateError(ctx, "create", err)
		return
	}

	util.ResponseSuccess(ctx, http.StatusCreated, t)
}

func (tc TemplateController) Update(ctx *gin.Context) {
	user, err := tc.getAuthUser(ctx)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	t, ok := tc.bindTemplate(ctx)
	if !ok {
		return
	}

	updated, err := tc.app.Repository.Template.Update(ctx, nil, user.College, ctx.Param("id"), t)
	if err != nil {
		tc.respondTemplateError(ctx, "update", err)
		return
	}

	util.ResponseSuccess(ctx, http.StatusOK, updated)
}

func (tc TemplateController) Delete(ctx *gin.Context) {
	user, err := tc.getAuthUser(ctx)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	if err := tc.app.Repository.Template.Delete(ctx, nil, user.College, ctx.Param("id")); err != nil {
		tc.respondTemplateError(ctx, "delete", err)
		return
	}

	util.ResponseSuccess(ctx, http.StatusOK, gin.H{"message": "Template deleted successfully"})
}

func (tc TemplateController) Duplicate(ctx *gin.Context) {
	user, err := tc.getAuthUser(ctx)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	copied, err := tc.app.Repository.Template.Duplicate(ctx, nil, user.College, ctx.Param("id"), user.UserID)
	if err != nil {
		tc.respondTemplateError(ctx, "duplicate", err)
		return
	}

	util.ResponseSuccess(ctx, http.StatusCreated, copied)
}
