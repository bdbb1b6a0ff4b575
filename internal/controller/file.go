package controller

import (
	"errors"
	"net/http"

	"github.com/SeakMengs/certgen/internal/util"
	"github.com/SeakMengs/certgen/pkg/autocert"
	"github.com/gin-gonic/gin"
)

type FileController struct {
	*baseController
}

const (
	assetMaxWidth   = 2000
	assetMaxHeight  = 2000
	assetNameLength = 16
	ErrNoImage      = "No image uploaded"
)

// UploadAsset stores an image for the template designer as webp and returns a link.
func (fc FileController) UploadAsset(ctx *gin.Context) {
	user, err := fc.getAuthUser(ctx)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	file, err := ctx.FormFile("image")
	if err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, ErrNoImage, nil)
		return
	}

	if maxSize := int64(fc.app.Config.Upload.MAX_SIZE_MB) << 20; maxSize > 0 && file.Size > maxSize {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Image is too large", nil)
		return
	}

	src, err := file.Open()
	if err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Failed to read image", err)
		return
	}
	defer src.Close()

	data, size, err := autocert.NormalizeImage(src, assetMaxWidth, assetMaxHeight)
	if err != nil {
		if errors.Is(err, autocert.ErrFormat) {
			util.ResponseFailed(ctx, http.StatusBadRequest, "Unsupported image", err)
			return
		}
		fc.app.Logger.Errorf("Failed to normalize image: %v", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to process image", err)
		return
	}

	if fc.app.Storage == nil {
		util.ResponseFailed(ctx, http.StatusServiceUnavailable, "Object storage is not configured", nil)
		return
	}

	name, err := util.GenerateNChar(assetNameLength)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to store image", err)
		return
	}
	name += ".webp"

	objectName, err := fc.app.Storage.Put(ctx, util.GetAssetDirectoryPath(user.College), name, autocert.ImageContentType, data)
	if err != nil {
		fc.app.Logger.Errorf("Failed to upload asset: %v", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to store image", err)
		return
	}

	url, err := fc.app.Storage.DownloadURL(ctx, objectName, name)
	if err != nil {
		fc.app.Logger.Errorf("Failed to presign asset: %v", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to store image", err)
		return
	}

	util.ResponseSuccess(ctx, http.StatusCreated, gin.H{
		"objectName": objectName,
		"url":        url,
		"width":      size.X,
		"height":     size.Y,
	})
}
