package controllers

import (
	apperrors "restaurante360/errors"
	"restaurante360/response"
	"restaurante360/services"

	"github.com/gin-gonic/gin"
)

const photoFormField = "files"

type PhotoController struct {
	photos *services.PhotoService
}

func NewPhotoController(photos *services.PhotoService) PhotoController {
	return PhotoController{photos: photos}
}

// UploadPhotos accepts multipart "files" and returns their URLs, to
// be sent back as photoUrls when completing a task.
func (p PhotoController) UploadPhotos(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		fail(c, apperrors.NewAppError(apperrors.ErrCodeInvalidFormat, "Nenhum arquivo enviado", err))
		return
	}
	urls, err := p.photos.Upload(c.Request.Context(), session(c), form.File[photoFormField])
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, gin.H{"urls": urls})
}
