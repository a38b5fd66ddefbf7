package controllers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/alumnihub/internal/app/models/dto"
	"github.com/yigit/alumnihub/internal/middleware"
	"github.com/yigit/alumnihub/internal/pkg/apperrors"
	"github.com/yigit/alumnihub/internal/pkg/filestorage"
)

var resumeExtensions = map[string]bool{".pdf": true, ".doc": true, ".docx": true}

// UploadController stores files referenced by other resources
type UploadController struct {
	storage  filestorage.Storage
	maxBytes int64
	logger   zerolog.Logger
}

// NewUploadController creates a new UploadController
func NewUploadController(storage filestorage.Storage, maxBytes int64, logger zerolog.Logger) *UploadController {
	return &UploadController{storage: storage, maxBytes: maxBytes, logger: logger}
}

// UploadResume stores a resume and returns the URL to put in a job application
// @Summary Upload a resume
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "PDF, DOC or DOCX"
// @Success 201 {object} dto.APIResponse{data=dto.UploadResponse}
// @Failure 400 {object} dto.ErrorResponse "Missing, oversized or unsupported file"
// @Router /uploads/resume [post]
func (c *UploadController) UploadResume(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("A file is required"))
		return
	}
	if fileHeader.Size > c.maxBytes {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError(fmt.Sprintf("File exceeds %d bytes", c.maxBytes)))
		return
	}
	if !resumeExtensions[strings.ToLower(filepath.Ext(fileHeader.Filename))] {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Resume must be a PDF, DOC or DOCX file"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Uploaded file could not be read"))
		return
	}
	defer file.Close()

	actor := actorFrom(ctx)
	url, err := c.storage.Save("resumes/"+actor.ID, fileHeader.Filename, file)
	if err != nil {
		c.logger.Error().Err(err).Str("userID", actor.ID).Msg("Failed to store resume")
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusCreated, dto.UploadResponse{
		URL:      url,
		FileName: fileHeader.Filename,
		Size:     fileHeader.Size,
	}, "File uploaded")
}
