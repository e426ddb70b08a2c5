package handlers

import (
	"io"
	"net/http"

	"github.com/campushub/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// UploadHandler handles the student-ID verification upload flow.
type UploadHandler struct {
	verification *services.VerificationService
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(verification *services.VerificationService) *UploadHandler {
	return &UploadHandler{verification: verification}
}

// RegisterUploadRoutes registers upload-related routes
func (h *UploadHandler) RegisterUploadRoutes(g *echo.Group) {
	g.POST("/auth/upload-idcard", h.UploadIDCard)
	g.GET("/auth/upload-idcard", h.GetUploadStatus)
}

// UploadIDCard accepts a multipart "image" file and submits it for review.
func (h *UploadHandler) UploadIDCard(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing image file")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Could not open uploaded file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Could not read uploaded file")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	upload, err := h.verification.SubmitIDCard(c.Request().Context(), userID, data, contentType)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, upload)
}

// GetUploadStatus returns the caller's latest submission.
func (h *UploadHandler) GetUploadStatus(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	upload, err := h.verification.LatestSubmission(c.Request().Context(), userID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, upload)
}
