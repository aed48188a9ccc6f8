package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"clubhub/internal/service"
)

// AnnouncementHandler handles announcement CRUD.
type AnnouncementHandler struct {
	annService   service.AnnouncementService
	userService  service.UserService
	uploadDir    string
	maxImageSize int64
}

// NewAnnouncementHandler creates a new announcement handler.
func NewAnnouncementHandler(annService service.AnnouncementService, userService service.UserService, uploadDir string, maxImageSize int64) *AnnouncementHandler {
	return &AnnouncementHandler{
		annService:   annService,
		userService:  userService,
		uploadDir:    uploadDir,
		maxImageSize: maxImageSize,
	}
}

// List godoc
// @Summary List active announcements
// @Tags announcements
// @Produce json
// @Success 200 {array} model.Announcement
// @Router /announcements [get]
func (h *AnnouncementHandler) List(c echo.Context) error {
	anns, err := h.annService.List(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, anns)
}

// Get godoc
// @Summary Get an announcement by id
// @Tags announcements
// @Produce json
// @Param id path int true "Announcement ID"
// @Success 200 {object} model.Announcement
// @Failure 404 {object} errors.ErrorResponse
// @Router /announcements/{id} [get]
func (h *AnnouncementHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ann, err := h.annService.Get(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, ann)
}

// Create godoc
// @Summary Create an announcement (club admins only)
// @Tags announcements
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param content formData string false "Content"
// @Param registration_enabled formData bool false "Enable event registration"
// @Param registration_deadline formData string false "RFC3339 deadline"
// @Param max_registrations formData int false "Capacity limit"
// @Param image formData file false "Image (max 5MB)"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /announcements [post]
func (h *AnnouncementHandler) Create(c echo.Context) error {
	user, err := currentUser(c, h.userService)
	if err != nil {
		return err
	}

	in, err := h.bindAnnouncementForm(c)
	if err != nil {
		return err
	}

	ann, err := h.annService.Create(c.Request().Context(), user, *in)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"ok": true, "announcement": ann})
}

// Update godoc
// @Summary Update an announcement (owning club admin only)
// @Tags announcements
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "Announcement ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /announcements/{id} [put]
func (h *AnnouncementHandler) Update(c echo.Context) error {
	user, err := currentUser(c, h.userService)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	in, err := h.bindAnnouncementForm(c)
	if err != nil {
		return err
	}

	ann, err := h.annService.Update(c.Request().Context(), id, user, *in)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "announcement": ann})
}

// Delete godoc
// @Summary Soft-delete an announcement (owning club admin only)
// @Tags announcements
// @Produce json
// @Security BearerAuth
// @Param id path int true "Announcement ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /announcements/{id} [delete]
func (h *AnnouncementHandler) Delete(c echo.Context) error {
	user, err := currentUser(c, h.userService)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.annService.Delete(c.Request().Context(), id, user); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

func (h *AnnouncementHandler) bindAnnouncementForm(c echo.Context) (*service.AnnouncementInput, error) {
	title := strings.TrimSpace(c.FormValue("title"))
	if title == "" {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}

	in := &service.AnnouncementInput{
		Title:   title,
		Content: c.FormValue("content"),
	}

	if v := c.FormValue("registration_enabled"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid registration_enabled")
		}
		in.RegistrationEnabled = enabled
	}
	if v := c.FormValue("registration_deadline"); v != "" {
		deadline, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "registration_deadline must be RFC3339")
		}
		in.RegistrationDeadline = &deadline
	}
	if v := c.FormValue("max_registrations"); v != "" {
		max, err := strconv.Atoi(v)
		if err != nil || max <= 0 {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid max_registrations")
		}
		in.MaxRegistrations = &max
	}

	file, err := c.FormFile("image")
	if err == nil && file != nil {
		path, err := h.saveImage(file)
		if err != nil {
			return nil, err
		}
		in.ImagePath = path
	}

	return in, nil
}

// saveImage stores an uploaded image under the upload dir with a random
// name, keeping the original extension.
func (h *AnnouncementHandler) saveImage(file *multipart.FileHeader) (string, error) {
	if file.Size > h.maxImageSize {
		return "", echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("image exceeds %d bytes", h.maxImageSize))
	}

	src, err := file.Open()
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "invalid image upload")
	}
	defer src.Close()

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := uuid.New().String() + strings.ToLower(filepath.Ext(file.Filename))
	dstPath := filepath.Join(h.uploadDir, name)
	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}

	return "/uploads/" + name, nil
}
