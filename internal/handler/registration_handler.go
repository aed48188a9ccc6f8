package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"clubhub/internal/model"
	"clubhub/internal/service"
)

// RegistrationHandler handles event registration endpoints.
type RegistrationHandler struct {
	regService  service.RegistrationService
	userService service.UserService
}

// NewRegistrationHandler creates a new registration handler.
func NewRegistrationHandler(regService service.RegistrationService, userService service.UserService) *RegistrationHandler {
	return &RegistrationHandler{
		regService:  regService,
		userService: userService,
	}
}

// Register godoc
// @Summary Register for an event
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Announcement ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /announcements/{id}/register [post]
func (h *RegistrationHandler) Register(c echo.Context) error {
	user, id, err := h.userAndPathID(c)
	if err != nil {
		return err
	}
	if err := h.regService.Register(c.Request().Context(), id, user.ID); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "message": "registered"})
}

// Unregister godoc
// @Summary Cancel an event registration
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Announcement ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Router /announcements/{id}/unregister [post]
func (h *RegistrationHandler) Unregister(c echo.Context) error {
	user, id, err := h.userAndPathID(c)
	if err != nil {
		return err
	}
	if err := h.regService.Unregister(c.Request().Context(), id, user.ID); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "message": "registration cancelled"})
}

// Status godoc
// @Summary Report whether the current user is registered
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Announcement ID"
// @Success 200 {object} map[string]interface{}
// @Router /announcements/{id}/registration-status [get]
func (h *RegistrationHandler) Status(c echo.Context) error {
	user, id, err := h.userAndPathID(c)
	if err != nil {
		return err
	}
	registered, err := h.regService.Status(c.Request().Context(), id, user.ID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "registered": registered})
}

// Info godoc
// @Summary Get the registration projection for an event
// @Tags registrations
// @Produce json
// @Param id path int true "Announcement ID"
// @Success 200 {object} service.RegistrationInfo
// @Failure 404 {object} errors.ErrorResponse
// @Router /announcements/{id}/registration-info [get]
func (h *RegistrationHandler) Info(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	info, err := h.regService.Info(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, info)
}

// Roster godoc
// @Summary List an event's registrations (owning club admin only)
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Announcement ID"
// @Success 200 {object} service.Roster
// @Failure 403 {object} errors.ErrorResponse
// @Router /announcements/{id}/registrations [get]
func (h *RegistrationHandler) Roster(c echo.Context) error {
	user, id, err := h.userAndPathID(c)
	if err != nil {
		return err
	}
	roster, err := h.regService.Roster(c.Request().Context(), id, user)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, roster)
}

// ExportCSV godoc
// @Summary Export an event's registrations as CSV (owning club admin only)
// @Tags registrations
// @Produce text/csv
// @Security BearerAuth
// @Param id path int true "Announcement ID"
// @Success 200 {string} string
// @Failure 403 {object} errors.ErrorResponse
// @Router /announcements/{id}/registrations/export [get]
func (h *RegistrationHandler) ExportCSV(c echo.Context) error {
	user, id, err := h.userAndPathID(c)
	if err != nil {
		return err
	}
	data, err := h.regService.ExportCSV(c.Request().Context(), id, user)
	if err != nil {
		return httpError(err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="registrations-%d.csv"`, id))
	return c.Blob(http.StatusOK, "text/csv", data)
}

func (h *RegistrationHandler) userAndPathID(c echo.Context) (*model.User, uint, error) {
	user, err := currentUser(c, h.userService)
	if err != nil {
		return nil, 0, err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return nil, 0, err
	}
	return user, id, nil
}
