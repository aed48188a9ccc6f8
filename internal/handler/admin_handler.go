package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"clubhub/internal/auth"
	"clubhub/internal/config"
	"clubhub/internal/service"
)

// AdminHandler handles the coordinator's approval workflow and dashboard.
type AdminHandler struct {
	adminService service.AdminService
	jwtService   *auth.JWTService
	cfg          *config.Config
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(adminService service.AdminService, jwtService *auth.JWTService, cfg *config.Config) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		jwtService:   jwtService,
		cfg:          cfg,
	}
}

// DecideRequest names the applicant for an approval decision.
type DecideRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// Pending godoc
// @Summary List pending club-admin requests (coordinators only)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.User
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/pending-requests [get]
func (h *AdminHandler) Pending(c echo.Context) error {
	if err := h.requireCoordinator(c); err != nil {
		return err
	}
	users, err := h.adminService.PendingRequests(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, users)
}

// Stats godoc
// @Summary Dashboard counters (coordinators only)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.Stats
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	if err := h.requireCoordinator(c); err != nil {
		return err
	}
	stats, err := h.adminService.Stats(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, stats)
}

// Approve godoc
// @Summary Approve a pending club-admin request (coordinators only)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body DecideRequest true "Applicant email"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/approve-request [post]
func (h *AdminHandler) Approve(c echo.Context) error {
	if err := h.requireCoordinator(c); err != nil {
		return err
	}
	req, err := h.bindDecision(c)
	if err != nil {
		return err
	}
	user, err := h.adminService.Approve(c.Request().Context(), req.Email)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "user": user})
}

// Reject godoc
// @Summary Reject a pending club-admin request (coordinators only)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body DecideRequest true "Applicant email"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/reject-request [post]
func (h *AdminHandler) Reject(c echo.Context) error {
	if err := h.requireCoordinator(c); err != nil {
		return err
	}
	req, err := h.bindDecision(c)
	if err != nil {
		return err
	}
	user, err := h.adminService.Reject(c.Request().Context(), req.Email)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "user": user})
}

// ApproveViaEmail godoc
// @Summary Approve a pending request via a one-click mail link
// @Tags admin
// @Produce json
// @Param token query string true "Signed action token"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Router /admin/approve-via-email [get]
func (h *AdminHandler) ApproveViaEmail(c echo.Context) error {
	return h.decideViaEmail(c, auth.ActionApproveAdmin)
}

// RejectViaEmail godoc
// @Summary Reject a pending request via a one-click mail link
// @Tags admin
// @Produce json
// @Param token query string true "Signed action token"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Router /admin/reject-via-email [get]
func (h *AdminHandler) RejectViaEmail(c echo.Context) error {
	return h.decideViaEmail(c, auth.ActionRejectAdmin)
}

func (h *AdminHandler) decideViaEmail(c echo.Context, action string) error {
	email, err := h.jwtService.ValidateActionToken(c.QueryParam("token"), action)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired link")
	}

	var (
		user    interface{}
		message string
	)
	switch action {
	case auth.ActionApproveAdmin:
		user, err = h.adminService.Approve(c.Request().Context(), email)
		message = "request approved"
	default:
		user, err = h.adminService.Reject(c.Request().Context(), email)
		message = "request rejected"
	}
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "message": message, "user": user})
}

func (h *AdminHandler) requireCoordinator(c echo.Context) error {
	claims, err := sessionClaims(c)
	if err != nil {
		return err
	}
	if !h.cfg.IsCoordinator(claims.Email) {
		return echo.NewHTTPError(http.StatusForbidden, "coordinator access required")
	}
	return nil
}

func (h *AdminHandler) bindDecision(c echo.Context) (*DecideRequest, error) {
	var req DecideRequest
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return &req, nil
}
