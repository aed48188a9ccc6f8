package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"clubhub/internal/service"
)

// UserHandler handles profile endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UpdateProfileRequest edits the profile. Role and club_id are only honored
// for the one-time self-declaration.
type UpdateProfileRequest struct {
	Name       string  `json:"name" validate:"required"`
	Branch     string  `json:"branch"`
	RollNumber string  `json:"roll_number"`
	Role       *string `json:"role" validate:"omitempty,oneof=student club_admin"`
	ClubID     *uint   `json:"club_id"`
}

// Me godoc
// @Summary Get the current user's profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Router /me [get]
func (h *UserHandler) Me(c echo.Context) error {
	claims, err := sessionClaims(c)
	if err != nil {
		return err
	}

	user, err := h.userService.GetByEmail(c.Request().Context(), claims.Email)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "user": user})
}

// UpdateProfile godoc
// @Summary Update the current user's profile
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /profile [post]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	claims, err := sessionClaims(c)
	if err != nil {
		return err
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.UpdateProfile(c.Request().Context(), claims.Email, service.UpdateProfileInput{
		Name:       req.Name,
		Branch:     req.Branch,
		RollNumber: req.RollNumber,
		Role:       req.Role,
		ClubID:     req.ClubID,
	})
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"ok": true, "user": user})
}
