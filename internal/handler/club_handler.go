package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"clubhub/internal/model"
	"clubhub/internal/service"
)

// ClubHandler handles club reference data and subscriptions.
type ClubHandler struct {
	clubService service.ClubService
	userService service.UserService
}

// NewClubHandler creates a new club handler.
func NewClubHandler(clubService service.ClubService, userService service.UserService) *ClubHandler {
	return &ClubHandler{
		clubService: clubService,
		userService: userService,
	}
}

// List godoc
// @Summary List active clubs
// @Tags clubs
// @Produce json
// @Success 200 {array} model.Club
// @Router /clubs [get]
func (h *ClubHandler) List(c echo.Context) error {
	clubs, err := h.clubService.List(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, clubs)
}

// Get godoc
// @Summary Get a club by id
// @Tags clubs
// @Produce json
// @Param id path int true "Club ID"
// @Success 200 {object} model.Club
// @Failure 404 {object} errors.ErrorResponse
// @Router /clubs/{id} [get]
func (h *ClubHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	club, err := h.clubService.Get(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, club)
}

// Subscribe godoc
// @Summary Subscribe to a club's announcements
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Router /clubs/{id}/subscribe [post]
func (h *ClubHandler) Subscribe(c echo.Context) error {
	user, id, err := h.userAndPathID(c)
	if err != nil {
		return err
	}
	if err := h.clubService.Subscribe(c.Request().Context(), id, user.ID); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "subscribed": true})
}

// Unsubscribe godoc
// @Summary Unsubscribe from a club's announcements
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Router /clubs/{id}/unsubscribe [post]
func (h *ClubHandler) Unsubscribe(c echo.Context) error {
	user, id, err := h.userAndPathID(c)
	if err != nil {
		return err
	}
	if err := h.clubService.Unsubscribe(c.Request().Context(), id, user.ID); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "subscribed": false})
}

// SubscriptionStatus godoc
// @Summary Report whether the current user subscribes to the club
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} map[string]interface{}
// @Router /clubs/{id}/subscription-status [get]
func (h *ClubHandler) SubscriptionStatus(c echo.Context) error {
	user, id, err := h.userAndPathID(c)
	if err != nil {
		return err
	}
	subscribed, err := h.clubService.SubscriptionStatus(c.Request().Context(), id, user.ID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "subscribed": subscribed})
}

// MySubscriptions godoc
// @Summary List the clubs the current user subscribes to
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Club
// @Router /my-subscriptions [get]
func (h *ClubHandler) MySubscriptions(c echo.Context) error {
	user, err := currentUser(c, h.userService)
	if err != nil {
		return err
	}
	clubs, err := h.clubService.MySubscriptions(c.Request().Context(), user.ID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, clubs)
}

func (h *ClubHandler) userAndPathID(c echo.Context) (*model.User, uint, error) {
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
