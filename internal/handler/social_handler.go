package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"clubhub/internal/model"
	"clubhub/internal/service"
)

// SocialHandler handles likes and comments on announcements.
type SocialHandler struct {
	socialService service.SocialService
	userService   service.UserService
}

// NewSocialHandler creates a new social handler.
func NewSocialHandler(socialService service.SocialService, userService service.UserService) *SocialHandler {
	return &SocialHandler{
		socialService: socialService,
		userService:   userService,
	}
}

// AddCommentRequest posts a comment.
type AddCommentRequest struct {
	Body string `json:"body" validate:"required,max=2000"`
}

// ToggleLike godoc
// @Summary Toggle the current user's like on an announcement
// @Tags social
// @Produce json
// @Security BearerAuth
// @Param id path int true "Announcement ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Router /announcements/{id}/like [post]
func (h *SocialHandler) ToggleLike(c echo.Context) error {
	user, id, err := h.userAndPathID(c)
	if err != nil {
		return err
	}
	liked, count, err := h.socialService.ToggleLike(c.Request().Context(), id, user.ID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "liked": liked, "count": count})
}

// Liked godoc
// @Summary Report whether the current user liked the announcement
// @Tags social
// @Produce json
// @Security BearerAuth
// @Param id path int true "Announcement ID"
// @Success 200 {object} map[string]interface{}
// @Router /announcements/{id}/liked [get]
func (h *SocialHandler) Liked(c echo.Context) error {
	user, id, err := h.userAndPathID(c)
	if err != nil {
		return err
	}
	liked, err := h.socialService.Liked(c.Request().Context(), id, user.ID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "liked": liked})
}

// AddComment godoc
// @Summary Comment on an announcement
// @Tags social
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Announcement ID"
// @Param request body AddCommentRequest true "Comment body"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /announcements/{id}/comments [post]
func (h *SocialHandler) AddComment(c echo.Context) error {
	user, id, err := h.userAndPathID(c)
	if err != nil {
		return err
	}

	var req AddCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.socialService.AddComment(c.Request().Context(), id, user, req.Body)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"ok": true, "comment": comment})
}

// ListComments godoc
// @Summary List an announcement's comments
// @Tags social
// @Produce json
// @Param id path int true "Announcement ID"
// @Success 200 {array} model.Comment
// @Failure 404 {object} errors.ErrorResponse
// @Router /announcements/{id}/comments [get]
func (h *SocialHandler) ListComments(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	comments, err := h.socialService.ListComments(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, comments)
}

// DeleteComment godoc
// @Summary Delete a comment (author or owning club admin)
// @Tags social
// @Produce json
// @Security BearerAuth
// @Param id path int true "Comment ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /comments/{id} [delete]
func (h *SocialHandler) DeleteComment(c echo.Context) error {
	user, id, err := h.userAndPathID(c)
	if err != nil {
		return err
	}
	if err := h.socialService.DeleteComment(c.Request().Context(), id, user); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

func (h *SocialHandler) userAndPathID(c echo.Context) (*model.User, uint, error) {
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
