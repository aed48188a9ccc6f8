package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"clubhub/internal/service"
)

// SeedHandler handles seed data endpoints.
type SeedHandler struct {
	clubService service.ClubService
}

// NewSeedHandler creates a new seed handler.
func NewSeedHandler(clubService service.ClubService) *SeedHandler {
	return &SeedHandler{clubService: clubService}
}

// SeedClubsResponse represents the seed response.
type SeedClubsResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// SeedClubs godoc
// @Summary Seed the default campus clubs
// @Tags seed
// @Produce json
// @Success 200 {object} SeedClubsResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /seed/clubs [get]
func (h *SeedHandler) SeedClubs(c echo.Context) error {
	count, err := h.clubService.SeedDefaults(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, SeedClubsResponse{
		Message: "Clubs seeded successfully",
		Count:   count,
	})
}
