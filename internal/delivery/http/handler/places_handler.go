package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ComputerScienceAddict/Hi-Hungry/internal/domain"
	"github.com/ComputerScienceAddict/Hi-Hungry/internal/usecase/discovery"
	"github.com/gin-gonic/gin"
)

type PlacesHandler struct {
	discoveryUseCase *discovery.UseCase
}

func NewPlacesHandler(discoveryUseCase *discovery.UseCase) *PlacesHandler {
	return &PlacesHandler{discoveryUseCase: discoveryUseCase}
}

// Nearby handles GET /places/nearby?lat=&lng=&radius=
// @Summary Search nearby places
// @Description Returns up to 60 enriched places around a coordinate
// @Tags places
// @Produce json
// @Param lat query number true "Latitude"
// @Param lng query number true "Longitude"
// @Param radius query int false "Radius in meters (clamped to 200..5000)"
// @Success 200 {array} domain.Place
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /places/nearby [get]
func (h *PlacesHandler) Nearby(c *gin.Context) {
	lat, lng, radius, ok := parseSearchQuery(c)
	if !ok {
		return
	}

	results, err := h.discoveryUseCase.NearbyPlaces(c.Request.Context(), lat, lng, radius)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCoordinate) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid coordinate"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to search nearby places"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":  len(results),
		"places": results,
	})
}

// parseSearchQuery rejects malformed coordinates before any core logic runs.
func parseSearchQuery(c *gin.Context) (lat, lng float64, radius int, ok bool) {
	var err error
	lat, err = strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid lat"})
		return 0, 0, 0, false
	}
	lng, err = strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid lng"})
		return 0, 0, 0, false
	}

	radius = 2000
	if raw := c.Query("radius"); raw != "" {
		radius, err = strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid radius"})
			return 0, 0, 0, false
		}
	}
	if radius < 200 {
		radius = 200
	}
	if radius > 5000 {
		radius = 5000
	}
	return lat, lng, radius, true
}
