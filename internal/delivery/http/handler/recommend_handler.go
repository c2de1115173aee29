package handler

import (
	"errors"
	"net/http"

	"github.com/ComputerScienceAddict/Hi-Hungry/internal/domain"
	"github.com/ComputerScienceAddict/Hi-Hungry/internal/usecase/recommend"
	"github.com/gin-gonic/gin"
)

type RecommendHandler struct {
	recommendUseCase *recommend.UseCase
}

func NewRecommendHandler(recommendUseCase *recommend.UseCase) *RecommendHandler {
	return &RecommendHandler{recommendUseCase: recommendUseCase}
}

// RecommendRequest carries the coordinate and the caller's saved history.
// History is supplied fresh on every call; the backend keeps none of it.
type RecommendRequest struct {
	Latitude  float64                  `json:"lat" binding:"min=-90,max=90"`
	Longitude float64                  `json:"lng" binding:"min=-180,max=180"`
	RadiusM   int                      `json:"radius"`
	Saved     []domain.SavedRestaurant `json:"saved"`
}

// Recommend handles POST /recommendations
// @Summary Recommend places
// @Description Ranks unseen nearby places against the saved-history profile
// @Tags recommendations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body RecommendRequest true "Coordinate and saved history"
// @Success 200 {array} domain.ScoredCandidate
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /recommendations [post]
func (h *RecommendHandler) Recommend(c *gin.Context) {
	var req RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	ranked, err := h.recommendUseCase.Recommend(c.Request.Context(), req.Latitude, req.Longitude, req.RadiusM, req.Saved)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCoordinate) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid coordinate"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to build recommendations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":           len(ranked),
		"recommendations": ranked,
	})
}
