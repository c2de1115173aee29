package handler

import (
	"net/http"

	"github.com/ComputerScienceAddict/Hi-Hungry/internal/usecase/session"
	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	sessionUseCase *session.UseCase
}

func NewSessionHandler(sessionUseCase *session.UseCase) *SessionHandler {
	return &SessionHandler{sessionUseCase: sessionUseCase}
}

// Create handles POST /session
// @Summary Open an anonymous session
// @Tags session
// @Produce json
// @Success 201 {object} session.SessionResponse
// @Failure 500 {object} ErrorResponse
// @Router /session [post]
func (h *SessionHandler) Create(c *gin.Context) {
	resp, err := h.sessionUseCase.Create()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to create session"})
		return
	}
	c.JSON(http.StatusCreated, resp)
}
