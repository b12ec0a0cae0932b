package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"calder/tictactoe-arena/internal/api/repository"
	"calder/tictactoe-arena/internal/api/response"
)

// StatsController serves per-player match records.
type StatsController struct {
	statsRepo repository.StatsRepository
}

// NewStatsController creates a new StatsController.
func NewStatsController(statsRepo repository.StatsRepository) *StatsController {
	return &StatsController{statsRepo: statsRepo}
}

// PlayerStats handles GET /stats/:player_id.
func (sc *StatsController) PlayerStats(c *gin.Context) {
	playerID := c.Param("player_id")
	if playerID == "" {
		response.ErrorResponse(c, http.StatusBadRequest, "player_id is required")
		return
	}

	stats, err := sc.statsRepo.GetPlayerStats(c.Request.Context(), playerID)
	if err != nil {
		response.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	response.SuccessResponse(c, stats)
}
