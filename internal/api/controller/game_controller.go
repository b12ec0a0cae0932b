package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"calder/tictactoe-arena/internal/api/models"
	"calder/tictactoe-arena/internal/api/response"
	"calder/tictactoe-arena/internal/api/service"
	"calder/tictactoe-arena/internal/game"
	"calder/tictactoe-arena/internal/session"
)

// GameController exposes local game sessions over REST. Hot-seat and bot
// games run entirely on this instance; only multiplayer uses the websocket.
type GameController struct {
	gameService service.LocalGameService
}

// NewGameController creates a new GameController.
func NewGameController(gameService service.LocalGameService) *GameController {
	return &GameController{gameService: gameService}
}

// Create handles POST /games.
func (gc *GameController) Create(c *gin.Context) {
	var req models.CreateLocalGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	state, err := gc.gameService.Create(c.Request.Context(), &req)
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	response.CreatedResponse(c, state)
}

// Get handles GET /games/:id.
func (gc *GameController) Get(c *gin.Context) {
	state, err := gc.gameService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.ErrorResponse(c, http.StatusNotFound, err.Error())
		return
	}
	response.SuccessResponse(c, state)
}

// Move handles POST /games/:id/moves.
func (gc *GameController) Move(c *gin.Context) {
	var req models.MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	state, err := gc.gameService.Move(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		response.ErrorResponse(c, moveErrorStatus(err), err.Error())
		return
	}
	response.SuccessResponse(c, state)
}

// Restart handles POST /games/:id/restart.
func (gc *GameController) Restart(c *gin.Context) {
	state, err := gc.gameService.Restart(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrGameSessionNotFound) {
			response.ErrorResponse(c, http.StatusNotFound, err.Error())
			return
		}
		response.ErrorResponse(c, http.StatusConflict, err.Error())
		return
	}
	response.SuccessResponse(c, state)
}

// Delete handles DELETE /games/:id.
func (gc *GameController) Delete(c *gin.Context) {
	if err := gc.gameService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.ErrorResponse(c, http.StatusNotFound, err.Error())
		return
	}
	response.SuccessResponse(c, gin.H{"message": "Game session deleted"})
}

func moveErrorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrGameSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, game.ErrCellOccupied), errors.Is(err, game.ErrGameFinished):
		return http.StatusConflict
	case errors.Is(err, game.ErrInvalidMove), errors.Is(err, session.ErrNotStarted):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
