package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calder/tictactoe-arena/internal/api/models"
	"calder/tictactoe-arena/internal/game"
	"calder/tictactoe-arena/internal/session"
)

func TestCreateLocalGame(t *testing.T) {
	svc := NewLocalGameService(nil)

	state, err := svc.Create(context.Background(), &models.CreateLocalGameRequest{Mode: "local"})
	require.NoError(t, err)
	require.NotEmpty(t, state.ID)

	assert.Equal(t, "local", state.Mode)
	assert.Equal(t, string(session.StateInProgress), state.State)
	assert.Equal(t, game.PlayerX, state.Next, "X always opens")
	require.Len(t, state.Board, 3)
	for _, row := range state.Board {
		for _, cell := range row {
			assert.Equal(t, game.None, cell)
		}
	}
}

func TestCreateRejectsUnknownMode(t *testing.T) {
	svc := NewLocalGameService(nil)

	_, err := svc.Create(context.Background(), &models.CreateLocalGameRequest{Mode: "online"})
	assert.ErrorIs(t, err, session.ErrUnknownMode)
}

func TestHotSeatGameToWin(t *testing.T) {
	svc := NewLocalGameService(nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, &models.CreateLocalGameRequest{Mode: "local"})
	require.NoError(t, err)
	id := created.ID

	// X takes the top row while O wastes moves on the middle one.
	moves := []models.MoveRequest{
		{Row: 0, Col: 0}, // X
		{Row: 1, Col: 0}, // O
		{Row: 0, Col: 1}, // X
		{Row: 1, Col: 1}, // O
		{Row: 0, Col: 2}, // X wins
	}

	var state *models.LocalGameState
	for _, m := range moves {
		state, err = svc.Move(ctx, id, &m)
		require.NoError(t, err)
	}

	assert.Equal(t, string(session.StateTerminal), state.State)
	assert.Equal(t, game.PlayerX, state.Winner)
	assert.False(t, state.Draw)
	require.NotNil(t, state.WinLine)
	assert.Equal(t, game.Cell{Row: 0, Col: 0}, state.WinLine[0])
	assert.Equal(t, game.None, state.Next, "finished game has no next turn")

	// Frozen until restart.
	_, err = svc.Move(ctx, id, &models.MoveRequest{Row: 2, Col: 2})
	assert.ErrorIs(t, err, game.ErrGameFinished)

	restarted, err := svc.Restart(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "local", restarted.Mode)
	assert.Equal(t, string(session.StateInProgress), restarted.State)
	assert.Equal(t, game.PlayerX, restarted.Next)
}

func TestBotGameRepliesImmediately(t *testing.T) {
	svc := NewLocalGameService(nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, &models.CreateLocalGameRequest{Mode: "bot", Difficulty: "hard"})
	require.NoError(t, err)

	// A corner opening gives the bot no win or block, so it must take the
	// center.
	state, err := svc.Move(ctx, created.ID, &models.MoveRequest{Row: 0, Col: 0})
	require.NoError(t, err)

	assert.Equal(t, game.PlayerX, state.Board[0][0])
	assert.Equal(t, game.PlayerO, state.Board[1][1])
	assert.Equal(t, game.PlayerX, state.Next, "turn returns to the human")
}

func TestBotBlocksImmediateThreat(t *testing.T) {
	svc := NewLocalGameService(nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, &models.CreateLocalGameRequest{Mode: "bot", Difficulty: "hard"})
	require.NoError(t, err)

	// X: (0,0), bot takes (1,1). X: (0,1) threatens the top row; the bot
	// must answer at (0,2).
	_, err = svc.Move(ctx, created.ID, &models.MoveRequest{Row: 0, Col: 0})
	require.NoError(t, err)
	state, err := svc.Move(ctx, created.ID, &models.MoveRequest{Row: 0, Col: 1})
	require.NoError(t, err)

	assert.Equal(t, game.PlayerO, state.Board[0][2], "bot must block the top row")
}

func TestMoveOnMissingSession(t *testing.T) {
	svc := NewLocalGameService(nil)

	_, err := svc.Move(context.Background(), "no-such-id", &models.MoveRequest{})
	assert.ErrorIs(t, err, ErrGameSessionNotFound)
}

func TestDeleteSession(t *testing.T) {
	svc := NewLocalGameService(nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, &models.CreateLocalGameRequest{Mode: "local"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrGameSessionNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), ErrGameSessionNotFound)
}
