package repository

import (
	"context"
	"testing"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"calder/tictactoe-arena/internal/game"
)

func setupGameRepo(t *testing.T) (GameRepository, context.Context) {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	ctr, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(ctr); err != nil {
			t.Logf("failed to terminate redis container: %v", err)
		}
	})

	uri, err := ctr.ConnectionString(ctx)
	require.NoError(t, err)

	opts, err := redis.ParseURL(uri)
	require.NoError(t, err)

	rdb := redis.NewClient(opts)
	t.Cleanup(func() { _ = rdb.Close() })

	return NewGameRepository(rdb), ctx
}

func TestGameRepository_CreateAndFind(t *testing.T) {
	repo, ctx := setupGameRepo(t)

	require.NoError(t, repo.Create(ctx, "room1", "alice", "bob"))

	state, err := repo.FindByID(ctx, "room1")
	require.NoError(t, err)

	assert.Equal(t, game.NewBoard(), state.Board)
	assert.Equal(t, game.PlayerX, state.CurrentTurn)
	assert.Equal(t, game.InProgress, state.Outcome.Status)
	assert.Equal(t, "alice", state.PlayerXID)
	assert.Equal(t, "bob", state.PlayerOID)
	assert.False(t, state.IsOver())
}

func TestGameRepository_FindMissing(t *testing.T) {
	repo, ctx := setupGameRepo(t)

	_, err := repo.FindByID(ctx, "nope")
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestGameRepository_UpdateEnforcesRules(t *testing.T) {
	repo, ctx := setupGameRepo(t)
	require.NoError(t, repo.Create(ctx, "room2", "alice", "bob"))

	// O may not open the game.
	_, err := repo.Update(ctx, "room2", game.PlayerO, 0, 0)
	assert.ErrorIs(t, err, ErrNotYourTurn)

	state, err := repo.Update(ctx, "room2", game.PlayerX, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, game.PlayerX, state.Board[0][0])
	assert.Equal(t, game.PlayerO, state.CurrentTurn)

	// The same cell cannot be taken twice.
	_, err = repo.Update(ctx, "room2", game.PlayerO, 0, 0)
	assert.ErrorIs(t, err, game.ErrCellOccupied)

	_, err = repo.Update(ctx, "room2", game.PlayerO, 5, 0)
	assert.ErrorIs(t, err, game.ErrOutOfRange)
}

func TestGameRepository_UpdateDetectsWin(t *testing.T) {
	repo, ctx := setupGameRepo(t)
	require.NoError(t, repo.Create(ctx, "room3", "alice", "bob"))

	moves := []struct {
		mark game.Mark
		row  int
		col  int
	}{
		{game.PlayerX, 0, 0},
		{game.PlayerO, 1, 0},
		{game.PlayerX, 0, 1},
		{game.PlayerO, 1, 1},
	}
	for _, m := range moves {
		_, err := repo.Update(ctx, "room3", m.mark, m.row, m.col)
		require.NoError(t, err)
	}

	state, err := repo.Update(ctx, "room3", game.PlayerX, 0, 2)
	require.NoError(t, err)

	assert.Equal(t, game.Won, state.Outcome.Status)
	assert.Equal(t, game.PlayerX, state.Outcome.Winner)
	assert.Equal(t, game.Line{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}}, state.Outcome.Line)
	assert.True(t, state.IsOver())

	// The finished game is frozen.
	_, err = repo.Update(ctx, "room3", game.PlayerO, 2, 2)
	assert.ErrorIs(t, err, game.ErrGameFinished)
}

func TestGameRepository_Votes(t *testing.T) {
	repo, ctx := setupGameRepo(t)
	require.NoError(t, repo.Create(ctx, "room4", "alice", "bob"))

	require.NoError(t, repo.RecordVote(ctx, "room4", "alice"))
	require.NoError(t, repo.RecordVote(ctx, "room4", "bob"))

	votes, err := repo.GetVotes(ctx, "room4")
	require.NoError(t, err)
	assert.Equal(t, "true", votes["vote:alice"])
	assert.Equal(t, "true", votes["vote:bob"])

	require.NoError(t, repo.ClearVotes(ctx, "room4", "alice", "bob"))
	votes, err = repo.GetVotes(ctx, "room4")
	require.NoError(t, err)
	assert.NotContains(t, votes, "vote:alice")
	assert.NotContains(t, votes, "vote:bob")
}
