package bot

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calder/tictactoe-arena/internal/game"
	"calder/tictactoe-arena/pkg/proto"
)

func sendAssignment(t *testing.T, bc *BotConnection, mark game.Mark) {
	t.Helper()
	data, err := json.Marshal(proto.PlayerAssignmentMessage{Type: proto.TypeAssignment, Mark: mark})
	require.NoError(t, err)
	require.NoError(t, bc.WriteMessage(1, data))
}

func sendUpdate(t *testing.T, bc *BotConnection, msg proto.ServerToClientMessage) {
	t.Helper()
	data, err := json.Marshal(msg)
	require.NoError(t, err)
	require.NoError(t, bc.WriteMessage(1, data))
}

func readMove(t *testing.T, bc *BotConnection) proto.ClientToServerMessage {
	t.Helper()
	type result struct {
		data []byte
	}
	ch := make(chan result, 1)
	go func() {
		_, data, _ := bc.ReadMessage()
		ch <- result{data}
	}()

	select {
	case res := <-ch:
		var move proto.ClientToServerMessage
		require.NoError(t, json.Unmarshal(res.data, &move))
		return move
	case <-time.After(time.Second):
		t.Fatal("bot produced no move")
		return proto.ClientToServerMessage{}
	}
}

func TestBotConnectionPlaysOnItsTurn(t *testing.T) {
	bc := NewBotConnection("bot-1", DifficultyHard, nil)
	bc.SetDelay(0)

	sendAssignment(t, bc, game.PlayerO)

	board := game.NewBoard()
	board[0][0] = game.PlayerX
	sendUpdate(t, bc, proto.ServerToClientMessage{
		Type:  proto.TypeUpdate,
		Board: board.AsSlices(),
		Next:  game.PlayerO,
	})

	move := readMove(t, bc)
	assert.Equal(t, proto.TypeMove, move.Type)
	assert.Equal(t, []int{1, 1}, move.Position, "no win or block, so the bot takes the center")
}

func TestBotConnectionStaysQuietOffTurn(t *testing.T) {
	bc := NewBotConnection("bot-1", DifficultyHard, nil)
	bc.SetDelay(0)

	sendAssignment(t, bc, game.PlayerO)
	sendUpdate(t, bc, proto.ServerToClientMessage{
		Type:  proto.TypeUpdate,
		Board: game.NewBoard().AsSlices(),
		Next:  game.PlayerX,
	})

	select {
	case move := <-bc.moveChan:
		t.Fatalf("bot moved out of turn: %s", move)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBotConnectionIgnoresFinishedGame(t *testing.T) {
	bc := NewBotConnection("bot-1", DifficultyHard, nil)
	bc.SetDelay(0)

	sendAssignment(t, bc, game.PlayerO)

	board := game.NewBoard()
	board[0][0], board[0][1], board[0][2] = game.PlayerX, game.PlayerX, game.PlayerX
	sendUpdate(t, bc, proto.ServerToClientMessage{
		Type:   proto.TypeUpdate,
		Board:  board.AsSlices(),
		Next:   game.PlayerO,
		Winner: game.PlayerX,
	})

	select {
	case move := <-bc.moveChan:
		t.Fatalf("bot moved in a finished game: %s", move)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBotConnectionIgnoresUnassigned(t *testing.T) {
	bc := NewBotConnection("bot-1", DifficultyHard, nil)
	bc.SetDelay(0)

	// No assignment yet: updates must not trigger a move.
	sendUpdate(t, bc, proto.ServerToClientMessage{
		Type:  proto.TypeUpdate,
		Board: game.NewBoard().AsSlices(),
		Next:  game.PlayerO,
	})

	select {
	case move := <-bc.moveChan:
		t.Fatalf("unassigned bot moved: %s", move)
	case <-time.After(50 * time.Millisecond):
	}
}
