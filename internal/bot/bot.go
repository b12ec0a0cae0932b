package bot

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"calder/tictactoe-arena/internal/game"
	"calder/tictactoe-arena/internal/player"
	"calder/tictactoe-arena/pkg/proto"
)

// thinkingDelay is how long the bot pretends to deliberate before answering.
// Purely cosmetic; move selection itself is instant.
const thinkingDelay = 1 * time.Second

// BotConnection simulates a websocket connection for a bot player. It
// implements the player.Connection interface: the room writes game state to
// it and reads moves back, exactly as it would with a remote peer.
type BotConnection struct {
	playerID   string
	moveChan   chan []byte
	mark       game.Mark
	difficulty string
	calculator *MoveCalculator
	delay      time.Duration
}

// NewBotConnection creates a new connection for a bot.
func NewBotConnection(playerID, difficulty string, calculator *MoveCalculator) *BotConnection {
	if calculator == nil {
		calculator = NewMoveCalculator(nil)
	}
	return &BotConnection{
		playerID:   playerID,
		moveChan:   make(chan []byte, 1),
		difficulty: difficulty,
		calculator: calculator,
		delay:      thinkingDelay,
	}
}

// SetDelay overrides the thinking delay. Tests set it to zero.
func (bc *BotConnection) SetDelay(d time.Duration) {
	bc.delay = d
}

// WriteMessage is called by the room to send game state to the bot.
func (bc *BotConnection) WriteMessage(messageType int, data []byte) error {
	var genericMsg map[string]any
	if err := json.Unmarshal(data, &genericMsg); err != nil {
		return err
	}

	msgType, ok := genericMsg["type"].(string)
	if !ok {
		return nil // not a message the bot cares about
	}

	switch msgType {
	case proto.TypeAssignment:
		var msg proto.PlayerAssignmentMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return err
		}
		bc.mark = msg.Mark
		slog.Info("Bot assigned mark", "bot.id", bc.playerID, "mark", bc.mark)

	case proto.TypeUpdate:
		var msg proto.ServerToClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return err
		}

		// The bot only acts once it has a mark, it is its turn, and the
		// game is still open.
		if bc.mark == game.None || msg.Next != bc.mark || msg.Winner != game.None || msg.Draw {
			return nil
		}

		slog.Info("Bot is thinking", "bot.id", bc.playerID, "mark", bc.mark)
		time.Sleep(bc.delay)

		board := game.BoardFromSlices(msg.Board)
		row, col := bc.calculator.CalculateNextMove(board, bc.mark, bc.difficulty)
		if row == -1 {
			return nil
		}

		move := proto.ClientToServerMessage{
			Type:     proto.TypeMove,
			Position: []int{row, col},
		}
		moveBytes, _ := json.Marshal(move)
		bc.moveChan <- moveBytes
	}

	return nil
}

// ReadMessage blocks until the bot's logic produces a move.
func (bc *BotConnection) ReadMessage() (int, []byte, error) {
	move := <-bc.moveChan
	return 1, move, nil // 1 = TextMessage
}

// Close is a no-op for the bot.
func (bc *BotConnection) Close() error {
	return nil
}

// NewBotPlayer creates a new player instance backed by a bot connection.
func NewBotPlayer(difficulty string, calculator *MoveCalculator) *player.Player {
	botID := "bot-" + uuid.New().String()[:8]
	botConn := NewBotConnection(botID, difficulty, calculator)
	p := player.NewPlayer(botID, botConn)
	p.IsBot = true
	return p
}
