package match

import (
	"testing"
	"time"

	"calder/tictactoe-arena/internal/player"
)

func TestMatchManager_MatchPlayers(t *testing.T) {
	mm := NewMatchManager()
	go mm.Run()

	mm.AddPlayer(&player.Player{ID: "player1"})
	mm.AddPlayer(&player.Player{ID: "player2"})

	select {
	case pair := <-mm.MatchedPair():
		ids := map[string]bool{pair[0].ID: true, pair[1].ID: true}
		if !ids["player1"] || !ids["player2"] {
			t.Errorf("expected player1 and player2 to be paired, got %q and %q", pair[0].ID, pair[1].ID)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timed out waiting for players to be matched")
	}

	mm.mu.Lock()
	defer mm.mu.Unlock()
	if len(mm.waitingPlayers) != 0 {
		t.Errorf("expected 0 waiting players after matching, got %d", len(mm.waitingPlayers))
	}
}

func TestMatchManager_OddPlayerWaits(t *testing.T) {
	mm := NewMatchManager()
	go mm.Run()

	mm.AddPlayer(&player.Player{ID: "player1"})
	mm.AddPlayer(&player.Player{ID: "player2"})
	mm.AddPlayer(&player.Player{ID: "player3"})

	select {
	case <-mm.MatchedPair():
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timed out waiting for players to be matched")
	}

	time.Sleep(10 * time.Millisecond) // allow the waiting list to settle
	mm.mu.Lock()
	defer mm.mu.Unlock()
	if len(mm.waitingPlayers) != 1 || mm.waitingPlayers[0].ID != "player3" {
		t.Errorf("expected only player3 waiting, got %v", mm.waitingPlayers)
	}
}

func TestMatchManager_RemovePlayer(t *testing.T) {
	mm := NewMatchManager()
	go mm.Run()

	mm.AddPlayer(&player.Player{ID: "player1"})
	time.Sleep(10 * time.Millisecond)

	mm.RemovePlayer("player1")
	time.Sleep(10 * time.Millisecond)

	mm.mu.Lock()
	defer mm.mu.Unlock()
	if len(mm.waitingPlayers) != 0 {
		t.Errorf("expected 0 waiting players, got %d", len(mm.waitingPlayers))
	}
}

func TestMatchManager_RemoveUnknownPlayer(t *testing.T) {
	mm := NewMatchManager()
	go mm.Run()

	mm.AddPlayer(&player.Player{ID: "player1"})
	time.Sleep(10 * time.Millisecond)

	mm.RemovePlayer("ghost")
	time.Sleep(10 * time.Millisecond)

	mm.mu.Lock()
	defer mm.mu.Unlock()
	if len(mm.waitingPlayers) != 1 {
		t.Errorf("expected 1 waiting player, got %d", len(mm.waitingPlayers))
	}
}
