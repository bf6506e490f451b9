package app

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/decker502/nutriquest/pkg/game"
	"github.com/decker502/nutriquest/pkg/tutorial"
)

// lastPlayerStore 记住上次玩家的内存存档
type lastPlayerStore struct {
	*game.MemoryProgressStore
	last string
}

func (s *lastPlayerStore) LastPlayer() string { return s.last }

func TestResolvePlayerID(t *testing.T) {
	mem := game.NewMemoryProgressStore()

	if got := ResolvePlayerID("alice", mem); got != "alice" {
		t.Errorf("explicit player = %q", got)
	}
	if got := ResolvePlayerID("", &lastPlayerStore{MemoryProgressStore: mem, last: "bob"}); got != "bob" {
		t.Errorf("last player = %q, want bob", got)
	}

	got := ResolvePlayerID("", &lastPlayerStore{MemoryProgressStore: mem})
	if _, err := uuid.Parse(got); err != nil {
		t.Errorf("Expected a new uuid player id, got %q", got)
	}
}

func TestNewAppRequiresStore(t *testing.T) {
	if _, err := NewApp(Config{Verbose: true}); err == nil {
		t.Error("Expected error without store")
	}
}

// TestNewAppStartsTutorial 新玩家启动后教学自动开始，退出时保存
func TestNewAppStartsTutorial(t *testing.T) {
	store := game.NewMemoryProgressStore()
	a, err := NewApp(Config{
		Verbose:  true,
		PlayerID: "p1",
		Store:    store,
		Session:  game.SessionOptions{LocationPolicy: tutorial.LocationStrict},
	})
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}

	if a.PlayerID() != "p1" {
		t.Errorf("PlayerID = %q", a.PlayerID())
	}
	ts, ok := a.Tutorial()
	if !ok {
		t.Fatal("Expected an open tutorial")
	}
	if ts.State() != tutorial.StateActive {
		t.Errorf("State = %s, want active", ts.State())
	}
	if ts.LocationPolicy() != tutorial.LocationStrict {
		t.Errorf("LocationPolicy = %s, want strict", ts.LocationPolicy())
	}

	ts.Trigger(tutorial.EventNextButton)
	if err := a.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}

	save, err := store.Load(context.Background(), "p1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if save.Coins != 50 || save.Tutorial.CurrentStep != 1 {
		t.Errorf("Unexpected save %+v", save)
	}

	w, h := a.Layout(1920, 1080)
	if w != 800 || h != 600 {
		t.Errorf("Layout = %dx%d", w, h)
	}
}
