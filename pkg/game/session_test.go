package game

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/decker502/nutriquest/pkg/tutorial"
)

// failingStore 读取正常、写入失败的存档后端
type failingStore struct {
	*MemoryProgressStore
	saveErr error
	saves   int
}

func (f *failingStore) Save(ctx context.Context, save *PlayerSave) error {
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	return f.MemoryProgressStore.Save(ctx, save)
}

// TestOpenSessionNewPlayer 新玩家：首次登录，教学自动开始并立即存档
func TestOpenSessionNewPlayer(t *testing.T) {
	store := NewMemoryProgressStore()
	ctx := context.Background()

	s, err := OpenSession(ctx, store, "alice", SessionOptions{StartingCoins: 20})
	if err != nil {
		t.Fatalf("OpenSession failed: %v", err)
	}

	rs := s.Tutorial().Snapshot()
	if rs.State != tutorial.StateActive || !rs.ShowModal || rs.CurrentStepIndex != 0 {
		t.Errorf("Expected active tutorial at step 1 with modal, got %+v", rs)
	}
	if !s.Wallet().IsFirstLogin() || s.Wallet().Balance() != 20 {
		t.Errorf("Unexpected wallet: coins=%d firstLogin=%v", s.Wallet().Balance(), s.Wallet().IsFirstLogin())
	}

	saved, err := store.Load(ctx, "alice")
	if err != nil {
		t.Fatalf("Expected save to exist: %v", err)
	}
	if saved.Tutorial.State != "active" || !saved.FirstLogin {
		t.Errorf("Unexpected save: %+v", saved)
	}
}

// TestSessionAutosave 教学推进会自动存档（包括奖励后的金币）
func TestSessionAutosave(t *testing.T) {
	store := NewMemoryProgressStore()
	ctx := context.Background()

	s, err := OpenSession(ctx, store, "alice", SessionOptions{})
	if err != nil {
		t.Fatalf("OpenSession failed: %v", err)
	}

	if !s.Events().Trigger(tutorial.EventNextButton) {
		t.Fatal("Expected next_button to advance step 1")
	}

	saved, err := store.Load(ctx, "alice")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if saved.Coins != 50 {
		t.Errorf("Saved coins = %d, want 50", saved.Coins)
	}
	if saved.Tutorial.CurrentStep != 1 || !reflect.DeepEqual(saved.Tutorial.CompletedSteps, []int{1}) {
		t.Errorf("Unexpected saved progress: %+v", saved.Tutorial)
	}
}

// TestSessionResume 重新打开会话恢复进度，不会重新开始教学
func TestSessionResume(t *testing.T) {
	store := NewMemoryProgressStore()
	ctx := context.Background()

	first, err := OpenSession(ctx, store, "alice", SessionOptions{})
	if err != nil {
		t.Fatalf("OpenSession failed: %v", err)
	}
	first.Events().Trigger(tutorial.EventNextButton)
	first.Events().Trigger(tutorial.EventMovement)
	if err := first.Close(ctx); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	second, err := OpenSession(ctx, store, "alice", SessionOptions{})
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	rs := second.Tutorial().Snapshot()
	if rs.State != tutorial.StateActive || rs.CurrentStepIndex != 2 {
		t.Errorf("Expected resumed at index 2, got state=%s index=%d", rs.State, rs.CurrentStepIndex)
	}
	if rs.CompletedCount() != 2 {
		t.Errorf("CompletedCount = %d, want 2", rs.CompletedCount())
	}
	if second.Wallet().Balance() != 150 {
		t.Errorf("Balance = %d, want 150", second.Wallet().Balance())
	}
}

// TestSessionCompletedTutorial 完成教学后首次登录标记被清除，下次打开不再开始
func TestSessionCompletedTutorial(t *testing.T) {
	store := NewMemoryProgressStore()
	ctx := context.Background()

	s, err := OpenSession(ctx, store, "alice", SessionOptions{})
	if err != nil {
		t.Fatalf("OpenSession failed: %v", err)
	}
	for _, step := range tutorial.DefaultCatalog() {
		if !s.Events().TriggerAt(step.Trigger, step.Location) {
			t.Fatalf("Step %d did not advance", step.ID)
		}
	}
	if err := s.Close(ctx); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	again, err := OpenSession(ctx, store, "alice", SessionOptions{})
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	if again.Wallet().IsFirstLogin() {
		t.Error("Expected first-login flag cleared")
	}
	if got := again.Tutorial().State(); got != tutorial.StateCompleted {
		t.Errorf("State = %s, want completed", got)
	}
	if got := again.Wallet().Balance(); got != tutorial.CatalogCoinTotal(tutorial.DefaultCatalog()) {
		t.Errorf("Balance = %d, want catalog total", got)
	}
}

func TestSessionNoAutosave(t *testing.T) {
	store := &failingStore{MemoryProgressStore: NewMemoryProgressStore()}
	ctx := context.Background()

	s, err := OpenSession(ctx, store, "alice", SessionOptions{NoAutosave: true})
	if err != nil {
		t.Fatalf("OpenSession failed: %v", err)
	}
	before := store.saves
	s.Events().Trigger(tutorial.EventNextButton)
	if store.saves != before {
		t.Errorf("Expected no autosave, got %d extra saves", store.saves-before)
	}
	if err := s.Close(ctx); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if store.saves != before+1 {
		t.Errorf("Expected exactly one save on close, got %d", store.saves-before)
	}
	// 重复关闭无效果
	if err := s.Close(ctx); err != nil || store.saves != before+1 {
		t.Errorf("Second Close should be a no-op (err=%v)", err)
	}
}

// TestSessionAutosaveFailureKeepsProgress 自动存档失败不影响教学推进
func TestSessionAutosaveFailureKeepsProgress(t *testing.T) {
	store := &failingStore{MemoryProgressStore: NewMemoryProgressStore()}
	ctx := context.Background()

	s, err := OpenSession(ctx, store, "alice", SessionOptions{})
	if err != nil {
		t.Fatalf("OpenSession failed: %v", err)
	}
	store.saveErr = errors.New("disk full")

	if !s.Events().Trigger(tutorial.EventNextButton) {
		t.Fatal("Expected advance despite autosave failure")
	}
	if s.Wallet().Balance() != 50 {
		t.Errorf("Balance = %d, want 50", s.Wallet().Balance())
	}
	if err := s.Save(ctx); err == nil {
		t.Error("Expected explicit Save to report the backend error")
	}
}

func TestOpenSessionErrors(t *testing.T) {
	ctx := context.Background()

	if _, err := OpenSession(ctx, nil, "alice", SessionOptions{}); err == nil {
		t.Error("Expected error for nil store")
	}
	if _, err := OpenSession(ctx, NewMemoryProgressStore(), "bad id", SessionOptions{}); err == nil {
		t.Error("Expected error for invalid player id")
	}

	store := NewMemoryProgressStore()
	_ = store.Save(ctx, &PlayerSave{
		PlayerID: "broken",
		Tutorial: tutorial.Progress{State: "active", CurrentStep: 42},
	})
	if _, err := OpenSession(ctx, store, "broken", SessionOptions{}); err == nil {
		t.Error("Expected error for out-of-range saved step")
	}

	if _, err := OpenSession(ctx, store, "alice", SessionOptions{Steps: []tutorial.Step{}}); err == nil {
		t.Error("Expected error for empty catalog")
	}
}

func TestSessionStrictLocationPolicy(t *testing.T) {
	s, err := OpenSession(context.Background(), NewMemoryProgressStore(), "alice",
		SessionOptions{LocationPolicy: tutorial.LocationStrict, NoAutosave: true})
	if err != nil {
		t.Fatalf("OpenSession failed: %v", err)
	}
	s.Events().Trigger(tutorial.EventNextButton)
	s.Events().Trigger(tutorial.EventMovement)

	if s.Events().TriggerAt(tutorial.EventEnterBuilding, tutorial.LocationKitchen) {
		t.Error("Strict policy must not accept the kitchen for the market step")
	}
	if !s.Events().TriggerAt(tutorial.EventEnterBuilding, tutorial.LocationMarket) {
		t.Error("Expected the market to advance the market step")
	}
}
