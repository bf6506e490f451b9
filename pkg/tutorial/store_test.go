package tutorial

import (
	"errors"
	"sync"
	"testing"
)

// TestScenarioStart 对应：inactive 状态下调用 Start
func TestScenarioStart(t *testing.T) {
	s := NewDefaultStore()
	if s.State() != StateInactive {
		t.Fatalf("Expected inactive store, got %s", s.State())
	}

	s.Start()

	rs := s.Snapshot()
	if rs.State != StateActive {
		t.Errorf("Expected active, got %s", rs.State)
	}
	if rs.CurrentStepIndex != 0 {
		t.Errorf("Expected index 0, got %d", rs.CurrentStepIndex)
	}
	if !rs.ShowModal {
		t.Error("Expected modal to be visible")
	}
	if len(rs.Steps) != 9 {
		t.Errorf("Expected 9 steps, got %d", len(rs.Steps))
	}
}

func TestNewStoreRejectsInvalidCatalog(t *testing.T) {
	if _, err := NewStore(nil); err == nil {
		t.Error("Expected error for empty catalog")
	}
	if _, err := NewStore([]Step{{ID: 2, Trigger: EventNextButton}}); err == nil {
		t.Error("Expected error for catalog starting at id 2")
	}
}

// TestNewStoreClearsCompletedFlags 目录中的完成标记不会带入新运行
func TestNewStoreClearsCompletedFlags(t *testing.T) {
	steps := DefaultCatalog()
	steps[0].Completed = true
	s, err := NewStore(steps)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	if s.Snapshot().CompletedCount() != 0 {
		t.Error("Expected fresh run with no completed steps")
	}
}

func TestAdvanceIgnoredUnlessActive(t *testing.T) {
	s := NewDefaultStore()
	if s.Advance() {
		t.Error("Advance should be ignored while inactive")
	}

	s.Start()
	s.Pause()
	if s.Advance() {
		t.Error("Advance should be ignored while paused")
	}

	s.Resume()
	if !s.Advance() {
		t.Error("Advance should work while active")
	}
	if got := s.Snapshot().CurrentStepIndex; got != 1 {
		t.Errorf("Expected index 1, got %d", got)
	}
}

func TestPauseResume(t *testing.T) {
	s := NewDefaultStore()
	if s.Pause() {
		t.Error("Pause should fail while inactive")
	}
	if s.Resume() {
		t.Error("Resume should fail while inactive")
	}

	s.Start()
	if !s.Pause() || s.State() != StatePaused {
		t.Fatalf("Expected paused, got %s", s.State())
	}
	if s.Pause() {
		t.Error("Second pause should be a no-op")
	}
	if !s.Resume() || s.State() != StateActive {
		t.Fatalf("Expected active, got %s", s.State())
	}
}

func TestModalVisibilityRules(t *testing.T) {
	s := NewDefaultStore()

	// inactive 时不能显示弹窗
	s.SetModalVisible(true)
	if s.Snapshot().ShowModal {
		t.Error("Modal must stay hidden while inactive")
	}
	s.ToggleModal()
	if s.Snapshot().ShowModal {
		t.Error("Toggle must not show modal while inactive")
	}

	s.Start()
	s.ToggleModal()
	if s.Snapshot().ShowModal {
		t.Error("Expected toggle to hide the modal")
	}
	s.ToggleModal()
	if !s.Snapshot().ShowModal {
		t.Error("Expected toggle to show the modal")
	}

	// 暂停时仍可显示
	s.Pause()
	s.SetModalVisible(false)
	s.SetModalVisible(true)
	if !s.Snapshot().ShowModal {
		t.Error("Modal may be shown while paused")
	}

	s.Resume()
	driveAll(s)
	s.SetModalVisible(true)
	if s.Snapshot().ShowModal {
		t.Error("Modal must stay hidden once completed")
	}
}

func TestResetRestoresInitialState(t *testing.T) {
	econ := newFakeEconomy()
	s := NewDefaultStore(WithEconomy(econ))
	s.Start()
	s.Trigger(EventNextButton)
	s.Trigger(EventMovement)

	s.Reset()

	rs := s.Snapshot()
	if rs.State != StateInactive || rs.CurrentStepIndex != 0 || rs.ShowModal {
		t.Errorf("Unexpected state after reset: %+v", rs)
	}
	if rs.CompletedCount() != 0 {
		t.Errorf("Expected no completed steps after reset, got %d", rs.CompletedCount())
	}

	// Reset 后重新开始会再次发放奖励
	s.Start()
	s.Trigger(EventNextButton)
	if econ.Balance() != 50+100+50 {
		t.Errorf("Expected balance 200, got %d", econ.Balance())
	}
}

// TestStartWithoutResetDoesNotReward 已完成的步骤不重复发放奖励
func TestStartWithoutResetDoesNotReward(t *testing.T) {
	econ := newFakeEconomy()
	s := NewDefaultStore(WithEconomy(econ))
	s.Start()
	s.Trigger(EventNextButton)
	s.Trigger(EventMovement)

	s.Start()
	if got := s.Snapshot().CurrentStepIndex; got != 0 {
		t.Fatalf("Start should rewind to index 0, got %d", got)
	}
	s.Trigger(EventNextButton)
	s.Trigger(EventMovement)

	if econ.Balance() != 150 {
		t.Errorf("Expected balance 150, got %d", econ.Balance())
	}
	if len(econ.credits) != 2 {
		t.Errorf("Expected 2 credits, got %v", econ.credits)
	}
}

func TestUpdateStep(t *testing.T) {
	s := NewDefaultStore()
	s.Start()

	title := "Hello"
	if err := s.UpdateStep(1, StepPatch{Title: &title}); err != nil {
		t.Fatalf("UpdateStep failed: %v", err)
	}
	rs := s.Snapshot()
	if rs.Steps[0].Title != "Hello" {
		t.Errorf("Expected patched title, got %q", rs.Steps[0].Title)
	}
	if rs.CurrentStepIndex != 0 {
		t.Error("UpdateStep must not move the index")
	}

	if err := s.UpdateStep(42, StepPatch{Title: &title}); !errors.Is(err, ErrStepNotFound) {
		t.Errorf("Expected ErrStepNotFound, got %v", err)
	}

	if err := s.MarkStepCompleted(3); err != nil {
		t.Fatalf("MarkStepCompleted failed: %v", err)
	}
	undone := false
	if err := s.UpdateStep(3, StepPatch{Completed: &undone}); !errors.Is(err, ErrCompletedRevert) {
		t.Errorf("Expected ErrCompletedRevert, got %v", err)
	}
	if !s.Snapshot().Steps[2].Completed {
		t.Error("Step 3 should remain completed")
	}
}

// TestMarkStepCompletedNoReward 直接标记完成不发放奖励，推进时也不再奖励
func TestMarkStepCompletedNoReward(t *testing.T) {
	econ := newFakeEconomy()
	s := NewDefaultStore(WithEconomy(econ))
	s.Start()

	if err := s.MarkStepCompleted(1); err != nil {
		t.Fatalf("MarkStepCompleted failed: %v", err)
	}
	if econ.Balance() != 0 {
		t.Errorf("Expected no reward, got balance %d", econ.Balance())
	}

	s.Trigger(EventNextButton)
	if econ.Balance() != 0 {
		t.Errorf("Already-completed step must not reward, got balance %d", econ.Balance())
	}
	if s.Snapshot().CurrentStepIndex != 1 {
		t.Error("Index should still advance")
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	s := NewDefaultStore()
	s.Start()
	rs := s.Snapshot()
	rs.Steps[0].Completed = true
	rs.Steps[0].Title = "mutated"

	fresh := s.Snapshot()
	if fresh.Steps[0].Completed || fresh.Steps[0].Title == "mutated" {
		t.Error("Mutating a snapshot must not affect the store")
	}
}

func TestSubscribeRevision(t *testing.T) {
	s := NewDefaultStore()

	var got []RunState
	unsubscribe := s.Subscribe(func(rs RunState) {
		got = append(got, rs)
	})

	s.Start()
	s.Trigger(EventMovement) // 不匹配，不通知
	s.Trigger(EventNextButton)

	if len(got) != 2 {
		t.Fatalf("Expected 2 notifications, got %d", len(got))
	}
	if got[0].Revision >= got[1].Revision {
		t.Errorf("Expected increasing revisions, got %d then %d", got[0].Revision, got[1].Revision)
	}
	if got[1].CurrentStepIndex != 1 {
		t.Errorf("Expected notification for index 1, got %d", got[1].CurrentStepIndex)
	}

	unsubscribe()
	s.Trigger(EventMovement)
	if len(got) != 2 {
		t.Errorf("Expected no notification after unsubscribe, got %d", len(got))
	}
}

// TestListenerMayReadStore 监听者在锁外执行，可以读取 Store
func TestListenerMayReadStore(t *testing.T) {
	s := NewDefaultStore()
	var state State
	s.Subscribe(func(RunState) {
		state = s.State()
	})
	s.Start()
	if state != StateActive {
		t.Errorf("Expected listener to observe active, got %s", state)
	}
}

func TestConcurrentTriggers(t *testing.T) {
	econ := newFakeEconomy()
	s := NewDefaultStore(WithEconomy(econ))
	s.Start()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := 0; n < 50; n++ {
				for _, step := range DefaultCatalog() {
					s.TriggerAt(step.Trigger, step.Location)
				}
				_ = s.Snapshot()
			}
		}()
	}
	wg.Wait()

	rs := s.Snapshot()
	if rs.State != StateCompleted {
		t.Fatalf("Expected completed, got %s", rs.State)
	}
	if econ.Balance() != CatalogCoinTotal(DefaultCatalog()) {
		t.Errorf("Expected balance %d, got %d", CatalogCoinTotal(DefaultCatalog()), econ.Balance())
	}
	if econ.firstLoginClear != 1 {
		t.Errorf("Expected first-login flag cleared once, got %d", econ.firstLoginClear)
	}
}

func TestCurrentStepOutOfRangePanics(t *testing.T) {
	s := NewDefaultStore()
	s.index = 99

	defer func() {
		if recover() == nil {
			t.Error("Expected panic for out-of-range index")
		}
	}()
	s.currentStepLocked()
}

func TestRunStateHelpers(t *testing.T) {
	s := NewDefaultStore()
	s.Start()
	s.Trigger(EventNextButton)

	rs := s.Snapshot()
	step, ok := rs.CurrentStep()
	if !ok || step.ID != 2 {
		t.Errorf("Expected current step 2, got %+v ok=%v", step, ok)
	}
	if cur, total := rs.Progress(); cur != 2 || total != 9 {
		t.Errorf("Progress = %d/%d, want 2/9", cur, total)
	}
	if rs.CompletedCount() != 1 {
		t.Errorf("CompletedCount = %d, want 1", rs.CompletedCount())
	}
	if rs.IsLastStep() {
		t.Error("Step 2 is not the last step")
	}

	if _, ok := (RunState{CurrentStepIndex: 3}).CurrentStep(); ok {
		t.Error("Expected no current step for empty run state")
	}
}
