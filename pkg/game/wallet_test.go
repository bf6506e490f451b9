package game

import (
	"sync"
	"testing"

	"github.com/decker502/nutriquest/pkg/tutorial"
)

var _ tutorial.Economy = (*Wallet)(nil)

func TestWalletCreditAndSpend(t *testing.T) {
	w := NewWallet(100, true)

	w.Credit(50)
	w.Credit(0)
	w.Credit(-10)
	if got := w.Balance(); got != 150 {
		t.Fatalf("Balance = %d, want 150", got)
	}

	if !w.Spend(120) {
		t.Fatal("Expected Spend(120) to succeed")
	}
	if w.Spend(31) {
		t.Error("Expected Spend(31) to fail with 30 coins")
	}
	if got := w.Balance(); got != 30 {
		t.Errorf("Balance = %d, want 30 (failed spend must not deduct)", got)
	}
}

func TestWalletNegativeStart(t *testing.T) {
	if got := NewWallet(-5, false).Balance(); got != 0 {
		t.Errorf("Balance = %d, want 0", got)
	}
}

func TestWalletFirstLoginFlag(t *testing.T) {
	w := NewWallet(0, true)
	if !w.IsFirstLogin() {
		t.Fatal("Expected first login")
	}
	w.ClearFirstLoginFlag()
	w.ClearFirstLoginFlag()
	if w.IsFirstLogin() {
		t.Error("Expected first-login flag cleared")
	}
}

// TestWalletNilSafe nil 钱包的所有方法都不应 panic
func TestWalletNilSafe(t *testing.T) {
	var w *Wallet
	w.Credit(10)
	w.ClearFirstLoginFlag()
	if w.Balance() != 0 || w.Spend(1) || w.IsFirstLogin() {
		t.Error("Expected zero values from nil wallet")
	}
}

func TestWalletConcurrentCredit(t *testing.T) {
	w := NewWallet(0, false)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.Credit(2)
		}()
	}
	wg.Wait()
	if got := w.Balance(); got != 100 {
		t.Errorf("Balance = %d, want 100", got)
	}
}
