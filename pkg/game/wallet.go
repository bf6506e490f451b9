package game

import "sync"

// Wallet 玩家经济数据：金币余额和首次登录标记
//
// 实现 tutorial.Economy，教学奖励通过 Credit 入账。
// 所有方法对 nil 接收者安全（协作者尚未初始化时静默忽略）。
type Wallet struct {
	mu         sync.Mutex
	coins      int
	firstLogin bool
}

// NewWallet 创建钱包
//
// 参数：
//   - coins: 初始金币
//   - firstLogin: 是否为首次登录的新玩家
func NewWallet(coins int, firstLogin bool) *Wallet {
	if coins < 0 {
		coins = 0
	}
	return &Wallet{coins: coins, firstLogin: firstLogin}
}

// Balance 返回当前金币
func (w *Wallet) Balance() int {
	if w == nil {
		return 0
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.coins
}

// Credit 增加金币，非正数忽略
func (w *Wallet) Credit(amount int) {
	if w == nil || amount <= 0 {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.coins += amount
}

// Spend 扣除金币，如果金币不足返回 false
// 只有当金币充足时才会扣除
func (w *Wallet) Spend(amount int) bool {
	if w == nil || amount < 0 {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.coins < amount {
		return false
	}
	w.coins -= amount
	return true
}

// IsFirstLogin 是否为首次登录（新手引导尚未完成）
func (w *Wallet) IsFirstLogin() bool {
	if w == nil {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.firstLogin
}

// ClearFirstLoginFlag 清除首次登录标记
func (w *Wallet) ClearFirstLoginFlag() {
	if w == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.firstLogin = false
}
