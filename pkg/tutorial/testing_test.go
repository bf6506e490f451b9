package tutorial

import "sync"

// fakeEconomy 记录奖励调用的测试用经济协作者
type fakeEconomy struct {
	mu              sync.Mutex
	coins           int
	credits         []int
	firstLogin      bool
	firstLoginClear int
}

func newFakeEconomy() *fakeEconomy {
	return &fakeEconomy{firstLogin: true}
}

func (f *fakeEconomy) Balance() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.coins
}

func (f *fakeEconomy) Credit(amount int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.coins += amount
	f.credits = append(f.credits, amount)
}

func (f *fakeEconomy) ClearFirstLoginFlag() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.firstLogin = false
	f.firstLoginClear++
}

// driveAll 按目录依次触发每一步的事件
func driveAll(s *Store) {
	for _, step := range DefaultCatalog() {
		s.TriggerAt(step.Trigger, step.Location)
	}
}
