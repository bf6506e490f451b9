package game

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/decker502/nutriquest/pkg/tutorial"
)

// EventSink 游戏事件上报入口
// 移动、建筑、商店等协作者只依赖这个接口，不需要知道教学状态
type EventSink interface {
	Trigger(kind tutorial.EventKind) bool
	TriggerAt(kind tutorial.EventKind, location string) bool
}

// LastPlayerProvider 可选接口：存档后端能记住上次游玩的玩家
type LastPlayerProvider interface {
	LastPlayer() string
}

// SessionOptions 会话配置
type SessionOptions struct {
	Steps          []tutorial.Step         // 教学目录，nil 时使用 DefaultCatalog
	LocationPolicy tutorial.LocationPolicy // enter_building 地点匹配策略
	StartingCoins  int                     // 新玩家初始金币
	NoAutosave     bool                    // 关闭教学进度变化时的自动存档
}

// Session 单个玩家的游戏会话
//
// 持有：
//   - Wallet：玩家经济（教学奖励入账的地方）
//   - tutorial.Store：教学状态
//   - ProgressStore：存档后端
//
// 教学进度每次变化都会自动存档（可关闭），退出时调用 Close 做最后一次保存。
type Session struct {
	playerID string
	wallet   *Wallet
	tutorial *tutorial.Store
	store    ProgressStore

	mu            sync.Mutex
	savedRevision uint64
	unsubscribe   func()
	closed        bool
}

// OpenSession 打开玩家会话
//
// 流程：
//  1. 读取存档；没有存档则视为首次登录的新玩家
//  2. 恢复钱包和教学进度
//  3. 首次登录且教学尚未开始时自动开始教学
//  4. 订阅教学状态，变化时自动存档
//
// 参数：
//   - ctx: 上下文
//   - store: 存档后端
//   - playerID: 玩家ID
//   - opts: 会话配置
func OpenSession(ctx context.Context, store ProgressStore, playerID string, opts SessionOptions) (*Session, error) {
	if store == nil {
		return nil, fmt.Errorf("progress store is required")
	}
	if err := ValidatePlayerID(playerID); err != nil {
		return nil, err
	}

	steps := opts.Steps
	if steps == nil {
		steps = tutorial.DefaultCatalog()
	}
	tutorialStore, err := tutorial.NewStore(steps, tutorial.WithLocationPolicy(opts.LocationPolicy))
	if err != nil {
		return nil, err
	}

	save, err := store.Load(ctx, playerID)
	isNew := false
	switch {
	case errors.Is(err, ErrSaveNotFound):
		isNew = true
		save = &PlayerSave{PlayerID: playerID, Coins: opts.StartingCoins, FirstLogin: true}
		log.Printf("[Session] New player %s", playerID)
	case err != nil:
		return nil, fmt.Errorf("failed to open session for %s: %w", playerID, err)
	default:
		if err := tutorialStore.Restore(save.Tutorial); err != nil {
			return nil, fmt.Errorf("failed to open session for %s: %w", playerID, err)
		}
		log.Printf("[Session] Loaded player %s (coins=%d, firstLogin=%v, tutorial=%s)",
			playerID, save.Coins, save.FirstLogin, tutorialStore.State())
	}

	wallet := NewWallet(save.Coins, save.FirstLogin)
	tutorialStore.SetEconomy(wallet)

	s := &Session{
		playerID: playerID,
		wallet:   wallet,
		tutorial: tutorialStore,
		store:    store,
	}

	if wallet.IsFirstLogin() && tutorialStore.State() == tutorial.StateInactive {
		tutorialStore.Start()
	}
	s.savedRevision = tutorialStore.Snapshot().Revision

	if isNew || wallet.IsFirstLogin() {
		if err := s.Save(ctx); err != nil {
			return nil, err
		}
	}

	if !opts.NoAutosave {
		s.unsubscribe = tutorialStore.Subscribe(s.autosave)
	}
	return s, nil
}

// PlayerID 返回玩家ID
func (s *Session) PlayerID() string {
	return s.playerID
}

// Wallet 返回玩家钱包
func (s *Session) Wallet() *Wallet {
	return s.wallet
}

// Tutorial 返回教学状态存储
func (s *Session) Tutorial() *tutorial.Store {
	return s.tutorial
}

// Events 返回事件上报入口
func (s *Session) Events() EventSink {
	return s.tutorial
}

// PlayerSave 生成当前存档数据
func (s *Session) PlayerSave() *PlayerSave {
	return &PlayerSave{
		PlayerID:   s.playerID,
		Coins:      s.wallet.Balance(),
		FirstLogin: s.wallet.IsFirstLogin(),
		Tutorial:   s.tutorial.Progress(),
		UpdatedAt:  time.Now().UTC(),
	}
}

// Save 立即保存
func (s *Session) Save(ctx context.Context) error {
	revision := s.tutorial.Snapshot().Revision
	if err := s.store.Save(ctx, s.PlayerSave()); err != nil {
		return fmt.Errorf("failed to save player %s: %w", s.playerID, err)
	}

	s.mu.Lock()
	if revision > s.savedRevision {
		s.savedRevision = revision
	}
	s.mu.Unlock()
	return nil
}

// Close 取消自动存档并做最后一次保存，重复调用无效果
func (s *Session) Close(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	unsubscribe := s.unsubscribe
	s.unsubscribe = nil
	s.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	if err := s.Save(ctx); err != nil {
		return err
	}
	log.Printf("[Session] Closed player %s", s.playerID)
	return nil
}

// autosave 教学状态变化时保存，过期的快照（版本号不大于已保存版本）直接跳过
func (s *Session) autosave(rs tutorial.RunState) {
	s.mu.Lock()
	stale := s.closed || rs.Revision <= s.savedRevision
	s.mu.Unlock()
	if stale {
		return
	}

	if err := s.Save(context.Background()); err != nil {
		log.Printf("[Session] Warning: autosave failed: %v", err)
	}
}
