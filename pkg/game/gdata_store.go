package game

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// 存储路径常量
const (
	playersObject     = "players"
	playerIndexObject = "player_index" // 独立对象，避免与 players/<id>.yaml 重名
	playerIndexProp   = "players.yaml"
	playerPropSuffix  = ".yaml"
	defaultGdataAppID = "nutriquest"
)

// playerIndex 玩家索引（gdata 没有列举功能，单独维护一份ID列表）
type playerIndex struct {
	Players    []string `yaml:"players"`    // 所有玩家ID
	LastPlayer string   `yaml:"lastPlayer"` // 上次游玩的玩家
}

// GdataProgressStore 基于 gdata 的跨平台存档
//
// 架构说明：
//   - 每个玩家一个属性文件 players/<id>.yaml
//   - player_index/players.yaml 保存玩家列表和上次游玩的玩家
//   - gdataManager 为 nil 时进入降级模式，退化为内存存档
type GdataProgressStore struct {
	mu           sync.Mutex
	gdataManager *gdata.Manager
	fallback     *MemoryProgressStore
}

// OpenGdataManager 打开 gdata 存储
//
// 失败不是致命错误：返回 nil，调用方应进入降级模式
func OpenGdataManager(appName string) *gdata.Manager {
	if appName == "" {
		appName = defaultGdataAppID
	}
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[GdataStore] Warning: failed to open gdata storage: %v (saves will not persist)", err)
		return nil
	}
	return manager
}

// NewGdataProgressStore 创建存档后端
//
// 参数：
//   - gdataManager: gdata 管理器，可为 nil（降级模式，仅内存存档）
func NewGdataProgressStore(gdataManager *gdata.Manager) *GdataProgressStore {
	store := &GdataProgressStore{gdataManager: gdataManager}
	if gdataManager == nil {
		store.fallback = NewMemoryProgressStore()
		log.Printf("[GdataStore] Running in degraded mode (memory only)")
	}
	return store
}

// Degraded 是否处于降级模式
func (s *GdataProgressStore) Degraded() bool {
	return s.gdataManager == nil
}

// Load 读取玩家存档
func (s *GdataProgressStore) Load(ctx context.Context, playerID string) (*PlayerSave, error) {
	if s.fallback != nil {
		return s.fallback.Load(ctx, playerID)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := ValidatePlayerID(playerID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prop := playerID + playerPropSuffix
	if !s.gdataManager.ObjectPropExists(playersObject, prop) {
		return nil, fmt.Errorf("player %s: %w", playerID, ErrSaveNotFound)
	}

	data, err := s.gdataManager.LoadObjectProp(playersObject, prop)
	if err != nil {
		return nil, fmt.Errorf("failed to load save for player %s: %w", playerID, err)
	}

	var save PlayerSave
	if err := yaml.Unmarshal(data, &save); err != nil {
		return nil, fmt.Errorf("failed to parse save for player %s: %w", playerID, err)
	}
	return &save, nil
}

// Save 写入玩家存档，并更新玩家索引
func (s *GdataProgressStore) Save(ctx context.Context, save *PlayerSave) error {
	if s.fallback != nil {
		return s.fallback.Save(ctx, save)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := ValidatePlayerID(save.PlayerID); err != nil {
		return err
	}

	data, err := yaml.Marshal(save)
	if err != nil {
		return fmt.Errorf("failed to marshal save: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.gdataManager.SaveObjectProp(playersObject, save.PlayerID+playerPropSuffix, data); err != nil {
		return fmt.Errorf("failed to write save for player %s: %w", save.PlayerID, err)
	}

	index, err := s.loadIndexLocked()
	if err != nil {
		return err
	}
	if !containsString(index.Players, save.PlayerID) {
		index.Players = append(index.Players, save.PlayerID)
		sort.Strings(index.Players)
	}
	index.LastPlayer = save.PlayerID
	return s.saveIndexLocked(index)
}

// Delete 删除玩家存档
func (s *GdataProgressStore) Delete(ctx context.Context, playerID string) error {
	if s.fallback != nil {
		return s.fallback.Delete(ctx, playerID)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := ValidatePlayerID(playerID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prop := playerID + playerPropSuffix
	if !s.gdataManager.ObjectPropExists(playersObject, prop) {
		return fmt.Errorf("player %s: %w", playerID, ErrSaveNotFound)
	}
	if err := s.gdataManager.DeleteObjectProp(playersObject, prop); err != nil {
		return fmt.Errorf("failed to delete save for player %s: %w", playerID, err)
	}

	index, err := s.loadIndexLocked()
	if err != nil {
		return err
	}
	kept := index.Players[:0]
	for _, id := range index.Players {
		if id != playerID {
			kept = append(kept, id)
		}
	}
	index.Players = kept
	if index.LastPlayer == playerID {
		index.LastPlayer = ""
	}
	return s.saveIndexLocked(index)
}

// List 返回所有玩家ID
func (s *GdataProgressStore) List(ctx context.Context) ([]string, error) {
	if s.fallback != nil {
		return s.fallback.List(ctx)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	index, err := s.loadIndexLocked()
	if err != nil {
		return nil, err
	}
	return append([]string(nil), index.Players...), nil
}

// LastPlayer 返回上次游玩的玩家ID，没有则返回空字符串
func (s *GdataProgressStore) LastPlayer() string {
	if s.fallback != nil {
		return ""
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	index, err := s.loadIndexLocked()
	if err != nil {
		log.Printf("[GdataStore] Warning: %v", err)
		return ""
	}
	return index.LastPlayer
}

func (s *GdataProgressStore) loadIndexLocked() (*playerIndex, error) {
	index := &playerIndex{Players: []string{}}
	if !s.gdataManager.ObjectPropExists(playerIndexObject, playerIndexProp) {
		return index, nil
	}
	data, err := s.gdataManager.LoadObjectProp(playerIndexObject, playerIndexProp)
	if err != nil {
		return nil, fmt.Errorf("failed to load player index: %w", err)
	}
	if err := yaml.Unmarshal(data, index); err != nil {
		return nil, fmt.Errorf("failed to parse player index: %w", err)
	}
	return index, nil
}

func (s *GdataProgressStore) saveIndexLocked(index *playerIndex) error {
	data, err := yaml.Marshal(index)
	if err != nil {
		return fmt.Errorf("failed to marshal player index: %w", err)
	}
	if err := s.gdataManager.SaveObjectProp(playerIndexObject, playerIndexProp, data); err != nil {
		return fmt.Errorf("failed to write player index: %w", err)
	}
	return nil
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
