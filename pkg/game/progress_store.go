package game

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"sync"
	"time"

	"github.com/decker502/nutriquest/pkg/tutorial"
)

// ErrSaveNotFound 玩家没有存档
var ErrSaveNotFound = errors.New("player save not found")

// PlayerSave 玩家存档
//
// 保存内容：
//   - 金币余额
//   - 首次登录标记（用于区分新玩家和老玩家）
//   - 新手引导进度
type PlayerSave struct {
	PlayerID   string            `yaml:"playerId"`   // 玩家ID
	Coins      int               `yaml:"coins"`      // 金币
	FirstLogin bool              `yaml:"firstLogin"` // 是否首次登录
	Tutorial   tutorial.Progress `yaml:"tutorial"`   // 教学进度
	UpdatedAt  time.Time         `yaml:"updatedAt"`  // 最后保存时间
}

// ProgressStore 玩家存档后端
type ProgressStore interface {
	// Load 读取玩家存档，不存在时返回 ErrSaveNotFound
	Load(ctx context.Context, playerID string) (*PlayerSave, error)
	// Save 写入（覆盖）玩家存档
	Save(ctx context.Context, save *PlayerSave) error
	// Delete 删除玩家存档，不存在时返回 ErrSaveNotFound
	Delete(ctx context.Context, playerID string) error
	// List 返回所有玩家ID（排序）
	List(ctx context.Context) ([]string, error)
}

// playerIDPattern 玩家ID只允许字母、数字、下划线和连字符（uuid 满足）
var playerIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ValidatePlayerID 检查玩家ID是否可以作为存档键
func ValidatePlayerID(playerID string) error {
	if !playerIDPattern.MatchString(playerID) {
		return fmt.Errorf("invalid player id %q: use 1-64 letters, digits, '-' or '_'", playerID)
	}
	return nil
}

// MemoryProgressStore 内存存档（测试和降级模式使用，进程退出即丢失）
type MemoryProgressStore struct {
	mu    sync.Mutex
	saves map[string]PlayerSave
}

// NewMemoryProgressStore 创建内存存档
func NewMemoryProgressStore() *MemoryProgressStore {
	return &MemoryProgressStore{saves: make(map[string]PlayerSave)}
}

// Load 读取存档副本
func (m *MemoryProgressStore) Load(ctx context.Context, playerID string) (*PlayerSave, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	save, ok := m.saves[playerID]
	if !ok {
		return nil, fmt.Errorf("player %s: %w", playerID, ErrSaveNotFound)
	}
	return copySave(&save), nil
}

// Save 保存存档副本
func (m *MemoryProgressStore) Save(ctx context.Context, save *PlayerSave) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := ValidatePlayerID(save.PlayerID); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves[save.PlayerID] = *copySave(save)
	return nil
}

// Delete 删除存档
func (m *MemoryProgressStore) Delete(ctx context.Context, playerID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.saves[playerID]; !ok {
		return fmt.Errorf("player %s: %w", playerID, ErrSaveNotFound)
	}
	delete(m.saves, playerID)
	return nil
}

// List 返回排序后的玩家ID
func (m *MemoryProgressStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.saves))
	for id := range m.saves {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func copySave(save *PlayerSave) *PlayerSave {
	out := *save
	out.Tutorial.CompletedSteps = append([]int(nil), save.Tutorial.CompletedSteps...)
	return &out
}
