package game

import (
	"context"
	"errors"
	"log"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// NewPlayerID 生成新的玩家ID
func NewPlayerID() string {
	return uuid.NewString()
}

// Registry 按玩家ID管理打开的会话
// 同一玩家只会有一个会话，重复 Open 返回已打开的会话
type Registry struct {
	mu       sync.Mutex
	store    ProgressStore
	opts     SessionOptions
	sessions map[string]*Session
}

// NewRegistry 创建会话注册表
func NewRegistry(store ProgressStore, opts SessionOptions) *Registry {
	return &Registry{
		store:    store,
		opts:     opts,
		sessions: make(map[string]*Session),
	}
}

// Open 打开（或返回已打开的）玩家会话
func (r *Registry) Open(ctx context.Context, playerID string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[playerID]; ok {
		return s, nil
	}
	s, err := OpenSession(ctx, r.store, playerID, r.opts)
	if err != nil {
		return nil, err
	}
	r.sessions[playerID] = s
	return s, nil
}

// Get 返回已打开的会话
func (r *Registry) Get(playerID string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[playerID]
	return s, ok
}

// PlayerIDs 返回已打开会话的玩家ID（排序）
func (r *Registry) PlayerIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Close 关闭单个会话
func (r *Registry) Close(ctx context.Context, playerID string) error {
	r.mu.Lock()
	s, ok := r.sessions[playerID]
	delete(r.sessions, playerID)
	r.mu.Unlock()

	if !ok {
		return nil
	}
	return s.Close(ctx)
}

// CloseAll 关闭所有会话，返回合并后的错误
func (r *Registry) CloseAll(ctx context.Context) error {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[string]*Session)
	r.mu.Unlock()

	var errs []error
	for id, s := range sessions {
		if err := s.Close(ctx); err != nil {
			log.Printf("[Registry] Warning: failed to close session %s: %v", id, err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
