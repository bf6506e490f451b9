// Package storage 按配置选择存档后端
//
// 支持的后端：
//   - gdata：跨平台存档目录（默认，桌面和移动端都可用）
//   - sqlite：单文件数据库（见 storage/sqlite）
//   - memory：仅内存，进程退出后丢失
package storage

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/nutriquest/pkg/config"
	"github.com/decker502/nutriquest/pkg/game"
	"github.com/decker502/nutriquest/pkg/storage/sqlite"
	"github.com/decker502/nutriquest/pkg/utils"
)

// GdataAppName gdata 存档目录名
const GdataAppName = "nutriquest"

// Backend 打开的存档后端
type Backend struct {
	Name  string
	Store game.ProgressStore

	// Gdata gdata 管理器，打开失败或未使用时为 nil
	Gdata *gdata.Manager

	closer func() error
}

// Open 按后端名称打开存档
//
// 参数：
//   - backend: config.SaveBackendGdata / SaveBackendSQLite / SaveBackendMemory
//   - sqlitePath: sqlite 后端的数据库文件
//
// 返回：
//   - *Backend: 存档后端，用完后调用 Close
//   - error: 未知后端或数据库打开失败
func Open(backend, sqlitePath string) (*Backend, error) {
	switch backend {
	case config.SaveBackendGdata, "":
		if err := utils.EnsureStorageDir(); err != nil {
			return nil, fmt.Errorf("failed to prepare storage directory: %w", err)
		}
		manager := game.OpenGdataManager(GdataAppName)
		return &Backend{
			Name:  config.SaveBackendGdata,
			Store: game.NewGdataProgressStore(manager),
			Gdata: manager,
		}, nil
	case config.SaveBackendSQLite:
		store, err := sqlite.Open(sqlitePath)
		if err != nil {
			return nil, err
		}
		return &Backend{Name: backend, Store: store, closer: store.Close}, nil
	case config.SaveBackendMemory:
		return &Backend{Name: backend, Store: game.NewMemoryProgressStore()}, nil
	default:
		return nil, fmt.Errorf("unknown save backend %q", backend)
	}
}

// OpenFromConfig 使用应用配置打开存档
func OpenFromConfig(cfg config.AppConfig) (*Backend, error) {
	return Open(cfg.SaveBackend, cfg.SQLitePath)
}

// LastPlayer 返回上次游玩的玩家，后端不支持时返回空字符串
func (b *Backend) LastPlayer() string {
	if provider, ok := b.Store.(game.LastPlayerProvider); ok {
		return provider.LastPlayer()
	}
	return ""
}

// Close 关闭后端，重复调用无效果
func (b *Backend) Close() error {
	if b == nil || b.closer == nil {
		return nil
	}
	closer := b.closer
	b.closer = nil
	return closer()
}
