// Package sqlite 提供基于 SQLite 的玩家存档后端
//
// 表结构由 migrations 目录下的脚本创建，打开时自动执行未应用的迁移。
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/decker502/nutriquest/pkg/game"
	"github.com/decker502/nutriquest/pkg/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store SQLite 存档后端，实现 game.ProgressStore
type Store struct {
	sqlDB *sql.DB
}

var _ game.ProgressStore = (*Store)(nil)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

// Open 打开数据库文件并执行迁移
//
// 参数：
//   - path: 数据库文件路径，不存在时自动创建
//
// 返回：
//   - *Store: 存档后端
//   - error: 路径为空、打开或迁移失败
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := "file:" + cleanPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// 单写者：游戏进程内只有一个会话写入
	sqlDB.SetMaxOpenConns(1)

	ctx := context.Background()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(ctx, sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	log.Printf("[SQLiteStore] Opened %s", cleanPath)
	return &Store{sqlDB: sqlDB}, nil
}

// Close 关闭数据库连接
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Load 读取玩家存档及已完成步骤，不存在时返回 game.ErrSaveNotFound
func (s *Store) Load(ctx context.Context, playerID string) (*game.PlayerSave, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	var (
		save       game.PlayerSave
		firstLogin int
		showModal  int
		updatedAt  int64
	)
	row := s.sqlDB.QueryRowContext(ctx, `
SELECT player_id, coins, first_login, tutorial_state, current_step, show_modal, updated_at
FROM player_saves WHERE player_id = ?`, playerID)
	err := row.Scan(&save.PlayerID, &save.Coins, &firstLogin, &save.Tutorial.State,
		&save.Tutorial.CurrentStep, &showModal, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("player %s: %w", playerID, game.ErrSaveNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load player save %s: %w", playerID, err)
	}
	save.FirstLogin = firstLogin != 0
	save.Tutorial.ShowModal = showModal != 0
	save.UpdatedAt = fromMillis(updatedAt)

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT step_id FROM tutorial_completed_steps WHERE player_id = ? ORDER BY step_id`, playerID)
	if err != nil {
		return nil, fmt.Errorf("load completed steps %s: %w", playerID, err)
	}
	defer rows.Close()

	save.Tutorial.CompletedSteps = []int{}
	for rows.Next() {
		var stepID int
		if err := rows.Scan(&stepID); err != nil {
			return nil, fmt.Errorf("scan completed step: %w", err)
		}
		save.Tutorial.CompletedSteps = append(save.Tutorial.CompletedSteps, stepID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate completed steps: %w", err)
	}
	return &save, nil
}

// Save 在一个事务内写入玩家存档，并替换已完成步骤
func (s *Store) Save(ctx context.Context, save *game.PlayerSave) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if save == nil {
		return fmt.Errorf("save is required")
	}
	if err := game.ValidatePlayerID(save.PlayerID); err != nil {
		return err
	}
	updatedAt := save.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
INSERT INTO player_saves (player_id, coins, first_login, tutorial_state, current_step, show_modal, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(player_id) DO UPDATE SET
    coins = excluded.coins,
    first_login = excluded.first_login,
    tutorial_state = excluded.tutorial_state,
    current_step = excluded.current_step,
    show_modal = excluded.show_modal,
    updated_at = excluded.updated_at`,
		save.PlayerID,
		save.Coins,
		boolToInt(save.FirstLogin),
		save.Tutorial.State,
		save.Tutorial.CurrentStep,
		boolToInt(save.Tutorial.ShowModal),
		toMillis(updatedAt),
	); err != nil {
		return fmt.Errorf("upsert player save %s: %w", save.PlayerID, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM tutorial_completed_steps WHERE player_id = ?`, save.PlayerID); err != nil {
		return fmt.Errorf("clear completed steps %s: %w", save.PlayerID, err)
	}
	for _, stepID := range save.Tutorial.CompletedSteps {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO tutorial_completed_steps (player_id, step_id) VALUES (?, ?)`,
			save.PlayerID, stepID,
		); err != nil {
			return fmt.Errorf("insert completed step %d: %w", stepID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit player save %s: %w", save.PlayerID, err)
	}
	return nil
}

// Delete 删除玩家存档（已完成步骤随外键级联删除）
func (s *Store) Delete(ctx context.Context, playerID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	res, err := s.sqlDB.ExecContext(ctx, `DELETE FROM player_saves WHERE player_id = ?`, playerID)
	if err != nil {
		return fmt.Errorf("delete player save %s: %w", playerID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete player save %s: %w", playerID, err)
	}
	if n == 0 {
		return fmt.Errorf("player %s: %w", playerID, game.ErrSaveNotFound)
	}
	return nil
}

// List 返回所有玩家ID（排序）
func (s *Store) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT player_id FROM player_saves ORDER BY player_id`)
	if err != nil {
		return nil, fmt.Errorf("list player saves: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan player id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// LastPlayer 返回最近保存的玩家ID，没有存档时返回空字符串
func (s *Store) LastPlayer() string {
	if s == nil || s.sqlDB == nil {
		return ""
	}
	var id string
	err := s.sqlDB.QueryRow(`SELECT player_id FROM player_saves ORDER BY updated_at DESC LIMIT 1`).Scan(&id)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Printf("[SQLiteStore] Warning: failed to query last player: %v", err)
		}
		return ""
	}
	return id
}
