// Package cli 实现 nutriquestctl 命令行工具
//
// 工具直接读写游戏存档，用于查看教学目录、检查和重置玩家进度，
// 以及离线重放一串游戏事件观察教学如何推进。
package cli

import (
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"

	"github.com/decker502/nutriquest/pkg/config"
	"github.com/decker502/nutriquest/pkg/storage"
)

// Version is set at build time via ldflags.
var Version = "dev"

// openBackend 打开存档后端，测试中可替换
var openBackend = storage.Open

// globalOptions 所有子命令共用的参数
type globalOptions struct {
	backend    string
	sqlitePath string
	verbose    bool
}

func (o *globalOptions) open() (*storage.Backend, error) {
	b, err := openBackend(o.backend, o.sqlitePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s backend: %w", o.backend, err)
	}
	return b, nil
}

// NewRootCommand 创建命令树
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "nutriquestctl",
		Short: "Inspect and edit NutriQuest tutorial progress",
		Long: `nutriquestctl works directly on NutriQuest save data.

It prints the tutorial catalog, shows or resets a player's saved progress,
and replays a list of game events against a player's tutorial offline.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if !opts.verbose {
				log.SetOutput(io.Discard)
			}
		},
	}
	root.Version = Version
	root.SetVersionTemplate("nutriquestctl version {{.Version}}\n")

	defaults := config.AppConfig{SaveBackend: config.SaveBackendGdata, SQLitePath: "nutriquest.db"}
	if envCfg, err := config.LoadAppConfig(); err == nil {
		defaults = envCfg
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.backend, "backend", defaults.SaveBackend, "save backend: gdata, sqlite, memory")
	flags.StringVar(&opts.sqlitePath, "sqlite-path", defaults.SQLitePath, "database file for the sqlite backend")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "show log output")

	root.AddCommand(
		newCatalogCommand(),
		newProgressCommand(opts),
		newReplayCommand(opts),
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}
