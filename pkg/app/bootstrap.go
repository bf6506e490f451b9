package app

import (
	"fmt"
	"log"

	"github.com/decker502/nutriquest/pkg/config"
	"github.com/decker502/nutriquest/pkg/game"
	"github.com/decker502/nutriquest/pkg/storage"
	"github.com/decker502/nutriquest/pkg/tutorial"
)

// Bootstrap 根据启动配置准备存档、设置、文本和教学目录
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
//
// 返回：
//   - Config: 可直接传给 NewApp 的配置
//   - *storage.Backend: 存档后端，退出时调用 Close
//   - error: 配置无效或存档打开失败
func Bootstrap(cfg config.AppConfig) (Config, *storage.Backend, error) {
	if err := cfg.Validate(); err != nil {
		return Config{}, nil, err
	}
	policy, err := tutorial.ParseLocationPolicy(cfg.LocationPolicy)
	if err != nil {
		return Config{}, nil, err
	}
	steps, err := tutorial.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return Config{}, nil, fmt.Errorf("failed to load tutorial catalog: %w", err)
	}

	backend, err := storage.OpenFromConfig(cfg)
	if err != nil {
		return Config{}, nil, err
	}

	// 设置总是放在 gdata 目录里，与存档后端无关
	gdataManager := backend.Gdata
	if gdataManager == nil && cfg.SaveBackend != config.SaveBackendMemory {
		gdataManager = game.OpenGdataManager(storage.GdataAppName)
	}
	settings := game.NewSettingsManager(gdataManager)

	lang := cfg.Lang
	if lang == "" {
		lang = settings.GetSettings().Language
	}
	settings.SetLanguage(lang)

	texts, err := game.NewTutorialStrings(lang)
	if err != nil {
		log.Printf("[App] Warning: %v (using catalog text)", err)
		texts = nil
	}

	return Config{
		Verbose:  cfg.Verbose,
		PlayerID: cfg.Player,
		Store:    backend.Store,
		Settings: settings,
		Strings:  texts,
		Session: game.SessionOptions{
			Steps:          steps,
			LocationPolicy: policy,
		},
	}, backend, nil
}
