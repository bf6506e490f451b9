//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
// 此文件仅在使用 -tags mobile 构建时编译。
//
//	# Android
//	cp -r data mobile/ && ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.decker.nutriquest -o build/android/nutriquest.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	cp -r data mobile/ && ebitenmobile bind -target ios -tags mobile -o build/ios/NutriQuest.xcframework -v ./mobile
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/decker502/nutriquest/pkg/app"
	"github.com/decker502/nutriquest/pkg/config"
	"github.com/decker502/nutriquest/pkg/embedded"
)

func init() {
	embedded.Init(dataFS)

	// 移动端只使用 gdata 存档，语言等仍可通过环境变量调整
	cfg, err := config.LoadAppConfig()
	if err != nil {
		log.Printf("[Mobile] Warning: %v (using defaults)", err)
		cfg = config.AppConfig{LocationPolicy: "lenient", Lang: "en"}
	}
	cfg.SaveBackend = config.SaveBackendGdata
	cfg.Verbose = true

	appConfig, _, err := app.Bootstrap(cfg)
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	gameApp, err := app.NewApp(appConfig)
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	// 注册游戏到 ebitenmobile
	mobile.SetGame(gameApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
