package tutorial

import (
	"fmt"
	"log"

	"github.com/decker502/nutriquest/pkg/config"
	"github.com/decker502/nutriquest/pkg/embedded"
)

// LoadCatalog 加载教学目录
//
// 参数：
//   - path: YAML 文件路径；为空时读取嵌入的 data/tutorial/catalog.yaml，
//     嵌入数据不可用时使用 DefaultCatalog
//
// 返回：
//   - []Step: 校验过的步骤列表
//   - error: 读取、解析或校验失败
func LoadCatalog(path string) ([]Step, error) {
	var cfg *config.TutorialCatalogConfig
	switch {
	case path != "":
		loaded, err := config.LoadTutorialCatalog(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	case embedded.Exists(config.DefaultTutorialCatalogPath):
		data, err := embedded.ReadFile(config.DefaultTutorialCatalogPath)
		if err != nil {
			return nil, err
		}
		loaded, err := config.ParseTutorialCatalog(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", config.DefaultTutorialCatalogPath, err)
		}
		cfg = loaded
	default:
		log.Printf("[TutorialStore] No catalog file, using built-in catalog")
		return DefaultCatalog(), nil
	}

	steps, err := StepsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	log.Printf("[TutorialStore] Loaded catalog with %d steps", len(steps))
	return steps, nil
}
