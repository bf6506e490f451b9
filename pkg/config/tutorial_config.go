package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultTutorialCatalogPath 默认教学目录配置路径（相对于嵌入的 data/ 目录）
const DefaultTutorialCatalogPath = "data/tutorial/catalog.yaml"

// TutorialCatalogConfig 教学目录配置
// 对应 data/tutorial/catalog.yaml
type TutorialCatalogConfig struct {
	Version int                  `yaml:"version"` // 配置版本，默认 1
	Steps   []TutorialStepConfig `yaml:"steps"`   // 按顺序排列的步骤
}

// TutorialStepConfig 单个教学步骤配置
type TutorialStepConfig struct {
	ID          int    `yaml:"id"`          // 步骤编号，省略时按顺序自动编号
	Title       string `yaml:"title"`       // 标题
	Content     string `yaml:"content"`     // 正文
	Task        string `yaml:"task"`        // 任务描述
	Trigger     string `yaml:"trigger"`     // 触发事件："next_button", "movement", "enter_building", "purchase_food", "cook_meal", "plant_seed"
	Location    string `yaml:"location"`    // 可选：enter_building 要求的地点，如 "market"
	RewardCoins int    `yaml:"rewardCoins"` // 可选：金币奖励
	RewardExp   int    `yaml:"rewardExp"`   // 可选：经验奖励（保留字段）
}

// LoadTutorialCatalog 从YAML文件加载教学目录
// 参数：
//
//	filepath - 配置文件路径
//
// 返回：
//
//	*TutorialCatalogConfig - 解析并校验后的配置
//	error - 读取、解析或校验失败时返回错误
func LoadTutorialCatalog(filepath string) (*TutorialCatalogConfig, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read tutorial catalog file %s: %w", filepath, err)
	}

	cfg, err := ParseTutorialCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath, err)
	}
	return cfg, nil
}

// ParseTutorialCatalog 从YAML数据解析教学目录（用于嵌入资源）
func ParseTutorialCatalog(data []byte) (*TutorialCatalogConfig, error) {
	var cfg TutorialCatalogConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse tutorial catalog YAML: %w", err)
	}

	applyTutorialDefaults(&cfg)

	if err := validateTutorialCatalog(&cfg); err != nil {
		return nil, fmt.Errorf("invalid tutorial catalog: %w", err)
	}
	return &cfg, nil
}

// applyTutorialDefaults 为缺失的可选字段设置默认值
func applyTutorialDefaults(cfg *TutorialCatalogConfig) {
	if cfg.Version == 0 {
		cfg.Version = 1
	}

	// 未写 id 的步骤按位置编号
	for i := range cfg.Steps {
		if cfg.Steps[i].ID == 0 {
			cfg.Steps[i].ID = i + 1
		}
	}
}

// validateTutorialCatalog 验证目录的完整性
// 触发器名称的合法性由 tutorial.StepsFromConfig 负责
func validateTutorialCatalog(cfg *TutorialCatalogConfig) error {
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported catalog version %d", cfg.Version)
	}

	if len(cfg.Steps) == 0 {
		return fmt.Errorf("at least one step is required")
	}

	for i, step := range cfg.Steps {
		if step.ID != i+1 {
			return fmt.Errorf("steps[%d]: id must be %d, got %d", i, i+1, step.ID)
		}
		if step.Title == "" {
			return fmt.Errorf("step %d: title is required", step.ID)
		}
		if step.Trigger == "" {
			return fmt.Errorf("step %d: trigger is required", step.ID)
		}
		if step.Location != "" && step.Trigger != "enter_building" {
			return fmt.Errorf("step %d: location is only valid for enter_building, got trigger %q", step.ID, step.Trigger)
		}
		if step.RewardCoins < 0 {
			return fmt.Errorf("step %d: rewardCoins cannot be negative, got %d", step.ID, step.RewardCoins)
		}
		if step.RewardExp < 0 {
			return fmt.Errorf("step %d: rewardExp cannot be negative, got %d", step.ID, step.RewardExp)
		}
	}

	return nil
}
