package game

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/decker502/nutriquest/pkg/embedded"
	"github.com/decker502/nutriquest/pkg/tutorial"
)

// 界面文本键
const (
	KeyTutorialReward    = "TUTORIAL_REWARD"
	KeyTutorialNextHint  = "TUTORIAL_NEXT_HINT"
	KeyTutorialCompleted = "TUTORIAL_COMPLETED"
	KeyTutorialNextLabel = "TUTORIAL_NEXT_BUTTON"

	KeyActionPurchaseFood  = "ACTION_PURCHASE_FOOD"
	KeyActionNotEnoughCoin = "ACTION_NOT_ENOUGH_COINS"
	KeyActionCookMeal      = "ACTION_COOK_MEAL"
	KeyActionPlantSeed     = "ACTION_PLANT_SEED"
	KeyActionPrompt        = "ACTION_PROMPT"
	KeyHUDPaused           = "HUD_PAUSED"
)

// 支持的界面语言，第一个为默认语言
var supportedLanguages = []language.Tag{
	language.English,
	language.BrazilianPortuguese,
}

var languageFiles = map[language.Tag]string{
	language.English:             "data/strings/en.txt",
	language.BrazilianPortuguese: "data/strings/pt-BR.txt",
}

var languageMatcher = language.NewMatcher(supportedLanguages)

// 带数字的文本走 message.Printer，数字按语言分组显示
func init() {
	for _, entry := range []struct {
		tag           language.Tag
		key, template string
	}{
		{language.English, "Step %d of %d", "Step %d of %d"},
		{language.English, "%d coins", "%d coins"},
		{language.BrazilianPortuguese, "Step %d of %d", "Passo %d de %d"},
		{language.BrazilianPortuguese, "%d coins", "%d moedas"},
	} {
		if err := message.SetString(entry.tag, entry.key, entry.template); err != nil {
			log.Printf("[TutorialStrings] Warning: failed to register %q for %s: %v", entry.key, entry.tag, err)
		}
	}
}

// MatchLanguage 为用户偏好选择最接近的支持语言
//
// 参数：
//   - preferred: 语言标签或 Accept-Language 形式的列表，如 "pt-BR", "pt", "fr, en;q=0.8"
//
// 返回：
//   - language.Tag: 支持列表中的语言，无法匹配时返回英语
func MatchLanguage(preferred string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(preferred)
	if err != nil || len(tags) == 0 {
		return supportedLanguages[0]
	}
	_, index, _ := languageMatcher.Match(tags...)
	return supportedLanguages[index]
}

// TutorialStrings 教学文本管理器
// 从 data/strings/<lang>.txt 加载本地化文本，目录内置的英文文本作为兜底
type TutorialStrings struct {
	tag     language.Tag
	strings map[string]string // 键 -> 文本映射
	printer *message.Printer
}

// NewTutorialStrings 按语言偏好加载嵌入的文本文件
//
// 参数：
//   - preferred: 语言偏好（见 MatchLanguage）
//
// 返回：
//   - *TutorialStrings: 文本管理器
//   - error: 文件读取或解析失败
func NewTutorialStrings(preferred string) (*TutorialStrings, error) {
	tag := MatchLanguage(preferred)
	path := languageFiles[tag]

	file, err := embedded.Open(path)
	if err != nil {
		available, _ := embedded.Glob("data/strings/*.txt")
		return nil, fmt.Errorf("failed to open tutorial strings %s (available: %v): %w", path, available, err)
	}
	defer file.Close()

	ts, err := LoadTutorialStrings(tag, file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Printf("[TutorialStrings] Loaded %d strings for %s", len(ts.strings), tag)
	return ts, nil
}

// LoadTutorialStrings 从 reader 解析文本
//
// 文件格式：
//
//	[KEY]
//	文本内容
//
// 示例：
//
//	[TUTORIAL_STEP_1_TITLE]
//	Welcome to NutriQuest!
func LoadTutorialStrings(tag language.Tag, r io.Reader) (*TutorialStrings, error) {
	ts := &TutorialStrings{
		tag:     tag,
		strings: make(map[string]string),
		printer: message.NewPrinter(tag),
	}

	scanner := bufio.NewScanner(r)
	var currentKey string
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		// 键后面的一行就是值，即使它以 "[" 开头
		if currentKey != "" {
			ts.strings[currentKey] = line
			currentKey = ""
			continue
		}

		// 键定义：[KEY]，允许尾部带标签
		if strings.HasPrefix(line, "[") {
			if end := strings.Index(line, "]"); end > 1 {
				currentKey = strings.TrimSpace(line[1:end])
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tutorial strings: %w", err)
	}
	return ts, nil
}

// Language 返回当前语言
func (ts *TutorialStrings) Language() language.Tag {
	return ts.tag
}

// Lookup 查询文本
func (ts *TutorialStrings) Lookup(key string) (string, bool) {
	if ts == nil {
		return "", false
	}
	text, ok := ts.strings[key]
	return text, ok
}

// GetString 根据键获取文本，不存在时返回 "[key]"（调试用）
func (ts *TutorialStrings) GetString(key string) string {
	if text, ok := ts.Lookup(key); ok {
		return text
	}
	return "[" + key + "]"
}

// Text 根据键获取文本，不存在时返回 fallback
func (ts *TutorialStrings) Text(key, fallback string) string {
	if text, ok := ts.Lookup(key); ok {
		return text
	}
	return fallback
}

// StepText 返回步骤的本地化标题、正文和任务
// 缺失的键使用目录中的原文
func (ts *TutorialStrings) StepText(step tutorial.Step) (title, content, task string) {
	title, content, task = step.Title, step.Content, step.Task
	prefix := fmt.Sprintf("TUTORIAL_STEP_%d_", step.ID)
	if text, ok := ts.Lookup(prefix + "TITLE"); ok {
		title = text
	}
	if text, ok := ts.Lookup(prefix + "CONTENT"); ok {
		content = text
	}
	if text, ok := ts.Lookup(prefix + "TASK"); ok {
		task = text
	}
	return title, content, task
}

// ProgressLabel 返回 "Step 2 of 9" 形式的进度文本
func (ts *TutorialStrings) ProgressLabel(current, total int) string {
	return ts.printerOrDefault().Sprintf("Step %d of %d", current, total)
}

// CoinsLabel 返回本地化的金币数量文本（带千位分隔）
func (ts *TutorialStrings) CoinsLabel(amount int) string {
	return ts.printerOrDefault().Sprintf("%d coins", amount)
}

func (ts *TutorialStrings) printerOrDefault() *message.Printer {
	if ts == nil || ts.printer == nil {
		return message.NewPrinter(supportedLanguages[0])
	}
	return ts.printer
}
