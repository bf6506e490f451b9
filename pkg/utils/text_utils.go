package utils

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// WrapText 按像素宽度对文本换行
// 参数:
//   - textStr: 要换行的文本
//   - face: 字体
//   - maxWidth: 最大宽度（像素）
//
// 返回:
//   - []string: 换行后的各行
func WrapText(textStr string, face text.Face, maxWidth float64) []string {
	if face == nil {
		return []string{textStr}
	}
	return WrapWords(textStr, func(s string) float64 {
		w, _ := text.Measure(s, face, 0)
		return w
	}, maxWidth)
}

// WrapWords 以单词为单位换行
//
// 换行规则:
//   - 优先在空格处断行
//   - 单个单词超过最大宽度时按字符强制断开
//   - 原文中的换行符保留
func WrapWords(textStr string, measure func(string) float64, maxWidth float64) []string {
	if textStr == "" || measure == nil || maxWidth <= 0 {
		return []string{textStr}
	}

	var lines []string
	for _, paragraph := range strings.Split(textStr, "\n") {
		current := ""
		for _, word := range strings.Fields(paragraph) {
			candidate := word
			if current != "" {
				candidate = current + " " + word
			}
			if measure(candidate) <= maxWidth {
				current = candidate
				continue
			}
			if current != "" {
				lines = append(lines, current)
			}
			current = ""
			for _, part := range splitLongWord(word, measure, maxWidth) {
				if current != "" {
					lines = append(lines, current)
				}
				current = part
			}
		}
		lines = append(lines, current)
	}
	return lines
}

// splitLongWord 将超宽单词按字符切开
func splitLongWord(word string, measure func(string) float64, maxWidth float64) []string {
	if measure(word) <= maxWidth {
		return []string{word}
	}
	var parts []string
	current := ""
	for _, r := range word {
		candidate := current + string(r)
		if current != "" && measure(candidate) > maxWidth {
			parts = append(parts, current)
			candidate = string(r)
		}
		current = candidate
	}
	if current != "" {
		parts = append(parts, current)
	}
	return parts
}
