package systems

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// Fonts 渲染用的字体
type Fonts struct {
	Title *text.GoTextFace
	Body  *text.GoTextFace
	Small *text.GoTextFace
}

// LoadFonts 从内置的 Go Regular 字体创建各字号字体
func LoadFonts() (*Fonts, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to create font source: %w", err)
	}
	face := func(size float64) *text.GoTextFace {
		return &text.GoTextFace{
			Source:    source,
			Size:      size,
			Direction: text.DirectionLeftToRight,
		}
	}
	return &Fonts{
		Title: face(20),
		Body:  face(15),
		Small: face(12),
	}, nil
}
