package cards

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/ByLCY/cardforge/layout"
)

func fixedToFloat(v fixed.Int26_6) float64 { return float64(v) / 64 }

// FontSource 包装一份解析后的 TTF 字体，按字号缓存 face。
// 它同时是排版引擎的度量后端（layout.FontMeasurer）和卡面绘制的
// face 提供方，保证两边用完全相同的度量。
type FontSource struct {
	id   string
	font *sfnt.Font

	mu    sync.Mutex
	faces map[int]font.Face
}

// NewFontSource 从 TTF 字节数据创建字体源。id 用作度量缓存键，
// 通常为字体路径或内置字体名。
func NewFontSource(id string, ttf []byte) (*FontSource, error) {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("解析字体 %s 失败: %w", id, err)
	}
	return &FontSource{
		id:    id,
		font:  f,
		faces: map[int]font.Face{},
	}, nil
}

// FontID 实现 layout.FontMeasurer。
func (s *FontSource) FontID() string { return s.id }

// Face 返回指定字号的 face（DPI 72，字号即像素高）。face 创建开销
// 不小，按字号缓存。
func (s *FontSource) Face(size int) (font.Face, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if face, ok := s.faces[size]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(s.font, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("创建字号 %d 的 face 失败: %w", size, err)
	}
	s.faces[size] = face
	return face, nil
}

// MeasureFont 实现 layout.FontMeasurer：上升部与下降部取自 face 度量，
// 最宽字形用 'M' 的步进宽度近似。
func (s *FontSource) MeasureFont(size int) (layout.FontMetrics, error) {
	face, err := s.Face(size)
	if err != nil {
		return layout.FontMetrics{}, err
	}
	m := face.Metrics()
	adv, ok := face.GlyphAdvance('M')
	if !ok {
		adv = m.Height
	}
	return layout.FontMetrics{
		Ascent:     fixedToFloat(m.Ascent),
		Descent:    fixedToFloat(m.Descent),
		MaxAdvance: fixedToFloat(adv),
	}, nil
}
