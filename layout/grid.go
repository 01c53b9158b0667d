package layout

import (
	"errors"
	"fmt"
)

// ErrGridTooLarge 表示固定卡牌尺寸的网格放不下所选页面：
// 这是配置错误，在产生任何页面之前抛出，绝不部分渲染。
var ErrGridTooLarge = errors.New("网格超出页面可用范围")

// Orientation 表示页面方向。
type Orientation int

const (
	Portrait Orientation = iota
	Landscape
)

// String 返回方向的可读名称。
func (o Orientation) String() string {
	if o == Landscape {
		return "landscape"
	}
	return "portrait"
}

// MarshalText 使调试 JSON 输出方向名称。
func (o Orientation) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// ParseOrientation 解析方向名称。
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "portrait", "":
		return Portrait, nil
	case "landscape":
		return Landscape, nil
	default:
		return Portrait, fmt.Errorf("无法识别的页面方向：%s", s)
	}
}

// GridConfig 描述页面网格：行列数、方向、页边距与卡牌间距（单位 pt）。
type GridConfig struct {
	Rows        int         `json:"rows"`
	Cols        int         `json:"cols"`
	Orientation Orientation `json:"orientation"`
	Margin      float64     `json:"margin"`
	GapX        float64     `json:"gapX"`
	GapY        float64     `json:"gapY"`
}

// Validate 校验网格参数：行列至少为 1，边距与间距不能为负。
func (c GridConfig) Validate() error {
	if c.Rows < 1 || c.Cols < 1 {
		return fmt.Errorf("网格行列数必须 ≥ 1（当前 %dx%d）", c.Rows, c.Cols)
	}
	if c.Margin < 0 || c.GapX < 0 || c.GapY < 0 {
		return fmt.Errorf("页边距与间距不能为负（margin=%g gapX=%g gapY=%g）", c.Margin, c.GapX, c.GapY)
	}
	return nil
}

// Cells 返回每页的槽位数。
func (c GridConfig) Cells() int { return c.Rows * c.Cols }

// ScaledGrid 按页面可用空间计算槽位：先由可用宽度推出卡宽，再按长宽比
// 推出卡高；总高超出可用高度时改由高度约束反推，宽高等比缩小，绝不单
// 独拉伸某一维。返回行优先的槽位与最终卡牌尺寸。
func ScaledGrid(cfg GridConfig, pageWidth, pageHeight, aspect float64) ([]SlotPosition, float64, float64) {
	availWidth := pageWidth - 2*cfg.Margin - float64(cfg.Cols-1)*cfg.GapX
	availHeight := pageHeight - 2*cfg.Margin - float64(cfg.Rows-1)*cfg.GapY

	tileWidth := availWidth / float64(cfg.Cols)
	tileHeight := tileWidth / aspect

	totalHeight := tileHeight*float64(cfg.Rows) + float64(cfg.Rows-1)*cfg.GapY
	if totalHeight > availHeight {
		tileHeight = availHeight / float64(cfg.Rows)
		tileWidth = tileHeight * aspect
	}

	return gridSlots(cfg, pageWidth, pageHeight, tileWidth, tileHeight), tileWidth, tileHeight
}

// FixedGrid 使用固定卡牌尺寸布置网格。尺寸不由页面推导，因此先校验
// 网格（含边距）能否放进页面，放不下立即返回配置错误。
func FixedGrid(cfg GridConfig, pageWidth, pageHeight, tileWidth, tileHeight float64) ([]SlotPosition, error) {
	gridWidth := tileWidth*float64(cfg.Cols) + float64(cfg.Cols-1)*cfg.GapX
	gridHeight := tileHeight*float64(cfg.Rows) + float64(cfg.Rows-1)*cfg.GapY

	totalWidth := gridWidth + 2*cfg.Margin
	totalHeight := gridHeight + 2*cfg.Margin
	if totalWidth > pageWidth || totalHeight > pageHeight {
		return nil, fmt.Errorf("固定尺寸网格 %dx%d（%s）需要 %.1fx%.1fpt，页面仅有 %.1fx%.1fpt：%w",
			cfg.Rows, cfg.Cols, cfg.Orientation, totalWidth, totalHeight, pageWidth, pageHeight, ErrGridTooLarge)
	}

	return gridSlots(cfg, pageWidth, pageHeight, tileWidth, tileHeight), nil
}

// gridSlots 将网格整体在页面内居中，两侧留白相等，按行优先生成槽位。
func gridSlots(cfg GridConfig, pageWidth, pageHeight, tileWidth, tileHeight float64) []SlotPosition {
	gridWidth := tileWidth*float64(cfg.Cols) + float64(cfg.Cols-1)*cfg.GapX
	gridHeight := tileHeight*float64(cfg.Rows) + float64(cfg.Rows-1)*cfg.GapY

	offsetX := (pageWidth - gridWidth) / 2.0
	offsetY := (pageHeight - gridHeight) / 2.0

	slots := make([]SlotPosition, 0, cfg.Cells())
	for row := 0; row < cfg.Rows; row++ {
		for col := 0; col < cfg.Cols; col++ {
			slots = append(slots, SlotPosition{
				X:      offsetX + float64(col)*(tileWidth+cfg.GapX),
				Y:      offsetY + float64(row)*(tileHeight+cfg.GapY),
				Width:  tileWidth,
				Height: tileHeight,
			})
		}
	}
	return slots
}
