package layout

import "fmt"

// LayoutPolicy 是三种排版策略的公共接口。策略只负责页面尺寸与槽位
// 几何的差异（缩放 / 固定尺寸 / 退化的 1x1），分组、镜像与页序逻辑
// 由 Paginate 统一承担。
type LayoutPolicy interface {
	// Name 返回策略名，用于输出文件名与诊断信息。
	Name() string
	// NormalizeGrid 允许策略修正网格参数（single-card 强制 1x1），
	// 并在此处拒绝非法配置。
	NormalizeGrid(cfg GridConfig) (GridConfig, error)
	// PageSize 返回该策略在指定方向下的页面尺寸（pt）。
	PageSize(o Orientation) (width, height float64)
	// Slots 计算行优先槽位。固定尺寸放不下页面时返回 ErrGridTooLarge。
	Slots(cfg GridConfig, pageWidth, pageHeight float64) ([]SlotPosition, error)
	// Bleed 返回出血距离（pt），仅 cut-ready 策略非零。
	Bleed() float64
	// Guides 报告是否需要生成裁切参考线与出血矩形。
	Guides() bool
}

// ScaledPolicy 在 A4 页面上按可用空间等比缩放卡牌（长宽比 210:298）。
type ScaledPolicy struct{}

func (ScaledPolicy) Name() string { return "grid" }

func (ScaledPolicy) NormalizeGrid(cfg GridConfig) (GridConfig, error) {
	return cfg, cfg.Validate()
}

func (ScaledPolicy) PageSize(o Orientation) (float64, float64) {
	return a4Size(o)
}

func (ScaledPolicy) Slots(cfg GridConfig, pageWidth, pageHeight float64) ([]SlotPosition, error) {
	slots, _, _ := ScaledGrid(cfg, pageWidth, pageHeight, TileAspectRatio)
	return slots, nil
}

func (ScaledPolicy) Bleed() float64 { return 0 }
func (ScaledPolicy) Guides() bool   { return false }

// FixedPolicy（cut-ready）使用固定的物理卡牌尺寸加出血，并生成裁切
// 参考线。卡牌尺寸不由页面推导，网格放不下页面属于配置错误。
type FixedPolicy struct {
	// 卡牌裁切后尺寸与出血距离，单位 pt。
	CardWidth  float64
	CardHeight float64
	BleedWidth float64
}

// NewFixedPolicy 返回标准扑克牌尺寸（63.5x88.5mm、1.5mm 出血）的策略。
func NewFixedPolicy() FixedPolicy {
	return FixedPolicy{
		CardWidth:  PtFromMm(CutCardWidthMm),
		CardHeight: PtFromMm(CutCardHeightMm),
		BleedWidth: PtFromMm(CutBleedMm),
	}
}

func (FixedPolicy) Name() string { return "cut-ready" }

func (p FixedPolicy) NormalizeGrid(cfg GridConfig) (GridConfig, error) {
	if p.CardWidth <= 0 || p.CardHeight <= 0 {
		return cfg, fmt.Errorf("cut-ready 卡牌尺寸必须为正（%gx%g pt）", p.CardWidth, p.CardHeight)
	}
	return cfg, cfg.Validate()
}

func (FixedPolicy) PageSize(o Orientation) (float64, float64) {
	return a4Size(o)
}

func (p FixedPolicy) Slots(cfg GridConfig, pageWidth, pageHeight float64) ([]SlotPosition, error) {
	return FixedGrid(cfg, pageWidth, pageHeight, p.CardWidth, p.CardHeight)
}

func (p FixedPolicy) Bleed() float64 { return p.BleedWidth }
func (FixedPolicy) Guides() bool     { return true }

// SingleTilePolicy 每页一张卡牌：A7 页面，卡牌铺满整页。保留为独立
// 策略而非特判的 1x1 网格，让退化行为一目了然。
type SingleTilePolicy struct{}

func (SingleTilePolicy) Name() string { return "single-card" }

func (SingleTilePolicy) NormalizeGrid(cfg GridConfig) (GridConfig, error) {
	cfg.Rows, cfg.Cols = 1, 1
	cfg.Margin, cfg.GapX, cfg.GapY = 0, 0, 0
	return cfg, nil
}

// PageSize 返回 A7 纵向页面；single-card 模式不随方向翻转。
func (SingleTilePolicy) PageSize(Orientation) (float64, float64) {
	return A7WidthPt, A7HeightPt
}

func (SingleTilePolicy) Slots(cfg GridConfig, pageWidth, pageHeight float64) ([]SlotPosition, error) {
	return []SlotPosition{{X: 0, Y: 0, Width: pageWidth, Height: pageHeight}}, nil
}

func (SingleTilePolicy) Bleed() float64 { return 0 }
func (SingleTilePolicy) Guides() bool   { return false }

func a4Size(o Orientation) (float64, float64) {
	if o == Landscape {
		return A4HeightPt, A4WidthPt
	}
	return A4WidthPt, A4HeightPt
}

// PolicyByName 按模式名返回策略。
func PolicyByName(name string) (LayoutPolicy, error) {
	switch name {
	case "grid":
		return ScaledPolicy{}, nil
	case "cut-ready", "":
		return NewFixedPolicy(), nil
	case "single-card":
		return SingleTilePolicy{}, nil
	default:
		return nil, fmt.Errorf("无法识别的排版模式：%s", name)
	}
}
