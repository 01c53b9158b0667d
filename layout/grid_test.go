package layout

import (
	"errors"
	"math"
	"testing"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

// TestScaledGridWidthConstrained 验证宽度为约束时卡宽占满可用宽度，
// 卡高按长宽比推出，网格整体居中。
func TestScaledGridWidthConstrained(t *testing.T) {
	cfg := GridConfig{Rows: 2, Cols: 2, Margin: 20, GapX: 10, GapY: 10}
	slots, tileW, tileH := ScaledGrid(cfg, A4WidthPt, A4HeightPt, TileAspectRatio)

	wantW := (A4WidthPt - 2*cfg.Margin - cfg.GapX) / 2
	if !approx(tileW, wantW) {
		t.Fatalf("卡宽: got=%g want=%g", tileW, wantW)
	}
	if !approx(tileW/tileH, TileAspectRatio) {
		t.Fatalf("长宽比被破坏: %g/%g=%g want=%g", tileW, tileH, tileW/tileH, TileAspectRatio)
	}
	if len(slots) != 4 {
		t.Fatalf("槽位数: got=%d want=4", len(slots))
	}
	// 宽度方向贴边距，高度方向有富余也要居中。
	if !approx(slots[0].X, cfg.Margin) {
		t.Fatalf("左侧留白: got=%g want=%g", slots[0].X, cfg.Margin)
	}
	left := slots[0].X
	right := A4WidthPt - (slots[1].X + slots[1].Width)
	if !approx(left, right) {
		t.Fatalf("水平不居中: left=%g right=%g", left, right)
	}
	top := slots[0].Y
	bottom := A4HeightPt - (slots[2].Y + slots[2].Height)
	if !approx(top, bottom) {
		t.Fatalf("垂直不居中: top=%g bottom=%g", top, bottom)
	}
	// 行优先：slot[1] 在 slot[0] 右侧，slot[2] 在 slot[0] 下方。
	if !approx(slots[1].X, slots[0].X+tileW+cfg.GapX) || !approx(slots[1].Y, slots[0].Y) {
		t.Fatalf("槽位不是行优先排列: %+v", slots)
	}
	if !approx(slots[2].Y, slots[0].Y+tileH+cfg.GapY) || !approx(slots[2].X, slots[0].X) {
		t.Fatalf("第二行位置错误: %+v", slots[2])
	}
}

// TestScaledGridHeightConstrained 验证高度不足时改由高度反推尺寸，
// 宽高等比缩小。
func TestScaledGridHeightConstrained(t *testing.T) {
	cfg := GridConfig{Rows: 4, Cols: 2, Margin: 20, GapX: 10, GapY: 10}
	_, tileW, tileH := ScaledGrid(cfg, A4WidthPt, A4HeightPt, TileAspectRatio)

	availHeight := A4HeightPt - 2*cfg.Margin - 3*cfg.GapY
	if !approx(tileH, availHeight/4) {
		t.Fatalf("卡高应由高度约束推出: got=%g want=%g", tileH, availHeight/4)
	}
	if !approx(tileW/tileH, TileAspectRatio) {
		t.Fatalf("长宽比被破坏: %g", tileW/tileH)
	}
	availWidth := A4WidthPt - 2*cfg.Margin - cfg.GapX
	if tileW*2 > availWidth+1e-6 {
		t.Fatalf("缩小后仍超出可用宽度: 2*%g > %g", tileW, availWidth)
	}
}

// TestFixedGridTooLarge 验证固定扑克牌尺寸的 3x3 网格放不进 A4 纵向
// 页面：返回配置错误，不产生任何槽位。
func TestFixedGridTooLarge(t *testing.T) {
	cfg := GridConfig{Rows: 3, Cols: 3, Margin: 20, GapX: 10, GapY: 10}
	slots, err := FixedGrid(cfg, A4WidthPt, A4HeightPt,
		PtFromMm(CutCardWidthMm), PtFromMm(CutCardHeightMm))
	if !errors.Is(err, ErrGridTooLarge) {
		t.Fatalf("应返回 ErrGridTooLarge, got=%v", err)
	}
	if slots != nil {
		t.Fatalf("出错时不应产生槽位: %v", slots)
	}
}

// TestFixedGridFits 验证默认的 2x4 横向网格放得下且整体居中。
func TestFixedGridFits(t *testing.T) {
	cfg := GridConfig{Rows: 2, Cols: 4, Orientation: Landscape, Margin: 20, GapX: 10, GapY: 10}
	cardW := PtFromMm(CutCardWidthMm)
	cardH := PtFromMm(CutCardHeightMm)
	slots, err := FixedGrid(cfg, A4HeightPt, A4WidthPt, cardW, cardH)
	if err != nil {
		t.Fatalf("2x4 横向应放得下: %v", err)
	}
	if len(slots) != 8 {
		t.Fatalf("槽位数: got=%d want=8", len(slots))
	}
	for i, s := range slots {
		if !approx(s.Width, cardW) || !approx(s.Height, cardH) {
			t.Fatalf("槽位 %d 尺寸不是固定卡牌尺寸: %+v", i, s)
		}
	}
	left := slots[0].X
	right := A4HeightPt - (slots[3].X + slots[3].Width)
	if !approx(left, right) {
		t.Fatalf("水平不居中: left=%g right=%g", left, right)
	}
}

// TestGridConfigValidate 验证网格参数校验。
func TestGridConfigValidate(t *testing.T) {
	bad := []GridConfig{
		{Rows: 0, Cols: 2},
		{Rows: 2, Cols: 0},
		{Rows: 2, Cols: 2, Margin: -1},
		{Rows: 2, Cols: 2, GapX: -1},
		{Rows: 2, Cols: 2, GapY: -0.5},
	}
	for i, cfg := range bad {
		if err := cfg.Validate(); err == nil {
			t.Fatalf("用例 %d 应校验失败: %+v", i, cfg)
		}
	}
	if err := (GridConfig{Rows: 1, Cols: 1}).Validate(); err != nil {
		t.Fatalf("合法配置不应报错: %v", err)
	}
}

// TestParseOrientation 验证方向解析与默认值。
func TestParseOrientation(t *testing.T) {
	cases := []struct {
		in   string
		want Orientation
		ok   bool
	}{
		{"portrait", Portrait, true},
		{"landscape", Landscape, true},
		{"", Portrait, true},
		{"diagonal", Portrait, false},
	}
	for _, tc := range cases {
		got, err := ParseOrientation(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("解析 %q: got=%v err=%v", tc.in, got, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("解析 %q 应失败", tc.in)
		}
	}
}
