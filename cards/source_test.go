package cards

import (
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/ByLCY/cardforge/layout"
)

func newTestFont(t *testing.T) *FontSource {
	t.Helper()
	src, err := NewFontSource("go-regular", goregular.TTF)
	if err != nil {
		t.Fatalf("解析内置字体失败: %v", err)
	}
	return src
}

func TestFontSourceMetrics(t *testing.T) {
	src := newTestFont(t)

	m, err := src.MeasureFont(12)
	if err != nil {
		t.Fatalf("测量失败: %v", err)
	}
	if m.Ascent <= 0 || m.Descent <= 0 || m.MaxAdvance <= 0 {
		t.Fatalf("度量应全为正: %+v", m)
	}
	if m.LineHeight() <= m.Ascent {
		t.Fatalf("行高应大于上升部: %+v", m)
	}

	// 度量随字号单调增长。
	prev := layout.FontMetrics{}
	for _, size := range []int{8, 12, 16, 24, 36} {
		m, err := src.MeasureFont(size)
		if err != nil {
			t.Fatalf("字号 %d 测量失败: %v", size, err)
		}
		if m.LineHeight() <= prev.LineHeight() || m.MaxAdvance <= prev.MaxAdvance {
			t.Fatalf("字号 %d 的度量未随字号增长: %+v <= %+v", size, m, prev)
		}
		prev = m
	}
}

func TestFontSourceFaceCached(t *testing.T) {
	src := newTestFont(t)
	a, err := src.Face(14)
	if err != nil {
		t.Fatalf("创建 face 失败: %v", err)
	}
	b, err := src.Face(14)
	if err != nil {
		t.Fatalf("创建 face 失败: %v", err)
	}
	if a != b {
		t.Fatalf("同字号的 face 应命中缓存")
	}
}

func TestFontSourceBadData(t *testing.T) {
	if _, err := NewFontSource("bad", []byte("not a font")); err == nil {
		t.Fatalf("非法字体数据应报错")
	}
}

func TestFontSourceDrivesFitter(t *testing.T) {
	src := newTestFont(t)
	fitter := layout.NewFontFitter(layout.NewMetricsCache(), src)

	res, err := fitter.Fit("A bright streak flashes from your pointing finger.", layout.FitOptions{
		MinSize:          10,
		MaxSize:          32,
		MaxWidth:         574,
		MaxHeight:        588,
		LineSpacing:      4,
		ParagraphSpacing: 25,
	})
	if err != nil {
		t.Fatalf("适配失败: %v", err)
	}
	if res.FontSize != 32 {
		t.Fatalf("短文本应选中最大字号: got=%d", res.FontSize)
	}
	if res.Overflow(588) {
		t.Fatalf("短文本不应溢出: %+v", res)
	}
}
