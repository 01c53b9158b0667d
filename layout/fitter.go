package layout

import (
	"fmt"
	"strings"
)

// FitOptions 控制文本适配的字号范围、边界与间距。
// 间距与尺寸全部显式传入而非包级常量，引擎不持有全局可变状态，
// 可在多文档间安全复用。
type FitOptions struct {
	MinSize          int
	MaxSize          int
	MaxWidth         float64
	MaxHeight        float64
	LineSpacing      float64
	ParagraphSpacing float64
}

func (o FitOptions) validate() error {
	if o.MinSize < 1 {
		return fmt.Errorf("layout: 最小字号必须 ≥ 1（当前 %d）", o.MinSize)
	}
	if o.MaxSize < o.MinSize {
		return fmt.Errorf("layout: 最大字号 %d 小于最小字号 %d", o.MaxSize, o.MinSize)
	}
	if o.MaxWidth <= 0 || o.MaxHeight <= 0 {
		return fmt.Errorf("layout: 文本边界必须为正（%gx%g）", o.MaxWidth, o.MaxHeight)
	}
	return nil
}

// FontFitter 在给定边界内选择能容纳全部文本的最大字号。
// 度量通过注入的缓存与后端获取，便于测试用确定性的假后端替换。
type FontFitter struct {
	cache    *MetricsCache
	measurer FontMeasurer
}

// NewFontFitter 创建文本适配器。cache 为 nil 时内部新建一个。
func NewFontFitter(cache *MetricsCache, measurer FontMeasurer) *FontFitter {
	if cache == nil {
		cache = NewMetricsCache()
	}
	return &FontFitter{cache: cache, measurer: measurer}
}

// Fit 对整数字号区间做迭代式二分查找：每个候选字号下先由最宽字形推出
// 保守的每行字符数，贪心折行后累计高度；高度不超过边界则记录并向更大
// 字号收缩，否则向更小字号收缩。高度随字号单调不减（更大的字形不会折
// 出更少或更矮的行），因此二分是正确的。
//
// 空白文本返回零行、零高度的结果。任何字号都放不下时返回最小字号的
// 结果，TotalHeight 会超过 MaxHeight——溢出是调用方可见的状态，不是
// 错误，引擎不截断也不静默修正。
func (f *FontFitter) Fit(text string, opts FitOptions) (FitResult, error) {
	if err := opts.validate(); err != nil {
		return FitResult{}, err
	}
	if strings.TrimSpace(text) == "" {
		m, err := f.cache.Metrics(f.measurer, opts.MaxSize)
		if err != nil {
			return FitResult{}, err
		}
		return FitResult{FontSize: opts.MaxSize, Metrics: m}, nil
	}

	var best *FitResult
	low, high := opts.MinSize, opts.MaxSize
	for low <= high {
		mid := (low + high) / 2
		candidate, err := f.measureAt(text, mid, opts)
		if err != nil {
			return FitResult{}, err
		}
		if candidate.TotalHeight <= opts.MaxHeight {
			best = &candidate
			low = mid + 1
		} else {
			high = mid - 1
		}
	}

	if best == nil {
		// 最小字号也放不下：返回该结果并让溢出可见。
		candidate, err := f.measureAt(text, opts.MinSize, opts)
		if err != nil {
			return FitResult{}, err
		}
		best = &candidate
	}
	return *best, nil
}

// measureAt 在单个字号下折行并计算总高度。
func (f *FontFitter) measureAt(text string, size int, opts FitOptions) (FitResult, error) {
	m, err := f.cache.Metrics(f.measurer, size)
	if err != nil {
		return FitResult{}, err
	}
	lines := Wrap(text, wrapWidth(m, opts.MaxWidth))
	return FitResult{
		FontSize:    size,
		Lines:       lines,
		TotalHeight: TextHeight(lines, m, opts.LineSpacing, opts.ParagraphSpacing),
		Metrics:     m,
	}, nil
}

// wrapWidth 由最宽字形的步进宽度推出每行字符数，至少为 1。
func wrapWidth(m FontMetrics, maxWidth float64) int {
	if m.MaxAdvance <= 0 {
		return 1
	}
	w := int(maxWidth / m.MaxAdvance)
	if w < 1 {
		return 1
	}
	return w
}
