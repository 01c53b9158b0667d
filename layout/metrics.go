package layout

import (
	"fmt"
	"sync"
)

// FontMetrics 记录某字号下的字体度量，单位与排版单位一致（pt）。
type FontMetrics struct {
	Ascent  float64 `json:"ascent"`
	Descent float64 `json:"descent"`
	// MaxAdvance 是最宽字形的步进宽度，用于保守估算每行可容纳的字符数。
	// 估算偏保守意味着实际行宽永远不会超过边界，代价是可能用不满可用
	// 宽度；逐行精确测量会破坏二分查找依赖的高度单调性，故有意保留该
	// 近似（见 DESIGN.md）。
	MaxAdvance float64 `json:"maxAdvance"`
}

// LineHeight 返回单行的纵向占用：上升部加下降部。
func (m FontMetrics) LineHeight() float64 {
	return m.Ascent + m.Descent
}

// FontMeasurer 由字体后端实现，测量某字号下的度量。
// FontID 标识字体本体（通常为字体名或文件路径），作为缓存键的一部分。
type FontMeasurer interface {
	FontID() string
	MeasureFont(size int) (FontMetrics, error)
}

type metricsKey struct {
	font string
	size int
}

// MetricsCache 以 (字体, 字号) 为键缓存度量。键空间有界（字号范围小、
// 字体数量少），进程生命周期内惰性填充、从不淘汰。互斥锁保护并发读写，
// 各文档的分页相互独立，可并行使用同一缓存。
type MetricsCache struct {
	mu      sync.Mutex
	entries map[metricsKey]FontMetrics
}

// NewMetricsCache 创建空的度量缓存。
func NewMetricsCache() *MetricsCache {
	return &MetricsCache{entries: map[metricsKey]FontMetrics{}}
}

// Metrics 返回 measurer 在 size 字号下的度量，优先命中缓存。
func (c *MetricsCache) Metrics(measurer FontMeasurer, size int) (FontMetrics, error) {
	if measurer == nil {
		return FontMetrics{}, fmt.Errorf("layout: 缺少字体度量后端")
	}
	key := metricsKey{font: measurer.FontID(), size: size}

	c.mu.Lock()
	if m, ok := c.entries[key]; ok {
		c.mu.Unlock()
		return m, nil
	}
	c.mu.Unlock()

	m, err := measurer.MeasureFont(size)
	if err != nil {
		return FontMetrics{}, fmt.Errorf("测量字体 %s 字号 %d 失败: %w", key.font, size, err)
	}

	c.mu.Lock()
	c.entries[key] = m
	c.mu.Unlock()
	return m, nil
}

// TextHeight 计算折行结果渲染后的总高度：每个文本行累加行高与行间距，
// 每个段落哨兵累加段落间距；最后一行之后不留行间距。空序列高度为 0。
func TextHeight(lines []WrappedLine, m FontMetrics, lineSpacing, paragraphSpacing float64) float64 {
	total := 0.0
	for _, ln := range lines {
		if ln.Break {
			total += paragraphSpacing
		} else {
			total += m.LineHeight() + lineSpacing
		}
	}
	if total > 0 && len(lines) > 0 && !lines[len(lines)-1].Break {
		total -= lineSpacing
	}
	return total
}
