package layout

import "sort"

// GuideSet 描述一页上的裁切参考线与出血区域。
// 参考线坐标取自已占用槽位的边缘,横跨整页绘制;
// 出血区域是槽位向四周扩展 Bleed 后的矩形。
type GuideSet struct {
	// Verticals 是所有竖直参考线的 X 坐标,升序且去重。
	Verticals []float64 `json:"verticals"`
	// Horizontals 是所有水平参考线的 Y 坐标,升序且去重。
	Horizontals []float64 `json:"horizontals"`
	// Bleeds 是每个已占用槽位按出血宽度外扩后的矩形。
	Bleeds []SlotPosition `json:"bleeds"`
}

// Guides 根据已占用的槽位计算参考线与出血区域。
// 未被卡面占用的槽位不产生任何参考线。
func Guides(occupied []SlotPosition, bleed float64) GuideSet {
	xs := make(map[float64]struct{})
	ys := make(map[float64]struct{})
	bleeds := make([]SlotPosition, 0, len(occupied))
	for _, p := range occupied {
		xs[p.X] = struct{}{}
		xs[p.X+p.Width] = struct{}{}
		ys[p.Y] = struct{}{}
		ys[p.Y+p.Height] = struct{}{}
		bleeds = append(bleeds, SlotPosition{
			X:      p.X - bleed,
			Y:      p.Y - bleed,
			Width:  p.Width + 2*bleed,
			Height: p.Height + 2*bleed,
		})
	}
	return GuideSet{
		Verticals:   sortedCoords(xs),
		Horizontals: sortedCoords(ys),
		Bleeds:      bleeds,
	}
}

func sortedCoords(set map[float64]struct{}) []float64 {
	out := make([]float64, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Float64s(out)
	return out
}
