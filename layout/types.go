package layout

// 该文件定义分页结果与卡牌描述，供布局计算、渲染与调试 JSON 共用。

// Side 表示页面属于卡牌的正面还是背面。
type Side int

const (
	SideFront Side = iota
	SideBack
)

// String 返回 side 的可读名称。
func (s Side) String() string {
	switch s {
	case SideFront:
		return "front"
	case SideBack:
		return "back"
	default:
		return "unknown"
	}
}

// MarshalText 使调试 JSON 输出 "front"/"back" 而非数字。
func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Tile 是一个待排版的固定长宽比单元（一张卡牌）。
// FrontPath/BackPath 为空表示该面素材缺失：槽位几何仍会保留，
// 渲染时跳过绘制，缺失记录进 Report，不中断分页。
type Tile struct {
	ID        string `json:"id"`
	FrontPath string `json:"frontPath,omitempty"`
	BackPath  string `json:"backPath,omitempty"`
}

// SlotPosition 描述网格中一个槽位的位置与尺寸。
// 单位为 pt，坐标系以页面左上角为原点，行优先排列（index = row*cols+col）。
type SlotPosition struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Slot 将一个槽位与其中的卡牌绑定。Tile 为 nil 的槽位不会出现在
// Page.Slots 中——未占用的槽位既不绘制也不生成占位素材。
type Slot struct {
	Position SlotPosition `json:"position"`
	Tile     *Tile        `json:"tile"`
}

// Page 是一张可直接交给渲染器的物理页面。
// 同一组卡牌的正反两页共享完全相同的槽位几何，翻面后位置对齐。
type Page struct {
	Index  int     `json:"index"`
	Side   Side    `json:"side"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Slots  []Slot  `json:"slots"`
	// Guides 仅在 cut-ready 策略下填充：裁切参考线与出血矩形。
	Guides *GuideSet `json:"guides,omitempty"`
	// Bleed 为出血距离（pt），0 表示无出血，也不描边卡牌边框。
	Bleed float64 `json:"bleed,omitempty"`
}

// MissingAsset 记录缺失的卡牌面素材。
type MissingAsset struct {
	TileID string `json:"tileId"`
	Side   Side   `json:"side"`
}

// Report 汇总一次分页的统计信息与非致命诊断。
type Report struct {
	TotalTiles    int            `json:"totalTiles"`
	TotalPages    int            `json:"totalPages"`
	MissingAssets []MissingAsset `json:"missingAssets,omitempty"`
}

// PrintJob 是有序的页面序列：组 i 的正面页之后紧跟组 i 的背面页。
// 页面只携带几何与素材引用，图片在渲染阶段逐槽位解码，
// 因此调用方可以按页流式输出而无需缓存整份文档。
type PrintJob struct {
	PageWidth  float64 `json:"pageWidth"`
	PageHeight float64 `json:"pageHeight"`
	Pages      []Page  `json:"pages"`
	Report     Report  `json:"report"`
}

// WrappedLine 表示折行结果中的一行。Break 为 true 时表示段落分隔
// 哨兵：不含文本，渲染时只贡献段落间距。
type WrappedLine struct {
	Text  string `json:"text,omitempty"`
	Break bool   `json:"break,omitempty"`
}

// FitResult 是文本适配的结果：选中的字号、折行后的行序列与总高度。
// 当 TotalHeight 超过适配时给定的 MaxHeight 时表示即使最小字号也放不下，
// 引擎不截断、不缩小边界，由调用方自行决定是否升级处理。
type FitResult struct {
	FontSize    int           `json:"fontSize"`
	Lines       []WrappedLine `json:"lines"`
	TotalHeight float64       `json:"totalHeight"`
	// Metrics 为选中字号下的字体度量，供渲染器计算基线位置。
	Metrics FontMetrics `json:"metrics"`
}

// Overflow 报告该结果在给定高度下是否溢出。
func (r FitResult) Overflow(maxHeight float64) bool {
	return r.TotalHeight > maxHeight
}
