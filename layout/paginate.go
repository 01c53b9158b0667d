package layout

import "fmt"

// Paginate 将卡牌序列按输入顺序切成每页 rows*cols 张的组（末组可以不
// 满），为每组先后生成正反两页：正面把组内第 k 张卡牌放进槽位 k，背面
// 按镜像映射放置，两页共享相同的槽位几何。
//
// 素材缺失（某面路径为空）不致命：槽位几何照常保留，缺失记入
// Report.MissingAssets。配置错误（非法网格、固定尺寸放不下页面）在
// 产生任何页面之前返回。
func Paginate(tiles []Tile, cfg GridConfig, policy LayoutPolicy) (*PrintJob, error) {
	if policy == nil {
		return nil, fmt.Errorf("layout: 缺少排版策略")
	}
	cfg, err := policy.NormalizeGrid(cfg)
	if err != nil {
		return nil, err
	}

	pageWidth, pageHeight := policy.PageSize(cfg.Orientation)
	slots, err := policy.Slots(cfg, pageWidth, pageHeight)
	if err != nil {
		return nil, err
	}

	job := &PrintJob{
		PageWidth:  pageWidth,
		PageHeight: pageHeight,
		Report:     Report{TotalTiles: len(tiles)},
	}

	perPage := cfg.Cells()
	for start := 0; start < len(tiles); start += perPage {
		end := start + perPage
		if end > len(tiles) {
			end = len(tiles)
		}
		group := tiles[start:end]
		appendGroupPages(job, group, cfg, slots, policy)
	}

	job.Report.TotalPages = len(job.Pages)
	collectMissing(job, tiles)
	return job, nil
}

// appendGroupPages 为一组卡牌生成正反两页。
func appendGroupPages(job *PrintJob, group []Tile, cfg GridConfig, slots []SlotPosition, policy LayoutPolicy) {
	backDest := BackOrderPartial(cfg.Rows, cfg.Cols, len(group))

	front := newPage(job, SideFront, policy)
	back := newPage(job, SideBack, policy)
	back.Index++
	for k := range group {
		tile := &group[k]
		front.Slots = append(front.Slots, Slot{Position: slots[k], Tile: tile})
		back.Slots = append(back.Slots, Slot{Position: slots[backDest[k]], Tile: tile})
	}

	if policy.Guides() {
		front.Guides = guidesFor(front.Slots, policy.Bleed())
		back.Guides = guidesFor(back.Slots, policy.Bleed())
	}

	job.Pages = append(job.Pages, front, back)
}

func newPage(job *PrintJob, side Side, policy LayoutPolicy) Page {
	return Page{
		Index:  len(job.Pages),
		Side:   side,
		Width:  job.PageWidth,
		Height: job.PageHeight,
		Bleed:  policy.Bleed(),
	}
}

func guidesFor(slots []Slot, bleed float64) *GuideSet {
	occupied := make([]SlotPosition, 0, len(slots))
	for _, s := range slots {
		if s.Tile != nil {
			occupied = append(occupied, s.Position)
		}
	}
	gs := Guides(occupied, bleed)
	return &gs
}

// collectMissing 把缺少某面素材的卡牌记入报告。卡牌仍会被放置，
// 只是该面不产生绘制。
func collectMissing(job *PrintJob, tiles []Tile) {
	for i := range tiles {
		if tiles[i].FrontPath == "" {
			job.Report.MissingAssets = append(job.Report.MissingAssets, MissingAsset{TileID: tiles[i].ID, Side: SideFront})
		}
		if tiles[i].BackPath == "" {
			job.Report.MissingAssets = append(job.Report.MissingAssets, MissingAsset{TileID: tiles[i].ID, Side: SideBack})
		}
	}
}
