package layout

import (
	"errors"
	"fmt"
	"sort"
	"testing"
)

// makeTiles 生成 n 张前后素材齐全的测试卡牌。
func makeTiles(n int) []Tile {
	tiles := make([]Tile, n)
	for i := range tiles {
		id := fmt.Sprintf("card-%02d", i)
		tiles[i] = Tile{
			ID:        id,
			FrontPath: "front/" + id + ".png",
			BackPath:  "back/" + id + ".png",
		}
	}
	return tiles
}

func positionKey(p SlotPosition) string {
	return fmt.Sprintf("%.3f,%.3f", p.X, p.Y)
}

// TestPaginateFullGrid 验证 9 张卡在 3x3 网格下产生一组正反两页，
// 正面按输入顺序落位，背面按行内镜像落位。
func TestPaginateFullGrid(t *testing.T) {
	tiles := makeTiles(9)
	cfg := GridConfig{Rows: 3, Cols: 3, Margin: 20, GapX: 10, GapY: 10}

	job, err := Paginate(tiles, cfg, ScaledPolicy{})
	if err != nil {
		t.Fatalf("分页失败: %v", err)
	}
	if len(job.Pages) != 2 {
		t.Fatalf("页数: got=%d want=2", len(job.Pages))
	}
	front, back := job.Pages[0], job.Pages[1]
	if front.Side != SideFront || back.Side != SideBack {
		t.Fatalf("页序错误: %v, %v", front.Side, back.Side)
	}

	for k, slot := range front.Slots {
		if slot.Tile.ID != tiles[k].ID {
			t.Fatalf("正面槽位 %d: got=%s want=%s", k, slot.Tile.ID, tiles[k].ID)
		}
	}
	order := BackOrder(3, 3)
	for k, slot := range back.Slots {
		if slot.Tile.ID != tiles[k].ID {
			t.Fatalf("背面第 %d 张卡: got=%s want=%s", k, slot.Tile.ID, tiles[k].ID)
		}
		if positionKey(slot.Position) != positionKey(front.Slots[order[k]].Position) {
			t.Fatalf("背面卡 %d 未落在镜像槽位: %+v", k, slot.Position)
		}
	}
	if job.Report.TotalPages != 2 || job.Report.TotalTiles != 9 {
		t.Fatalf("报告统计错误: %+v", job.Report)
	}
	if len(job.Report.MissingAssets) != 0 {
		t.Fatalf("素材齐全时不应有缺失记录: %v", job.Report.MissingAssets)
	}
}

// TestPaginatePartialGroups 验证 11 张卡在 2x2 网格下切成 4+4+3 三组，
// 末组的第 4 个槽位在正反两面都保持空白。
func TestPaginatePartialGroups(t *testing.T) {
	tiles := makeTiles(11)
	cfg := GridConfig{Rows: 2, Cols: 2, Margin: 20, GapX: 10, GapY: 10}

	job, err := Paginate(tiles, cfg, ScaledPolicy{})
	if err != nil {
		t.Fatalf("分页失败: %v", err)
	}
	if len(job.Pages) != 6 {
		t.Fatalf("页数: got=%d want=6", len(job.Pages))
	}
	wantSizes := []int{4, 4, 3}
	for g, want := range wantSizes {
		front := job.Pages[2*g]
		back := job.Pages[2*g+1]
		if len(front.Slots) != want || len(back.Slots) != want {
			t.Fatalf("组 %d 槽位数: front=%d back=%d want=%d", g, len(front.Slots), len(back.Slots), want)
		}
	}

	// 末组：槽位 3 的几何位置在正反两面都不应被占用。
	slots, _, _ := ScaledGrid(cfg, A4WidthPt, A4HeightPt, TileAspectRatio)
	emptyPos := positionKey(slots[3])
	for _, page := range job.Pages[4:] {
		for _, slot := range page.Slots {
			if positionKey(slot.Position) == emptyPos {
				t.Fatalf("未占用的槽位被使用: page=%d side=%v", page.Index, page.Side)
			}
		}
	}
	// 末组背面的占用槽位间镜像：卡 8、9 互换，卡 10 原位。
	back := job.Pages[5]
	wantDest := BackOrderPartial(2, 2, 3)
	for k, slot := range back.Slots {
		if positionKey(slot.Position) != positionKey(slots[wantDest[k]]) {
			t.Fatalf("末组背面卡 %d 位置错误: %+v", k, slot.Position)
		}
	}
}

// TestPaginateGroupsPartitionTiles 验证各组依序恰好覆盖全部卡牌，
// 正反两页携带同一组卡牌。
func TestPaginateGroupsPartitionTiles(t *testing.T) {
	tiles := makeTiles(10)
	cfg := GridConfig{Rows: 2, Cols: 2, Margin: 20, GapX: 10, GapY: 10}

	job, err := Paginate(tiles, cfg, ScaledPolicy{})
	if err != nil {
		t.Fatalf("分页失败: %v", err)
	}

	var frontIDs []string
	for i := 0; i < len(job.Pages); i += 2 {
		front, back := job.Pages[i], job.Pages[i+1]
		backIDs := map[string]bool{}
		for _, s := range back.Slots {
			backIDs[s.Tile.ID] = true
		}
		for _, s := range front.Slots {
			frontIDs = append(frontIDs, s.Tile.ID)
			if !backIDs[s.Tile.ID] {
				t.Fatalf("卡 %s 出现在正面但不在对应背面", s.Tile.ID)
			}
		}
	}
	if len(frontIDs) != len(tiles) {
		t.Fatalf("正面卡牌总数: got=%d want=%d", len(frontIDs), len(tiles))
	}
	if !sort.StringsAreSorted(frontIDs) {
		t.Fatalf("正面卡牌应保持输入顺序: %v", frontIDs)
	}
}

// TestPaginateConfigErrorBeforePages 验证固定尺寸网格放不下页面时
// 整个分页调用失败，不产生任何页面。
func TestPaginateConfigErrorBeforePages(t *testing.T) {
	tiles := makeTiles(9)
	cfg := GridConfig{Rows: 3, Cols: 3, Margin: 20, GapX: 10, GapY: 10}

	job, err := Paginate(tiles, cfg, NewFixedPolicy())
	if !errors.Is(err, ErrGridTooLarge) {
		t.Fatalf("应返回 ErrGridTooLarge, got=%v", err)
	}
	if job != nil {
		t.Fatalf("出错时不应产生任何页面: %+v", job)
	}
}

// TestPaginateMissingAssets 验证缺面素材被记录且不中断分页。
func TestPaginateMissingAssets(t *testing.T) {
	tiles := makeTiles(4)
	tiles[1].FrontPath = ""
	tiles[2].BackPath = ""
	cfg := GridConfig{Rows: 2, Cols: 2, Margin: 20, GapX: 10, GapY: 10}

	job, err := Paginate(tiles, cfg, ScaledPolicy{})
	if err != nil {
		t.Fatalf("缺素材不应中断分页: %v", err)
	}
	if len(job.Pages) != 2 {
		t.Fatalf("页数: got=%d want=2", len(job.Pages))
	}
	if len(job.Pages[0].Slots) != 4 {
		t.Fatalf("缺素材卡牌仍应占据槽位: %d", len(job.Pages[0].Slots))
	}
	want := []MissingAsset{
		{TileID: "card-01", Side: SideFront},
		{TileID: "card-02", Side: SideBack},
	}
	got := job.Report.MissingAssets
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("缺失记录: got=%v want=%v", got, want)
	}
}

// TestPaginateSingleTile 验证 single-card 策略每页一张卡、铺满 A7。
func TestPaginateSingleTile(t *testing.T) {
	tiles := makeTiles(5)
	job, err := Paginate(tiles, GridConfig{Rows: 9, Cols: 9}, SingleTilePolicy{})
	if err != nil {
		t.Fatalf("分页失败: %v", err)
	}
	if len(job.Pages) != 10 {
		t.Fatalf("页数: got=%d want=10", len(job.Pages))
	}
	if job.PageWidth != A7WidthPt || job.PageHeight != A7HeightPt {
		t.Fatalf("页面尺寸: %gx%g", job.PageWidth, job.PageHeight)
	}
	for i, page := range job.Pages {
		if len(page.Slots) != 1 {
			t.Fatalf("页 %d 槽位数: %d", i, len(page.Slots))
		}
		pos := page.Slots[0].Position
		if pos.X != 0 || pos.Y != 0 || pos.Width != A7WidthPt || pos.Height != A7HeightPt {
			t.Fatalf("页 %d 卡牌未铺满页面: %+v", i, pos)
		}
		if page.Slots[0].Tile.ID != tiles[i/2].ID {
			t.Fatalf("页 %d 卡牌: got=%s want=%s", i, page.Slots[0].Tile.ID, tiles[i/2].ID)
		}
	}
}

// TestPaginatePageSequence 验证页序号连续且正反面交替。
func TestPaginatePageSequence(t *testing.T) {
	tiles := makeTiles(7)
	cfg := GridConfig{Rows: 2, Cols: 2, Margin: 20, GapX: 10, GapY: 10}

	job, err := Paginate(tiles, cfg, ScaledPolicy{})
	if err != nil {
		t.Fatalf("分页失败: %v", err)
	}
	for i, page := range job.Pages {
		if page.Index != i {
			t.Fatalf("页 %d 序号错误: %d", i, page.Index)
		}
		wantSide := SideFront
		if i%2 == 1 {
			wantSide = SideBack
		}
		if page.Side != wantSide {
			t.Fatalf("页 %d 面向错误: %v", i, page.Side)
		}
		if page.Width != job.PageWidth || page.Height != job.PageHeight {
			t.Fatalf("页 %d 尺寸不一致", i)
		}
	}
}
