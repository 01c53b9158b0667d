package pdfrenderer

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ByLCY/cardforge/layout"
)

func writeTestPNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 56))
	for y := 0; y < 56; y++ {
		for x := 0; x < 40; x++ {
			img.Set(x, y, color.RGBA{180, 40, 40, 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("创建测试图片失败: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("写测试图片失败: %v", err)
	}
}

func testJob(t *testing.T, policy layout.LayoutPolicy) *layout.PrintJob {
	t.Helper()
	dir := t.TempDir()
	front := filepath.Join(dir, "front.png")
	back := filepath.Join(dir, "back.png")
	writeTestPNG(t, front)
	writeTestPNG(t, back)

	tiles := []layout.Tile{
		{ID: "a", FrontPath: front, BackPath: back},
		{ID: "b", FrontPath: front, BackPath: back},
		{ID: "c", FrontPath: front, BackPath: back},
	}
	cfg := layout.GridConfig{Rows: 2, Cols: 2, Orientation: layout.Landscape, Margin: 20, GapX: 10, GapY: 10}
	job, err := layout.Paginate(tiles, cfg, policy)
	if err != nil {
		t.Fatalf("分页失败: %v", err)
	}
	return job
}

func TestRenderCutReady(t *testing.T) {
	job := testJob(t, layout.NewFixedPolicy())

	var warnings []string
	data, err := New(func(msg string) { warnings = append(warnings, msg) }).Render(job)
	if err != nil {
		t.Fatalf("渲染失败: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("输出不是 PDF: %q", data[:min(8, len(data))])
	}
	if len(warnings) != 0 {
		t.Fatalf("素材齐全不应有警告: %v", warnings)
	}
}

func TestRenderScaledGrid(t *testing.T) {
	job := testJob(t, layout.ScaledPolicy{})
	data, err := New(nil).Render(job)
	if err != nil {
		t.Fatalf("渲染失败: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("输出不是 PDF")
	}
}

func TestRenderWarnsOnUnreadableImage(t *testing.T) {
	job := testJob(t, layout.ScaledPolicy{})
	// 指向不存在的文件：渲染继续，只产生警告。
	job.Pages[0].Slots[0].Tile.FrontPath = filepath.Join(t.TempDir(), "gone.png")

	var warnings []string
	data, err := New(func(msg string) { warnings = append(warnings, msg) }).Render(job)
	if err != nil {
		t.Fatalf("缺图不应中断渲染: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("应仍产出 PDF")
	}
	found := false
	for _, w := range warnings {
		if strings.Contains(w, "a") && strings.Contains(w, "front") {
			found = true
		}
	}
	if !found {
		t.Fatalf("应警告缺失的正面图: %v", warnings)
	}
}

func TestRenderRejectsEmptyJob(t *testing.T) {
	r := New(nil)
	if _, err := r.Render(nil); err == nil {
		t.Fatalf("nil 任务应报错")
	}
	if _, err := r.Render(&layout.PrintJob{PageWidth: 100, PageHeight: 100}); err == nil {
		t.Fatalf("零页任务应报错")
	}
}
