package pdfrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	_ "golang.org/x/image/webp"

	"github.com/ByLCY/cardforge/layout"
	"github.com/ByLCY/cardforge/renderer"
)

// 裁切参考线样式，沿用 0.5pt 灰色虚线（3pt 实 3pt 空）。
var (
	guideColor = color.RGBA{128, 128, 128, 255}
	noFill     = color.RGBA{0, 0, 0, 0}
)

// Renderer 基于 github.com/tdewolff/canvas 生成 PDF。
// 页面逐张绘制并立刻写入 PDF 写入器，图片按槽位解码，峰值内存
// 与单页素材成正比而不是整份文档。
type Renderer struct {
	// warn 接收非致命诊断（例如引用的图片文件缺失）。可为 nil。
	warn func(string)
}

var _ renderer.Renderer = (*Renderer)(nil)

// New 创建 PDF 渲染器。warn 可为 nil。
func New(warn func(string)) *Renderer {
	return &Renderer{warn: warn}
}

// Render 将分页结果渲染为 PDF 字节数据。
// 每页按固定次序绘制：参考线、出血填充、卡面图片、边框。参考线压在
// 最底层，裁切稍有偏差时露出的是相邻卡牌的出血而不是虚线。
func (r *Renderer) Render(job *layout.PrintJob) ([]byte, error) {
	if job == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if len(job.Pages) == 0 {
		return nil, fmt.Errorf("缺少可渲染的页面")
	}

	var buf bytes.Buffer
	writer := pdf.New(&buf, mm(job.PageWidth), mm(job.PageHeight), nil)
	for i, page := range job.Pages {
		if i > 0 {
			writer.NewPage(mm(page.Width), mm(page.Height))
		}
		c := canvas.New(mm(page.Width), mm(page.Height))
		ctx := canvas.NewContext(c)
		ctx.SetCoordSystem(canvas.CartesianIV) // 坐标与布局一致：左上角为原点

		if err := r.drawPage(ctx, page); err != nil {
			return nil, err
		}
		c.RenderTo(writer)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) drawPage(ctx *canvas.Context, page layout.Page) error {
	if page.Guides != nil {
		drawGuides(ctx, page)
		drawBleeds(ctx, page.Guides.Bleeds)
	}
	if err := r.drawTiles(ctx, page); err != nil {
		return err
	}
	if page.Guides != nil && page.Bleed > 0 {
		drawBorders(ctx, page.Guides.Bleeds, page.Bleed)
	}
	return nil
}

// drawGuides 画横跨整页的虚线参考线。
func drawGuides(ctx *canvas.Context, page layout.Page) {
	dash := mm(3)
	ctx.SetFillColor(noFill)
	ctx.SetStrokeColor(guideColor)
	ctx.SetStrokeWidth(mm(0.5))
	ctx.SetDashes(0, dash, dash)

	for _, x := range page.Guides.Verticals {
		p := &canvas.Path{}
		p.MoveTo(0, 0)
		p.LineTo(0, mm(page.Height))
		ctx.DrawPath(mm(x), 0, p)
	}
	for _, y := range page.Guides.Horizontals {
		p := &canvas.Path{}
		p.MoveTo(0, 0)
		p.LineTo(mm(page.Width), 0)
		ctx.DrawPath(0, mm(y), p)
	}
	ctx.SetDashes(0)
}

// drawBleeds 把每个占用槽位的出血区域填成黑色。
func drawBleeds(ctx *canvas.Context, bleeds []layout.SlotPosition) {
	ctx.SetFillColor(canvas.Black)
	ctx.SetStrokeColor(noFill)
	for _, b := range bleeds {
		ctx.DrawPath(mm(b.X), mm(b.Y), canvas.Rectangle(mm(b.Width), mm(b.Height)))
	}
}

// drawTiles 在槽位上绘制当前面的卡面图片。路径为空的面在分页阶段
// 已记入报告，这里静默跳过；路径存在但文件损坏或丢失只产生警告。
func (r *Renderer) drawTiles(ctx *canvas.Context, page layout.Page) error {
	for _, slot := range page.Slots {
		if slot.Tile == nil {
			continue
		}
		path := slot.Tile.FrontPath
		if page.Side == layout.SideBack {
			path = slot.Tile.BackPath
		}
		if path == "" {
			continue
		}
		img, err := decodeImage(path)
		if err != nil {
			r.warnf("跳过卡面 %s（%s）: %v", slot.Tile.ID, page.Side, err)
			continue
		}
		widthMm := mm(slot.Position.Width)
		dpmm := float64(img.Bounds().Dx()) / widthMm
		if dpmm <= 0 {
			dpmm = 1
		}
		ctx.DrawImage(mm(slot.Position.X), mm(slot.Position.Y), img, canvas.DPMM(dpmm))
	}
	return nil
}

// drawBorders 沿出血矩形描黑边，线宽等于出血距离。
func drawBorders(ctx *canvas.Context, bleeds []layout.SlotPosition, bleed float64) {
	ctx.SetFillColor(noFill)
	ctx.SetStrokeColor(canvas.Black)
	ctx.SetStrokeWidth(mm(bleed))
	for _, b := range bleeds {
		ctx.DrawPath(mm(b.X), mm(b.Y), canvas.Rectangle(mm(b.Width), mm(b.Height)))
	}
}

func (r *Renderer) warnf(format string, args ...any) {
	if r.warn != nil {
		r.warn(fmt.Sprintf(format, args...))
	}
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("读取图片失败: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("解码图片 %s 失败: %w", path, err)
	}
	return img, nil
}

// mm 把布局单位（pt）换算成画布单位（mm）。
func mm(pt float64) float64 { return layout.MmFromPt(pt) }
