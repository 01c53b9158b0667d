package cards

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	"image/png"
	"os"
	"strings"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	_ "golang.org/x/image/webp"

	"github.com/ByLCY/cardforge/binding"
	"github.com/ByLCY/cardforge/deck"
	"github.com/ByLCY/cardforge/layout"
)

// DefaultBackTemplate 是卡背信息栏的默认模板，可在清单里用
// back-template 覆盖。对齐用空格硬编码：信息栏按等宽语义排版。
const DefaultBackTemplate = "Level:        ${level}\n" +
	"Casting Time: ${casting_time}\n" +
	"Duration:     ${duration}\n" +
	"Range:        ${range}\n" +
	"Components:   ${components}\n" +
	"Classes:      ${classes}"

// 卡面像素布局常量。素材图为 745x1040，所有坐标都以它为基准。
const (
	illustrationSize = 477
	illustrationX    = 138
	illustrationY    = 230

	nameBannerCenterY = 145
	nameBannerInset   = 80
	nameMaxHeight     = 90
	nameMaxSize       = 36

	levelCenterX = 130
	levelCenterY = 880
	levelMaxSize = 60

	statBoxWidth   = 133
	statBoxHeight  = 60
	statBoxMaxSize = 24

	infoBoxX      = 120
	infoBoxY      = 229
	infoBoxWidth  = 544
	infoBoxHeight = 140

	descBoxX      = 90
	descBoxY      = infoBoxY + infoBoxHeight + 15
	descBoxWidth  = 574
	descBoxHeight = 588
)

// Generator 绘制卡牌正反面 PNG。线程不安全：批处理按序调用。
type Generator struct {
	assets       *AssetCollection
	font         *FontSource
	fitter       *layout.FontFitter
	backTemplate string
}

// NewGenerator 创建卡面生成器。backTemplate 为空时使用默认模板；
// 度量缓存在正反面与所有卡牌之间共享。
func NewGenerator(assets *AssetCollection, fontSource *FontSource, backTemplate string) *Generator {
	if backTemplate == "" {
		backTemplate = DefaultBackTemplate
	}
	return &Generator{
		assets:       assets,
		font:         fontSource,
		fitter:       layout.NewFontFitter(layout.NewMetricsCache(), fontSource),
		backTemplate: backTemplate,
	}
}

// Front 绘制卡牌正面：背景、插图、边框、职业横幅、名称横幅与数值栏。
// illustrationPath 为空表示无插图，留白不算错误。
func (g *Generator) Front(card deck.Card, illustrationPath, outPath string) error {
	face, err := loadRGBA(g.assets.FrontBackground)
	if err != nil {
		return fmt.Errorf("卡牌 %s: %w", card.Name, err)
	}

	if illustrationPath != "" {
		ill, err := loadRGBA(illustrationPath)
		if err != nil {
			return fmt.Errorf("卡牌 %s 的插图: %w", card.Name, err)
		}
		scaled := image.NewRGBA(image.Rect(0, 0, illustrationSize, illustrationSize))
		xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), ill, ill.Bounds(), xdraw.Over, nil)
		pasteOver(face, scaled, image.Pt(illustrationX, illustrationY))
	}

	if err := g.pasteAsset(face, g.assets.FrontFrame, image.Pt(0, 0)); err != nil {
		return fmt.Errorf("卡牌 %s: %w", card.Name, err)
	}
	if err := g.pasteClassBanners(face, card); err != nil {
		return fmt.Errorf("卡牌 %s: %w", card.Name, err)
	}
	if err := g.pasteNameBanner(face, card.Name); err != nil {
		return fmt.Errorf("卡牌 %s: %w", card.Name, err)
	}

	// 环位数字与四个数值栏。
	if err := g.drawCentered(face, card.LevelNumeric(), image.Pt(levelCenterX, levelCenterY), 90, 85, levelMaxSize); err != nil {
		return err
	}
	stats := []struct {
		text   string
		center image.Point
	}{
		{card.CastingTime, image.Pt(370, 845)},
		{card.Duration, image.Pt(604, 845)},
		{card.Range, image.Pt(382, 953)},
		{card.ComponentsShort(), image.Pt(604, 953)},
	}
	for _, s := range stats {
		if err := g.drawCentered(face, s.text, s.center, statBoxWidth, statBoxHeight, statBoxMaxSize); err != nil {
			return err
		}
	}

	return savePNG(face, outPath)
}

// Back 绘制卡牌背面：背景、职业横幅、名称横幅、信息栏与描述文本。
func (g *Generator) Back(card deck.Card, outPath string) error {
	face, err := loadRGBA(g.assets.BackBackground)
	if err != nil {
		return fmt.Errorf("卡牌 %s: %w", card.Name, err)
	}
	if err := g.pasteClassBanners(face, card); err != nil {
		return fmt.Errorf("卡牌 %s: %w", card.Name, err)
	}
	if err := g.pasteNameBanner(face, card.Name); err != nil {
		return fmt.Errorf("卡牌 %s: %w", card.Name, err)
	}

	info := binding.Interpolate(g.backTemplate, backFields(card, g.assets))
	err = g.drawLeftAligned(face, info, image.Pt(infoBoxX, infoBoxY),
		infoBoxWidth, infoBoxHeight, 12, 20, 2, 20)
	if err != nil {
		return err
	}

	desc := "Description:\n" + card.Description
	if card.AtHigherLevel != "" {
		desc += "\n\n\nAt Higher Levels:\n" + card.AtHigherLevel
	}
	err = g.drawLeftAligned(face, desc, image.Pt(descBoxX, descBoxY),
		descBoxWidth, descBoxHeight, 10, 32, 4, 25)
	if err != nil {
		return err
	}

	return savePNG(face, outPath)
}

// backFields 构造卡背模板的字段表。classes 只保留有横幅素材的职业，
// 与正面横幅保持一致。
func backFields(card deck.Card, assets *AssetCollection) map[string]string {
	var known []string
	for _, c := range card.Classes {
		if _, ok := assets.Banner(c); ok {
			known = append(known, c)
		}
	}
	if len(known) == 0 {
		known = card.Classes
	}
	return map[string]string{
		"name":         card.Name,
		"level":        card.Level,
		"casting_time": card.CastingTime,
		"duration":     card.Duration,
		"range":        card.Range,
		"components":   card.Components,
		"classes":      strings.Join(known, ", "),
	}
}

func (g *Generator) pasteAsset(dst *image.RGBA, path string, at image.Point) error {
	img, err := loadRGBA(path)
	if err != nil {
		return err
	}
	pasteOver(dst, img, at)
	return nil
}

func (g *Generator) pasteClassBanners(dst *image.RGBA, card deck.Card) error {
	for _, class := range card.Classes {
		path, ok := g.assets.Banner(class)
		if !ok {
			continue
		}
		if err := g.pasteAsset(dst, path, image.Pt(0, 0)); err != nil {
			return err
		}
	}
	return nil
}

// pasteNameBanner 在横幅素材上写好卡名再整体贴到卡面上。
func (g *Generator) pasteNameBanner(dst *image.RGBA, name string) error {
	banner, err := loadRGBA(g.assets.SpellBanner)
	if err != nil {
		return err
	}
	w := banner.Bounds().Dx()
	err = g.drawCentered(banner, name, image.Pt(w/2, nameBannerCenterY),
		w-nameBannerInset, nameMaxHeight, nameMaxSize)
	if err != nil {
		return err
	}
	pasteOver(dst, banner, image.Pt(0, 0))
	return nil
}

// drawCentered 在 center 周围居中绘制适配后的文本。
func (g *Generator) drawCentered(dst *image.RGBA, text string, center image.Point, maxWidth, maxHeight, maxSize int) error {
	res, err := g.fitter.Fit(text, layout.FitOptions{
		MinSize:          10,
		MaxSize:          maxSize,
		MaxWidth:         float64(maxWidth),
		MaxHeight:        float64(maxHeight),
		LineSpacing:      2,
		ParagraphSpacing: 10,
	})
	if err != nil {
		return err
	}
	if len(res.Lines) == 0 {
		return nil
	}
	face, err := g.font.Face(res.FontSize)
	if err != nil {
		return err
	}

	y := float64(center.Y) - res.TotalHeight/2
	for _, ln := range res.Lines {
		if ln.Break {
			y += 10
			continue
		}
		width := fixedToFloat(font.MeasureString(face, ln.Text))
		drawLine(dst, face, ln.Text, float64(center.X)-width/2, y+res.Metrics.Ascent)
		y += res.Metrics.LineHeight() + 2
	}
	return nil
}

// drawLeftAligned 从 topLeft 起左对齐绘制适配后的文本。
func (g *Generator) drawLeftAligned(dst *image.RGBA, text string, topLeft image.Point, maxWidth, maxHeight, minSize, maxSize int, lineSpacing, paragraphSpacing float64) error {
	res, err := g.fitter.Fit(text, layout.FitOptions{
		MinSize:          minSize,
		MaxSize:          maxSize,
		MaxWidth:         float64(maxWidth),
		MaxHeight:        float64(maxHeight),
		LineSpacing:      lineSpacing,
		ParagraphSpacing: paragraphSpacing,
	})
	if err != nil {
		return err
	}
	face, err := g.font.Face(res.FontSize)
	if err != nil {
		return err
	}

	y := float64(topLeft.Y)
	for _, ln := range res.Lines {
		if ln.Break {
			y += paragraphSpacing
			continue
		}
		drawLine(dst, face, ln.Text, float64(topLeft.X), y+res.Metrics.Ascent)
		y += res.Metrics.LineHeight() + lineSpacing
	}
	return nil
}

func drawLine(dst *image.RGBA, face font.Face, text string, x, baseline float64) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.Black),
		Face: face,
		Dot:  fixed.Point26_6{X: floatToFixed(x), Y: floatToFixed(baseline)},
	}
	d.DrawString(text)
}

func floatToFixed(v float64) fixed.Int26_6 { return fixed.Int26_6(v * 64) }

// loadRGBA 解码图片并转成 RGBA。支持 PNG/JPEG/WebP。
func loadRGBA(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("打开图片失败: %w", err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("解码图片 %s 失败: %w", path, err)
	}
	rgba := image.NewRGBA(src.Bounds())
	draw.Draw(rgba, rgba.Bounds(), src, src.Bounds().Min, draw.Src)
	return rgba, nil
}

func pasteOver(dst *image.RGBA, src image.Image, at image.Point) {
	r := src.Bounds().Sub(src.Bounds().Min).Add(at)
	draw.Draw(dst, r, src, src.Bounds().Min, draw.Over)
}

func savePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("创建图片文件失败: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("写入 PNG %s 失败: %w", path, err)
	}
	return f.Close()
}
