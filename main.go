package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ByLCY/cardforge/cards"
	"github.com/ByLCY/cardforge/deck"
	"github.com/ByLCY/cardforge/fonts"
	"github.com/ByLCY/cardforge/layout"
	pdfrenderer "github.com/ByLCY/cardforge/renderer/pdf"
)

// options 汇总命令行参数。清单里的打印设置可被显式传入的同名
// 参数覆盖，未传入的保持清单值。
type options struct {
	deckPath    string
	outDir      string
	debugPath   string
	mode        string
	grid        string
	orientation string
	margin      float64
	gap         float64
	noPDF       bool
	keepImages  bool
}

func main() {
	var opts options
	flag.StringVar(&opts.deckPath, "deck", "decks/demo.deck", "牌组清单文件路径")
	flag.StringVar(&opts.outDir, "out", "output", "PDF 输出目录")
	flag.StringVar(&opts.debugPath, "debug", "", "布局调试 JSON 输出路径")
	flag.StringVar(&opts.mode, "mode", "", "布局模式（grid 或 cut-ready），覆盖清单设置")
	flag.StringVar(&opts.grid, "grid", "", "网格规格（如 3x3），覆盖清单设置")
	flag.StringVar(&opts.orientation, "orientation", "", "页面方向（portrait 或 landscape），覆盖清单设置")
	flag.Float64Var(&opts.margin, "margin", -1, "页边距（pt），覆盖清单设置")
	flag.Float64Var(&opts.gap, "gap", -1, "卡牌间距（pt），覆盖清单设置")
	flag.BoolVar(&opts.noPDF, "no-pdf", false, "只生成卡面 PNG，不输出 PDF")
	flag.BoolVar(&opts.keepImages, "keep-images", false, "生成 PDF 后保留卡面 PNG")
	flag.Parse()

	explicit := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	if err := run(opts, explicit); err != nil {
		log.Fatalf("生成失败: %v", err)
	}
}

// run 串联清单解析、卡面生成、分页布局与 PDF 渲染。
func run(opts options, explicit map[string]bool) error {
	m, err := deck.Load(opts.deckPath)
	if err != nil {
		return fmt.Errorf("加载牌组清单失败: %w", err)
	}
	if err := applyOverrides(m, opts, explicit); err != nil {
		return err
	}

	warn := func(msg string) { log.Printf("警告: %s", msg) }

	cardList, err := deck.LoadCards(m.CSVPath, warn)
	if err != nil {
		return fmt.Errorf("加载卡牌数据失败: %w", err)
	}

	results, err := generateFaces(m, cardList)
	if err != nil {
		return err
	}
	ok, failed := cards.Summary(results)
	fmt.Printf("卡面生成完成：成功 %d 张，失败 %d 张\n", ok, failed)
	for _, r := range results {
		if r.Err != nil {
			log.Printf("警告: 卡牌 %q 生成失败: %v", r.Card.Name, r.Err)
		}
	}
	if ok == 0 {
		return fmt.Errorf("没有任何卡牌生成成功")
	}

	if opts.noPDF {
		fmt.Printf("已跳过 PDF 输出，卡面 PNG 位于 %s\n", m.ImageDir)
		return nil
	}

	job, err := buildJob(m, results)
	if err != nil {
		return err
	}
	if opts.debugPath != "" {
		if err := writeDebug(job, opts.debugPath); err != nil {
			return err
		}
	}
	if len(job.Report.MissingAssets) > 0 {
		for _, miss := range job.Report.MissingAssets {
			log.Printf("警告: 卡牌 %s 缺少%s面图片，槽位将留空", miss.TileID, sideName(miss.Side))
		}
	}

	outPath := filepath.Join(opts.outDir, m.Print.Output)
	if err := renderPDF(job, outPath, warn); err != nil {
		return err
	}
	fmt.Printf("已生成 PDF：%s（%d 页，%d 张卡牌）\n", outPath, len(job.Pages), len(results))

	if !opts.keepImages {
		cleanupImages(results)
	}
	return nil
}

// applyOverrides 把显式传入的命令行参数写回清单的打印设置。
func applyOverrides(m *deck.Manifest, opts options, explicit map[string]bool) error {
	if explicit["mode"] {
		if _, err := layout.PolicyByName(opts.mode); err != nil {
			return err
		}
		// 输出名若仍是按旧模式派生的默认值，跟着模式一起换。
		if m.Print.Output == fmt.Sprintf("cards_%s.pdf", m.Print.Mode) {
			m.Print.Output = fmt.Sprintf("cards_%s.pdf", opts.mode)
		}
		m.Print.Mode = opts.mode
	}
	if explicit["grid"] {
		rows, cols, err := deck.ParseGridSpec(opts.grid)
		if err != nil {
			return err
		}
		m.Print.Rows, m.Print.Cols = rows, cols
	}
	if explicit["orientation"] {
		m.Print.Orientation = opts.orientation
	}
	if explicit["margin"] {
		m.Print.Margin = opts.margin
	}
	if explicit["gap"] {
		m.Print.GapX = opts.gap
		m.Print.GapY = opts.gap
	}
	return nil
}

// generateFaces 为整组卡牌生成正反面 PNG。
func generateFaces(m *deck.Manifest, cardList []deck.Card) ([]cards.Result, error) {
	assets, err := cards.LoadAssets(m.ArtDir)
	if err != nil {
		return nil, fmt.Errorf("加载卡牌素材失败: %w", err)
	}
	if missing := assets.Validate(); len(missing) > 0 {
		return nil, fmt.Errorf("缺少必需素材: %v", missing)
	}

	ttf, err := fonts.Load(m.FontPath)
	if err != nil {
		return nil, err
	}
	fontID := m.FontPath
	if fontID == "" {
		fontID = fonts.BuiltinRegular
	}
	src, err := cards.NewFontSource(fontID, ttf)
	if err != nil {
		return nil, fmt.Errorf("解析字体失败: %w", err)
	}

	gen := cards.NewGenerator(assets, src, m.BackTemplate)
	batch, err := cards.NewBatchProcessor(gen, m.ImageDir, m.IllustrationDir)
	if err != nil {
		return nil, err
	}
	results := batch.Process(cardList, func(i, total int, c deck.Card) {
		fmt.Printf("[%d/%d] %s\n", i, total, c.Name)
	})
	return results, nil
}

// buildJob 把生成结果转换为瓦片序列并完成分页。生成失败的卡牌
// 保留空路径，由分页报告记录缺失。
func buildJob(m *deck.Manifest, results []cards.Result) (*layout.PrintJob, error) {
	tiles := make([]layout.Tile, 0, len(results))
	for _, r := range results {
		t := layout.Tile{ID: r.Card.Name}
		if r.Err == nil {
			t.FrontPath = r.FrontPath
			t.BackPath = r.BackPath
		}
		tiles = append(tiles, t)
	}

	policy, err := layout.PolicyByName(m.Print.Mode)
	if err != nil {
		return nil, err
	}
	orient, err := layout.ParseOrientation(m.Print.Orientation)
	if err != nil {
		return nil, err
	}
	cfg := layout.GridConfig{
		Rows:        m.Print.Rows,
		Cols:        m.Print.Cols,
		Orientation: orient,
		Margin:      m.Print.Margin,
		GapX:        m.Print.GapX,
		GapY:        m.Print.GapY,
	}

	job, err := layout.Paginate(tiles, cfg, policy)
	if err != nil {
		return nil, fmt.Errorf("分页布局失败: %w", err)
	}
	return job, nil
}

func renderPDF(job *layout.PrintJob, outPath string, warn func(string)) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	pdfBytes, err := pdfrenderer.New(warn).Render(job)
	if err != nil {
		return fmt.Errorf("渲染 PDF 失败: %w", err)
	}
	if err := os.WriteFile(outPath, pdfBytes, 0o644); err != nil {
		return fmt.Errorf("写入 PDF 文件失败: %w", err)
	}
	return nil
}

// cleanupImages 删除中间卡面 PNG，失败只告警不中断。
func cleanupImages(results []cards.Result) {
	for _, r := range results {
		for _, p := range []string{r.FrontPath, r.BackPath} {
			if p == "" {
				continue
			}
			if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
				log.Printf("警告: 删除中间文件 %s 失败: %v", p, err)
			}
		}
	}
}

func writeDebug(job *layout.PrintJob, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(job, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}

func sideName(side layout.Side) string {
	if side == layout.SideBack {
		return "背"
	}
	return "正"
}
