package deck

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Manifest is the resolved form of a deck document: paths made relative
// to the manifest file, print options validated and filled with
// per-mode defaults.
type Manifest struct {
	Name    string
	Version string
	Meta    map[string]string

	// CSVPath is the card data source.
	CSVPath string
	// ArtDir holds the shared card artwork (backgrounds, frame, banners).
	ArtDir string
	// ImageDir receives generated card face PNGs.
	ImageDir string
	// IllustrationDir holds per-card artwork, looked up by sanitized name.
	IllustrationDir string
	// FontPath is the text font; empty selects the builtin fallback.
	FontPath string
	// BackTemplate overrides the info text printed on card backs.
	BackTemplate string

	Print PrintOptions
}

// PrintOptions mirrors the print section of a manifest. Rows/Cols and
// spacing carry per-mode defaults when the manifest leaves them out.
type PrintOptions struct {
	Mode        string
	Rows        int
	Cols        int
	Orientation string
	Margin      float64
	GapX        float64
	GapY        float64
	Output      string
}

// applyDefaults fills unset options per mode: cut-ready packs tighter
// than the scaled grid because card dimensions are fixed.
func (p *PrintOptions) applyDefaults(set map[string]bool) {
	if p.Mode == "" {
		p.Mode = "cut-ready"
	}
	if p.Rows == 0 && p.Cols == 0 {
		p.Rows, p.Cols = 2, 4
	}
	if p.Orientation == "" {
		p.Orientation = "landscape"
	}
	if !set["margin"] {
		if p.Mode == "cut-ready" {
			p.Margin = 5
		} else {
			p.Margin = 20
		}
	}
	if !set["gap"] {
		gap := 10.0
		if p.Mode == "cut-ready" {
			gap = 5
		}
		p.GapX, p.GapY = gap, gap
	}
	if p.Output == "" {
		p.Output = fmt.Sprintf("cards_%s.pdf", p.Mode)
	}
}

// ParseGridSpec parses a "RxC" grid specification.
func ParseGridSpec(spec string) (rows, cols int, err error) {
	parts := strings.SplitN(spec, "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("网格规格应为 RxC 形式：%s", spec)
	}
	rows, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("网格行数无效：%s", parts[0])
	}
	cols, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("网格列数无效：%s", parts[1])
	}
	if rows < 1 || cols < 1 {
		return 0, 0, fmt.Errorf("网格行列数必须 ≥ 1：%s", spec)
	}
	return rows, cols, nil
}

// Load reads, parses, and resolves a deck manifest from a file.
// Relative paths inside the manifest resolve against its directory.
func Load(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("打开牌组清单失败: %w", err)
	}
	defer f.Close()

	doc, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("解析牌组清单 %s 失败: %w", path, err)
	}
	return Resolve(doc, filepath.Dir(path))
}

// Resolve converts a parsed document into a validated Manifest.
// baseDir anchors relative paths; pass "" to leave paths untouched.
func Resolve(doc *Document, baseDir string) (*Manifest, error) {
	if doc == nil {
		return nil, fmt.Errorf("牌组清单为空")
	}
	m := &Manifest{
		Name:    doc.Name.Value,
		Version: doc.Version,
		Meta:    map[string]string{},
	}
	set := map[string]bool{}

	for _, sec := range doc.Sections {
		var err error
		switch sec.Kind() {
		case "meta":
			for _, e := range sec.Meta.Entries {
				m.Meta[e.Key] = e.Value.Text()
			}
		case "source":
			err = m.resolveSource(sec.Source, baseDir)
		case "assets":
			err = m.resolveAssets(sec.Assets, baseDir)
		case "print":
			err = m.resolvePrint(sec.Print, set)
		default:
			err = fmt.Errorf("未知的清单区块")
		}
		if err != nil {
			return nil, err
		}
	}

	if m.CSVPath == "" {
		return nil, fmt.Errorf("牌组清单缺少 source.csv")
	}
	if m.ArtDir == "" {
		m.ArtDir = joinBase(baseDir, "assets")
	}
	if m.ImageDir == "" {
		m.ImageDir = joinBase(baseDir, filepath.Join("output", "images"))
	}
	m.Print.applyDefaults(set)
	if err := validateMode(m.Print.Mode); err != nil {
		return nil, err
	}
	if err := validateOrientation(m.Print.Orientation); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Manifest) resolveSource(block *Block, baseDir string) error {
	for _, e := range block.Entries {
		switch e.Key {
		case "csv":
			m.CSVPath = joinBase(baseDir, e.Value.Text())
		default:
			return fmt.Errorf("source 区块不认识键 %q（第 %d 行）", e.Key, e.Pos.Line)
		}
	}
	return nil
}

func (m *Manifest) resolveAssets(block *Block, baseDir string) error {
	for _, e := range block.Entries {
		switch e.Key {
		case "art":
			m.ArtDir = joinBase(baseDir, e.Value.Text())
		case "images":
			m.ImageDir = joinBase(baseDir, e.Value.Text())
		case "illustrations":
			m.IllustrationDir = joinBase(baseDir, e.Value.Text())
		case "font":
			m.FontPath = joinBase(baseDir, e.Value.Text())
		case "back-template":
			m.BackTemplate = e.Value.Text()
		default:
			return fmt.Errorf("assets 区块不认识键 %q（第 %d 行）", e.Key, e.Pos.Line)
		}
	}
	return nil
}

func (m *Manifest) resolvePrint(block *Block, set map[string]bool) error {
	for _, e := range block.Entries {
		text := e.Value.Text()
		var err error
		switch e.Key {
		case "mode":
			m.Print.Mode = text
		case "grid":
			m.Print.Rows, m.Print.Cols, err = ParseGridSpec(text)
		case "orientation":
			m.Print.Orientation = text
		case "margin":
			m.Print.Margin, err = parseFloatEntry(e)
			set["margin"] = true
		case "gap":
			var gap float64
			gap, err = parseFloatEntry(e)
			m.Print.GapX, m.Print.GapY = gap, gap
			set["gap"] = true
		case "gap-x":
			m.Print.GapX, err = parseFloatEntry(e)
			set["gap"] = true
		case "gap-y":
			m.Print.GapY, err = parseFloatEntry(e)
			set["gap"] = true
		case "output":
			m.Print.Output = text
		default:
			err = fmt.Errorf("print 区块不认识键 %q（第 %d 行）", e.Key, e.Pos.Line)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func parseFloatEntry(e *Entry) (float64, error) {
	v, err := strconv.ParseFloat(e.Value.Text(), 64)
	if err != nil {
		return 0, fmt.Errorf("键 %q 需要数值（第 %d 行）: %w", e.Key, e.Pos.Line, err)
	}
	if v < 0 {
		return 0, fmt.Errorf("键 %q 不能为负（第 %d 行）", e.Key, e.Pos.Line)
	}
	return v, nil
}

func validateMode(mode string) error {
	switch mode {
	case "grid", "single-card", "cut-ready":
		return nil
	default:
		return fmt.Errorf("无法识别的排版模式：%s", mode)
	}
}

func validateOrientation(o string) error {
	switch o {
	case "portrait", "landscape":
		return nil
	default:
		return fmt.Errorf("无法识别的页面方向：%s", o)
	}
}

func joinBase(baseDir, p string) string {
	if p == "" || baseDir == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(baseDir, p)
}
