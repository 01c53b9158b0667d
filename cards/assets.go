package cards

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// AssetCollection 汇总卡面绘制需要的全部图片路径。路径在加载时算出，
// 文件是否存在由 Validate 统一检查。
type AssetCollection struct {
	FrontBackground string
	BackBackground  string
	FrontFrame      string
	SpellBanner     string
	// ClassBanners 以小写职业名为键。
	ClassBanners map[string]string
}

// LoadAssets 按约定的目录结构定位素材：
//
//	<dir>/front_background.png
//	<dir>/back_background.png
//	<dir>/front_frame.png
//	<dir>/spellname_banner.png
//	<dir>/class_banners/<class>.png
func LoadAssets(dir string) (*AssetCollection, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("素材目录不可用: %w", err)
	}

	a := &AssetCollection{
		FrontBackground: filepath.Join(dir, "front_background.png"),
		BackBackground:  filepath.Join(dir, "back_background.png"),
		FrontFrame:      filepath.Join(dir, "front_frame.png"),
		SpellBanner:     filepath.Join(dir, "spellname_banner.png"),
		ClassBanners:    map[string]string{},
	}

	bannerDir := filepath.Join(dir, "class_banners")
	entries, err := os.ReadDir(bannerDir)
	if err == nil {
		for _, e := range entries {
			name := e.Name()
			if e.IsDir() || !strings.HasSuffix(name, ".png") {
				continue
			}
			class := strings.ToLower(strings.TrimSuffix(name, ".png"))
			a.ClassBanners[class] = filepath.Join(bannerDir, name)
		}
	}
	return a, nil
}

// Banner 返回职业横幅的路径，职业名不区分大小写。
func (a *AssetCollection) Banner(class string) (string, bool) {
	p, ok := a.ClassBanners[strings.ToLower(class)]
	return p, ok
}

// Validate 返回缺失的必需素材列表。职业横幅是可选的，不在此列。
func (a *AssetCollection) Validate() []string {
	var missing []string
	for _, p := range []string{a.FrontBackground, a.BackBackground, a.FrontFrame, a.SpellBanner} {
		if _, err := os.Stat(p); err != nil {
			missing = append(missing, p)
		}
	}
	return missing
}
