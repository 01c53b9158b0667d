package deck

import (
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// illustrationExts 是插图查找尝试的扩展名顺序。
var illustrationExts = []string{".jpg", ".jpeg", ".png", ".webp"}

// accentFolder 把带变音符的字母折叠为基础字母（é → e）。
var accentFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// SanitizeFilename 把卡牌名转成安全的文件名：折叠变音符、去掉文件系统
// 不允许的字符与撇号、空格换成下划线并转小写。同一张卡在生成图片与
// 查找图片时必须得到相同的文件名，所以规则集中在这里。
func SanitizeFilename(name string) string {
	if folded, _, err := transform.String(accentFolder, name); err == nil {
		name = folded
	}
	safe := strings.ReplaceAll(name, " ", "_")
	safe = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`<>:"/\|?*'`, r) {
			return -1
		}
		return r
	}, safe)
	return strings.ToLower(safe)
}

// FindIllustration 在 dir 下按卡牌名查找插图，依次尝试常见扩展名。
// 找不到返回空字符串：没有插图的卡面只是留白，不算错误。
func FindIllustration(name, dir string) string {
	if dir == "" {
		return ""
	}
	base := SanitizeFilename(name)
	for _, ext := range illustrationExts {
		p := filepath.Join(dir, base+ext)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
