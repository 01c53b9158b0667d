// Package fonts 负责字体解析：显式路径读取文件，空路径或 builtin:
// 前缀回退到内置的 Go Regular / Go Bold。
package fonts

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// 内置字体名。
const (
	BuiltinRegular = "go-regular"
	BuiltinBold    = "go-bold"
)

// Load 返回字体的 TTF 字节数据。path 为空时使用内置正文字体；
// "builtin:<name>" 按名选择内置字体；其余按文件路径读取。
func Load(path string) ([]byte, error) {
	if path == "" {
		return goregular.TTF, nil
	}
	if name, ok := strings.CutPrefix(path, "builtin:"); ok {
		switch name {
		case BuiltinRegular, "":
			return goregular.TTF, nil
		case BuiltinBold:
			return gobold.TTF, nil
		default:
			return nil, fmt.Errorf("没有内置字体 %q", name)
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取字体 %s 失败: %w", path, err)
	}
	return data, nil
}
