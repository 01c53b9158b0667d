// Package binding 提供卡面信息模板的占位符替换：模板中的 ${field}
// 会被替换为字段表中的值，用于自定义卡背的信息栏文本。
package binding

import (
	"regexp"
	"strings"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Interpolate 将文本中的 ${field} 替换为 fields 中对应的值。
// 字段名不区分首尾空白；fields 为空或字段不存在时保留原占位符，
// 这样排版出的卡面能直接暴露模板错误而不是悄悄吞掉。
func Interpolate(text string, fields map[string]string) string {
	if len(fields) == 0 {
		return text
	}
	return exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		groups := exprPattern.FindStringSubmatch(match)
		if len(groups) < 2 {
			return match
		}
		name := strings.TrimSpace(groups[1])
		if name == "" {
			return match
		}
		if val, ok := fields[name]; ok {
			return val
		}
		return match
	})
}

// Placeholders 返回模板引用的全部字段名（去重，按出现顺序）。
// 调用方可在批量生成前校验模板，而不是等到第一张卡才发现拼写错误。
func Placeholders(text string) []string {
	seen := map[string]bool{}
	var names []string
	for _, groups := range exprPattern.FindAllStringSubmatch(text, -1) {
		name := strings.TrimSpace(groups[1])
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}
