package layout

import (
	"strings"
	"unicode/utf8"
)

// Wrap 将文本按每行最多 width 个字符贪心折行，保留段落结构。
//
// 文本按换行拆成段落；空白段落产生一个段落哨兵（连续两个空行产生两个
// 哨兵）。段落内按词贪心：当前行能容纳「现有长度 + 1 + 词长」时追加，
// 否则另起新行；超过 width 的单个长词独占一行，从不拆词。
//
// 往返性质：按输出行序拼接所有词（忽略哨兵），得到的词序与输入各段落
// 中的词序完全一致。
func Wrap(text string, width int) []WrappedLine {
	if width < 1 {
		width = 1
	}
	if strings.TrimSpace(text) == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var lines []WrappedLine
	for _, para := range strings.Split(text, "\n") {
		if strings.TrimSpace(para) == "" {
			lines = append(lines, WrappedLine{Break: true})
			continue
		}
		lines = append(lines, wrapParagraph(para, width)...)
	}
	return lines
}

func wrapParagraph(para string, width int) []WrappedLine {
	words := strings.Fields(para)
	if len(words) == 0 {
		return nil
	}

	var lines []WrappedLine
	var current strings.Builder
	currentLen := 0

	for _, word := range words {
		wordLen := utf8.RuneCountInString(word)
		switch {
		case currentLen == 0:
			current.WriteString(word)
			currentLen = wordLen
		case currentLen+1+wordLen <= width:
			current.WriteByte(' ')
			current.WriteString(word)
			currentLen += 1 + wordLen
		default:
			lines = append(lines, WrappedLine{Text: current.String()})
			current.Reset()
			current.WriteString(word)
			currentLen = wordLen
		}
	}
	lines = append(lines, WrappedLine{Text: current.String()})
	return lines
}
