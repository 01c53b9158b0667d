package deck

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// validClasses 列出已知的职业名。不在表内的职业只产生警告，不算错误：
// 自制内容常带自定义职业。
var validClasses = map[string]bool{
	"Artificer": true, "Barbarian": true, "Bard": true, "Cleric": true,
	"Druid": true, "Fighter": true, "Monk": true, "Paladin": true,
	"Ranger": true, "Rogue": true, "Sorcerer": true, "Warlock": true,
	"Wizard": true,
}

// requiredColumns 是 CSV 必须包含的表头。
var requiredColumns = []string{
	"Name", "Level", "Casting Time", "Duration", "Range",
	"Components", "Classes", "Text",
}

// Card 是一张法术卡的数据。
type Card struct {
	Name          string
	Level         string
	CastingTime   string
	Duration      string
	Range         string
	Components    string
	Classes       []string
	Description   string
	AtHigherLevel string
}

// ComponentsShort 返回去掉材料说明的成分缩写（V, S, M）。
func (c Card) ComponentsShort() string {
	if i := strings.Index(c.Components, "("); i >= 0 && strings.Contains(c.Components, ")") {
		return strings.TrimSpace(c.Components[:i])
	}
	return c.Components
}

// LevelNumeric 返回数字环位："Cantrip" 记为 0，序数后缀（1st、2nd…）
// 被剥掉。
func (c Card) LevelNumeric() string {
	if c.Level == "Cantrip" {
		return "0"
	}
	for _, suffix := range []string{"st", "nd", "rd", "th"} {
		if strings.HasSuffix(c.Level, suffix) {
			return strings.TrimSuffix(c.Level, suffix)
		}
	}
	return c.Level
}

// LoadCards 从 CSV 文件读取卡牌数据。表头缺列、空文件或完全没有有效
// 行都是错误；未知职业名通过 warn 回调报告（warn 可为 nil）。
// 错误信息携带数据行号，表头为第 1 行。
func LoadCards(path string, warn func(string)) ([]Card, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("打开 CSV 失败: %w", err)
	}
	defer f.Close()
	return ReadCards(f, warn)
}

// ReadCards 从任意 reader 读取卡牌数据，规则同 LoadCards。
func ReadCards(r io.Reader, warn func(string)) ([]Card, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("CSV 为空或没有表头")
	}
	if err != nil {
		return nil, fmt.Errorf("读取 CSV 表头失败: %w", err)
	}

	col := map[string]int{}
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	var missing []string
	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("CSV 缺少必需列: %s", strings.Join(missing, ", "))
	}

	var cards []Card
	for rowNum := 2; ; rowNum++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("读取第 %d 行失败: %w", rowNum, err)
		}
		card, err := parseCard(record, col, rowNum, warn)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}

	if len(cards) == 0 {
		return nil, fmt.Errorf("CSV 中没有有效的卡牌数据")
	}
	return cards, nil
}

func parseCard(record []string, col map[string]int, rowNum int, warn func(string)) (Card, error) {
	field := func(name string) string {
		i := col[name]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	name := field("Name")
	if name == "" {
		return Card{}, fmt.Errorf("第 %d 行缺少卡牌名称", rowNum)
	}
	classesRaw := field("Classes")
	if classesRaw == "" {
		return Card{}, fmt.Errorf("第 %d 行（%s）的 Classes 为空", rowNum, name)
	}
	var classes []string
	for _, c := range strings.Split(classesRaw, ",") {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if !validClasses[c] && warn != nil {
			warn(fmt.Sprintf("第 %d 行（%s）：未知职业 %s", rowNum, name, c))
		}
		classes = append(classes, c)
	}
	if len(classes) == 0 {
		return Card{}, fmt.Errorf("第 %d 行（%s）的 Classes 为空", rowNum, name)
	}

	atHigher := ""
	if _, ok := col["At Higher Levels"]; ok {
		atHigher = field("At Higher Levels")
	}

	return Card{
		Name:          name,
		Level:         field("Level"),
		CastingTime:   field("Casting Time"),
		Duration:      field("Duration"),
		Range:         field("Range"),
		Components:    field("Components"),
		Classes:       classes,
		Description:   field("Text"),
		AtHigherLevel: atHigher,
	}, nil
}
