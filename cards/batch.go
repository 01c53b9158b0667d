package cards

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ByLCY/cardforge/deck"
)

// Result 记录单张卡牌的生成结果。Err 非空表示该卡失败，
// 路径此时不可用。
type Result struct {
	Card      deck.Card
	FrontPath string
	BackPath  string
	Err       error
}

// Progress 在每张卡牌开始处理前被调用（index 从 1 起）。
type Progress func(index, total int, card deck.Card)

// BatchProcessor 顺序生成整组卡牌的正反面 PNG。单张卡的失败只记录
// 在结果里，不中断批处理。
type BatchProcessor struct {
	gen             *Generator
	imageDir        string
	illustrationDir string
}

// NewBatchProcessor 创建批处理器并确保输出目录存在。
func NewBatchProcessor(gen *Generator, imageDir, illustrationDir string) (*BatchProcessor, error) {
	if err := os.MkdirAll(imageDir, 0o755); err != nil {
		return nil, fmt.Errorf("创建图片输出目录失败: %w", err)
	}
	return &BatchProcessor{
		gen:             gen,
		imageDir:        imageDir,
		illustrationDir: illustrationDir,
	}, nil
}

// Process 依序处理全部卡牌。progress 可为 nil。
func (b *BatchProcessor) Process(cards []deck.Card, progress Progress) []Result {
	results := make([]Result, 0, len(cards))
	for i, card := range cards {
		if progress != nil {
			progress(i+1, len(cards), card)
		}
		results = append(results, b.processOne(card))
	}
	return results
}

func (b *BatchProcessor) processOne(card deck.Card) Result {
	safe := deck.SanitizeFilename(card.Name)
	front := filepath.Join(b.imageDir, safe+"_front.png")
	back := filepath.Join(b.imageDir, safe+"_back.png")
	illustration := deck.FindIllustration(card.Name, b.illustrationDir)

	if err := b.gen.Front(card, illustration, front); err != nil {
		return Result{Card: card, Err: err}
	}
	if err := b.gen.Back(card, back); err != nil {
		return Result{Card: card, Err: err}
	}
	return Result{Card: card, FrontPath: front, BackPath: back}
}

// Summary 统计成功与失败的数量。
func Summary(results []Result) (succeeded, failed int) {
	for _, r := range results {
		if r.Err != nil {
			failed++
		} else {
			succeeded++
		}
	}
	return succeeded, failed
}
