package knowledge

import (
	"strings"
	"unicode/utf8"
)

// Chunk 表示分块后的文本结构
type Chunk struct {
	Index int
	Text  string
}

// Chunker 段落感知的文本分块器
// 优先按段落边界切分，块之间携带近似的词级重叠
type Chunker struct {
	chunkSize    int
	chunkOverlap int
}

// NewChunker 创建分块器
func NewChunker(chunkSize, overlap int) *Chunker {
	if chunkSize <= 0 {
		chunkSize = 500
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= chunkSize {
		overlap = chunkSize / 4
	}
	return &Chunker{
		chunkSize:    chunkSize,
		chunkOverlap: overlap,
	}
}

// Split 将文本切分为多个chunk
//
// 贪心地把段落填入当前块，超出chunkSize时封块，并把上一块末尾的
// overlap/5 个词作为下一块的种子。这里的词级重叠是对字符级重叠的
// 粗略近似，下游置信度打分依赖该行为，不要改成精确的字符重叠。
// 段落切分一个块都没产出时退化为固定词窗切分。
func (c *Chunker) Split(text string) []Chunk {
	var paragraphs []string
	for _, p := range strings.Split(text, "\n\n") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			paragraphs = append(paragraphs, trimmed)
		}
	}

	var chunks []Chunk
	appendChunk := func(text string) {
		text = strings.TrimSpace(text)
		if text == "" {
			return
		}
		chunks = append(chunks, Chunk{Index: len(chunks), Text: text})
	}

	overlapWords := c.chunkOverlap / 5
	var current string

	for _, para := range paragraphs {
		if current != "" && utf8.RuneCountInString(current)+utf8.RuneCountInString(para) > c.chunkSize {
			appendChunk(current)

			// 用上一块的尾部词作为重叠种子
			words := strings.Fields(current)
			var overlapText string
			if len(words) > overlapWords && overlapWords > 0 {
				overlapText = strings.Join(words[len(words)-overlapWords:], " ")
			}
			current = strings.TrimSpace(overlapText + " " + para)
			continue
		}

		if current == "" {
			current = para
		} else {
			current += "\n\n" + para
		}
	}
	appendChunk(current)

	// 退化策略：按固定词窗切分
	if len(chunks) == 0 {
		words := strings.Fields(text)
		step := c.chunkSize - c.chunkOverlap
		if step <= 0 {
			step = c.chunkSize
		}
		for i := 0; i < len(words); i += step {
			end := i + c.chunkSize
			if end > len(words) {
				end = len(words)
			}
			appendChunk(strings.Join(words[i:end], " "))
		}
	}

	return chunks
}
