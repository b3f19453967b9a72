package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/ultradoc/backend-go/internal/knowledge"
)

// 预览文档的分块结果，用于调整chunk_size和chunk_overlap参数
func main() {
	var (
		input     = flag.String("input", "", "输入文档路径（必需）")
		chunkSize = flag.Int("chunk-size", 500, "目标块大小（字符）")
		overlap   = flag.Int("overlap", 100, "块间重叠（字符，近似）")
		preview   = flag.Int("preview", 80, "每块预览的字符数")
	)
	flag.Parse()

	if *input == "" {
		fmt.Fprintf(os.Stderr, "错误: 必须指定输入文档路径 (-input)\n")
		flag.Usage()
		os.Exit(1)
	}

	fileBytes, err := os.ReadFile(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "错误: 读取文件失败: %v\n", err)
		os.Exit(1)
	}

	manager := knowledge.NewFileParserManager()
	text, err := manager.ParseFile(bytes.NewReader(fileBytes), *input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "错误: 提取文本失败: %v\n", err)
		os.Exit(1)
	}

	chunker := knowledge.NewChunker(*chunkSize, *overlap)
	chunks := chunker.Split(text)

	fmt.Printf("文档: %s（%d 字符）\n", *input, utf8.RuneCountInString(text))
	fmt.Printf("参数: chunk_size=%d overlap=%d -> %d 个块\n\n", *chunkSize, *overlap, len(chunks))

	for _, chunk := range chunks {
		line := strings.ReplaceAll(chunk.Text, "\n", " ")
		if utf8.RuneCountInString(line) > *preview {
			line = string([]rune(line)[:*preview]) + "…"
		}
		fmt.Printf("[%3d] %4d 字符 | %s\n", chunk.Index, utf8.RuneCountInString(chunk.Text), line)
	}
}
