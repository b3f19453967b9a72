package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ultradoc/backend-go/internal/knowledge"
)

// 将PDF/DOCX/TXT文档转换为纯文本，用于排查文本提取问题
func main() {
	var (
		input  = flag.String("input", "", "输入文档路径（必需）")
		output = flag.String("output", "", "输出文本文件路径（可选，默认打印到stdout）")
	)
	flag.Parse()

	if *input == "" {
		fmt.Fprintf(os.Stderr, "错误: 必须指定输入文档路径 (-input)\n")
		flag.Usage()
		os.Exit(1)
	}

	manager := knowledge.NewFileParserManager()
	if !manager.Supports(*input) {
		fmt.Fprintf(os.Stderr, "错误: 不支持的文件格式: %s（支持 %s）\n",
			filepath.Ext(*input), strings.Join(manager.GetSupportedFormats(), ", "))
		os.Exit(1)
	}

	fileBytes, err := os.ReadFile(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "错误: 读取文件失败: %v\n", err)
		os.Exit(1)
	}

	text, err := manager.ParseFile(bytes.NewReader(fileBytes), *input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "错误: 提取文本失败: %v\n", err)
		os.Exit(1)
	}

	if *output == "" {
		fmt.Println(text)
		return
	}

	if err := os.WriteFile(*output, []byte(text), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "错误: 写入输出文件失败: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ 文本提取成功: %s -> %s（%d 字符）\n", *input, *output, len([]rune(text)))
}
