package knowledge

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/unidoc/unioffice/document"
	"github.com/unidoc/unipdf/v3/extractor"
	"github.com/unidoc/unipdf/v3/model"
)

// FileParser 文件解析器接口
type FileParser interface {
	Parse(reader io.Reader, filename string) (string, error)
	Supports(filename string) bool
}

// TextParser 文本文件解析器
type TextParser struct{}

func (p *TextParser) Supports(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".txt" || ext == ".md" || ext == ".markdown"
}

func (p *TextParser) Parse(reader io.Reader, filename string) (string, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("读取文件失败: %w", err)
	}
	return string(content), nil
}

// PDFParser PDF文件解析器
type PDFParser struct{}

func (p *PDFParser) Supports(filename string) bool {
	return strings.ToLower(filepath.Ext(filename)) == ".pdf"
}

func (p *PDFParser) Parse(reader io.Reader, filename string) (string, error) {
	pdfBytes, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("读取PDF文件失败: %w", err)
	}

	pdfReader, err := model.NewPdfReader(bytes.NewReader(pdfBytes))
	if err != nil {
		return "", fmt.Errorf("解析PDF失败: %w", err)
	}

	numPages, err := pdfReader.GetNumPages()
	if err != nil {
		return "", fmt.Errorf("获取PDF页数失败: %w", err)
	}

	// 逐页提取文本，单页失败不中断
	var textBuilder strings.Builder
	for i := 1; i <= numPages; i++ {
		page, err := pdfReader.GetPage(i)
		if err != nil {
			continue
		}

		ex, err := extractor.New(page)
		if err != nil {
			continue
		}

		text, err := ex.ExtractText()
		if err != nil {
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}

	return textBuilder.String(), nil
}

// WordParser Word文档解析器
type WordParser struct{}

func (p *WordParser) Supports(filename string) bool {
	return strings.ToLower(filepath.Ext(filename)) == ".docx"
}

func (p *WordParser) Parse(reader io.Reader, filename string) (string, error) {
	docBytes, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("读取Word文件失败: %w", err)
	}

	// 使用bytes.Reader实现ReaderAt接口
	readerAt := bytes.NewReader(docBytes)
	doc, err := document.Read(readerAt, int64(len(docBytes)))
	if err != nil {
		return "", fmt.Errorf("解析Word文档失败: %w", err)
	}
	defer doc.Close()

	var textBuilder strings.Builder
	for _, para := range doc.Paragraphs() {
		for _, run := range para.Runs() {
			textBuilder.WriteString(run.Text())
		}
		textBuilder.WriteString("\n")
	}

	return textBuilder.String(), nil
}

// FileParserManager 文件解析器管理器
type FileParserManager struct {
	parsers []FileParser
}

// NewFileParserManager 创建文件解析器管理器
func NewFileParserManager() *FileParserManager {
	return &FileParserManager{
		parsers: []FileParser{
			&PDFParser{},
			&WordParser{},
			&TextParser{},
		},
	}
}

// Supports 检查文件格式是否受支持
func (m *FileParserManager) Supports(filename string) bool {
	for _, parser := range m.parsers {
		if parser.Supports(filename) {
			return true
		}
	}
	return false
}

// ParseFile 解析文件并返回纯文本
func (m *FileParserManager) ParseFile(reader io.Reader, filename string) (string, error) {
	for _, parser := range m.parsers {
		if parser.Supports(filename) {
			text, err := parser.Parse(reader, filename)
			if err != nil {
				return "", err
			}
			return strings.TrimSpace(text), nil
		}
	}
	return "", fmt.Errorf("不支持的文件格式: %s", filename)
}

// GetSupportedFormats 获取支持的文件格式
func (m *FileParserManager) GetSupportedFormats() []string {
	return []string{".pdf", ".docx", ".txt", ".md", ".markdown"}
}
