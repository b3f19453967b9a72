package knowledge

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileParserManagerSupports(t *testing.T) {
	manager := NewFileParserManager()

	supported := []string{"load.pdf", "quote.docx", "notes.txt", "README.md", "REPORT.MD", "rate_con.PDF"}
	for _, name := range supported {
		assert.True(t, manager.Supports(name), "应支持 %s", name)
	}

	unsupported := []string{"image.png", "archive.zip", "legacy.doc", "noext", "sheet.xlsx"}
	for _, name := range unsupported {
		assert.False(t, manager.Supports(name), "不应支持 %s", name)
	}
}

func TestFileParserManagerParseText(t *testing.T) {
	manager := NewFileParserManager()

	text, err := manager.ParseFile(strings.NewReader("  Shipment ID: S-42\n\nRate: $900  \n"), "load.txt")
	require.NoError(t, err)
	// 解析结果去除首尾空白
	assert.Equal(t, "Shipment ID: S-42\n\nRate: $900", text)

	text, err = manager.ParseFile(strings.NewReader("# Rate Confirmation"), "doc.md")
	require.NoError(t, err)
	assert.Equal(t, "# Rate Confirmation", text)
}

func TestFileParserManagerUnsupportedFormat(t *testing.T) {
	manager := NewFileParserManager()

	_, err := manager.ParseFile(strings.NewReader("data"), "image.png")
	assert.Error(t, err)
}

func TestFileParserManagerSupportedFormats(t *testing.T) {
	formats := NewFileParserManager().GetSupportedFormats()
	assert.Contains(t, formats, ".pdf")
	assert.Contains(t, formats, ".docx")
	assert.Contains(t, formats, ".txt")
	assert.Contains(t, formats, ".md")
}

func TestNewOpenAIEmbedderWithoutKey(t *testing.T) {
	// 未配置API key时降级为占位实现
	embedder := NewOpenAIEmbedder("", "text-embedding-3-small")
	assert.False(t, embedder.Ready())
	assert.Equal(t, 0, embedder.Dimensions())

	embedder = NewOpenAIEmbedder("   ", "")
	assert.False(t, embedder.Ready())
}

func TestNewOpenAIEmbedderDimensions(t *testing.T) {
	embedder := NewOpenAIEmbedder("sk-test", "text-embedding-3-small")
	assert.True(t, embedder.Ready())
	assert.Equal(t, 1536, embedder.Dimensions())

	embedder = NewOpenAIEmbedder("sk-test", "text-embedding-3-large")
	assert.Equal(t, 3072, embedder.Dimensions())
}

func TestNewOpenAIGeneratorWithoutKey(t *testing.T) {
	generator := NewOpenAIGenerator("", "gpt-4o-mini", 1000)
	assert.False(t, generator.Ready())

	generator = NewOpenAIGenerator("sk-test", "gpt-4o-mini", 1000)
	assert.True(t, generator.Ready())
}
