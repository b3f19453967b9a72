package config

import (
	"fmt"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/ultradoc/backend-go/internal/logger"
	"go.uber.org/zap"
)

// Config 应用配置
type Config struct {
	Server     ServerConfig     `mapstructure:"server" validate:"required"`
	AI         AIConfig         `mapstructure:"ai" validate:"required"`
	RAG        RAGConfig        `mapstructure:"rag" validate:"required"`
	FileUpload FileUploadConfig `mapstructure:"file_upload" validate:"required"`
}

type ServerConfig struct {
	Port int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Env  string `mapstructure:"env" validate:"required,oneof=development staging production"`
}

// AIConfig 外部模型能力配置
type AIConfig struct {
	OpenAIAPIKey          string `mapstructure:"openai_api_key"`
	ChatModel             string `mapstructure:"chat_model" validate:"required"`
	EmbeddingModel        string `mapstructure:"embedding_model" validate:"required"`
	MaxTokens             int    `mapstructure:"max_tokens" validate:"required,min=1"`
	RequestTimeoutSeconds int    `mapstructure:"request_timeout_seconds" validate:"required,min=1"`
}

// RAGConfig 检索与置信度管线配置
type RAGConfig struct {
	ChunkSize               int     `mapstructure:"chunk_size" validate:"required,min=1"`
	ChunkOverlap            int     `mapstructure:"chunk_overlap" validate:"min=0"`
	TopK                    int     `mapstructure:"top_k" validate:"required,min=1"`
	MinSimilarityThreshold  float64 `mapstructure:"min_similarity_threshold" validate:"min=0,max=1"`
	LowConfidenceThreshold  float64 `mapstructure:"low_confidence_threshold" validate:"min=0,max=1"`
	HighConfidenceThreshold float64 `mapstructure:"high_confidence_threshold" validate:"min=0,max=1"`
	ExtractMaxChars         int     `mapstructure:"extract_max_chars" validate:"required,min=1"`
}

type FileUploadConfig struct {
	MaxSize      int64    `mapstructure:"max_size" validate:"required,min=1"`
	AllowedTypes []string `mapstructure:"allowed_types" validate:"required,min=1"`
}

var (
	AppConfig *Config
	mu        sync.RWMutex
)

// LoadConfig 加载配置（默认值 + 可选配置文件 + 环境变量）
func LoadConfig() error {
	setDefaults()

	// 读取环境变量
	viper.SetEnvPrefix("ULTRADOC")
	viper.AutomaticEnv()

	// 兼容常用环境变量
	if port := os.Getenv("PORT"); port != "" {
		viper.Set("server.port", port)
	}
	if env := os.Getenv("ENV"); env != "" {
		viper.Set("server.env", env)
	}
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		viper.Set("ai.openai_api_key", apiKey)
	}

	// 尝试从配置文件读取（如果存在）
	if configFile := os.Getenv("CONFIG_FILE"); configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			logger.Warn("config file not found or invalid, using defaults",
				zap.String("file", configFile), zap.Error(err))
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 验证配置
	if err := validator.New().Struct(&cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	mu.Lock()
	AppConfig = &cfg
	mu.Unlock()
	return nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8000)
	viper.SetDefault("server.env", "development")

	// AI配置默认值
	viper.SetDefault("ai.chat_model", "gpt-4o-mini")
	viper.SetDefault("ai.embedding_model", "text-embedding-3-small")
	viper.SetDefault("ai.max_tokens", 1000)
	viper.SetDefault("ai.request_timeout_seconds", 60)

	// 检索管线默认值
	viper.SetDefault("rag.chunk_size", 500)
	viper.SetDefault("rag.chunk_overlap", 100)
	viper.SetDefault("rag.top_k", 3)
	viper.SetDefault("rag.min_similarity_threshold", 0.25)
	viper.SetDefault("rag.low_confidence_threshold", 0.4)
	viper.SetDefault("rag.high_confidence_threshold", 0.7)
	viper.SetDefault("rag.extract_max_chars", 4000)

	// 文件上传配置默认值
	viper.SetDefault("file_upload.max_size", 15728640) // 15MB
	viper.SetDefault("file_upload.allowed_types", []string{".pdf", ".docx", ".txt", ".md"})
}

// GetAppConfig 获取当前配置
func GetAppConfig() *Config {
	mu.RLock()
	defer mu.RUnlock()
	return AppConfig
}

// StartWatching 监听配置文件变化并热加载
// 仅在设置了CONFIG_FILE时生效
func StartWatching() {
	if os.Getenv("CONFIG_FILE") == "" {
		return
	}

	viper.WatchConfig()
	viper.OnConfigChange(func(e fsnotify.Event) {
		logger.Info("config file changed, reloading", zap.String("file", e.Name))

		var cfg Config
		if err := viper.Unmarshal(&cfg); err != nil {
			logger.Error("failed to reload config", zap.Error(err))
			return
		}
		if err := validator.New().Struct(&cfg); err != nil {
			logger.Error("reloaded config failed validation, keeping previous", zap.Error(err))
			return
		}

		mu.Lock()
		AppConfig = &cfg
		mu.Unlock()
	})
}
