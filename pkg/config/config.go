package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	LLM      LLMConfig
	Upload   UploadConfig
	Storage  StorageConfig
	Logger   LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type JWTConfig struct {
	SecretKey  string
	Expiration time.Duration
	RefreshExp time.Duration
}

// LLMConfig configures the hosted chat-completion provider. BaseURL accepts
// any OpenAI-compatible endpoint (OpenAI, OpenRouter, a local proxy).
type LLMConfig struct {
	BaseURL             string
	APIKey              string
	Model               string
	Timeout             time.Duration
	AnalysisTemperature float64
	AnalysisMaxTokens   int
	ChatTemperature     float64
	ChatMaxTokens       int
}

// UploadConfig bounds statement ingestion. PromptCharBudget caps how much
// extracted text is sent to the model, StoreCharBudget how much is persisted.
type UploadConfig struct {
	MaxFileSize      int64
	PromptCharBudget int
	StoreCharBudget  int
}

type StorageConfig struct {
	Driver    string // "local" or "gcs"
	LocalDir  string
	GCSBucket string
}

func Load() (*Config, error) {
	// .env is optional; plain environment variables work for Docker/K8s.
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))
	jwtExp, _ := strconv.Atoi(getEnv("JWT_EXPIRATION_HOURS", "24"))
	refreshExp, _ := strconv.Atoi(getEnv("JWT_REFRESH_EXPIRATION_HOURS", "168"))
	llmTimeout, _ := strconv.Atoi(getEnv("LLM_TIMEOUT_SECONDS", "120"))
	analysisTemp, _ := strconv.ParseFloat(getEnv("LLM_ANALYSIS_TEMPERATURE", "0.3"), 64)
	analysisMax, _ := strconv.Atoi(getEnv("LLM_ANALYSIS_MAX_TOKENS", "2000"))
	chatTemp, _ := strconv.ParseFloat(getEnv("LLM_CHAT_TEMPERATURE", "0.7"), 64)
	chatMax, _ := strconv.Atoi(getEnv("LLM_CHAT_MAX_TOKENS", "1000"))
	maxFileSize, _ := strconv.ParseInt(getEnv("UPLOAD_MAX_FILE_SIZE", "10485760"), 10, 64)
	promptBudget, _ := strconv.Atoi(getEnv("UPLOAD_PROMPT_CHAR_BUDGET", "10000"))
	storeBudget, _ := strconv.Atoi(getEnv("UPLOAD_STORE_CHAR_BUDGET", "5000"))

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "finsight"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			SecretKey:  getEnv("JWT_SECRET_KEY", "your-secret-key-change-in-production"),
			Expiration: time.Duration(jwtExp) * time.Hour,
			RefreshExp: time.Duration(refreshExp) * time.Hour,
		},
		LLM: LLMConfig{
			BaseURL:             getEnv("LLM_BASE_URL", "https://api.openai.com/v1"),
			APIKey:              getEnv("LLM_API_KEY", ""),
			Model:               getEnv("LLM_MODEL", "gpt-4-turbo-preview"),
			Timeout:             time.Duration(llmTimeout) * time.Second,
			AnalysisTemperature: analysisTemp,
			AnalysisMaxTokens:   analysisMax,
			ChatTemperature:     chatTemp,
			ChatMaxTokens:       chatMax,
		},
		Upload: UploadConfig{
			MaxFileSize:      maxFileSize,
			PromptCharBudget: promptBudget,
			StoreCharBudget:  storeBudget,
		},
		Storage: StorageConfig{
			Driver:    strings.ToLower(getEnv("STORAGE_DRIVER", "local")),
			LocalDir:  getEnv("STORAGE_LOCAL_DIR", "uploads"),
			GCSBucket: getEnv("STORAGE_GCS_BUCKET", ""),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
