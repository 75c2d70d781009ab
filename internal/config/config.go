package config

import (
	"encoding/json"
	"fmt"
	"os"
)

type Config struct {
	Port        int             `json:"port"`
	JWTSecret   string          `json:"jwt_secret"`
	JWTTTLHours int             `json:"jwt_ttl_hours"`
	CORSOrigins []string        `json:"cors_origins"`
	Log         LogConfig       `json:"log"`
	DB          DatabaseConfig  `json:"db"`
	Ollama      OllamaConfig    `json:"ollama"`
	AI          AIConfig        `json:"ai"`
	Audio       AudioConfig     `json:"audio"`
	FileStore   FileStoreConfig `json:"file_store"`
	Jobs        JobsConfig      `json:"jobs"`
}

type LogConfig struct {
	Level   string `json:"level"`
	Console bool   `json:"console"`
}

type DatabaseConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"db_name"`
	SSLMode  string `json:"ssl_mode"`
}

type OllamaConfig struct {
	BaseURL        string `json:"base_url"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// AIConfig selects the provider used for the summary/validation agents and
// carries provider-specific settings under Data.
type AIConfig struct {
	Provider      string      `json:"provider"`
	MaxInputChars int         `json:"max_input_chars"`
	Data          interface{} `json:"data"`
}

type AudioConfig struct {
	APIURL            string `json:"api_url"`
	APIKey            string `json:"api_key"`
	TimeoutSeconds    int    `json:"timeout_seconds"`
	MaxUploadBytes    int64  `json:"max_upload_bytes"`
	RateWindowSeconds int    `json:"rate_window_seconds"`
}

type FileStoreConfig struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type JobsConfig struct {
	AuditKeepDays     int `json:"audit_keep_days"`
	InferenceKeepDays int `json:"inference_keep_days"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Port == 0 {
		return nil, fmt.Errorf("port is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt_secret is required")
	}
	if cfg.JWTTTLHours == 0 {
		cfg.JWTTTLHours = 168
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.DB.Host == "" || cfg.DB.User == "" || cfg.DB.DBName == "" {
		return nil, fmt.Errorf("db host/user/db_name are required")
	}
	if cfg.DB.Port == 0 {
		cfg.DB.Port = 5432
	}
	if cfg.DB.SSLMode == "" {
		cfg.DB.SSLMode = "disable"
	}
	if cfg.Ollama.BaseURL == "" {
		return nil, fmt.Errorf("ollama.base_url is required")
	}
	if cfg.Ollama.TimeoutSeconds == 0 {
		cfg.Ollama.TimeoutSeconds = 300
	}
	if cfg.AI.Provider == "" {
		cfg.AI.Provider = "ollama"
	}
	if cfg.Audio.TimeoutSeconds == 0 {
		cfg.Audio.TimeoutSeconds = 120
	}
	if cfg.Audio.MaxUploadBytes == 0 {
		cfg.Audio.MaxUploadBytes = 10 << 20
	}
	if cfg.FileStore.Type == "" {
		cfg.FileStore.Type = "local"
	}
	if cfg.Jobs.AuditKeepDays == 0 {
		cfg.Jobs.AuditKeepDays = 90
	}
	if cfg.Jobs.InferenceKeepDays == 0 {
		cfg.Jobs.InferenceKeepDays = 30
	}
	return &cfg, nil
}
