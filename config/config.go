package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LLMConfig describes the OpenAI-compatible completion endpoint used by the coach.
type LLMConfig struct {
	BaseURL      string  `mapstructure:"base_url"`
	APIKey       string  `mapstructure:"api_key"` // Literal key or the name of the env var holding it
	Model        string  `mapstructure:"model"`
	Temperature  float32 `mapstructure:"temperature"`
	MaxTokens    int     `mapstructure:"max_tokens"`
	HistoryLimit int     `mapstructure:"history_limit"` // Chat turns sent back to the model
}

// MatchingConfig holds the fuzzy catalog matching thresholds.
type MatchingConfig struct {
	DiceThreshold    float64 `mapstructure:"dice_threshold"`
	ContainmentRatio float64 `mapstructure:"containment_ratio"`
}

// TimerConfig holds rest timer settings.
type TimerConfig struct {
	TickInterval       time.Duration `mapstructure:"tick_interval"`
	DefaultRestSeconds int           `mapstructure:"default_rest_seconds"`
}

// FoodConfig points at the barcode product database.
type FoodConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Config holds the application's configuration.
type Config struct {
	Server struct {
		Port string
	}
	Database struct {
		DSN string // "memory", a SQLite file path or a postgres:// URL
	}
	LLM      LLMConfig      `mapstructure:"llm"`
	Matching MatchingConfig `mapstructure:"matching"`
	Timer    TimerConfig    `mapstructure:"timer"`
	Food     FoodConfig     `mapstructure:"food"`
}

// AppConfig is the global configuration instance.
var AppConfig Config

// SetDefaults registers the defaults used when config.yaml omits a key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("database.dsn", "memory")
	v.SetDefault("llm.base_url", "https://api.groq.com/openai/v1")
	v.SetDefault("llm.api_key", "GROQ_API_KEY")
	v.SetDefault("llm.model", "llama-3.3-70b-versatile")
	v.SetDefault("llm.temperature", 0.5)
	v.SetDefault("llm.max_tokens", 2000)
	v.SetDefault("llm.history_limit", 20)
	v.SetDefault("matching.dice_threshold", 0.65)
	v.SetDefault("matching.containment_ratio", 0.7)
	v.SetDefault("timer.tick_interval", "250ms")
	v.SetDefault("timer.default_rest_seconds", 60)
	v.SetDefault("food.base_url", "https://world.openfoodfacts.org")
	v.SetDefault("food.timeout", "10s")
}

// Defaults returns a Config populated only with default values.
func Defaults() Config {
	v := viper.New()
	SetDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Printf("WARN: [Config] Failed to unmarshal defaults: %v", err)
	}
	return cfg
}

// LoadConfig loads configuration from .env, config.yaml and environment variables.
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("INFO: [Config] No .env file loaded, relying on process environment.")
	}

	v := viper.GetViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")
	v.AddConfigPath("../config")
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("WARN: [Config] Configuration file (config.yaml) not found. Using environment variables and defaults.")
		} else {
			log.Fatalf("FATAL: [Config] Error reading configuration file: %v", err)
		}
	}

	if err := v.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("FATAL: [Config] Failed to unmarshal configuration into AppConfig struct: %v", err)
	}

	if port := os.Getenv("SERVER_PORT"); port != "" {
		AppConfig.Server.Port = port
		log.Printf("INFO: [Config] Server port overridden by environment variable SERVER_PORT: %s", port)
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		AppConfig.Database.DSN = dsn
		log.Println("INFO: [Config] Database DSN overridden by environment variable DATABASE_DSN.")
	}

	AppConfig.LLM.APIKey = resolveAPIKey(AppConfig.LLM.APIKey)
	if AppConfig.LLM.APIKey == "" {
		log.Println("WARN: [Config] LLM API key is not set. Coach chat requests will fail.")
	}
	log.Println("INFO: [Config] Configuration loading complete.")
}

// resolveAPIKey treats values that look like env var names (FOO_KEY) as references.
func resolveAPIKey(raw string) string {
	if raw == "" {
		return os.Getenv("GROQ_API_KEY")
	}
	if strings.HasSuffix(raw, "_KEY") && strings.ToUpper(raw) == raw {
		if envValue := os.Getenv(raw); envValue != "" {
			log.Printf("INFO: [Config] Loaded LLM API key from environment variable '%s'.", raw)
			return envValue
		}
		return ""
	}
	log.Println("WARN: [Config] LLM API key is set directly in config.yaml. Consider using env vars for keys.")
	return raw
}
