package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Tailor    TailorConfig
	Downloads DownloadsConfig
	Worker    WorkerConfig
	Log       LogConfig
	Browser   BrowserConfig
}

type ServerConfig struct {
	Port        string
	Env         string
	MaxBodySize int
}

type DatabaseConfig struct {
	DSN string
}

// TailorConfig is resolved once when the orchestrator is constructed.
type TailorConfig struct {
	EndpointURL string
}

type DownloadsConfig struct {
	Dir            string
	ConflictAction string
	// CoverLetterDelay separates the two download initiations. It is a
	// heuristic against coalesced saves, not an ordering guarantee.
	CoverLetterDelay time.Duration
}

type WorkerConfig struct {
	Concurrency int
	QueueSize   int
}

type LogConfig struct {
	Level  string
	Format string
}

type BrowserConfig struct {
	ChromePath string
	NoSandbox  bool
	Timeout    time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "3000"),
			Env:         getEnv("ENV", "development"),
			MaxBodySize: getEnvAsInt("MAX_BODY_SIZE", 1048576),
		},
		Database: DatabaseConfig{
			DSN: getEnv("JOBS_DSN", "file:jobs?mode=memory&cache=shared"),
		},
		Tailor: TailorConfig{
			EndpointURL: getEnv("TAILOR_ENDPOINT_URL", "https://tailor-resume-chrome-ext.onrender.com"),
		},
		Downloads: DownloadsConfig{
			Dir:              getEnv("DOWNLOAD_DIR", "./downloads"),
			ConflictAction:   getEnv("DOWNLOAD_CONFLICT_ACTION", "overwrite"),
			CoverLetterDelay: getEnvAsDuration("COVER_LETTER_DELAY", "500ms"),
		},
		Worker: WorkerConfig{
			Concurrency: getEnvAsInt("WORKER_CONCURRENCY", 3),
			QueueSize:   getEnvAsInt("WORKER_QUEUE_SIZE", 100),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
		Browser: BrowserConfig{
			ChromePath: getEnv("CHROME_PATH", ""),
			NoSandbox:  getEnvAsBool("CHROME_NO_SANDBOX", false),
			Timeout:    getEnvAsDuration("BROWSER_TIMEOUT", "30s"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
