package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	TemplatesDir string
	StaticDir    string
	LogFile      string
	LogLevel     string

	API     APIConfig
	Session SessionConfig
	Staging StagingConfig
}

// APIConfig points at the remote listing API.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type SessionConfig struct {
	DBDSN         string
	Secret        string
	CookieSecure  bool
	SweepInterval time.Duration
}

type StagingConfig struct {
	Dir          string
	MaxFiles     int
	MaxFileBytes int
}

// Load reads an optional env file (".env" when envFile is empty) and then the
// process environment.
func Load(envFile string) Config {
	files := []string{}
	if envFile != "" {
		files = append(files, envFile)
	}
	if err := godotenv.Load(files...); err != nil {
		log.Printf("[config] no env file loaded (%v), using environment", err)
	}

	cfg := Config{
		Port:         getEnv("PORT", "8080"),
		TemplatesDir: getEnv("TEMPLATES_DIR", "./web/templates"),
		StaticDir:    getEnv("STATIC_DIR", "./web/static"),
		LogFile:      getEnv("LOG_FILE", "./estateadmin.log"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		API: APIConfig{
			BaseURL: strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:5000/api"), "/"),
			Timeout: getDuration("API_TIMEOUT", 15*time.Second),
		},
		Session: SessionConfig{
			DBDSN:         getEnv("SESSION_DB_DSN", "estateadmin.db"),
			Secret:        getEnv("SESSION_SECRET", "change-me-in-production"),
			CookieSecure:  getBool("COOKIE_SECURE", false),
			SweepInterval: getDuration("SESSION_SWEEP_INTERVAL", 10*time.Minute),
		},
		Staging: StagingConfig{
			Dir:          getEnv("STAGING_DIR", os.TempDir()+"/estateadmin-staging"),
			MaxFiles:     getInt("STAGING_MAX_FILES", 20),
			MaxFileBytes: getInt("STAGING_MAX_FILE_BYTES", 10<<20),
		},
	}
	log.Printf("[config] PORT=%s API_BASE_URL=%s SESSION_DB_DSN=%s STAGING_DIR=%s LOG_FILE=%s",
		cfg.Port, cfg.API.BaseURL, cfg.Session.DBDSN, cfg.Staging.Dir, cfg.LogFile)
	return cfg
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return def
	}
	return n
}

func getBool(key string, def bool) bool {
	b, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return def
	}
	return b
}

func getDuration(key string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || d <= 0 {
		return def
	}
	return d
}
