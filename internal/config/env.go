package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr string
	GinMode string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string

	JWTSecret   string
	CORSOrigins []string

	LogLevel  string
	LogFormat string
	LogFile   string

	RateLimitRPS   float64
	RateLimitBurst int

	DefaultPageSize int
}

// LoadEnv reads .env when present, then the process environment.
func LoadEnv() Env {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: .env not loaded: %v", err)
	}

	return Env{
		AppAddr: getEnv("APP_ADDR", ":8080"),
		GinMode: getEnv("GIN_MODE", ""),

		DBHost:     getEnv("DB_HOST", "127.0.0.1:3306"),
		DBUser:     getEnv("DB_USER", "root"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "travel_backoffice"),

		JWTSecret: getEnv("JWT_SECRET", "change-me"),
		CORSOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
			"http://localhost:5173",
			"http://127.0.0.1:5173",
		}),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
		LogFile:   getEnv("LOG_FILE", ""),

		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 20),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 40),

		DefaultPageSize: getEnvInt("DEFAULT_PAGE_SIZE", 10),
	}
}

func getEnv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func getEnvInt(key string, def int) int {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("warning: %s=%q is not an integer, using %d", key, v, def)
		return def
	}
	return n
}

func getEnvFloat(key string, def float64) float64 {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("warning: %s=%q is not a number, using %g", key, v, def)
		return def
	}
	return f
}

func getEnvSlice(key string, def []string) []string {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	out := []string{}
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		log.Printf("warning: %s=%q has no entries, using defaults", key, v)
		return def
	}
	return out
}
