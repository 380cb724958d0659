package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.alis.build/alog"
)

const DefaultListenAddr = ":8080"

const DefaultGeminiModel = "gemini-3-flash-preview"

const DefaultGeminiEndpoint = "https://generativelanguage.googleapis.com"

const (
	DefaultGridRows = 50
	DefaultGridCols = 15
)

var InvalidConfigError = errors.New("invalid config")

type Config struct {
	DatabaseFilepath string
	ListenAddr       string
	LogLevel         string
	GeminiApiKey     string
	GeminiModel      string
	GeminiEndpoint   string
	GridRows         int
	GridCols         int
}

func LoadConfig() (config Config, err error) {
	config = Config{
		DatabaseFilepath: os.Getenv("DATABASE_FILEPATH"),
		ListenAddr:       getenvDefault("LISTEN_ADDR", DefaultListenAddr),
		LogLevel:         getenvDefault("LOG_LEVEL", "info"),
		GeminiApiKey:     os.Getenv("GEMINI_API_KEY"),
		GeminiModel:      getenvDefault("GEMINI_MODEL", DefaultGeminiModel),
		GeminiEndpoint:   getenvDefault("GEMINI_ENDPOINT", DefaultGeminiEndpoint),
	}

	if config.GridRows, err = getenvInt("GRID_ROWS", DefaultGridRows); err != nil {
		return
	}
	config.GridCols, err = getenvInt("GRID_COLS", DefaultGridCols)

	return
}

// ApplyLogLevel maps LOG_LEVEL onto alog
func (c Config) ApplyLogLevel() error {
	levels := map[string]alog.LogLevel{
		"debug":   alog.LevelDebug,
		"info":    alog.LevelInfo,
		"notice":  alog.LevelNotice,
		"warning": alog.LevelWarning,
		"warn":    alog.LevelWarning,
		"error":   alog.LevelError,
	}

	level, ok := levels[strings.ToLower(c.LogLevel)]
	if !ok {
		return fmt.Errorf("LOG_LEVEL `%s`: %w", c.LogLevel, InvalidConfigError)
	}

	alog.SetLevel(level)
	return nil
}

func getenvDefault(name string, defaultValue string) string {
	if value, ok := os.LookupEnv(name); ok && value != "" {
		return value
	}
	return defaultValue
}

func getenvInt(name string, defaultValue int) (int, error) {
	value := os.Getenv(name)
	if value == "" {
		return defaultValue, nil
	}

	number, err := strconv.Atoi(value)
	if err != nil || number <= 0 {
		return 0, fmt.Errorf("%s `%s`: %w", name, value, InvalidConfigError)
	}
	return number, nil
}
