package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	defaultListenAddr  = ":8080"
	defaultDBPath      = "lamina.db"
	defaultScriptRoot  = "/var/task"
	defaultScriptName  = "Lambda.bx"
	defaultInterpreter = "bx"

	envListenAddr    = "LAMINA_LISTEN_ADDR"
	envDBPath        = "LAMINA_DB_PATH"
	envLogLevel      = "LAMINA_LOG_LEVEL"
	envScriptRoot    = "LAMINA_SCRIPT_ROOT"
	envDefaultScript = "LAMINA_DEFAULT_SCRIPT"
	envDebug         = "LAMINA_DEBUG"
	envInterpreter   = "LAMINA_INTERPRETER"
	envRuntimeConfig = "LAMINA_RUNTIME_CONFIG"
)

// Config holds application configuration loaded from environment variables.
// It is read once at process start, never per invocation.
type Config struct {
	ListenAddr string
	DBPath     string
	LogLevel   slog.Level

	// ScriptRoot is the directory convention routing looks in.
	ScriptRoot string
	// DefaultScript is the fallback script when no route matches.
	DefaultScript string
	// Debug enables verbose logging and forwards the flag to the interpreter.
	Debug bool
	// Interpreter is the script interpreter binary.
	Interpreter string
	// RuntimeConfig is an optional configuration file handed to the
	// interpreter on every call.
	RuntimeConfig string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	cfg := Config{
		ListenAddr:  defaultListenAddr,
		DBPath:      defaultDBPath,
		LogLevel:    slog.LevelInfo,
		ScriptRoot:  defaultScriptRoot,
		Interpreter: defaultInterpreter,
	}

	if v := os.Getenv(envListenAddr); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv(envDBPath); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv(envLogLevel); v != "" {
		cfg.LogLevel = parseLogLevel(v)
	}
	if v := os.Getenv(envScriptRoot); v != "" {
		cfg.ScriptRoot = v
	}
	cfg.DefaultScript = filepath.Join(cfg.ScriptRoot, defaultScriptName)
	if v := os.Getenv(envDefaultScript); v != "" {
		cfg.DefaultScript = v
	}
	if v := os.Getenv(envDebug); v != "" {
		debug, err := strconv.ParseBool(v)
		cfg.Debug = err == nil && debug
		if cfg.Debug {
			cfg.LogLevel = slog.LevelDebug
		}
	}
	if v := os.Getenv(envInterpreter); v != "" {
		cfg.Interpreter = v
	}
	if v := os.Getenv(envRuntimeConfig); v != "" {
		cfg.RuntimeConfig = v
	}

	return cfg
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a structured JSON logger writing to w at the configured level.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}
