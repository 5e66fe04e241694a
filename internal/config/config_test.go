package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(envListenAddr, "")
	t.Setenv(envDBPath, "")
	t.Setenv(envLogLevel, "")
	t.Setenv(envScriptRoot, "")
	t.Setenv(envDefaultScript, "")
	t.Setenv(envDebug, "")
	t.Setenv(envInterpreter, "")

	cfg := Load()

	if cfg.ListenAddr != defaultListenAddr {
		t.Errorf("ListenAddr = %q, want %q", cfg.ListenAddr, defaultListenAddr)
	}
	if cfg.DBPath != defaultDBPath {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, defaultDBPath)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want %v", cfg.LogLevel, slog.LevelInfo)
	}
	if cfg.ScriptRoot != defaultScriptRoot {
		t.Errorf("ScriptRoot = %q, want %q", cfg.ScriptRoot, defaultScriptRoot)
	}
	if cfg.DefaultScript != filepath.Join(defaultScriptRoot, defaultScriptName) {
		t.Errorf("DefaultScript = %q, want %q under the script root", cfg.DefaultScript, defaultScriptName)
	}
	if cfg.Interpreter != defaultInterpreter {
		t.Errorf("Interpreter = %q, want %q", cfg.Interpreter, defaultInterpreter)
	}
	if cfg.Debug {
		t.Error("Debug = true, want false by default")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv(envListenAddr, ":9090")
	t.Setenv(envDBPath, "/tmp/test.db")
	t.Setenv(envLogLevel, "debug")
	t.Setenv(envScriptRoot, "/srv/scripts")
	t.Setenv(envInterpreter, "boxlang")
	t.Setenv(envRuntimeConfig, "/etc/lamina/runtime.json")

	cfg := Load()

	if cfg.ListenAddr != ":9090" {
		t.Errorf("ListenAddr = %q, want %q", cfg.ListenAddr, ":9090")
	}
	if cfg.DBPath != "/tmp/test.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "/tmp/test.db")
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want %v", cfg.LogLevel, slog.LevelDebug)
	}
	if cfg.ScriptRoot != "/srv/scripts" {
		t.Errorf("ScriptRoot = %q, want %q", cfg.ScriptRoot, "/srv/scripts")
	}
	if cfg.DefaultScript != "/srv/scripts/Lambda.bx" {
		t.Errorf("DefaultScript = %q, want derived from ScriptRoot", cfg.DefaultScript)
	}
	if cfg.Interpreter != "boxlang" {
		t.Errorf("Interpreter = %q, want %q", cfg.Interpreter, "boxlang")
	}
	if cfg.RuntimeConfig != "/etc/lamina/runtime.json" {
		t.Errorf("RuntimeConfig = %q, want %q", cfg.RuntimeConfig, "/etc/lamina/runtime.json")
	}
}

func TestDefaultScriptOverride(t *testing.T) {
	t.Setenv(envScriptRoot, "/srv/scripts")
	t.Setenv(envDefaultScript, "/srv/other/Main.bx")

	cfg := Load()

	if cfg.DefaultScript != "/srv/other/Main.bx" {
		t.Errorf("DefaultScript = %q, want explicit override to win", cfg.DefaultScript)
	}
}

func TestDebugForcesDebugLevel(t *testing.T) {
	t.Setenv(envLogLevel, "warn")
	t.Setenv(envDebug, "true")

	cfg := Load()

	if !cfg.Debug {
		t.Fatal("Debug = false, want true")
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want debug when the debug flag is set", cfg.LogLevel)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"invalid", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		got := parseLogLevel(tt.input)
		if got != tt.want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNewLoggerOutputsJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelInfo)
	if logger == nil {
		t.Fatal("NewLogger returned nil")
	}

	logger.Info("test message", "key", "value")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("logger output is not valid JSON: %v\noutput: %s", err, buf.String())
	}

	for _, key := range []string{"time", "level", "msg"} {
		if _, ok := entry[key]; !ok {
			t.Errorf("JSON output missing expected key %q", key)
		}
	}
	if entry["msg"] != "test message" {
		t.Errorf("msg = %v, want %q", entry["msg"], "test message")
	}
	if entry["key"] != "value" {
		t.Errorf("key = %v, want %q", entry["key"], "value")
	}
}
