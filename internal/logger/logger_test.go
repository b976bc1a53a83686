package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPathEnv(t *testing.T) {
	t.Setenv("KIRO_LOG_FILE", "")
	t.Setenv("KIRO_CONFIG_HOME", "/tmp/kiro-config")
	path, err := Path()
	if err != nil {
		t.Fatalf("Path error: %v", err)
	}
	if path != "/tmp/kiro-config/kiro.log" {
		t.Fatalf("Path = %q, want %q", path, "/tmp/kiro-config/kiro.log")
	}
}

func TestInitWritesLevels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "kiro.log")
	t.Setenv("KIRO_LOG_FILE", path)

	if err := Init(false); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	Debug("hidden debug")
	Warn("visible warning", "key", "value")
	Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "visible warning") {
		t.Fatalf("log missing warning: %q", out)
	}
	if strings.Contains(out, "hidden debug") {
		t.Fatalf("debug line written at info level: %q", out)
	}
}

func TestHelpersWithoutInit(t *testing.T) {
	Close()
	Info("dropped")
	Error("dropped")
}
