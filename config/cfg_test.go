package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rupor-github/gencfg"
	yaml "gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfiguration_NoFile(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() with empty path error = %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}

	if cfg.Version != 1 {
		t.Errorf("Default config version = %d, want 1", cfg.Version)
	}
	if cfg.Generator.ClassSeparator != "_" {
		t.Errorf("Default class separator = %q, want \"_\"", cfg.Generator.ClassSeparator)
	}
	if cfg.Generator.Indent != "  " {
		t.Errorf("Default indent = %q, want two spaces", cfg.Generator.Indent)
	}
	if !cfg.Generator.Banner {
		t.Error("Expected banner to be enabled by default")
	}
	if cfg.Logging.ConsoleLogger.Level != "normal" {
		t.Errorf("Default console level = %q, want normal", cfg.Logging.ConsoleLogger.Level)
	}
	if !strings.HasSuffix(cfg.Logging.FileLogger.Destination, "gvs.log") {
		t.Errorf("Default file log destination = %q", cfg.Logging.FileLogger.Destination)
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	path := writeConfig(t, `version: 1
generator:
  class_separator: "--"
  indent: "    "
  banner: false
logging:
  console:
    level: debug
  file:
    level: normal
    mode: append
`)

	cfg, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if cfg.Generator.ClassSeparator != "--" {
		t.Errorf("ClassSeparator = %q, want \"--\"", cfg.Generator.ClassSeparator)
	}
	if cfg.Generator.Indent != "    " {
		t.Errorf("Indent = %q, want four spaces", cfg.Generator.Indent)
	}
	if cfg.Generator.Banner {
		t.Error("Expected Banner to be false")
	}
	if cfg.Logging.ConsoleLogger.Level != "debug" {
		t.Errorf("Console level = %q, want debug", cfg.Logging.ConsoleLogger.Level)
	}
	if cfg.Logging.FileLogger.Mode != "append" {
		t.Errorf("File mode = %q, want append", cfg.Logging.FileLogger.Mode)
	}
	// not overwritten by file - comes from template
	if cfg.Reporting.Destination != "gvs-report.zip" {
		t.Errorf("Reporting destination = %q", cfg.Reporting.Destination)
	}
}

func TestLoadConfiguration_NonExistentFile(t *testing.T) {
	_, err := LoadConfiguration("/nonexistent/config.yaml")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestLoadConfiguration_InvalidYAML(t *testing.T) {
	path := writeConfig(t, `version: 1
generator:
  banner: true
  invalid indent
`)
	if _, err := LoadConfiguration(path); err == nil {
		t.Error("Expected error for invalid YAML")
	}
}

func TestLoadConfiguration_UnknownFields(t *testing.T) {
	path := writeConfig(t, `version: 1
unknown_field: value
`)
	if _, err := LoadConfiguration(path); err == nil {
		t.Error("Expected error for unknown fields")
	}
}

func TestLoadConfiguration_ValidationError(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"version", "version: 2\n"},
		{"empty separator", "version: 1\ngenerator:\n  class_separator: \"\"\n"},
		{"dot separator", "version: 1\ngenerator:\n  class_separator: \".\"\n"},
		{"console level", "version: 1\nlogging:\n  console:\n    level: loud\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfiguration(writeConfig(t, tt.content)); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestLoadConfiguration_WithOptions(t *testing.T) {
	option := func(opts *gencfg.ProcessingOptions) {
		// Options are opaque, just test that we can pass them
	}

	cfg, err := LoadConfiguration("", option)
	if err != nil {
		t.Fatalf("LoadConfiguration() with options error = %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}
}

func TestPrepare(t *testing.T) {
	data, err := Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if len(data) == 0 {
		t.Fatal("Prepare() returned empty data")
	}

	if _, err = unmarshalConfig(data, &Config{}, true); err != nil {
		t.Errorf("Prepared config is not valid: %v", err)
	}
}

func TestDump(t *testing.T) {
	cfg := &Config{
		Version: 1,
		Generator: GeneratorConfig{
			ClassSeparator: "_",
			Indent:         "\t",
			Banner:         true,
		},
		Logging: LoggingConfig{
			ConsoleLogger: LoggerConfig{Level: "normal"},
			FileLogger:    LoggerConfig{Level: "none"},
		},
		Reporting: ReporterConfig{Destination: "report.zip"},
	}

	data, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}

	var back Config
	if err := yaml.Unmarshal(data, &back); err != nil {
		t.Fatalf("Dumped config does not unmarshal: %v", err)
	}
	if back.Generator != cfg.Generator {
		t.Errorf("Generator = %+v, want %+v", back.Generator, cfg.Generator)
	}
	if back.Reporting.Destination != "report.zip" {
		t.Errorf("Reporting destination = %q", back.Reporting.Destination)
	}
}
