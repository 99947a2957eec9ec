package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	return path
}

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"seconds", "30s", 30 * time.Second, false},
		{"minutes", "5m", 5 * time.Minute, false},
		{"complex", "1h30m", 90 * time.Minute, false},
		{"milliseconds", "100ms", 100 * time.Millisecond, false},
		{"invalid", "invalid", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))

			if (err != nil) != tt.wantErr {
				t.Errorf("UnmarshalText() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr && d.Duration != tt.expected {
				t.Errorf("UnmarshalText() = %v, want %v", d.Duration, tt.expected)
			}
		})
	}
}

func TestDuration_MarshalText(t *testing.T) {
	d := Duration{5 * time.Minute}
	result, err := d.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() error = %v", err)
	}
	if string(result) != "5m0s" {
		t.Errorf("MarshalText() = %v, want 5m0s", string(result))
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.General.Name != "mote" {
		t.Errorf("General.Name = %v, want mote", cfg.General.Name)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Errorf("Log = %+v, want info/text", cfg.Log)
	}
	if cfg.Frontend.MaxSourceLength != 1<<20 {
		t.Errorf("Frontend.MaxSourceLength = %v, want 1 MiB", cfg.Frontend.MaxSourceLength)
	}
	if cfg.Frontend.CacheSize != 0 || cfg.Frontend.CacheTTL.Duration != 5*time.Minute {
		t.Errorf("Frontend cache = %d/%v, want disabled with 5m TTL", cfg.Frontend.CacheSize, cfg.Frontend.CacheTTL.Duration)
	}
	if cfg.History.Path != filepath.Join("./data", "history.db") {
		t.Errorf("History.Path = %v", cfg.History.Path)
	}
	if cfg.History.ListLimit != 20 {
		t.Errorf("History.ListLimit = %v, want 20", cfg.History.ListLimit)
	}
	if cfg.Server.Timeout.Duration != 10*time.Second {
		t.Errorf("Server.Timeout = %v, want 10s", cfg.Server.Timeout.Duration)
	}
	if cfg.ServerAddress() != "127.0.0.1:9300" {
		t.Errorf("ServerAddress() = %v, want 127.0.0.1:9300", cfg.ServerAddress())
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() on defaults error = %v", err)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/mote.toml")
	if err == nil {
		t.Error("Load() expected error for non-existent file")
	}
}

func TestLoad_UnsupportedFormat(t *testing.T) {
	path := writeConfig(t, "mote.ini", "name=x")
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "unsupported config format") {
		t.Errorf("Load() error = %v, want unsupported format", err)
	}
}

func TestLoad_Formats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"toml", "mote.toml", `
[general]
environment = "test"

[log]
level = "debug"

[history]
enabled = true
path = "/tmp/mote-history.db"

[server]
port = 9999
timeout = "3s"
`},
		{"yaml", "mote.yaml", `
general:
  environment: test
log:
  level: debug
history:
  enabled: true
  path: /tmp/mote-history.db
server:
  port: 9999
  timeout: 3s
`},
		{"cue", "mote.cue", `
general: environment: "test"
log: level: "debug"
history: {
	enabled: true
	path:    "/tmp/mote-history.db"
}
server: {
	port:    9999
	timeout: "3s"
}
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tt.file, tt.content))
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}

			if cfg.General.Environment != "test" {
				t.Errorf("General.Environment = %v, want test", cfg.General.Environment)
			}
			if cfg.Log.Level != "debug" {
				t.Errorf("Log.Level = %v, want debug", cfg.Log.Level)
			}
			if !cfg.History.Enabled || cfg.History.Path != "/tmp/mote-history.db" {
				t.Errorf("History = %+v", cfg.History)
			}
			if cfg.Server.Port != 9999 {
				t.Errorf("Server.Port = %v, want 9999", cfg.Server.Port)
			}
			if cfg.Server.Timeout.Duration != 3*time.Second {
				t.Errorf("Server.Timeout = %v, want 3s", cfg.Server.Timeout.Duration)
			}

			// Defaults for missing values
			if cfg.Server.Host != "127.0.0.1" {
				t.Errorf("Server.Host = %v, want 127.0.0.1 (default)", cfg.Server.Host)
			}
			if cfg.Frontend.MaxSourceLength != 1<<20 {
				t.Errorf("Frontend.MaxSourceLength = %v, want default", cfg.Frontend.MaxSourceLength)
			}
		})
	}
}

func TestLoad_SchemaViolations(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"port out of range", "[server]\nport = 70000\n"},
		{"unknown level", "[log]\nlevel = \"loud\"\n"},
		{"unknown environment", "[general]\nenvironment = \"staging\"\n"},
		{"negative limit", "[frontend]\nmax_source_length = -5\n"},
		{"negative cache size", "[frontend]\ncache_size = -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, "mote.toml", tt.content))
			if err == nil {
				t.Fatal("Load() expected schema error")
			}
			if !strings.Contains(err.Error(), "invalid config") {
				t.Errorf("Load() error = %v, want invalid config", err)
			}
		})
	}
}

func TestConfig_expandEnvVars(t *testing.T) {
	t.Setenv("MOTE_TEST_DIR", "/srv/mote")

	cfg := &Config{
		General: GeneralConfig{DataDir: "$MOTE_TEST_DIR/data"},
		History: HistoryConfig{Path: "${MOTE_TEST_DIR}/history.db"},
	}
	cfg.expandEnvVars()

	if cfg.General.DataDir != "/srv/mote/data" {
		t.Errorf("DataDir = %v, want /srv/mote/data", cfg.General.DataDir)
	}
	if cfg.History.Path != "/srv/mote/history.db" {
		t.Errorf("History.Path = %v, want /srv/mote/history.db", cfg.History.Path)
	}
}

func TestLoadDefault(t *testing.T) {
	t.Run("no config found", func(t *testing.T) {
		t.Setenv(EnvConfigPath, "")
		t.Setenv("HOME", t.TempDir())
		t.Chdir(t.TempDir())

		cfg, path, err := LoadDefault("")
		if err != nil {
			t.Fatalf("LoadDefault() error = %v", err)
		}
		if path != "" {
			t.Errorf("path = %q, want built-in defaults", path)
		}
		if cfg.General.Name != "mote" {
			t.Errorf("General.Name = %v, want mote", cfg.General.Name)
		}
	})

	t.Run("environment variable", func(t *testing.T) {
		path := writeConfig(t, "env.toml", "[general]\nname = \"from-env\"\n")
		t.Setenv(EnvConfigPath, path)

		cfg, used, err := LoadDefault("")
		if err != nil {
			t.Fatalf("LoadDefault() error = %v", err)
		}
		if used != path || cfg.General.Name != "from-env" {
			t.Errorf("LoadDefault() = %q, %q", used, cfg.General.Name)
		}
	})

	t.Run("explicit path wins", func(t *testing.T) {
		t.Setenv(EnvConfigPath, writeConfig(t, "env.toml", "[general]\nname = \"from-env\"\n"))
		explicit := writeConfig(t, "explicit.yaml", "general:\n  name: explicit\n")

		cfg, used, err := LoadDefault(explicit)
		if err != nil {
			t.Fatalf("LoadDefault() error = %v", err)
		}
		if used != explicit || cfg.General.Name != "explicit" {
			t.Errorf("LoadDefault() = %q, %q", used, cfg.General.Name)
		}
	})

	t.Run("working directory", func(t *testing.T) {
		t.Setenv(EnvConfigPath, "")
		dir := t.TempDir()
		if err := os.MkdirAll(filepath.Join(dir, "configs"), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, "configs", "mote.toml"), []byte("[server]\nport = 9555\n"), 0644); err != nil {
			t.Fatal(err)
		}
		t.Chdir(dir)

		cfg, used, err := LoadDefault("")
		if err != nil {
			t.Fatalf("LoadDefault() error = %v", err)
		}
		if used != "./configs/mote.toml" || cfg.Server.Port != 9555 {
			t.Errorf("LoadDefault() = %q, port %d", used, cfg.Server.Port)
		}
	})
}

func TestSchema(t *testing.T) {
	if !strings.Contains(Schema(), "max_source_length") {
		t.Error("Schema() should describe the frontend limits")
	}
}
