package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.AI.Model != "gemini/gemini-2.5-flash" {
		t.Errorf("expected default ai model, got %s", cfg.AI.Model)
	}

	if cfg.Providers["gemini"].APIKeyEnv != "GEMINI_API_KEY" {
		t.Errorf("expected gemini api key env, got %s", cfg.Providers["gemini"].APIKeyEnv)
	}

	if cfg.Imaging.DefaultQuality != 90 {
		t.Errorf("expected default_quality = 90, got %d", cfg.Imaging.DefaultQuality)
	}

	if cfg.PDF.Delay != 2*time.Second {
		t.Errorf("expected pdf delay = 2s, got %s", cfg.PDF.Delay)
	}

	if cfg.Permissions.AI != PermissionAllow {
		t.Errorf("expected ai = allow, got %s", cfg.Permissions.AI)
	}

	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected server addr :8080, got %s", cfg.Server.Addr)
	}
}

func TestLoad_CustomConfig(t *testing.T) {
	tmpDir := t.TempDir()
	cfgFile := filepath.Join(tmpDir, "config.yaml")

	configContent := `
ai:
  model: anthropic/claude-opus-4-5
  legacy_error_text: true
  timeout: 15s

imaging:
  default_quality: 70

pdf:
  delay: 0s

permissions:
  ai: deny
  pdf: ask

catalog:
  path: /tmp/tools.yaml
  watch: true
`
	if err := os.WriteFile(cfgFile, []byte(configContent), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(cfgFile)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.AI.Model != "anthropic/claude-opus-4-5" {
		t.Errorf("expected anthropic model, got %s", cfg.AI.Model)
	}
	if !cfg.AI.LegacyErrorText {
		t.Error("expected legacy_error_text = true")
	}
	if cfg.AI.Timeout != 15*time.Second {
		t.Errorf("expected timeout 15s, got %s", cfg.AI.Timeout)
	}
	if cfg.Imaging.DefaultQuality != 70 {
		t.Errorf("expected default_quality = 70, got %d", cfg.Imaging.DefaultQuality)
	}
	if cfg.PDF.Delay != 0 {
		t.Errorf("expected pdf delay = 0, got %s", cfg.PDF.Delay)
	}
	if cfg.Permissions.AI != PermissionDeny {
		t.Errorf("expected ai = deny, got %s", cfg.Permissions.AI)
	}
	if cfg.Permissions.PDF != PermissionAsk {
		t.Errorf("expected pdf = ask, got %s", cfg.Permissions.PDF)
	}
	if cfg.Permissions.Image != PermissionAllow {
		t.Errorf("expected image = allow, got %s", cfg.Permissions.Image)
	}
	if !cfg.Catalog.Watch || cfg.Catalog.Path != "/tmp/tools.yaml" {
		t.Errorf("unexpected catalog config: %+v", cfg.Catalog)
	}

	// Untouched provider defaults survive a partial file.
	if cfg.Providers["ollama"].Endpoint != "http://localhost:11434" {
		t.Errorf("expected ollama endpoint default, got %s", cfg.Providers["ollama"].Endpoint)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("QUICKTOOLS_SERVER_ADDR", "127.0.0.1:9999")
	t.Setenv("QUICKTOOLS_LOG_LEVEL", "debug")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Addr != "127.0.0.1:9999" {
		t.Errorf("expected env addr, got %s", cfg.Server.Addr)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected debug level, got %s", cfg.Log.Level)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad permission", "permissions:\n  image: sometimes\n"},
		{"quality too high", "imaging:\n  default_quality: 101\n"},
		{"negative delay", "pdf:\n  delay: -1s\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfgFile := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(cfgFile, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(cfgFile); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestPermission_Values(t *testing.T) {
	tests := []struct {
		perm Permission
		want string
	}{
		{PermissionAsk, "ask"},
		{PermissionAllow, "allow"},
		{PermissionDeny, "deny"},
	}

	for _, tt := range tests {
		if string(tt.perm) != tt.want {
			t.Errorf("Permission = %s, want %s", tt.perm, tt.want)
		}
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("QUICKTOOLS_DOTENV_TEST=from-file\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("QUICKTOOLS_DOTENV_TEST", "")
	os.Unsetenv("QUICKTOOLS_DOTENV_TEST")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}
	if got := os.Getenv("QUICKTOOLS_DOTENV_TEST"); got != "from-file" {
		t.Errorf("expected from-file, got %q", got)
	}

	if err := LoadDotEnv(filepath.Join(dir, "missing.env")); err != nil {
		t.Errorf("missing file should not error, got %v", err)
	}
}

func TestNewViper_ReadsFileOverDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("imaging:\n  default_quality: 70\n"), 0644); err != nil {
		t.Fatal(err)
	}

	v, err := NewViper(path)
	if err != nil {
		t.Fatalf("NewViper() error = %v", err)
	}
	if got := v.GetInt("imaging.default_quality"); got != 70 {
		t.Errorf("expected 70, got %d", got)
	}
	if got := v.GetString("server.addr"); got != ":8080" {
		t.Errorf("expected default addr, got %s", got)
	}
}

func TestPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := Path("")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(home, ".config", "quicktools", "config.yaml"); got != want {
		t.Errorf("Path() = %s, want %s", got, want)
	}

	if got, _ := Path("/tmp/x.yaml"); got != "/tmp/x.yaml" {
		t.Errorf("explicit path not returned, got %s", got)
	}
}

func TestWriteDefaults_RoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yaml")

	if err := WriteDefaults(path); err != nil {
		t.Fatalf("WriteDefaults() error = %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.ReadTimeout != 30*time.Second {
		t.Errorf("expected read timeout 30s, got %s", cfg.Server.ReadTimeout)
	}
	if cfg.Providers["ollama"].Endpoint != "http://localhost:11434" {
		t.Errorf("expected ollama endpoint, got %s", cfg.Providers["ollama"].Endpoint)
	}
}
