package config

import (
	"os"
	"path/filepath"
	"testing"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("restore cwd: %v", err)
		}
	})
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	if cfg.MPD.Port != 6600 {
		t.Errorf("default port = %d, want 6600", cfg.MPD.Port)
	}
	if cfg.Library.ArtistTag != "albumartist" {
		t.Errorf("default artist tag = %q, want albumartist", cfg.Library.ArtistTag)
	}
	if cfg.Library.NewWindowDays != 90 {
		t.Errorf("default new window = %d, want 90", cfg.Library.NewWindowDays)
	}
	if cfg.Cache.TTLMinutes != 60 {
		t.Errorf("default ttl = %d, want 60", cfg.Cache.TTLMinutes)
	}
	if cfg.Picker.Command != "fzf" {
		t.Errorf("default picker = %q, want fzf", cfg.Picker.Command)
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.MPD.Port = 6601
	cfg.Library.ArtistTag = "artist"
	cfg.Cache.TTLMinutes = 5
	cfg.Picker.Command = "fzy"
	applyDefaults(cfg)

	if cfg.MPD.Port != 6601 || cfg.Library.ArtistTag != "artist" ||
		cfg.Cache.TTLMinutes != 5 || cfg.Picker.Command != "fzy" {
		t.Errorf("explicit values overwritten: %+v", cfg)
	}
}

func TestLoad_FromLocalFile(t *testing.T) {
	dir := t.TempDir()
	content := `
[mpd]
host = "music.local"
port = 6601
password = "hunter2"

[library]
artist_tag = "artist"
new_window_days = 30

[cache]
ttl_minutes = 15
disable = true

[picker]
command = "fzy"
options = ["--lines=20"]
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	chdir(t, dir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.MPD.Host != "music.local" || cfg.MPD.Port != 6601 || cfg.MPD.Password != "hunter2" {
		t.Errorf("mpd config = %+v", cfg.MPD)
	}
	if cfg.Library.ArtistTag != "artist" || cfg.Library.NewWindowDays != 30 {
		t.Errorf("library config = %+v", cfg.Library)
	}
	if cfg.Cache.TTLMinutes != 15 || !cfg.Cache.Disable {
		t.Errorf("cache config = %+v", cfg.Cache)
	}
	if cfg.Picker.Command != "fzy" || len(cfg.Picker.Options) != 1 {
		t.Errorf("picker config = %+v", cfg.Picker)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.MPD.Port != 6600 || cfg.Picker.Command != "fzf" {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestGetConfigPaths(t *testing.T) {
	paths := getConfigPaths()

	if len(paths) == 0 {
		t.Fatal("getConfigPaths() returned empty slice")
	}
	if last := paths[len(paths)-1]; last != "config.toml" {
		t.Errorf("last config path = %q, want %q", last, "config.toml")
	}
	if home, err := os.UserHomeDir(); err == nil {
		want := filepath.Join(home, ".config", "fzmp", "config.toml")
		if paths[0] != want {
			t.Errorf("first config path = %q, want %q", paths[0], want)
		}
	}
}

func TestAddr(t *testing.T) {
	tests := []struct {
		name        string
		cfg         MPDConfig
		envHost     string
		envPort     string
		wantNetwork string
		wantAddr    string
		wantPass    string
	}{
		{
			name:        "defaults",
			wantNetwork: "tcp",
			wantAddr:    "localhost:6600",
		},
		{
			name:        "config host and port",
			cfg:         MPDConfig{Host: "music.local", Port: 6601},
			wantNetwork: "tcp",
			wantAddr:    "music.local:6601",
		},
		{
			name:        "socket path host",
			cfg:         MPDConfig{Host: "/run/mpd/socket"},
			wantNetwork: "unix",
			wantAddr:    "/run/mpd/socket",
		},
		{
			name:        "env host",
			envHost:     "envhost",
			envPort:     "6602",
			wantNetwork: "tcp",
			wantAddr:    "envhost:6602",
		},
		{
			name:        "env password at host",
			envHost:     "secret@envhost",
			wantNetwork: "tcp",
			wantAddr:    "envhost:6600",
			wantPass:    "secret",
		},
		{
			name:        "env socket",
			envHost:     "/run/user/1000/mpd.sock",
			wantNetwork: "unix",
			wantAddr:    "/run/user/1000/mpd.sock",
		},
		{
			name:        "config wins over env",
			cfg:         MPDConfig{Host: "cfghost", Password: "cfgpass"},
			envHost:     "envpass@envhost",
			wantNetwork: "tcp",
			wantAddr:    "cfghost:6600",
			wantPass:    "cfgpass",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("MPD_HOST", tt.envHost)
			t.Setenv("MPD_PORT", tt.envPort)

			cfg := &Config{MPD: tt.cfg}
			applyDefaults(cfg)
			network, addr, pass := cfg.Addr()

			if network != tt.wantNetwork || addr != tt.wantAddr || pass != tt.wantPass {
				t.Errorf("Addr() = (%q, %q, %q), want (%q, %q, %q)",
					network, addr, pass, tt.wantNetwork, tt.wantAddr, tt.wantPass)
			}
		})
	}
}
