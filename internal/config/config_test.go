package config

import (
	"math"
	"testing"
)

func TestNormalizeDirArg(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no trailing slash", "/photos/2024", "/photos/2024"},
		{"single trailing slash", "/photos/2024/", "/photos/2024"},
		{"multiple trailing slashes", "/photos/2024///", "/photos/2024"},
		{"root path", "/", "/"},
		{"relative path", "photos", "photos"},
		{"windows separators", `C:\Users\me\Pictures\`, "C:/Users/me/Pictures"},
		{"surrounding whitespace", "  /photos \n", "/photos"},
		{"empty string", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeDirArg(tt.in)
			if got != tt.want {
				t.Errorf("NormalizeDirArg(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidate_Discovery(t *testing.T) {
	tests := []struct {
		name    string
		mode    DiscoveryMode
		wantErr bool
	}{
		{"shallow is valid", DiscoveryShallow, false},
		{"recursive is valid", DiscoveryRecursive, false},
		{"empty is invalid", "", true},
		{"unknown is invalid", "glob", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Discovery = tt.mode
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_NumericBounds(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"quality 100", func(c *Config) { c.Quality = 100 }, false},
		{"quality 0", func(c *Config) { c.Quality = 0 }, true},
		{"quality 101", func(c *Config) { c.Quality = 101 }, true},
		{"factor 1 never shrinks", func(c *Config) { c.ReductionFactor = 1 }, true},
		{"zero min width", func(c *Config) { c.MinWidth = 0 }, true},
		{"negative min height", func(c *Config) { c.MinHeight = -5 }, true},
		{"largest JPEG side", func(c *Config) { c.MinWidth = 65535 }, false},
		{"min width past JPEG limit", func(c *Config) { c.MinWidth = 65536 }, true},
		{"min height that overflows factor product", func(c *Config) { c.MinHeight = math.MaxInt }, true},
		{"zero workers", func(c *Config) { c.Workers = 0 }, true},
		{"one worker", func(c *Config) { c.Workers = 1 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_ColorMode(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ColorMode = "sometimes"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should reject unknown color mode")
	}
}

func TestValidate_EmptyRootAllowed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RootDir = ""
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() should allow empty RootDir (prompted later), got: %v", err)
	}
}

func TestParseFlags(t *testing.T) {
	cfg := DefaultConfig()
	args := []string{"-r", "--quality", "70", "--min-width", "800", "-w", "3", "--no-color", "-y", "/photos/trip/"}
	if err := ParseFlags(&cfg, args, "test"); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if cfg.Discovery != DiscoveryRecursive {
		t.Errorf("Discovery = %q, want %q", cfg.Discovery, DiscoveryRecursive)
	}
	if cfg.Quality != 70 {
		t.Errorf("Quality = %d, want 70", cfg.Quality)
	}
	if cfg.MinWidth != 800 || cfg.MinHeight != 1080 {
		t.Errorf("MinWidth/MinHeight = %d/%d, want 800/1080", cfg.MinWidth, cfg.MinHeight)
	}
	if cfg.Workers != 3 {
		t.Errorf("Workers = %d, want 3", cfg.Workers)
	}
	if cfg.ColorMode != ColorNever {
		t.Errorf("ColorMode = %q, want %q", cfg.ColorMode, ColorNever)
	}
	if !cfg.AssumeYes {
		t.Error("AssumeYes should be set by -y")
	}
	if cfg.RootDir != "/photos/trip" {
		t.Errorf("RootDir = %q, want %q", cfg.RootDir, "/photos/trip")
	}
}

func TestParseFlags_NoArgsKeepsDefaults(t *testing.T) {
	cfg := DefaultConfig()
	if err := ParseFlags(&cfg, nil, "test"); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("config changed without flags: %+v", cfg)
	}
}

func TestParseFlags_TooManyFolders(t *testing.T) {
	cfg := DefaultConfig()
	if err := ParseFlags(&cfg, []string{"/a", "/b"}, "test"); err == nil {
		t.Error("ParseFlags should reject two positional folders")
	}
}

func TestDefaultConfig_SaneDefaults(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Quality != 50 {
		t.Errorf("default Quality = %d, want 50", cfg.Quality)
	}
	if cfg.ReductionFactor != 2 {
		t.Errorf("default ReductionFactor = %d, want 2", cfg.ReductionFactor)
	}
	if cfg.MinWidth != 1080 || cfg.MinHeight != 1080 {
		t.Errorf("default minimum = %dx%d, want 1080x1080", cfg.MinWidth, cfg.MinHeight)
	}
	if cfg.Workers != 5 {
		t.Errorf("default Workers = %d, want 5", cfg.Workers)
	}
	if cfg.Discovery != DiscoveryShallow {
		t.Errorf("default Discovery = %q, want %q", cfg.Discovery, DiscoveryShallow)
	}
	if cfg.DryRun {
		t.Error("default DryRun should be false")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got: %v", err)
	}
}
