package carousel

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Interval() != 2*time.Second {
		t.Errorf("Interval() = %v, want 2s", cfg.Interval())
	}
	if cfg.SettleDelay() != time.Second {
		t.Errorf("SettleDelay() = %v, want 1s", cfg.SettleDelay())
	}
	if len(cfg.Items) != 4 || cfg.Items[0] != "snowflake" {
		t.Errorf("Items = %v, want the four stock symbols", cfg.Items)
	}
	if !cfg.Autoplay {
		t.Error("autoplay should default on")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Interval() != DefaultInterval {
		t.Errorf("Interval() = %v, want default", cfg.Interval())
	}
}

func TestLoadConfigFormats(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
	}{
		{
			name: "toml",
			file: "carousel.toml",
			body: `
autoplay = false
interval_seconds = 3.5
items = ["a", "b", "c"]

[surface]
animation_ms = 400
easing = "linear"
`,
		},
		{
			name: "yaml",
			file: "carousel.yaml",
			body: `
autoplay: false
interval_seconds: 3.5
items: [a, b, c]
surface:
  animation_ms: 400
  easing: linear
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			if err := os.WriteFile(path, []byte(tt.body), 0644); err != nil {
				t.Fatal(err)
			}

			cfg, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("LoadConfig() error = %v", err)
			}
			if cfg.Autoplay {
				t.Error("Autoplay = true, want false")
			}
			if cfg.Interval() != 3500*time.Millisecond {
				t.Errorf("Interval() = %v, want 3.5s", cfg.Interval())
			}
			if cfg.SettleDelay() != DefaultSettleDelay {
				t.Errorf("SettleDelay() = %v, want default", cfg.SettleDelay())
			}
			if len(cfg.Items) != 3 || cfg.Items[2] != "c" {
				t.Errorf("Items = %v", cfg.Items)
			}
			if cfg.Surface.AnimationMS != 400 || cfg.Surface.Easing != "linear" {
				t.Errorf("Surface = %+v", cfg.Surface)
			}
			if cfg.Surface.SpringFrequency != DefaultConfig().Surface.SpringFrequency {
				t.Errorf("SpringFrequency = %v, want default", cfg.Surface.SpringFrequency)
			}
		})
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantInput bool
	}{
		{name: "negative interval", body: "interval_seconds = -1.0\n"},
		{name: "empty items", body: "items = []\n", wantInput: true},
		{name: "blank item", body: "items = [\"a\", \" \"]\n", wantInput: true},
		{name: "negative damping", body: "[surface]\nspring_damping = -0.5\n"},
		{name: "malformed", body: "interval_seconds = \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "carousel.toml")
			if err := os.WriteFile(path, []byte(tt.body), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := LoadConfig(path)
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.wantInput && !errors.Is(err, ErrInvalidInput) {
				t.Errorf("error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	for _, name := range []string{"carousel.toml", "carousel.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			want := DefaultConfig()
			want.Items = []string{"x", "y"}
			want.IntervalSeconds = 4

			if err := SaveConfig(path, want); err != nil {
				t.Fatalf("SaveConfig() error = %v", err)
			}
			got, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("LoadConfig() error = %v", err)
			}
			if got.Interval() != 4*time.Second || len(got.Items) != 2 || got.Items[1] != "y" {
				t.Errorf("round trip = %+v", got)
			}
		})
	}
}
