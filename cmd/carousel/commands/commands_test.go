package commands

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/agiangrant/carousel"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestTraceCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "carousel.toml")
	cfg := carousel.DefaultConfig()
	cfg.Items = []string{"A", "B", "C"}
	if err := carousel.SaveConfig(path, cfg); err != nil {
		t.Fatalf("SaveConfig() error = %v", err)
	}

	out, err := execute(t, "trace", "--config", path, "--ticks", "4")
	if err != nil {
		t.Fatalf("trace error = %v", err)
	}

	want := []string{
		"0s  pages    3",
		"0s  jump     slot 1 (A)",
		"2s  animate  slot 2 (B)",
		"4s  animate  slot 3 (C)",
		"6s  animate  slot 4 (A)",
		"7s  jump     slot 1 (A)",
		"8s  animate  slot 2 (B)",
	}
	last := -1
	for _, line := range want {
		i := strings.Index(out, line)
		if i < 0 {
			t.Fatalf("output missing %q:\n%s", line, out)
		}
		if i < last {
			t.Errorf("%q out of order:\n%s", line, out)
		}
		last = i
	}
	if strings.Contains(out, "slot 0 ") {
		t.Errorf("autoplay visited the leading clone:\n%s", out)
	}
}

func TestTraceCommandInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "carousel.yaml")
	if err := os.WriteFile(path, []byte("items: []\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "trace", "--config", path); err == nil {
		t.Error("trace with no items succeeded")
	}
}

func TestInitCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")

	out, err := execute(t, "init", "--config", path)
	if err != nil {
		t.Fatalf("init error = %v", err)
	}
	if !strings.Contains(out, "Wrote "+path) {
		t.Errorf("output = %q", out)
	}

	cfg, err := carousel.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if len(cfg.Items) != len(carousel.DefaultConfig().Items) {
		t.Errorf("Items = %v", cfg.Items)
	}

	if _, err := execute(t, "init", "--config", path); err == nil {
		t.Error("init overwrote an existing file without --force")
	}
	if _, err := execute(t, "init", "--config", path, "--force"); err != nil {
		t.Errorf("init --force error = %v", err)
	}
}

func TestPagerConfig(t *testing.T) {
	s := carousel.DefaultConfig().Surface
	cfg, err := pagerConfig(s, 120)
	if err != nil {
		t.Fatalf("pagerConfig() error = %v", err)
	}
	if cfg.PageWidth != 120 || cfg.FPS != frameRate || cfg.Easing == nil {
		t.Errorf("pagerConfig() = %+v", cfg)
	}

	s.Easing = "bounce"
	if _, err := pagerConfig(s, 120); err == nil {
		t.Error("unknown easing accepted")
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if out != "carousel "+Version+"\n" {
		t.Errorf("output = %q", out)
	}
}

func TestRunTerminalShutsDown(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- runTerminal(ctx, screen, carousel.DefaultConfig(), log.New(io.Discard), true)
	}()
	time.AfterFunc(200*time.Millisecond, cancel)

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("runTerminal() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("runTerminal did not return after cancel")
	}
}
