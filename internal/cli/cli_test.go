package cli

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"walks/internal/scene"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("test") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("test") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("test") }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("got log output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	time.Sleep(5 * time.Millisecond)
	prog.done("test completed", "ticks", 3)
	out := buf.String()
	if !strings.Contains(out, "test completed") || !strings.Contains(out, "elapsed") || !strings.Contains(out, "ticks=3") {
		t.Errorf("progress output = %q", out)
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) == nil {
		t.Fatal("expected the default logger")
	}
	l := newLogger(io.Discard, log.InfoLevel)
	if got := loggerFromContext(withLogger(context.Background(), l)); got != l {
		t.Fatal("loggerFromContext should return the attached logger")
	}
}

func TestNewRunID(t *testing.T) {
	a, b := newRunID(), newRunID()
	if len(a) != 8 || a == b {
		t.Fatalf("run IDs %q %q", a, b)
	}
}

func TestSceneOptsLayering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.toml")
	if err := os.WriteFile(path, []byte("fiber_count = 9\nopacity = 0.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	var opts sceneOpts
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	opts.bind(fs, "rings")
	if err := fs.Parse([]string{"--preset", "spiral", "-c", path, "-s", "fibers=4", "--seed", "7"}); err != nil {
		t.Fatal(err)
	}
	cfg, err := opts.load(fs)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Transform != "spiral" || cfg.Opacity != 0.5 || cfg.FiberCount != 4 || cfg.Seed != 7 {
		t.Fatalf("layered config = %+v", cfg)
	}
}

func TestSceneOptsKeepsPresetSeed(t *testing.T) {
	var opts sceneOpts
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	opts.bind(fs, "rings")
	if err := fs.Parse(nil); err != nil {
		t.Fatal(err)
	}
	cfg, err := opts.load(fs)
	if err != nil {
		t.Fatal(err)
	}
	if want := scene.DefaultConfig().Seed; cfg.Seed != want {
		t.Fatalf("seed = %d, want %d", cfg.Seed, want)
	}
}

func TestSceneOptsErrors(t *testing.T) {
	for _, args := range [][]string{
		{"--preset", "nope"},
		{"-s", "fibers"},
		{"-s", "fibers=-3"},
		{"-c", filepath.Join(t.TempDir(), "missing.toml")},
	} {
		var opts sceneOpts
		fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
		opts.bind(fs, "rings")
		if err := fs.Parse(args); err != nil {
			t.Fatal(err)
		}
		if _, err := opts.load(fs); err == nil {
			t.Fatalf("%v: expected an error", args)
		}
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCommand(io.Discard)
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

var tiny = []string{"-s", "w=48", "-s", "h=32", "-s", "fibers=4", "-s", "steps_min=5", "-s", "steps_max=20"}

func TestRenderCommandWritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	out, err := execute(t, append([]string{"render", "-o", path}, tiny...)...)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != path {
		t.Fatalf("printed %q, want %q", out, path)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 48 || b.Dy() != 32 {
		t.Fatalf("image bounds %v", b)
	}
}

func TestRenderCommandDefaultName(t *testing.T) {
	dir := t.TempDir()
	wd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)

	out, err := execute(t, append([]string{"render", "--seed", "5"}, tiny...)...)
	if err != nil {
		t.Fatal(err)
	}
	name := strings.TrimSpace(out)
	if !strings.HasPrefix(name, "rings-5-") || !strings.HasSuffix(name, ".png") {
		t.Fatalf("default name %q", name)
	}
	if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
		t.Fatal(err)
	}
}

func TestRenderCommandRejectsBadConfig(t *testing.T) {
	if _, err := execute(t, "render", "-s", "transform=warp"); !errors.Is(err, scene.ErrInvalidConfig) {
		t.Fatalf("err = %v", err)
	}
}

func TestPresetsCommand(t *testing.T) {
	out, err := execute(t, "presets", "--keys")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range append(scene.PresetNames(), "transforms:", "boundary", "noise_overlay") {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSweepCommand(t *testing.T) {
	args := append([]string{"sweep", "--strengths", "0.5,1", "--thresholds", "2", "--workers", "2", "--top", "1"}, tiny...)
	out, err := execute(t, args...)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Top 1 results") || !strings.Contains(out, "Best overall") {
		t.Fatalf("sweep output:\n%s", out)
	}
}

func TestStandaloneSweepCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := NewSweepCommand(io.Discard)
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"-v", "--strengths", "0.5", "--thresholds", "1"}, tiny...))
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Best overall") {
		t.Fatalf("sweep output:\n%s", out.String())
	}
}
