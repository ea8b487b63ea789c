package assets

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/spaghettifunk/inkline/engine/ink"
)

func writePreset(t *testing.T, dir, file, body string) string {
	t.Helper()
	path := filepath.Join(dir, file)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestManager(t *testing.T, dir string) *BrushPresetManager {
	t.Helper()
	pm, err := NewBrushPresetManager()
	if err != nil {
		t.Fatal(err)
	}
	if err := pm.Initialize(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { pm.Close() })
	return pm
}

func TestInitializeLoadsPresetDirectory(t *testing.T) {
	dir := t.TempDir()
	writePreset(t, dir, "marker.toml", `
name = "marker"
radius = 0.08
colour = [0.85, 0.15, 0.2, 0.9]
mode = "pen"
`)
	writePreset(t, dir, "glow.toml", `
name = "glow"
radius = 0.05
colour = [1.0, 1.0, 1.0, 1.0]
mode = "rainbow"
`)
	writePreset(t, dir, "notes.txt", "not a preset")

	pm := newTestManager(t, dir)

	if diff := cmp.Diff([]string{"glow", "marker"}, pm.Names()); diff != "" {
		t.Errorf("unexpected preset names (-want +got):\n%s", diff)
	}

	marker, err := pm.Get("marker")
	if err != nil {
		t.Fatal(err)
	}
	if marker.Radius != 0.08 || marker.Mode != "pen" {
		t.Errorf("got preset %+v, want radius 0.08 mode pen", marker)
	}

	if _, err := pm.Get("missing"); err == nil {
		t.Error("unknown preset name did not error")
	}
}

func TestInitializeSkipsInvalidPresets(t *testing.T) {
	dir := t.TempDir()
	writePreset(t, dir, "ok.toml", `
name = "ok"
radius = 0.01
mode = "pen"
`)
	writePreset(t, dir, "bad-radius.toml", `
name = "bad-radius"
radius = -1.0
mode = "pen"
`)
	writePreset(t, dir, "bad-mode.toml", `
name = "bad-mode"
radius = 0.01
mode = "chalk"
`)

	pm := newTestManager(t, dir)
	if pm.Count() != 1 {
		t.Errorf("got %d presets, want only the valid one", pm.Count())
	}
}

func TestPresetNameDefaultsToFileName(t *testing.T) {
	dir := t.TempDir()
	writePreset(t, dir, "fine-pen.toml", `
radius = 0.01
mode = "pen"
`)

	pm := newTestManager(t, dir)
	if _, err := pm.Get("fine-pen"); err != nil {
		t.Errorf("preset not registered under its file name: %s", err)
	}
}

func TestApplyCopiesPresetIntoBrushSettings(t *testing.T) {
	dir := t.TempDir()
	writePreset(t, dir, "marker.toml", `
name = "marker"
radius = 0.08
colour = [0.85, 0.15, 0.2, 0.9]
mode = "debug"
`)

	pm := newTestManager(t, dir)
	settings := ink.NewBrushSettings()
	if err := pm.Apply("marker", settings); err != nil {
		t.Fatal(err)
	}

	if settings.Radius != 0.08 {
		t.Errorf("got radius %f, want 0.08", settings.Radius)
	}
	if settings.Mode != ink.BRUSH_MODE_DEBUG {
		t.Errorf("got mode %s, want debug", settings.Mode)
	}
	if settings.Colour.X != 0.85 || settings.Colour.W != 0.9 {
		t.Errorf("got colour %v, want the preset colour", settings.Colour)
	}

	if err := pm.Apply("missing", settings); err == nil {
		t.Error("applying an unknown preset did not error")
	}
}

func TestHotReloadPicksUpFileChanges(t *testing.T) {
	dir := t.TempDir()
	path := writePreset(t, dir, "marker.toml", `
name = "marker"
radius = 0.08
mode = "pen"
`)

	pm := newTestManager(t, dir)

	if err := os.WriteFile(path, []byte(`
name = "marker"
radius = 0.2
mode = "pen"
`), 0644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		preset, err := pm.Get("marker")
		if err == nil && preset.Radius == 0.2 {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Error("preset not reloaded after the file changed on disk")
}
