package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/spaghettifunk/inkline/engine/core"
	"github.com/spaghettifunk/inkline/engine/ink"
	"github.com/spaghettifunk/inkline/engine/math"
)

// BrushPreset is a named brush configuration loaded from a TOML file.
type BrushPreset struct {
	Name   string     `toml:"name"`
	Radius float32    `toml:"radius"`
	Colour [4]float32 `toml:"colour"`
	Mode   string     `toml:"mode"`
}

/**
 * @brief BrushPresetManager loads brush presets from a directory of TOML
 * files and hot-reloads them when the files change on disk. Reads are safe
 * from any goroutine; the watcher runs on its own goroutine and fires
 * EVENT_CODE_PRESET_CHANGED after a successful reload.
 */
type BrushPresetManager struct {
	presets map[string]*BrushPreset

	mutex sync.RWMutex

	done     chan struct{}
	fsnotify *fsnotify.Watcher
	isClosed bool
}

func NewBrushPresetManager() (*BrushPresetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &BrushPresetManager{
		presets:  make(map[string]*BrushPreset),
		fsnotify: fsWatch,
		done:     make(chan struct{}),
	}, nil
}

// Initialize loads every preset file in presetsDir and starts watching the
// directory for changes.
func (pm *BrushPresetManager) Initialize(presetsDir string) error {
	entries, err := os.ReadDir(presetsDir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".toml") {
			continue
		}
		path := filepath.Join(presetsDir, entry.Name())
		if err := pm.loadFile(path); err != nil {
			core.LogWarn("skipping preset '%s': %s", path, err)
		}
	}

	if err := pm.fsnotify.Add(presetsDir); err != nil {
		return err
	}
	go pm.start()

	core.LogInfo("Brush preset manager initialized with %d presets.", pm.Count())
	return nil
}

func (pm *BrushPresetManager) start() {
	for {
		select {
		case <-pm.done:
			return
		case event, ok := <-pm.fsnotify.Events:
			if !ok {
				return
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			if !strings.HasSuffix(event.Name, ".toml") {
				continue
			}
			if err := pm.loadFile(event.Name); err != nil {
				core.LogError("reloading preset '%s': %s", event.Name, err)
				continue
			}
			core.LogDebug("reloaded brush preset file '%s'", event.Name)
		case err, ok := <-pm.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("preset watcher: %s", err)
		}
	}
}

func (pm *BrushPresetManager) loadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	preset := &BrushPreset{}
	if err := toml.Unmarshal(raw, preset); err != nil {
		return err
	}
	if preset.Name == "" {
		preset.Name = strings.TrimSuffix(filepath.Base(path), ".toml")
	}
	if preset.Radius <= 0 {
		return fmt.Errorf("preset '%s': radius must be > 0", preset.Name)
	}
	if _, err := ink.ParseBrushMode(preset.Mode); err != nil {
		return fmt.Errorf("preset '%s': %w", preset.Name, err)
	}

	pm.mutex.Lock()
	pm.presets[preset.Name] = preset
	pm.mutex.Unlock()

	core.EventFire(core.EventContext{
		Type: core.EVENT_CODE_PRESET_CHANGED,
		Data: preset.Name,
	})
	return nil
}

func (pm *BrushPresetManager) Get(name string) (*BrushPreset, error) {
	pm.mutex.RLock()
	defer pm.mutex.RUnlock()
	preset, ok := pm.presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown brush preset '%s'", name)
	}
	return preset, nil
}

// Names returns the loaded preset names in sorted order.
func (pm *BrushPresetManager) Names() []string {
	pm.mutex.RLock()
	defer pm.mutex.RUnlock()
	names := maps.Keys(pm.presets)
	slices.Sort(names)
	return names
}

func (pm *BrushPresetManager) Count() int {
	pm.mutex.RLock()
	defer pm.mutex.RUnlock()
	return len(pm.presets)
}

// Apply copies the named preset into the brush settings. Strokes already
// drawn keep the settings they were created with.
func (pm *BrushPresetManager) Apply(name string, settings *ink.BrushSettings) error {
	preset, err := pm.Get(name)
	if err != nil {
		return err
	}
	mode, err := ink.ParseBrushMode(preset.Mode)
	if err != nil {
		return err
	}

	settings.SetRadius(preset.Radius)
	settings.SetColour(math.NewVec4(preset.Colour[0], preset.Colour[1], preset.Colour[2], preset.Colour[3]))
	settings.SetMode(mode)
	return nil
}

func (pm *BrushPresetManager) Close() error {
	if pm.isClosed {
		return errors.New("brush preset manager already closed")
	}
	pm.isClosed = true
	close(pm.done)
	return pm.fsnotify.Close()
}
