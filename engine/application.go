package engine

import (
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/inkline/engine/core"
)

type ApplicationConfig struct {
	// Window starting position x axis, if applicable.
	StartPosX uint32 `toml:"start_pos_x"`
	// Window starting position y axis, if applicable.
	StartPosY uint32 `toml:"start_pos_y"`
	// Window starting width, if applicable.
	StartWidth uint32 `toml:"start_width"`
	// Window starting height, if applicable.
	StartHeight uint32 `toml:"start_height"`
	// The application name used in windowing, if applicable.
	Name string `toml:"name"`
	// One of debug, info, warn, error.
	LogLevel string `toml:"log_level"`
	// Directory holding brush preset TOML files. Empty disables presets.
	PresetsDir string `toml:"presets_dir"`
	// Extent of the drawing surface in its local frame, centered on origin.
	CanvasWidth  float32 `toml:"canvas_width"`
	CanvasHeight float32 `toml:"canvas_height"`
	// Debug tessellation: sample thinning and rounded joins/caps. Production
	// drawing uses every sample with sharp joins.
	Debug          bool    `toml:"debug"`
	DebugRoundness uint32  `toml:"debug_roundness"`
	DebugDebounce  float32 `toml:"debug_debounce"`
}

func DefaultApplicationConfig() *ApplicationConfig {
	return &ApplicationConfig{
		StartPosX:      100,
		StartPosY:      100,
		StartWidth:     1280,
		StartHeight:    720,
		Name:           "Inkline",
		LogLevel:       "debug",
		CanvasWidth:    2.0,
		CanvasHeight:   1.125,
		DebugRoundness: 16,
		DebugDebounce:  0.03,
	}
}

// LoadApplicationConfig reads a TOML config file over the defaults.
func LoadApplicationConfig(path string) (*ApplicationConfig, error) {
	config := DefaultApplicationConfig()

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := toml.Unmarshal(raw, config); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *ApplicationConfig) logLevel() core.LogLevel {
	switch c.LogLevel {
	case "info":
		return core.InfoLevel
	case "warn":
		return core.WarnLevel
	case "error":
		return core.ErrorLevel
	default:
		return core.DebugLevel
	}
}
