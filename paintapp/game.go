package paintapp

import (
	"github.com/spaghettifunk/inkline/engine"
	"github.com/spaghettifunk/inkline/engine/assets"
	"github.com/spaghettifunk/inkline/engine/core"
	"github.com/spaghettifunk/inkline/engine/ink"
	"github.com/spaghettifunk/inkline/engine/math"
	"github.com/spaghettifunk/inkline/engine/scene"
	"github.com/spaghettifunk/inkline/engine/systems"
)

// Pixels around the window edge that are not part of the drawing surface.
// Pointer samples there miss the pick and are skipped.
const canvasMargin float32 = 16

type PaintApp struct {
	*engine.Game
}

type appState struct {
	picker     *scene.PlanarPicker
	sceneHost  *scene.SimpleScene
	materials  *systems.MaterialSystem
	settings   *ink.BrushSettings
	controller *ink.Controller
	presets    *assets.BrushPresetManager

	width  uint32
	height uint32

	logAccumulator float64
}

func New(config *engine.ApplicationConfig) (*PaintApp, error) {
	app := &PaintApp{
		Game: &engine.Game{
			ApplicationConfig: config,
			State: &appState{
				width:  config.StartWidth,
				height: config.StartHeight,
			},
		},
	}

	app.FnInitialize = app.Initialize
	app.FnUpdate = app.Update
	app.FnOnResize = app.OnResize
	app.FnShutdown = app.Shutdown

	return app, nil
}

func (app *PaintApp) Initialize() error {
	state := app.State.(*appState)
	config := app.ApplicationConfig

	local := math.Extents2D{
		Min: math.NewVec2(-config.CanvasWidth/2, -config.CanvasHeight/2),
		Max: math.NewVec2(config.CanvasWidth/2, config.CanvasHeight/2),
	}
	state.picker = scene.NewPlanarPicker(canvasScreenExtents(state.width, state.height), local, 1)
	state.sceneHost = scene.NewSimpleScene()
	state.settings = ink.NewBrushSettings()

	materials, err := systems.NewMaterialSystem()
	if err != nil {
		return err
	}
	state.materials = materials

	drawConfig := ink.DrawConfig{
		Debug:            config.Debug,
		Roundness:        config.DebugRoundness,
		DebounceDistance: config.DebugDebounce,
	}
	surface := math.TransformCreate()
	controller, err := ink.NewController(state.picker, state.sceneHost, state.materials, state.settings, surface, drawConfig)
	if err != nil {
		return err
	}
	state.controller = controller

	if config.PresetsDir != "" {
		presets, err := assets.NewBrushPresetManager()
		if err != nil {
			return err
		}
		if err := presets.Initialize(config.PresetsDir); err != nil {
			return err
		}
		state.presets = presets
	}

	core.EventRegister(core.EVENT_CODE_BUTTON_PRESSED, app.onButton)
	core.EventRegister(core.EVENT_CODE_BUTTON_RELEASED, app.onButton)
	core.EventRegister(core.EVENT_CODE_MOUSE_MOVED, app.onMouseMove)
	core.EventRegister(core.EVENT_CODE_KEY_PRESSED, app.onKey)
	core.EventRegister(core.EVENT_CODE_HISTORY_CHANGED, app.onHistoryChanged)

	core.LogInfo("paint app initialized, canvas %gx%g", config.CanvasWidth, config.CanvasHeight)
	return nil
}

func (app *PaintApp) Update(deltaTime float64) error {
	state := app.State.(*appState)

	state.logAccumulator += deltaTime
	if state.logAccumulator >= 1.0 {
		state.logAccumulator = 0
		fps, frameTime := core.MetricsFrame()
		core.LogDebug("FPS: %5.1f(%4.1fms) strokes=%d undo=%d redo=%d drawing=%v",
			fps, frameTime,
			state.sceneHost.Count(),
			state.controller.CommittedCount(),
			state.controller.RedoCount(),
			state.controller.IsDrawing())
	}
	return nil
}

func (app *PaintApp) OnResize(width uint32, height uint32) error {
	state := app.State.(*appState)
	state.width = width
	state.height = height
	state.picker.Resize(canvasScreenExtents(width, height))
	return nil
}

func (app *PaintApp) Shutdown() error {
	state := app.State.(*appState)
	if state.presets != nil {
		if err := state.presets.Close(); err != nil {
			core.LogError("closing preset manager: %s", err)
		}
	}
	return state.materials.Shutdown()
}

func (app *PaintApp) onButton(context core.EventContext) {
	state := app.State.(*appState)
	event, ok := context.Data.(*core.MouseButtonEvent)
	if !ok || event.Button != core.BUTTON_LEFT {
		return
	}

	switch context.Type {
	case core.EVENT_CODE_BUTTON_PRESSED:
		state.controller.StartPath(float32(event.X), float32(event.Y))
	case core.EVENT_CODE_BUTTON_RELEASED:
		state.controller.EndPath()
	}
}

func (app *PaintApp) onMouseMove(context core.EventContext) {
	state := app.State.(*appState)
	if !state.controller.IsDrawing() {
		return
	}
	event, ok := context.Data.(*core.MouseMoveEvent)
	if !ok {
		return
	}
	state.controller.ExtendPath(float32(event.X), float32(event.Y))
}

func (app *PaintApp) onKey(context core.EventContext) {
	state := app.State.(*appState)
	event, ok := context.Data.(*core.KeyEvent)
	if !ok {
		return
	}

	switch event.KeyCode {
	case core.KEY_ESCAPE:
		core.EventFire(core.EventContext{
			Type: core.EVENT_CODE_APPLICATION_QUIT,
		})
	case core.KEY_Z:
		state.controller.Undo()
	case core.KEY_Y:
		state.controller.Redo()
	case core.KEY_C:
		state.controller.Clear()
	case core.KEY_LBRACKET:
		state.settings.SetRadius(state.settings.Radius * 0.8)
	case core.KEY_RBRACKET:
		state.settings.SetRadius(state.settings.Radius * 1.25)
	default:
		if event.KeyCode >= core.KEY_1 && event.KeyCode <= core.KEY_9 {
			app.applyPreset(int(event.KeyCode - core.KEY_1))
		}
	}
}

func (app *PaintApp) onHistoryChanged(context core.EventContext) {
	event, ok := context.Data.(*core.HistoryEvent)
	if !ok {
		return
	}
	core.LogDebug("history: undo=%d redo=%d", event.CommittedCount, event.RedoCount)
}

func (app *PaintApp) applyPreset(index int) {
	state := app.State.(*appState)
	if state.presets == nil {
		return
	}
	names := state.presets.Names()
	if index < 0 || index >= len(names) {
		return
	}
	if err := state.presets.Apply(names[index], state.settings); err != nil {
		core.LogError("applying preset: %s", err)
		return
	}
	core.LogInfo("brush preset '%s' selected", names[index])
}

func canvasScreenExtents(width, height uint32) math.Extents2D {
	w := float32(width)
	h := float32(height)
	if w <= 2*canvasMargin || h <= 2*canvasMargin {
		return math.Extents2D{Max: math.NewVec2(w, h)}
	}
	return math.Extents2D{
		Min: math.NewVec2(canvasMargin, canvasMargin),
		Max: math.NewVec2(w-canvasMargin, h-canvasMargin),
	}
}
