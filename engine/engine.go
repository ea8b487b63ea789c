package engine

import (
	"fmt"
	"time"

	"github.com/spaghettifunk/inkline/engine/core"
	"github.com/spaghettifunk/inkline/engine/platform"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

type Engine struct {
	currentStage Stage
	gameInstance *Game
	isRunning    bool
	isSuspended  bool
	platform     *platform.Platform
	width        uint32
	height       uint32
	clock        *core.Clock
	lastTime     float64
}

func New(g *Game) (*Engine, error) {
	if g == nil || g.ApplicationConfig == nil {
		return nil, fmt.Errorf("func New - game and its application config are required")
	}
	return &Engine{
		currentStage: EngineStageUninitialized,
		gameInstance: g,
		clock:        core.NewClock(),
		platform:     platform.New(),
		isRunning:    false,
		isSuspended:  false,
		width:        g.ApplicationConfig.StartWidth,
		height:       g.ApplicationConfig.StartHeight,
		lastTime:     0,
	}, nil
}

func (e *Engine) Initialize() error {
	e.currentStage = EngineStageInitializing

	config := e.gameInstance.ApplicationConfig
	core.SetLogLevel(config.logLevel())

	// initialize input
	if err := core.InputInitialize(); err != nil {
		return err
	}

	// initialize events
	if !core.EventSystemInitialize() {
		return fmt.Errorf("failed to initialize the event system")
	}

	if err := core.MetricsInitialize(); err != nil {
		return err
	}

	core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, e.onQuit)
	core.EventRegister(core.EVENT_CODE_RESIZED, e.onResized)

	if err := e.platform.Startup(config.Name,
		config.StartPosX,
		config.StartPosY,
		config.StartWidth,
		config.StartHeight); err != nil {
		return err
	}

	if e.gameInstance.FnInitialize != nil {
		if err := e.gameInstance.FnInitialize(); err != nil {
			return err
		}
	}

	e.currentStage = EngineStageInitialized
	return nil
}

func (e *Engine) Run() error {
	if e.currentStage != EngineStageInitialized {
		return fmt.Errorf("func Run - engine is not initialized")
	}
	e.currentStage = EngineStageRunning
	e.isRunning = true

	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.ElapsedSeconds()

	for e.isRunning && !e.platform.ShouldClose() {
		e.clock.Update()
		currentTime := e.clock.ElapsedSeconds()
		delta := currentTime - e.lastTime
		e.lastTime = currentTime

		e.platform.PumpMessages()

		if err := core.InputUpdate(delta); err != nil {
			core.LogError("input update failed: %s", err)
		}

		if !e.isSuspended && e.gameInstance.FnUpdate != nil {
			if err := e.gameInstance.FnUpdate(delta); err != nil {
				core.LogError("game update failed: %s", err)
				e.isRunning = false
				break
			}
		}

		core.MetricsUpdate(delta)

		// Yield so a zero-vsync platform does not spin a core.
		time.Sleep(time.Millisecond)
	}

	return e.Shutdown()
}

func (e *Engine) Shutdown() error {
	if e.currentStage == EngineStageShuttingDown {
		return nil
	}
	e.currentStage = EngineStageShuttingDown
	e.isRunning = false

	if e.gameInstance.FnShutdown != nil {
		if err := e.gameInstance.FnShutdown(); err != nil {
			core.LogError("game shutdown failed: %s", err)
		}
	}

	if err := core.EventSystemShutdown(); err != nil {
		core.LogError("event system shutdown failed: %s", err)
	}
	if err := core.InputShutdown(); err != nil {
		core.LogError("input shutdown failed: %s", err)
	}

	return e.platform.Shutdown()
}

func (e *Engine) onQuit(context core.EventContext) {
	core.LogInfo("application quit requested")
	e.isRunning = false
}

func (e *Engine) onResized(context core.EventContext) {
	event, ok := context.Data.(*core.ResizeEvent)
	if !ok {
		return
	}
	if event.Width == e.width && event.Height == e.height {
		return
	}
	e.width = event.Width
	e.height = event.Height

	// Window minimized.
	if event.Width == 0 || event.Height == 0 {
		e.isSuspended = true
		return
	}
	e.isSuspended = false

	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(event.Width, event.Height); err != nil {
			core.LogError("game resize failed: %s", err)
		}
	}
}
