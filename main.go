/*
Freehand ink drawing on a flat surface: hold the left mouse button to draw,
Z/Y to undo/redo, C to clear, brackets to change the brush size, number keys
to select a preset.
*/
package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/inkline/engine"
	"github.com/spaghettifunk/inkline/paintapp"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML application config")
	flag.Parse()

	config := engine.DefaultApplicationConfig()
	if *configPath != "" {
		var err error
		config, err = engine.LoadApplicationConfig(*configPath)
		if err != nil {
			panic(err)
		}
	}

	app, err := paintapp.New(config)
	if err != nil {
		panic(err)
	}

	eng, err := engine.New(app.Game)
	if err != nil {
		panic(err)
	}

	if err := eng.Initialize(); err != nil {
		panic(err)
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	go func() {
		<-sigCh
		_ = eng.Shutdown()
	}()

	if err := eng.Run(); err != nil {
		panic(err)
	}
}
