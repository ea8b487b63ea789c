//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the paint app with the default configuration.
func (Run) App() error {
	fmt.Println("Run inkline...")
	if _, err := executeCmd("go", withArgs("run", "main.go"), withStream()); err != nil {
		return err
	}
	return nil
}

// Runs the paint app in the debug tessellation configuration.
func (Run) Debug() error {
	fmt.Println("Run inkline (debug tessellation)...")
	if _, err := executeCmd("go", withArgs("run", "main.go", "-config", "configs/debug.toml"), withStream()); err != nil {
		return err
	}
	return nil
}
