// The main package for the docketsync executable.
package main

import (
	"github.com/openregs/docketsync/cmd"
)

// main is the entry point of the application.
// It defers all execution to the Cobra CLI library.
func main() {
	cmd.Execute()
}
