// ./main.go
package main

import (
	"github.com/wgabrys88/franz/cmd"
)

// main is the entry point for the franz binary. The cmd package handles
// command-line parsing, configuration, and execution.
func main() {
	cmd.Execute()
}
