// Command evil runs the evil language interpreter.
package main

import (
	"os"

	"github.com/evil-lang/evil/cmd/evil/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
