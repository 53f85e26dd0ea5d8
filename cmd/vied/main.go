package main

import (
	"fmt"
	"os"

	"github.com/vied-dev/vied/internal/app"
)

func main() {
	args := os.Args[1:]
	debug := false
	if len(args) > 0 && args[0] == "--debug" {
		debug = true
		args = args[1:]
	}
	if len(args) > 0 && args[0] == "--" {
		args = args[1:]
	}
	if err := app.New(args, debug).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "vied:", err)
		os.Exit(1)
	}
}
