package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"

	"github.com/gabesw/confluence-readme-sync/cmd"
)

const version = "0.1.0"

func main() {
	root := cmd.NewRootCmd()

	// fang handles completions, manpages and --version
	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}
