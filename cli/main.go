package main

import (
	"fmt"
	"os"

	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/cli"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/cli/render"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/config"
)

// Set at build time with -ldflags "-X main.version=..."
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	config.SetBuildFlags(version, commit, date)

	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		if !cli.IsReported(err) {
			fmt.Fprintln(os.Stderr, render.FormatError(err.Error()))
		}
		os.Exit(1)
	}
}
