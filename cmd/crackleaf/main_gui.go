//go:build !cli

package main

import (
	"fmt"
	"os"

	"crackleaf/internal/cli"
	"crackleaf/internal/config"
	"crackleaf/internal/log"
	"crackleaf/internal/qpdf"
	"crackleaf/internal/ui"

	fyneapp "fyne.io/fyne/v2/app"
)

// run is the GUI+CLI entry point.
// It first checks for CLI subcommands, and if none are found, launches the GUI.
func run() {
	// Check for CLI mode first (unlock/probe/watch subcommands)
	if cli.Execute(version) {
		return
	}

	// A broken config file must not keep the window from opening.
	cfg, cfgErr := config.Load()
	if cfgErr != nil {
		cfg = config.Default()
	}
	closer, err := log.Setup(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logging disabled: %v\n", err)
	}
	defer closer.Close()
	if cfgErr != nil {
		log.Warn("configuration ignored, using defaults", log.Err(cfgErr))
	}

	tool := qpdf.Discover(cfg.QPDFPath)
	log.Info("starting", log.String("version", version), log.String("qpdf", tool.Path))

	ui.NewApp(fyneapp.NewWithID(ui.AppID), version, cfg, tool).Run()
}
