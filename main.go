package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/soocke/pixel-crop-go/app"
	"github.com/soocke/pixel-crop-go/config"
)

func main() {
	defaultPath, err := config.DefaultPath()
	if err != nil {
		defaultPath = "config.json"
	}

	cfgPath := flag.String("config", defaultPath, "path to the JSON settings file")
	tool := flag.String("tool", "", "initial tool: crop or rotate")
	image := flag.String("image", "", "image path or data URL to preload")
	debugFlag := flag.Bool("debug", false, "enable debug logging and runtime stats")
	flag.Parse()

	if *tool != "" && *tool != "crop" && *tool != "rotate" {
		fmt.Fprintf(os.Stderr, "unknown tool %q (want crop or rotate)\n", *tool)
		os.Exit(2)
	}

	cfg, err := config.Load(*cfgPath)
	if *debugFlag {
		cfg.Debug = true
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(level)
	if err != nil {
		logger.Warn("config load failed, using defaults", "path", *cfgPath, "error", err)
	}

	application := app.NewApp("Pixel Crop", cfg, *cfgPath, logger)
	application.Start(app.Options{Tool: *tool, Image: *image})
}
