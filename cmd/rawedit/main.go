package main

import (
	"fmt"
	stlog "log"
	"os"

	"github.com/bethropolis/rawedit/internal/app"
	"github.com/bethropolis/rawedit/internal/config"
	"github.com/bethropolis/rawedit/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	flags := config.NewFlags(nil)
	args, err := flags.Parse(os.Args[1:])
	if err != nil {
		stlog.Fatalf("Failed to parse flags: %v", err)
	}
	if *flags.Version {
		fmt.Printf("%s %s\n", config.AppName, version)
		return
	}
	if len(args) > 1 {
		stlog.Fatalf("usage: %s [flags] [file.html]", config.AppName)
	}

	cfg, err := config.LoadConfig(*flags.ConfigFilePath, flags)
	if err != nil {
		// defaults are still usable
		stlog.Printf("Warning: %v", err)
	}

	logPath := cfg.Logger.LogFilePath
	if logPath == "" {
		logPath = config.DefaultLogFileName
	}
	logOutput := os.Stderr
	if logPath != "-" {
		logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err != nil {
			stlog.Fatalf("Failed to open log file '%s': %v", logPath, err)
		}
		defer logFile.Close()
		logOutput = logFile
	}
	logger.Init(cfg.Logger, logOutput)

	var filePath string
	if len(args) == 1 {
		filePath = args[0]
	}
	logger.Infof("Starting %s %s", config.AppName, version)
	logger.Debugf("Log file: %s", logPath)
	if filePath != "" {
		logger.Debugf("File path specified: %s", filePath)
	} else {
		logger.Debugf("No file specified, starting empty.")
	}

	editorApp, err := app.NewApp(cfg, filePath)
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		os.Exit(1)
	}
	if err := editorApp.Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		os.Exit(1)
	}
	logger.Infof("%s finished.", config.AppName)
}
