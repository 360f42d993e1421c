package main

import (
	"log/slog"
	"os"

	"github.com/flowboard/flowboard/cmd"
	"github.com/flowboard/flowboard/internal/logging"
)

func main() {
	if err := logging.Init(); err != nil {
		slog.Warn("logging init failed, continuing with stderr", "error", err)
	}

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
