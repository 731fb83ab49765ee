package main

import (
	"log/slog"
	"os"

	"spaceHub/cmd/app"
)

func main() {
	if err := app.NewRootCmd().Execute(); err != nil {
		slog.Error("spacehub failed", "error", err)
		os.Exit(1)
	}
}
