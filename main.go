package main

import (
	"log/slog"
	"os"

	"github.com/mvgcolleges/voting-go/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		slog.Error("Fatal error", "error", err)
		os.Exit(1)
	}
}
