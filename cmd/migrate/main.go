package main

import (
	"os"

	"finance/internal/logger"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := newRootCommand().Execute(); err != nil {
		logger.Get().Errorf("Migration error: %v", err)
		logger.Sync()
		os.Exit(1)
	}
}
