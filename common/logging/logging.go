package logging

import (
	"log"

	"go.uber.org/zap"
)

// NewLogger builds the process logger for the given mode. Collaborators
// receive the logger through the factory rather than a package global, so
// tests can substitute their own.
func NewLogger(logMode string) *zap.Logger {
	var logger *zap.Logger
	var err error = nil
	switch logMode {
	case "DEVELOPMENT":
		logger, err = zap.NewDevelopment()
	case "TEST":
		logger, err = zap.NewDevelopment()
	case "PRODUCTION":
		logger, err = zap.NewProduction()
	default:
		log.Fatal("Unknown logging mode", logMode)
	}
	if err != nil {
		log.Fatal("Error while configuring logging...")
	}
	logger.Info("Logger Configured")
	return logger
}
