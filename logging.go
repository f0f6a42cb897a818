package main

import (
	"io"
	"log"

	"gopkg.in/natefinch/lumberjack.v2"
)

// setupLogging points the stdlib logger at a rotating file. An empty
// logFile setting leaves logging on stderr (useful for tests and for
// running under systemd).
func setupLogging(settings configSettings, console bool) (io.Closer, error) {
	logFile := settings.GetString(sLogFile)
	if console || logFile == "" {
		return nil, nil
	}

	lj := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
	}
	log.SetOutput(lj)
	return lj, nil
}
