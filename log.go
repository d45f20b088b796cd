package main

import (
	"log/slog"
	"os"
)

func (a *postClock) initLog() {
	a.initLogOnce.Do(func() {
		a.logLevel = new(slog.LevelVar)
		a.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: a.logLevel,
		}))
	})
}

func (a *postClock) updateLogLevel() {
	a.initLog()
	if a.cfg.Debug {
		a.logLevel.Set(slog.LevelDebug)
	}
}

func (a *postClock) debug(msg string, args ...any) {
	a.initLog()
	a.logger.Debug(msg, args...)
}

func (a *postClock) info(msg string, args ...any) {
	a.initLog()
	a.logger.Info(msg, args...)
}

func (a *postClock) error(msg string, args ...any) {
	a.initLog()
	a.logger.Error(msg, args...)
}

func (a *postClock) fatal(msg string, args ...any) {
	a.initLog()
	a.error(msg, args...)
	os.Exit(1)
}
