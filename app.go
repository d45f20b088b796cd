package main

import (
	"html/template"
	"log/slog"
	"sync"

	shutdowner "git.jlel.se/jlelse/go-shutdowner"
	"github.com/gorilla/sessions"
	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/tdewolff/minify/v2"
)

type postClock struct {
	// Config
	cfg *config
	// Database
	db *database
	// Logs
	initLogOnce sync.Once
	logger      *slog.Logger
	logLevel    *slog.LevelVar
	logf        *rotatelogs.RotateLogs
	// Media
	mediaStorageInit sync.Once
	mediaStorage     mediaStorage
	// Minify
	minInit sync.Once
	min     *minify.M
	// Rendering
	templates     map[string]*template.Template
	templatesInit sync.Once
	// Scheduler
	scheduler *postScheduler
	// Sessions
	flashSessions sessions.Store
	// Shutdown
	shutdown shutdowner.Shutdowner
}
