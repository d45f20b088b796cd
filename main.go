package main

import (
	"flag"
	"os"
)

func main() {
	app := &postClock{}

	// Command line flags
	configfile := flag.String("config", "", "use a specific config file")
	flag.Parse()

	// Initialize config
	if *configfile != "" {
		if err := app.loadConfigFile(*configfile); err != nil {
			app.logErrAndQuit("Failed to load config file", "err", err)
			return
		}
	}
	if err := app.initConfig(true); err != nil {
		app.logErrAndQuit("Failed to init config", "err", err)
		return
	}

	// Initialize components
	app.initComponents()

	// Start the server
	if err := app.startServer(); err != nil {
		app.logErrAndQuit("Failed to start server", "err", err)
		return
	}

	// Wait till everything is shutdown
	app.shutdown.Wait()
}

func (a *postClock) initComponents() {
	a.info("Initialize components...")

	if err := a.initTemplates(); err != nil {
		a.logErrAndQuit("Failed to init templates", "err", err)
		return
	}
	a.initSessions()
	a.initMediaStorage()
	a.initScheduler()

	a.info("Initialized components")
}

func (a *postClock) logErrAndQuit(msg string, args ...any) {
	a.error(msg, args...)
	a.shutdown.ShutdownAndWait()
	os.Exit(1)
}
