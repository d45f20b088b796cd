package main

import (
	"errors"

	"github.com/c2h5oh/datasize"
	"github.com/spf13/viper"
)

type config struct {
	Server      *configServer    `mapstructure:"server"`
	Db          *configDb        `mapstructure:"database"`
	Media       *configMedia     `mapstructure:"media"`
	Scheduler   *configScheduler `mapstructure:"scheduler"`
	Session     *configSession   `mapstructure:"session"`
	Debug       bool             `mapstructure:"debug"`
	initialized bool
}

type configServer struct {
	Port    int    `mapstructure:"port"`
	Logging bool   `mapstructure:"logging"`
	LogFile string `mapstructure:"logFile"`
}

type configDb struct {
	File     string `mapstructure:"file"`
	DumpFile string `mapstructure:"dumpFile"`
}

type configMedia struct {
	Path          string `mapstructure:"path"`
	MaxUploadSize string `mapstructure:"maxUploadSize"`
	maxUploadSize int64
}

type configScheduler struct {
	// Misfire grace in seconds, how late a timer may still fire
	Grace int `mapstructure:"grace"`
}

type configSession struct {
	Secret string `mapstructure:"secret"`
}

func createDefaultConfig() *config {
	return &config{
		Server: &configServer{
			Port:    8080,
			LogFile: "data/access.log",
		},
		Db: &configDb{
			File: "data/postclock.db",
		},
		Media: &configMedia{
			Path:          "static/images",
			MaxUploadSize: "20MB",
		},
		Scheduler: &configScheduler{
			Grace: 120,
		},
		Session: &configSession{},
	}
}

func (a *postClock) loadConfigFile(file string) error {
	// Use viper to load the config file
	v := viper.New()
	if file != "" {
		// Use config file from the flag
		v.SetConfigFile(file)
	} else {
		// Search in default locations
		v.SetConfigName("config")
		v.AddConfigPath("./config/")
	}
	// Read config
	if err := v.ReadInConfig(); err != nil {
		return err
	}
	// Unmarshal config
	a.cfg = createDefaultConfig()
	return v.Unmarshal(a.cfg)
}

func (a *postClock) initConfig(logging bool) error {
	if a.cfg == nil {
		a.cfg = createDefaultConfig()
	}
	if a.cfg.initialized {
		return nil
	}
	if a.cfg.Db == nil || a.cfg.Db.File == "" {
		return errors.New("no database file configured")
	}
	if a.cfg.Media == nil || a.cfg.Media.Path == "" {
		return errors.New("no media path configured")
	}
	// Parse upload size limit
	var us datasize.ByteSize
	if err := us.UnmarshalText([]byte(a.cfg.Media.MaxUploadSize)); err != nil {
		return errors.New("invalid max upload size: " + err.Error())
	}
	a.cfg.Media.maxUploadSize = int64(us.Bytes())
	if a.cfg.Scheduler == nil || a.cfg.Scheduler.Grace <= 0 {
		a.cfg.Scheduler = &configScheduler{Grace: 120}
	}
	// Log level
	a.updateLogLevel()
	// Session cookie secret, generated when not configured
	if a.cfg.Session == nil {
		a.cfg.Session = &configSession{}
	}
	if a.cfg.Session.Secret == "" {
		a.cfg.Session.Secret = generateRandomString(32)
	}
	// Database
	if err := a.initDatabase(logging); err != nil {
		return err
	}
	a.cfg.initialized = true
	if logging {
		a.info("Initialized config")
	}
	return nil
}
