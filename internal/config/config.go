package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

type Application struct {
	Server   Server   `koanf:"server"`
	Capture  Capture  `koanf:"capture"`
	Locale   Locale   `koanf:"locale"`
	Database Database `koanf:"db"`
	Export   Export   `koanf:"export"`
}

type Server struct {
	Addr string `koanf:"addr"`
}

// Capture configures the headless-browser snapshot of the calendar page.
// Cron is a standard 5-field cron spec; scheduled captures are disabled
// when it is empty.
type Capture struct {
	URL          string `koanf:"url"`
	WaitSelector string `koanf:"waitselector"`
	Width        int    `koanf:"width"`
	Height       int    `koanf:"height"`
	TimeoutSec   int    `koanf:"timeoutsec"`
	Cron         string `koanf:"cron"`
}

type Locale struct {
	Primary string `koanf:"primary"`
}

type Database struct {
	Driver string `koanf:"driver"`
	Path   string `koanf:"path"`
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

type Export struct {
	Dir string `koanf:"dir"`
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		Server: Server{
			Addr: ":8080",
		},
		Capture: Capture{
			Width:      1440,
			Height:     900,
			TimeoutSec: 45,
		},
		Locale: Locale{
			Primary: "ru",
		},
		Database: Database{
			Driver: "sqlite",
			Path:   "./data/calendar-summary.db",
			Host:   "localhost",
			Port:   5432,
			User:   "calsum",
			Pass:   "",
			Name:   "calsum",
			Schema: "calsum",
		},
		Export: Export{
			Dir: "./export",
		},
	}, "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "CALSUM_",
		TransformFunc: func(k, v string) (string, any) {
			// Transform the key.
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "CALSUM_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}
