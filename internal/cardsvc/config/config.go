package config

import (
	"os"
)

type Config struct {
	Port        string
	DataDir     string
	TemplateDir string
}

func Load() Config {
	cfg := Config{
		Port:        os.Getenv("CARD_SERVICE_PORT"),
		DataDir:     os.Getenv("DATA_DIR"),
		TemplateDir: os.Getenv("TEMPLATE_DIR"),
	}

	if cfg.DataDir == "" {
		cfg.DataDir = "./data"
	}
	if cfg.TemplateDir == "" {
		cfg.TemplateDir = "./templates/master-ecard"
	}

	return cfg
}
