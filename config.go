package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/hhhapz/enexorg/enml"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

const appDirName = "enexorg"

type configuration struct {
	// FillColumn is the column note bodies are wrapped at.
	FillColumn int `toml:"fill_column"`

	// AttachmentRoot is the directory, relative to the notebook directory,
	// attachments are stored under.
	AttachmentRoot string `toml:"attachment_root"`

	// Startup is the #+STARTUP visibility of generated files.
	Startup string `toml:"startup"`

	// WriteResources saves note attachments next to the org file.
	WriteResources bool `toml:"write_resources"`

	// OutputDir is where notebook directories are created. Empty means next
	// to the input file.
	OutputDir string `toml:"output_dir"`

	Debug bool `toml:"debug"`
}

func defaultConfig() configuration {
	return configuration{
		FillColumn:     enml.DefaultFillColumn,
		AttachmentRoot: "data",
		Startup:        "content",
		WriteResources: true,
	}
}

func configDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, appDirName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appDirName)
}

func configPath() string {
	return filepath.Join(configDir(), "config.toml")
}

// loadConfig reads the config at path, or at configPath when path is
// empty. A missing default config is not an error.
func loadConfig(path string) (configuration, error) {
	explicit := path != ""
	if !explicit {
		path = configPath()
	}

	fileBytes, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && !explicit {
		return defaultConfig(), nil
	}
	if err != nil {
		return configuration{}, errors.Wrap(err, "could not open config")
	}

	cfg, err := configFromBytes(fileBytes)
	if err != nil {
		return configuration{}, errors.Wrapf(err, "could not parse config %s", path)
	}
	return cfg, nil
}

func configFromBytes(b []byte) (configuration, error) {
	cfg := defaultConfig()
	if err := toml.Unmarshal(b, &cfg); err != nil {
		return configuration{}, err
	}

	if cfg.FillColumn <= 0 {
		return configuration{}, errors.Errorf("fill_column must be positive, got %d", cfg.FillColumn)
	}
	if cfg.Startup == "" {
		cfg.Startup = "content"
	}

	var err error
	cfg.OutputDir, err = expandPath(cfg.OutputDir)
	if err != nil {
		return configuration{}, err
	}
	return cfg, nil
}

func expandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "could not expand ~")
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}
