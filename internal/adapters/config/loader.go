// Package config provides the configuration loader for soldeps.
package config

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/soldeps/internal/core/domain"
	"go.trai.ch/soldeps/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultFiles are tried in order when no config file is named.
var DefaultFiles = []string{"soldeps.yaml", "soldeps.yml"}

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a new Loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load reads the configuration for projectRoot.
// A relative file is resolved against projectRoot. With no file, the default
// names are tried and a project without any config file gets the defaults.
func (l *Loader) Load(projectRoot, file string) (*domain.Settings, error) {
	if file == "" {
		found, ok := discover(projectRoot)
		if !ok {
			l.logger.Info("no config file found, using defaults")
			return (&domain.Config{}).Validate(projectRoot)
		}
		file = found
	} else if !filepath.IsAbs(file) {
		file = filepath.Join(projectRoot, file)
	}

	cfg, err := Load(file)
	if err != nil {
		return nil, err
	}
	settings, err := cfg.Validate(projectRoot)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "invalid config file"), "path", file)
	}
	return settings, nil
}

func discover(projectRoot string) (string, bool) {
	for _, name := range DefaultFiles {
		p := filepath.Join(projectRoot, name)
		if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
			return p, true
		}
	}
	return "", false
}

// Load reads a configuration file from the given path.
// Unknown keys are rejected.
func Load(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read config file"), "path", path)
	}

	var file Soldepsfile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse config file"), "path", path)
	}

	return file.toDomain(), nil
}
