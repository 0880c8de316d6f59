// Package config loads the optional per-project dwislpy.toml file that
// sits beside a DwiSlpy source file, grounded on the teacher's module-file
// loading pattern. Nearly everything it configures has a sensible default,
// so a DwiSlpy program with no such file behaves exactly as if one existed
// with every field at its zero value.
package config

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"dwislpy/common"
	"dwislpy/diag"

	"github.com/pelletier/go-toml"
)

// tomlFile is dwislpy.toml's on-disk shape.
type tomlFile struct {
	Project *tomlProject `toml:"project"`
}

type tomlProject struct {
	Version  string `toml:"dwislpy-version"`
	LogLevel string `toml:"log-level"`
}

// Config is a resolved project configuration: the file's settings merged
// over defaults.
type Config struct {
	LogLevel int
}

// Default is the configuration used when no dwislpy.toml is found.
func Default() *Config {
	return &Config{LogLevel: diag.LogLevelError}
}

var logLevelNames = map[string]int{
	"silent":  diag.LogLevelSilent,
	"error":   diag.LogLevelError,
	"warn":    diag.LogLevelWarn,
	"verbose": diag.LogLevelVerbose,
}

// Load looks for dwislpy.toml in dir (the directory containing the source
// file being processed) and, if present, parses and validates it. Absence
// of the file is not an error -- Load returns Default() instead.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, common.ConfigFileName)
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := ioutil.ReadAll(f)
	if err != nil {
		return nil, err
	}

	tf := &tomlFile{}
	if err := toml.Unmarshal(buf, tf); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	cfg := Default()
	if tf.Project == nil {
		return cfg, nil
	}

	if tf.Project.Version != "" && tf.Project.Version != common.ToolchainVersion {
		diag.PrintWarningMessage("config",
			fmt.Sprintf("%s targets dwislpy %s but this toolchain is %s", path, tf.Project.Version, common.ToolchainVersion))
	}

	if tf.Project.LogLevel != "" {
		lvl, ok := logLevelNames[tf.Project.LogLevel]
		if !ok {
			return nil, fmt.Errorf("%s: unrecognized log-level %q", path, tf.Project.LogLevel)
		}
		cfg.LogLevel = lvl
	}

	return cfg, nil
}
