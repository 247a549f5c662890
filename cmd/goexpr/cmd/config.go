package cmd

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/xyproto/env/v2"
)

// config is the CLI's optional on-disk settings, grounded on the teacher's
// config.Config shape (lookbusy1344-arm_emulator config/config.go): a
// struct of `[section]`-tagged fields decoded with BurntSushi/toml, with
// environment variables taking precedence over the file (SPEC_FULL.md
// §6.2).
type config struct {
	Display struct {
		ColorOutput bool `toml:"color_output"`
	} `toml:"display"`
	Rand struct {
		Seed int64 `toml:"seed"`
	} `toml:"rand"`
}

func defaultConfig() *config {
	c := &config{}
	c.Display.ColorOutput = true
	c.Rand.Seed = 0
	return c
}

// loadConfig reads path (or ~/.goexprrc when path is empty) if it exists,
// then applies GOEXPR_COLOR/GOEXPR_SEED environment overrides.
func loadConfig(path string) (*config, error) {
	c := defaultConfig()

	if path == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, ".goexprrc")
		}
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, c); err != nil {
				return nil, err
			}
		}
	}

	c.Display.ColorOutput = env.BoolOr("GOEXPR_COLOR", c.Display.ColorOutput)
	c.Rand.Seed = int64(env.IntOr("GOEXPR_SEED", int(c.Rand.Seed)))

	return c, nil
}
