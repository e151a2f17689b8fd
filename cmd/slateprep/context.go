package main

import (
	"fmt"
	"sync"

	"slateprep/internal/config"
)

// commandContext carries lazily-loaded configuration shared across
// subcommands. Flags are bound by pointer before parsing happens.
type commandContext struct {
	configFlag *string
	jsonFlag   *bool

	once       sync.Once
	cfg        *config.Config
	configPath string
	exists     bool
	loadErr    error
}

func newCommandContext(configFlag *string, jsonFlag *bool) *commandContext {
	return &commandContext{configFlag: configFlag, jsonFlag: jsonFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.once.Do(func() {
		cfg, path, exists, err := config.Load(*c.configFlag)
		if err != nil {
			c.loadErr = fmt.Errorf("load configuration: %w", err)
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.loadErr = fmt.Errorf("prepare directories: %w", err)
			return
		}
		c.cfg = cfg
		c.configPath = path
		c.exists = exists
	})
	return c.cfg, c.loadErr
}

func (c *commandContext) jsonMode() bool {
	return c.jsonFlag != nil && *c.jsonFlag
}
