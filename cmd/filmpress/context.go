package main

import (
	"log/slog"
	"os"
	"strings"
	"sync"

	"filmpress/internal/config"
	"filmpress/internal/logging"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// ensureLogger builds the process logger from the loaded configuration. It
// requires ensureConfig to have succeeded.
func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	c.loggerOnce.Do(func() {
		logger, buildErr := logging.New(logging.Options{
			Format: cfg.Logging.Format,
			Level:  cfg.Logging.Level,
			Writer: os.Stderr,
		})
		if buildErr != nil {
			c.loggerErr = buildErr
			return
		}
		c.logger = logger
	})
	return c.logger, c.loggerErr
}
