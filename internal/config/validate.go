package config

import (
	"errors"
	"fmt"
)

var validCurves = map[string]struct{}{
	"linear":      {},
	"ease_in":     {},
	"ease_out":    {},
	"ease_in_out": {},
	"hold":        {},
}

var validLogFormats = map[string]struct{}{
	"console": {},
	"json":    {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateKeyframes(); err != nil {
		return err
	}
	if err := c.validateExport(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateKeyframes() error {
	if c.Keyframes.CollisionTolerance <= 0 || c.Keyframes.CollisionTolerance >= 1 {
		return errors.New("keyframes.collision_tolerance must be between 0 and 1 second")
	}
	if _, ok := validCurves[c.Keyframes.DefaultInterpolation]; !ok {
		return fmt.Errorf("keyframes.default_interpolation: unknown curve %q", c.Keyframes.DefaultInterpolation)
	}
	return nil
}

func (c *Config) validateExport() error {
	if c.Export.FPS <= 0 || c.Export.FPS > 1000 {
		return errors.New("export.fps must be between 0 and 1000")
	}
	if c.Export.Workers < 0 {
		return errors.New("export.workers must not be negative")
	}
	if c.Export.MaskWidth <= 0 || c.Export.MaskHeight <= 0 {
		return errors.New("export.mask_width and export.mask_height must be positive")
	}
	if c.Export.MaskWidth > 65535 || c.Export.MaskHeight > 65535 {
		return errors.New("export mask dimensions must fit in 16 bits")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if _, ok := validLogFormats[c.Logging.Format]; !ok {
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}
