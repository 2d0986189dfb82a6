package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeKeyframes()
	c.normalizeExport()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.ProjectDir) == "" {
		c.Paths.ProjectDir = defaultProjectDir
	}
	if c.Paths.ProjectDir, err = expandPath(c.Paths.ProjectDir); err != nil {
		return fmt.Errorf("paths.project_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeKeyframes() {
	if !(c.Keyframes.CollisionTolerance > 0) {
		c.Keyframes.CollisionTolerance = defaultCollisionTolerance
	}
	curve := strings.ToLower(strings.TrimSpace(c.Keyframes.DefaultInterpolation))
	curve = strings.ReplaceAll(curve, "-", "_")
	if curve == "" {
		curve = defaultInterpolation
	}
	c.Keyframes.DefaultInterpolation = curve
}

func (c *Config) normalizeExport() {
	if !(c.Export.FPS > 0) {
		c.Export.FPS = defaultExportFPS
	}
	if c.Export.Workers < 0 {
		c.Export.Workers = 0
	}
	if c.Export.MaskWidth <= 0 {
		c.Export.MaskWidth = defaultExportMaskWidth
	}
	if c.Export.MaskHeight <= 0 {
		c.Export.MaskHeight = defaultExportMaskHeight
	}
}

func (c *Config) normalizeLogging() {
	format := strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if format == "" {
		format = defaultLogFormat
	}
	c.Logging.Format = format

	level := strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if level == "" {
		level = defaultLogLevel
	}
	c.Logging.Level = level
}
