package config

const (
	defaultProjectDir         = "~/.local/share/cropaway/projects"
	defaultLogDir             = "~/.local/share/cropaway/logs"
	defaultCollisionTolerance = 0.05
	defaultInterpolation      = "linear"
	defaultAutoKeyframe       = true
	defaultExportFPS          = 30.0
	defaultExportMaskWidth    = 1920
	defaultExportMaskHeight   = 1080
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			ProjectDir: defaultProjectDir,
			LogDir:     defaultLogDir,
		},
		Keyframes: Keyframes{
			CollisionTolerance:   defaultCollisionTolerance,
			DefaultInterpolation: defaultInterpolation,
			AutoKeyframe:         defaultAutoKeyframe,
		},
		Export: Export{
			FPS:        defaultExportFPS,
			Workers:    0,
			MaskWidth:  defaultExportMaskWidth,
			MaskHeight: defaultExportMaskHeight,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
