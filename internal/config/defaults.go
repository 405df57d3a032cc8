package config

const (
	defaultConfigPath = "~/.config/phototitles/config.toml"
	projectConfigName = "phototitles.toml"
	defaultStateDir   = "~/.local/share/phototitles"
	defaultLogFormat  = "console"
	defaultLogLevel   = "info"

	// AbsentNull marks libraries that store a missing title as NULL (Photos).
	AbsentNull = "null"
	// AbsentEmpty marks libraries that store a missing title as '' (iPhoto).
	AbsentEmpty = "empty"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
		},
		Libraries: Libraries{
			OldAbsent: AbsentEmpty,
			NewAbsent: AbsentNull,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
