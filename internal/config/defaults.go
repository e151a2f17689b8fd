package config

const (
	defaultLogDir               = "~/.local/share/slateprep/logs"
	defaultHistoryPath          = "~/.local/share/slateprep/history.db"
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
	defaultProbeTimeoutSeconds  = 10
	defaultPipTimeoutSeconds    = 900
	defaultNativeTimeoutSeconds = 600
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Install: Install{
			ProbeTimeoutSeconds:  defaultProbeTimeoutSeconds,
			PipTimeoutSeconds:    defaultPipTimeoutSeconds,
			NativeTimeoutSeconds: defaultNativeTimeoutSeconds,
		},
		History: History{
			Enabled: false,
			Path:    defaultHistoryPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
