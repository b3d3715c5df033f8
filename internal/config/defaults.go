package config

// GetDefault returns the default configuration
func GetDefault() *Config {
	return &Config{
		DryRun:   false,
		Verbose:  false,
		Output:   "summary",
		Color:    true, // still disabled automatically when stdout is not a terminal
		LogLevel: "warn",
		LogFile:  "",
	}
}
