package config

const (
	defaultConfigPath     = "~/.config/astrocopy/config.toml"
	projectConfigName     = "astrocopy.toml"
	defaultSourceMarker   = "stellina"
	defaultScopeName      = "Stellina"
	defaultGroupStrategy  = GroupByDate
	defaultNamingStrategy = NameByTicksHex
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Scan: Scan{
			Recurse:      true,
			SourceMarker: defaultSourceMarker,
		},
		Organize: Organize{
			GroupStrategy:  defaultGroupStrategy,
			NamingStrategy: defaultNamingStrategy,
			ScopeName:      defaultScopeName,
		},
		Copy: Copy{
			PreserveTimes: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
