package config

const (
	defaultLogDir          = "~/.local/share/folio/logs"
	defaultSidecarFilename = "info.yml"
	defaultFFprobeBinary   = "ffprobe"
	defaultJournalEnabled  = true
	defaultJournalPath     = "~/.local/share/folio/journal.db"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

func defaultExcludeGlobs() []string {
	return []string{"**/info.yml", "**/thumb.*"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Sidecar: Sidecar{
			Filename:     defaultSidecarFilename,
			ExcludeGlobs: defaultExcludeGlobs(),
		},
		Probe: Probe{
			FFprobeBinary: defaultFFprobeBinary,
		},
		Journal: Journal{
			Enabled: defaultJournalEnabled,
			Path:    defaultJournalPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
