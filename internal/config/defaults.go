package config

const (
	// DefaultExportDir is the pre-filled export destination when none is configured.
	DefaultExportDir = "D:/sd_models/exports"
	DefaultAddr      = ":8080"
	DefaultLogLevel  = "info"
	// DefaultLogMaxSizeMB caps a log file before lumberjack rotates it.
	DefaultLogMaxSizeMB = 50
)

// Environment overrides, applied before defaults.
const (
	EnvLibraryRoot = "MODELEXPORT_LIBRARY_ROOT"
	EnvExportDir   = "MODELEXPORT_EXPORT_DIR"
	EnvAddr        = "MODELEXPORT_ADDR"
	EnvLogLevel    = "MODELEXPORT_LOG_LEVEL"
)

// Defaults returns a Config with every defaultable field set.
func Defaults() Config {
	var c Config
	c.ApplyDefaults()
	return c
}

// ApplyDefaults fills unspecified fields.
func (c *Config) ApplyDefaults() {
	if c.DefaultExportDir == "" {
		c.DefaultExportDir = DefaultExportDir
	}
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.LogMaxSizeMB <= 0 {
		c.LogMaxSizeMB = DefaultLogMaxSizeMB
	}
}

// ApplyEnv overrides fields from the environment. lookup is os.LookupEnv in production.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvLibraryRoot); ok && v != "" {
		c.LibraryRoot = v
	}
	if v, ok := lookup(EnvExportDir); ok && v != "" {
		c.DefaultExportDir = v
	}
	if v, ok := lookup(EnvAddr); ok && v != "" {
		c.Addr = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
}
