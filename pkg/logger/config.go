package logger

import "fmt"

const (
	defaultJsonOutput = false
	defaultLogLevel   = "info"
	undefinedBuildId  = ""
)

type Config struct {
	// BuildId is the unique id of the build the log lines belong to.
	BuildId string

	// LogJsonOutput defines the flag to enable JSON formatted log.
	LogJsonOutput bool

	// LogLevel defines the level of logging.
	LogLevel string
}

func (c *Config) SetLogLevel(level string) error {
	if toLogLevel(level) == UndefinedLevel {
		return fmt.Errorf("undefined log output level: %s", level)
	}
	c.LogLevel = level
	return nil
}

// SetBuildId sets the build id.
func (c *Config) SetBuildId(id string) {
	c.BuildId = id
}

// DefaultConfig returns default configuration values.
func DefaultConfig() Config {
	return Config{
		LogJsonOutput: defaultJsonOutput,
		BuildId:       undefinedBuildId,
		LogLevel:      defaultLogLevel,
	}
}

// ApplyConfigToLoggers applies the config to all registered loggers.
func ApplyConfigToLoggers(config *Config) error {
	internalLoggers := getLoggers()

	// apply formatting options first
	for _, v := range internalLoggers {
		v.EnableJsonOutput(config.LogJsonOutput)

		if config.BuildId != undefinedBuildId {
			v.SetBuildId(config.BuildId)
		}
	}

	logLevel := toLogLevel(config.LogLevel)
	if logLevel == UndefinedLevel {
		return fmt.Errorf("invalid value for --log-level: %s", config.LogLevel)
	}

	for _, v := range internalLoggers {
		v.SetLogLevel(logLevel)
	}
	return nil
}
