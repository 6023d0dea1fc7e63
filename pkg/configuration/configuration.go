package configuration

import (
	"github.com/slipway-sh/slipway/pkg/logger"
	"github.com/spf13/viper"
)

var log = logger.NewLogger("slipway.config")

// LoadOrDefault binds a config variable to its environment variable and
// installs the default value. A nil default marks the variable as required.
func LoadOrDefault(configVar string, envVar string, defaultVal any) {
	if defaultVal != nil {
		viper.SetDefault(configVar, defaultVal)
	}
	viper.BindEnv(configVar, envVar)
	if defaultVal == nil {
		if !viper.IsSet(configVar) {
			log.Fatalf("required environment variable %s is not set", envVar)
		}
	}
}
