package container

import (
	"fmt"
	"os"

	"github.com/slipway-sh/slipway/pkg/configuration"
	"github.com/spf13/viper"
)

type Config struct {
	// Specifies the time in seconds the container is given to shutdown gracefully.
	ContainerStopTimeout int

	// Specifies whether the parent image is re-pulled on every build.
	AlwaysPullBase bool
}

func DefaultConfig() Config {
	return Config{
		ContainerStopTimeout: 5,
		AlwaysPullBase:       false,
	}
}

func LoadConfig() Config {
	var config Config

	// automatically load environment variables that match
	viper.AutomaticEnv()
	viper.SetEnvPrefix("SLIPWAY")

	// loading the values from the environment or use default values
	configuration.LoadOrDefault("ContainerStopTimeout", "SLIPWAY_CONTAINER_STOP_TIMEOUT", DefaultConfig().ContainerStopTimeout)
	configuration.LoadOrDefault("AlwaysPullBase", "SLIPWAY_ALWAYS_PULL_BASE", DefaultConfig().AlwaysPullBase)

	// unmarshalling the Config struct
	if err := viper.Unmarshal(&config); err != nil {
		fmt.Printf("unable to unmarshal engine config: %v\n", err)
		os.Exit(1)
	}

	return config
}
