package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	CORS    CORSConfig
	Session SessionConfig
}

type ServerConfig struct {
	Address string
}

type CORSConfig struct {
	AllowedOrigins string
}

type SessionConfig struct {
	// TokenSecret signs student rejoin tokens. Override it outside dev.
	TokenSecret string
	// DefaultTimerSeconds is used when timer-started carries no duration.
	DefaultTimerSeconds int
}

// Load reads the optional config file and environment overrides
// (CLASSROOM_SERVER_ADDRESS and friends).
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("cors.allowedorigins", "*")
	viper.SetDefault("session.tokensecret", "classroom-dev-secret")
	viper.SetDefault("session.defaulttimerseconds", 10)

	viper.SetEnvPrefix("classroom")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// The file is optional; only a malformed one is an error.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
