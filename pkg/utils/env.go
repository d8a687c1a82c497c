package utils

import (
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// LoadConfig reads the .env file at path (if any) and primes viper so
// environment variables are reachable through viper.Get*.
func LoadConfig(path string) {
	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			logrus.Debugf("[CONFIG] skipping .env file: %v", err)
		}
	}

	// Integrations read their API keys straight from the process
	// environment, so mirror the .env file there as well.
	_ = godotenv.Load(filepath.Join(path, ".env"))
}
