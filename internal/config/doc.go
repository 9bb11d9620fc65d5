// Package config manages the persistent CLI configuration stored at
// ~/.termbot/config.yaml, with TERMBOT_* environment variables overlaid via
// Viper.
package config
