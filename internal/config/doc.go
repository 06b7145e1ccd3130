// Package config loads and validates bot configuration from YAML files
// with ${VAR} environment expansion and optional .env loading.
package config
