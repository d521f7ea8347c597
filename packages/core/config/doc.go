// Package config handles configuration loading and management for axotly.
//
// It provides functionality for:
//   - Loading configuration from .axotly.yaml, .axotly.yml, axotly.config.json or .axotlyrc
//   - Default configuration values
//   - Merging command line overrides on top of a loaded file
package config
