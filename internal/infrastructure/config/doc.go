// Package config handles loading and validating panel configuration.
//
// This package manages:
//   - Loading configuration from YAML files
//   - Overriding with GRAYLOGIC_* environment variables
//   - Validation of required fields
//   - Default value handling
//
// Wall panels are frequently provisioned with environment variables
// alone, so a missing config file is tolerated — defaults plus
// environment produce a working configuration. A panel without Core
// credentials (GRAYLOGIC_TOKEN / GRAYLOGIC_ROOM) is still valid; the
// boot sequencer falls back to the demo dataset.
//
// Security Considerations:
//   - The panel token should be set via environment variable
//   - The config file should have restricted permissions (0600)
//
// Usage:
//
//	cfg, err := config.Load("configs/panel.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if cfg.HasCoreCredentials() { ... }
package config
