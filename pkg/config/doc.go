// Package config provides configuration management for textc.
//
// Configuration is read from an optional YAML file, completed with defaults,
// overridden from the environment and validated.
//
// # Configuration Loading
//
//	cfg, err := config.LoadConfig("textc.yaml")                 // file + defaults
//	cfg, err := config.LoadConfigWithEnvOverrides("textc.yaml") // + TEXTC_* env
//	cfg, err := config.LoadConfigWithEnvOverrides("")           // defaults + env only
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention TEXTC_SECTION_FIELD:
//
//   - TEXTC_COMPILER_OUTPUT_MODE overrides compiler.output_mode
//   - TEXTC_WATCH_SCHEDULE overrides watch.schedule
//   - TEXTC_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// LoadDotEnv exports a .env file into the environment first; variables that
// are already set keep their value.
//
// # Configuration Precedence
//
//  1. Default values (defaults.go)
//  2. Values from the YAML file
//  3. Environment variable overrides (including .env)
//  4. Validation (fails fast if invalid)
//
// # Example Configuration
//
//	compiler:
//	  output_mode: "0644"
//	  warn_on_cycle: true
//
//	watch:
//	  debounce: "200ms"
//	  schedule: "@every 5m"
//
//	telemetry:
//	  logging:
//	    level: "info"
//	    format: "text"
//	  metrics:
//	    enabled: true
//	    listen_address: "127.0.0.1:9464"
//	  tracing:
//	    enabled: false
//	    endpoint: "localhost:4317"
package config
