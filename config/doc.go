// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags;
// secrets (the Slack token and OneBusAway API key) come from the environment,
// optionally via a .env file. Validation failures are fatal at startup.
package config
