package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const defaultOBABaseURL = "https://api.pugetsound.onebusaway.org/api/where"

// Config is the global application configuration
var Config AppConfig

// LoadAppConfig loads and validates the application configuration from the
// given path (config.yml when empty). Secrets are read from the environment,
// with an optional .env file. Any invariant violation is returned as an
// error and must abort startup: a schedule the engine cannot satisfy is a
// programming/deployment error, not something to limp along with.
func LoadAppConfig(path string) error {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	if path == "" {
		path = "config.yml"
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return err
	}

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return err
	}
	for i, s := range cfg.Schedules {
		if err := v.Struct(s); err != nil {
			return err
		}
		if startMs(s.Start) >= startMs(s.End) {
			return fmt.Errorf("schedules[%d]: start %02d:%02d must be before end %02d:%02d (overnight windows are unsupported)",
				i, s.Start.Hour, s.Start.Min, s.End.Hour, s.End.Min)
		}
	}
	for i, r := range cfg.BusRules {
		if err := v.Struct(r); err != nil {
			return err
		}
		if startMs(r.Start) >= startMs(r.End) {
			return fmt.Errorf("busRules[%d]: start %02d:%02d must be before end %02d:%02d",
				i, r.Start.Hour, r.Start.Min, r.End.Hour, r.End.Min)
		}
	}

	cfg.Slack.Token = os.Getenv("SLACK_TOKEN")
	if cfg.Slack.Token == "" {
		return fmt.Errorf("SLACK_TOKEN must be set")
	}
	cfg.OBA.APIKey = os.Getenv("ONEBUSAWAY_API_KEY")
	if cfg.GTFSRT.TripUpdatesURL == "" && cfg.OBA.APIKey == "" {
		return fmt.Errorf("ONEBUSAWAY_API_KEY must be set unless gtfsrt.tripUpdatesURL is configured")
	}

	if cfg.OBA.BaseURL == "" {
		cfg.OBA.BaseURL = defaultOBABaseURL
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 16181
	}
	Config = cfg
	return nil
}

func startMs(t TimeOfDayConfig) int64 {
	return int64(t.Hour)*3600000 + int64(t.Min)*60000
}
