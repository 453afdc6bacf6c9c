package config

// ServerConfig contains the ops HTTP server configuration
type ServerConfig struct {
	Port int `yaml:"port" validate:"gte=0"`
}

// TimeOfDayConfig is a wall-clock time in the user's timezone
type TimeOfDayConfig struct {
	Hour int `yaml:"hour" validate:"gte=0,lte=23"`
	Min  int `yaml:"min" validate:"gte=0,lte=59"`
}

// ScheduleConfig is one recurring notification schedule
type ScheduleConfig struct {
	Stop           string          `yaml:"stop" validate:"required"`
	Route          string          `yaml:"route" validate:"required"`
	Start          TimeOfDayConfig `yaml:"start"`
	End            TimeOfDayConfig `yaml:"end"`
	DaysOfWeek     []int           `yaml:"daysOfWeek" validate:"min=1,dive,gte=0,lte=6"`
	MinIntervalSec int             `yaml:"minIntervalSec" validate:"gte=0"`
	TravelTimeMin  int             `yaml:"travelTimeMin" validate:"gte=0"`
}

// BusRuleConfig selects the stop for on-demand lookups by time of day
type BusRuleConfig struct {
	Start         TimeOfDayConfig `yaml:"start"`
	End           TimeOfDayConfig `yaml:"end"`
	Stop          string          `yaml:"stop" validate:"required"`
	Route         string          `yaml:"route" validate:"required"`
	TravelTimeMin int             `yaml:"travelTimeMin" validate:"gte=0"`
}

// OBAConfig contains the OneBusAway API configuration. The key comes from
// the ONEBUSAWAY_API_KEY environment variable, not the config file.
type OBAConfig struct {
	BaseURL   string `yaml:"baseURL" validate:"omitempty,url"`
	TimeoutMS int    `yaml:"timeoutMS" validate:"gte=0"`
	APIKey    string `yaml:"-"`
}

// GTFSRTConfig configures the GTFS-Realtime TripUpdates arrival source used
// instead of OneBusAway when tripUpdatesURL is set. Stop and route display
// names come from the config since there is no static feed to resolve them.
type GTFSRTConfig struct {
	TripUpdatesURL string            `yaml:"tripUpdatesURL" validate:"omitempty,url"`
	TimeoutMS      int               `yaml:"timeoutMS" validate:"gte=0"`
	StopNames      map[string]string `yaml:"stopNames"`
	RouteNames     map[string]string `yaml:"routeNames"`
}

// SlackConfig contains chat delivery configuration. The bot token comes from
// the SLACK_TOKEN environment variable.
type SlackConfig struct {
	Channel string `yaml:"channel" validate:"required"`
	Token   string `yaml:"-"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server           ServerConfig     `yaml:"server"`
	Slack            SlackConfig      `yaml:"slack"`
	OBA              OBAConfig        `yaml:"oneBusAway"`
	GTFSRT           GTFSRTConfig     `yaml:"gtfsrt"`
	UserUTCOffsetMin int              `yaml:"userUTCOffsetMin" validate:"gte=-840,lte=840"`
	LookupSpanMin    int              `yaml:"lookupSpanMin" validate:"gte=0"`
	Schedules        []ScheduleConfig `yaml:"schedules" validate:"min=1"`
	BusRules         []BusRuleConfig  `yaml:"busRules"`
}
