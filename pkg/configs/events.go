package configs

import "github.com/spf13/viper"

// EventsConfig controls publication of blob lifecycle events.
type EventsConfig struct {
	Enabled bool             `mapstructure:"enabled"`
	Blob    BlobEventsConfig `mapstructure:"blob"`
}

// BlobEventsConfig switches individual blob event topics.
type BlobEventsConfig struct {
	Stored  bool `mapstructure:"stored"`
	Deleted bool `mapstructure:"deleted"`
}

func (c *EventsConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("events.enabled", true)
	v.SetDefault("events.blob.stored", true)
	v.SetDefault("events.blob.deleted", true)
}
