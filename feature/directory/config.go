package directory

import "time"

// Config holds tuning for the directory sync subsystem.
type Config struct {
	// SyncEnabled administratively enables the scheduled and lookup-triggered
	// synchronization. Manual force sync works regardless.
	SyncEnabled bool `mapstructure:"sync_enabled" default:"true"`
	// SyncIntervalMinutes is the fixed interval of the scheduled sync.
	SyncIntervalMinutes int `mapstructure:"sync_interval_minutes" default:"10"`
	// ReferenceTTLMinutes is the validity window of the rank/department caches.
	ReferenceTTLMinutes int `mapstructure:"reference_ttl_minutes" default:"60"`
	// StalenessHours is the window past which a list hit still triggers a
	// background refresh.
	StalenessHours int `mapstructure:"staleness_hours" default:"24"`
}

// SyncInterval returns the scheduled sync interval as a duration.
func (c Config) SyncInterval() time.Duration {
	minutes := c.SyncIntervalMinutes
	if minutes <= 0 {
		minutes = 10
	}
	return time.Duration(minutes) * time.Minute
}

// ReferenceTTL returns the reference cache validity window as a duration.
func (c Config) ReferenceTTL() time.Duration {
	minutes := c.ReferenceTTLMinutes
	if minutes <= 0 {
		minutes = 60
	}
	return time.Duration(minutes) * time.Minute
}

// StalenessWindow returns the background refresh threshold as a duration.
func (c Config) StalenessWindow() time.Duration {
	hours := c.StalenessHours
	if hours <= 0 {
		hours = 24
	}
	return time.Duration(hours) * time.Hour
}
