package hris

// Config holds configuration for the upstream HR directory API.
type Config struct {
	// BaseURL is the root URL of the upstream directory service.
	BaseURL string `mapstructure:"base_url" default:"http://localhost:9090"`
	// ApiKey is the credential sent with every upstream request.
	ApiKey string `mapstructure:"api_key" default:""`
	// TimeoutSeconds is the fixed per-call request timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
