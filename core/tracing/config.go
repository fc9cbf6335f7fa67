package tracing

// Config holds configuration for the OpenTelemetry trace exporter.
type Config struct {
	// Enabled turns on span export.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// Endpoint is the OTLP/HTTP collector host and port.
	Endpoint string `mapstructure:"endpoint" default:"localhost:4318"`
	// Insecure disables TLS towards the collector.
	Insecure bool `mapstructure:"insecure" default:"true"`
	// ServiceName is reported as the service.name resource attribute.
	ServiceName string `mapstructure:"service_name" default:"travel-admin"`
	// SampleRatio is the fraction of traces kept, between 0 and 1.
	SampleRatio float64 `mapstructure:"sample_ratio" default:"1"`
}
