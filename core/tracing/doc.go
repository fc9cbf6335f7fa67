// Package tracing configures OpenTelemetry trace export over OTLP/HTTP.
//
// The reconciler and the gorm plugin emit spans through the global provider. Setup
// installs it when tracing is enabled; otherwise the global no-op provider stays.
package tracing
