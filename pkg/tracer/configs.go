package tracer

// Default service name reported in the trace resource if none is specified.
const DefaultServiceName = "searchspec"

// Config defines the configuration structure for the OpenTelemetry tracer.
// It controls the resource identity attached to every span and whether
// spans leave the process at all.
type Config struct {
	// ServiceName identifies the service in every exported trace.
	// It becomes the service.name resource attribute.
	//
	// This setting can be configured via:
	//   - YAML configuration with the "service_name" key
	//   - Environment variable TRACER_SERVICE_NAME
	//
	// Default: "searchspec"
	ServiceName string `yaml:"service_name" envconfig:"TRACER_SERVICE_NAME"`

	// ServiceVersion records the running build in the service.version
	// resource attribute. Left empty, the attribute is omitted.
	//
	// This setting can be configured via:
	//   - YAML configuration with the "service_version" key
	//   - Environment variable TRACER_SERVICE_VERSION
	ServiceVersion string `yaml:"service_version" envconfig:"TRACER_SERVICE_VERSION"`

	// AppEnv names the deployment environment the traces originate from,
	// for example "development", "staging" or "production".
	//
	// This setting can be configured via:
	//   - YAML configuration with the "app_env" key
	//   - Environment variable APP_ENV
	AppEnv string `yaml:"app_env" envconfig:"APP_ENV"`

	// EnableExport controls whether spans are shipped to an OTLP/HTTP
	// collector. When false the tracer still creates spans, so code paths
	// and tests behave identically, but nothing leaves the process.
	//
	// This setting can be configured via:
	//   - YAML configuration with the "enable_export" key
	//   - Environment variable TRACER_ENABLE_EXPORT
	//
	// Default: false
	EnableExport bool `yaml:"enable_export" envconfig:"TRACER_ENABLE_EXPORT"`

	// Endpoint overrides the OTLP/HTTP collector address, for example
	// "otel-collector:4318". Left empty, the exporter falls back to the
	// standard OTEL_EXPORTER_OTLP_ENDPOINT resolution.
	//
	// This setting can be configured via:
	//   - YAML configuration with the "endpoint" key
	//   - Environment variable TRACER_ENDPOINT
	Endpoint string `yaml:"endpoint" envconfig:"TRACER_ENDPOINT"`

	// Insecure disables TLS towards the collector. Meant for local
	// development setups where the collector listens on plain HTTP.
	//
	// This setting can be configured via:
	//   - YAML configuration with the "insecure" key
	//   - Environment variable TRACER_INSECURE
	//
	// Default: false
	Insecure bool `yaml:"insecure" envconfig:"TRACER_INSECURE"`
}
