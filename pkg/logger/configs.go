package logger

// Log levels accepted by Config.Level.
const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

// DefaultService is the service tag stamped on every log line when the
// configuration leaves Service empty.
const DefaultService = "searchspec"

type Config struct {
	// Level selects the minimum level that is emitted. Unknown values
	// fall back to info.
	Level string `yaml:"level" envconfig:"ZAP_LOGGER_LEVEL"`

	// Service overrides the service initial field.
	Service string `yaml:"service" envconfig:"LOGGER_SERVICE"`
}
