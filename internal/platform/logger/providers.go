package logger

import "github.com/google/wire"

// ProviderSet builds the request-time logger once configuration is loaded.
// The bootstrap logger is provided separately because it must exist first.
var ProviderSet = wire.NewSet(
	NewConfiguredLogger,
	wire.Bind(new(Logger), new(*SlogAdapter)),
)

// Config selects the handler format and minimum level.
type Config struct {
	Environment string
	LogLevel    string
}

func NewConfiguredLogger(config Config) *SlogAdapter {
	return NewSlogAdapter(config.Environment, config.LogLevel)
}
