package settings

import (
	"github.com/bsv-blockchain/bitwire/errors"
	"github.com/bsv-blockchain/bitwire/ulogger"
	"github.com/bsv-blockchain/bitwire/wire"
)

// NewSettings reads the configuration through gocore, falling back to defaults
// for anything unset.
func NewSettings() (*Settings, error) {
	network, err := wire.ParseNetwork(getString("network", "mainnet"))
	if err != nil {
		return nil, err
	}

	s := &Settings{
		ClientName: getString("clientName", "bitwire"),
		LogLevel:   getString("logLevel", "INFO"),
		LoggerType: getString("logger", "zerolog"),
		Wire: WireSettings{
			Network:         network,
			MaxBufferSize:   getInt("wire_maxBufferSize", wire.DefaultMaxBufferSize),
			InitialCapacity: getInt("wire_initialCapacity", 256),
			SecureBuffers:   getBool("wire_secureBuffers", true),
		},
	}

	if err = s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Settings) Validate() error {
	if s.Wire.MaxBufferSize <= 0 {
		return errors.NewConfigurationError("wire_maxBufferSize must be positive, got %d", s.Wire.MaxBufferSize)
	}

	if s.Wire.InitialCapacity < 0 || s.Wire.InitialCapacity > s.Wire.MaxBufferSize {
		return errors.NewConfigurationError("wire_initialCapacity must be between 0 and %d, got %d", s.Wire.MaxBufferSize, s.Wire.InitialCapacity)
	}

	return nil
}

// Logger returns a logger for service configured from these settings.
func (s *Settings) Logger(service string) ulogger.Logger {
	return ulogger.New(service, ulogger.WithLevel(s.LogLevel), ulogger.WithLoggerType(s.LoggerType))
}

// BuilderOptions turns the wire settings into builder options.
func (s *Settings) BuilderOptions(logger ulogger.Logger) []wire.Option {
	opts := []wire.Option{
		wire.WithNetwork(s.Wire.Network),
		wire.WithInitialCapacity(s.Wire.InitialCapacity),
	}

	if s.Wire.SecureBuffers {
		opts = append(opts, wire.WithAllocator(wire.NewScrubAllocator(s.Wire.MaxBufferSize)))
	}

	if logger != nil {
		opts = append(opts, wire.WithLogger(logger))
	}

	return opts
}

// NewBuilder returns a builder configured from these settings. Secure buffers
// go through the scrubbing allocator, otherwise a plain builder is returned.
// Both start with wire_initialCapacity bytes of capacity.
func (s *Settings) NewBuilder(logger ulogger.Logger) (*wire.Builder, error) {
	opts := s.BuilderOptions(logger)

	if s.Wire.SecureBuffers {
		return wire.NewSecureBuilder(opts...)
	}

	b := wire.NewBuilder(opts...)

	return b, b.Err()
}
