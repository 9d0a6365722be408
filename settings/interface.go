package settings

import (
	"github.com/bsv-blockchain/bitwire/wire"
)

type WireSettings struct {
	Network         wire.Network
	MaxBufferSize   int
	InitialCapacity int
	SecureBuffers   bool
}

type Settings struct {
	ClientName string
	LogLevel   string
	LoggerType string
	Wire       WireSettings
}
