package wire

import (
	"strings"

	"github.com/bsv-blockchain/bitwire/errors"
	"github.com/bsv-blockchain/go-chaincfg"
)

// Network selects the message start bytes written by AppendMessage and the
// address version accepted by the default address decoder.
type Network struct {
	Name             string
	Magic            uint32
	PubKeyHashAddrID byte
}

var (
	MainNet = Network{Name: "mainnet", Magic: 0xd9b4bef9, PubKeyHashAddrID: 0x00}
	TestNet = Network{Name: "testnet", Magic: 0x0709110b, PubKeyHashAddrID: 0x6f}
)

// NetworkFromChainParams builds a Network from a chaincfg parameter set.
func NetworkFromChainParams(params *chaincfg.Params) Network {
	return Network{
		Name:             params.Name,
		Magic:            uint32(params.Net),
		PubKeyHashAddrID: params.LegacyPubKeyHashAddrID,
	}
}

// ParseNetwork resolves a network name. "mainnet" and "testnet" map to the
// presets above, "regtest" is taken from chaincfg.
func ParseNetwork(name string) (Network, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "main", "mainnet":
		return MainNet, nil
	case "test", "testnet", "testnet3":
		return TestNet, nil
	case "regtest", "regression":
		return NetworkFromChainParams(&chaincfg.RegressionNetParams), nil
	default:
		return Network{}, errors.NewConfigurationError("unknown network %q", name)
	}
}

func (n Network) String() string {
	return n.Name
}
