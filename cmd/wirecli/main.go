// Package main provides wirecli, a command-line tool printing the Bitcoin wire
// encoding of varints, strings, scripts, network addresses and framed messages.
//
// Usage:
//
//	wirecli varint 253
//	wirecli p2pkh --address 1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH
//	wirecli message --command ping --payload 0102030405060708 --network testnet
//	wirecli netaddr --ip 10.0.0.1 --port 8333 --services 1
//	wirecli string --value /bitwire:0.1/ --pad 16
//
// Every command writes the encoding as lowercase hex on a single line.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bsv-blockchain/bitwire/settings"
	"github.com/urfave/cli/v2"
)

func main() {
	tSettings, err := settings.NewSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading settings: %v\n", err)
		os.Exit(1)
	}

	if err = newApp(tSettings, os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newApp(tSettings *settings.Settings, out io.Writer) *cli.App {
	networkFlag := &cli.StringFlag{
		Name:  "network",
		Usage: "mainnet, testnet or regtest (defaults to the configured network)",
	}

	return &cli.App{
		Name:      "wirecli",
		Usage:     "Print Bitcoin P2P wire encodings as hex",
		Writer:    out,
		ErrWriter: os.Stderr,
		Commands: []*cli.Command{
			{
				Name:      "varint",
				Usage:     "Encode an unsigned integer as a varint",
				ArgsUsage: "<value>",
				Action:    newCommand(tSettings, varintAction),
			},
			{
				Name:  "string",
				Usage: "Encode a string, length prefixed or null padded to --pad bytes",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "value", Required: true},
					&cli.IntFlag{Name: "pad", Usage: "fixed field width; 0 writes a varint length prefix"},
				},
				Action: newCommand(tSettings, stringAction),
			},
			{
				Name:  "p2pkh",
				Usage: "Build a pay-to-public-key-hash output script",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "hash", Usage: "20 byte public key hash as hex"},
					&cli.StringFlag{Name: "address", Usage: "Base58Check address"},
					networkFlag,
				},
				Action: newCommand(tSettings, p2pkhAction),
			},
			{
				Name:  "netaddr",
				Usage: "Encode a network address record",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "ip", Required: true},
					&cli.UintFlag{Name: "port", Value: 8333},
					&cli.Uint64Flag{Name: "services", Value: 1},
				},
				Action: newCommand(tSettings, netAddrAction),
			},
			{
				Name:  "message",
				Usage: "Frame a payload as a P2P message",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "command", Required: true},
					&cli.StringFlag{Name: "payload", Usage: "payload as hex"},
					networkFlag,
				},
				Action: newCommand(tSettings, messageAction),
			},
		},
	}
}
