package main

import (
	"encoding/hex"
	"fmt"
	"math"
	"net"
	"strconv"

	"github.com/bsv-blockchain/bitwire/errors"
	"github.com/bsv-blockchain/bitwire/settings"
	"github.com/bsv-blockchain/bitwire/wire"
	"github.com/urfave/cli/v2"
)

type encodeFunc func(c *cli.Context, b *wire.Builder) error

// newCommand wraps an encoder with builder setup, hex output and release of
// the (scrubbed) buffer.
func newCommand(tSettings *settings.Settings, encode encodeFunc) cli.ActionFunc {
	return func(c *cli.Context) error {
		logger := tSettings.Logger("wirecli")

		s := *tSettings

		if name := c.String("network"); name != "" {
			network, err := wire.ParseNetwork(name)
			if err != nil {
				return err
			}

			s.Wire.Network = network
		}

		b, err := s.NewBuilder(logger)
		if err != nil {
			return err
		}

		defer b.Release()

		if err = encode(c, b); err != nil {
			return err
		}

		out, err := b.Bytes()
		if err != nil {
			return err
		}

		logger.Debugf("[wirecli] %s produced %d bytes on %s", c.Command.Name, len(out), b.Network())

		_, err = fmt.Fprintln(c.App.Writer, hex.EncodeToString(out))

		return err
	}
}

func varintAction(c *cli.Context, b *wire.Builder) error {
	if c.NArg() != 1 {
		return errors.NewInvalidArgumentError("varint takes exactly one value")
	}

	value, err := strconv.ParseUint(c.Args().First(), 0, 64)
	if err != nil {
		return errors.NewInvalidArgumentError("invalid value %q", c.Args().First(), err)
	}

	b.AppendVarInt(value)

	return nil
}

func stringAction(c *cli.Context, b *wire.Builder) error {
	if pad := c.Int("pad"); pad > 0 {
		return b.AppendNullPaddedString(c.String("value"), pad)
	}

	b.AppendString(c.String("value"))

	return nil
}

func p2pkhAction(c *cli.Context, b *wire.Builder) error {
	switch {
	case c.String("hash") != "" && c.String("address") != "":
		return errors.NewInvalidArgumentError("use either --hash or --address")
	case c.String("hash") != "":
		hash, err := hex.DecodeString(c.String("hash"))
		if err != nil {
			return errors.NewInvalidArgumentError("invalid hex hash", err)
		}

		return b.AppendScriptPubKeyForHash(hash)
	case c.String("address") != "":
		return b.AppendScriptPubKeyForAddress(c.String("address"))
	default:
		return errors.NewInvalidArgumentError("one of --hash or --address is required")
	}
}

func netAddrAction(c *cli.Context, b *wire.Builder) error {
	ip := net.ParseIP(c.String("ip"))
	if ip == nil {
		return errors.NewInvalidArgumentError("invalid ip address %q", c.String("ip"))
	}

	port := c.Uint("port")
	if port > math.MaxUint16 {
		return errors.NewInvalidArgumentError("port %d out of range", port)
	}

	return b.AppendNetAddress(ip, uint16(port), c.Uint64("services"))
}

func messageAction(c *cli.Context, b *wire.Builder) error {
	payload, err := hex.DecodeString(c.String("payload"))
	if err != nil {
		return errors.NewInvalidArgumentError("invalid hex payload", err)
	}

	return b.AppendMessage(payload, c.String("command"))
}
