package main

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/urfave/cli/v2"
)

var (
	configFlag = &cli.StringFlag{
		Name:    "config",
		Usage:   "config file, any format viper reads (yaml, toml, json)",
		EnvVars: []string{env_prefix + "_CONFIG"},
	}
	fromFlag = &cli.StringFlag{
		Name:     "from",
		Usage:    "transaction sender",
		Required: true,
	}
	timeFlag = &cli.Uint64Flag{
		Name:  "time",
		Usage: "block time in seconds, the wall clock by default",
	}
	urdFlag = &cli.StringFlag{
		Name:     "urd",
		Usage:    "distributor address",
		Required: true,
	}
	rootFlag = &cli.StringFlag{
		Name:  "root",
		Usage: "merkle root, 32 bytes hex",
	}
	ipfsHashFlag = &cli.StringFlag{
		Name:  "ipfs-hash",
		Usage: "hash of the tree published off chain, 32 bytes hex",
	}
	timelockFlag = &cli.Uint64Flag{
		Name:  "timelock",
		Usage: "seconds a submitted root waits before it can be accepted",
	}
	ownerFlag = &cli.StringFlag{
		Name:     "owner",
		Usage:    "owner address",
		Required: true,
	}
	saltFlag = &cli.StringFlag{
		Name:  "salt",
		Usage: "32 bytes hex, picks the instance address together with the other parameters",
	}
	tokenFlag = &cli.StringFlag{
		Name:     "token",
		Usage:    "token address",
		Required: true,
	}
)

// txFlags are added to every command that sends a transaction
func txFlags(flags ...cli.Flag) []cli.Flag {
	return append([]cli.Flag{fromFlag, timeFlag}, flags...)
}

// Parses flag values, the first failure sticks and the following calls return zero values
type args struct {
	c   *cli.Context
	err error
}

func (self *args) address(name string) (ret common.Address) {
	if self.err != nil {
		return
	}
	s := self.c.String(name)
	if !common.IsHexAddress(s) {
		self.err = fmt.Errorf("--%s: invalid address %q", name, s)
		return
	}
	return common.HexToAddress(s)
}

// Empty means zero
func (self *args) hash(name string) (ret common.Hash) {
	if self.err != nil {
		return
	}
	ret, self.err = parseHash(name, self.c.String(name))
	return
}

func (self *args) hashes(name string) (ret [][32]byte) {
	for _, s := range self.c.StringSlice(name) {
		if self.err != nil {
			return nil
		}
		var h common.Hash
		h, self.err = parseHash(name, s)
		ret = append(ret, h)
	}
	return
}

func (self *args) amount(name string) *big.Int {
	if self.err != nil {
		return nil
	}
	s := self.c.String(name)
	v, ok := new(big.Int).SetString(s, 0)
	if !ok || v.Sign() < 0 || v.BitLen() > 256 {
		self.err = fmt.Errorf("--%s: invalid amount %q", name, s)
		return nil
	}
	return v
}

func parseHash(name, s string) (common.Hash, error) {
	if s == "" {
		return common.Hash{}, nil
	}
	b, err := hexutil.Decode(s)
	if err != nil || len(b) != common.HashLength {
		return common.Hash{}, fmt.Errorf("--%s: invalid 32 bytes hex %q", name, s)
	}
	return common.BytesToHash(b), nil
}
