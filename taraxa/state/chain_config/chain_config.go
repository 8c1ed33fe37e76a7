package chain_config

import (
	"encoding/json"
	"fmt"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/common"

	factory "github.com/Taraxa-project/taraxa-distributor/taraxa/state/contracts/factory/precompiled"
)

// holder -> amount
type BalanceMap = map[common.Address]*big.Int

type TokenConfig struct {
	// token -> holder balances. The only way tokens come into existence
	GenesisBalances map[common.Address]BalanceMap `json:"genesis_balances"`
}

// Distributor created by the factory at genesis
type GenesisDistributor struct {
	Creator  common.Address `json:"creator"`
	Owner    common.Address `json:"owner"`
	Timelock uint64         `json:"timelock"`
	Root     common.Hash    `json:"root"`
	IpfsHash common.Hash    `json:"ipfs_hash"`
	Salt     common.Hash    `json:"salt"`
	// token -> amount credited to the distributor
	Funding BalanceMap `json:"funding"`
}

type ChainConfig struct {
	Token               TokenConfig          `json:"token"`
	GenesisDistributors []GenesisDistributor `json:"genesis_distributors"`
}

var max_supply = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// Supply is fixed after genesis, so a token whose genesis total fits into 256 bits can
// never overflow a balance later
func (self *ChainConfig) Validate() error {
	supply := make(map[common.Address]*big.Int)
	add_supply := func(token common.Address, amount *big.Int) error {
		total := supply[token]
		if total == nil {
			total = new(big.Int)
			supply[token] = total
		}
		if total.Add(total, amount).Cmp(max_supply) > 0 {
			return fmt.Errorf("token %s: genesis supply exceeds 2^256-1", token)
		}
		return nil
	}
	for token, balances := range self.Token.GenesisBalances {
		for holder, balance := range balances {
			if !validAmount(balance) {
				return fmt.Errorf("token %s: invalid genesis balance of %s", token, holder)
			}
			if err := add_supply(token, balance); err != nil {
				return err
			}
		}
	}
	addresses := make(map[common.Address]bool)
	for i, d := range self.GenesisDistributors {
		address := factory.ComputeAddress(&factory.CreateParams{
			Owner:    d.Owner,
			Timelock: d.Timelock,
			Root:     d.Root,
			IpfsHash: d.IpfsHash,
			Salt:     d.Salt,
		})
		if addresses[address] {
			return fmt.Errorf("genesis distributor %d: %s is already created", i, address)
		}
		addresses[address] = true
		for token, amount := range d.Funding {
			if !validAmount(amount) {
				return fmt.Errorf("genesis distributor %d: invalid funding of token %s", i, token)
			}
			if err := add_supply(token, amount); err != nil {
				return fmt.Errorf("genesis distributor %d: %w", i, err)
			}
		}
	}
	return nil
}

func validAmount(v *big.Int) bool {
	return v != nil && v.Sign() >= 0 && v.BitLen() <= 256
}

func LoadFile(path string) (ret *ChainConfig, err error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return
	}
	ret = new(ChainConfig)
	if err = json.Unmarshal(bytes, ret); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err = ret.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return
}
