package distributor_tests

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/Taraxa-project/taraxa-distributor/core/vm"
	"github.com/Taraxa-project/taraxa-distributor/taraxa/state/chain_config"
	distributor "github.com/Taraxa-project/taraxa-distributor/taraxa/state/contracts/distributor/precompiled"
	factory "github.com/Taraxa-project/taraxa-distributor/taraxa/state/contracts/factory/precompiled"
	test_utils "github.com/Taraxa-project/taraxa-distributor/taraxa/state/contracts/tests"
	token "github.com/Taraxa-project/taraxa-distributor/taraxa/state/contracts/token/precompiled"
	"github.com/Taraxa-project/taraxa-distributor/taraxa/util"
	"github.com/Taraxa-project/taraxa-distributor/taraxa/util/tests"
)

var (
	reward   = tests.Addr(100)
	funder   = tests.Addr(1)
	owner    = tests.Addr(2)
	updater  = tests.Addr(3)
	stranger = tests.Addr(4)
)

const genesis_supply = 1_000_000

type harness struct {
	test_utils.ContractTest
	tc  tests.TestCtx
	urd common.Address
}

// Distributor created through the factory by funder and funded with funding reward tokens
func newHarness(t *testing.T, timelock uint64, root common.Hash, funding uint64) *harness {
	cfg := chain_config.ChainConfig{Token: chain_config.TokenConfig{GenesisBalances: map[common.Address]chain_config.BalanceMap{
		reward: {funder: big.NewInt(genesis_supply)},
	}}}
	tc, test := test_utils.Init_test(factory.ContractAddress(), factory.Abi, t, cfg)
	self := &harness{ContractTest: test, tc: tc}
	res := self.ExecuteAndCheck(funder, self.Pack("createUrd", owner, new(big.Int).SetUint64(timelock), root, common.Hash{}, tests.Hash(1)), "", "")
	self.Unpack(&self.urd, "createUrd", res.CodeRetval)
	self.SetContract(self.urd, distributor.Abi)
	if funding != 0 {
		self.transfer(funder, self.urd, funding)
	}
	t.Cleanup(self.End)
	return self
}

func (self *harness) transfer(from, to common.Address, amount uint64) {
	self.SetContract(token.ContractAddress(), token.Abi)
	self.ExecuteAndCheck(from, self.Pack("transfer", reward, to, new(big.Int).SetUint64(amount)), "", "")
	self.SetContract(self.urd, distributor.Abi)
}

func (self *harness) balance(holder common.Address) *uint256.Int {
	return self.SUT.TokenReader().BalanceOf(&reward, &holder)
}

func (self *harness) reader() *distributor.Reader {
	ret, ok := self.SUT.DistributorReader(self.urd)
	self.tc.Require.True(ok)
	return ret
}

func (self *harness) claimed(account common.Address) *uint256.Int {
	return self.reader().Claimed(&account, &reward)
}

func (self *harness) claim(from common.Address, tree *tests.RewardTree, idx int, exe_err util.ErrorString) vm.ExecutionResult {
	e := tree.Entries[idx]
	return self.ExecuteAndCheck(from, self.Pack("claim", e.Account, e.Reward, e.Claimable.ToBig(), tree.Proof(idx)), exe_err, "")
}

func (self *harness) submitRoot(from common.Address, root, ipfs_hash common.Hash, exe_err util.ErrorString) vm.ExecutionResult {
	return self.ExecuteAndCheck(from, self.Pack("submitRoot", root, ipfs_hash), exe_err, "")
}

func (self *harness) acceptRoot(exe_err util.ErrorString) vm.ExecutionResult {
	return self.ExecuteAndCheck(stranger, self.Pack("acceptRoot"), exe_err, "")
}

func (self *harness) setTimelock(from common.Address, timelock uint64, exe_err util.ErrorString) vm.ExecutionResult {
	return self.ExecuteAndCheck(from, self.Pack("setTimelock", new(big.Int).SetUint64(timelock)), exe_err, "")
}

func rewardTree(claimables ...uint64) *tests.RewardTree {
	entries := make([]tests.RewardEntry, len(claimables))
	for i, claimable := range claimables {
		entries[i] = tests.RewardEntry{Account: tests.Addr(uint64(10 + i)), Reward: reward, Claimable: tests.U256(claimable)}
	}
	return tests.NewRewardTree(entries...)
}
