package test_utils

import (
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/Taraxa-project/taraxa-distributor/core/vm"
	"github.com/Taraxa-project/taraxa-distributor/taraxa/state"
	"github.com/Taraxa-project/taraxa-distributor/taraxa/state/chain_config"
	"github.com/Taraxa-project/taraxa-distributor/taraxa/state/state_db"
	"github.com/Taraxa-project/taraxa-distributor/taraxa/util"
	"github.com/Taraxa-project/taraxa-distributor/taraxa/util/tests"
)

// Time of the first block
const StartTime uint64 = 1_000_000

type ContractTest struct {
	Chain_cfg     chain_config.ChainConfig
	St            state.StateTransition
	SUT           *state.API
	Time          uint64
	contract_addr common.Address
	abi           abi.ABI
	statedb       *state_db.DB
	tc            *tests.TestCtx
}

func Init_test(contract_addr common.Address, contract_abi abi.ABI, t *testing.T, cfg chain_config.ChainConfig) (tc tests.TestCtx, test ContractTest) {
	tc = tests.NewTestCtx(t)
	test.init(contract_addr, contract_abi, &tc, cfg)
	return
}

func (self *ContractTest) init(contract_addr common.Address, contract_abi abi.ABI, t *tests.TestCtx, cfg chain_config.ChainConfig) {
	self.tc = t
	self.Chain_cfg = cfg
	self.Time = StartTime
	self.SetContract(contract_addr, contract_abi)
	self.open()
}

func (self *ContractTest) open() {
	var err error
	self.statedb, err = state_db.Open(state_db.Opts{Path: self.tc.DataDir()})
	self.tc.Require.NoError(err)
	self.SUT, err = new(state.API).Init(self.statedb, &self.Chain_cfg, state.APIOpts{})
	self.tc.Require.NoError(err)
	self.St = self.SUT.GetStateTransition()
}

// Closes the database and opens it again, as a restarted node would
func (self *ContractTest) Reopen() {
	self.tc.Require.NoError(self.statedb.Close())
	self.open()
}

// Subsequent calls go to addr
func (self *ContractTest) SetContract(addr common.Address, contract_abi abi.ABI) {
	self.contract_addr = addr
	self.abi = contract_abi
}

func (self *ContractTest) AdvanceTime(seconds uint64) {
	self.Time += seconds
}

// Every call is a block of its own with the current Time
func (self *ContractTest) execute(from common.Address, input []byte) vm.ExecutionResult {
	last := self.SUT.LastBlock()
	self.tc.Require.NoError(self.St.BeginBlock(&vm.BlockInfo{Number: last.Number + 1, Time: self.Time}))
	res := self.St.ExecuteTransaction(&vm.Transaction{
		From:  from,
		To:    &self.contract_addr,
		Input: input,
	})
	self.St.EndBlock()
	self.tc.Require.NoError(self.St.Commit())
	return res
}

func (self *ContractTest) ExecuteAndCheck(from common.Address, input []byte, exe_err, cons_err util.ErrorString) vm.ExecutionResult {
	res := self.execute(from, input)
	self.tc.Assert.Equal(cons_err, res.ConsensusErr)
	self.tc.Assert.Equal(exe_err, res.ExecutionErr)
	return res
}

// Read-only call against the committed state
func (self *ContractTest) Call(name string, args ...interface{}) []byte {
	res := self.SUT.DryRun(&vm.Transaction{
		From:  common.Address{},
		To:    &self.contract_addr,
		Input: self.Pack(name, args...),
	})
	self.tc.Require.Equal(util.ErrorString(""), res.ConsensusErr)
	self.tc.Require.Equal(util.ErrorString(""), res.ExecutionErr)
	return res.CodeRetval
}

func (self *ContractTest) End() {
	self.tc.Assert.NoError(self.statedb.Close())
}

func (self *ContractTest) Pack(name string, args ...interface{}) []byte {
	packed, err := self.abi.Pack(name, args...)
	if err != nil {
		self.tc.Error(err)
		self.tc.FailNow()
	}
	return packed
}

func (self *ContractTest) Unpack(v interface{}, name string, output []byte) error {
	err := self.abi.UnpackIntoInterface(v, name, output)
	if err != nil {
		self.tc.Error(err)
		self.tc.FailNow()
	}
	return err
}
