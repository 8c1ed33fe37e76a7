package token

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"

	"github.com/Taraxa-project/taraxa-distributor/core/vm"
	"github.com/Taraxa-project/taraxa-distributor/taraxa/util/tests"
)

func TestTransfer(t *testing.T) {
	state := tests.NewMemStorage()
	contract := new(Contract).Init(state, state)
	token, from, to := tests.Addr(100), tests.Addr(1), tests.Addr(2)
	contract.SetBalance(&token, &from, tests.U256(10))

	assert.Equal(t, ErrInsufficientBalance, contract.Transfer(&token, &from, &to, tests.U256(11)))
	assert.Empty(t, state.TakeLogs())

	assert.NoError(t, contract.Transfer(&token, &from, &to, tests.U256(10)))
	assert.True(t, contract.BalanceOf(&token, &from).IsZero())
	assert.Equal(t, tests.U256(10), contract.BalanceOf(&token, &to))
	assert.Equal(t, []vm.LogRecord{MakeTransferLog(&token, &from, &to, tests.U256(10))}, state.TakeLogs())
	// Emptied balances do not occupy storage
	assert.Len(t, state.Accounts[contract_address], 1)

	other := tests.Addr(101)
	assert.True(t, contract.BalanceOf(&other, &to).IsZero())
}

func TestSelfTransferKeepsBalance(t *testing.T) {
	state := tests.NewMemStorage()
	contract := new(Contract).Init(state, state)
	token, holder := tests.Addr(100), tests.Addr(1)
	contract.SetBalance(&token, &holder, tests.U256(5))
	assert.NoError(t, contract.Transfer(&token, &holder, &holder, tests.U256(5)))
	assert.Equal(t, tests.U256(5), contract.BalanceOf(&token, &holder))
}

func TestTransferNeverWrapsBalance(t *testing.T) {
	state := tests.NewMemStorage()
	contract := new(Contract).Init(state, state)
	token, rich, poor := tests.Addr(100), tests.Addr(1), tests.Addr(2)
	supply := new(uint256.Int).SetAllOne()
	contract.SetBalance(&token, &rich, supply)
	contract.SetBalance(&token, &poor, tests.U256(1))

	assert.Equal(t, ErrBalanceOverflow, contract.Transfer(&token, &poor, &rich, tests.U256(1)))
	assert.Equal(t, supply, contract.BalanceOf(&token, &rich))
	assert.Equal(t, tests.U256(1), contract.BalanceOf(&token, &poor))
	assert.Empty(t, state.TakeLogs())

	// Moving the whole supply to oneself is not an overflow
	assert.NoError(t, contract.Transfer(&token, &rich, &rich, supply))
	assert.Equal(t, supply, contract.BalanceOf(&token, &rich))

	assert.Equal(t, ErrBalanceOverflow, contract.Credit(&token, &rich, tests.U256(1)))
	assert.Equal(t, supply, contract.BalanceOf(&token, &rich))
	assert.NoError(t, contract.Credit(&token, &poor, tests.U256(2)))
	assert.Equal(t, tests.U256(3), contract.BalanceOf(&token, &poor))
}

func TestRunTransfersFromCaller(t *testing.T) {
	state := tests.NewMemStorage()
	contract := new(Contract).Init(state, state)
	token, from, to := tests.Addr(100), tests.Addr(1), tests.Addr(2)
	contract.SetBalance(&token, &from, tests.U256(10))

	input, err := Abi.Pack("transfer", token, to, big.NewInt(4))
	assert.NoError(t, err)
	_, err = contract.Run(vm.CallFrame{Caller: from, Time: 1, Input: input})
	assert.NoError(t, err)

	input, err = Abi.Pack("balanceOf", token, to)
	assert.NoError(t, err)
	out, err := contract.Run(vm.CallFrame{Input: input})
	assert.NoError(t, err)
	var balance *big.Int
	assert.NoError(t, Abi.UnpackIntoInterface(&balance, "balanceOf", out))
	assert.Equal(t, big.NewInt(4), balance)

	_, err = contract.Run(vm.CallFrame{Input: []byte{1, 2}})
	assert.Error(t, err)
}

func TestTransferLogTopics(t *testing.T) {
	token, from, to := tests.Addr(100), tests.Addr(1), tests.Addr(2)
	log := MakeTransferLog(&token, &from, &to, tests.U256(3))
	assert.Equal(t, contract_address, log.Address)
	assert.Equal(t, crypto.Keccak256Hash([]byte("Transfer(address,address,address,uint256)")), log.Topics[0])
	assert.Equal(t, common.BytesToHash(token.Bytes()), log.Topics[1])
	assert.Equal(t, common.BytesToHash(from.Bytes()), log.Topics[2])
	assert.Equal(t, common.BytesToHash(to.Bytes()), log.Topics[3])
	assert.Equal(t, common_u256(3), log.Data)
}

func common_u256(v byte) []byte {
	ret := make([]byte, 32)
	ret[31] = v
	return ret
}
