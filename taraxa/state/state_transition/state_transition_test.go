package state_transition

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
	"github.com/stretchr/testify/assert"

	"github.com/Taraxa-project/taraxa-distributor/core/vm"
	"github.com/Taraxa-project/taraxa-distributor/taraxa/state/chain_config"
	token "github.com/Taraxa-project/taraxa-distributor/taraxa/state/contracts/token/precompiled"
	"github.com/Taraxa-project/taraxa-distributor/taraxa/state/state_db"
	"github.com/Taraxa-project/taraxa-distributor/taraxa/util/tests"
)

var (
	reward = tests.Addr(100)
	holder = tests.Addr(1)
)

func newStateTransition(t *testing.T) (*StateTransition, *event.Feed) {
	db, err := state_db.Open(state_db.Opts{InMemory: true})
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	cfg := &chain_config.ChainConfig{
		Token: chain_config.TokenConfig{GenesisBalances: map[common.Address]chain_config.BalanceMap{
			reward: {holder: big.NewInt(1000)},
		}},
	}
	feed := new(event.Feed)
	st, err := new(StateTransition).Init(db, cfg, feed, nil)
	assert.NoError(t, err)
	return st, feed
}

func transfer(from, to common.Address, amount int64) *vm.Transaction {
	token_addr := token.ContractAddress()
	input, err := token.Abi.Pack("transfer", reward, to, big.NewInt(amount))
	if err != nil {
		panic(err)
	}
	return &vm.Transaction{From: from, To: &token_addr, Input: input}
}

func TestBlockOrdering(t *testing.T) {
	st, _ := newStateTransition(t)
	assert.Equal(t, vm.BlockInfo{}, st.LastBlock())

	assert.Equal(t, ErrUnexpectedBlockNum, st.BeginBlock(&vm.BlockInfo{Number: 2, Time: 5}))
	assert.Equal(t, ErrZeroTime, st.BeginBlock(&vm.BlockInfo{Number: 1}))
	assert.NoError(t, st.BeginBlock(&vm.BlockInfo{Number: 1, Time: 5}))
	assert.Equal(t, ErrBlockInProgress, st.BeginBlock(&vm.BlockInfo{Number: 2, Time: 5}))
	assert.Equal(t, ErrBlockNotEnded, st.Commit())
	st.EndBlock()
	assert.NoError(t, st.Commit())
	assert.Equal(t, vm.BlockInfo{Number: 1, Time: 5}, st.LastBlock())
	assert.Equal(t, ErrNoBlock, st.Commit())

	assert.Equal(t, ErrTimeDecreased, st.BeginBlock(&vm.BlockInfo{Number: 2, Time: 4}))
	// Same time is fine
	assert.NoError(t, st.BeginBlock(&vm.BlockInfo{Number: 2, Time: 5}))
}

func TestExecuteOutsideOfBlock(t *testing.T) {
	st, _ := newStateTransition(t)
	res := st.ExecuteTransaction(transfer(holder, tests.Addr(2), 1))
	assert.Equal(t, ErrNoBlock, res.ConsensusErr)

	assert.NoError(t, st.BeginBlock(&vm.BlockInfo{Number: 1, Time: 1}))
	st.EndBlock()
	res = st.ExecuteTransaction(transfer(holder, tests.Addr(2), 1))
	assert.Equal(t, ErrNoBlock, res.ConsensusErr)
}

func TestUnknownContract(t *testing.T) {
	st, _ := newStateTransition(t)
	assert.NoError(t, st.BeginBlock(&vm.BlockInfo{Number: 1, Time: 1}))
	res := st.ExecuteTransaction(&vm.Transaction{From: holder})
	assert.Equal(t, ErrUnknownContract, res.ConsensusErr)
	res = st.ExecuteTransaction(&vm.Transaction{From: holder, To: tests.AddrP(5)})
	assert.Equal(t, ErrUnknownContract, res.ConsensusErr)
	// Distributor addresses resolve only when the factory created them
	res = st.ExecuteTransaction(&vm.Transaction{From: holder, To: tests.AddrP(0xD1), Input: []byte{1, 2, 3, 4}})
	assert.Equal(t, ErrUnknownContract, res.ConsensusErr)
}

func TestLogsArePublishedOnCommit(t *testing.T) {
	st, feed := newStateTransition(t)
	ch := make(chan LogEntry, 10)
	sub := feed.Subscribe(ch)
	defer sub.Unsubscribe()

	to := tests.Addr(2)
	assert.NoError(t, st.BeginBlock(&vm.BlockInfo{Number: 1, Time: 7}))
	res := st.ExecuteTransaction(transfer(holder, to, 10))
	assert.False(t, res.Failed())
	assert.Len(t, res.Logs, 1)
	res = st.ExecuteTransaction(transfer(to, holder, 100))
	assert.Equal(t, token.ErrInsufficientBalance, res.ExecutionErr)
	assert.Empty(t, res.Logs)
	res = st.ExecuteTransaction(transfer(to, holder, 4))
	assert.False(t, res.Failed())
	st.EndBlock()
	assert.Empty(t, ch)

	assert.NoError(t, st.Commit())
	assert.Len(t, ch, 2)
	first, second := <-ch, <-ch
	assert.Equal(t, LogEntry{
		Log:      token.MakeTransferLog(&reward, &holder, &to, tests.U256(10)),
		BlockNum: 1,
		Time:     7,
		TxIndex:  0,
		LogIndex: 0,
	}, first)
	assert.Equal(t, LogEntry{
		Log:      token.MakeTransferLog(&reward, &to, &holder, tests.U256(4)),
		BlockNum: 1,
		Time:     7,
		TxIndex:  2,
		LogIndex: 1,
	}, second)
}

func TestFailedTransactionWritesNothing(t *testing.T) {
	st, _ := newStateTransition(t)
	assert.NoError(t, st.BeginBlock(&vm.BlockInfo{Number: 1, Time: 1}))
	res := st.ExecuteTransaction(transfer(holder, tests.Addr(2), 1001))
	assert.True(t, res.Failed())
	assert.Zero(t, st.block_state.WritesCount())
	res = st.ExecuteTransaction(transfer(holder, tests.Addr(2), 1000))
	assert.False(t, res.Failed())
	assert.Equal(t, 2, st.block_state.WritesCount())
}

func TestStateIsReadBackAfterReopen(t *testing.T) {
	ctx := tests.NewTestCtx(t)
	opts := state_db.Opts{Path: ctx.DataDir()}
	db, err := state_db.Open(opts)
	assert.NoError(t, err)
	cfg := &chain_config.ChainConfig{
		Token: chain_config.TokenConfig{GenesisBalances: map[common.Address]chain_config.BalanceMap{
			reward: {holder: big.NewInt(1000)},
		}},
	}
	st, err := new(StateTransition).Init(db, cfg, new(event.Feed), nil)
	assert.NoError(t, err)
	assert.NoError(t, st.BeginBlock(&vm.BlockInfo{Number: 1, Time: 3}))
	st.ExecuteTransaction(transfer(holder, tests.Addr(2), 300))
	st.EndBlock()
	assert.NoError(t, st.Commit())
	assert.NoError(t, db.Close())

	db, err = state_db.Open(opts)
	assert.NoError(t, err)
	defer db.Close()
	// Genesis of a different config is ignored for a non-empty database
	st, err = new(StateTransition).Init(db, nil, new(event.Feed), nil)
	assert.NoError(t, err)
	assert.Equal(t, vm.BlockInfo{Number: 1, Time: 3}, st.LastBlock())
	reader := new(token.Reader).Init(db)
	assert.Equal(t, tests.U256(700), reader.BalanceOf(&reward, &holder))
	assert.Equal(t, tests.U256(300), reader.BalanceOf(&reward, tests.AddrP(2)))
}
