package state_transition

import (
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/event"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
	"go.uber.org/zap"

	"github.com/Taraxa-project/taraxa-distributor/core/vm"
	"github.com/Taraxa-project/taraxa-distributor/taraxa/logger"
	"github.com/Taraxa-project/taraxa-distributor/taraxa/state/chain_config"
	factory "github.com/Taraxa-project/taraxa-distributor/taraxa/state/contracts/factory/precompiled"
	token "github.com/Taraxa-project/taraxa-distributor/taraxa/state/contracts/token/precompiled"
	"github.com/Taraxa-project/taraxa-distributor/taraxa/state/state_db"
	"github.com/Taraxa-project/taraxa-distributor/taraxa/util"
	"github.com/Taraxa-project/taraxa-distributor/taraxa/util/asserts"
)

var (
	ErrTimeDecreased      = util.ErrorString("block time is lower than the time of the previous block")
	ErrZeroTime           = util.ErrorString("block time must be positive")
	ErrUnexpectedBlockNum = util.ErrorString("unexpected block number")
	ErrBlockInProgress    = util.ErrorString("previous block is not committed")
	ErrNoBlock            = util.ErrorString("no block in progress")
	ErrBlockNotEnded      = util.ErrorString("block is not ended")
	ErrUnknownContract    = util.ErrorString("no contract at address")
)

const meta_last_block = "last_block"

// A committed log together with its position in the chain
type LogEntry struct {
	Log      vm.LogRecord
	BlockNum vm.BlockNum
	Time     uint64
	TxIndex  uint32
	LogIndex uint32
}

// Executes transactions one at a time. Each transaction writes into its own overlay,
// which is merged into the block on success and dropped on failure
type StateTransition struct {
	mu          sync.Mutex
	feed_mu     sync.Mutex
	db          *state_db.DB
	feed        *event.Feed
	log         *zap.Logger
	last_block  vm.BlockInfo
	block       *vm.BlockInfo
	block_ended bool
	block_state PendingState
	block_logs  []LogEntry
	trx_index   uint32
}

func (self *StateTransition) Init(db *state_db.DB, cfg *chain_config.ChainConfig, feed *event.Feed, log *zap.Logger) (*StateTransition, error) {
	self.db = db
	self.feed = feed
	self.log = logger.OrNop(log)
	last_block, present, err := ReadLastBlock(db)
	if err != nil {
		return nil, err
	}
	if present {
		self.last_block = last_block
		return self, nil
	}
	if cfg == nil {
		cfg = new(chain_config.ChainConfig)
	}
	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	if err = self.applyGenesis(cfg); err != nil {
		return nil, err
	}
	return self, nil
}

type MetaReader interface {
	GetMeta(key string) []byte
}

// Last committed block, present is false for a database without genesis
func ReadLastBlock(meta MetaReader) (ret vm.BlockInfo, present bool, err error) {
	bytes := meta.GetMeta(meta_last_block)
	if len(bytes) == 0 {
		return
	}
	if err = rlp.DecodeBytes(bytes, &ret); err != nil {
		return ret, false, fmt.Errorf("last block meta: %w", err)
	}
	return ret, true, nil
}

func (self *StateTransition) applyGenesis(cfg *chain_config.ChainConfig) error {
	self.begin_block(&vm.BlockInfo{})
	state := &self.block_state
	tokens := new(token.Contract).Init(state, state)
	for token_addr, balances := range cfg.Token.GenesisBalances {
		for holder, balance := range balances {
			tokens.SetBalance(&token_addr, &holder, uint256.MustFromBig(balance))
		}
	}
	urd_factory := new(factory.Contract).Init(state, tokens, state, self.log)
	for i := range cfg.GenesisDistributors {
		d := &cfg.GenesisDistributors[i]
		urd, err := urd_factory.Create(vm.CallFrame{Caller: d.Creator}, &factory.CreateParams{
			Owner:    d.Owner,
			Timelock: d.Timelock,
			Root:     d.Root,
			IpfsHash: d.IpfsHash,
			Salt:     d.Salt,
		})
		if err != nil {
			return fmt.Errorf("genesis distributor %d: %w", i, err)
		}
		for token_addr, amount := range d.Funding {
			if err := tokens.Credit(&token_addr, &urd, uint256.MustFromBig(amount)); err != nil {
				return fmt.Errorf("genesis distributor %d: funding of token %s: %w", i, token_addr, err)
			}
		}
	}
	// Genesis logs are not published, nobody can be subscribed yet
	self.EndBlock()
	return self.Commit()
}

func (self *StateTransition) LastBlock() vm.BlockInfo {
	defer util.LockUnlock(&self.mu)()
	return self.last_block
}

func (self *StateTransition) begin_block(blk *vm.BlockInfo) {
	self.block = blk
	self.block_ended = false
	self.block_state.Init(self.db)
	self.block_logs = nil
	self.trx_index = 0
}

// Block numbers go one by one, block time never goes back
func (self *StateTransition) BeginBlock(blk *vm.BlockInfo) error {
	defer util.LockUnlock(&self.mu)()
	if self.block != nil {
		return ErrBlockInProgress
	}
	if blk.Number != self.last_block.Number+1 {
		return ErrUnexpectedBlockNum
	}
	if blk.Time == 0 {
		return ErrZeroTime
	}
	if blk.Time < self.last_block.Time {
		return ErrTimeDecreased
	}
	blk_copy := *blk
	self.begin_block(&blk_copy)
	return nil
}

func (self *StateTransition) ExecuteTransaction(trx *vm.Transaction) (ret vm.ExecutionResult) {
	defer util.LockUnlock(&self.mu)()
	if self.block == nil || self.block_ended {
		ret.ConsensusErr = ErrNoBlock
		return
	}
	trx_index := self.trx_index
	self.trx_index++
	var trx_state PendingState
	trx_state.Init(&self.block_state)
	var contract vm.PrecompiledContract
	if trx.To != nil {
		contract = NewContract(trx.To, &trx_state, self.log)
	}
	if contract == nil {
		ret.ConsensusErr = ErrUnknownContract
		return
	}
	retval, err := contract.Run(vm.CallFrame{Caller: trx.From, Time: self.block.Time, Input: trx.Input})
	if err != nil {
		ret.ExecutionErr = util.ToErrorString(err)
		self.log.Debug("transaction failed",
			zap.Uint64("block", self.block.Number),
			zap.Uint32("trx_index", trx_index),
			zap.Stringer("from", trx.From),
			zap.Stringer("to", trx.To),
			zap.Error(err))
		return
	}
	ret.CodeRetval = retval
	ret.Logs = trx_state.Logs()
	for _, log := range ret.Logs {
		self.block_logs = append(self.block_logs, LogEntry{
			Log:      log,
			BlockNum: self.block.Number,
			Time:     self.block.Time,
			TxIndex:  trx_index,
			LogIndex: uint32(len(self.block_logs)),
		})
	}
	trx_state.MergeInto(&self.block_state)
	return
}

func (self *StateTransition) EndBlock() {
	defer util.LockUnlock(&self.mu)()
	asserts.Holds(self.block != nil, "EndBlock without BeginBlock")
	self.block_ended = true
}

// Writes the block to the database in one batch, then publishes its logs
func (self *StateTransition) Commit() error {
	self.mu.Lock()
	if self.block == nil {
		self.mu.Unlock()
		return ErrNoBlock
	}
	if !self.block_ended {
		self.mu.Unlock()
		return ErrBlockNotEnded
	}
	batch := self.db.NewBatch()
	self.block_state.ForEachWrite(batch.PutAccountStorage)
	last_block, err := rlp.EncodeToBytes(self.block)
	asserts.NoErr(err, "block info")
	batch.PutMeta(meta_last_block, last_block)
	if err := self.db.Commit(batch); err != nil {
		self.mu.Unlock()
		return fmt.Errorf("block %d commit: %w", self.block.Number, err)
	}
	self.log.Debug("block committed",
		zap.Uint64("block", self.block.Number),
		zap.Uint64("time", self.block.Time),
		zap.Uint32("transactions", self.trx_index),
		zap.Int("writes", batch.Len()-1),
		zap.Int("logs", len(self.block_logs)))
	self.last_block = *self.block
	logs := self.block_logs
	self.block = nil
	self.block_state.Init(self.db)
	self.block_logs = nil

	// Publishing outside of mu, blocks are still published in commit order
	self.feed_mu.Lock()
	self.mu.Unlock()
	defer self.feed_mu.Unlock()
	for _, entry := range logs {
		self.feed.Send(entry)
	}
	return nil
}
