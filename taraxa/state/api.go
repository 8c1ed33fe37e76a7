package state

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
	"go.uber.org/zap"

	"github.com/Taraxa-project/taraxa-distributor/core/vm"
	"github.com/Taraxa-project/taraxa-distributor/taraxa/logger"
	"github.com/Taraxa-project/taraxa-distributor/taraxa/state/chain_config"
	distributor "github.com/Taraxa-project/taraxa-distributor/taraxa/state/contracts/distributor/precompiled"
	factory "github.com/Taraxa-project/taraxa-distributor/taraxa/state/contracts/factory/precompiled"
	token "github.com/Taraxa-project/taraxa-distributor/taraxa/state/contracts/token/precompiled"
	"github.com/Taraxa-project/taraxa-distributor/taraxa/state/state_db"
	"github.com/Taraxa-project/taraxa-distributor/taraxa/state/state_dry_runner"
	"github.com/Taraxa-project/taraxa-distributor/taraxa/state/state_transition"
)

type LogEntry = state_transition.LogEntry

type API struct {
	db               *state_db.DB
	config           *chain_config.ChainConfig
	state_transition state_transition.StateTransition
	dry_runner       state_dry_runner.DryRunner
	logs_feed        event.Feed
	log              *zap.Logger
}

type APIOpts struct {
	Logger *zap.Logger
}

// Genesis from chain_cfg is applied when the database is empty, otherwise it is ignored
func (self *API) Init(db *state_db.DB, chain_cfg *chain_config.ChainConfig, opts APIOpts) (*API, error) {
	self.db = db
	self.config = chain_cfg
	self.log = logger.OrNop(opts.Logger)
	if _, err := self.state_transition.Init(db, chain_cfg, &self.logs_feed, self.log); err != nil {
		return nil, err
	}
	self.dry_runner.Init(db, self.log)
	return self, nil
}

type StateTransition interface {
	BeginBlock(*vm.BlockInfo) error
	ExecuteTransaction(*vm.Transaction) vm.ExecutionResult
	EndBlock()
	Commit() error
}

func (self *API) GetStateTransition() StateTransition {
	return &self.state_transition
}

func (self *API) LastBlock() vm.BlockInfo {
	return self.state_transition.LastBlock()
}

// Logs of every committed block, in commit order. The channel has to be drained,
// a slow subscriber holds back the following commits
func (self *API) SubscribeLogs(ch chan<- LogEntry) event.Subscription {
	return self.logs_feed.Subscribe(ch)
}

// Runs trx against the last committed block without changing anything
func (self *API) DryRun(trx *vm.Transaction) vm.ExecutionResult {
	return self.dry_runner.Apply(trx)
}

// Committed state of the distributor at address, ok is false if the factory never created it
func (self *API) DistributorReader(address common.Address) (ret *distributor.Reader, ok bool) {
	if !self.FactoryReader().IsInstance(&address) {
		return nil, false
	}
	return new(distributor.Reader).Init(&address, self.db), true
}

func (self *API) FactoryReader() *factory.Reader {
	return new(factory.Reader).Init(self.db)
}

func (self *API) TokenReader() *token.Reader {
	return new(token.Reader).Init(self.db)
}
