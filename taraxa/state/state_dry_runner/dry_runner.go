package state_dry_runner

import (
	"go.uber.org/zap"

	"github.com/Taraxa-project/taraxa-distributor/core/vm"
	"github.com/Taraxa-project/taraxa-distributor/taraxa/logger"
	"github.com/Taraxa-project/taraxa-distributor/taraxa/state/state_db"
	"github.com/Taraxa-project/taraxa-distributor/taraxa/state/state_transition"
	"github.com/Taraxa-project/taraxa-distributor/taraxa/util"
)

// Executes calls against the committed state and throws the result away. Used for
// queries and for previewing transactions
type DryRunner struct {
	db  *state_db.DB
	log *zap.Logger
}

func (self *DryRunner) Init(db *state_db.DB, log *zap.Logger) *DryRunner {
	self.db = db
	self.log = logger.OrNop(log)
	return self
}

// Runs trx on a snapshot of the last committed block, at that block's time. Contracts get
// a no-op logger, nothing they report actually happens
func (self *DryRunner) Apply(trx *vm.Transaction) (ret vm.ExecutionResult) {
	snapshot, err := self.db.Snapshot()
	if err != nil {
		self.log.Error("state db snapshot", zap.Error(err))
		ret.ConsensusErr = util.ToErrorString(err)
		return
	}
	defer snapshot.Release()
	blk, _, err := state_transition.ReadLastBlock(snapshot)
	if err != nil {
		ret.ConsensusErr = util.ToErrorString(err)
		return
	}
	var state state_transition.PendingState
	state.Init(snapshot)
	var contract vm.PrecompiledContract
	if trx.To != nil {
		contract = state_transition.NewContract(trx.To, &state, zap.NewNop())
	}
	if contract == nil {
		ret.ConsensusErr = state_transition.ErrUnknownContract
		return
	}
	retval, err := contract.Run(vm.CallFrame{Caller: trx.From, Time: blk.Time, Input: trx.Input})
	if err != nil {
		ret.ExecutionErr = util.ToErrorString(err)
		return
	}
	ret.CodeRetval = retval
	ret.Logs = state.Logs()
	return
}
