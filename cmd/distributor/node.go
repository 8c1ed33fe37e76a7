package main

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/Taraxa-project/taraxa-distributor/core/vm"
	"github.com/Taraxa-project/taraxa-distributor/taraxa/logger"
	"github.com/Taraxa-project/taraxa-distributor/taraxa/state"
	"github.com/Taraxa-project/taraxa-distributor/taraxa/state/chain_config"
	"github.com/Taraxa-project/taraxa-distributor/taraxa/state/state_db"
)

// Everything a single command needs, opened from the config
type node struct {
	db  *state_db.DB
	api *state.API
	log *zap.Logger
}

func openNode(c *cli.Context) (*node, error) {
	cfg, err := LoadConfig(c.String(configFlag.Name))
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	var chain_cfg *chain_config.ChainConfig
	if cfg.Genesis != "" {
		if chain_cfg, err = chain_config.LoadFile(cfg.Genesis); err != nil {
			return nil, err
		}
	}
	db, err := state_db.Open(cfg.DB)
	if err != nil {
		return nil, err
	}
	api, err := new(state.API).Init(db, chain_cfg, state.APIOpts{Logger: log})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &node{db: db, api: api, log: log}, nil
}

func (self *node) Close() {
	if err := self.db.Close(); err != nil {
		self.log.Error("closing state db", zap.Error(err))
	}
	self.log.Sync()
}

// Block time is the wall clock unless set explicitly, and never goes back
func blockTime(c *cli.Context, last uint64) uint64 {
	t := uint64(time.Now().Unix())
	if c.IsSet(timeFlag.Name) {
		t = c.Uint64(timeFlag.Name)
	}
	if t < last {
		t = last
	}
	return t
}

// Runs trx in a block of its own and commits the block
func (self *node) execute(c *cli.Context, trx *vm.Transaction) (vm.ExecutionResult, error) {
	last := self.api.LastBlock()
	blk := vm.BlockInfo{Number: last.Number + 1, Time: blockTime(c, last.Time)}
	st := self.api.GetStateTransition()
	if err := st.BeginBlock(&blk); err != nil {
		return vm.ExecutionResult{}, err
	}
	res := st.ExecuteTransaction(trx)
	st.EndBlock()
	if err := st.Commit(); err != nil {
		return res, err
	}
	if res.ConsensusErr != "" {
		return res, res.ConsensusErr
	}
	if res.ExecutionErr != "" {
		return res, fmt.Errorf("transaction reverted: %w", res.ExecutionErr)
	}
	self.log.Info("transaction executed",
		zap.Uint64("block", blk.Number),
		zap.Uint64("time", blk.Time),
		zap.Int("logs", len(res.Logs)))
	return res, nil
}

