package vm

import (
	"github.com/Taraxa-project/taraxa-distributor/taraxa/util"
	"github.com/ethereum/go-ethereum/common"
)

type BlockNum = uint64

type BlockInfo struct {
	Number BlockNum
	// Seconds since unix epoch. Never decreases between blocks
	Time uint64
}

type Transaction struct {
	From  common.Address
	To    *common.Address `rlp:"nil"`
	Input []byte
}

type ExecutionResult struct {
	CodeRetval []byte
	Logs       []LogRecord
	// Contract level failure, the transaction had no effect
	ExecutionErr util.ErrorString
	// Failure of the host itself, e.g. a transaction outside of a block
	ConsensusErr util.ErrorString
}

func (self *ExecutionResult) Failed() bool {
	return self.ExecutionErr != "" || self.ConsensusErr != ""
}
