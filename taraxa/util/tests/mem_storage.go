package tests

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/Taraxa-project/taraxa-distributor/core/vm"
)

// Contract storage and log sink without a database behind it
type MemStorage struct {
	Accounts map[common.Address]map[common.Hash][]byte
	Logs     []vm.LogRecord
}

func NewMemStorage() *MemStorage {
	return &MemStorage{Accounts: make(map[common.Address]map[common.Hash][]byte)}
}

func (self *MemStorage) GetAccountStorage(addr *common.Address, key *common.Hash, cb func([]byte)) {
	if v, ok := self.Accounts[*addr][*key]; ok {
		cb(v)
	}
}

func (self *MemStorage) Put(addr *common.Address, key *common.Hash, value []byte) {
	if len(value) == 0 {
		delete(self.Accounts[*addr], *key)
		return
	}
	if self.Accounts[*addr] == nil {
		self.Accounts[*addr] = make(map[common.Hash][]byte)
	}
	self.Accounts[*addr][*key] = value
}

func (self *MemStorage) AddLog(log vm.LogRecord) {
	self.Logs = append(self.Logs, log)
}

func (self *MemStorage) TakeLogs() (ret []vm.LogRecord) {
	ret, self.Logs = self.Logs, nil
	return
}
