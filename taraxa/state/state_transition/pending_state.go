package state_transition

import (
	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/ethereum/go-ethereum/common"

	"github.com/Taraxa-project/taraxa-distributor/core/vm"
	contract_storage "github.com/Taraxa-project/taraxa-distributor/taraxa/state/contracts/storage"
)

const storage_key_size = common.AddressLength + common.HashLength

// Uncommitted writes and logs on top of a parent state. Writes are kept in the order they
// were first made, a nil value marks a deleted key
type PendingState struct {
	parent contract_storage.StorageReader
	writes *linkedhashmap.Map
	logs   []vm.LogRecord
}

func (self *PendingState) Init(parent contract_storage.StorageReader) *PendingState {
	self.parent = parent
	self.writes = linkedhashmap.New()
	self.logs = nil
	return self
}

func (self *PendingState) GetAccountStorage(addr *common.Address, key *common.Hash, cb func([]byte)) {
	if v, present := self.writes.Get(storage_key(addr, key)); present {
		if bytes := v.([]byte); len(bytes) != 0 {
			cb(bytes)
		}
		return
	}
	self.parent.GetAccountStorage(addr, key, cb)
}

func (self *PendingState) Put(addr *common.Address, key *common.Hash, value []byte) {
	if len(value) == 0 {
		value = nil
	}
	self.writes.Put(storage_key(addr, key), value)
}

func (self *PendingState) AddLog(log vm.LogRecord) {
	self.logs = append(self.logs, log)
}

func (self *PendingState) Logs() []vm.LogRecord {
	return self.logs
}

func (self *PendingState) WritesCount() int {
	return self.writes.Size()
}

func (self *PendingState) ForEachWrite(cb func(addr *common.Address, key *common.Hash, value []byte)) {
	it := self.writes.Iterator()
	for it.Next() {
		k := it.Key().(string)
		addr, key := common.BytesToAddress([]byte(k[:common.AddressLength])), common.BytesToHash([]byte(k[common.AddressLength:]))
		cb(&addr, &key, it.Value().([]byte))
	}
}

// Applies writes and logs on top of dst, which is normally the parent
func (self *PendingState) MergeInto(dst *PendingState) {
	self.ForEachWrite(dst.Put)
	dst.logs = append(dst.logs, self.logs...)
}

func storage_key(addr *common.Address, key *common.Hash) string {
	var ret [storage_key_size]byte
	copy(ret[:], addr[:])
	copy(ret[common.AddressLength:], key[:])
	return string(ret[:])
}
