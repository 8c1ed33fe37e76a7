package contract_storage

import (
	"github.com/Taraxa-project/taraxa-distributor/taraxa/util/keccak256"
	"github.com/ethereum/go-ethereum/common"
)

type StorageReader interface {
	// cb is not called for absent keys
	GetAccountStorage(addr *common.Address, key *common.Hash, cb func([]byte))
}
type StorageWriter interface {
	// Empty value deletes the key
	Put(addr *common.Address, key *common.Hash, value []byte)
}
type Storage interface {
	StorageReader
	StorageWriter
}

// Storage of a single contract
type StorageReaderWrapper struct {
	address common.Address
	backend StorageReader
}

func (self *StorageReaderWrapper) Init(address *common.Address, backend StorageReader) *StorageReaderWrapper {
	self.address = *address
	self.backend = backend
	return self
}

func (self *StorageReaderWrapper) Address() common.Address {
	return self.address
}

func (self *StorageReaderWrapper) Get(k *common.Hash, cb func([]byte)) {
	self.backend.GetAccountStorage(&self.address, k, func(bytes []byte) {
		if len(bytes) != 0 {
			cb(bytes)
		}
	})
}

func (self *StorageReaderWrapper) Has(k *common.Hash) (ret bool) {
	self.Get(k, func([]byte) { ret = true })
	return
}

type StorageWrapper struct {
	StorageReaderWrapper
	writer StorageWriter
}

func (self *StorageWrapper) Init(address *common.Address, storage Storage) *StorageWrapper {
	self.StorageReaderWrapper.Init(address, storage)
	self.writer = storage
	return self
}

func (self *StorageWrapper) Put(k *common.Hash, v []byte) {
	self.writer.Put(&self.address, k, common.CopyBytes(v))
}

func (self *StorageWrapper) Delete(k *common.Hash) {
	self.writer.Put(&self.address, k, nil)
}

func Stor_k_1(parts ...[]byte) *common.Hash {
	return keccak256.Hash(parts...)
}
