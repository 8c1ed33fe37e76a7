package contract_storage

import (
	"github.com/ethereum/go-ethereum/common"
)

type AddressesIMapReader struct {
	addresses IterableMapReader
}

func (self *AddressesIMapReader) Init(stor *StorageReaderWrapper, prefix []byte) {
	self.addresses.Init(stor, prefix)
}

func (self *AddressesIMapReader) AccountExists(account *common.Address) bool {
	return self.addresses.ItemExists(account.Bytes())
}

// Returns the batch-th page of count addresses in insertion order, modulo removals
func (self *AddressesIMapReader) GetAccounts(batch, count uint64) (result []common.Address, end bool) {
	items, end := self.addresses.GetItems(batch*count, count)
	result = make([]common.Address, len(items))
	for idx, item := range items {
		result[idx] = common.BytesToAddress(item)
	}
	return
}

func (self *AddressesIMapReader) GetAllAccounts() []common.Address {
	ret, _ := self.GetAccounts(0, self.GetCount())
	return ret
}

func (self *AddressesIMapReader) GetCount() uint64 {
	return self.addresses.GetCount()
}

// AddressesIMap is an IterableMap wrapper for storing account addresses
type AddressesIMap struct {
	AddressesIMapReader
	addresses IterableMap
}

func (self *AddressesIMap) Init(stor *StorageWrapper, prefix []byte) {
	self.AddressesIMapReader.Init(&stor.StorageReaderWrapper, prefix)
	self.addresses.Init(stor, prefix)
}

func (self *AddressesIMap) CreateAccount(account *common.Address) bool {
	return self.addresses.CreateItem(account.Bytes())
}

func (self *AddressesIMap) RemoveAccount(account *common.Address) bool {
	return self.addresses.RemoveItem(account.Bytes())
}
