package contract_storage

import (
	"fmt"

	"github.com/Taraxa-project/taraxa-distributor/taraxa/util/bin"
	"github.com/ethereum/go-ethereum/common"
)

// IterableMap storage fields keys - relative to the prefix from Init function
var (
	field_items       = []byte{0}
	field_items_count = []byte{1}
	field_items_pos   = []byte{2}
)

type IterableMapReader struct {
	storage                  *StorageReaderWrapper
	items_storage_prefix     []byte       // items are stored under "items_storage_prefix + pos" key
	items_count_storage_key  *common.Hash // items count is stored under items_count_storage_key
	items_pos_storage_prefix []byte       // items positions are stored under "items_pos_storage_prefix + item" key
}

// Inits iterable map with prefix, so multiple iterable maps can coexist thanks to different prefixes
func (self *IterableMapReader) Init(stor *StorageReaderWrapper, prefix []byte) {
	self.storage = stor
	self.items_storage_prefix = bin.Concat(prefix, field_items...)
	self.items_count_storage_key = Stor_k_1(prefix, field_items_count)
	self.items_pos_storage_prefix = bin.Concat(prefix, field_items_pos...)
}

func (self *IterableMapReader) ItemExists(item []byte) bool {
	return self.itemPos(item) != 0
}

// Returns items [start_idx, start_idx + count). end is true when there is nothing after the returned items
func (self *IterableMapReader) GetItems(start_idx, count uint64) (result [][]byte, end bool) {
	items_count := self.GetCount()
	if start_idx >= items_count {
		return nil, true
	}
	end_idx := start_idx + count
	if end_idx >= items_count || end_idx < start_idx {
		end_idx, end = items_count, true
	}
	result = make([][]byte, 0, end_idx-start_idx)
	// Positions are shifted by one, 0 marks a non-existent item
	for pos := start_idx + 1; pos <= end_idx; pos++ {
		var item []byte
		self.storage.Get(self.itemKey(pos), func(bytes []byte) {
			item = bytes
		})
		if len(item) == 0 {
			panic(fmt.Sprint("iterable map: no item at position ", pos))
		}
		result = append(result, item)
	}
	return
}

func (self *IterableMapReader) GetCount() (count uint64) {
	self.storage.Get(self.items_count_storage_key, func(bytes []byte) {
		count = bin.DEC_b_endian_compact_64(bytes)
	})
	return
}

func (self *IterableMapReader) itemKey(pos uint64) *common.Hash {
	return Stor_k_1(self.items_storage_prefix, bin.ENC_b_endian_64(pos))
}

func (self *IterableMapReader) posKey(item []byte) *common.Hash {
	return Stor_k_1(self.items_pos_storage_prefix, item)
}

func (self *IterableMapReader) itemPos(item []byte) (pos uint64) {
	self.storage.Get(self.posKey(item), func(bytes []byte) {
		pos = bin.DEC_b_endian_compact_64(bytes)
	})
	return
}

type IterableMap struct {
	IterableMapReader
	storage *StorageWrapper
}

func (self *IterableMap) Init(stor *StorageWrapper, prefix []byte) {
	self.storage = stor
	self.IterableMapReader.Init(&stor.StorageReaderWrapper, prefix)
}

// Adds item to the end of the map. Returns false if it was already there
func (self *IterableMap) CreateItem(item []byte) bool {
	if self.ItemExists(item) {
		return false
	}
	new_pos := self.GetCount() + 1
	self.storage.Put(self.itemKey(new_pos), item)
	self.storage.Put(self.posKey(item), bin.ENC_b_endian_compact_64(new_pos))
	self.storage.Put(self.items_count_storage_key, bin.ENC_b_endian_compact_64(new_pos))
	return true
}

// Removes item by moving the last item into its place. Returns false if it was not there
func (self *IterableMap) RemoveItem(item []byte) bool {
	pos := self.itemPos(item)
	if pos == 0 {
		return false
	}
	items_count := self.GetCount()
	if pos != items_count {
		var last_item []byte
		self.storage.Get(self.itemKey(items_count), func(bytes []byte) {
			last_item = bytes
		})
		self.storage.Put(self.itemKey(pos), last_item)
		self.storage.Put(self.posKey(last_item), bin.ENC_b_endian_compact_64(pos))
	}
	self.storage.Delete(self.itemKey(items_count))
	self.storage.Delete(self.posKey(item))
	if items_count == 1 {
		self.storage.Delete(self.items_count_storage_key)
	} else {
		self.storage.Put(self.items_count_storage_key, bin.ENC_b_endian_compact_64(items_count-1))
	}
	return true
}
