package state_db

import (
	"errors"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/Taraxa-project/taraxa-distributor/taraxa/util/bin"
)

// Key spaces
const (
	col_account_storage byte = 's'
	col_meta            byte = 'm'
)

const DefaultCacheEntries = 1 << 14

type Opts struct {
	Path string `json:"path" mapstructure:"path"`
	// Keeps everything in memory, Path is ignored
	InMemory bool `json:"in_memory" mapstructure:"in_memory"`
	// leveldb block cache in MiB
	Cache int `json:"cache" mapstructure:"cache"`
	// Max open files
	Handles int `json:"handles" mapstructure:"handles"`
	// Entries of the committed storage read cache
	CacheEntries int `json:"cache_entries" mapstructure:"cache_entries"`
}

// Committed contract storage. Writes only happen in batches, so readers never see
// a partially committed block
type DB struct {
	db *leveldb.DB
	// Absent keys are cached as empty values
	cache *lru.Cache[string, []byte]
	// Keeps a read that raced with a commit from caching a stale value
	mu sync.RWMutex
}

func Open(opts Opts) (self *DB, err error) {
	ldb_opts := &opt.Options{
		BlockCacheCapacity:     opts.Cache * opt.MiB,
		OpenFilesCacheCapacity: opts.Handles,
	}
	var ldb *leveldb.DB
	if opts.InMemory {
		ldb, err = leveldb.Open(storage.NewMemStorage(), ldb_opts)
	} else {
		if opts.Path == "" {
			return nil, errors.New("state db: path is not set")
		}
		ldb, err = leveldb.OpenFile(opts.Path, ldb_opts)
	}
	if err != nil {
		return
	}
	cache_entries := opts.CacheEntries
	if cache_entries <= 0 {
		cache_entries = DefaultCacheEntries
	}
	self = &DB{db: ldb}
	if self.cache, err = lru.New[string, []byte](cache_entries); err != nil {
		ldb.Close()
		return nil, err
	}
	return
}

func (self *DB) Close() error {
	return self.db.Close()
}

func (self *DB) GetAccountStorage(addr *common.Address, key *common.Hash, cb func([]byte)) {
	if v := self.get(account_storage_key(addr, key)); len(v) != 0 {
		cb(v)
	}
}

func (self *DB) GetMeta(key string) []byte {
	return self.get(meta_key(key))
}

func (self *DB) get(key []byte) []byte {
	self.mu.RLock()
	defer self.mu.RUnlock()
	if v, ok := self.cache.Get(string(key)); ok {
		return v
	}
	v, err := self.db.Get(key, nil)
	if err == leveldb.ErrNotFound {
		v, err = nil, nil
	}
	if err != nil {
		panic("state db read: " + err.Error())
	}
	self.cache.Add(string(key), v)
	return v
}

func (self *DB) NewBatch() *Batch {
	return &Batch{entries: make(map[string][]byte)}
}

// Writes the batch atomically
func (self *DB) Commit(batch *Batch) error {
	self.mu.Lock()
	defer self.mu.Unlock()
	if err := self.db.Write(&batch.batch, &opt.WriteOptions{Sync: true}); err != nil {
		return err
	}
	for k, v := range batch.entries {
		self.cache.Add(k, v)
	}
	return nil
}

// Consistent view of the committed state at the time it was taken. Reads bypass the cache
type Snapshot struct {
	snapshot *leveldb.Snapshot
}

// The snapshot has to be released
func (self *DB) Snapshot() (*Snapshot, error) {
	snapshot, err := self.db.GetSnapshot()
	if err != nil {
		return nil, err
	}
	return &Snapshot{snapshot}, nil
}

func (self *Snapshot) GetAccountStorage(addr *common.Address, key *common.Hash, cb func([]byte)) {
	if v := self.get(account_storage_key(addr, key)); len(v) != 0 {
		cb(v)
	}
}

func (self *Snapshot) GetMeta(key string) []byte {
	return self.get(meta_key(key))
}

func (self *Snapshot) get(key []byte) []byte {
	v, err := self.snapshot.Get(key, nil)
	if err == leveldb.ErrNotFound {
		return nil
	}
	if err != nil {
		panic("state db snapshot read: " + err.Error())
	}
	return v
}

func (self *Snapshot) Release() {
	self.snapshot.Release()
}

type Batch struct {
	batch   leveldb.Batch
	entries map[string][]byte
}

func (self *Batch) PutAccountStorage(addr *common.Address, key *common.Hash, value []byte) {
	self.put(account_storage_key(addr, key), value)
}

func (self *Batch) PutMeta(key string, value []byte) {
	self.put(meta_key(key), value)
}

func (self *Batch) Len() int {
	return len(self.entries)
}

func (self *Batch) put(key, value []byte) {
	if len(value) == 0 {
		self.batch.Delete(key)
		value = nil
	} else {
		self.batch.Put(key, value)
	}
	self.entries[string(key)] = value
}

func account_storage_key(addr *common.Address, key *common.Hash) []byte {
	ret := make([]byte, 0, 1+common.AddressLength+common.HashLength)
	ret = append(ret, col_account_storage)
	ret = append(ret, addr[:]...)
	return append(ret, key[:]...)
}

func meta_key(key string) []byte {
	return bin.Concat([]byte{col_meta}, bin.BytesView(key)...)
}
