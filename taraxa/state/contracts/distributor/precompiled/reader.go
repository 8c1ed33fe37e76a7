package distributor

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"

	contract_storage "github.com/Taraxa-project/taraxa-distributor/taraxa/state/contracts/storage"
	"github.com/Taraxa-project/taraxa-distributor/taraxa/util/asserts"
	"github.com/Taraxa-project/taraxa-distributor/taraxa/util/bin"
)

// Max number of updaters returned by one getUpdaters call
const GetUpdatersMaxCount = 50

// Read-only view of one distributor instance
type Reader struct {
	storage  *contract_storage.StorageReaderWrapper
	updaters contract_storage.AddressesIMapReader
}

func (self *Reader) Init(address *common.Address, storage contract_storage.StorageReader) *Reader {
	return self.init(new(contract_storage.StorageReaderWrapper).Init(address, storage))
}

func (self *Reader) init(storage *contract_storage.StorageReaderWrapper) *Reader {
	self.storage = storage
	self.updaters.Init(storage, field_updaters)
	return self
}

func (self *Reader) Address() common.Address {
	return self.storage.Address()
}

func (self *Reader) IsInitialized() bool {
	return self.storage.Has(key_initialized)
}

func (self *Reader) Owner() (ret common.Address) {
	self.storage.Get(key_owner, func(bytes []byte) {
		ret = common.BytesToAddress(bytes)
	})
	return
}

func (self *Reader) Timelock() (ret uint64) {
	self.storage.Get(key_timelock, func(bytes []byte) {
		ret = bin.DEC_b_endian_compact_64(bytes)
	})
	return
}

// Zero hash means no root, claims are disabled
func (self *Reader) Root() (ret common.Hash) {
	self.storage.Get(key_root, func(bytes []byte) {
		ret = common.BytesToHash(bytes)
	})
	return
}

func (self *Reader) IpfsHash() (ret common.Hash) {
	self.storage.Get(key_ipfs_hash, func(bytes []byte) {
		ret = common.BytesToHash(bytes)
	})
	return
}

// Zero SubmittedAt means there is no pending root
func (self *Reader) PendingRoot() (ret PendingRoot) {
	self.storage.Get(key_pending_root, func(bytes []byte) {
		asserts.NoErr(rlp.DecodeBytes(bytes, &ret), "pending root")
	})
	return
}

// Owner is an updater without being in the roster
func (self *Reader) IsUpdater(account *common.Address) bool {
	return *account == self.Owner() || self.updaters.AccountExists(account)
}

func (self *Reader) GetUpdaters(batch uint32) ([]common.Address, bool) {
	return self.updaters.GetAccounts(uint64(batch), GetUpdatersMaxCount)
}

// The whole roster at once, in roster order
func (self *Reader) Updaters() []common.Address {
	return self.updaters.GetAllAccounts()
}

func (self *Reader) Claimed(account, reward *common.Address) *uint256.Int {
	ret := new(uint256.Int)
	self.storage.Get(claimed_key(account, reward), func(bytes []byte) {
		ret.SetBytes(bytes)
	})
	return ret
}

func claimed_key(account, reward *common.Address) *common.Hash {
	return contract_storage.Stor_k_1(field_claimed, account[:], reward[:])
}
