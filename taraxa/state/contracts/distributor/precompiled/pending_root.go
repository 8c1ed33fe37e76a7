package distributor

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/Taraxa-project/taraxa-distributor/core/vm"
	"github.com/Taraxa-project/taraxa-distributor/taraxa/util/asserts"
	"github.com/Taraxa-project/taraxa-distributor/taraxa/util/bin"
)

type PendingRoot struct {
	SubmittedAt uint64
	Root        common.Hash
	IpfsHash    common.Hash
}

func (self *PendingRoot) Exists() bool {
	return self.SubmittedAt != 0
}

// Whether timelock seconds have passed since submission at time now
func (self *PendingRoot) Matured(timelock, now uint64) bool {
	return timelock <= now && self.SubmittedAt <= now-timelock
}

// Proposes a new root. It becomes current right away when there is no timelock,
// otherwise it replaces whatever is pending
func (self *Contract) SubmitRoot(ctx vm.CallFrame, root, ipfs_hash common.Hash) error {
	if err := self.authorize(&ctx, "submitRoot"); err != nil {
		return err
	}
	if self.Timelock() == 0 {
		self.setRoot(root, ipfs_hash)
		return nil
	}
	asserts.Holds(ctx.Time != 0, "block time 0 can not mark a pending root")
	self.setPendingRoot(&PendingRoot{ctx.Time, root, ipfs_hash})
	self.logs.AddLog(MakePendingRootSetLog(&self.address, &ctx.Caller, &root, &ipfs_hash))
	return nil
}

func (self *Contract) AcceptRoot(ctx vm.CallFrame) error {
	if err := self.authorize(&ctx, "acceptRoot"); err != nil {
		return err
	}
	pending := self.PendingRoot()
	if !pending.Exists() {
		return ErrNoPendingRoot
	}
	if !pending.Matured(self.Timelock(), ctx.Time) {
		return ErrTimelockNotExpired
	}
	self.setRoot(pending.Root, pending.IpfsHash)
	return nil
}

// Forced update, skips the timelock and drops the pending root
func (self *Contract) SetRoot(ctx vm.CallFrame, root, ipfs_hash common.Hash) error {
	if err := self.authorize(&ctx, "setRoot"); err != nil {
		return err
	}
	self.setRoot(root, ipfs_hash)
	return nil
}

func (self *Contract) RevokePendingRoot(ctx vm.CallFrame) error {
	if err := self.authorize(&ctx, "revokePendingRoot"); err != nil {
		return err
	}
	if pending := self.PendingRoot(); !pending.Exists() {
		return ErrNoPendingRoot
	}
	self.storage.Delete(key_pending_root)
	self.logs.AddLog(MakePendingRootRevokedLog(&self.address, &ctx.Caller))
	return nil
}

// A shorter timelock must not let an already submitted root through earlier than the
// timelock it was submitted under
func (self *Contract) SetTimelock(ctx vm.CallFrame, timelock uint64) error {
	if err := self.authorize(&ctx, "setTimelock"); err != nil {
		return err
	}
	if old_timelock := self.Timelock(); timelock < old_timelock {
		if pending := self.PendingRoot(); pending.Exists() && !pending.Matured(old_timelock, ctx.Time) {
			return ErrTimelockNotExpired
		}
	}
	self.setTimelock(timelock)
	return nil
}

func (self *Contract) setRoot(root, ipfs_hash common.Hash) {
	self.putHash(key_root, &root)
	self.putHash(key_ipfs_hash, &ipfs_hash)
	self.storage.Delete(key_pending_root)
	self.logs.AddLog(MakeRootSetLog(&self.address, &root, &ipfs_hash))
}

func (self *Contract) setPendingRoot(pending *PendingRoot) {
	bytes, err := rlp.EncodeToBytes(pending)
	asserts.NoErr(err, "pending root")
	self.storage.Put(key_pending_root, bytes)
}

func (self *Contract) setTimelock(timelock uint64) {
	if timelock == 0 {
		self.storage.Delete(key_timelock)
	} else {
		self.storage.Put(key_timelock, bin.ENC_b_endian_compact_64(timelock))
	}
	self.logs.AddLog(MakeTimelockSetLog(&self.address, timelock))
}

func (self *Contract) putHash(key *common.Hash, value *common.Hash) {
	if *value == (common.Hash{}) {
		self.storage.Delete(key)
	} else {
		self.storage.Put(key, value[:])
	}
}
