package distributor

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/Taraxa-project/taraxa-distributor/core/vm"
)

// Idempotent, setting the current status again only emits the event
func (self *Contract) SetRootUpdater(ctx vm.CallFrame, updater common.Address, active bool) error {
	if err := self.authorize(&ctx, "setRootUpdater"); err != nil {
		return err
	}
	if active {
		self.updaters.CreateAccount(&updater)
	} else {
		self.updaters.RemoveAccount(&updater)
	}
	self.logs.AddLog(MakeRootUpdaterSetLog(&self.address, &updater, active))
	return nil
}

func (self *Contract) TransferOwnership(ctx vm.CallFrame, new_owner common.Address) error {
	if err := self.authorize(&ctx, "setOwner"); err != nil {
		return err
	}
	self.setOwner(new_owner)
	return nil
}

func (self *Contract) setOwner(new_owner common.Address) {
	old_owner := self.Owner()
	if new_owner == (common.Address{}) {
		self.storage.Delete(key_owner)
	} else {
		self.storage.Put(key_owner, new_owner[:])
	}
	self.logs.AddLog(MakeOwnerSetLog(&self.address, &old_owner, &new_owner))
}
