package distributor

import "github.com/Taraxa-project/taraxa-distributor/core/vm"

type Capability uint8

const (
	CapAnyone Capability = iota
	// Owner or a roster member
	CapUpdater
	CapOwner
)

// Required capability of every state changing method, keyed by ABI method name.
// acceptRoot and claim are open to anyone: the timelock and the proof protect them
var capabilities = map[string]Capability{
	"initialize":        CapAnyone,
	"submitRoot":        CapUpdater,
	"acceptRoot":        CapAnyone,
	"setRoot":           CapOwner,
	"setTimelock":       CapOwner,
	"setRootUpdater":    CapOwner,
	"revokePendingRoot": CapOwner,
	"setOwner":          CapOwner,
	"claim":             CapAnyone,
}

func RequiredCapability(method string) (ret Capability, present bool) {
	ret, present = capabilities[method]
	return
}

func (self *Contract) authorize(ctx *vm.CallFrame, method string) error {
	capability, present := capabilities[method]
	if !present {
		panic("no capability declared for " + method)
	}
	switch capability {
	case CapUpdater:
		if !self.IsUpdater(&ctx.Caller) {
			return ErrNotUpdater
		}
	case CapOwner:
		if ctx.Caller != self.Owner() {
			return ErrNotOwner
		}
	}
	return nil
}
