package state_transition

import (
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/Taraxa-project/taraxa-distributor/core/vm"
	distributor "github.com/Taraxa-project/taraxa-distributor/taraxa/state/contracts/distributor/precompiled"
	factory "github.com/Taraxa-project/taraxa-distributor/taraxa/state/contracts/factory/precompiled"
	token "github.com/Taraxa-project/taraxa-distributor/taraxa/state/contracts/token/precompiled"
)

// Resolves the contract at address, bound to state for the duration of one call.
// Distributors exist only once the factory has registered them
func NewContract(address *common.Address, state *PendingState, log *zap.Logger) vm.PrecompiledContract {
	tokens := new(token.Contract).Init(state, state)
	switch *address {
	case token.ContractAddress():
		return tokens
	case factory.ContractAddress():
		return new(factory.Contract).Init(state, tokens, state, log)
	}
	if new(factory.Reader).Init(state).IsInstance(address) {
		return new(distributor.Contract).Init(address, state, tokens, state, log)
	}
	return nil
}
