package distributor

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"go.uber.org/zap"

	"github.com/Taraxa-project/taraxa-distributor/core/vm"
	"github.com/Taraxa-project/taraxa-distributor/taraxa/util/merkle"
)

// Moves amount of token from one holder to another
type TokenTransferer interface {
	Transfer(token, from, to *common.Address, amount *uint256.Int) error
}

// Pays account the part of claimable it has not received yet. Anyone may claim for any
// account, the proof is what authorizes the payout
func (self *Contract) Claim(ctx vm.CallFrame, account, reward common.Address, claimable *uint256.Int, proof []common.Hash) (*uint256.Int, error) {
	if err := self.authorize(&ctx, "claim"); err != nil {
		return nil, err
	}
	root := self.Root()
	if root == (common.Hash{}) {
		return nil, ErrRootNotSet
	}
	if !merkle.Verify(proof, root, merkle.LeafHash(&account, &reward, claimable)) {
		return nil, ErrInvalidProof
	}
	claimed := self.Claimed(&account, &reward)
	if !claimable.Gt(claimed) {
		return nil, ErrClaimableTooLow
	}
	amount := new(uint256.Int).Sub(claimable, claimed)

	// Accounting goes first, the transfer is the last external effect
	self.setClaimed(&account, &reward, claimable)
	if err := self.tokens.Transfer(&reward, &self.address, &account, amount); err != nil {
		self.setClaimed(&account, &reward, claimed)
		self.log.Warn("reward transfer failed",
			zap.Stringer("distributor", self.address),
			zap.Stringer("account", account),
			zap.Stringer("reward", reward),
			zap.Stringer("amount", amount),
			zap.Error(err))
		return nil, ErrTransferFailed
	}
	self.logs.AddLog(MakeClaimedLog(&self.address, &account, &reward, amount))
	self.log.Info("rewards claimed",
		zap.Stringer("distributor", self.address),
		zap.Stringer("account", account),
		zap.Stringer("reward", reward),
		zap.Stringer("amount", amount))
	return amount, nil
}

func (self *Contract) setClaimed(account, reward *common.Address, amount *uint256.Int) {
	key := claimed_key(account, reward)
	if amount.IsZero() {
		self.storage.Delete(key)
		return
	}
	bytes := amount.Bytes32()
	self.storage.Put(key, bytes[:])
}
