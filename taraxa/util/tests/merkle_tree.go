package tests

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/Taraxa-project/taraxa-distributor/taraxa/util/merkle"
)

type RewardEntry struct {
	Account   common.Address
	Reward    common.Address
	Claimable *uint256.Int
}

func (self *RewardEntry) Leaf() common.Hash {
	return merkle.LeafHash(&self.Account, &self.Reward, self.Claimable)
}

// Sorted pair tree over reward entries. Layers[0] are the leaves in entry order, an odd
// node is carried to the next layer as is
type RewardTree struct {
	Entries []RewardEntry
	Layers  [][]common.Hash
}

func NewRewardTree(entries ...RewardEntry) *RewardTree {
	self := &RewardTree{Entries: entries}
	layer := make([]common.Hash, len(entries))
	for i := range entries {
		layer[i] = entries[i].Leaf()
	}
	self.Layers = append(self.Layers, layer)
	for len(layer) > 1 {
		next := make([]common.Hash, 0, (len(layer)+1)/2)
		for i := 0; i < len(layer); i += 2 {
			if i+1 == len(layer) {
				next = append(next, layer[i])
			} else {
				next = append(next, merkle.HashPair(&layer[i], &layer[i+1]))
			}
		}
		self.Layers = append(self.Layers, next)
		layer = next
	}
	return self
}

func (self *RewardTree) Root() common.Hash {
	top := self.Layers[len(self.Layers)-1]
	if len(top) == 0 {
		return common.Hash{}
	}
	return top[0]
}

func (self *RewardTree) Proof(entry_idx int) (proof []common.Hash) {
	idx := entry_idx
	for _, layer := range self.Layers[:len(self.Layers)-1] {
		sibling := idx ^ 1
		if sibling < len(layer) {
			proof = append(proof, layer[sibling])
		}
		idx /= 2
	}
	return
}
