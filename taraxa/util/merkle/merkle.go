package merkle

import (
	"bytes"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/Taraxa-project/taraxa-distributor/taraxa/util/keccak256"
)

// Double keccak of abi.encode(account, reward, claimable). Hashing twice keeps a leaf
// from being presented as an inner node
func LeafHash(account, reward *common.Address, claimable *uint256.Int) common.Hash {
	var enc [3 * 32]byte
	copy(enc[12:32], account[:])
	copy(enc[44:64], reward[:])
	amount := claimable.Bytes32()
	copy(enc[64:], amount[:])
	inner := keccak256.HashAndReturnByValue(enc[:])
	return keccak256.HashAndReturnByValue(inner[:])
}

// Inner node of a tree whose children are ordered by value, not by position
func HashPair(a, b *common.Hash) common.Hash {
	if bytes.Compare(a[:], b[:]) > 0 {
		a, b = b, a
	}
	return keccak256.HashAndReturnByValue(a[:], b[:])
}

func ProcessProof(proof []common.Hash, leaf common.Hash) common.Hash {
	computed := leaf
	for i := range proof {
		computed = HashPair(&computed, &proof[i])
	}
	return computed
}

func Verify(proof []common.Hash, root, leaf common.Hash) bool {
	return ProcessProof(proof, leaf) == root
}
