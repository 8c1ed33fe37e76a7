package keccak256

import (
	"hash"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/sha3"
)

type hash_state interface {
	hash.Hash
	Read([]byte) (int, error)
}

type Hasher struct {
	state hash_state
}

func (self *Hasher) Write(b ...byte) {
	self.state.Write(b)
}

func (self *Hasher) Sum(out *common.Hash) {
	self.state.Read(out[:])
}

func (self *Hasher) Reset() {
	self.state.Reset()
}

var hashers = sync.Pool{
	New: func() interface{} {
		return &Hasher{sha3.NewLegacyKeccak256().(hash_state)}
	},
}

func GetHasherFromPool() *Hasher {
	return hashers.Get().(*Hasher)
}

func ReturnHasherToPool(hasher *Hasher) {
	hasher.Reset()
	hashers.Put(hasher)
}

func Hash(bs ...[]byte) (ret *common.Hash) {
	ret = new(common.Hash)
	*ret = HashAndReturnByValue(bs...)
	return
}

func HashAndReturnByValue(bs ...[]byte) (ret common.Hash) {
	hasher := GetHasherFromPool()
	for _, b := range bs {
		hasher.Write(b...)
	}
	hasher.Sum(&ret)
	ReturnHasherToPool(hasher)
	return
}
