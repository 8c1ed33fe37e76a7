package tests

import (
	"encoding/binary"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Taraxa-project/taraxa-distributor/taraxa/util/asserts"
)

type TestCtx struct {
	*testing.T
	Assert   assert.Assertions
	Require  require.Assertions
	data_dir string
}

func NewTestCtx(t *testing.T) (ret TestCtx) {
	ret.T = t
	ret.Assert = *assert.New(t)
	ret.Require = *require.New(t)
	return
}

// Per-test directory, removed automatically by the testing package
func (self *TestCtx) DataDir() string {
	if len(self.data_dir) == 0 {
		self.data_dir = self.TempDir()
	}
	return self.data_dir
}

func Addr(i uint64) (ret common.Address) {
	asserts.Holds(i > 0)
	binary.BigEndian.PutUint64(ret[common.AddressLength-8:], i)
	return
}

func AddrP(i uint64) *common.Address {
	ret := Addr(i)
	return &ret
}

func Hash(i uint64) (ret common.Hash) {
	asserts.Holds(i > 0)
	binary.BigEndian.PutUint64(ret[common.HashLength-8:], i)
	return
}

func U256(v uint64) *uint256.Int {
	return uint256.NewInt(v)
}

func HashP(i uint64) *common.Hash {
	ret := Hash(i)
	return &ret
}
