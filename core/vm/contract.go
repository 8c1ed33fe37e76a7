package vm

import "github.com/ethereum/go-ethereum/common"

// CallFrame is what a precompiled contract sees of the current call
type CallFrame = struct {
	// Caller is the transaction sender. Contract to contract calls are not routed through
	// the host, so it is never another contract
	Caller common.Address
	// Time of the enclosing block in seconds
	Time  uint64
	Input []byte
}
