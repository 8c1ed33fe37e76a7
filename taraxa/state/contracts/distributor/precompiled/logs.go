package distributor

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/Taraxa-project/taraxa-distributor/core/vm"
	"github.com/Taraxa-project/taraxa-distributor/taraxa/util/asserts"
)

// All Make functions below are making log records for events of the distributor ABI.
// If an event is added or changed, TestMakeLogsCheckTopics has to be updated as well

func makeLog(event abi.Event, address *common.Address, args ...interface{}) vm.LogRecord {
	log, err := vm.MakeLog(event, address, args...)
	asserts.NoErr(err, "Update logs methods to correspond ABI")
	return *log
}

// event PendingRootSet(address indexed caller, bytes32 indexed newRoot, bytes32 indexed newIpfsHash)
func MakePendingRootSetLog(address, caller *common.Address, root, ipfs_hash *common.Hash) vm.LogRecord {
	return makeLog(Abi.Events["PendingRootSet"], address, *caller, *root, *ipfs_hash)
}

// event RootSet(bytes32 indexed newRoot, bytes32 indexed newIpfsHash)
func MakeRootSetLog(address *common.Address, root, ipfs_hash *common.Hash) vm.LogRecord {
	return makeLog(Abi.Events["RootSet"], address, *root, *ipfs_hash)
}

// event Claimed(address indexed account, address indexed reward, uint256 amount)
func MakeClaimedLog(address, account, reward *common.Address, amount *uint256.Int) vm.LogRecord {
	return makeLog(Abi.Events["Claimed"], address, *account, *reward, amount.ToBig())
}

// event TimelockSet(uint256 newTimelock)
func MakeTimelockSetLog(address *common.Address, timelock uint64) vm.LogRecord {
	return makeLog(Abi.Events["TimelockSet"], address, new(big.Int).SetUint64(timelock))
}

// event RootUpdaterSet(address indexed rootUpdater, bool active)
func MakeRootUpdaterSetLog(address, updater *common.Address, active bool) vm.LogRecord {
	return makeLog(Abi.Events["RootUpdaterSet"], address, *updater, active)
}

// event PendingRootRevoked(address indexed caller)
func MakePendingRootRevokedLog(address, caller *common.Address) vm.LogRecord {
	return makeLog(Abi.Events["PendingRootRevoked"], address, *caller)
}

// event OwnerSet(address indexed oldOwner, address indexed newOwner)
func MakeOwnerSetLog(address, old_owner, new_owner *common.Address) vm.LogRecord {
	return makeLog(Abi.Events["OwnerSet"], address, *old_owner, *new_owner)
}
