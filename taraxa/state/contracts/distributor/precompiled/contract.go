package distributor

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"go.uber.org/zap"

	"github.com/Taraxa-project/taraxa-distributor/core/vm"
	"github.com/Taraxa-project/taraxa-distributor/taraxa/logger"
	sol "github.com/Taraxa-project/taraxa-distributor/taraxa/state/contracts/distributor/solidity"
	contract_storage "github.com/Taraxa-project/taraxa-distributor/taraxa/state/contracts/storage"
	"github.com/Taraxa-project/taraxa-distributor/taraxa/util"
	"github.com/Taraxa-project/taraxa-distributor/taraxa/util/asserts"
)

// Contract methods error return values
var (
	ErrNotUpdater         = util.ErrorString("caller has not the updater role")
	ErrNotOwner           = util.ErrorString("caller is not the owner")
	ErrNoPendingRoot      = util.ErrorString("no pending root")
	ErrTimelockNotExpired = util.ErrorString("timelock is not expired")
	ErrRootNotSet         = util.ErrorString("root is not set")
	ErrInvalidProof       = util.ErrorString("invalid proof or expired")
	ErrClaimableTooLow    = util.ErrorString("claimable too low")
	ErrTransferFailed     = util.ErrorString("reward transfer failed")
	ErrAlreadyInitialized = util.ErrorString("already initialized")
	ErrTimelockTooLarge   = util.ErrorString("timelock does not fit into 64 bits")
)

// Contract storage fields keys
var (
	field_owner        = []byte{0}
	field_timelock     = []byte{1}
	field_root         = []byte{2}
	field_ipfs_hash    = []byte{3}
	field_pending_root = []byte{4}
	field_updaters     = []byte{5}
	field_claimed      = []byte{6}
	field_initialized  = []byte{7}
)

var (
	key_owner        = contract_storage.Stor_k_1(field_owner)
	key_timelock     = contract_storage.Stor_k_1(field_timelock)
	key_root         = contract_storage.Stor_k_1(field_root)
	key_ipfs_hash    = contract_storage.Stor_k_1(field_ipfs_hash)
	key_pending_root = contract_storage.Stor_k_1(field_pending_root)
	key_initialized  = contract_storage.Stor_k_1(field_initialized)
)

var Abi = vm.MustParseABI(sol.TaraxaDistributorClientMetaData)

// One distributor instance. Instances are cheap and live for a single call, all of their
// state is in the storage
type Contract struct {
	Reader
	address  common.Address
	storage  contract_storage.StorageWrapper
	updaters contract_storage.AddressesIMap
	tokens   TokenTransferer
	logs     vm.LogSink
	log      *zap.Logger
}

func (self *Contract) Init(address *common.Address, storage contract_storage.Storage, tokens TokenTransferer, logs vm.LogSink, log *zap.Logger) *Contract {
	self.address = *address
	self.storage.Init(address, storage)
	self.Reader.init(&self.storage.StorageReaderWrapper)
	self.updaters.Init(&self.storage, field_updaters)
	self.tokens = tokens
	self.logs = logs
	self.log = logger.OrNop(log)
	return self
}

// Sets up a freshly created instance. A non-zero root is set right away, bypassing the timelock
func (self *Contract) Initialize(ctx vm.CallFrame, owner common.Address, timelock uint64, root, ipfs_hash common.Hash) error {
	if err := self.authorize(&ctx, "initialize"); err != nil {
		return err
	}
	if self.IsInitialized() {
		return ErrAlreadyInitialized
	}
	self.storage.Put(key_initialized, []byte{1})
	self.setOwner(owner)
	self.setTimelock(timelock)
	if root != (common.Hash{}) {
		self.setRoot(root, ipfs_hash)
	}
	return nil
}

// This is called on each call to the contract
// It translates the call and tries to execute it
func (self *Contract) Run(ctx vm.CallFrame) ([]byte, error) {
	method, err := Abi.MethodById(ctx.Input)
	if err != nil {
		return nil, err
	}

	// First 4 bytes is method signature
	input := ctx.Input[4:]

	switch method.Name {
	case "initialize":
		var args sol.InitializeArgs
		if err = vm.UnpackInput(method, &args, input); err != nil {
			return nil, err
		}
		timelock, err := toTimelock(args.InitialTimelock)
		if err != nil {
			return nil, err
		}
		return nil, self.Initialize(ctx, args.InitialOwner, timelock, args.InitialRoot, args.InitialIpfsHash)
	case "submitRoot":
		var args sol.RootArgs
		if err = vm.UnpackInput(method, &args, input); err != nil {
			return nil, err
		}
		return nil, self.SubmitRoot(ctx, args.NewRoot, args.NewIpfsHash)
	case "acceptRoot":
		return nil, self.AcceptRoot(ctx)
	case "setRoot":
		var args sol.RootArgs
		if err = vm.UnpackInput(method, &args, input); err != nil {
			return nil, err
		}
		return nil, self.SetRoot(ctx, args.NewRoot, args.NewIpfsHash)
	case "setTimelock":
		var args sol.SetTimelockArgs
		if err = vm.UnpackInput(method, &args, input); err != nil {
			return nil, err
		}
		timelock, err := toTimelock(args.NewTimelock)
		if err != nil {
			return nil, err
		}
		return nil, self.SetTimelock(ctx, timelock)
	case "setRootUpdater":
		var args sol.SetRootUpdaterArgs
		if err = vm.UnpackInput(method, &args, input); err != nil {
			return nil, err
		}
		return nil, self.SetRootUpdater(ctx, args.Updater, args.Active)
	case "revokePendingRoot":
		return nil, self.RevokePendingRoot(ctx)
	case "setOwner":
		var args sol.SetOwnerArgs
		if err = vm.UnpackInput(method, &args, input); err != nil {
			return nil, err
		}
		return nil, self.TransferOwnership(ctx, args.NewOwner)
	case "claim":
		var args sol.ClaimArgs
		if err = vm.UnpackInput(method, &args, input); err != nil {
			return nil, err
		}
		claimable, overflow := uint256.FromBig(args.Claimable)
		asserts.Holds(!overflow)
		proof := make([]common.Hash, len(args.Proof))
		for i := range args.Proof {
			proof[i] = args.Proof[i]
		}
		amount, err := self.Claim(ctx, args.Account, args.Reward, claimable, proof)
		if err != nil {
			return nil, err
		}
		return method.Outputs.Pack(amount.ToBig())
	case "owner":
		return method.Outputs.Pack(self.Owner())
	case "timelock":
		return method.Outputs.Pack(new(big.Int).SetUint64(self.Timelock()))
	case "root":
		return method.Outputs.Pack(self.Root())
	case "ipfsHash":
		return method.Outputs.Pack(self.IpfsHash())
	case "isUpdater":
		var args sol.IsUpdaterArgs
		if err = vm.UnpackInput(method, &args, input); err != nil {
			return nil, err
		}
		return method.Outputs.Pack(self.IsUpdater(&args.Updater))
	case "pendingRoot":
		pending := self.PendingRoot()
		return method.Outputs.Pack(pending.Root, pending.IpfsHash, new(big.Int).SetUint64(pending.SubmittedAt))
	case "claimed":
		var args sol.ClaimedArgs
		if err = vm.UnpackInput(method, &args, input); err != nil {
			return nil, err
		}
		return method.Outputs.Pack(self.Claimed(&args.Account, &args.Reward).ToBig())
	case "getUpdaters":
		var args sol.GetUpdatersArgs
		if err = vm.UnpackInput(method, &args, input); err != nil {
			return nil, err
		}
		updaters, end := self.GetUpdaters(args.Batch)
		return method.Outputs.Pack(updaters, end)
	}

	return nil, nil
}

func toTimelock(v *big.Int) (uint64, error) {
	if !v.IsUint64() {
		return 0, ErrTimelockTooLarge
	}
	return v.Uint64(), nil
}
