package factory

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"

	"github.com/Taraxa-project/taraxa-distributor/core/vm"
	"github.com/Taraxa-project/taraxa-distributor/taraxa/logger"
	distributor "github.com/Taraxa-project/taraxa-distributor/taraxa/state/contracts/distributor/precompiled"
	sol "github.com/Taraxa-project/taraxa-distributor/taraxa/state/contracts/factory/solidity"
	contract_storage "github.com/Taraxa-project/taraxa-distributor/taraxa/state/contracts/storage"
	"github.com/Taraxa-project/taraxa-distributor/taraxa/util"
	"github.com/Taraxa-project/taraxa-distributor/taraxa/util/asserts"
)

// Creates distributor instances at addresses derived from the factory address, a salt and
// the initial parameters
var contract_address = common.HexToAddress("0x00000000000000000000000000000000000000F2")

func ContractAddress() common.Address {
	return contract_address
}

// Part of the init code hash, identifies what the factory deploys
var CreationCode = []byte("taraxa.distributor.v1")

// Max number of instances returned by one getInstances call
const GetInstancesMaxCount = 50

var ErrContractExists = util.ErrorString("contract already exists")

// Contract storage fields keys
var (
	field_instances = []byte{0}
)

var Abi = vm.MustParseABI(sol.TaraxaUrdFactoryClientMetaData)

var constructor_args = func() abi.Arguments {
	args := Abi.Methods["createUrd"].Inputs
	// salt is not a constructor argument
	return args[:len(args)-1]
}()

type CreateParams struct {
	Owner    common.Address
	Timelock uint64
	Root     common.Hash
	IpfsHash common.Hash
	Salt     common.Hash
}

// Same params always give the same address
func ComputeAddress(params *CreateParams) common.Address {
	encoded, err := constructor_args.Pack(params.Owner, new(big.Int).SetUint64(params.Timelock), params.Root, params.IpfsHash)
	asserts.NoErr(err, "constructor args")
	init_code_hash := crypto.Keccak256(CreationCode, encoded)
	return crypto.CreateAddress2(contract_address, params.Salt, init_code_hash)
}

type Reader struct {
	instances contract_storage.AddressesIMapReader
}

func (self *Reader) Init(storage contract_storage.StorageReader) *Reader {
	self.instances.Init(new(contract_storage.StorageReaderWrapper).Init(&contract_address, storage), field_instances)
	return self
}

func (self *Reader) IsInstance(address *common.Address) bool {
	return self.instances.AccountExists(address)
}

func (self *Reader) GetInstances(batch uint32) ([]common.Address, bool) {
	return self.instances.GetAccounts(uint64(batch), GetInstancesMaxCount)
}

func (self *Reader) InstancesCount() uint64 {
	return self.instances.GetCount()
}

type Contract struct {
	Reader
	storage   contract_storage.StorageWrapper
	instances contract_storage.AddressesIMap
	backend   contract_storage.Storage
	tokens    distributor.TokenTransferer
	logs      vm.LogSink
	log       *zap.Logger
}

func (self *Contract) Init(storage contract_storage.Storage, tokens distributor.TokenTransferer, logs vm.LogSink, log *zap.Logger) *Contract {
	self.storage.Init(&contract_address, storage)
	self.instances.Init(&self.storage, field_instances)
	self.Reader.instances = self.instances.AddressesIMapReader
	self.backend = storage
	self.tokens = tokens
	self.logs = logs
	self.log = logger.OrNop(log)
	return self
}

func (self *Contract) Run(ctx vm.CallFrame) ([]byte, error) {
	method, err := Abi.MethodById(ctx.Input)
	if err != nil {
		return nil, err
	}
	input := ctx.Input[4:]

	switch method.Name {
	case "createUrd", "computeAddress":
		var args sol.CreateUrdArgs
		if err = vm.UnpackInput(method, &args, input); err != nil {
			return nil, err
		}
		if !args.InitialTimelock.IsUint64() {
			return nil, distributor.ErrTimelockTooLarge
		}
		params := CreateParams{args.InitialOwner, args.InitialTimelock.Uint64(), args.InitialRoot, args.InitialIpfsHash, args.Salt}
		if method.Name == "computeAddress" {
			return method.Outputs.Pack(ComputeAddress(&params))
		}
		urd, err := self.Create(ctx, &params)
		if err != nil {
			return nil, err
		}
		return method.Outputs.Pack(urd)
	case "isInstance":
		var args sol.IsInstanceArgs
		if err = vm.UnpackInput(method, &args, input); err != nil {
			return nil, err
		}
		return method.Outputs.Pack(self.IsInstance(&args.Urd))
	case "getInstances":
		var args sol.GetInstancesArgs
		if err = vm.UnpackInput(method, &args, input); err != nil {
			return nil, err
		}
		instances, end := self.GetInstances(args.Batch)
		return method.Outputs.Pack(instances, end)
	}

	return nil, nil
}

// Registers and initializes a new distributor. ctx.Caller is recorded as the creator
func (self *Contract) Create(ctx vm.CallFrame, params *CreateParams) (common.Address, error) {
	urd := ComputeAddress(params)
	if !self.instances.CreateAccount(&urd) {
		return common.Address{}, ErrContractExists
	}
	err := new(distributor.Contract).
		Init(&urd, self.backend, self.tokens, self.logs, self.log).
		Initialize(ctx, params.Owner, params.Timelock, params.Root, params.IpfsHash)
	if err != nil {
		return common.Address{}, err
	}
	self.logs.AddLog(MakeUrdCreatedLog(&urd, &ctx.Caller, params))
	self.log.Info("distributor created",
		zap.Stringer("urd", urd),
		zap.Stringer("caller", ctx.Caller),
		zap.Stringer("owner", params.Owner),
		zap.Uint64("timelock", params.Timelock))
	return urd, nil
}

// event UrdCreated(address indexed urd, address indexed caller, address indexed initialOwner,
// uint256 initialTimelock, bytes32 initialRoot, bytes32 initialIpfsHash, bytes32 salt)
func MakeUrdCreatedLog(urd, caller *common.Address, params *CreateParams) vm.LogRecord {
	log, err := vm.MakeLog(Abi.Events["UrdCreated"], &contract_address,
		*urd, *caller, params.Owner, new(big.Int).SetUint64(params.Timelock), params.Root, params.IpfsHash, params.Salt)
	asserts.NoErr(err, "Update logs methods to correspond ABI")
	return *log
}
