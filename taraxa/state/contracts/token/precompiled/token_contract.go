package token

import (
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/Taraxa-project/taraxa-distributor/core/vm"
	contract_storage "github.com/Taraxa-project/taraxa-distributor/taraxa/state/contracts/storage"
	sol "github.com/Taraxa-project/taraxa-distributor/taraxa/state/contracts/token/solidity"
	"github.com/Taraxa-project/taraxa-distributor/taraxa/util"
	"github.com/Taraxa-project/taraxa-distributor/taraxa/util/asserts"
)

// Balance ledger of every reward token, keyed by (token, holder). Tokens are plain addresses,
// supply only comes from genesis
var contract_address = common.HexToAddress("0x00000000000000000000000000000000000000F1")

func ContractAddress() common.Address {
	return contract_address
}

var (
	ErrInsufficientBalance = util.ErrorString("insufficient balance")
	ErrBalanceOverflow     = util.ErrorString("balance overflow")
)

// Contract storage fields keys
var (
	field_balances = []byte{0}
)

var Abi = vm.MustParseABI(sol.TaraxaTokenClientMetaData)

type Reader struct {
	storage *contract_storage.StorageReaderWrapper
}

func (self *Reader) Init(storage contract_storage.StorageReader) *Reader {
	self.storage = new(contract_storage.StorageReaderWrapper).Init(&contract_address, storage)
	return self
}

func (self *Reader) BalanceOf(token, holder *common.Address) *uint256.Int {
	ret := new(uint256.Int)
	self.storage.Get(balance_key(token, holder), func(bytes []byte) {
		ret.SetBytes(bytes)
	})
	return ret
}

type Contract struct {
	Reader
	storage contract_storage.StorageWrapper
	logs    vm.LogSink
}

func (self *Contract) Init(storage contract_storage.Storage, logs vm.LogSink) *Contract {
	self.storage.Init(&contract_address, storage)
	self.Reader.storage = &self.storage.StorageReaderWrapper
	self.logs = logs
	return self
}

func (self *Contract) Run(ctx vm.CallFrame) ([]byte, error) {
	method, err := Abi.MethodById(ctx.Input)
	if err != nil {
		return nil, err
	}
	input := ctx.Input[4:]

	switch method.Name {
	case "transfer":
		var args sol.TransferArgs
		if err = vm.UnpackInput(method, &args, input); err != nil {
			return nil, err
		}
		amount, overflow := uint256.FromBig(args.Amount)
		asserts.Holds(!overflow)
		return nil, self.Transfer(&args.Token, &ctx.Caller, &args.To, amount)
	case "balanceOf":
		var args sol.BalanceOfArgs
		if err = vm.UnpackInput(method, &args, input); err != nil {
			return nil, err
		}
		return method.Outputs.Pack(self.BalanceOf(&args.Token, &args.Holder).ToBig())
	}
	return nil, nil
}

func (self *Contract) Transfer(token, from, to *common.Address, amount *uint256.Int) error {
	from_balance := self.BalanceOf(token, from)
	if from_balance.Lt(amount) {
		return ErrInsufficientBalance
	}
	if *from != *to {
		to_balance := self.BalanceOf(token, to)
		if _, overflow := to_balance.AddOverflow(to_balance, amount); overflow {
			return ErrBalanceOverflow
		}
		self.setBalance(token, from, from_balance.Sub(from_balance, amount))
		self.setBalance(token, to, to_balance)
	}
	self.logs.AddLog(MakeTransferLog(token, from, to, amount))
	return nil
}

// Only used to seed balances at genesis
func (self *Contract) SetBalance(token, holder *common.Address, amount *uint256.Int) {
	self.setBalance(token, holder, amount)
}

// Genesis funding on top of an existing balance
func (self *Contract) Credit(token, holder *common.Address, amount *uint256.Int) error {
	balance := self.BalanceOf(token, holder)
	if _, overflow := balance.AddOverflow(balance, amount); overflow {
		return ErrBalanceOverflow
	}
	self.setBalance(token, holder, balance)
	return nil
}

func (self *Contract) setBalance(token, holder *common.Address, amount *uint256.Int) {
	if amount.IsZero() {
		self.storage.Delete(balance_key(token, holder))
		return
	}
	self.storage.Put(balance_key(token, holder), amount.Bytes())
}

func balance_key(token, holder *common.Address) *common.Hash {
	return contract_storage.Stor_k_1(field_balances, token[:], holder[:])
}

// event Transfer(address indexed token, address indexed from, address indexed to, uint256 amount)
func MakeTransferLog(token, from, to *common.Address, amount *uint256.Int) vm.LogRecord {
	return makeLog(Abi.Events["Transfer"], *token, *from, *to, amount.ToBig())
}

func makeLog(event abi.Event, args ...interface{}) vm.LogRecord {
	log, err := vm.MakeLog(event, &contract_address, args...)
	asserts.NoErr(err, "Update logs methods to correspond ABI")
	return *log
}
