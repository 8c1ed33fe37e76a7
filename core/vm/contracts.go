package vm

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"

	"github.com/Taraxa-project/taraxa-distributor/taraxa/util/asserts"
)

// Contracts are implemented natively and dispatched by address. Any returned error reverts
// every write made during the call
type PrecompiledContract interface {
	Run(ctx CallFrame) ([]byte, error)
}

// Decodes call arguments (input without the method id) into the args struct
func UnpackInput(method *abi.Method, args interface{}, input []byte) error {
	values, err := method.Inputs.Unpack(input)
	if err != nil {
		return err
	}
	return method.Inputs.Copy(args, values)
}

func MustParseABI(json string) abi.ABI {
	ret, err := abi.JSON(strings.NewReader(json))
	asserts.NoErr(err, "contract abi")
	return ret
}
