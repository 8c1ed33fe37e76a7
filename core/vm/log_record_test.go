package vm

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
)

var test_abi = MustParseABI(`[{"anonymous":false,"inputs":[
	{"indexed":true,"name":"who","type":"address"},
	{"indexed":false,"name":"amount","type":"uint256"},
	{"indexed":true,"name":"id","type":"bytes32"},
	{"indexed":false,"name":"flag","type":"bool"}
],"name":"Happened","type":"event"}]`)

func TestMakeLog(t *testing.T) {
	event := test_abi.Events["Happened"]
	contract := common.HexToAddress("0x01")
	who := common.HexToAddress("0x02")
	id := common.HexToHash("0x03")

	log, err := MakeLog(event, &contract, who, big.NewInt(7), id, true)
	assert.NoError(t, err)
	assert.Equal(t, contract, log.Address)
	assert.Equal(t, []common.Hash{event.ID, common.BytesToHash(who[:]), id}, log.Topics)
	assert.Equal(t, append(common.BigToHash(big.NewInt(7)).Bytes(), common.BigToHash(big.NewInt(1)).Bytes()...), log.Data)

	_, err = MakeLog(event, &contract, who)
	assert.Error(t, err)
	_, err = MakeLog(event, &contract, who, "not a number", id, true)
	assert.Error(t, err)
}

func TestExecutionResultFailed(t *testing.T) {
	assert.False(t, (&ExecutionResult{}).Failed())
	assert.True(t, (&ExecutionResult{ExecutionErr: "x"}).Failed())
	assert.True(t, (&ExecutionResult{ConsensusErr: "x"}).Failed())
}
