package vm

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

type LogRecord struct {
	Address common.Address
	Topics  []common.Hash
	Data    []byte
}

// Builds a log record for the event. Indexed arguments go to topics in declaration order,
// the rest is abi-encoded into Data
func MakeLog(event abi.Event, contract_address *common.Address, args ...interface{}) (*LogRecord, error) {
	if len(event.Inputs) != len(args) {
		return nil, fmt.Errorf("MakeLog: %v: expected %v arguments, but got %v", event.Name, len(event.Inputs), len(args))
	}
	log := new(LogRecord)
	log.Address = *contract_address
	log.Topics = append(log.Topics, event.ID)
	var data_args []interface{}
	for index, input := range event.Inputs {
		if !input.Indexed {
			data_args = append(data_args, args[index])
			continue
		}
		topics, err := abi.MakeTopics([]interface{}{args[index]})
		if err != nil {
			return nil, fmt.Errorf("MakeLog: %v: topic %v: %w", event.Name, input.Name, err)
		}
		log.Topics = append(log.Topics, topics[0][0])
	}
	if len(data_args) != 0 {
		data, err := event.Inputs.NonIndexed().Pack(data_args...)
		if err != nil {
			return nil, fmt.Errorf("MakeLog: %v: %w", event.Name, err)
		}
		log.Data = data
	}
	return log, nil
}

// Collects logs of the current call. Logs of a failed call are dropped together with its writes
type LogSink interface {
	AddLog(LogRecord)
}
