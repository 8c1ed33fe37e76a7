package main

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/urfave/cli/v2"

	"github.com/Taraxa-project/taraxa-distributor/core/vm"
	distributor "github.com/Taraxa-project/taraxa-distributor/taraxa/state/contracts/distributor/precompiled"
	factory "github.com/Taraxa-project/taraxa-distributor/taraxa/state/contracts/factory/precompiled"
	token "github.com/Taraxa-project/taraxa-distributor/taraxa/state/contracts/token/precompiled"
)

var initCommand = &cli.Command{
	Name:  "init",
	Usage: "Creates the state database, applying the genesis if configured",
	Action: func(c *cli.Context) error {
		n, err := openNode(c)
		if err != nil {
			return err
		}
		defer n.Close()
		last := n.api.LastBlock()
		fmt.Fprintf(c.App.Writer, "block %d time %d\n", last.Number, last.Time)
		return nil
	},
}

var createCommand = &cli.Command{
	Name:  "create",
	Usage: "Creates a distributor through the factory and prints its address",
	Flags: txFlags(ownerFlag, timelockFlag, rootFlag, ipfsHashFlag, saltFlag),
	Action: func(c *cli.Context) error {
		a := args{c: c}
		owner := a.address(ownerFlag.Name)
		root, ipfs_hash, salt := a.hash(rootFlag.Name), a.hash(ipfsHashFlag.Name), a.hash(saltFlag.Name)
		if a.err != nil {
			return a.err
		}
		timelock := new(big.Int).SetUint64(c.Uint64(timelockFlag.Name))
		ret, err := call(c, factory.ContractAddress(), factory.Abi, "createUrd", owner, timelock, root, ipfs_hash, salt)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.App.Writer, ret[0].(common.Address).Hex())
		return nil
	},
}

var submitRootCommand = &cli.Command{
	Name:  "submit-root",
	Usage: "Proposes a root, it can be accepted once the timelock passes",
	Flags: txFlags(urdFlag, rootFlag, ipfsHashFlag),
	Action: func(c *cli.Context) error {
		return rootAction(c, "submitRoot")
	},
}

var setRootCommand = &cli.Command{
	Name:  "set-root",
	Usage: "Sets the root right away, owner only",
	Flags: txFlags(urdFlag, rootFlag, ipfsHashFlag),
	Action: func(c *cli.Context) error {
		return rootAction(c, "setRoot")
	},
}

func rootAction(c *cli.Context, method string) error {
	a := args{c: c}
	urd := a.address(urdFlag.Name)
	root, ipfs_hash := a.hash(rootFlag.Name), a.hash(ipfsHashFlag.Name)
	if a.err != nil {
		return a.err
	}
	_, err := call(c, urd, distributor.Abi, method, root, ipfs_hash)
	return err
}

var acceptRootCommand = &cli.Command{
	Name:  "accept-root",
	Usage: "Accepts the pending root once its timelock is over",
	Flags: txFlags(urdFlag),
	Action: func(c *cli.Context) error {
		return noArgsAction(c, "acceptRoot")
	},
}

var revokePendingRootCommand = &cli.Command{
	Name:  "revoke-pending-root",
	Usage: "Drops the pending root, owner only",
	Flags: txFlags(urdFlag),
	Action: func(c *cli.Context) error {
		return noArgsAction(c, "revokePendingRoot")
	},
}

func noArgsAction(c *cli.Context, method string) error {
	a := args{c: c}
	urd := a.address(urdFlag.Name)
	if a.err != nil {
		return a.err
	}
	_, err := call(c, urd, distributor.Abi, method)
	return err
}

var setTimelockCommand = &cli.Command{
	Name:  "set-timelock",
	Usage: "Changes the timelock, owner only",
	Flags: txFlags(urdFlag, timelockFlag),
	Action: func(c *cli.Context) error {
		a := args{c: c}
		urd := a.address(urdFlag.Name)
		if a.err != nil {
			return a.err
		}
		_, err := call(c, urd, distributor.Abi, "setTimelock", new(big.Int).SetUint64(c.Uint64(timelockFlag.Name)))
		return err
	},
}

var setUpdaterCommand = &cli.Command{
	Name:  "set-updater",
	Usage: "Grants or revokes the updater role, owner only",
	Flags: txFlags(urdFlag,
		&cli.StringFlag{Name: "updater", Required: true},
		&cli.BoolFlag{Name: "active", Value: true},
	),
	Action: func(c *cli.Context) error {
		a := args{c: c}
		urd, updater := a.address(urdFlag.Name), a.address("updater")
		if a.err != nil {
			return a.err
		}
		_, err := call(c, urd, distributor.Abi, "setRootUpdater", updater, c.Bool("active"))
		return err
	},
}

var setOwnerCommand = &cli.Command{
	Name:  "set-owner",
	Usage: "Transfers the ownership, owner only",
	Flags: txFlags(urdFlag, &cli.StringFlag{Name: "new-owner", Required: true}),
	Action: func(c *cli.Context) error {
		a := args{c: c}
		urd, new_owner := a.address(urdFlag.Name), a.address("new-owner")
		if a.err != nil {
			return a.err
		}
		_, err := call(c, urd, distributor.Abi, "setOwner", new_owner)
		return err
	},
}

var claimCommand = &cli.Command{
	Name:  "claim",
	Usage: "Pays the account what it has not claimed yet of its cumulative reward, prints the amount",
	Flags: txFlags(urdFlag,
		&cli.StringFlag{Name: "account", Required: true},
		&cli.StringFlag{Name: "reward", Usage: "reward token address", Required: true},
		&cli.StringFlag{Name: "claimable", Usage: "cumulative amount of the leaf", Required: true},
		&cli.StringSliceFlag{Name: "proof", Usage: "sibling hashes from the leaf up"},
	),
	Action: func(c *cli.Context) error {
		a := args{c: c}
		urd, account, reward := a.address(urdFlag.Name), a.address("account"), a.address("reward")
		claimable, proof := a.amount("claimable"), a.hashes("proof")
		if a.err != nil {
			return a.err
		}
		ret, err := call(c, urd, distributor.Abi, "claim", account, reward, claimable, proof)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.App.Writer, ret[0].(*big.Int))
		return nil
	},
}

var transferCommand = &cli.Command{
	Name:  "transfer",
	Usage: "Sends tokens, e.g. to fund a distributor",
	Flags: txFlags(tokenFlag,
		&cli.StringFlag{Name: "to", Required: true},
		&cli.StringFlag{Name: "amount", Required: true},
	),
	Action: func(c *cli.Context) error {
		a := args{c: c}
		token_addr, to, amount := a.address(tokenFlag.Name), a.address("to"), a.amount("amount")
		if a.err != nil {
			return a.err
		}
		_, err := call(c, token.ContractAddress(), token.Abi, "transfer", token_addr, to, amount)
		return err
	},
}

var showCommand = &cli.Command{
	Name:  "show",
	Usage: "Prints the committed state of a distributor",
	Flags: []cli.Flag{urdFlag},
	Action: func(c *cli.Context) error {
		a := args{c: c}
		urd := a.address(urdFlag.Name)
		if a.err != nil {
			return a.err
		}
		n, err := openNode(c)
		if err != nil {
			return err
		}
		defer n.Close()
		reader, ok := n.api.DistributorReader(urd)
		if !ok {
			return fmt.Errorf("%s is not a distributor", urd.Hex())
		}
		w := c.App.Writer
		fmt.Fprintln(w, "owner:", reader.Owner().Hex())
		fmt.Fprintln(w, "timelock:", reader.Timelock())
		fmt.Fprintln(w, "root:", reader.Root().Hex())
		fmt.Fprintln(w, "ipfs_hash:", reader.IpfsHash().Hex())
		if pending := reader.PendingRoot(); pending.Exists() {
			fmt.Fprintln(w, "pending_root:", pending.Root.Hex(), pending.IpfsHash.Hex(), pending.SubmittedAt)
		}
		for _, u := range reader.Updaters() {
			fmt.Fprintln(w, "updater:", u.Hex())
		}
		return nil
	},
}

var balanceCommand = &cli.Command{
	Name:  "balance",
	Usage: "Prints a token balance",
	Flags: []cli.Flag{tokenFlag, &cli.StringFlag{Name: "holder", Required: true}},
	Action: func(c *cli.Context) error {
		a := args{c: c}
		token_addr, holder := a.address(tokenFlag.Name), a.address("holder")
		if a.err != nil {
			return a.err
		}
		n, err := openNode(c)
		if err != nil {
			return err
		}
		defer n.Close()
		fmt.Fprintln(c.App.Writer, n.api.TokenReader().BalanceOf(&token_addr, &holder).Dec())
		return nil
	},
}

// Sends a transaction calling method of the contract at to, returns the decoded outputs
func call(c *cli.Context, to common.Address, contract_abi abi.ABI, method string, call_args ...interface{}) ([]interface{}, error) {
	a := args{c: c}
	from := a.address(fromFlag.Name)
	if a.err != nil {
		return nil, a.err
	}
	input, err := contract_abi.Pack(method, call_args...)
	if err != nil {
		return nil, err
	}
	n, err := openNode(c)
	if err != nil {
		return nil, err
	}
	defer n.Close()
	res, err := n.execute(c, &vm.Transaction{From: from, To: &to, Input: input})
	if err != nil {
		return nil, err
	}
	return contract_abi.Methods[method].Outputs.Unpack(res.CodeRetval)
}
