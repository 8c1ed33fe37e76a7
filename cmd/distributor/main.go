package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "distributor",
		Usage: "timelocked merkle rewards distributor",
		Flags: []cli.Flag{configFlag},
		Commands: []*cli.Command{
			initCommand,
			createCommand,
			submitRootCommand,
			acceptRootCommand,
			setRootCommand,
			revokePendingRootCommand,
			setTimelockCommand,
			setUpdaterCommand,
			setOwnerCommand,
			claimCommand,
			transferCommand,
			showCommand,
			balanceCommand,
		},
	}
}
