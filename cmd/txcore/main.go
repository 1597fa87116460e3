// Command txcore drives the transaction execution pipeline against a JSON
// scenario file: a release, a prefunded account set, a block context, and an
// ordered list of transactions to apply.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

var (
	version = "v0.1.0-dev"
	commit  = "unknown"
)

func main() {
	app := &cli.App{
		Name:    "txcore",
		Usage:   "run transactions through the execution pipeline",
		Version: fmt.Sprintf("%s (%s)", version, commit),
		Commands: []*cli.Command{
			runCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "txcore: %v\n", err)
		os.Exit(1)
	}
}

var runCommand = &cli.Command{
	Name:      "run",
	Usage:     "apply every transaction in a scenario file against a fresh block",
	ArgsUsage: "<scenario.json>",
	Flags:     []cli.Flag{},
	Action: func(c *cli.Context) error {
		if c.NArg() != 1 {
			return cli.Exit("expected exactly one scenario file argument", 2)
		}
		s, err := loadScenario(c.Args().First())
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		if err := run(s); err != nil {
			return cli.Exit(err.Error(), 1)
		}
		return nil
	},
}
