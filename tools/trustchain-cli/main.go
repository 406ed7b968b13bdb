package main

import (
	"github.com/spf13/cobra"

	"github.com/trustchain/trustchain/components/app"
	"github.com/trustchain/trustchain/tools/trustchain-cli/chip"
	"github.com/trustchain/trustchain/tools/trustchain-cli/cli/config"
	"github.com/trustchain/trustchain/tools/trustchain-cli/cli/setup"
	"github.com/trustchain/trustchain/tools/trustchain-cli/log"
	"github.com/trustchain/trustchain/tools/trustchain-cli/node"
	"github.com/trustchain/trustchain/tools/trustchain-cli/seal"
)

func initRootCmd() *cobra.Command {
	return &cobra.Command{
		Version: app.Version,
		Use:     "trustchain-cli",
		Short:   "trustchain-cli is a command line tool for TrustChain nodes",
		Long: `trustchain-cli is a command line tool for TrustChain nodes.
It talks to the node REST API and reproduces dynamic seals and emulated chips locally.`,
		Args: cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.Read()
		},
		Run: func(cmd *cobra.Command, args []string) {
			log.Check(cmd.Help())
		},
	}
}

func main() {
	rootCmd := initRootCmd()
	setup.Init(rootCmd)
	seal.Init(rootCmd)
	chip.Init(rootCmd)
	node.Init(rootCmd)

	log.Check(rootCmd.Execute())
}
