package setup

import (
	"github.com/spf13/cobra"

	"github.com/trustchain/trustchain/tools/trustchain-cli/cli/config"
	"github.com/trustchain/trustchain/tools/trustchain-cli/log"
)

func Init(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().StringVarP(&config.ConfigPath, "config", "c", "trustchain-cli.json", "path to trustchain-cli.json")
	rootCmd.PersistentFlags().BoolVarP(&log.VerboseFlag, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&log.JSONFlag, "json", false, "print results as JSON")

	rootCmd.AddCommand(initConfigSetCmd())
}

func initConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			config.Set(args[0], args[1])
		},
	}
}
