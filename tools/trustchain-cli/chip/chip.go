package chip

import (
	"github.com/spf13/cobra"

	"github.com/trustchain/trustchain/packages/nfc"
	"github.com/trustchain/trustchain/tools/trustchain-cli/cli/config"
	"github.com/trustchain/trustchain/tools/trustchain-cli/log"
)

func Init(rootCmd *cobra.Command) {
	chipCmd := &cobra.Command{
		Use:   "chip <command>",
		Short: "Emulate product NFC chips",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			log.Check(cmd.Help())
		},
	}

	chipCmd.AddCommand(initAddressCmd())
	chipCmd.AddCommand(initSignCmd())
	rootCmd.AddCommand(chipCmd)
}

func withSecretFlag(cmd *cobra.Command, secret *string) {
	cmd.Flags().StringVar(secret, "secret", "", "nfc master secret (default: nfc.masterSecret from the config)")
}

// Emulator returns the emulator for secret, falling back to the configured one.
func Emulator(secret string) *nfc.Emulator {
	if secret == "" {
		secret = config.NFCMasterSecret()
	}
	if secret == "" {
		log.Fatal("no nfc master secret given, use --secret or `set nfc.masterSecret <secret>`")
	}

	emulator, err := nfc.NewEmulator([]byte(secret))
	log.Check(err)

	return emulator
}

func initAddressCmd() *cobra.Command {
	var secret string

	cmd := &cobra.Command{
		Use:   "address <productId>",
		Short: "Print the address of the product's chip",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			address, err := Emulator(secret).Address(args[0])
			log.Check(err)
			log.Printf("%s\n", address.Hex())
		},
	}

	withSecretFlag(cmd, &secret)
	return cmd
}

func initSignCmd() *cobra.Command {
	var secret string

	cmd := &cobra.Command{
		Use:   "sign <productId> <challenge>",
		Short: "Answer a challenge like the product's chip would",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			response, err := Emulator(secret).Sign(args[0], args[1])
			log.Check(err)
			log.Printf("%s\n", response)
		},
	}

	withSecretFlag(cmd, &secret)
	return cmd
}
