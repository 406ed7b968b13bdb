package node

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/trustchain/trustchain/tools/trustchain-cli/chip"
	"github.com/trustchain/trustchain/tools/trustchain-cli/cli/cliclients"
	"github.com/trustchain/trustchain/tools/trustchain-cli/cli/config"
	"github.com/trustchain/trustchain/tools/trustchain-cli/log"
)

const requestTimeout = 30 * time.Second

func Init(rootCmd *cobra.Command) {
	rootCmd.AddCommand(initLoginCmd())
	rootCmd.AddCommand(initHealthCmd())
	rootCmd.AddCommand(initProductCmd())
	rootCmd.AddCommand(initBoxCmd())
	rootCmd.AddCommand(initStatsCmd())
	rootCmd.AddCommand(initCheckSealCmd())
	rootCmd.AddCommand(initAuthenticateCmd())
}

func withTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

func initLoginCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login <role> <id>",
		Short: "Log in to the node and store the token in the config",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			if password == "" {
				log.Fatal("--password is required")
			}

			ctx, cancel := withTimeout()
			defer cancel()

			res, err := cliclients.NodeClient().Login(ctx, args[0], args[1], password)
			log.Check(err)

			config.SetToken(res.Token)
			log.Printf("logged in as %s (%s)\n", args[1], res.Role)
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "the password")
	return cmd
}

func initHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Show whether the node and its ledger are up",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			ctx, cancel := withTimeout()
			defer cancel()

			res, err := cliclients.NodeClient().Health(ctx)
			log.Check(err)

			if log.JSONFlag {
				log.PrintJSON(res)
				return
			}
			log.Printf("status: %s, ledger available: %t\n", res.Status, res.Ledger)
		},
	}
}

func initProductCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "product <productId>",
		Short: "Show a product",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx, cancel := withTimeout()
			defer cancel()

			p, err := cliclients.NodeClient().GetProduct(ctx, args[0])
			log.Check(err)

			log.PrintJSON(p)
		},
	}
}

func initBoxCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "box <boxId>",
		Short: "List the products of a box (retailer)",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx, cancel := withTimeout()
			defer cancel()

			box, err := cliclients.NodeClient().GetBox(ctx, args[0])
			log.Check(err)

			if log.JSONFlag {
				log.PrintJSON(box)
				return
			}

			rows := make([][]string, len(box.Products))
			for i, p := range box.Products {
				rows[i] = []string{p.ProductID, p.Name}
			}
			log.Printf("Total %d product(s) in box %s\n", box.Count, box.BoxID)
			log.PrintTable([]string{"productId", "name"}, rows)
		},
	}
}

func initStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the manufacturer dashboard counters",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			ctx, cancel := withTimeout()
			defer cancel()

			stats, err := cliclients.NodeClient().Stats(ctx)
			log.Check(err)

			log.PrintJSON(stats)
		},
	}
}

func initCheckSealCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-seal <productId> <code>",
		Short: "Let the node verify a scanned seal code (retailer)",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			ctx, cancel := withTimeout()
			defer cancel()

			res, err := cliclients.NodeClient().VerifySeal(ctx, args[0], args[1])
			log.Check(err)

			if log.JSONFlag {
				log.PrintJSON(res)
				return
			}
			log.Printf("%s\n", res.Message)
		},
	}
}

func initAuthenticateCmd() *cobra.Command {
	var secret string

	cmd := &cobra.Command{
		Use:   "authenticate <productId>",
		Short: "Run the NFC challenge-response against the node with an emulated chip",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			productID := args[0]
			emulator := chip.Emulator(secret)
			client := cliclients.NodeClient()

			ctx, cancel := withTimeout()
			defer cancel()

			challenge, err := client.RequestChallenge(ctx, productID)
			log.Check(err)
			log.Verbosef("challenge %s, expires in %ds\n", challenge.Challenge, challenge.ExpiresIn)

			response, err := emulator.Sign(productID, challenge.Challenge)
			log.Check(err)

			res, err := client.VerifyResponse(ctx, productID, response)
			log.Check(err)

			if log.JSONFlag {
				log.PrintJSON(res)
				return
			}
			log.Printf("%s (signer %s)\n", res.Message, res.Signer)
		},
	}

	cmd.Flags().StringVar(&secret, "secret", "", "nfc master secret (default: nfc.masterSecret from the config)")
	return cmd
}
