package seal

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/trustchain/trustchain/packages/seal"
	"github.com/trustchain/trustchain/tools/trustchain-cli/log"
)

func Init(rootCmd *cobra.Command) {
	sealCmd := &cobra.Command{
		Use:   "seal <command>",
		Short: "Generate and check dynamic seal codes locally",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			log.Check(cmd.Help())
		},
	}

	sealCmd.AddCommand(initGenerateCmd())
	sealCmd.AddCommand(initVerifyCmd())
	rootCmd.AddCommand(sealCmd)
}

func withVerifierFlags(cmd *cobra.Command, window *time.Duration, tolerance *int) {
	cmd.Flags().DurationVar(window, "window", seal.DefaultWindowLength, "length of a seal window")
	cmd.Flags().IntVar(tolerance, "tolerance", seal.DefaultTolerance, "accepted windows before and after the current one")
}

func initGenerateCmd() *cobra.Command {
	var window time.Duration
	var tolerance int

	cmd := &cobra.Command{
		Use:   "generate <productId> <seed>",
		Short: "Print the code a genuine seal displays right now",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			verifier := seal.NewVerifier(seal.WithWindowLength(window), seal.WithTolerance(tolerance))

			code, err := verifier.Generate(args[0], args[1])
			log.Check(err)

			if log.JSONFlag {
				log.PrintJSON(map[string]any{"code": code, "window": verifier.CurrentWindow()})
				return
			}
			log.Printf("%s\n", code)
			log.Verbosef("window %d\n", verifier.CurrentWindow())
		},
	}

	withVerifierFlags(cmd, &window, &tolerance)
	return cmd
}

func initVerifyCmd() *cobra.Command {
	var window time.Duration
	var tolerance int

	cmd := &cobra.Command{
		Use:   "verify <productId> <seed> <code>",
		Short: "Check a scanned seal code",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			verifier := seal.NewVerifier(seal.WithWindowLength(window), seal.WithTolerance(tolerance))

			result, err := verifier.Verify(args[0], args[1], args[2])
			log.Check(err)

			if log.JSONFlag {
				log.PrintJSON(map[string]any{"valid": result.Valid, "matchedWindow": result.MatchedWindow, "offset": result.Offset})
				return
			}
			log.Printf("%s\n", result.Message())
			if result.Valid {
				log.Verbosef("offset %d\n", result.Offset)
			}
		},
	}

	withVerifierFlags(cmd, &window, &tolerance)
	return cmd
}
