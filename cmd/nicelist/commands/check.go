package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/santalabs/nicelist/pkg/classifier"
)

func newCheckCommand() *cobra.Command {
	var seed uint64

	cmd := &cobra.Command{
		Use:   "check <name>",
		Short: "Classify a single subject without starting the server",
		Long: `Run one classification locally and print the verdict sentence.

Useful as a smoke test for the classification logic. No metrics are
emitted; only the HTTP server records instrumentation.`,
		Example: `  # One-off classification
  nicelist check Alice

  # Deterministic verdict for scripting
  nicelist check Alice --seed 42`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			cls := classifier.New()
			if cmd.Flags().Changed("seed") {
				cls = classifier.NewSeeded(seed)
			}

			fmt.Fprintln(cmd.OutOrStdout(), classifier.Sentence(name, cls.Classify(name)))
			return nil
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed the verdict source for a deterministic result")

	return cmd
}
