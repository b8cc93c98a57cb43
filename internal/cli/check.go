package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AndreyAkinshin/selfbuild/pkg/selfbuild"
)

func newCheckCmd() *cobra.Command {
	var exitCode bool
	cmd := &cobra.Command{
		Use:   "check <target> <source>",
		Short: "Report whether target must be rebuilt from source",
		Long: `Compares modification times of target and source.

Target is stale when either file cannot be stat'ed or when target is strictly
older than source. Equal timestamps count as fresh.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := selfbuild.Check(args[0], args[1])
			if !d.Stale() {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "fresh")
				return err
			}
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "stale (%s)\n", d.Reason); err != nil {
				return err
			}
			if exitCode {
				return childExit(selfbuild.ExitFailure)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&exitCode, "exit-code", false, "exit with 1 when target is stale")
	return cmd
}
