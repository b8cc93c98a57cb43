package cli

import (
	"github.com/spf13/cobra"

	"github.com/AndreyAkinshin/selfbuild/internal/errors"
	"github.com/AndreyAkinshin/selfbuild/pkg/selfbuild"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run -- <program> [args...]",
		Short: "Trace and run a command, exiting with its exit code",
		Long: `Prints "[CMD] <program> <args>" with every word shell-quoted, then runs the
command with inherited standard streams and exits with its exit code.
A command killed by a signal exits with -1.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := &selfbuild.ExecRunner{
				Trace:  cmd.OutOrStdout(),
				Stdin:  cmd.InOrStdin(),
				Stdout: cmd.OutOrStdout(),
				Stderr: cmd.ErrOrStderr(),
			}
			st, err := r.Run(cmd.Context(), selfbuild.Invocation{Program: args[0], Args: args[1:]})
			if err != nil {
				return errors.Launch(args[0], err)
			}
			if !st.Success() {
				return childExit(st.ExitCode())
			}
			return nil
		},
	}
	cmd.Flags().SetInterspersed(false)
	return cmd
}
