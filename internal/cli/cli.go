// Package cli provides the selfbuild command-line tool.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AndreyAkinshin/selfbuild/internal/errors"
	"github.com/AndreyAkinshin/selfbuild/internal/output"
)

// Version is set at build time.
var Version = "dev"

var out = output.New()

// childExit passes a subprocess exit code through cobra unchanged.
type childExit int

func (c childExit) Error() string {
	return fmt.Sprintf("exit status %d", int(c))
}

// Run executes the CLI with the given arguments and returns an exit code.
func Run(args []string) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(out.Out())
	root.SetErr(out.Err())

	err := root.ExecuteContext(context.Background())
	if err == nil {
		return errors.ExitSuccess
	}
	if code, ok := err.(childExit); ok {
		return int(code)
	}
	out.Error("%v", err)
	return errors.GetExitCode(err)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "selfbuild",
		Short:         "Rebuild programs whose source is newer than their executable",
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.SetVersionTemplate("selfbuild {{.Version}}\n")
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.ConfigWrap(err, cmd.CommandPath())
	})

	root.AddCommand(newCheckCmd())
	root.AddCommand(newQuoteCmd())
	root.AddCommand(newRunCmd())
	root.AddCommand(newRebuildCmd())
	root.AddCommand(newToolchainsCmd())
	root.AddCommand(newConfigCmd())
	root.AddCommand(newVersionCmd())

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "selfbuild %s\n", Version)
			return err
		},
	}
}
