package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AndreyAkinshin/selfbuild/pkg/shquote"
)

func newQuoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quote [args...]",
		Short: "Print arguments quoted for a POSIX shell",
		Long: `Prints every argument in a form a POSIX shell reads back as the same word,
separated by single spaces. Flags are not interpreted.`,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), shquote.Join(args))
			return err
		},
	}
}
