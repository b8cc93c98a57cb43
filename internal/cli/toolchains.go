package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/AndreyAkinshin/selfbuild/internal/output"
	"github.com/AndreyAkinshin/selfbuild/internal/toolchain"
)

var toolchainColumns = []string{"name", "program", "arguments", "extensions"}

func newToolchainsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toolchains",
		Short: "List built-in compiler presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := output.NewWithWriters(cmd.OutOrStdout(), cmd.ErrOrStderr(), false)
			printToolchains(w)
			return nil
		},
	}
}

func printToolchains(w *output.Writer) {
	titleCase := cases.Title(language.English)
	headers := make([]string, len(toolchainColumns))
	for i, c := range toolchainColumns {
		headers[i] = titleCase.String(c)
	}

	var rows [][]string
	for _, name := range toolchain.List() {
		tc, _ := toolchain.Get(name)
		args := strings.Join(tc.Args, " ")
		if tc.InSourceDir {
			args += " (in source dir)"
		}
		exts := strings.Join(tc.Extensions, " ")
		if name == toolchain.DefaultName {
			exts = strings.TrimSpace(exts + " (default)")
		}
		rows = append(rows, []string{tc.Name, tc.Program, args, exts})
	}
	w.Table(headers, rows)
}
