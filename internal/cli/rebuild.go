package cli

import (
	"github.com/spf13/cobra"

	"github.com/AndreyAkinshin/selfbuild/internal/errors"
	"github.com/AndreyAkinshin/selfbuild/pkg/selfbuild"
)

type rebuildOptions struct {
	source       string
	toolchain    string
	configPath   string
	backupSuffix string
	noLock       bool
	replace      bool
}

func newRebuildCmd() *cobra.Command {
	var opts rebuildOptions
	cmd := &cobra.Command{
		Use:   "rebuild --source <file> -- <program> [args...]",
		Short: "Rebuild a program from its source when stale, then run it",
		Long: `Runs the self-rebuild protocol on behalf of <program>.

When <program> is older than its source it is renamed to <program>.old, the
source is compiled to <program> and the new executable is run with [args...].
The exit code is the program's, or the compiler's when compilation fails.
Nothing is run when <program> is up to date.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRebuild(cmd, args, opts)
		},
	}
	cmd.Flags().StringVar(&opts.source, "source", "", "source file the program is built from")
	cmd.Flags().StringVar(&opts.toolchain, "toolchain", "", "compiler preset (see 'selfbuild toolchains')")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "config file (default: searched upwards from the source)")
	cmd.Flags().StringVar(&opts.backupSuffix, "backup-suffix", "", "suffix of the kept old executable (default .old)")
	cmd.Flags().BoolVar(&opts.noLock, "no-lock", false, "do not serialise concurrent rebuilds")
	cmd.Flags().BoolVar(&opts.replace, "replace", false, "replace this process with the rebuilt program")
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func runRebuild(cmd *cobra.Command, args []string, opts rebuildOptions) error {
	if opts.source == "" {
		return errors.Config("rebuild: --source is required")
	}
	options := []selfbuild.Option{
		selfbuild.WithStdout(cmd.OutOrStdout()),
		selfbuild.WithStderr(cmd.ErrOrStderr()),
	}
	if opts.toolchain != "" {
		options = append(options, selfbuild.WithToolchain(opts.toolchain))
	}
	if opts.configPath != "" {
		options = append(options, selfbuild.WithConfigFile(opts.configPath))
	}
	if opts.backupSuffix != "" {
		options = append(options, selfbuild.WithBackupSuffix(opts.backupSuffix))
	}
	if opts.noLock {
		options = append(options, selfbuild.WithLock(false))
	}
	if opts.replace {
		options = append(options, selfbuild.WithReplaceProcess(true))
	}

	p, err := selfbuild.New(args, opts.source, options...)
	if err != nil {
		return err
	}
	outcome, err := p.Run(cmd.Context())
	if err != nil {
		return err
	}
	if outcome.Exit() && outcome.ExitCode != selfbuild.ExitSuccess {
		return childExit(outcome.ExitCode)
	}
	return nil
}
