package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/AndreyAkinshin/selfbuild/internal/config"
	"github.com/AndreyAkinshin/selfbuild/internal/errors"
	"github.com/AndreyAkinshin/selfbuild/internal/output"
	"github.com/AndreyAkinshin/selfbuild/internal/toolchain"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}
	cmd.AddCommand(newConfigValidateCmd())
	return cmd
}

func newConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a selfbuild config file",
		Long: `Loads the given config file, or the nearest selfbuild.{yaml,yml,toml,json}
above the current directory, and checks it against the schema. Unknown fields
are reported as warnings.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := output.NewWithWriters(cmd.OutOrStdout(), cmd.ErrOrStderr(), false)
			return validateConfig(w, args)
		},
	}
}

func validateConfig(w *output.Writer, args []string) error {
	var path string
	if len(args) == 1 {
		path = args[0]
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return errors.Environment("cannot determine working directory")
		}
		path, err = config.Discover(wd)
		if err != nil {
			return errors.ConfigWrap(err, "no config file")
		}
	}

	cfg, warnings, err := config.Load(path)
	for _, msg := range warnings {
		w.Warning("%s", msg)
	}
	if err != nil {
		return &errors.SelfbuildError{Kind: errors.KindConfig, Message: "invalid config", Path: path, Cause: err}
	}
	if cfg.Toolchain != "" && !toolchain.IsBuiltin(cfg.Toolchain) {
		return errors.Configf("%s: unknown toolchain %q", path, cfg.Toolchain)
	}

	w.Println("Configuration is valid: %s", path)
	if len(warnings) > 0 {
		w.Println("Warnings: %d", len(warnings))
	}
	return nil
}
