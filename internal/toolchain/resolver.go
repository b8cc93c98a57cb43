package toolchain

import (
	"fmt"

	"github.com/AndreyAkinshin/selfbuild/internal/config"
)

// Resolve picks the toolchain for source from configuration.
//
// Precedence: an explicit compiler section, then a named preset, then
// detection by source extension, then DefaultName.
func Resolve(cfg *config.Config, source string) (*Toolchain, error) {
	if cfg != nil && cfg.Compiler != nil && cfg.Compiler.Program != "" {
		return fromCompilerConfig(cfg), nil
	}

	name := ""
	if cfg != nil {
		name = cfg.Toolchain
	}
	if name == "" {
		name = DetectOrDefault(source)
	}

	tc, ok := Get(name)
	if !ok {
		return nil, fmt.Errorf("unknown toolchain: %q", name)
	}
	return tc, nil
}

// fromCompilerConfig builds a custom toolchain. Missing args fall back to the
// single-file contract.
func fromCompilerConfig(cfg *config.Config) *Toolchain {
	cc := cfg.Compiler
	args := cc.Args
	if len(args) == 0 {
		args = singleFileArgs
	}
	return &Toolchain{
		Name:        "custom",
		Program:     cc.Program,
		Args:        args,
		InSourceDir: cc.InSourceDir,
		Env:         cc.Env,
	}
}
