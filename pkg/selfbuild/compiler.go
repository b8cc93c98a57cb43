package selfbuild

import (
	"path/filepath"
	"sort"

	"github.com/AndreyAkinshin/selfbuild/internal/toolchain"
)

// Compiler describes the external command that turns the source file into
// the program executable.
type Compiler struct {
	Program string
	// Args is a template: "{source}" and "{output}" are replaced wherever they
	// appear. Nil means {source} -o {output}.
	Args []string
	Env  map[string]string
	// InSourceDir runs the compiler from the source directory, with the output
	// path made absolute.
	InSourceDir bool
}

// Toolchain returns the built-in compiler preset with the given name.
func Toolchain(name string) (Compiler, bool) {
	tc, ok := toolchain.Get(name)
	if !ok {
		return Compiler{}, false
	}
	return compilerFrom(tc), true
}

func compilerFrom(tc *toolchain.Toolchain) Compiler {
	return Compiler{
		Program:     tc.Program,
		Args:        tc.Args,
		Env:         tc.Env,
		InSourceDir: tc.InSourceDir,
	}
}

// Invocation returns the compiler invocation producing output from source.
func (c Compiler) Invocation(source, output string) (Invocation, error) {
	template := c.Args
	if template == nil {
		template = []string{toolchain.SourcePlaceholder, "-o", toolchain.OutputPlaceholder}
	}

	inv := Invocation{Program: c.Program}
	if c.InSourceDir {
		abs, err := filepath.Abs(output)
		if err != nil {
			return Invocation{}, err
		}
		output = abs
		inv.Dir = filepath.Dir(source)
	}
	inv.Args = toolchain.Expand(template, source, output)

	keys := make([]string, 0, len(c.Env))
	for k := range c.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		inv.Env = append(inv.Env, k+"="+c.Env[k])
	}
	return inv, nil
}
