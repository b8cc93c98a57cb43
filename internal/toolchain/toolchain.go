// Package toolchain provides built-in compiler presets and argument templates.
package toolchain

import (
	"sort"
	"strings"
)

// Placeholders substituted into compiler argument templates.
const (
	SourcePlaceholder = "{source}"
	OutputPlaceholder = "{output}"
)

// Toolchain describes how to compile one source file into an executable.
type Toolchain struct {
	Name    string
	Program string
	// Args is a template; SourcePlaceholder and OutputPlaceholder are replaced
	// wherever they appear, including inside a larger argument.
	Args []string
	// InSourceDir runs the compiler from the source file's directory. The
	// output path is made absolute in that case.
	InSourceDir bool
	Env         map[string]string // extra environment for the compiler
	Extensions  []string
}

// singleFileArgs is the "compile this file to this path" contract shared by
// C compilers and rustc.
var singleFileArgs = []string{SourcePlaceholder, "-o", OutputPlaceholder}

var builtinToolchains = map[string]*Toolchain{
	"cc":    {Name: "cc", Program: "cc", Args: singleFileArgs, Extensions: []string{".c"}},
	"gcc":   {Name: "gcc", Program: "gcc", Args: singleFileArgs},
	"clang": {Name: "clang", Program: "clang", Args: singleFileArgs},
	"tcc":   {Name: "tcc", Program: "tcc", Args: singleFileArgs},
	"c++":   {Name: "c++", Program: "c++", Args: singleFileArgs, Extensions: []string{".cc", ".cpp", ".cxx"}},
	"rustc": {Name: "rustc", Program: "rustc", Args: singleFileArgs, Extensions: []string{".rs"}},
	"go": {
		Name:        "go",
		Program:     "go",
		Args:        []string{"build", "-o", OutputPlaceholder, SourcePlaceholder},
		InSourceDir: true,
		Extensions:  []string{".go"},
	},
}

// DefaultName is used when nothing is configured and detection finds nothing.
const DefaultName = "cc"

// Get retrieves a built-in toolchain by name.
func Get(name string) (*Toolchain, bool) {
	tc, ok := builtinToolchains[name]
	return tc, ok
}

// List returns the names of all built-in toolchains, sorted.
func List() []string {
	names := make([]string, 0, len(builtinToolchains))
	for name := range builtinToolchains {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsBuiltin checks if a toolchain name is a built-in toolchain.
func IsBuiltin(name string) bool {
	_, ok := builtinToolchains[name]
	return ok
}

// Expand substitutes source and output into an argument template.
func Expand(template []string, source, output string) []string {
	args := make([]string, len(template))
	for i, arg := range template {
		arg = strings.ReplaceAll(arg, SourcePlaceholder, source)
		args[i] = strings.ReplaceAll(arg, OutputPlaceholder, output)
	}
	return args
}

// MentionsOutput reports whether an argument template contains OutputPlaceholder.
// A template without it cannot produce the executable at the program path.
func MentionsOutput(template []string) bool {
	for _, arg := range template {
		if strings.Contains(arg, OutputPlaceholder) {
			return true
		}
	}
	return false
}
