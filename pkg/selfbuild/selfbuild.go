// Package selfbuild lets a single-file program rebuild itself when its source
// is newer than its executable.
//
// Call Me first thing in main:
//
//	func main() {
//		selfbuild.Me()
//		// ... the program proper
//	}
//
// When the executable is older than the source file that called Me, Me renames
// the executable to "<program>.old", compiles the source to the program path,
// runs the new executable with the same arguments and exits with its exit code.
// The backup is never removed. Unless the lock is turned off, "<program>.lock"
// is also created next to the executable and left in place.
// Every step is announced on standard output:
//
//	[INFO] renaming ./hello -> ./hello.old
//	[CMD] go build -o /home/me/hello /home/me/hello.go
//	[CMD] ./hello --name 'big world'
//
// The source path is the caller's file as recorded by the compiler. Binaries
// built with -trimpath record a module-relative path, which never exists on
// disk; such programs must pass WithSource.
package selfbuild

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rs/zerolog"

	"github.com/AndreyAkinshin/selfbuild/internal/config"
	"github.com/AndreyAkinshin/selfbuild/internal/errors"
	"github.com/AndreyAkinshin/selfbuild/internal/logging"
	"github.com/AndreyAkinshin/selfbuild/internal/output"
	"github.com/AndreyAkinshin/selfbuild/internal/toolchain"
)

// Option configures New and Me.
type Option func(*options)

type options struct {
	source       string
	configPath   string
	toolchain    string
	compiler     *Compiler
	lock         *bool
	replace      *bool
	backupSuffix string
	stdout       io.Writer
	stderr       io.Writer
	logger       *zerolog.Logger
}

// WithSource overrides the source path recorded for the caller.
func WithSource(path string) Option {
	return func(o *options) { o.source = path }
}

// WithConfigFile loads configuration from path instead of searching for a
// selfbuild.{yaml,yml,toml,json} upwards from the source directory.
func WithConfigFile(path string) Option {
	return func(o *options) { o.configPath = path }
}

// WithToolchain selects a built-in compiler preset by name.
func WithToolchain(name string) Option {
	return func(o *options) { o.toolchain = name }
}

// WithCompiler sets the compiler invocation explicitly.
func WithCompiler(c Compiler) Option {
	return func(o *options) { o.compiler = &c }
}

// WithLock turns the cross-process rebuild lock on or off.
func WithLock(on bool) Option {
	return func(o *options) { o.lock = &on }
}

// WithReplaceProcess relaunches through execve instead of spawn-and-wait.
func WithReplaceProcess(on bool) Option {
	return func(o *options) { o.replace = &on }
}

// WithBackupSuffix changes the ".old" suffix of the kept executable.
func WithBackupSuffix(suffix string) Option {
	return func(o *options) { o.backupSuffix = suffix }
}

// WithStdout redirects the [INFO] and [CMD] lines.
func WithStdout(w io.Writer) Option {
	return func(o *options) { o.stdout = w }
}

// WithStderr redirects fatal diagnostics and the default logger.
func WithStderr(w io.Writer) Option {
	return func(o *options) { o.stderr = w }
}

// WithLogger replaces the logger built from configuration.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = &l }
}

func collect(opts []Option) options {
	o := options{stdout: os.Stdout, stderr: os.Stderr}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// exit is replaced in tests.
var exit = os.Exit

// Me rebuilds and relaunches the calling program if its source is newer than
// its executable. It returns only when no rebuild was needed; otherwise it
// exits with the relaunched program's exit code, the compiler's exit code on
// a failed build, or an ExitXxx code when the rebuild machinery fails.
func Me(opts ...Option) {
	_, source, _, _ := runtime.Caller(1)
	o := collect(opts)

	outcome, err := run(os.Args, source, opts)
	if err != nil {
		output.NewWithWriters(o.stdout, o.stderr, false).Error("%v", err)
		exit(errors.GetExitCode(err))
		return
	}
	if outcome.Exit() {
		exit(outcome.ExitCode)
	}
}

// run checks staleness before touching configuration, so a fresh program
// returns even when its config or environment is broken.
func run(argv []string, source string, opts []Option) (Outcome, error) {
	if o := collect(opts); o.source != "" {
		source = o.source
	}
	if len(argv) > 0 && argv[0] != "" && source != "" {
		if program, err := ResolveProgram(argv[0]); err == nil {
			if d := Check(program, source); !d.Stale() {
				return Outcome{Decision: d}, nil
			}
		}
	}

	p, err := New(argv, source, opts...)
	if err != nil {
		return Outcome{}, err
	}
	return p.Run(context.Background())
}

// New builds a Protocol for the program invoked as argv[0], built from source.
// argv[1:] become the relaunch arguments. Configuration is read from the file
// given by WithConfigFile, or the nearest selfbuild config above the source,
// then environment overrides, then options.
func New(argv []string, source string, opts ...Option) (*Protocol, error) {
	o := collect(opts)

	if len(argv) == 0 || argv[0] == "" {
		return nil, errors.Environment("cannot rebuild self due to lack of program path")
	}
	program, err := ResolveProgram(argv[0])
	if err != nil {
		return nil, &errors.SelfbuildError{
			Kind:    errors.KindEnvironment,
			Message: "cannot resolve own program path",
			Path:    argv[0],
			Cause:   err,
		}
	}

	if o.source != "" {
		source = o.source
	}
	if source == "" {
		return nil, errors.Environment("cannot rebuild self: source path unknown")
	}

	cfg, warnings, err := loadConfig(o, source)
	if err != nil {
		return nil, err
	}

	logger := logging.New(o.stderr, cfg.LogLevel())
	if o.logger != nil {
		logger = *o.logger
	}
	for _, w := range warnings {
		logger.Warn().Msg(w)
	}

	compiler, err := resolveCompiler(o, cfg, source)
	if err != nil {
		return nil, err
	}

	args := make([]string, len(argv)-1)
	copy(args, argv[1:])

	return &Protocol{
		Program:        program,
		Source:         source,
		Args:           args,
		Compiler:       compiler,
		BackupSuffix:   cfg.BackupSuffix,
		Lock:           cfg.LockEnabled(),
		ReplaceProcess: cfg.ReplaceProcess,
		Runner:         &ExecRunner{Trace: o.stdout},
		Stdout:         o.stdout,
		Logger:         &logger,
	}, nil
}

func loadConfig(o options, source string) (*config.Config, []string, error) {
	var (
		cfg      *config.Config
		warnings []string
		err      error
	)
	if o.configPath != "" {
		cfg, warnings, err = config.Load(o.configPath)
	} else {
		cfg, warnings, err = config.LoadFrom(filepath.Dir(source))
	}
	if err != nil {
		return nil, nil, errors.ConfigWrap(err, "invalid configuration")
	}
	if err := config.ApplyEnv(cfg); err != nil {
		return nil, nil, errors.ConfigWrap(err, "invalid environment")
	}

	if o.toolchain != "" {
		cfg.Toolchain = o.toolchain
		cfg.Compiler = nil
	}
	if o.lock != nil {
		cfg.Lock = o.lock
	}
	if o.replace != nil {
		cfg.ReplaceProcess = *o.replace
	}
	if o.backupSuffix != "" {
		cfg.BackupSuffix = o.backupSuffix
	}
	if err := config.Validate(cfg); err != nil {
		return nil, nil, errors.ConfigWrap(err, "invalid configuration")
	}
	return cfg, warnings, nil
}

func resolveCompiler(o options, cfg *config.Config, source string) (Compiler, error) {
	var c Compiler
	if o.compiler != nil {
		c = *o.compiler
	} else {
		tc, err := toolchain.Resolve(cfg, source)
		if err != nil {
			return Compiler{}, errors.ConfigWrap(err, "invalid compiler")
		}
		c = compilerFrom(tc)
	}

	if c.Program == "" {
		return Compiler{}, errors.Config("compiler program is empty")
	}
	if c.Args != nil && !toolchain.MentionsOutput(c.Args) {
		return Compiler{}, errors.Configf("compiler arguments must contain %s", toolchain.OutputPlaceholder)
	}
	return c, nil
}

// ResolveProgram turns argv[0] into a path usable for stat, rename and exec.
// A value containing a path separator is used as-is. A bare name is looked up
// on PATH, falling back to os.Executable.
func ResolveProgram(argv0 string) (string, error) {
	if argv0 == "" {
		return "", errors.Environment("empty program path")
	}
	if strings.ContainsRune(argv0, '/') || strings.ContainsRune(argv0, filepath.Separator) {
		return argv0, nil
	}
	if path, err := exec.LookPath(argv0); err == nil {
		return path, nil
	}
	return os.Executable()
}
