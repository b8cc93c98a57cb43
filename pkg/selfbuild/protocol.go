package selfbuild

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/AndreyAkinshin/selfbuild/internal/errors"
	"github.com/AndreyAkinshin/selfbuild/internal/logging"
	"github.com/AndreyAkinshin/selfbuild/internal/output"
)

// DefaultBackupSuffix names the copy of the old executable kept after a rebuild.
const DefaultBackupSuffix = ".old"

// State is the terminal state of one protocol run.
type State int

const (
	// StateFresh means no rebuild was needed and the host continues normally.
	StateFresh State = iota
	// StateCompileFailed means the compiler failed; ExitCode is its exit code.
	StateCompileFailed
	// StateRelaunched means the rebuilt program ran; ExitCode is its exit code.
	StateRelaunched
)

func (s State) String() string {
	switch s {
	case StateCompileFailed:
		return "compile failed"
	case StateRelaunched:
		return "relaunched"
	default:
		return "fresh"
	}
}

// Outcome reports how a protocol run ended.
type Outcome struct {
	State    State
	Decision Decision
	ExitCode int // set unless State is StateFresh
}

// Exit reports whether the host should terminate with ExitCode.
func (o Outcome) Exit() bool {
	return o.State != StateFresh
}

// Protocol rebuilds and relaunches a program whose source is newer than its
// executable.
//
// Run is a strict sequence: check, rename the executable to Program+BackupSuffix,
// compile Source to Program, relaunch Program with Args. A failed rename aborts
// before anything is compiled. A failed compile leaves no executable at Program;
// the backup is kept and never restored.
type Protocol struct {
	// Program is the executable path. It should contain a path separator,
	// otherwise the relaunch is resolved through PATH (see ResolveProgram).
	Program string
	Source  string
	Args    []string // forwarded to the relaunched program unchanged

	Compiler     Compiler
	BackupSuffix string // DefaultBackupSuffix when empty

	// Lock serialises concurrent rebuilds of the same program through a
	// Program+LockSuffix file lock. The staleness check is repeated once the
	// lock is held; an instance that finds the rebuild already done relaunches
	// the new executable without compiling. The lock is released before any
	// relaunch.
	Lock bool

	// ReplaceProcess relaunches with execve instead of spawn-and-wait where
	// the platform supports it.
	ReplaceProcess bool

	Runner Runner          // &ExecRunner{Trace: Stdout} when nil
	Stdout io.Writer       // [INFO] and [CMD] lines; os.Stdout when nil
	Logger *zerolog.Logger // diagnostics; discarded when nil

	replace func(argv0 string, argv, env []string) error
}

// Run executes the protocol once. It never exits the process: terminal states
// are reported through Outcome, machinery failures as *errors.SelfbuildError
// carrying the exit code to use.
func (p *Protocol) Run(ctx context.Context) (Outcome, error) {
	log := p.logger()

	if p.Program == "" {
		return Outcome{}, errors.Environment("cannot rebuild self due to lack of program path")
	}
	if p.Source == "" {
		return Outcome{}, errors.Environment("cannot rebuild self: source path unknown")
	}

	d := Check(p.Program, p.Source)
	logDecision(log, p, d)
	if !d.Stale() {
		return Outcome{Decision: d}, nil
	}

	out := output.NewWithWriters(p.stdout(), io.Discard, false)
	runner := p.runner()

	var lk *rebuildLock
	if p.Lock {
		lockPath := p.Program + LockSuffix
		var err error
		lk, err = acquireLock(lockPath)
		if err != nil {
			return Outcome{Decision: d}, errors.Lock(lockPath, err)
		}
		defer func() { _ = lk.release() }()
		log.Debug().Str("lock", lockPath).Msg("rebuild lock acquired")

		// Another instance may have finished the rebuild while we waited. This
		// process still runs the old image, so it hands over to the new one.
		d = Check(p.Program, p.Source)
		if !d.Stale() {
			log.Debug().Str("program", p.Program).Msg("rebuilt by another instance")
			if err := lk.release(); err != nil {
				return Outcome{Decision: d}, errors.Lock(lockPath, err)
			}
			return p.relaunch(ctx, out, runner, d)
		}
	}

	backup := p.Program + p.backupSuffix()
	if err := out.Info("renaming %s -> %s", p.Program, backup); err != nil {
		return Outcome{Decision: d}, errors.Trace(err)
	}
	if err := os.Rename(p.Program, backup); err != nil {
		return Outcome{Decision: d}, errors.Filesystem(p.Program, "cannot move old self", err)
	}

	inv, err := p.Compiler.Invocation(p.Source, p.Program)
	if err != nil {
		return Outcome{Decision: d}, errors.Wrap(err, "cannot prepare compiler invocation")
	}
	log.Debug().Str("compiler", inv.Program).Strs("args", inv.Args).Str("dir", inv.Dir).Msg("compiling")

	st, err := runner.Run(ctx, inv)
	if err != nil {
		return Outcome{Decision: d}, errors.Launch(inv.Program, err)
	}

	// The relaunched program runs this protocol itself and must be able to
	// take the lock.
	if err := lk.release(); err != nil {
		return Outcome{Decision: d}, errors.Lock(p.Program+LockSuffix, err)
	}

	if !st.Success() {
		log.Debug().Int("code", st.ExitCode()).Msg("compile failed")
		return Outcome{State: StateCompileFailed, Decision: d, ExitCode: st.ExitCode()}, nil
	}
	return p.relaunch(ctx, out, runner, d)
}

// relaunch runs Program with Args, replacing this process when configured.
func (p *Protocol) relaunch(ctx context.Context, out *output.Writer, runner Runner, d Decision) (Outcome, error) {
	log := p.logger()
	if p.ReplaceProcess && canReplaceProcess {
		if err := out.Command(p.Program, p.Args); err != nil {
			return Outcome{Decision: d}, errors.Trace(err)
		}
		argv := append([]string{p.Program}, p.Args...)
		if err := p.replaceFunc()(p.Program, argv, os.Environ()); err != nil {
			return Outcome{Decision: d}, errors.Launch(p.Program, err)
		}
		return Outcome{State: StateRelaunched, Decision: d}, nil
	}

	st, err := runner.Run(ctx, Invocation{Program: p.Program, Args: p.Args})
	if err != nil {
		return Outcome{Decision: d}, errors.Launch(p.Program, err)
	}
	log.Debug().Int("code", st.ExitCode()).Msg("relaunched program finished")
	return Outcome{State: StateRelaunched, Decision: d, ExitCode: st.ExitCode()}, nil
}

func logDecision(log *zerolog.Logger, p *Protocol, d Decision) {
	ev := log.Debug().
		Str("program", p.Program).
		Str("source", p.Source).
		Stringer("reason", d.Reason)
	if !d.TargetTime.IsZero() {
		ev = ev.Time("program_mtime", d.TargetTime)
	}
	if !d.SourceTime.IsZero() {
		ev = ev.Time("source_mtime", d.SourceTime)
	}
	if d.Err != nil {
		ev = ev.Err(d.Err)
	}
	ev.Bool("stale", d.Stale()).Msg("staleness check")
}

func (p *Protocol) logger() *zerolog.Logger {
	if p.Logger == nil {
		nop := logging.Nop()
		return &nop
	}
	return p.Logger
}

func (p *Protocol) stdout() io.Writer {
	if p.Stdout == nil {
		return os.Stdout
	}
	return p.Stdout
}

func (p *Protocol) runner() Runner {
	if p.Runner == nil {
		return &ExecRunner{Trace: p.stdout()}
	}
	return p.Runner
}

func (p *Protocol) backupSuffix() string {
	if p.BackupSuffix == "" {
		return DefaultBackupSuffix
	}
	return p.BackupSuffix
}

func (p *Protocol) replaceFunc() func(string, []string, []string) error {
	if p.replace == nil {
		return replaceProcess
	}
	return p.replace
}
