// Package errors provides structured error types and exit codes for selfbuild.
package errors

import (
	"errors"
	"fmt"
)

// Exit codes used when the rebuild machinery itself fails. Codes propagated
// from a child process are passed through untouched and never come from here.
const (
	ExitSuccess          = 0  // Success
	ExitRuntimeError     = 1  // Runtime error (unclassified failure)
	ExitConfigError      = 2  // Configuration error (invalid config file, unknown toolchain, etc.)
	ExitEnvironmentError = 3  // Environment error (own program path or source path unknown)
	ExitRebuildError     = 4  // Rebuild machinery error (rename, lock, launch, trace write)
	ExitUnknown          = -1 // Child terminated without a determinable exit code
)

// ErrorKind represents the type of error.
type ErrorKind int

const (
	KindRuntime ErrorKind = iota
	KindConfig
	KindEnvironment
	KindFilesystem
	KindLock
	KindLaunch
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindEnvironment:
		return "environment"
	case KindFilesystem:
		return "filesystem"
	case KindLock:
		return "lock"
	case KindLaunch:
		return "launch"
	default:
		return "runtime"
	}
}

// SelfbuildError is the base error type for selfbuild.
type SelfbuildError struct {
	Kind    ErrorKind
	Message string
	Path    string // File the failure is about, if any
	Cause   error  // Underlying error
}

func (e *SelfbuildError) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Path)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *SelfbuildError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the appropriate exit code for this error.
func (e *SelfbuildError) ExitCode() int {
	switch e.Kind {
	case KindConfig:
		return ExitConfigError
	case KindEnvironment:
		return ExitEnvironmentError
	case KindFilesystem, KindLock, KindLaunch:
		return ExitRebuildError
	default:
		return ExitRuntimeError
	}
}

// Config creates a new configuration error.
func Config(message string) *SelfbuildError {
	return &SelfbuildError{
		Kind:    KindConfig,
		Message: message,
	}
}

// Configf creates a new configuration error with formatting.
func Configf(format string, args ...interface{}) *SelfbuildError {
	return Config(fmt.Sprintf(format, args...))
}

// ConfigWrap wraps a configuration loading or validation failure.
func ConfigWrap(err error, message string) *SelfbuildError {
	return &SelfbuildError{
		Kind:    KindConfig,
		Message: message,
		Cause:   err,
	}
}

// Environment creates an error for state the process cannot determine about itself.
func Environment(message string) *SelfbuildError {
	return &SelfbuildError{
		Kind:    KindEnvironment,
		Message: message,
	}
}

// Filesystem creates an error for a failed mutation of path.
func Filesystem(path, message string, cause error) *SelfbuildError {
	return &SelfbuildError{
		Kind:    KindFilesystem,
		Message: message,
		Path:    path,
		Cause:   cause,
	}
}

// Lock creates an error for a rebuild lock that could not be taken or released.
func Lock(path string, cause error) *SelfbuildError {
	return &SelfbuildError{
		Kind:    KindLock,
		Message: "cannot lock rebuild",
		Path:    path,
		Cause:   cause,
	}
}

// Launch creates an error for a subprocess that could not be traced or started.
func Launch(program string, cause error) *SelfbuildError {
	return &SelfbuildError{
		Kind:    KindLaunch,
		Message: "cannot launch",
		Path:    program,
		Cause:   cause,
	}
}

// Trace creates an error for an [INFO] or [CMD] line that could not be written.
func Trace(cause error) *SelfbuildError {
	return &SelfbuildError{
		Kind:    KindLaunch,
		Message: "cannot write trace",
		Cause:   cause,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) *SelfbuildError {
	return &SelfbuildError{
		Kind:    KindRuntime,
		Message: message,
		Cause:   err,
	}
}

// GetExitCode returns the exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var se *SelfbuildError
	if errors.As(err, &se) {
		return se.ExitCode()
	}
	return ExitRuntimeError
}
