package selfbuild

// Exit codes used by Me and the selfbuild CLI when the rebuild machinery
// itself fails. A compiler or relaunched program's own exit code is passed
// through as-is, so these only tell operators which part went wrong.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitFailure indicates an unclassified runtime failure.
	ExitFailure = 1

	// ExitConfigError indicates an invalid configuration file or option.
	ExitConfigError = 2

	// ExitEnvError indicates the process could not determine its own path or source.
	ExitEnvError = 3

	// ExitRebuildError indicates a failed rename, lock, trace write or subprocess launch.
	ExitRebuildError = 4

	// ExitUnknown is reported when a subprocess ended without an exit code,
	// e.g. because it was killed by a signal.
	ExitUnknown = -1
)
