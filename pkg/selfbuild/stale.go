package selfbuild

import (
	"os"
	"time"
)

// Reason explains a staleness decision.
type Reason int

const (
	// UpToDate means the target is at least as new as the source.
	UpToDate Reason = iota
	// TargetUnknown means the target could not be stat'ed (missing, unreadable, ...).
	TargetUnknown
	// SourceUnknown means the source could not be stat'ed.
	SourceUnknown
	// SourceNewer means the source was modified after the target.
	SourceNewer
)

func (r Reason) String() string {
	switch r {
	case TargetUnknown:
		return "target unknown"
	case SourceUnknown:
		return "source unknown"
	case SourceNewer:
		return "source newer"
	default:
		return "up to date"
	}
}

// Decision is the result of comparing a target with its source.
type Decision struct {
	Reason     Reason
	TargetTime time.Time // zero when the target could not be stat'ed
	SourceTime time.Time // zero when the source could not be stat'ed
	Err        error     // stat error behind TargetUnknown or SourceUnknown
}

// Stale reports whether the target must be rebuilt.
func (d Decision) Stale() bool {
	return d.Reason != UpToDate
}

// Check compares modification times of target and source.
//
// Any failure to stat either file counts as stale. Equal timestamps are not
// stale; only a target strictly older than its source is.
func Check(target, source string) Decision {
	ti, err := os.Stat(target)
	if err != nil {
		return Decision{Reason: TargetUnknown, Err: err}
	}

	si, err := os.Stat(source)
	if err != nil {
		return Decision{Reason: SourceUnknown, TargetTime: ti.ModTime(), Err: err}
	}

	d := Decision{TargetTime: ti.ModTime(), SourceTime: si.ModTime()}
	if d.TargetTime.Before(d.SourceTime) {
		d.Reason = SourceNewer
	}
	return d
}

// NeedsRebuild reports whether target is missing, unreadable, or older than source.
func NeedsRebuild(target, source string) bool {
	return Check(target, source).Stale()
}
