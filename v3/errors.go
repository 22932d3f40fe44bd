package v3

import "fmt"

// Kind classifies a v3.Error per spec.md §7's error taxonomy.
type Kind int

const (
	// InputShape: snapshot missing a required sub-object (rst, player.raceid). Fatal.
	InputShape Kind = iota
	// FormatMismatch: a client v3 file on disk has unexpected size. Fatal.
	FormatMismatch
	// Residual: flow ledger has non-zero counters after pack. Non-fatal.
	Residual
	// Template: a template spec file is missing. Non-fatal, degraded output.
	Template
	// Semantics: build-order/primary-enemy/transfer+unload conflicts. Non-fatal, clamped.
	Semantics
	// IO: file open/read/write failure. Fatal at the point of occurrence.
	IO
)

func (k Kind) String() string {
	switch k {
	case InputShape:
		return "InputShape"
	case FormatMismatch:
		return "FormatMismatch"
	case Residual:
		return "Residual"
	case Template:
		return "Template"
	case Semantics:
		return "Semantics"
	case IO:
		return "IO"
	default:
		return "Unknown"
	}
}

// Fatal reports whether errors of this kind must abort the pipeline, per
// spec.md §7 ("The core recovers Residual/Template/Semantics locally and
// continues. Everything else propagates to the caller...").
func (k Kind) Fatal() bool {
	switch k {
	case Residual, Template, Semantics:
		return false
	default:
		return true
	}
}

// Error is the single error type the core returns or collects. Non-fatal
// kinds are accumulated into PackResult/MaketurnResult.Warnings rather than
// returned; fatal kinds are returned (optionally wrapping an underlying
// cause) and propagate to the caller.
type Error struct {
	Kind   Kind
	Reason string
	Cause  error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Reason, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is lets errors.Is(err, v3.Sentinel(v3.InputShape)) match any *Error of
// the same Kind; targets that are not *Error never match.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

func newErr(k Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: k, Reason: fmt.Sprintf(format, args...), Cause: cause}
}

// Sentinel is used in errors.Is(err, v3.Sentinel(v3.InputShape)) checks.
func Sentinel(k Kind) error { return &Error{Kind: k} }
