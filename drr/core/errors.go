package core

import (
	"errors"
	"fmt"
)

// Kind classifies an [Error].
type Kind int

const (
	// KindUnknown is reported by [KindOf] for errors not produced by this module.
	KindUnknown Kind = iota
	// KindConfig marks invalid parameters. Returned before any work starts.
	KindConfig
	// KindShape marks inputs whose dimensions disagree.
	KindShape
	// KindNumerical marks a recoverable numerical condition.
	KindNumerical
)

// String returns a short name for the kind.
func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindShape:
		return "shape"
	case KindNumerical:
		return "numerical"
	default:
		return "unknown"
	}
}

// Sentinels matched by errors.Is against any [*Error] of the same kind.
var (
	ErrConfig    = errors.New("invalid configuration")
	ErrShape     = errors.New("dimension mismatch")
	ErrNumerical = errors.New("numerical failure")
)

// Error is the tagged error type returned by the rank-reduction packages.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// Is matches the kind sentinels.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrConfig:
		return e.Kind == KindConfig
	case ErrShape:
		return e.Kind == KindShape
	case ErrNumerical:
		return e.Kind == KindNumerical
	}
	return false
}

// Configf returns a [KindConfig] error for op.
func Configf(op, format string, args ...any) error {
	return &Error{Kind: KindConfig, Op: op, Err: fmt.Errorf(format, args...)}
}

// Shapef returns a [KindShape] error for op.
func Shapef(op, format string, args ...any) error {
	return &Error{Kind: KindShape, Op: op, Err: fmt.Errorf(format, args...)}
}

// Numericalf returns a [KindNumerical] error for op.
func Numericalf(op, format string, args ...any) error {
	return &Error{Kind: KindNumerical, Op: op, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the kind of the first [*Error] in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsConfig reports whether err is a configuration error.
func IsConfig(err error) bool { return errors.Is(err, ErrConfig) }

// IsShape reports whether err is a dimension-mismatch error.
func IsShape(err error) bool { return errors.Is(err, ErrShape) }
