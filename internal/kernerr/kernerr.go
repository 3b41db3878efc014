// Package kernerr defines the sentinel error kinds a kernel handler can
// produce. Every supervisor call still signals failure
// to its caller only through its register-0 return value; these
// sentinels exist for internal diagnostics (klog) and tests, not for a
// global errno.
package kernerr

import "github.com/pkg/errors"

// Resource exhaustion.
var (
	ErrProcTableFull = errors.New("process table full")
	ErrFDTableFull   = errors.New("open-file table full")
	ErrNoFDSlot      = errors.New("no free descriptor slot")
)

// Malformed argument.
var (
	ErrBadFD    = errors.New("out-of-range file descriptor")
	ErrNegFD    = errors.New("negative file descriptor")
	ErrNotOwner = errors.New("descriptor not owned by this process")
	ErrBadPID   = errors.New("out-of-range process id")
	ErrNotPipe  = errors.New("file descriptor does not refer to a pipe")
)

// Wrap annotates err with msg, preserving the original sentinel as the
// wrapped cause so errors.Is/errors.Cause still find it.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, msg)
}

// Wrapf is Wrap with Printf-style formatting.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(err, format, args...)
}

// Cause unwraps err to its deepest wrapped cause, mirroring the
// sentinel comparison callers use to classify a failure.
func Cause(err error) error {
	return errors.Cause(err)
}
