package winproc

import (
	"errors"
	"fmt"
)

var (
	// ErrHandleClosed is returned by operations on a Process whose
	// handle has already been released.
	ErrHandleClosed = errors.New("process handle is closed")

	// ErrZeroLength is returned when a read or write is requested with a
	// zero-length buffer or a negative size. This is a caller bug, not
	// an OS failure.
	ErrZeroLength = errors.New("zero-length memory transfer")

	// ErrInvalidAddress is returned when an address does not fit in the
	// platform's pointer width.
	ErrInvalidAddress = errors.New("address not representable on this platform")
)

// ProcessNotFoundError indicates that no running process matched the
// requested executable name.
type ProcessNotFoundError struct {
	Name string
}

func (e ProcessNotFoundError) Error() string {
	return fmt.Sprintf("no process with name %q found", e.Name)
}

// SnapshotUnavailableError indicates that the system-wide process listing
// itself could not be obtained.
type SnapshotUnavailableError struct {
	Err error
}

func (e SnapshotUnavailableError) Error() string {
	return fmt.Sprintf("couldn't list system processes: %v", e.Err)
}

func (e SnapshotUnavailableError) Unwrap() error { return e.Err }

// ProcessExitedError indicates that the target process has exited since
// its handle was opened.
type ProcessExitedError struct {
	Pid    int
	Status int
}

func (e ProcessExitedError) Error() string {
	return fmt.Sprintf("process %d has exited with status %d", e.Pid, e.Status)
}

// AccessDeniedError indicates that the OS refused an operation, or that
// the handle was opened without the access right the operation needs.
type AccessDeniedError struct {
	Pid int
	Op  string
}

func (e AccessDeniedError) Error() string {
	return fmt.Sprintf("access denied: %s on process %d", e.Op, e.Pid)
}

// ShortTransferError indicates that a read or write moved fewer bytes
// than requested, typically because part of the range is unmapped or
// protected. Transferred is the number of bytes actually moved.
type ShortTransferError struct {
	Op          string
	Addr        uint64
	Requested   int
	Transferred int
}

func (e ShortTransferError) Error() string {
	return fmt.Sprintf("short %s at %#x: %d of %d bytes transferred", e.Op, e.Addr, e.Transferred, e.Requested)
}

// ModuleListError indicates that the module list of a process could not
// be enumerated at all.
type ModuleListError struct {
	Pid int
	Err error
}

func (e ModuleListError) Error() string {
	return fmt.Sprintf("couldn't list modules of process %d: %v", e.Pid, e.Err)
}

func (e ModuleListError) Unwrap() error { return e.Err }

// ModuleNotFoundError indicates that no loaded module matched the
// requested name.
type ModuleNotFoundError struct {
	Name string
}

func (e ModuleNotFoundError) Error() string {
	return fmt.Sprintf("no module with name %q", e.Name)
}
