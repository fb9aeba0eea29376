package winproc

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"

	"github.com/go-winmem/winmem/pkg/logflags"
)

const (
	fullAccess = _PROCESS_QUERY_INFORMATION | _PROCESS_VM_READ | _PROCESS_VM_WRITE | _PROCESS_VM_OPERATION
	readAccess = _PROCESS_QUERY_INFORMATION | _PROCESS_VM_READ
)

// Process represents a running process to which a handle has been
// opened. The zero value is not usable; obtain one through Find or Open.
//
// Process performs no internal locking. Sharing one value across
// goroutines is safe only for observing the handle; callers that mix
// concurrent operations with Close must serialize externally.
type Process struct {
	pid    int
	name   string
	path   string
	access uint32
	hg     *handleGuard
}

// ProcessInfo describes one running process without holding a handle to
// it.
type ProcessInfo struct {
	Pid  int
	Name string
	Path string
}

// Find scans the running processes for one whose executable base name
// equals name, using the case-insensitive comparison Windows applies to
// file names. The first match wins; scan order is OS-defined. The
// returned Process owns a newly opened handle and must be closed by the
// caller.
func Find(name string) (*Process, error) {
	if name == "" {
		return nil, ProcessNotFoundError{Name: name}
	}
	logger := logflags.WinprocLogger()
	pids, err := listPids()
	if err != nil {
		return nil, SnapshotUnavailableError{Err: err}
	}
	for _, pid := range pids {
		if pid == 0 {
			// idle pseudo-process
			continue
		}
		p, err := Open(int(pid))
		if err != nil {
			logger.Debugf("skipping pid %d: %v", pid, err)
			continue
		}
		if strings.EqualFold(p.name, name) {
			return p, nil
		}
		p.Close()
	}
	return nil, ProcessNotFoundError{Name: name}
}

// Open opens a handle to the process with the given pid and resolves its
// executable name. It asks for query, read and write access first and
// falls back to a read-only handle if write access is refused; the
// granted rights are recorded and checked by the memory operations.
func Open(pid int) (*Process, error) {
	access := uint32(fullAccess)
	h, err := syscall.OpenProcess(access, false, uint32(pid))
	if err == syscall.ERROR_ACCESS_DENIED {
		access = readAccess
		h, err = syscall.OpenProcess(access, false, uint32(pid))
	}
	if err != nil {
		return nil, openProcessError(pid, err)
	}
	exepath, err := imageName(h)
	if err != nil {
		syscall.CloseHandle(h)
		return nil, err
	}
	p := &Process{
		pid:    pid,
		name:   filepath.Base(exepath),
		path:   exepath,
		access: access,
		hg:     newHandleGuard(h),
	}
	// Release the handle if the caller drops the Process without
	// closing it.
	runtime.SetFinalizer(p, (*Process).Close)
	return p, nil
}

// List returns every running process that could be opened and resolved.
// Processes that refuse a query handle (other users' processes, system
// processes) are skipped. No handles remain open after List returns.
func List() ([]ProcessInfo, error) {
	pids, err := listPids()
	if err != nil {
		return nil, SnapshotUnavailableError{Err: err}
	}
	infos := make([]ProcessInfo, 0, len(pids))
	for _, pid := range pids {
		if pid == 0 {
			continue
		}
		h, err := syscall.OpenProcess(_PROCESS_QUERY_INFORMATION, false, pid)
		if err != nil {
			continue
		}
		exepath, err := imageName(h)
		syscall.CloseHandle(h)
		if err != nil {
			continue
		}
		infos = append(infos, ProcessInfo{
			Pid:  int(pid),
			Name: filepath.Base(exepath),
			Path: exepath,
		})
	}
	return infos, nil
}

// Pid returns the process identifier.
func (p *Process) Pid() int { return p.pid }

// Name returns the base name of the process executable.
func (p *Process) Name() string { return p.name }

// Path returns the full path of the process executable.
func (p *Process) Path() string { return p.path }

// Handle returns the raw process handle, or ErrHandleClosed after Close.
// The value is only valid while the Process is open.
func (p *Process) Handle() (syscall.Handle, error) {
	return p.hg.raw()
}

func (p *Process) String() string {
	return fmt.Sprintf("%s(%d)", p.name, p.pid)
}

// Close releases the process handle. Only the first call has an effect;
// every operation after it returns ErrHandleClosed.
func (p *Process) Close() {
	runtime.SetFinalizer(p, nil)
	p.hg.release()
}

// openProcessError classifies an OpenProcess failure: a privilege
// refusal surfaces as AccessDeniedError, everything else is passed
// through.
func openProcessError(pid int, err error) error {
	if err == syscall.ERROR_ACCESS_DENIED {
		return AccessDeniedError{Pid: pid, Op: "open"}
	}
	return err
}

// exitedError reports whether the target process has exited, converting
// the exit status into a ProcessExitedError. A failing GetExitCodeProcess
// is treated as "still alive" so the original operation error wins.
func (p *Process) exitedError(h syscall.Handle) error {
	var code uint32
	if err := _GetExitCodeProcess(h, &code); err != nil {
		return nil
	}
	if code == _STILL_ACTIVE {
		return nil
	}
	return ProcessExitedError{Pid: p.pid, Status: int(code)}
}

// listPids takes a best-effort snapshot of the running process ids. The
// buffer is grown until EnumProcesses reports a count that no longer
// fills it, since the call gives no other indication of truncation.
func listPids() ([]uint32, error) {
	for n := uint32(enumProcessesStartCount); ; n *= 2 {
		pids := make([]uint32, n)
		var ret uint32
		err := _EnumProcesses(&pids[0], n*4, &ret)
		if err != nil {
			return nil, err
		}
		got := ret / 4
		if got < n {
			return pids[:got], nil
		}
	}
}

// imageName resolves the full executable path of an open process handle,
// growing the buffer until it fits.
func imageName(h syscall.Handle) (string, error) {
	n := uint32(imageNameStartSize)
	for {
		buf := make([]uint16, int(n))
		err := _QueryFullProcessImageName(h, 0, &buf[0], &n)
		switch err {
		case syscall.ERROR_INSUFFICIENT_BUFFER:
			// try bigger buffer
			n *= 2
			// but stop if it gets too big
			if n > 10000 {
				return "", err
			}
		case nil:
			return syscall.UTF16ToString(buf[:n]), nil
		default:
			return "", err
		}
	}
}
