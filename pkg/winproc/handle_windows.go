package winproc

import (
	"sync/atomic"
	"syscall"
)

// handleGuard owns a raw process handle and guarantees it is released at
// most once. The raw value may be observed concurrently; release may run
// from any goroutine.
type handleGuard struct {
	h      syscall.Handle
	closed uint32
}

func newHandleGuard(h syscall.Handle) *handleGuard {
	return &handleGuard{h: h}
}

// raw returns the wrapped handle, or ErrHandleClosed after release.
func (g *handleGuard) raw() (syscall.Handle, error) {
	if atomic.LoadUint32(&g.closed) != 0 {
		return 0, ErrHandleClosed
	}
	return g.h, nil
}

// release closes the handle. Only the first call does anything; the
// CloseHandle failure mode (the handle already being invalid) offers no
// recovery to the caller, so the error is dropped.
func (g *handleGuard) release() {
	if !atomic.CompareAndSwapUint32(&g.closed, 0, 1) {
		return
	}
	_ = syscall.CloseHandle(g.h)
}
