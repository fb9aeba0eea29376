package winproc

import (
	"os"
	"syscall"
	"testing"
)

func TestHandleGuardRelease(t *testing.T) {
	h, err := syscall.OpenProcess(_PROCESS_QUERY_INFORMATION, false, uint32(os.Getpid()))
	if err != nil {
		t.Fatalf("OpenProcess failed: %v", err)
	}
	g := newHandleGuard(h)

	got, err := g.raw()
	if err != nil {
		t.Fatalf("raw returned error before release: %v", err)
	}
	if got != h {
		t.Fatalf("expected handle %v, got %v", h, got)
	}

	g.release()
	if _, err := g.raw(); err != ErrHandleClosed {
		t.Fatalf("expected ErrHandleClosed after release, got %v", err)
	}

	// second release must be a no-op
	g.release()
	if _, err := g.raw(); err != ErrHandleClosed {
		t.Fatalf("expected ErrHandleClosed after double release, got %v", err)
	}
}

func TestHandleGuardConcurrentObservers(t *testing.T) {
	h, err := syscall.OpenProcess(_PROCESS_QUERY_INFORMATION, false, uint32(os.Getpid()))
	if err != nil {
		t.Fatalf("OpenProcess failed: %v", err)
	}
	g := newHandleGuard(h)
	defer g.release()

	done := make(chan bool)
	for i := 0; i < 4; i++ {
		go func() {
			for j := 0; j < 100; j++ {
				g.raw()
			}
			done <- true
		}()
	}
	for i := 0; i < 4; i++ {
		<-done
	}
}
