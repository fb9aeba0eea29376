// Package winproc locates running Windows processes by executable name,
// enumerates the modules loaded into their address space and reads and
// writes their memory through a process handle acquired with OpenProcess.
//
// A Process owns exactly one OS handle. The handle is released when Close
// is called (or, as a safety net, when the Process is garbage collected)
// and every operation after that point returns ErrHandleClosed. The
// package performs no internal locking beyond what is needed to release
// the handle exactly once: callers sharing one Process across goroutines
// must serialize access themselves.
//
// All enumerations are best-effort snapshots. A process may exit or a
// module may unload between the moment it is listed and the moment it is
// resolved; such candidates are skipped rather than failing the whole
// call.
package winproc
