package winproc

import (
	"path/filepath"
	"strings"
	"syscall"
	"unsafe"

	"github.com/go-winmem/winmem/pkg/logflags"
)

// Module describes one executable image mapped into a process's address
// space at the moment it was resolved. The mapping may disappear at any
// time after the enumeration returns.
type Module struct {
	Name       string
	Path       string
	Base       uint64
	Size       uint64
	EntryPoint uint64
}

func (m Module) String() string { return m.Name }

// Modules enumerates the modules currently loaded in the process. The
// list is queried fresh on every call, in OS load order; the first entry
// is normally the main executable image. Modules that unload between
// being listed and being resolved are skipped, so partial results are
// possible for a target that is loading or unloading libraries.
func (p *Process) Modules() ([]Module, error) {
	h, err := p.hg.raw()
	if err != nil {
		return nil, err
	}
	logger := logflags.WinprocLogger()

	// Two-phase listing: ask for the byte count first, then fetch. The
	// list can grow in between; everything past what the buffer holds is
	// dropped rather than failing the call.
	var needed uint32
	if err := _EnumProcessModules(h, nil, 0, &needed); err != nil {
		if exiterr := p.exitedError(h); exiterr != nil {
			return nil, exiterr
		}
		return nil, ModuleListError{Pid: p.pid, Err: err}
	}
	count := needed / uint32(unsafe.Sizeof(syscall.Handle(0)))
	if count == 0 {
		return nil, nil
	}
	handles := make([]syscall.Handle, count)
	size := uint32(len(handles)) * uint32(unsafe.Sizeof(handles[0]))
	if err := _EnumProcessModules(h, &handles[0], size, &needed); err != nil {
		if exiterr := p.exitedError(h); exiterr != nil {
			return nil, exiterr
		}
		return nil, ModuleListError{Pid: p.pid, Err: err}
	}
	if got := needed / uint32(unsafe.Sizeof(handles[0])); got < count {
		handles = handles[:got]
	}

	modules := make([]Module, 0, len(handles))
	for _, hmod := range handles {
		mod, err := resolveModule(h, hmod)
		if err != nil {
			// unloaded between listing and resolving
			logger.Debugf("skipping module %#x of %s: %v", hmod, p, err)
			continue
		}
		modules = append(modules, mod)
	}
	return modules, nil
}

// FindModule enumerates the process's modules and returns the one whose
// name equals name, compared case-insensitively.
func (p *Process) FindModule(name string) (Module, error) {
	modules, err := p.Modules()
	if err != nil {
		return Module{}, err
	}
	for _, mod := range modules {
		if strings.EqualFold(mod.Name, name) {
			return mod, nil
		}
	}
	return Module{}, ModuleNotFoundError{Name: name}
}

// MainModule returns the process's main executable image.
func (p *Process) MainModule() (Module, error) {
	modules, err := p.Modules()
	if err != nil {
		return Module{}, err
	}
	if len(modules) == 0 {
		return Module{}, ModuleNotFoundError{Name: p.name}
	}
	return modules[0], nil
}

func resolveModule(h syscall.Handle, hmod syscall.Handle) (Module, error) {
	var info _MODULEINFO
	if err := _GetModuleInformation(h, hmod, &info, uint32(unsafe.Sizeof(info))); err != nil {
		return Module{}, err
	}
	buf := make([]uint16, syscall.MAX_PATH)
	n, err := _GetModuleFileNameEx(h, hmod, &buf[0], uint32(len(buf)))
	if err != nil {
		return Module{}, err
	}
	path := syscall.UTF16ToString(buf[:n])
	return Module{
		Name:       filepath.Base(path),
		Path:       path,
		Base:       uint64(info.BaseOfDll),
		Size:       uint64(info.SizeOfImage),
		EntryPoint: uint64(info.EntryPoint),
	}, nil
}
