package winproc

import (
	"encoding/binary"
	"syscall"
)

// ReadMemory reads size bytes of the target's address space starting at
// addr. A range that is partially unmapped or protected produces a
// ShortTransferError carrying the number of bytes actually read; the
// data is never silently truncated or padded.
func (p *Process) ReadMemory(addr uint64, size int) ([]byte, error) {
	if size <= 0 {
		return nil, ErrZeroLength
	}
	if uint64(uintptr(addr)) != addr {
		return nil, ErrInvalidAddress
	}
	h, err := p.hg.raw()
	if err != nil {
		return nil, err
	}
	if p.access&_PROCESS_VM_READ == 0 {
		return nil, AccessDeniedError{Pid: p.pid, Op: "read"}
	}
	buf := make([]byte, size)
	var count uintptr
	err = _ReadProcessMemory(h, uintptr(addr), &buf[0], uintptr(size), &count)
	if err != nil {
		return nil, p.transferError("read", addr, size, count, err)
	}
	if count != uintptr(size) {
		return nil, ShortTransferError{Op: "read", Addr: addr, Requested: size, Transferred: int(count)}
	}
	return buf, nil
}

// WriteMemory writes data into the target's address space at addr. The
// write does not adjust page protection: writing into a read-only or
// guard region fails instead of mutating the target's protection flags.
func (p *Process) WriteMemory(addr uint64, data []byte) error {
	if len(data) == 0 {
		return ErrZeroLength
	}
	if uint64(uintptr(addr)) != addr {
		return ErrInvalidAddress
	}
	h, err := p.hg.raw()
	if err != nil {
		return err
	}
	if p.access&(_PROCESS_VM_WRITE|_PROCESS_VM_OPERATION) != _PROCESS_VM_WRITE|_PROCESS_VM_OPERATION {
		return AccessDeniedError{Pid: p.pid, Op: "write"}
	}
	var count uintptr
	err = _WriteProcessMemory(h, uintptr(addr), &data[0], uintptr(len(data)), &count)
	if err != nil {
		return p.transferError("write", addr, len(data), count, err)
	}
	if count != uintptr(len(data)) {
		return ShortTransferError{Op: "write", Addr: addr, Requested: len(data), Transferred: int(count)}
	}
	return nil
}

// ReadUint32 reads a little-endian uint32 at addr.
func (p *Process) ReadUint32(addr uint64) (uint32, error) {
	buf, err := p.ReadMemory(addr, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf), nil
}

// ReadUint64 reads a little-endian uint64 at addr.
func (p *Process) ReadUint64(addr uint64) (uint64, error) {
	buf, err := p.ReadMemory(addr, 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf), nil
}

// WriteUint32 writes a little-endian uint32 at addr.
func (p *Process) WriteUint32(addr uint64, v uint32) error {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, v)
	return p.WriteMemory(addr, buf)
}

// WriteUint64 writes a little-endian uint64 at addr.
func (p *Process) WriteUint64(addr uint64, v uint64) error {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, v)
	return p.WriteMemory(addr, buf)
}

// transferError classifies a failed ReadProcessMemory/WriteProcessMemory
// call: an exited target wins over the raw OS error, a partial copy
// becomes a ShortTransferError and an access refusal becomes an
// AccessDeniedError.
func (p *Process) transferError(op string, addr uint64, requested int, count uintptr, err error) error {
	if exiterr := p.exitedError(p.hg.h); exiterr != nil {
		return exiterr
	}
	switch err {
	case _ERROR_PARTIAL_COPY:
		return ShortTransferError{Op: op, Addr: addr, Requested: requested, Transferred: int(count)}
	case syscall.ERROR_ACCESS_DENIED:
		return AccessDeniedError{Pid: p.pid, Op: op}
	}
	return err
}
