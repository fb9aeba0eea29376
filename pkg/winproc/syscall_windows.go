//go:generate go run $GOROOT/src/syscall/mksyscall_windows.go -output zsyscall_windows.go syscall_windows.go

package winproc

import (
	"syscall"
)

// _MODULEINFO mirrors the MODULEINFO structure returned by
// GetModuleInformation.
type _MODULEINFO struct {
	BaseOfDll   uintptr
	SizeOfImage uint32
	EntryPoint  uintptr
}

const (
	_PROCESS_QUERY_INFORMATION = 0x0400
	_PROCESS_VM_READ           = 0x0010
	_PROCESS_VM_WRITE          = 0x0020
	_PROCESS_VM_OPERATION      = 0x0008

	// GetExitCodeProcess reports this for processes that have not exited.
	_STILL_ACTIVE = 259

	// ReadProcessMemory/WriteProcessMemory report this when only part of
	// the requested range could be transferred.
	_ERROR_PARTIAL_COPY = syscall.Errno(299)

	// Initial size, in entries, of the pid buffer passed to EnumProcesses.
	// Grown until the returned count no longer fills it.
	enumProcessesStartCount = 256

	// Initial size, in UTF-16 code units, of the buffer passed to
	// QueryFullProcessImageName.
	imageNameStartSize = 128
)

//sys	_EnumProcesses(pids *uint32, size uint32, needed *uint32) (err error) = psapi.EnumProcesses
//sys	_EnumProcessModules(process syscall.Handle, modules *syscall.Handle, size uint32, needed *uint32) (err error) = psapi.EnumProcessModules
//sys	_GetModuleInformation(process syscall.Handle, module syscall.Handle, info *_MODULEINFO, size uint32) (err error) = psapi.GetModuleInformation
//sys	_GetModuleFileNameEx(process syscall.Handle, module syscall.Handle, filename *uint16, size uint32) (n uint32, err error) = psapi.GetModuleFileNameExW
//sys	_QueryFullProcessImageName(process syscall.Handle, flags uint32, exename *uint16, size *uint32) (err error) = kernel32.QueryFullProcessImageNameW
//sys	_ReadProcessMemory(process syscall.Handle, baseaddr uintptr, buffer *byte, size uintptr, bytesread *uintptr) (err error) = kernel32.ReadProcessMemory
//sys	_WriteProcessMemory(process syscall.Handle, baseaddr uintptr, buffer *byte, size uintptr, byteswritten *uintptr) (err error) = kernel32.WriteProcessMemory
//sys	_GetExitCodeProcess(process syscall.Handle, exitcode *uint32) (err error) = kernel32.GetExitCodeProcess
