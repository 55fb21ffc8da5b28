//go:build windows

package scsi

import (
	"fmt"
	"sync"
	"syscall"
	"time"
	"unsafe"

	"github.com/lordadamson/cgo.wchar"
)

// scsiPassThroughDirect mirrors SCSI_PASS_THROUGH_DIRECT from ntddscsi.h,
// the structure pslr_scsi_win.c builds to drive IOCTL_SCSI_PASS_THROUGH_DIRECT.
type scsiPassThroughDirect struct {
	length             uint16
	scsiStatus         uint8
	pathID             uint8
	targetID           uint8
	lun                uint8
	cdbLength          uint8
	senseInfoLength    uint8
	dataIn             uint8
	_                  [3]byte // alignment padding before the ULONG fields
	dataTransferLength uint32
	timeOutValue       uint32
	dataBuffer         uintptr
	senseInfoOffset    uint32
	cdb                [16]byte
}

const (
	ioctlScsiPassThroughDirect = 0x4D014
	scsiIoctlDataIn            = 1
	scsiIoctlDataOut           = 0

	fileShareRead      = 0x1
	fileShareWrite     = 0x2
	openExisting       = 3
	genericRead        = 0x80000000
	genericWrite       = 0x40000000
	invalidHandleValue = ^uintptr(0)
)

var (
	kernel32           = syscall.NewLazyDLL("kernel32.dll")
	procCreateFileW    = kernel32.NewProc("CreateFileW")
	procCloseHandle    = kernel32.NewProc("CloseHandle")
	procDeviceIoControl = kernel32.NewProc("DeviceIoControl")
)

// WindowsTransport executes CDBs against a drive letter device (e.g.
// "\\.\E:") via IOCTL_SCSI_PASS_THROUGH_DIRECT, the same ioctl
// pslr_scsi_win.c uses, converting the device path to a wide string the
// way its mbstowcs_s call does — here via cgo.wchar rather than a libc
// call.
type WindowsTransport struct {
	mu     sync.Mutex
	handle uintptr
	open   bool
}

func NewWindowsTransport() *WindowsTransport {
	return &WindowsTransport{handle: invalidHandleValue}
}

func (t *WindowsTransport) Open(path string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	wpath, err := wchar.FromGoString(path)
	if err != nil {
		return &TransportError{Kind: ErrKindParameter, Op: "open", Err: err}
	}

	h, _, callErr := procCreateFileW.Call(
		uintptr(unsafe.Pointer(wpath.Pointer())),
		uintptr(genericRead|genericWrite),
		uintptr(fileShareRead|fileShareWrite),
		0,
		uintptr(openExisting),
		0,
		0,
	)
	if h == invalidHandleValue {
		return &TransportError{Kind: ErrKindDeviceGone, Op: "open", Err: callErr}
	}

	t.handle = h
	t.open = true
	return nil
}

func (t *WindowsTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.open {
		return nil
	}
	t.open = false
	ok, _, callErr := procCloseHandle.Call(t.handle)
	t.handle = invalidHandleValue
	if ok == 0 {
		return &TransportError{Kind: ErrKindSCSIError, Op: "close", Err: callErr}
	}
	return nil
}

func (t *WindowsTransport) Execute(cdb []byte, buf []byte, dir Direction, timeout time.Duration) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.open {
		return 0, &TransportError{Kind: ErrKindDeviceGone, Op: "execute"}
	}
	if len(cdb) == 0 || len(cdb) > 16 {
		return 0, &TransportError{Kind: ErrKindParameter, Op: "execute", Err: fmt.Errorf("cdb length %d out of range", len(cdb))}
	}

	sptd := scsiPassThroughDirect{
		length:             uint16(unsafe.Sizeof(scsiPassThroughDirect{})),
		cdbLength:          uint8(len(cdb)),
		senseInfoLength:    32,
		dataTransferLength: uint32(len(buf)),
		timeOutValue:       uint32(timeout.Seconds()),
	}
	copy(sptd.cdb[:], cdb)
	if dir == DirectionFromDevice {
		sptd.dataIn = scsiIoctlDataIn
	} else {
		sptd.dataIn = scsiIoctlDataOut
	}
	if len(buf) > 0 {
		sptd.dataBuffer = uintptr(unsafe.Pointer(&buf[0]))
	}

	var bytesReturned uint32
	ok, _, callErr := procDeviceIoControl.Call(
		t.handle,
		uintptr(ioctlScsiPassThroughDirect),
		uintptr(unsafe.Pointer(&sptd)),
		unsafe.Sizeof(sptd),
		uintptr(unsafe.Pointer(&sptd)),
		unsafe.Sizeof(sptd),
		uintptr(unsafe.Pointer(&bytesReturned)),
		0,
	)
	if ok == 0 {
		return 0, &TransportError{Kind: ErrKindSCSIError, Op: "execute", Err: callErr}
	}
	if sptd.scsiStatus != 0 {
		return int(sptd.dataTransferLength), &TransportError{
			Kind: ErrKindSCSIError,
			Op:   "execute",
			Err:  fmt.Errorf("scsi status %#02x", sptd.scsiStatus),
		}
	}

	return int(sptd.dataTransferLength), nil
}
