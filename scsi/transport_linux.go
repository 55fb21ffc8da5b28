//go:build linux

package scsi

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

// sgIoHdr mirrors sg_io_hdr_t from <scsi/sg.h>, the same shape the Linux
// SCSI generic driver expects for an SG_IO ioctl.
type sgIoHdr struct {
	interfaceID    int32
	dxferDirection int32
	cmdLen         uint8
	mxSbLen        uint8
	iovecCount     uint16
	dxferLen       uint32
	dxferp         uintptr
	cmdp           uintptr
	sbp            uintptr
	timeout        uint32
	flags          uint32
	packID         int32
	usrPtr         uintptr
	status         uint8
	maskedStatus   uint8
	msgStatus      uint8
	sbLenWr        uint8
	hostStatus     uint16
	driverStatus   uint16
	resid          int32
	duration       uint32
	info           uint32
}

const (
	sgDxferNone     = -1
	sgDxferToDev    = -2
	sgDxferFromDev  = -3
	sgInfoOKMask    = 0x1
	sgInfoOK        = 0x0
	sgIOIoctl       = 0x2285
	sgInterfaceID   = 'S'
	senseBufferSize = 32
)

// LinuxTransport executes CDBs over a Linux SCSI generic device node (the
// camera enumerates as /dev/sg* or a raw block device supporting SG_IO)
// via the SG_IO ioctl, the same mechanism github.com/dswarbrick/smart's
// scsi package uses for disk health queries.
type LinuxTransport struct {
	mu   sync.Mutex
	fd   int
	path string
	open bool
}

func NewLinuxTransport() *LinuxTransport {
	return &LinuxTransport{fd: -1}
}

func (t *LinuxTransport) Open(path string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	fd, err := unix.Open(path, unix.O_RDWR|unix.O_NONBLOCK, 0)
	if err != nil {
		if errors.Is(err, unix.ENOENT) || errors.Is(err, unix.ENODEV) {
			return &TransportError{Kind: ErrKindDeviceGone, Op: "open", Err: err}
		}
		return &TransportError{Kind: ErrKindSCSIError, Op: "open", Err: err}
	}

	t.fd = fd
	t.path = path
	t.open = true
	return nil
}

func (t *LinuxTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.open {
		return nil
	}
	t.open = false
	err := unix.Close(t.fd)
	t.fd = -1
	if err != nil {
		return &TransportError{Kind: ErrKindSCSIError, Op: "close", Err: err}
	}
	return nil
}

func (t *LinuxTransport) Execute(cdb []byte, buf []byte, dir Direction, timeout time.Duration) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.open {
		return 0, &TransportError{Kind: ErrKindDeviceGone, Op: "execute", Err: os.ErrClosed}
	}
	if len(cdb) == 0 || len(cdb) > 16 {
		return 0, &TransportError{Kind: ErrKindParameter, Op: "execute", Err: fmt.Errorf("cdb length %d out of range", len(cdb))}
	}

	var dxferDirection int32
	switch dir {
	case DirectionToDevice:
		dxferDirection = sgDxferToDev
	case DirectionFromDevice:
		dxferDirection = sgDxferFromDev
	default:
		dxferDirection = sgDxferNone
	}

	sense := make([]byte, senseBufferSize)
	hdr := sgIoHdr{
		interfaceID:    sgInterfaceID,
		dxferDirection: dxferDirection,
		cmdLen:         uint8(len(cdb)),
		mxSbLen:        uint8(len(sense)),
		cmdp:           uintptr(unsafe.Pointer(&cdb[0])),
		sbp:            uintptr(unsafe.Pointer(&sense[0])),
		timeout:        uint32(timeout.Milliseconds()),
	}
	if len(buf) > 0 {
		hdr.dxferLen = uint32(len(buf))
		hdr.dxferp = uintptr(unsafe.Pointer(&buf[0]))
	}

	if err := ioctl(uintptr(t.fd), sgIOIoctl, uintptr(unsafe.Pointer(&hdr))); err != nil {
		if errors.Is(err, unix.ENODEV) || errors.Is(err, unix.ENXIO) {
			return 0, &TransportError{Kind: ErrKindDeviceGone, Op: "execute", Err: err}
		}
		if errors.Is(err, unix.ETIMEDOUT) {
			return 0, &TransportError{Kind: ErrKindTimeout, Op: "execute", Err: err}
		}
		return 0, &TransportError{Kind: ErrKindSCSIError, Op: "execute", Err: err}
	}

	if hdr.info&sgInfoOKMask != sgInfoOK {
		return int(hdr.dxferLen) - int(hdr.resid), &TransportError{
			Kind: ErrKindSCSIError,
			Op:   "execute",
			Err: fmt.Errorf("scsi status %#02x host status %#04x driver status %#04x",
				hdr.status, hdr.hostStatus, hdr.driverStatus),
		}
	}

	return int(hdr.dxferLen) - int(hdr.resid), nil
}

func ioctl(fd uintptr, req uintptr, arg uintptr) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, req, arg)
	if errno != 0 {
		return errno
	}
	return nil
}
