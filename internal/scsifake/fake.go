// Package scsifake provides an in-memory scsi.Transport double that
// speaks the same wire opcodes protocol encodes, so the session package's
// tests can drive a full connect/status/write/shutter cycle without a
// real camera or SG_IO ioctl.
package scsifake

import (
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"github.com/snksoft/crc"

	"github.com/bdube/pslrtether/scsi"
)

// Mirrors protocol's private opcode table; a fake device knows the wire
// protocol independently of the host package, the same way real camera
// firmware does.
const (
	opIdentify        = 0x01
	opGetStatus       = 0x03
	opSetISO          = 0x10
	opSetAperture     = 0x11
	opSetShutter      = 0x12
	opSetEC           = 0x13
	opSetAFMode       = 0x14
	opSetAFPointSel   = 0x15
	opSelectAFPoints  = 0x16
	opSetJPEGTone     = 0x17
	opSetSaturation   = 0x18
	opSetHue          = 0x19
	opSetContrast     = 0x1A
	opSetSharpness    = 0x1B
	opSetAEMetering   = 0x1C
	opSetWhiteBalance = 0x1D
	opSetWBAdjust     = 0x1E
	opSetFlashMode    = 0x1F
	opSetFlashEC      = 0x20
	opSetReleaseMode  = 0x21
	opFocus           = 0x30
	opShutter         = 0x31
	opDustRemoval     = 0x32
	opGetPreview      = 0x40
	opOpenBuffer      = 0x41
	opReadBuffer      = 0x42
	opCloseBuffer     = 0x43
	opDeleteBuffer    = 0x44
)

const statusPayloadLen = 116

var crcTable = crc.NewTable(crc.XMODEM)

// State is the fake device's mutable status; field offsets mirror
// protocol.DecodeStatus's layout exactly.
type State struct {
	Name, ModelTag string

	ExposureMode     int8
	AFMode           int8
	AFPointSelection int8
	SelectedAFBitmap uint32
	FocusedAFBitmap  uint32
	CurrentISO       uint32
	FixedISO         uint32
	AutoISOMin       uint32
	AutoISOMax       uint32

	CurrentApertureNum, CurrentApertureDen uint32
	LensMinApertureNum, LensMinApertureDen uint32
	LensMaxApertureNum, LensMaxApertureDen uint32
	ShutterNum, ShutterDen                 uint32
	ECNum, ECDen                           int32

	FlashExposureCompensation int32
	AEMeteringMode            int8
	WhiteBalanceMode          int8
	WBAdjustMG, WBAdjustBA    int8
	FlashMode                 int8
	ZoomNum, ZoomDen          uint32

	ImageFormat, JPEGQuality, JPEGResolution byte
	JPEGImageTone, JPEGSaturation            int8
	JPEGHue, JPEGContrast, JPEGSharpness     int8
	LensIDPrimary, LensIDSecondary           byte

	BatteryRaw [4]uint16

	ShakeReduction         bool
	BufferMask             uint32
	CustomEVSteps          byte
	CustomSensitivitySteps byte
	ReleaseMode            int8

	// NextShutterBit is the buffer index the next shutter release
	// allocates; it also sets the corresponding bit in BufferMask, the
	// same way a real body advances its buffer ring.
	NextShutterBit int

	// Buffers holds canned image bytes keyed by buffer index, served by
	// the open/read/close sequence.
	Buffers map[int][]byte
}

// Device is a fake camera: an in-memory State plus an open/closed flag,
// satisfying scsi.Transport.
type Device struct {
	mu sync.Mutex

	State State

	opened bool
	gone   bool // once true, every Execute reports ErrKindDeviceGone

	executeCount     int
	unplugAfterCalls int // if > 0, Unplug triggers once executeCount reaches it

	openBufferData []byte
	openBufferPos  int
}

// New builds a Device preloaded with state.
func New(state State) *Device {
	if state.Buffers == nil {
		state.Buffers = make(map[int][]byte)
	}
	return &Device{State: state}
}

// Unplug makes every subsequent Execute fail as device-gone, simulating a
// physical disconnect.
func (d *Device) Unplug() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gone = true
}

// Replug clears the device-gone condition, simulating the camera being
// reattached so the next Open succeeds again.
func (d *Device) Replug() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gone = false
}

// UnplugAfterCalls arranges for the device to go gone partway through a
// multi-call choreography (e.g. mid read-buffer-loop), simulating a
// disconnect mid-transfer. n counts Execute calls since the device was
// created (see ExecuteCount): the nth call and every call after it fail
// as device-gone.
func (d *Device) UnplugAfterCalls(n int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.unplugAfterCalls = n
}

// ExecuteCount reports how many Execute calls have completed so far, for
// tests that need to schedule UnplugAfterCalls relative to the present.
func (d *Device) ExecuteCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.executeCount
}

func (d *Device) Open(path string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.gone {
		return &scsi.TransportError{Kind: scsi.ErrKindDeviceGone, Op: "open"}
	}
	d.opened = true
	return nil
}

func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.opened = false
	return nil
}

// Execute dispatches cdb against the fake device's State, mutating it for
// a write opcode or filling buf for a read opcode.
func (d *Device) Execute(cdb []byte, buf []byte, dir scsi.Direction, timeout time.Duration) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.gone {
		return 0, &scsi.TransportError{Kind: scsi.ErrKindDeviceGone, Op: "execute"}
	}
	d.executeCount++
	if d.unplugAfterCalls > 0 && d.executeCount >= d.unplugAfterCalls {
		d.gone = true
		return 0, &scsi.TransportError{Kind: scsi.ErrKindDeviceGone, Op: "execute"}
	}
	if !d.opened {
		return 0, &scsi.TransportError{Kind: scsi.ErrKindSCSIError, Op: "execute", Err: fmt.Errorf("not open")}
	}
	if len(cdb) == 0 {
		return 0, &scsi.TransportError{Kind: scsi.ErrKindParameter, Op: "execute", Err: fmt.Errorf("empty cdb")}
	}

	params := cdb[1:]
	switch cdb[0] {
	case opIdentify:
		return d.fillIdentify(buf)
	case opGetStatus:
		return d.fillStatus(buf)
	case opSetISO:
		return d.setISO(params)
	case opSetAperture:
		d.State.CurrentApertureNum = binary.BigEndian.Uint32(params[0:4])
		d.State.CurrentApertureDen = binary.BigEndian.Uint32(params[4:8])
		return 0, nil
	case opSetShutter:
		d.State.ShutterNum = binary.BigEndian.Uint32(params[0:4])
		d.State.ShutterDen = binary.BigEndian.Uint32(params[4:8])
		return 0, nil
	case opSetEC:
		d.State.ECNum = int32(binary.BigEndian.Uint32(params[0:4]))
		d.State.ECDen = int32(binary.BigEndian.Uint32(params[4:8]))
		return 0, nil
	case opSetAFMode:
		d.State.AFMode = int8(params[0])
		return 0, nil
	case opSetAFPointSel:
		d.State.AFPointSelection = int8(params[0])
		return 0, nil
	case opSelectAFPoints:
		d.State.SelectedAFBitmap = binary.BigEndian.Uint32(params[0:4])
		return 0, nil
	case opSetJPEGTone:
		d.State.JPEGImageTone = int8(params[0])
		return 0, nil
	case opSetSaturation:
		d.State.JPEGSaturation = int8(params[0])
		return 0, nil
	case opSetHue:
		d.State.JPEGHue = int8(params[0])
		return 0, nil
	case opSetContrast:
		d.State.JPEGContrast = int8(params[0])
		return 0, nil
	case opSetSharpness:
		d.State.JPEGSharpness = int8(params[0])
		return 0, nil
	case opSetAEMetering:
		d.State.AEMeteringMode = int8(params[0])
		return 0, nil
	case opSetWhiteBalance:
		d.State.WhiteBalanceMode = int8(params[0])
		return 0, nil
	case opSetWBAdjust:
		d.State.WBAdjustMG = int8(params[1])
		d.State.WBAdjustBA = int8(params[2])
		return 0, nil
	case opSetFlashMode:
		d.State.FlashMode = int8(params[0])
		return 0, nil
	case opSetFlashEC:
		d.State.FlashExposureCompensation = int32(binary.BigEndian.Uint32(params[0:4]))
		return 0, nil
	case opSetReleaseMode:
		d.State.ReleaseMode = int8(params[0])
		return 0, nil
	case opFocus:
		d.State.FocusedAFBitmap = d.State.SelectedAFBitmap
		return 0, nil
	case opShutter:
		bit := d.State.NextShutterBit
		d.State.BufferMask |= 1 << uint(bit)
		d.State.NextShutterBit++
		return 0, nil
	case opDustRemoval:
		return 0, nil
	case opOpenBuffer:
		idx := int(params[0])
		data := d.State.Buffers[idx]
		d.openBufferData = data
		d.openBufferPos = 0
		var resp [4]byte
		binary.BigEndian.PutUint32(resp[:], uint32(len(data)))
		n := copy(buf, resp[:])
		return n, nil
	case opReadBuffer:
		want := int(binary.BigEndian.Uint32(params[0:4]))
		remaining := d.openBufferData[d.openBufferPos:]
		if want > len(remaining) {
			want = len(remaining)
		}
		n := copy(buf, remaining[:want])
		d.openBufferPos += n
		return n, nil
	case opCloseBuffer:
		d.openBufferData = nil
		d.openBufferPos = 0
		return 0, nil
	case opDeleteBuffer:
		delete(d.State.Buffers, int(params[0]))
		return 0, nil
	case opGetPreview:
		data := d.State.Buffers[int(params[0])]
		n := copy(buf, data)
		return n, nil
	default:
		return 0, &scsi.TransportError{Kind: scsi.ErrKindParameter, Op: "execute", Err: fmt.Errorf("unknown opcode %#02x", cdb[0])}
	}
}

// setISO applies a fixed-ISO write. EncodeSetFixedISO and
// EncodeSetAutoISORange share opSetISO with different param shapes; since
// both pad to the same fixed CDB length, a fake device watching the wire
// alone cannot always tell them apart, so this treats every opSetISO as
// the fixed-ISO shape, matching the fixed-ISO scenarios session tests
// drive.
func (d *Device) setISO(params []byte) (int, error) {
	d.State.FixedISO = uint32(binary.BigEndian.Uint16(params[0:2]))
	d.State.CurrentISO = d.State.FixedISO
	return 0, nil
}

func (d *Device) fillIdentify(buf []byte) (int, error) {
	var resp [32]byte
	copy(resp[0:16], d.State.Name)
	copy(resp[16:32], d.State.ModelTag)
	n := copy(buf, resp[:])
	return n, nil
}

func (d *Device) fillStatus(buf []byte) (int, error) {
	b := make([]byte, statusPayloadLen)
	s := &d.State

	b[0] = byte(s.ExposureMode)
	b[1] = byte(s.AFMode)
	b[2] = byte(s.AFPointSelection)
	binary.BigEndian.PutUint32(b[4:], s.SelectedAFBitmap)
	binary.BigEndian.PutUint32(b[8:], s.FocusedAFBitmap)
	binary.BigEndian.PutUint32(b[12:], s.CurrentISO)
	binary.BigEndian.PutUint32(b[16:], s.FixedISO)
	binary.BigEndian.PutUint32(b[20:], s.AutoISOMin)
	binary.BigEndian.PutUint32(b[24:], s.AutoISOMax)
	binary.BigEndian.PutUint32(b[28:], s.CurrentApertureNum)
	binary.BigEndian.PutUint32(b[32:], s.CurrentApertureDen)
	binary.BigEndian.PutUint32(b[36:], s.LensMinApertureNum)
	binary.BigEndian.PutUint32(b[40:], s.LensMinApertureDen)
	binary.BigEndian.PutUint32(b[44:], s.LensMaxApertureNum)
	binary.BigEndian.PutUint32(b[48:], s.LensMaxApertureDen)
	binary.BigEndian.PutUint32(b[52:], s.ShutterNum)
	binary.BigEndian.PutUint32(b[56:], s.ShutterDen)
	binary.BigEndian.PutUint32(b[60:], uint32(s.ECNum))
	binary.BigEndian.PutUint32(b[64:], uint32(s.ECDen))
	binary.BigEndian.PutUint32(b[68:], uint32(s.FlashExposureCompensation))
	b[72] = byte(s.AEMeteringMode)
	b[73] = byte(s.WhiteBalanceMode)
	b[74] = byte(s.WBAdjustMG)
	b[75] = byte(s.WBAdjustBA)
	b[76] = byte(s.FlashMode)
	binary.BigEndian.PutUint32(b[77:], s.ZoomNum)
	binary.BigEndian.PutUint32(b[81:], s.ZoomDen)
	b[85] = s.ImageFormat
	b[86] = s.JPEGQuality
	b[87] = s.JPEGResolution
	b[88] = byte(s.JPEGImageTone)
	b[89] = byte(s.JPEGSaturation)
	b[90] = byte(s.JPEGHue)
	b[91] = byte(s.JPEGContrast)
	b[92] = byte(s.JPEGSharpness)
	b[93] = s.LensIDPrimary
	b[94] = s.LensIDSecondary
	binary.BigEndian.PutUint16(b[96:], s.BatteryRaw[0])
	binary.BigEndian.PutUint16(b[98:], s.BatteryRaw[1])
	binary.BigEndian.PutUint16(b[100:], s.BatteryRaw[2])
	binary.BigEndian.PutUint16(b[102:], s.BatteryRaw[3])
	if s.ShakeReduction {
		b[104] = 1
	}
	binary.BigEndian.PutUint32(b[106:], s.BufferMask)
	b[110] = s.CustomEVSteps
	b[111] = s.CustomSensitivitySteps
	b[112] = byte(s.ReleaseMode)

	crcVal := crcTable.CalculateCRC(b[:statusPayloadLen-2])
	binary.BigEndian.PutUint16(b[statusPayloadLen-2:], uint16(crcVal))

	n := copy(buf, b)
	return n, nil
}
