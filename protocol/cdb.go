package protocol

import (
	"encoding/binary"
	"fmt"

	"github.com/snksoft/crc"
)

// Operation codes occupy CDB byte 0 in the vendor's command set, laid out
// the way a real vendor table would assign contiguous ids per concern.
const (
	opIdentify        = 0x01
	opReadDSPInfo     = 0x02
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

const cdbLen = 10

var crcTable = crc.NewTable(crc.XMODEM)

// newCDB builds a fixed-length CDB with op in byte 0 and params following.
func newCDB(op byte, params ...byte) []byte {
	cdb := make([]byte, cdbLen)
	cdb[0] = op
	copy(cdb[1:], params)
	return cdb
}

// EncodeIdentify builds the CDB for the identify operation.
func EncodeIdentify() []byte {
	return newCDB(opIdentify)
}

// DecodeIdentify decodes the identify response into a camera name and
// model tag used to consult the capability catalogue.
func DecodeIdentify(resp []byte) (name, modelTag string, err error) {
	if len(resp) < 32 {
		return "", "", fmt.Errorf("protocol: identify response too short: %d bytes", len(resp))
	}
	name = trimNulString(resp[:16])
	modelTag = trimNulString(resp[16:32])
	return name, modelTag, nil
}

// EncodeReadDSPInfo builds the CDB for the firmware-version read.
func EncodeReadDSPInfo() []byte {
	return newCDB(opReadDSPInfo)
}

// DecodeDSPInfo decodes a firmware string of up to 16 bytes.
func DecodeDSPInfo(resp []byte) (string, error) {
	if len(resp) < 16 {
		return "", fmt.Errorf("protocol: DSP info response too short: %d bytes", len(resp))
	}
	return trimNulString(resp[:16]), nil
}

func trimNulString(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

// EncodeSetFixedISO builds the CDB for setting a fixed ISO value; auto
// bounds are zero, matching the vendor's (v, 0, 0) shape.
func EncodeSetFixedISO(value uint32) []byte {
	var params [3]byte
	binary.BigEndian.PutUint16(params[0:2], uint16(value))
	return newCDB(opSetISO, params[:]...)
}

// EncodeSetAutoISORange builds the CDB for setting an auto ISO range,
// matching the vendor's (0, lo, hi) shape.
func EncodeSetAutoISORange(lo, hi uint32) []byte {
	var params [5]byte
	binary.BigEndian.PutUint16(params[1:3], uint16(lo))
	binary.BigEndian.PutUint16(params[3:5], uint16(hi))
	return newCDB(opSetISO, params[:]...)
}

func EncodeSetAperture(numerator, denominator uint32) []byte {
	var params [8]byte
	binary.BigEndian.PutUint32(params[0:4], numerator)
	binary.BigEndian.PutUint32(params[4:8], denominator)
	return newCDB(opSetAperture, params[:]...)
}

func EncodeSetShutter(numerator, denominator uint32) []byte {
	var params [8]byte
	binary.BigEndian.PutUint32(params[0:4], numerator)
	binary.BigEndian.PutUint32(params[4:8], denominator)
	return newCDB(opSetShutter, params[:]...)
}

func EncodeSetEC(numerator, denominator int32) []byte {
	var params [8]byte
	binary.BigEndian.PutUint32(params[0:4], uint32(numerator))
	binary.BigEndian.PutUint32(params[4:8], uint32(denominator))
	return newCDB(opSetEC, params[:]...)
}

func EncodeSetAFMode(mode int) []byte {
	return newCDB(opSetAFMode, byte(mode))
}

func EncodeSetAFPointSelection(wire int) []byte {
	return newCDB(opSetAFPointSel, byte(wire))
}

func EncodeSelectAFPoints(mask uint32) []byte {
	var params [4]byte
	binary.BigEndian.PutUint32(params[:], mask)
	return newCDB(opSelectAFPoints, params[:]...)
}

func EncodeSetJPEGTone(wire int) []byte      { return newCDB(opSetJPEGTone, byte(wire)) }
func EncodeSetSaturation(wire int) []byte    { return newCDB(opSetSaturation, byte(wire)) }
func EncodeSetHue(wire int) []byte           { return newCDB(opSetHue, byte(wire)) }
func EncodeSetContrast(wire int) []byte      { return newCDB(opSetContrast, byte(wire)) }
func EncodeSetSharpness(wire int) []byte     { return newCDB(opSetSharpness, byte(wire)) }
func EncodeSetAEMetering(wire int) []byte    { return newCDB(opSetAEMetering, byte(wire)) }
func EncodeSetWhiteBalance(wire int) []byte  { return newCDB(opSetWhiteBalance, byte(wire)) }
func EncodeSetFlashMode(wire int) []byte     { return newCDB(opSetFlashMode, byte(wire)) }
func EncodeSetReleaseMode(wire int) []byte   { return newCDB(opSetReleaseMode, byte(wire)) }

// EncodeSetWBAdjust builds the CDB for a white-balance adjustment write,
// carrying the WB mode plus the two raw magenta-green/blue-amber offsets.
func EncodeSetWBAdjust(mode, mgRaw, baRaw int) []byte {
	return newCDB(opSetWBAdjust, byte(mode), byte(mgRaw), byte(baRaw))
}

// EncodeSetFlashEC builds the CDB for a flash exposure compensation write,
// in 1/256-EV signed units.
func EncodeSetFlashEC(value int32) []byte {
	var params [4]byte
	binary.BigEndian.PutUint32(params[:], uint32(value))
	return newCDB(opSetFlashEC, params[:]...)
}

func EncodeFocus() []byte       { return newCDB(opFocus) }
func EncodeShutter() []byte     { return newCDB(opShutter) }
func EncodeDustRemoval() []byte { return newCDB(opDustRemoval) }

// crcCheck verifies the trailing two-byte XMODEM CRC that terminates a
// get-status payload, the same checksum scheme the NKT telegram codec
// validates its frames with. DSP info and buffer reads carry no CRC and
// are not checked.
func crcCheck(payload []byte) error {
	if len(payload) < 2 {
		return fmt.Errorf("protocol: payload too short for CRC: %d bytes", len(payload))
	}
	body, want := payload[:len(payload)-2], payload[len(payload)-2:]
	gotCRC := crcTable.CalculateCRC(body)
	wantCRC := binary.BigEndian.Uint16(want)
	if uint16(gotCRC) != wantCRC {
		return fmt.Errorf("protocol: CRC mismatch: got %#04x want %#04x", uint16(gotCRC), wantCRC)
	}
	return nil
}
