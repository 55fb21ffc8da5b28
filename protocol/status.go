package protocol

import (
	"encoding/binary"
	"fmt"

	"github.com/bdube/pslrtether/values"
)

// statusPayloadLen is the fixed-size wire layout for a get-status
// response, trailing two-byte XMODEM CRC included.
const statusPayloadLen = 116

// EncodeGetStatus builds the CDB for a status read.
func EncodeGetStatus() []byte {
	return newCDB(opGetStatus)
}

// DecodeStatus decodes a get-status response into a Snapshot. Unknown
// enum ordinals decode to their INVALID variant rather than silently
// falling back to the zero value.
func DecodeStatus(resp []byte) (Snapshot, error) {
	if len(resp) < statusPayloadLen {
		return Snapshot{}, fmt.Errorf("protocol: status response too short: %d bytes", len(resp))
	}
	if err := crcCheck(resp[:statusPayloadLen]); err != nil {
		return Snapshot{}, err
	}

	b := resp
	u16 := func(off int) uint16 { return binary.BigEndian.Uint16(b[off:]) }
	u32 := func(off int) uint32 { return binary.BigEndian.Uint32(b[off:]) }
	i32 := func(off int) int32 { return int32(binary.BigEndian.Uint32(b[off:])) }
	rationalU32 := func(off int) values.Rational[uint32] {
		return values.NewRational(u32(off), u32(off+4))
	}

	s := Snapshot{
		ExposureMode:              values.ExposureModeFromWire(int(int8(b[0]))),
		AFMode:                    values.AFModeFromWire(int(int8(b[1]))),
		AFPointSelectionWire:      int(int8(b[2])),
		SelectedAFBitmap:          u32(4),
		FocusedAFBitmap:           u32(8),
		CurrentISO:                u32(12),
		FixedISO:                  u32(16),
		AutoISOMin:                u32(20),
		AutoISOMax:                u32(24),
		CurrentAperture:           rationalU32(28),
		LensMinAperture:           rationalU32(36),
		LensMaxAperture:           rationalU32(44),
		CurrentShutterSpeed:       rationalU32(52),
		ExposureCompensation:      values.NewRational(i32(60), i32(64)),
		FlashExposureCompensation: i32(68),
		AEMeteringMode:            values.AEMeteringModeFromWire(int(int8(b[72]))),
		WhiteBalanceMode:          values.WhiteBalanceModeFromWire(int(int8(b[73]))),
		WBAdjustMG:                int(int8(b[74])),
		WBAdjustBA:                int(int8(b[75])),
		FlashMode:                 values.FlashModeFromWire(int(int8(b[76]))),
		Zoom:                      rationalU32(77),
		ImageFormat:               int(b[85]),
		JPEGQuality:               int(b[86]),
		JPEGResolution:            int(b[87]),
		JPEGImageTone:             int(int8(b[88])),
		JPEGSaturation:            int(int8(b[89])),
		JPEGHue:                   int(int8(b[90])),
		JPEGContrast:              int(int8(b[91])),
		JPEGSharpness:             int(int8(b[92])),
		LensIDPrimary:             int(b[93]),
		LensIDSecondary:           int(b[94]),
		BatteryRaw: [4]uint16{
			u16(96), u16(98), u16(100), u16(102),
		},
		ShakeReduction:         b[104] != 0,
		BufferMask:             u32(106),
		CustomEVSteps:          values.CustomSensitivitySteps(b[110]),
		CustomSensitivitySteps: values.CustomSensitivitySteps(b[111]),
		ReleaseMode:            values.ReleaseModeFromWire(int(int8(b[112]))),
	}
	return s, nil
}
