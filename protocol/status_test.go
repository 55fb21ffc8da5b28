package protocol

import (
	"encoding/binary"
	"testing"

	"github.com/bdube/pslrtether/values"
	"github.com/stretchr/testify/assert"
)

// buildStatusPayload returns a statusPayloadLen-byte buffer with a correct
// trailing CRC so tests can exercise DecodeStatus without going through a
// real transport.
func buildStatusPayload(t *testing.T, fill func(b []byte)) []byte {
	t.Helper()
	b := make([]byte, statusPayloadLen)
	if fill != nil {
		fill(b)
	}
	crcVal := crcTable.CalculateCRC(b[:statusPayloadLen-2])
	binary.BigEndian.PutUint16(b[statusPayloadLen-2:], uint16(crcVal))
	return b
}

func TestDecodeStatus_UnknownEnumsDecodeToInvalid(t *testing.T) {
	payload := buildStatusPayload(t, func(b []byte) {
		b[0] = byte(int8(99)) // out-of-range exposure mode ordinal
	})

	snap, err := DecodeStatus(payload)
	assert.NoError(t, err)
	assert.Equal(t, values.ExposureModeInvalid, snap.ExposureMode)
}

func TestDecodeStatus_KnownOrdinalsDecodeCleanly(t *testing.T) {
	payload := buildStatusPayload(t, func(b []byte) {
		b[0] = byte(values.ExposureModeAV)
		binary.BigEndian.PutUint32(b[12:], 400)
	})

	snap, err := DecodeStatus(payload)
	assert.NoError(t, err)
	assert.Equal(t, values.ExposureModeAV, snap.ExposureMode)
	assert.Equal(t, uint32(400), snap.CurrentISO)
}

func TestDecodeStatus_CRCMismatchIsRejected(t *testing.T) {
	payload := buildStatusPayload(t, nil)
	payload[len(payload)-1] ^= 0xFF

	_, err := DecodeStatus(payload)
	assert.Error(t, err)
}

func TestDecodeStatus_TooShort(t *testing.T) {
	_, err := DecodeStatus(make([]byte, 10))
	assert.Error(t, err)
}
