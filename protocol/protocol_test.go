package protocol

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeIdentify_OpcodeAndLength(t *testing.T) {
	cdb := EncodeIdentify()
	assert.Len(t, cdb, cdbLen)
	assert.Equal(t, byte(opIdentify), cdb[0])
}

func TestDecodeIdentify(t *testing.T) {
	resp := make([]byte, 32)
	copy(resp[0:], "K-3\x00")
	copy(resp[16:], "PENTAX_K3\x00")

	name, model, err := DecodeIdentify(resp)
	assert.NoError(t, err)
	assert.Equal(t, "K-3", name)
	assert.Equal(t, "PENTAX_K3", model)
}

func TestDecodeIdentify_TooShort(t *testing.T) {
	_, _, err := DecodeIdentify(make([]byte, 10))
	assert.Error(t, err)
}

func TestDecodeDSPInfo(t *testing.T) {
	resp := make([]byte, 16)
	copy(resp, "1.23\x00")
	fw, err := DecodeDSPInfo(resp)
	assert.NoError(t, err)
	assert.Equal(t, "1.23", fw)
}

func TestEncodeSetFixedISO(t *testing.T) {
	cdb := EncodeSetFixedISO(800)
	assert.Equal(t, byte(opSetISO), cdb[0])
	assert.Equal(t, uint16(800), binary.BigEndian.Uint16(cdb[1:3]))
}

func TestEncodeReadBuffer_ClampsToMaxChunk(t *testing.T) {
	cdb := EncodeReadBuffer(1 << 20)
	n := binary.BigEndian.Uint32(cdb[1:5])
	assert.Equal(t, uint32(MaxReadChunk), n)
}

func TestDecodeOpenBufferResponse(t *testing.T) {
	resp := make([]byte, 4)
	binary.BigEndian.PutUint32(resp, 12345)
	total, err := DecodeOpenBufferResponse(resp)
	assert.NoError(t, err)
	assert.Equal(t, uint32(12345), total)
}

func TestDecodeOpenBufferResponse_TooShort(t *testing.T) {
	_, err := DecodeOpenBufferResponse(make([]byte, 2))
	assert.Error(t, err)
}
