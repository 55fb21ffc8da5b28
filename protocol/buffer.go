package protocol

import (
	"encoding/binary"
	"fmt"
)

// MaxReadChunk is the ceiling on bytes requested per buffer read: the
// vendor protocol never transfers more than 64 KiB in a single read-buffer
// transaction.
const MaxReadChunk = 64 * 1024

// EncodeGetPreview builds the CDB for a single-shot preview transfer.
func EncodeGetPreview(index int) []byte {
	return newCDB(opGetPreview, byte(index))
}

// EncodeOpenBuffer builds the CDB to open a buffer for a subsequent
// read-buffer loop.
func EncodeOpenBuffer(index, bufferType, resolution int) []byte {
	return newCDB(opOpenBuffer, byte(index), byte(bufferType), byte(resolution))
}

// DecodeOpenBufferResponse decodes the total transfer size the camera
// reports for the buffer that was just opened.
func DecodeOpenBufferResponse(resp []byte) (totalSize uint32, err error) {
	if len(resp) < 4 {
		return 0, fmt.Errorf("protocol: open-buffer response too short: want at least 4 bytes, got %d", len(resp))
	}
	return binary.BigEndian.Uint32(resp[:4]), nil
}

// EncodeReadBuffer builds the CDB to read up to max bytes from the open
// buffer. max must not exceed MaxReadChunk.
func EncodeReadBuffer(max int) []byte {
	if max > MaxReadChunk {
		max = MaxReadChunk
	}
	var params [4]byte
	binary.BigEndian.PutUint32(params[:], uint32(max))
	return newCDB(opReadBuffer, params[:]...)
}

// EncodeCloseBuffer builds the CDB to close the currently open buffer.
func EncodeCloseBuffer() []byte {
	return newCDB(opCloseBuffer)
}

// EncodeDeleteBuffer builds the CDB to delete buffer index on the camera.
func EncodeDeleteBuffer(index int) []byte {
	return newCDB(opDeleteBuffer, byte(index))
}
