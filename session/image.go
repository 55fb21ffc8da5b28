package session

import (
	"fmt"

	"github.com/bdube/pslrtether/capability"
	"github.com/bdube/pslrtether/protocol"
	"github.com/bdube/pslrtether/scsi"
)

// previewSizeEstimate is the buffer allocated for a single-shot preview
// transfer; the vendor preview opcode has no size-negotiation step, so the
// caller reads up to this many bytes in one transaction.
const previewSizeEstimate = protocol.MaxReadChunk

// GetImage retrieves the full image at bufferIndex in the given format,
// quality, and resolution, reporting fractional progress
// (bytesSoFar/totalSize, in [0,1]) as each chunk lands. progress may be
// nil.
func (c *Controller) GetImage(bufferIndex int, format capability.ImageFormat, quality, resolution int, progress func(fraction float64)) ([]byte, error) {
	bufferType := c.Capability().WireBufferType(format, quality)
	return c.readBuffer(protocol.EncodeOpenBuffer(bufferIndex, bufferType, resolution), progress)
}

// GetPreviewImage retrieves the embedded JPEG preview for bufferIndex in a
// single transaction, distinct from GetImage's open/read-loop/close
// choreography: the preview opcode has no size-negotiation step.
func (c *Controller) GetPreviewImage(bufferIndex int) ([]byte, error) {
	if c.State() != StateConnected {
		return nil, fmt.Errorf("session: not connected")
	}

	c.transportMu.Lock()
	resp := make([]byte, previewSizeEstimate)
	n, err := c.transport.Execute(protocol.EncodeGetPreview(bufferIndex), resp, scsi.DirectionFromDevice, scsi.DefaultTimeout)
	c.transportMu.Unlock()

	if err != nil {
		c.noteDeviceGone(err)
		return nil, fmt.Errorf("session: get preview: %w", err)
	}
	return resp[:n], nil
}

// readBuffer runs the vendor buffer choreography: open, read in
// MaxReadChunk-sized steps until the reported total size is consumed,
// close, and surface progress after each chunk. The transport mutex is
// held for the duration since a buffer read sequence is not interleavable
// with any other transport use.
func (c *Controller) readBuffer(openCDB []byte, progress func(fraction float64)) ([]byte, error) {
	if c.State() != StateConnected {
		return nil, fmt.Errorf("session: not connected")
	}

	c.transportMu.Lock()
	defer c.transportMu.Unlock()

	openResp := make([]byte, 4)
	if _, err := c.transport.Execute(openCDB, openResp, scsi.DirectionFromDevice, scsi.DefaultTimeout); err != nil {
		c.noteDeviceGone(err)
		return nil, fmt.Errorf("session: open buffer: %w", err)
	}
	totalSize, err := protocol.DecodeOpenBufferResponse(openResp)
	if err != nil {
		return nil, fmt.Errorf("session: open buffer: %w", err)
	}

	data := make([]byte, 0, totalSize)
	for uint32(len(data)) < totalSize {
		remaining := totalSize - uint32(len(data))
		chunkLen := int(remaining)
		if chunkLen > protocol.MaxReadChunk {
			chunkLen = protocol.MaxReadChunk
		}

		chunk := make([]byte, chunkLen)
		if _, err := c.transport.Execute(protocol.EncodeReadBuffer(chunkLen), chunk, scsi.DirectionFromDevice, scsi.DefaultTimeout); err != nil {
			c.noteDeviceGone(err)
			return nil, fmt.Errorf("session: read buffer: %w", err)
		}
		data = append(data, chunk...)

		if progress != nil && totalSize > 0 {
			progress(float64(len(data)) / float64(totalSize))
		}
	}

	if _, err := c.transport.Execute(protocol.EncodeCloseBuffer(), nil, scsi.DirectionToDevice, scsi.DefaultTimeout); err != nil {
		c.noteDeviceGone(err)
		return nil, fmt.Errorf("session: close buffer: %w", err)
	}
	return data, nil
}

// DeleteImage deletes the buffer at bufferIndex on the camera.
func (c *Controller) DeleteImage(bufferIndex int) bool {
	return c.execute(protocol.EncodeDeleteBuffer(bufferIndex))
}

// noteDeviceGone routes a device-gone transport error into the
// auto-reconnect path without double-locking the transport mutex the
// caller already holds.
func (c *Controller) noteDeviceGone(err error) {
	if scsi.IsDeviceGone(err) {
		go c.handleDeviceGone()
	}
}
