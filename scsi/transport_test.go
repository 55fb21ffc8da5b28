package scsi

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransportError_Unwrap(t *testing.T) {
	base := errors.New("boom")
	te := &TransportError{Kind: ErrKindTimeout, Op: "execute", Err: base}
	assert.ErrorIs(t, te, base)
}

func TestIsDeviceGone(t *testing.T) {
	assert.True(t, IsDeviceGone(&TransportError{Kind: ErrKindDeviceGone}))
	assert.False(t, IsDeviceGone(&TransportError{Kind: ErrKindTimeout}))
	assert.False(t, IsDeviceGone(errors.New("other")))
}

func TestErrorKind_String(t *testing.T) {
	assert.Equal(t, "device gone", ErrKindDeviceGone.String())
	assert.Equal(t, "scsi error", ErrKindSCSIError.String())
}
