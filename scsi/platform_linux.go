//go:build linux

package scsi

// NewPlatformTransport returns the Transport implementation for the
// current platform.
func NewPlatformTransport() Transport {
	return NewLinuxTransport()
}
